package ports

import "go.trai.ch/cpinfer/internal/core/domain"

// LocationResolver determines the classpath root that contains a resource.
type LocationResolver interface {
	// Resolve returns the root for ref. When the resource locator cannot be
	// interpreted, it falls back to the origin reported by origins.
	// It returns domain.ErrUnresolvableLocation when no strategy succeeds.
	Resolve(ref domain.ResourceRef, origins OriginLocator) (domain.ClasspathRoot, error)
}
