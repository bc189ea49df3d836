package domain

import "net/url"

// ResourceRef locates the bytes of one unit: the resolved locator and the
// relative path that was used to find it.
type ResourceRef struct {
	Unit     UnitIdentity
	Location *url.URL
	Path     string
}

// String returns the resource locator.
func (r ResourceRef) String() string {
	if r.Location == nil {
		return r.Path
	}
	return r.Location.String()
}
