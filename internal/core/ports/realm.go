package ports

import (
	"io"
	"net/url"

	"go.trai.ch/cpinfer/internal/core/domain"
)

// OriginLocator reports where a unit was loaded from.
//
//go:generate go run go.uber.org/mock/mockgen -source=realm.go -destination=mocks/mock_realm.go -package=mocks
type OriginLocator interface {
	// Origin returns the location of the classpath entry that defined the unit,
	// e.g. the directory or archive it was loaded from.
	Origin(unit domain.UnitIdentity) (*url.URL, error)
}

// Realm is a loading context that decides which concrete unit a name resolves to.
type Realm interface {
	OriginLocator

	// ID returns the realm's name.
	ID() domain.InternedString

	// FindResource locates the resource at the relative path.
	// It returns domain.ErrMissingResource when the realm has no such resource.
	FindResource(path string) (domain.ResourceRef, error)

	// LoadUnit resolves a binary class name to the identity of its defining realm
	// without linking or initializing anything. Units owned by the bootstrap realm
	// come back with a zero Realm. It returns domain.ErrUnresolvedReference when
	// the name cannot be resolved.
	LoadUnit(name string) (domain.UnitIdentity, error)

	// Open returns the bytes of a resource previously returned by FindResource.
	Open(ref domain.ResourceRef) (io.ReadCloser, error)
}

// RealmRegistry holds the realms of a workspace.
type RealmRegistry interface {
	// Load registers every realm of the workspace, replacing realms with the same name.
	Load(ws *domain.Workspace) error

	// Realm returns the realm with the given name or domain.ErrRealmNotFound.
	Realm(id domain.InternedString) (Realm, error)

	// OnEvict registers a callback invoked with the name of every realm that is
	// replaced or removed.
	OnEvict(fn func(id domain.InternedString))

	// Close releases every realm and its open archives.
	Close() error
}
