package ports

import "go.trai.ch/cpinfer/internal/core/domain"

// ClasspathCache memoizes inference results per unit.
type ClasspathCache interface {
	// Get returns the cached set for unit. The returned set must not be modified.
	Get(unit domain.UnitIdentity) (*domain.ClasspathSet, bool)

	// Put stores the set for unit.
	Put(unit domain.UnitIdentity, set *domain.ClasspathSet)

	// EvictRealm drops every entry whose unit is defined by realm.
	EvictRealm(realm domain.InternedString)

	// Len returns the number of entries.
	Len() int
}
