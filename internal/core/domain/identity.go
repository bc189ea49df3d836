// Package domain contains the core domain models for classpath inference.
package domain

import "strings"

// ClassFileSuffix is the file extension of compiled units.
const ClassFileSuffix = ".class"

// UnitIdentity identifies a loaded unit by its binary name and defining realm.
// Two units with the same name defined by different realms are distinct.
// A zero Realm denotes the bootstrap realm.
type UnitIdentity struct {
	Name  InternedString
	Realm InternedString
}

// NewUnitIdentity creates an identity for the named unit defined by realm.
// An empty realm yields a bootstrap identity.
func NewUnitIdentity(name, realm string) UnitIdentity {
	id := UnitIdentity{Name: NewInternedString(name)}
	if realm != "" {
		id.Realm = NewInternedString(realm)
	}
	return id
}

// IsBootstrap reports whether the unit has no defining realm.
func (u UnitIdentity) IsBootstrap() bool {
	return u.Realm.String() == ""
}

// ResourcePath returns the relative path of the unit's class file,
// e.g. "com/acme/Main.class" for "com.acme.Main".
func (u UnitIdentity) ResourcePath() string {
	return ResourcePathFor(u.Name.String())
}

// String returns "name" for bootstrap units and "name@realm" otherwise.
func (u UnitIdentity) String() string {
	if u.IsBootstrap() {
		return u.Name.String()
	}
	return u.Name.String() + "@" + u.Realm.String()
}

// ResourcePathFor converts a binary class name into its relative resource path.
func ResourcePathFor(name string) string {
	return strings.ReplaceAll(name, ".", "/") + ClassFileSuffix
}
