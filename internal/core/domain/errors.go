package domain

import "go.trai.ch/zerr"

var (
	// ErrUnresolvableLocation is returned when no strategy can determine the classpath root of a resource.
	ErrUnresolvableLocation = zerr.New("cannot determine classpath root for resource")

	// ErrUnsupportedLocation is returned when a resource locator has a scheme or layout the primary strategy cannot read.
	ErrUnsupportedLocation = zerr.New("unsupported resource location")

	// ErrMissingResource is returned when a realm has no resource for the expected relative path.
	ErrMissingResource = zerr.New("resource not found")

	// ErrUnresolvedReference is returned when a referenced unit cannot be loaded against a realm.
	ErrUnresolvedReference = zerr.New("unresolved reference")

	// ErrRealmNotFound is returned when an identity names a realm that is not registered.
	ErrRealmNotFound = zerr.New("realm not found")

	// ErrResourceRead is returned when the bytes of a resolved resource cannot be read.
	ErrResourceRead = zerr.New("failed to read resource")

	// ErrMalformedBinary is returned when a class file cannot be parsed.
	ErrMalformedBinary = zerr.New("malformed class file")

	// ErrNoTargetsSpecified is returned when no target classes are given.
	ErrNoTargetsSpecified = zerr.New("no targets specified")

	// ErrUnknownFormat is returned when the classpath output format is not recognized.
	ErrUnknownFormat = zerr.New("unknown output format")

	// ErrNoCommandSpecified is returned when exec is invoked without a command.
	ErrNoCommandSpecified = zerr.New("no command specified")

	// ErrCommandFailed is returned when a spawned command exits unsuccessfully.
	ErrCommandFailed = zerr.New("command failed")

	// ErrConfigReadFailed is returned when the config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the config file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrInvalidRealm is returned when a realm definition is invalid.
	ErrInvalidRealm = zerr.New("invalid realm")

	// ErrRealmAlreadyExists is returned when a realm with the same name is defined twice.
	ErrRealmAlreadyExists = zerr.New("realm already exists")

	// ErrMissingParentRealm is returned when a realm names a parent that is not defined.
	ErrMissingParentRealm = zerr.New("missing parent realm")

	// ErrCycleDetected is returned when realm parents form a cycle.
	ErrCycleDetected = zerr.New("cycle detected")

	// ErrArchiveOpenFailed is returned when an archive on a classpath cannot be opened.
	ErrArchiveOpenFailed = zerr.New("failed to open archive")

	// ErrStoreCreateFailed is returned when the classpath store directory cannot be created.
	ErrStoreCreateFailed = zerr.New("failed to create classpath store directory")

	// ErrStoreReadFailed is returned when a classpath record cannot be read.
	ErrStoreReadFailed = zerr.New("failed to read classpath record")

	// ErrStoreUnmarshalFailed is returned when a classpath record cannot be unmarshaled.
	ErrStoreUnmarshalFailed = zerr.New("failed to unmarshal classpath record")

	// ErrStoreMarshalFailed is returned when a classpath record cannot be marshaled.
	ErrStoreMarshalFailed = zerr.New("failed to marshal classpath record")

	// ErrStoreWriteFailed is returned when a classpath record cannot be written.
	ErrStoreWriteFailed = zerr.New("failed to write classpath record")

	// ErrFileOpenFailed is returned when a file cannot be opened.
	ErrFileOpenFailed = zerr.New("failed to open file")

	// ErrFileHashFailed is returned when hashing a file fails.
	ErrFileHashFailed = zerr.New("failed to hash file content")

	// ErrPathStatFailed is returned when stating a path fails.
	ErrPathStatFailed = zerr.New("failed to stat path")

	// ErrInputNotFound is returned when a classpath pattern matches nothing.
	ErrInputNotFound = zerr.New("input not found")
)
