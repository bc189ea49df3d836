package domain

import "errors"

// DiagnosticKind classifies a non-fatal traversal failure.
type DiagnosticKind string

const (
	// DiagnosticUnresolvableLocation means no classpath root could be determined for a resource.
	DiagnosticUnresolvableLocation DiagnosticKind = "unresolvable_location"
	// DiagnosticMissingResource means a realm had no resource for a unit.
	DiagnosticMissingResource DiagnosticKind = "missing_resource"
	// DiagnosticUnresolvedReference means a referenced unit could not be loaded.
	DiagnosticUnresolvedReference DiagnosticKind = "unresolved_reference"
	// DiagnosticRealmNotFound means a unit named a realm that is not registered.
	DiagnosticRealmNotFound DiagnosticKind = "realm_not_found"
	// DiagnosticResourceRead means a resource was found but its bytes could not be read.
	DiagnosticResourceRead DiagnosticKind = "resource_read"
	// DiagnosticOther covers any failure outside the taxonomy above.
	DiagnosticOther DiagnosticKind = "other"
)

// Diagnostic records a failure that was absorbed during a traversal.
// Reference is set when the failure concerns a unit referenced by Unit.
type Diagnostic struct {
	Unit      UnitIdentity
	Reference string
	Err       error
}

// Kind classifies the diagnostic by its error.
func (d Diagnostic) Kind() DiagnosticKind {
	switch {
	case errors.Is(d.Err, ErrUnresolvableLocation):
		return DiagnosticUnresolvableLocation
	case errors.Is(d.Err, ErrMissingResource):
		return DiagnosticMissingResource
	case errors.Is(d.Err, ErrUnresolvedReference):
		return DiagnosticUnresolvedReference
	case errors.Is(d.Err, ErrRealmNotFound):
		return DiagnosticRealmNotFound
	case errors.Is(d.Err, ErrResourceRead):
		return DiagnosticResourceRead
	default:
		return DiagnosticOther
	}
}

// Report describes the outcome of one inference call.
type Report struct {
	Target      UnitIdentity
	Diagnostics []Diagnostic
	// Cached is true when the result came from the cache and no traversal ran.
	Cached bool
}
