package ports

import (
	"time"

	"go.trai.ch/cpinfer/internal/core/domain"
)

// Metrics records inference counters.
type Metrics interface {
	CacheHit()
	CacheMiss()
	ResourceRead()
	Diagnostic(kind domain.DiagnosticKind)
	ObserveInference(d time.Duration)

	// WriteTextfile writes the current values in the Prometheus text format.
	WriteTextfile(path string) error
}
