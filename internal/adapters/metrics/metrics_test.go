package metrics_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/cpinfer/internal/adapters/metrics"
	"go.trai.ch/cpinfer/internal/core/domain"
)

func TestPrometheus_Counters(t *testing.T) {
	m := metrics.New()

	m.CacheHit()
	m.CacheMiss()
	m.CacheMiss()
	m.ResourceRead()
	m.ResourceRead()
	m.ResourceRead()
	m.Diagnostic(domain.DiagnosticUnresolvedReference)
	m.Diagnostic(domain.DiagnosticUnresolvedReference)
	m.Diagnostic(domain.DiagnosticMissingResource)
	m.ObserveInference(25 * time.Millisecond)

	expected := `
# HELP cpinfer_cache_hits_total Number of inference calls answered from the cache.
# TYPE cpinfer_cache_hits_total counter
cpinfer_cache_hits_total 1
# HELP cpinfer_cache_misses_total Number of inference calls that ran a traversal.
# TYPE cpinfer_cache_misses_total counter
cpinfer_cache_misses_total 2
# HELP cpinfer_resource_reads_total Number of class files read during traversals.
# TYPE cpinfer_resource_reads_total counter
cpinfer_resource_reads_total 3
# HELP cpinfer_diagnostics_total Number of absorbed traversal failures by kind.
# TYPE cpinfer_diagnostics_total counter
cpinfer_diagnostics_total{kind="missing_resource"} 1
cpinfer_diagnostics_total{kind="unresolved_reference"} 2
`
	require.NoError(t, testutil.GatherAndCompare(m.Registry(), strings.NewReader(expected),
		"cpinfer_cache_hits_total",
		"cpinfer_cache_misses_total",
		"cpinfer_resource_reads_total",
		"cpinfer_diagnostics_total",
	))

	count, err := testutil.GatherAndCount(m.Registry(), "cpinfer_inference_duration_seconds")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestPrometheus_WriteTextfile(t *testing.T) {
	m := metrics.New()
	m.CacheHit()

	path := filepath.Join(t.TempDir(), "cpinfer.prom")
	require.NoError(t, m.WriteTextfile(path))

	data, err := os.ReadFile(path) //nolint:gosec // Test path
	require.NoError(t, err)
	assert.Contains(t, string(data), "cpinfer_cache_hits_total 1")
}

func TestPrometheus_WriteTextfile_BadDir(t *testing.T) {
	m := metrics.New()
	err := m.WriteTextfile(filepath.Join(t.TempDir(), "missing", "cpinfer.prom"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to write metrics")
}
