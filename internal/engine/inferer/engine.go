// Package inferer computes the classpath a compiled unit needs at runtime.
//
// Starting from a unit, the engine locates its class file, records the
// classpath root holding it, and follows every class referenced from the
// constant pool, depth first, until the reachable set is exhausted. Results
// are cached per unit. A single lock serializes all calls.
package inferer

import (
	"errors"
	"io"
	"sync"
	"time"

	"go.trai.ch/cpinfer/internal/core/domain"
	"go.trai.ch/cpinfer/internal/core/ports"
	"go.trai.ch/zerr"
)

// Engine infers classpaths.
type Engine struct {
	registry ports.RealmRegistry
	resolver ports.LocationResolver
	scanner  ports.BinaryScanner
	cache    ports.ClasspathCache
	logger   ports.Logger
	metrics  ports.Metrics

	mu sync.Mutex
}

// NewEngine creates a new Engine.
func NewEngine(
	registry ports.RealmRegistry,
	resolver ports.LocationResolver,
	scanner ports.BinaryScanner,
	cache ports.ClasspathCache,
	logger ports.Logger,
	metrics ports.Metrics,
) *Engine {
	return &Engine{
		registry: registry,
		resolver: resolver,
		scanner:  scanner,
		cache:    cache,
		logger:   logger,
		metrics:  metrics,
	}
}

// Infer adds to dest the classpath roots needed to load target and every unit
// it transitively references. Units that cannot be located are skipped and
// logged. A malformed class file aborts the call, leaving dest untouched.
func (e *Engine) Infer(target domain.UnitIdentity, dest *domain.ClasspathSet) error {
	_, err := e.InferReport(target, dest)
	return err
}

// InferReport behaves like Infer and also returns the absorbed failures.
func (e *Engine) InferReport(target domain.UnitIdentity, dest *domain.ClasspathSet) (domain.Report, error) {
	report := domain.Report{Target: target}
	if target.IsBootstrap() {
		return report, nil
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	start := time.Now()
	defer func() {
		e.metrics.ObserveInference(time.Since(start))
	}()

	if cached, ok := e.cache.Get(target); ok {
		e.metrics.CacheHit()
		dest.Union(cached)
		report.Cached = true
		return report, nil
	}
	e.metrics.CacheMiss()

	t := &traversal{
		engine:  e,
		target:  target,
		visited: make(map[domain.UnitIdentity]struct{}),
		result:  &domain.ClasspathSet{},
	}
	err := t.visit(target)
	report.Diagnostics = t.diagnostics
	if err != nil {
		return report, zerr.With(zerr.Wrap(err, "could not determine the classpath"), "target", target.String())
	}

	e.cache.Put(target, t.result.Clone())
	dest.Union(t.result)
	return report, nil
}

// Forget drops every cached result for units defined by realm.
func (e *Engine) Forget(realm domain.InternedString) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.cache.EvictRealm(realm)
}

// traversal is the state of one top-level call.
type traversal struct {
	engine      *Engine
	target      domain.UnitIdentity
	visited     map[domain.UnitIdentity]struct{}
	result      *domain.ClasspathSet
	diagnostics []domain.Diagnostic
}

// visit adds the root of unit and recurses into its references.
// Only a malformed class file is returned as an error.
func (t *traversal) visit(unit domain.UnitIdentity) error {
	if unit.IsBootstrap() {
		return nil
	}
	if _, ok := t.visited[unit]; ok {
		return nil
	}
	t.visited[unit] = struct{}{}

	realm, err := t.engine.registry.Realm(unit.Realm)
	if err != nil {
		t.diagnose(unit, "", err)
		return nil
	}

	ref, err := realm.FindResource(unit.ResourcePath())
	if err != nil {
		t.diagnose(unit, "", err)
		return nil
	}
	ref.Unit = unit

	root, err := t.engine.resolver.Resolve(ref, realm)
	if err != nil {
		t.diagnose(unit, "", err)
		return nil
	}
	t.result.Add(root)

	data, err := t.read(realm, ref)
	if err != nil {
		t.diagnose(unit, "", err)
		return nil
	}

	self := unit.Name.String()
	for name, err := range t.engine.scanner.Scan(data) {
		if err != nil {
			return zerr.With(err, "unit", unit.String())
		}
		if name == self {
			continue
		}

		dep, err := realm.LoadUnit(name)
		if err != nil {
			t.diagnose(unit, name, err)
			continue
		}
		if err := t.visit(dep); err != nil {
			return err
		}
	}
	return nil
}

func (t *traversal) read(realm ports.Realm, ref domain.ResourceRef) ([]byte, error) {
	rc, err := realm.Open(ref)
	if err != nil {
		return nil, asReadError(err, ref)
	}
	defer rc.Close() //nolint:errcheck // Read-only handle

	t.engine.metrics.ResourceRead()
	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, asReadError(err, ref)
	}
	return data, nil
}

func asReadError(err error, ref domain.ResourceRef) error {
	if errors.Is(err, domain.ErrResourceRead) {
		return err
	}
	return zerr.With(zerr.Wrap(domain.ErrResourceRead, err.Error()), "resource", ref.String())
}

func (t *traversal) diagnose(unit domain.UnitIdentity, reference string, err error) {
	d := domain.Diagnostic{Unit: unit, Reference: reference, Err: err}
	t.diagnostics = append(t.diagnostics, d)
	t.engine.metrics.Diagnostic(d.Kind())

	args := []any{
		"target", t.target.String(),
		"unit", unit.String(),
		"kind", string(d.Kind()),
		"error", err.Error(),
	}
	if reference != "" {
		args = append(args, "reference", reference)
	}
	t.engine.logger.Warn("classpath inference skipped a unit", args...)
}
