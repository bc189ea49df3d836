package realm

import (
	"errors"
	"slices"
	"strings"
	"sync"

	"go.trai.ch/cpinfer/internal/core/domain"
	"go.trai.ch/cpinfer/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.RealmRegistry = (*Registry)(nil)

// Registry holds the realms of the loaded workspace.
type Registry struct {
	resolver ports.InputResolver
	logger   ports.Logger

	mu     sync.RWMutex
	realms map[domain.InternedString]*Realm
	hooks  []func(id domain.InternedString)
}

// NewRegistry creates an empty registry.
func NewRegistry(resolver ports.InputResolver, logger ports.Logger) *Registry {
	return &Registry{
		resolver: resolver,
		logger:   logger,
		realms:   make(map[domain.InternedString]*Realm),
	}
}

// Load builds a realm for every realm of the workspace, parents first, and
// registers it. A realm already registered under the same name is closed and
// evicted. Classpath patterns that match nothing are skipped with a warning.
func (r *Registry) Load(ws *domain.Workspace) error {
	if ws.Realms == nil {
		return nil
	}

	built := make(map[domain.InternedString]*Realm, ws.Realms.Len())
	order := make([]*Realm, 0, ws.Realms.Len())
	for spec := range ws.Realms.Walk() {
		roots, err := r.resolveRoots(spec, ws.Root)
		if err != nil {
			return err
		}

		var parent *Realm
		if spec.HasParent() {
			parent = built[spec.Parent]
		}
		realm := New(spec.Name.String(), parent, roots, ws.Bootstrap, ws.ArchiveSuffixes).WithLogger(r.logger)
		built[spec.Name] = realm
		order = append(order, realm)
	}

	for _, realm := range order {
		r.register(realm)
	}
	return nil
}

// Register adds realm, replacing and evicting any realm with the same name.
func (r *Registry) Register(realm *Realm) {
	r.register(realm)
}

func (r *Registry) register(realm *Realm) {
	r.mu.Lock()
	old, replaced := r.realms[realm.ID()]
	r.realms[realm.ID()] = realm
	hooks := slices.Clone(r.hooks)
	var children []domain.InternedString
	if replaced {
		children = r.descendants(old)
	}
	r.mu.Unlock()

	if replaced {
		r.release(old, children, hooks)
	}
}

// Unregister removes the named realm and evicts it along with every
// registered realm that delegates to it.
func (r *Registry) Unregister(id domain.InternedString) {
	r.mu.Lock()
	old, ok := r.realms[id]
	delete(r.realms, id)
	hooks := slices.Clone(r.hooks)
	var children []domain.InternedString
	if ok {
		children = r.descendants(old)
	}
	r.mu.Unlock()

	if ok {
		r.release(old, children, hooks)
	}
}

// Realm returns the realm registered under id.
func (r *Registry) Realm(id domain.InternedString) (ports.Realm, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	realm, ok := r.realms[id]
	if !ok {
		return nil, zerr.With(zerr.Wrap(domain.ErrRealmNotFound, "realm is not registered"), "realm", id.String())
	}
	return realm, nil
}

// OnEvict registers fn to be called with the name of every replaced or removed
// realm, and of every registered realm whose parent chain includes it.
func (r *Registry) OnEvict(fn func(id domain.InternedString)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.hooks = append(r.hooks, fn)
}

// Close closes and evicts every realm.
func (r *Registry) Close() error {
	r.mu.Lock()
	realms := r.realms
	r.realms = make(map[domain.InternedString]*Realm)
	hooks := slices.Clone(r.hooks)
	r.mu.Unlock()

	var errs []error
	for _, realm := range realms {
		if err := realm.Close(); err != nil {
			errs = append(errs, err)
		}
		for _, fn := range hooks {
			fn(realm.ID())
		}
	}
	return errors.Join(errs...)
}

func (r *Registry) release(old *Realm, children []domain.InternedString, hooks []func(id domain.InternedString)) {
	if err := old.Close(); err != nil {
		r.logger.Warn("failed to close realm", "realm", old.ID().String(), "error", err.Error())
	}
	for _, fn := range hooks {
		fn(old.ID())
		for _, id := range children {
			fn(id)
		}
	}
}

// descendants returns the sorted names of registered realms that delegate to
// ancestor. Callers hold r.mu.
func (r *Registry) descendants(ancestor *Realm) []domain.InternedString {
	var ids []domain.InternedString
	for id, realm := range r.realms {
		for p := realm.parent; p != nil; p = p.parent {
			if p == ancestor {
				ids = append(ids, id)
				break
			}
		}
	}
	slices.SortFunc(ids, func(a, b domain.InternedString) int {
		return strings.Compare(a.String(), b.String())
	})
	return ids
}

func (r *Registry) resolveRoots(spec domain.RealmSpec, root string) ([]domain.ClasspathRoot, error) {
	var roots []domain.ClasspathRoot
	seen := make(map[domain.ClasspathRoot]bool)

	for _, pattern := range spec.Classpath {
		paths, err := r.resolver.ResolveInputs([]string{pattern.String()}, root)
		if errors.Is(err, domain.ErrInputNotFound) {
			r.logger.Warn("classpath entry not found", "realm", spec.Name.String(), "pattern", pattern.String())
			continue
		}
		if err != nil {
			return nil, zerr.With(err, "realm", spec.Name.String())
		}
		for _, p := range paths {
			cr := domain.NewClasspathRoot(p)
			if seen[cr] {
				continue
			}
			seen[cr] = true
			roots = append(roots, cr)
		}
	}
	return roots, nil
}
