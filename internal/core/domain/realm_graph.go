package domain

import (
	"cmp"
	"iter"
	"slices"

	"go.trai.ch/zerr"
)

// RealmGraph holds realm definitions linked by their parent relation.
type RealmGraph struct {
	realms    map[InternedString]RealmSpec
	loadOrder []InternedString
}

// NewRealmGraph creates a new empty RealmGraph.
func NewRealmGraph() *RealmGraph {
	return &RealmGraph{
		realms: make(map[InternedString]RealmSpec),
	}
}

// AddRealm adds a realm to the graph.
// It returns an error if a realm with the same name already exists.
func (g *RealmGraph) AddRealm(r *RealmSpec) error {
	if r.Name.String() == "" {
		return zerr.With(zerr.Wrap(ErrInvalidRealm, "realm name is empty"), "parent", r.Parent.String())
	}
	if _, exists := g.realms[r.Name]; exists {
		return zerr.With(zerr.Wrap(ErrRealmAlreadyExists, "duplicate realm"), "realm", r.Name.String())
	}
	g.realms[r.Name] = *r
	return nil
}

// Realm returns the realm with the given name.
func (g *RealmGraph) Realm(name InternedString) (RealmSpec, bool) {
	r, ok := g.realms[name]
	return r, ok
}

// Len returns the number of realms.
func (g *RealmGraph) Len() int {
	return len(g.realms)
}

// Chain returns the realm followed by its ancestors, nearest first.
// It assumes Validate() has been called and returned nil.
func (g *RealmGraph) Chain(name InternedString) []RealmSpec {
	var chain []RealmSpec
	for {
		r, ok := g.realms[name]
		if !ok {
			return chain
		}
		chain = append(chain, r)
		if !r.HasParent() {
			return chain
		}
		name = r.Parent
	}
}

// Validate checks that every parent exists and that parents do not form a cycle.
// It populates the load order (parents before children) if successful.
func (g *RealmGraph) Validate() error {
	g.loadOrder = make([]InternedString, 0, len(g.realms))
	visited := make(map[InternedString]int) // 0: unvisited, 1: visiting, 2: visited
	var path []InternedString

	var visit func(u InternedString) error
	visit = func(u InternedString) error {
		visited[u] = 1
		path = append(path, u)

		realm := g.realms[u]
		if realm.HasParent() {
			parent := realm.Parent
			if _, exists := g.realms[parent]; !exists {
				return zerr.With(zerr.With(zerr.Wrap(ErrMissingParentRealm, "unknown parent"),
					"realm", u.String()), "parent", parent.String())
			}
			if visited[parent] == 1 {
				return g.buildCycleError(path, parent)
			}
			if visited[parent] == 0 {
				if err := visit(parent); err != nil {
					return err
				}
			}
		}

		visited[u] = 2
		path = path[:len(path)-1]
		g.loadOrder = append(g.loadOrder, u)
		return nil
	}

	// Sorted iteration keeps the load order stable across runs.
	names := make([]InternedString, 0, len(g.realms))
	for name := range g.realms {
		names = append(names, name)
	}
	slices.SortFunc(names, func(a, b InternedString) int {
		return cmp.Compare(a.String(), b.String())
	})

	for _, name := range names {
		if visited[name] == 0 {
			if err := visit(name); err != nil {
				return err
			}
		}
	}

	return nil
}

// buildCycleError constructs an error with cycle path metadata.
func (g *RealmGraph) buildCycleError(path []InternedString, parent InternedString) error {
	cyclePath := ""
	startIdx := 0
	for i, node := range path {
		if node == parent {
			startIdx = i
			break
		}
	}
	for i := startIdx; i < len(path); i++ {
		cyclePath += path[i].String() + " -> "
	}
	cyclePath += parent.String()
	return zerr.With(zerr.Wrap(ErrCycleDetected, "realm parents form a cycle"), "cycle", cyclePath)
}

// Walk returns an iterator that yields realms with parents before children.
// It assumes Validate() has been called and returned nil.
func (g *RealmGraph) Walk() iter.Seq[RealmSpec] {
	return func(yield func(RealmSpec) bool) {
		for _, name := range g.loadOrder {
			if !yield(g.realms[name]) {
				return
			}
		}
	}
}
