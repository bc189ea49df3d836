// Package cache memoizes inference results in memory.
package cache

import (
	"sync"

	"go.trai.ch/cpinfer/internal/core/domain"
	"go.trai.ch/cpinfer/internal/core/ports"
)

var _ ports.ClasspathCache = (*Memory)(nil)

// Memory is a ClasspathCache that groups entries by defining realm so that a
// realm's entries can be dropped together once the realm goes away.
type Memory struct {
	mu      sync.RWMutex
	byRealm map[domain.InternedString]map[domain.UnitIdentity]*domain.ClasspathSet
	size    int
}

// NewMemory creates an empty cache.
func NewMemory() *Memory {
	return &Memory{
		byRealm: make(map[domain.InternedString]map[domain.UnitIdentity]*domain.ClasspathSet),
	}
}

// Get returns the set cached for unit.
func (m *Memory) Get(unit domain.UnitIdentity) (*domain.ClasspathSet, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	set, ok := m.byRealm[unit.Realm][unit]
	return set, ok
}

// Put caches set for unit. The first write for a unit wins.
func (m *Memory) Put(unit domain.UnitIdentity, set *domain.ClasspathSet) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entries, ok := m.byRealm[unit.Realm]
	if !ok {
		entries = make(map[domain.UnitIdentity]*domain.ClasspathSet)
		m.byRealm[unit.Realm] = entries
	}
	if _, exists := entries[unit]; exists {
		return
	}
	entries[unit] = set
	m.size++
}

// EvictRealm drops every entry defined by realm.
func (m *Memory) EvictRealm(realm domain.InternedString) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.size -= len(m.byRealm[realm])
	delete(m.byRealm, realm)
}

// Len returns the number of cached units.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.size
}
