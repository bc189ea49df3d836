package ports

import "go.trai.ch/cpinfer/internal/core/domain"

// ClasspathStore persists inference results across runs.
//
//go:generate go run go.uber.org/mock/mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type ClasspathStore interface {
	// Get retrieves the record stored under key in the state directory.
	// Returns nil, nil if not found.
	Get(stateDir, key string) (*domain.ClasspathRecord, error)

	// Put stores the record under its key in the state directory.
	Put(stateDir string, record domain.ClasspathRecord) error
}
