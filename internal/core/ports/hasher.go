package ports

import "go.trai.ch/cpinfer/internal/core/domain"

// Fingerprinter computes a content hash over the classpath a realm can see.
//
//go:generate go run go.uber.org/mock/mockgen -source=hasher.go -destination=mocks/mock_hasher.go -package=mocks
type Fingerprinter interface {
	// ComputeRealmHash hashes the classpath entries of realm and its ancestors.
	ComputeRealmHash(ws *domain.Workspace, realm domain.InternedString) (string, error)
}
