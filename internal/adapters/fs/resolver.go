package fs

import (
	"path/filepath"

	"go.trai.ch/cpinfer/internal/core/domain"
	"go.trai.ch/cpinfer/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.InputResolver = (*Resolver)(nil)

// Resolver implements the InputResolver interface using filepath.Glob.
type Resolver struct{}

// NewResolver creates a new Resolver.
func NewResolver() *Resolver {
	return &Resolver{}
}

// ResolveInputs expands classpath patterns relative to root. Patterns keep
// their order, since classpath order decides which entry wins; the matches of
// a single glob come back sorted. Duplicates are dropped.
func (r *Resolver) ResolveInputs(inputs []string, root string) ([]string, error) {
	seen := make(map[string]bool)
	result := make([]string, 0, len(inputs))

	for _, input := range inputs {
		path := input
		if !filepath.IsAbs(path) {
			path = filepath.Join(root, input)
		}

		matches, err := filepath.Glob(path)
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, "failed to glob path"), "path", path)
		}
		if len(matches) == 0 {
			return nil, zerr.With(zerr.Wrap(domain.ErrInputNotFound, "no classpath entry matches pattern"), "path", path)
		}

		for _, match := range matches {
			if seen[match] {
				continue
			}
			seen[match] = true
			result = append(result, match)
		}
	}

	return result, nil
}
