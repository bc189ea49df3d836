package fs

import (
	"os"

	"go.trai.ch/cpinfer/internal/core/domain"
	"go.trai.ch/zerr"
)

// Verifier checks that persisted classpath roots still exist.
type Verifier struct{}

// NewVerifier creates a new Verifier.
func NewVerifier() *Verifier {
	return &Verifier{}
}

// VerifyRoots reports whether every path exists.
func (v *Verifier) VerifyRoots(paths []string) (bool, error) {
	for _, path := range paths {
		if _, err := os.Stat(path); err != nil {
			if os.IsNotExist(err) {
				return false, nil
			}
			return false, zerr.With(zerr.Wrap(domain.ErrPathStatFailed, err.Error()), "path", path)
		}
	}
	return true, nil
}
