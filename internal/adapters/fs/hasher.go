package fs

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/cpinfer/internal/core/domain"
	"go.trai.ch/cpinfer/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

var _ ports.Fingerprinter = (*Hasher)(nil)

// Hasher fingerprints the classpath a realm can see.
type Hasher struct {
	walker   *Walker
	resolver *Resolver
}

// NewHasher creates a new Hasher.
func NewHasher(walker *Walker, resolver *Resolver) *Hasher {
	return &Hasher{walker: walker, resolver: resolver}
}

// ComputeFileHash computes the XXHash of a file's content.
func (h *Hasher) ComputeFileHash(path string) (uint64, error) {
	f, err := os.Open(path) //nolint:gosec // Path comes from the workspace config
	if err != nil {
		return 0, zerr.With(zerr.Wrap(domain.ErrFileOpenFailed, err.Error()), "path", path)
	}
	defer f.Close() //nolint:errcheck // Best effort close in defer

	digest := xxhash.New()
	if _, err := io.Copy(digest, f); err != nil {
		return 0, zerr.With(zerr.Wrap(domain.ErrFileHashFailed, err.Error()), "path", path)
	}
	return digest.Sum64(), nil
}

// ComputeRealmHash hashes the lookup settings of the workspace together with
// the content of every classpath entry of realm and its ancestors. Patterns
// that match nothing contribute their text, so creating the entry later
// changes the hash.
func (h *Hasher) ComputeRealmHash(ws *domain.Workspace, realm domain.InternedString) (string, error) {
	chain := ws.Realms.Chain(realm)
	if len(chain) == 0 {
		return "", zerr.With(zerr.Wrap(domain.ErrRealmNotFound, "cannot fingerprint realm"), "realm", realm.String())
	}

	digest := xxhash.New()
	for _, prefix := range ws.Bootstrap {
		writeField(digest, prefix)
	}
	writeField(digest, "")
	for _, suffix := range ws.ArchiveSuffixes {
		writeField(digest, suffix)
	}
	writeField(digest, "")

	for _, spec := range chain {
		writeField(digest, spec.Name.String())

		var paths []string
		for _, pattern := range spec.Classpath {
			matches, err := h.resolver.ResolveInputs([]string{pattern.String()}, ws.Root)
			if errors.Is(err, domain.ErrInputNotFound) {
				writeField(digest, "missing:"+pattern.String())
				continue
			}
			if err != nil {
				return "", err
			}
			paths = append(paths, matches...)
		}

		hashes, err := h.hashEntries(paths)
		if err != nil {
			return "", err
		}
		for i, path := range paths {
			writeField(digest, path)
			if err := binary.Write(digest, binary.LittleEndian, hashes[i]); err != nil {
				return "", zerr.Wrap(err, "failed to write hash to digest")
			}
		}
		writeField(digest, "")
	}

	return fmt.Sprintf("%016x", digest.Sum64()), nil
}

// hashEntries hashes classpath entries concurrently, keeping their order.
func (h *Hasher) hashEntries(paths []string) ([]uint64, error) {
	hashes := make([]uint64, len(paths))

	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, path := range paths {
		g.Go(func() error {
			sum, err := h.hashEntry(path)
			hashes[i] = sum
			return err
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return hashes, nil
}

// hashEntry hashes an archive by content and a directory by the relative
// paths and content of its files.
func (h *Hasher) hashEntry(path string) (uint64, error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, zerr.With(zerr.Wrap(domain.ErrPathStatFailed, err.Error()), "path", path)
	}
	if !info.IsDir() {
		return h.ComputeFileHash(path)
	}

	digest := xxhash.New()
	for file := range h.walker.WalkFiles(path, []string{domain.DefaultStateDir}) {
		rel, err := filepath.Rel(path, file)
		if err != nil {
			return 0, zerr.With(zerr.Wrap(err, "failed to relativize path"), "path", file)
		}
		writeField(digest, filepath.ToSlash(rel))

		sum, err := h.ComputeFileHash(file)
		if err != nil {
			return 0, err
		}
		if err := binary.Write(digest, binary.LittleEndian, sum); err != nil {
			return 0, zerr.Wrap(err, "failed to write hash to digest")
		}
	}
	return digest.Sum64(), nil
}

func writeField(digest *xxhash.Digest, s string) {
	_, _ = digest.WriteString(s)
	_, _ = digest.Write([]byte{0})
}
