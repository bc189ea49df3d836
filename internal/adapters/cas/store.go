// Package cas persists inference results between runs.
package cas

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"go.trai.ch/cpinfer/internal/core/domain"
	"go.trai.ch/cpinfer/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.ClasspathStore = (*Store)(nil)

// recordsDir is the directory below the state directory that holds records.
const recordsDir = "classpaths"

const (
	dirPerm  = 0o750
	filePerm = 0o644
)

// Store implements ports.ClasspathStore using one JSON file per record,
// named after the hash of the record key.
type Store struct{}

// NewStore creates a new Store.
func NewStore() *Store {
	return &Store{}
}

// Get retrieves the record stored under key.
func (s *Store) Get(stateDir, key string) (*domain.ClasspathRecord, error) {
	filename := s.filename(stateDir, key)
	//nolint:gosec // Path is constructed from the state directory and a hashed filename
	data, err := os.ReadFile(filename)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, zerr.With(zerr.Wrap(domain.ErrStoreReadFailed, err.Error()), "key", key)
	}

	var record domain.ClasspathRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, zerr.With(zerr.Wrap(domain.ErrStoreUnmarshalFailed, err.Error()), "key", key)
	}
	return &record, nil
}

// Put stores the record. The file is replaced atomically so concurrent
// readers never see a partial record.
func (s *Store) Put(stateDir string, record domain.ClasspathRecord) error {
	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return zerr.Wrap(domain.ErrStoreMarshalFailed, err.Error())
	}

	filename := s.filename(stateDir, record.Key())
	dir := filepath.Dir(filename)
	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return zerr.With(zerr.Wrap(domain.ErrStoreCreateFailed, err.Error()), "dir", dir)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(filename)+".*")
	if err != nil {
		return zerr.With(zerr.Wrap(domain.ErrStoreWriteFailed, err.Error()), "key", record.Key())
	}
	defer os.Remove(tmp.Name()) //nolint:errcheck // Gone after a successful rename

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return zerr.With(zerr.Wrap(domain.ErrStoreWriteFailed, err.Error()), "key", record.Key())
	}
	if err := tmp.Chmod(filePerm); err != nil {
		_ = tmp.Close()
		return zerr.With(zerr.Wrap(domain.ErrStoreWriteFailed, err.Error()), "key", record.Key())
	}
	if err := tmp.Close(); err != nil {
		return zerr.With(zerr.Wrap(domain.ErrStoreWriteFailed, err.Error()), "key", record.Key())
	}
	if err := os.Rename(tmp.Name(), filename); err != nil {
		return zerr.With(zerr.Wrap(domain.ErrStoreWriteFailed, err.Error()), "key", record.Key())
	}
	return nil
}

func (s *Store) filename(stateDir, key string) string {
	hash := sha256.Sum256([]byte(key))
	return filepath.Join(stateDir, recordsDir, hex.EncodeToString(hash[:])+".json")
}
