// Package fs provides file system adapters for resolving, walking and hashing classpath entries.
package fs

import (
	"io/fs"
	"iter"
	"path/filepath"
	"slices"
)

// Walker walks classpath directories.
type Walker struct {
	skipDirs []string
}

// NewWalker creates a Walker that never descends into VCS metadata directories.
func NewWalker() *Walker {
	return &Walker{skipDirs: []string{".git", ".jj"}}
}

// WalkFiles yields every regular file below root in lexical order, skipping
// directories and files whose base name matches one of ignores.
// Yielded paths include root.
func (w *Walker) WalkFiles(root string, ignores []string) iter.Seq[string] {
	return func(yield func(string) bool) {
		_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}

			if path != root && w.ignored(d, ignores) {
				if d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}

			if !d.Type().IsRegular() {
				return nil
			}

			if !yield(path) {
				return filepath.SkipAll
			}
			return nil
		})
	}
}

func (w *Walker) ignored(d fs.DirEntry, ignores []string) bool {
	name := d.Name()
	if d.IsDir() && slices.Contains(w.skipDirs, name) {
		return true
	}
	for _, ignore := range ignores {
		if matched, _ := filepath.Match(ignore, name); matched {
			return true
		}
	}
	return false
}
