package domain

import (
	"iter"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

// DefaultArchiveSuffixes lists the file extensions treated as archive roots.
var DefaultArchiveSuffixes = []string{".jar", ".zip"}

// ClasspathRoot is a directory or archive that makes units loadable when it is
// placed on a search path.
type ClasspathRoot struct {
	Path InternedString
}

// NewClasspathRoot creates a root from a filesystem path.
func NewClasspathRoot(path string) ClasspathRoot {
	return ClasspathRoot{Path: NewInternedString(filepath.Clean(path))}
}

// String returns the root's filesystem path.
func (r ClasspathRoot) String() string {
	return r.Path.String()
}

// IsArchive reports whether the root is an archive rather than a directory.
func (r ClasspathRoot) IsArchive() bool {
	return HasArchiveSuffix(r.String(), DefaultArchiveSuffixes)
}

// URL returns the root as a file URL.
func (r ClasspathRoot) URL() *url.URL {
	return &url.URL{Scheme: "file", Path: filepath.ToSlash(r.String())}
}

// HasArchiveSuffix reports whether path ends in one of the given suffixes.
func HasArchiveSuffix(path string, suffixes []string) bool {
	lower := strings.ToLower(path)
	for _, suffix := range suffixes {
		if strings.HasSuffix(lower, strings.ToLower(suffix)) {
			return true
		}
	}
	return false
}

// ClasspathSet is an insertion-ordered set of classpath roots.
// The zero value is an empty set ready to use.
type ClasspathSet struct {
	roots []ClasspathRoot
	seen  map[ClasspathRoot]struct{}
}

// NewClasspathSet creates a set holding the given roots in order, dropping duplicates.
func NewClasspathSet(roots ...ClasspathRoot) *ClasspathSet {
	s := &ClasspathSet{}
	for _, root := range roots {
		s.Add(root)
	}
	return s
}

// Add appends root unless it is already present. It reports whether root was added.
func (s *ClasspathSet) Add(root ClasspathRoot) bool {
	if s.seen == nil {
		s.seen = make(map[ClasspathRoot]struct{})
	}
	if _, ok := s.seen[root]; ok {
		return false
	}
	s.seen[root] = struct{}{}
	s.roots = append(s.roots, root)
	return true
}

// Union adds every root of other, keeping other's order for new roots.
func (s *ClasspathSet) Union(other *ClasspathSet) {
	if other == nil {
		return
	}
	for _, root := range other.roots {
		s.Add(root)
	}
}

// Contains reports whether root is in the set.
func (s *ClasspathSet) Contains(root ClasspathRoot) bool {
	_, ok := s.seen[root]
	return ok
}

// Len returns the number of roots.
func (s *ClasspathSet) Len() int {
	return len(s.roots)
}

// All yields the roots in insertion order.
func (s *ClasspathSet) All() iter.Seq[ClasspathRoot] {
	return func(yield func(ClasspathRoot) bool) {
		for _, root := range s.roots {
			if !yield(root) {
				return
			}
		}
	}
}

// Paths returns the root paths in insertion order.
func (s *ClasspathSet) Paths() []string {
	paths := make([]string, len(s.roots))
	for i, root := range s.roots {
		paths[i] = root.String()
	}
	return paths
}

// Clone returns an independent copy of the set.
func (s *ClasspathSet) Clone() *ClasspathSet {
	return NewClasspathSet(s.roots...)
}

// String joins the root paths with the platform path list separator.
func (s *ClasspathSet) String() string {
	return strings.Join(s.Paths(), string(os.PathListSeparator))
}
