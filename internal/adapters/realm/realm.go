// Package realm implements filesystem-backed loading realms.
//
// A realm owns an ordered list of classpath entries (directories or archives)
// and may delegate to a parent realm. Lookups are parent-first, and names under
// a bootstrap package prefix are always defined by the bootstrap realm.
package realm

import (
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/klauspost/compress/zip"
	"go.trai.ch/cpinfer/internal/core/domain"
	"go.trai.ch/cpinfer/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Realm = (*Realm)(nil)

// archive is an opened archive with its entries indexed by name.
type archive struct {
	rc      *zip.ReadCloser
	entries map[string]*zip.File
}

// Realm is a loading context over classpath entries.
type Realm struct {
	id        domain.InternedString
	parent    *Realm
	roots     []domain.ClasspathRoot
	bootstrap []string
	suffixes  []string

	logger ports.Logger

	mu       sync.Mutex
	archives map[domain.ClasspathRoot]*archive
	broken   map[domain.ClasspathRoot]error
}

// New creates a realm over roots. Archive handles are opened on first use.
func New(id string, parent *Realm, roots []domain.ClasspathRoot, bootstrap, suffixes []string) *Realm {
	if suffixes == nil {
		suffixes = domain.DefaultArchiveSuffixes
	}
	return &Realm{
		id:        domain.NewInternedString(id),
		parent:    parent,
		roots:     roots,
		bootstrap: bootstrap,
		suffixes:  suffixes,
		archives:  make(map[domain.ClasspathRoot]*archive),
		broken:    make(map[domain.ClasspathRoot]error),
	}
}

// WithLogger sets the logger that reports archives skipped during lookups.
func (r *Realm) WithLogger(logger ports.Logger) *Realm {
	r.logger = logger
	return r
}

// ID returns the realm's name.
func (r *Realm) ID() domain.InternedString {
	return r.id
}

// Parent returns the realm this realm delegates to, or nil.
func (r *Realm) Parent() *Realm {
	return r.parent
}

// Roots returns the realm's own classpath entries in lookup order.
func (r *Realm) Roots() []domain.ClasspathRoot {
	return r.roots
}

// FindResource locates path in the parent chain first, then in the realm's own entries.
func (r *Realm) FindResource(path string) (domain.ResourceRef, error) {
	if r.parent != nil {
		if ref, err := r.parent.FindResource(path); err == nil {
			return ref, nil
		}
	}

	root, ok, skipped := r.find(path)
	if !ok {
		err := zerr.With(zerr.With(zerr.Wrap(domain.ErrMissingResource, "no classpath entry holds the resource"),
			"resource", path), "realm", r.id.String())
		return domain.ResourceRef{}, withSkipped(err, skipped)
	}

	return domain.ResourceRef{Location: r.locator(root, path), Path: path}, nil
}

// LoadUnit resolves name to the realm that defines it, without reading the unit.
func (r *Realm) LoadUnit(name string) (domain.UnitIdentity, error) {
	if name == "" {
		return domain.UnitIdentity{}, zerr.With(zerr.Wrap(domain.ErrUnresolvedReference, "empty class name"), "realm", r.id.String())
	}
	if r.isBootstrap(name) {
		return domain.NewUnitIdentity(name, ""), nil
	}

	if r.parent != nil {
		if unit, err := r.parent.LoadUnit(name); err == nil {
			return unit, nil
		}
	}

	_, ok, skipped := r.find(domain.ResourcePathFor(name))
	if !ok {
		err := zerr.With(zerr.With(zerr.Wrap(domain.ErrUnresolvedReference, "class not found"),
			"name", name), "realm", r.id.String())
		return domain.UnitIdentity{}, withSkipped(err, skipped)
	}
	return domain.UnitIdentity{Name: domain.NewInternedString(name), Realm: r.id}, nil
}

// Origin returns the classpath entry that defines unit.
func (r *Realm) Origin(unit domain.UnitIdentity) (*url.URL, error) {
	for owner := r; owner != nil; owner = owner.parent {
		if owner.id != unit.Realm {
			continue
		}
		if root, ok, _ := owner.find(unit.ResourcePath()); ok {
			return root.URL(), nil
		}
		break
	}
	return nil, zerr.With(zerr.Wrap(domain.ErrMissingResource, "unit has no origin in this realm"), "unit", unit.String())
}

// Open returns the bytes of a resource located by this realm or one of its ancestors.
func (r *Realm) Open(ref domain.ResourceRef) (io.ReadCloser, error) {
	loc := ref.Location
	if loc == nil {
		return nil, zerr.With(zerr.Wrap(domain.ErrResourceRead, "resource has no location"), "resource", ref.Path)
	}

	switch loc.Scheme {
	case "file":
		f, err := os.Open(filepath.FromSlash(loc.Path))
		if err != nil {
			return nil, zerr.With(zerr.Wrap(domain.ErrResourceRead, err.Error()), "resource", ref.String())
		}
		return f, nil
	case "jar":
		archivePath, entry, ok := strings.Cut(loc.Opaque, "!/")
		archiveURL, err := url.Parse(archivePath)
		if !ok || err != nil {
			return nil, zerr.With(zerr.Wrap(domain.ErrResourceRead, "invalid archive locator"), "resource", ref.String())
		}
		return r.openEntry(domain.NewClasspathRoot(filepath.FromSlash(archiveURL.Path)), entry)
	default:
		return nil, zerr.With(zerr.Wrap(domain.ErrResourceRead, "unsupported scheme"), "resource", ref.String())
	}
}

// Close releases the realm's open archives. The realm stays usable and
// reopens archives on demand.
func (r *Realm) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var first error
	for root, a := range r.archives {
		if err := a.rc.Close(); err != nil && first == nil {
			first = zerr.With(zerr.Wrap(err, "failed to close archive"), "archive", root.String())
		}
	}
	clear(r.archives)
	clear(r.broken)
	return first
}

func (r *Realm) isBootstrap(name string) bool {
	for _, prefix := range r.bootstrap {
		if strings.HasPrefix(name, prefix) {
			return true
		}
	}
	return false
}

// find returns the first own entry that holds path. Archives that cannot be
// opened are skipped; the first such failure is returned alongside.
func (r *Realm) find(path string) (domain.ClasspathRoot, bool, error) {
	var skipped error
	for _, root := range r.roots {
		if r.isArchive(root) {
			a, err := r.archive(root)
			if err != nil {
				if skipped == nil {
					skipped = err
				}
				continue
			}
			if _, ok := a.entries[path]; ok {
				return root, true, nil
			}
			continue
		}

		info, err := os.Stat(filepath.Join(root.String(), filepath.FromSlash(path)))
		if err == nil && info.Mode().IsRegular() {
			return root, true, nil
		}
	}
	return domain.ClasspathRoot{}, false, skipped
}

func withSkipped(err, skipped error) error {
	if skipped == nil {
		return err
	}
	return zerr.With(err, "skipped_archive", skipped.Error())
}

func (r *Realm) isArchive(root domain.ClasspathRoot) bool {
	return domain.HasArchiveSuffix(root.String(), r.suffixes)
}

func (r *Realm) locator(root domain.ClasspathRoot, path string) *url.URL {
	if r.isArchive(root) {
		return &url.URL{Scheme: "jar", Opaque: root.URL().String() + "!/" + path}
	}
	return &url.URL{Scheme: "file", Path: filepath.ToSlash(filepath.Join(root.String(), filepath.FromSlash(path)))}
}

// archive returns the opened archive for root, opening it on first use.
func (r *Realm) archive(root domain.ClasspathRoot) (*archive, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if a, ok := r.archives[root]; ok {
		return a, nil
	}
	if err, ok := r.broken[root]; ok {
		return nil, err
	}

	rc, err := zip.OpenReader(root.String())
	if err != nil {
		wrapped := zerr.With(zerr.Wrap(domain.ErrArchiveOpenFailed, err.Error()), "archive", root.String())
		r.broken[root] = wrapped
		if r.logger != nil {
			r.logger.Warn("skipping unreadable archive", "realm", r.id.String(), "archive", root.String(), "error", err.Error())
		}
		return nil, wrapped
	}
	a := &archive{rc: rc, entries: make(map[string]*zip.File, len(rc.File))}
	for _, f := range rc.File {
		a.entries[f.Name] = f
	}
	r.archives[root] = a
	return a, nil
}

// openEntry opens entry from the archive at root, using the handle of the
// realm in the chain that owns the archive.
func (r *Realm) openEntry(root domain.ClasspathRoot, entry string) (io.ReadCloser, error) {
	for owner := r; owner != nil; owner = owner.parent {
		for _, own := range owner.roots {
			if own != root {
				continue
			}
			a, err := owner.archive(root)
			if err != nil {
				return nil, zerr.Wrap(domain.ErrResourceRead, err.Error())
			}
			f, ok := a.entries[entry]
			if !ok {
				return nil, zerr.With(zerr.With(zerr.Wrap(domain.ErrResourceRead, "archive entry not found"),
					"archive", root.String()), "entry", entry)
			}
			rc, err := f.Open()
			if err != nil {
				return nil, zerr.With(zerr.Wrap(domain.ErrResourceRead, err.Error()), "entry", entry)
			}
			return rc, nil
		}
	}
	return nil, zerr.With(zerr.Wrap(domain.ErrResourceRead, "archive is not on the realm's classpath"), "archive", root.String())
}
