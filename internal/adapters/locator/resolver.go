// Package locator determines the classpath root that contains a resource.
package locator

import (
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zip"
	"go.trai.ch/cpinfer/internal/core/domain"
	"go.trai.ch/cpinfer/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.LocationResolver = (*Resolver)(nil)

// binDir is the conventional output directory probed under a code origin.
const binDir = "bin"

// Resolver maps resource locators to classpath roots.
type Resolver struct {
	logger ports.Logger
}

// NewResolver creates a new Resolver.
func NewResolver(logger ports.Logger) *Resolver {
	return &Resolver{logger: logger}
}

// Resolve returns the classpath root for ref. The locator is interpreted first;
// if its layout is not understood the origin of the unit is probed instead.
func (r *Resolver) Resolve(ref domain.ResourceRef, origins ports.OriginLocator) (domain.ClasspathRoot, error) {
	root, err := fromLocation(ref)
	if err == nil {
		return root, nil
	}

	root, err = fromOrigin(ref, origins)
	if err != nil {
		r.logger.Debug("could not resolve classpath root from origin",
			"unit", ref.Unit.String(),
			"resource", ref.Path,
			"error", err.Error(),
		)
		return domain.ClasspathRoot{}, err
	}
	return root, nil
}

// fromLocation strips the relative path from a file locator or takes the
// archive of a jar locator.
func fromLocation(ref domain.ResourceRef) (domain.ClasspathRoot, error) {
	loc := ref.Location
	if loc == nil {
		return domain.ClasspathRoot{}, unsupported(ref)
	}

	switch loc.Scheme {
	case "file":
		if strings.HasSuffix(loc.Path, "/"+ref.Path) {
			dir := strings.TrimSuffix(loc.Path, ref.Path)
			return domain.NewClasspathRoot(filepath.FromSlash(dir)), nil
		}
	case "jar":
		archive, entry, ok := strings.Cut(jarSpec(loc), "!/")
		if !ok || entry != ref.Path {
			break
		}
		archiveURL, err := url.Parse(archive)
		if err != nil || archiveURL.Scheme != "file" {
			break
		}
		return domain.NewClasspathRoot(filepath.FromSlash(archiveURL.Path)), nil
	}

	return domain.ClasspathRoot{}, unsupported(ref)
}

// jarSpec returns the part of a jar URL after the scheme.
func jarSpec(loc *url.URL) string {
	if loc.Opaque != "" {
		return loc.Opaque
	}
	return strings.TrimPrefix(loc.String(), "jar:")
}

// fromOrigin probes the location the unit was loaded from: an archive holding
// the resource, a directory holding it, or a bin directory below it.
func fromOrigin(ref domain.ResourceRef, origins ports.OriginLocator) (domain.ClasspathRoot, error) {
	if origins == nil {
		return domain.ClasspathRoot{}, unresolvable(ref, nil)
	}

	origin, err := origins.Origin(ref.Unit)
	if err != nil || origin == nil || origin.Scheme != "file" {
		return domain.ClasspathRoot{}, unresolvable(ref, origin)
	}

	path := filepath.FromSlash(origin.Path)
	info, err := os.Stat(path)
	if err != nil {
		return domain.ClasspathRoot{}, unresolvable(ref, origin)
	}

	if info.Mode().IsRegular() {
		if archiveContains(path, ref.Path) {
			return domain.NewClasspathRoot(path), nil
		}
		return domain.ClasspathRoot{}, unresolvable(ref, origin)
	}

	if isFile(filepath.Join(path, filepath.FromSlash(ref.Path))) {
		return domain.NewClasspathRoot(path), nil
	}

	bin := filepath.Join(path, binDir)
	if isFile(filepath.Join(bin, filepath.FromSlash(ref.Path))) {
		return domain.NewClasspathRoot(bin), nil
	}

	return domain.ClasspathRoot{}, unresolvable(ref, origin)
}

func archiveContains(archive, entry string) bool {
	zr, err := zip.OpenReader(archive)
	if err != nil {
		return false
	}
	defer zr.Close() //nolint:errcheck // Read-only handle

	for _, f := range zr.File {
		if f.Name == entry {
			return true
		}
	}
	return false
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

func unsupported(ref domain.ResourceRef) error {
	return zerr.With(zerr.Wrap(domain.ErrUnsupportedLocation, "cannot interpret resource locator"), "location", ref.String())
}

func unresolvable(ref domain.ResourceRef, origin *url.URL) error {
	location := ""
	if origin != nil {
		location = origin.String()
	}
	err := zerr.Wrap(domain.ErrUnresolvableLocation, "cannot determine classpath for resource")
	err = zerr.With(err, "resource", ref.Path)
	return zerr.With(err, "location", location)
}
