// Package config provides the configuration loader for cpinfer.
package config

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"go.trai.ch/cpinfer/internal/core/domain"
	"go.trai.ch/cpinfer/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// SupportedVersion is the configuration version this loader understands.
const SupportedVersion = "1"

var validRealmNameRegex = regexp.MustCompile("^[a-zA-Z0-9_.-]+$")

// Loader implements ports.ConfigLoader using a YAML file.
type Loader struct {
	Logger ports.Logger
}

// NewLoader creates a new Loader with the given logger.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger}
}

// Load reads the configuration file at path. A relative path is resolved
// against cwd. An empty path searches cwd and its parents for cpinfer.yaml.
func (l *Loader) Load(cwd, path string) (*domain.Workspace, error) {
	configPath, err := l.findConfiguration(cwd, path)
	if err != nil {
		return nil, err
	}

	var file File
	if err := readAndUnmarshalYAML(configPath, &file); err != nil {
		return nil, zerr.With(err, "path", configPath)
	}

	if file.Version != "" && file.Version != SupportedVersion {
		l.Logger.Warn("unknown configuration version", "version", file.Version, "path", configPath)
	}

	ws := &domain.Workspace{
		Root:            resolveRoot(configPath, file.Root),
		DefaultRealm:    domain.NewInternedString(file.DefaultRealm),
		StateDir:        file.StateDir,
		Bootstrap:       file.Bootstrap,
		ArchiveSuffixes: normalizeSuffixes(file.ArchiveSuffixes),
		Realms:          domain.NewRealmGraph(),
	}
	if ws.StateDir == "" {
		ws.StateDir = domain.DefaultStateDir
	}
	if ws.Bootstrap == nil {
		ws.Bootstrap = domain.DefaultBootstrapPackages
	}
	if ws.ArchiveSuffixes == nil {
		ws.ArchiveSuffixes = domain.DefaultArchiveSuffixes
	}

	for name, dto := range file.Realms {
		if err := validateRealmName(name); err != nil {
			return nil, err
		}
		if err := ws.Realms.AddRealm(&domain.RealmSpec{
			Name:      domain.NewInternedString(name),
			Parent:    domain.NewInternedString(dto.Parent),
			Classpath: internStrings(dto.Classpath),
		}); err != nil {
			return nil, err
		}
	}

	if err := ws.Realms.Validate(); err != nil {
		return nil, err
	}

	if err := resolveDefaultRealm(ws); err != nil {
		return nil, err
	}

	return ws, nil
}

func (l *Loader) findConfiguration(cwd, path string) (string, error) {
	if path != "" {
		if !filepath.IsAbs(path) {
			path = filepath.Join(cwd, path)
		}
		return filepath.Clean(path), nil
	}

	currentDir := cwd
	for {
		candidate := filepath.Join(currentDir, domain.ConfigFileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			break
		}
		currentDir = parentDir
	}

	return "", zerr.With(zerr.Wrap(domain.ErrConfigReadFailed, domain.ConfigFileName+" not found"), "cwd", cwd)
}

// resolveDefaultRealm fills in the default realm when only one realm exists
// and checks that a configured default names a defined realm.
func resolveDefaultRealm(ws *domain.Workspace) error {
	if ws.DefaultRealm.String() == "" {
		if ws.Realms.Len() == 1 {
			for spec := range ws.Realms.Walk() {
				ws.DefaultRealm = spec.Name
			}
		}
		return nil
	}
	if _, ok := ws.Realms.Realm(ws.DefaultRealm); !ok {
		return zerr.With(zerr.Wrap(domain.ErrInvalidRealm, "default realm is not defined"),
			"realm", ws.DefaultRealm.String())
	}
	return nil
}

func validateRealmName(name string) error {
	if !validRealmNameRegex.MatchString(name) {
		return zerr.With(zerr.Wrap(domain.ErrInvalidRealm, "realm name contains invalid characters"), "realm", name)
	}
	return nil
}

func resolveRoot(configPath, configuredRoot string) string {
	configDir := filepath.Dir(configPath)
	if configuredRoot == "" {
		return filepath.Clean(configDir)
	}
	if filepath.IsAbs(configuredRoot) {
		return filepath.Clean(configuredRoot)
	}
	return filepath.Clean(filepath.Join(configDir, configuredRoot))
}

// normalizeSuffixes lower-cases suffixes and adds a missing leading dot.
func normalizeSuffixes(suffixes []string) []string {
	if suffixes == nil {
		return nil
	}
	res := make([]string, 0, len(suffixes))
	for _, s := range suffixes {
		s = strings.ToLower(strings.TrimSpace(s))
		if s == "" {
			continue
		}
		if !strings.HasPrefix(s, ".") {
			s = "." + s
		}
		res = append(res, s)
	}
	return res
}

func internStrings(strs []string) []domain.InternedString {
	if len(strs) == 0 {
		return nil
	}
	res := make([]domain.InternedString, len(strs))
	for i, s := range strs {
		res[i] = domain.NewInternedString(s)
	}
	return res
}

// readAndUnmarshalYAML reads a YAML file and unmarshals it into the target struct.
func readAndUnmarshalYAML[T any](configPath string, target *T) error {
	// #nosec G304 -- configPath is provided by the user
	data, err := os.ReadFile(configPath)
	if err != nil {
		return zerr.Wrap(domain.ErrConfigReadFailed, err.Error())
	}

	if err := yaml.Unmarshal(data, target); err != nil {
		return zerr.Wrap(domain.ErrConfigParseFailed, err.Error())
	}

	return nil
}
