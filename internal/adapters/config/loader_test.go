package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/cpinfer/internal/adapters/config"
	"go.trai.ch/cpinfer/internal/core/domain"
	"go.trai.ch/cpinfer/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, domain.ConfigFileName)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func newLoader(t *testing.T) (*config.Loader, *mocks.MockLogger) {
	t.Helper()
	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	return config.NewLoader(log), log
}

func TestLoad_Success(t *testing.T) {
	tmpDir := t.TempDir()
	writeConfig(t, tmpDir, `
version: "1"
default_realm: app
realms:
  lib:
    classpath: ["libs/*.jar"]
  app:
    parent: lib
    classpath: ["build/classes", "out"]
`)
	loader, _ := newLoader(t)

	ws, err := loader.Load(tmpDir, domain.ConfigFileName)
	require.NoError(t, err)

	assert.Equal(t, tmpDir, ws.Root)
	assert.Equal(t, "app", ws.DefaultRealm.String())
	assert.Equal(t, domain.DefaultStateDir, ws.StateDir)
	assert.Equal(t, domain.DefaultBootstrapPackages, ws.Bootstrap)
	assert.Equal(t, domain.DefaultArchiveSuffixes, ws.ArchiveSuffixes)
	assert.Equal(t, filepath.Join(tmpDir, ".cpinfer"), ws.StatePath())

	order := make([]string, 0, 2)
	for spec := range ws.Realms.Walk() {
		order = append(order, spec.Name.String())
	}
	assert.Equal(t, []string{"lib", "app"}, order)

	app, ok := ws.Realms.Realm(domain.NewInternedString("app"))
	require.True(t, ok)
	assert.Equal(t, "lib", app.Parent.String())
	require.Len(t, app.Classpath, 2)
	assert.Equal(t, "build/classes", app.Classpath[0].String())
	assert.Equal(t, "out", app.Classpath[1].String())
}

func TestLoad_ExplicitSettings(t *testing.T) {
	tmpDir := t.TempDir()
	stateDir := filepath.Join(t.TempDir(), "state")
	writeConfig(t, tmpDir, `
version: "1"
root: workspace
state_dir: `+stateDir+`
bootstrap: ["java."]
archive_suffixes: ["JAR", ".war", ""]
realms:
  app:
    classpath: ["out"]
`)
	loader, _ := newLoader(t)

	ws, err := loader.Load(tmpDir, "")
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(tmpDir, "workspace"), ws.Root)
	assert.Equal(t, stateDir, ws.StatePath())
	assert.Equal(t, []string{"java."}, ws.Bootstrap)
	assert.Equal(t, []string{".jar", ".war"}, ws.ArchiveSuffixes)
	assert.Equal(t, "app", ws.DefaultRealm.String(), "a single realm becomes the default")
}

func TestLoad_Discovery(t *testing.T) {
	tmpDir := t.TempDir()
	writeConfig(t, tmpDir, `
realms:
  app:
    classpath: ["out"]
`)
	nested := filepath.Join(tmpDir, "src", "main")
	require.NoError(t, os.MkdirAll(nested, 0o750))
	loader, _ := newLoader(t)

	ws, err := loader.Load(nested, "")
	require.NoError(t, err)
	assert.Equal(t, tmpDir, ws.Root)
}

func TestLoad_DiscoveryNotFound(t *testing.T) {
	loader, _ := newLoader(t)

	_, err := loader.Load(t.TempDir(), "")
	require.ErrorIs(t, err, domain.ErrConfigReadFailed)
}

func TestLoad_MissingFile(t *testing.T) {
	loader, _ := newLoader(t)

	_, err := loader.Load(t.TempDir(), "missing.yaml")
	require.ErrorIs(t, err, domain.ErrConfigReadFailed)
}

func TestLoad_InvalidYAML(t *testing.T) {
	tmpDir := t.TempDir()
	writeConfig(t, tmpDir, "realms: [unclosed")
	loader, _ := newLoader(t)

	_, err := loader.Load(tmpDir, domain.ConfigFileName)
	require.ErrorIs(t, err, domain.ErrConfigParseFailed)
}

func TestLoad_UnknownVersionWarns(t *testing.T) {
	tmpDir := t.TempDir()
	path := writeConfig(t, tmpDir, `
version: "2"
realms:
  app: {}
`)
	loader, log := newLoader(t)
	log.EXPECT().Warn("unknown configuration version", "version", "2", "path", path)

	_, err := loader.Load(tmpDir, domain.ConfigFileName)
	require.NoError(t, err)
}

func TestLoad_InvalidRealms(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    error
	}{
		{
			name: "missing parent",
			content: `
realms:
  app: { parent: lib }
`,
			want: domain.ErrMissingParentRealm,
		},
		{
			name: "cycle",
			content: `
realms:
  a: { parent: b }
  b: { parent: a }
`,
			want: domain.ErrCycleDetected,
		},
		{
			name: "invalid name",
			content: `
realms:
  "a/b": {}
`,
			want: domain.ErrInvalidRealm,
		},
		{
			name: "unknown default realm",
			content: `
default_realm: test
realms:
  app: {}
`,
			want: domain.ErrInvalidRealm,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpDir := t.TempDir()
			writeConfig(t, tmpDir, tt.content)
			loader, _ := newLoader(t)

			_, err := loader.Load(tmpDir, domain.ConfigFileName)
			require.ErrorIs(t, err, tt.want)
		})
	}
}
