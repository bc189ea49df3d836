package inferer_test

import (
	"bytes"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/klauspost/compress/zip"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/cpinfer/internal/adapters/cache"
	"go.trai.ch/cpinfer/internal/adapters/classfile"
	"go.trai.ch/cpinfer/internal/adapters/classfile/classfiletest"
	"go.trai.ch/cpinfer/internal/adapters/fs"
	"go.trai.ch/cpinfer/internal/adapters/locator"
	"go.trai.ch/cpinfer/internal/adapters/logger"
	"go.trai.ch/cpinfer/internal/adapters/metrics"
	"go.trai.ch/cpinfer/internal/adapters/realm"
	"go.trai.ch/cpinfer/internal/core/domain"
	"go.trai.ch/cpinfer/internal/core/ports"
	"go.trai.ch/cpinfer/internal/engine/inferer"
	"go.trai.ch/zerr"
)

// countingRealm counts the resources it opens.
type countingRealm struct {
	ports.Realm

	mu    sync.Mutex
	opens int
}

func (c *countingRealm) Open(ref domain.ResourceRef) (io.ReadCloser, error) {
	c.mu.Lock()
	c.opens++
	c.mu.Unlock()
	return c.Realm.Open(ref)
}

func (c *countingRealm) Opens() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.opens
}

// fakeRegistry serves a fixed set of realms.
type fakeRegistry struct {
	realms map[domain.InternedString]ports.Realm
}

func (f *fakeRegistry) Load(*domain.Workspace) error { return nil }

func (f *fakeRegistry) Realm(id domain.InternedString) (ports.Realm, error) {
	r, ok := f.realms[id]
	if !ok {
		return nil, zerr.With(zerr.Wrap(domain.ErrRealmNotFound, "realm is not registered"), "realm", id.String())
	}
	return r, nil
}

func (f *fakeRegistry) OnEvict(func(id domain.InternedString)) {}

func (f *fakeRegistry) Close() error { return nil }

type fixture struct {
	root    string
	out     string
	jar     string
	logs    *bytes.Buffer
	metrics *metrics.Prometheus
	cache   *cache.Memory
	lib     *countingRealm
	app     *countingRealm
	engine  *inferer.Engine
}

func writeClass(t *testing.T, dir string, data []byte) {
	t.Helper()
	name, err := classfile.NewScanner().ThisClass(data)
	require.NoError(t, err)
	path := filepath.Join(dir, filepath.FromSlash(domain.ResourcePathFor(name)))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, data, 0o600))
}

func writeJar(t *testing.T, path string, classes ...[]byte) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	f, err := os.Create(path) //nolint:gosec // Test path
	require.NoError(t, err)
	zw := zip.NewWriter(f)
	for _, data := range classes {
		name, err := classfile.NewScanner().ThisClass(data)
		require.NoError(t, err)
		w, err := zw.Create(domain.ResourcePathFor(name))
		require.NoError(t, err)
		_, err = w.Write(data)
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())
}

// newFixture lays out lib (libs/util.jar) and its child app (out/) and wires
// the engine with real adapters.
func newFixture(t *testing.T, appClasses [][]byte, libClasses [][]byte) *fixture {
	t.Helper()
	root := t.TempDir()
	f := &fixture{
		root: root,
		out:  filepath.Join(root, "out"),
		jar:  filepath.Join(root, "libs", "util.jar"),
		logs: &bytes.Buffer{},
	}

	require.NoError(t, os.MkdirAll(f.out, 0o750))
	for _, data := range appClasses {
		writeClass(t, f.out, data)
	}
	writeJar(t, f.jar, libClasses...)

	lib := realm.New("lib", nil, []domain.ClasspathRoot{domain.NewClasspathRoot(f.jar)}, domain.DefaultBootstrapPackages, nil)
	app := realm.New("app", lib, []domain.ClasspathRoot{domain.NewClasspathRoot(f.out)}, domain.DefaultBootstrapPackages, nil)
	t.Cleanup(func() {
		_ = app.Close()
		_ = lib.Close()
	})

	f.lib = &countingRealm{Realm: lib}
	f.app = &countingRealm{Realm: app}
	registry := &fakeRegistry{realms: map[domain.InternedString]ports.Realm{
		lib.ID(): f.lib,
		app.ID(): f.app,
	}}

	log := logger.NewWithWriter(f.logs)
	f.metrics = metrics.New()
	f.cache = cache.NewMemory()
	f.engine = inferer.NewEngine(registry, locator.NewResolver(log), classfile.NewScanner(), f.cache, log, f.metrics)
	return f
}

func (f *fixture) unit(t *testing.T, name string) domain.UnitIdentity {
	t.Helper()
	u, err := f.app.LoadUnit(name)
	require.NoError(t, err)
	return u
}

func (f *fixture) opens() int {
	return f.app.Opens() + f.lib.Opens()
}

func TestEngine_EndToEnd(t *testing.T) {
	f := newFixture(t,
		[][]byte{classfiletest.New("com.acme.Main").Super("java.lang.Object").Ref("com.acme.Util", "java.lang.String").Bytes()},
		[][]byte{classfiletest.Build("com.acme.Util", "java.lang.StringBuilder")},
	)

	dest := &domain.ClasspathSet{}
	report, err := f.engine.InferReport(f.unit(t, "com.acme.Main"), dest)
	require.NoError(t, err)

	assert.Equal(t, []string{f.out, f.jar}, dest.Paths())
	assert.Empty(t, report.Diagnostics)
	assert.False(t, report.Cached)
	assert.Equal(t, 2, f.opens())
}

func TestEngine_Idempotent(t *testing.T) {
	f := newFixture(t,
		[][]byte{classfiletest.Build("com.acme.Main", "com.acme.Util")},
		[][]byte{classfiletest.Build("com.acme.Util")},
	)
	main := f.unit(t, "com.acme.Main")

	first := &domain.ClasspathSet{}
	require.NoError(t, f.engine.Infer(main, first))

	second := &domain.ClasspathSet{}
	report, err := f.engine.InferReport(main, second)
	require.NoError(t, err)
	assert.True(t, report.Cached)
	assert.Equal(t, first.Paths(), second.Paths())

	// Inferring into a set that already holds the result adds nothing.
	require.NoError(t, f.engine.Infer(main, first))
	assert.Equal(t, second.Paths(), first.Paths())
}

func TestEngine_CacheHitSkipsRecomputation(t *testing.T) {
	f := newFixture(t,
		[][]byte{classfiletest.Build("com.acme.Main", "com.acme.Util")},
		[][]byte{classfiletest.Build("com.acme.Util")},
	)
	main := f.unit(t, "com.acme.Main")

	require.NoError(t, f.engine.Infer(main, &domain.ClasspathSet{}))
	reads := f.opens()
	require.Equal(t, 2, reads)

	require.NoError(t, f.engine.Infer(main, &domain.ClasspathSet{}))
	assert.Equal(t, reads, f.opens())

	expected := `
# HELP cpinfer_cache_hits_total Number of inference calls answered from the cache.
# TYPE cpinfer_cache_hits_total counter
cpinfer_cache_hits_total 1
# HELP cpinfer_cache_misses_total Number of inference calls that ran a traversal.
# TYPE cpinfer_cache_misses_total counter
cpinfer_cache_misses_total 1
# HELP cpinfer_resource_reads_total Number of class files read during traversals.
# TYPE cpinfer_resource_reads_total counter
cpinfer_resource_reads_total 2
`
	require.NoError(t, testutil.GatherAndCompare(f.metrics.Registry(), strings.NewReader(expected),
		"cpinfer_cache_hits_total",
		"cpinfer_cache_misses_total",
		"cpinfer_resource_reads_total",
	))
}

func TestEngine_NoDuplicatesAndCycles(t *testing.T) {
	// A and B reference each other and live in the same root; C closes a
	// longer cycle through the parent realm.
	f := newFixture(t,
		[][]byte{
			classfiletest.Build("com.acme.A", "com.acme.B", "com.acme.C"),
			classfiletest.Build("com.acme.B", "com.acme.A"),
		},
		[][]byte{
			classfiletest.Build("com.acme.C", "com.acme.D"),
			classfiletest.Build("com.acme.D", "com.acme.C"),
		},
	)

	dest := &domain.ClasspathSet{}
	report, err := f.engine.InferReport(f.unit(t, "com.acme.A"), dest)
	require.NoError(t, err)
	assert.Equal(t, []string{f.out, f.jar}, dest.Paths())
	assert.Empty(t, report.Diagnostics)

	// Every unit is read exactly once.
	assert.Equal(t, 4, f.opens())
}

func TestEngine_ArraysPrimitivesAndSelf(t *testing.T) {
	f := newFixture(t,
		[][]byte{classfiletest.Build("com.acme.Main",
			"[I",
			"[[J",
			"[Lcom/acme/Main;",
			"[[Lcom/acme/Util;",
		)},
		[][]byte{classfiletest.Build("com.acme.Util")},
	)

	dest := &domain.ClasspathSet{}
	report, err := f.engine.InferReport(f.unit(t, "com.acme.Main"), dest)
	require.NoError(t, err)
	assert.Equal(t, []string{f.out, f.jar}, dest.Paths())
	assert.Empty(t, report.Diagnostics)
	assert.Equal(t, 2, f.opens())
}

func TestEngine_UnresolvedReferenceIsAbsorbed(t *testing.T) {
	f := newFixture(t,
		[][]byte{classfiletest.Build("com.acme.Main", "com.acme.Missing", "com.acme.Util")},
		[][]byte{classfiletest.Build("com.acme.Util")},
	)

	dest := &domain.ClasspathSet{}
	report, err := f.engine.InferReport(f.unit(t, "com.acme.Main"), dest)
	require.NoError(t, err)

	assert.Equal(t, []string{f.out, f.jar}, dest.Paths())
	require.Len(t, report.Diagnostics, 1)
	d := report.Diagnostics[0]
	assert.Equal(t, domain.DiagnosticUnresolvedReference, d.Kind())
	assert.Equal(t, "com.acme.Missing", d.Reference)
	assert.Equal(t, "com.acme.Main@app", d.Unit.String())

	assert.Contains(t, f.logs.String(), "level=WARN")
	assert.Contains(t, f.logs.String(), "reference=com.acme.Missing")
}

func TestEngine_MissingRealmIsAbsorbed(t *testing.T) {
	f := newFixture(t, nil, nil)

	dest := domain.NewClasspathSet(domain.NewClasspathRoot("/already/there"))
	report, err := f.engine.InferReport(domain.NewUnitIdentity("com.acme.Ghost", "ghost"), dest)
	require.NoError(t, err)
	assert.Equal(t, []string{"/already/there"}, dest.Paths())
	require.Len(t, report.Diagnostics, 1)
	assert.Equal(t, domain.DiagnosticRealmNotFound, report.Diagnostics[0].Kind())
}

func TestEngine_MissingResourceIsAbsorbed(t *testing.T) {
	f := newFixture(t, nil, nil)

	dest := &domain.ClasspathSet{}
	report, err := f.engine.InferReport(domain.NewUnitIdentity("com.acme.Gone", "app"), dest)
	require.NoError(t, err)
	assert.Zero(t, dest.Len())
	require.Len(t, report.Diagnostics, 1)
	assert.Equal(t, domain.DiagnosticMissingResource, report.Diagnostics[0].Kind())
}

func TestEngine_BootstrapTarget(t *testing.T) {
	f := newFixture(t, nil, nil)

	dest := &domain.ClasspathSet{}
	report, err := f.engine.InferReport(domain.NewUnitIdentity("java.lang.String", ""), dest)
	require.NoError(t, err)
	assert.Zero(t, dest.Len())
	assert.False(t, report.Cached)
	assert.Zero(t, f.cache.Len())
}

func TestEngine_MalformedBinaryIsFatal(t *testing.T) {
	f := newFixture(t,
		[][]byte{classfiletest.Build("com.acme.Main", "com.acme.Util", "com.acme.Broken")},
		[][]byte{classfiletest.Build("com.acme.Util")},
	)
	broken := filepath.Join(f.out, "com", "acme", "Broken.class")
	require.NoError(t, os.WriteFile(broken, []byte{0xCA, 0xFE, 0xBA, 0xBE, 0, 0}, 0o600))

	dest := domain.NewClasspathSet(domain.NewClasspathRoot("/keep"))
	_, err := f.engine.InferReport(f.unit(t, "com.acme.Main"), dest)
	require.ErrorIs(t, err, domain.ErrMalformedBinary)

	var zErr *zerr.Error
	require.ErrorAs(t, err, &zErr)
	assert.Equal(t, "com.acme.Main@app", zErr.Metadata()["target"])
	assert.Contains(t, err.Error(), "could not determine the classpath")

	assert.Equal(t, []string{"/keep"}, dest.Paths())
	assert.Zero(t, f.cache.Len())

	// The failure is not cached: the next call traverses again.
	_, err = f.engine.InferReport(f.unit(t, "com.acme.Main"), dest)
	require.ErrorIs(t, err, domain.ErrMalformedBinary)
}

func TestEngine_ForgetRecomputes(t *testing.T) {
	f := newFixture(t,
		[][]byte{classfiletest.Build("com.acme.Main")},
		nil,
	)
	main := f.unit(t, "com.acme.Main")

	require.NoError(t, f.engine.Infer(main, &domain.ClasspathSet{}))
	require.Equal(t, 1, f.cache.Len())

	f.engine.Forget(domain.NewInternedString("lib"))
	assert.Equal(t, 1, f.cache.Len())

	f.engine.Forget(domain.NewInternedString("app"))
	assert.Zero(t, f.cache.Len())

	report, err := f.engine.InferReport(main, &domain.ClasspathSet{})
	require.NoError(t, err)
	assert.False(t, report.Cached)
	assert.Equal(t, 2, f.opens())
}

// binRealm reports locators the primary strategy cannot interpret and an
// origin one level above the directory that holds the classes.
type binRealm struct {
	ports.Realm
	project string
}

func (b *binRealm) FindResource(path string) (domain.ResourceRef, error) {
	ref, err := b.Realm.FindResource(path)
	if err != nil {
		return ref, err
	}
	ref.Location = &url.URL{Scheme: "bundleresource", Host: "42", Path: "/" + path}
	return ref, nil
}

func (b *binRealm) Open(ref domain.ResourceRef) (io.ReadCloser, error) {
	inner, err := b.Realm.FindResource(ref.Path)
	if err != nil {
		return nil, err
	}
	return b.Realm.Open(inner)
}

func (b *binRealm) Origin(domain.UnitIdentity) (*url.URL, error) {
	return &url.URL{Scheme: "file", Path: filepath.ToSlash(b.project)}, nil
}

func TestEngine_FallbackToBin(t *testing.T) {
	project := t.TempDir()
	bin := filepath.Join(project, "bin")
	writeClass(t, bin, classfiletest.Build("com.acme.Main", "com.acme.Helper"))
	writeClass(t, bin, classfiletest.Build("com.acme.Helper"))

	inner := realm.New("plugin", nil, []domain.ClasspathRoot{domain.NewClasspathRoot(bin)}, domain.DefaultBootstrapPackages, nil)
	plugin := &binRealm{Realm: inner, project: project}
	registry := &fakeRegistry{realms: map[domain.InternedString]ports.Realm{inner.ID(): plugin}}

	log := logger.NewWithWriter(io.Discard)
	engine := inferer.NewEngine(registry, locator.NewResolver(log), classfile.NewScanner(), cache.NewMemory(), log, metrics.New())

	main, err := plugin.LoadUnit("com.acme.Main")
	require.NoError(t, err)

	dest := &domain.ClasspathSet{}
	report, err := engine.InferReport(main, dest)
	require.NoError(t, err)
	assert.Empty(t, report.Diagnostics)
	assert.Equal(t, []string{bin}, dest.Paths())
}

func TestEngine_ConcurrentCallers(t *testing.T) {
	f := newFixture(t,
		[][]byte{
			classfiletest.Build("com.acme.Main", "com.acme.Util"),
			classfiletest.Build("com.acme.Other", "com.acme.Util"),
		},
		[][]byte{classfiletest.Build("com.acme.Util")},
	)
	targets := []domain.UnitIdentity{f.unit(t, "com.acme.Main"), f.unit(t, "com.acme.Other")}

	var wg sync.WaitGroup
	results := make([][]string, 16)
	for i := range results {
		wg.Go(func() {
			dest := &domain.ClasspathSet{}
			if err := f.engine.Infer(targets[i%2], dest); err != nil {
				t.Error(err)
				return
			}
			results[i] = dest.Paths()
		})
	}
	wg.Wait()

	for _, paths := range results {
		assert.Equal(t, []string{f.out, f.jar}, paths)
	}
	// Each target was traversed once; every later call was a cache hit.
	assert.Equal(t, 4, f.opens())
	assert.Equal(t, 2, f.cache.Len())
}

func TestEngine_RegistryEvictionForgetsRealm(t *testing.T) {
	root := t.TempDir()
	out := filepath.Join(root, "out")
	writeClass(t, out, classfiletest.Build("com.acme.Main"))

	log := logger.NewWithWriter(io.Discard)
	registry := realm.NewRegistry(fs.NewResolver(), log)
	defer registry.Close() //nolint:errcheck // Test cleanup
	memory := cache.NewMemory()
	engine := inferer.NewEngine(registry, locator.NewResolver(log), classfile.NewScanner(), memory, log, metrics.New())
	registry.OnEvict(engine.Forget)

	registry.Register(realm.New("app", nil, []domain.ClasspathRoot{domain.NewClasspathRoot(out)}, nil, nil))
	app, err := registry.Realm(domain.NewInternedString("app"))
	require.NoError(t, err)
	main, err := app.LoadUnit("com.acme.Main")
	require.NoError(t, err)

	dest := &domain.ClasspathSet{}
	require.NoError(t, engine.Infer(main, dest))
	assert.Equal(t, []string{out}, dest.Paths())
	assert.Equal(t, 1, memory.Len())

	registry.Unregister(domain.NewInternedString("app"))
	assert.Zero(t, memory.Len())
}
