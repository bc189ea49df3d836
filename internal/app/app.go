// Package app implements the application layer for cpinfer.
package app

import (
	"context"
	"errors"
	"io"
	"os"
	"time"

	"go.trai.ch/cpinfer/internal/core/domain"
	"go.trai.ch/cpinfer/internal/core/ports"
	"go.trai.ch/cpinfer/internal/engine/inferer"
	"go.trai.ch/zerr"
)

// DefaultClasspathEnv is the variable that carries the classpath to workers.
const DefaultClasspathEnv = "CLASSPATH"

// Source says where the classpath of a target came from.
type Source string

const (
	// SourceBootstrap means the target is owned by the bootstrap realm and needs no roots.
	SourceBootstrap Source = "bootstrap"
	// SourceStore means the result was read from the persisted classpath store.
	SourceStore Source = "store"
	// SourceCache means the engine answered from its in-memory cache.
	SourceCache Source = "cache"
	// SourceInferred means the engine traversed the target's references.
	SourceInferred Source = "inferred"
)

// App represents the main application logic.
type App struct {
	configLoader  ports.ConfigLoader
	registry      ports.RealmRegistry
	engine        *inferer.Engine
	fingerprinter ports.Fingerprinter
	verifier      ports.RootVerifier
	store         ports.ClasspathStore
	executor      ports.Executor
	metrics       ports.Metrics
	logger        ports.Logger
	now           func() time.Time
}

// New creates a new App instance.
func New(
	loader ports.ConfigLoader,
	registry ports.RealmRegistry,
	engine *inferer.Engine,
	fingerprinter ports.Fingerprinter,
	verifier ports.RootVerifier,
	store ports.ClasspathStore,
	executor ports.Executor,
	metrics ports.Metrics,
	log ports.Logger,
) *App {
	return &App{
		configLoader:  loader,
		registry:      registry,
		engine:        engine,
		fingerprinter: fingerprinter,
		verifier:      verifier,
		store:         store,
		executor:      executor,
		metrics:       metrics,
		logger:        log,
		now:           time.Now,
	}
}

// WithClock replaces the clock used to timestamp stored records.
// This is primarily used for testing.
func (a *App) WithClock(now func() time.Time) *App {
	a.now = now
	return a
}

// Options configures how the workspace is located and how targets are resolved.
type Options struct {
	// Dir is the directory the configuration is searched from. Defaults to the working directory.
	Dir string
	// ConfigPath is the configuration file. Empty searches Dir and its parents.
	ConfigPath string
	// Realm selects the realm targets are loaded against. Defaults to the workspace default.
	Realm string
	// NoCache bypasses the persisted classpath store.
	NoCache bool
	// MetricsFile, when set, receives the inference metrics in the Prometheus text format.
	MetricsFile string
}

// TargetResult is the classpath contribution of one target.
type TargetResult struct {
	Target      domain.UnitIdentity
	Roots       []string
	Source      Source
	Diagnostics []domain.Diagnostic
}

// Result is the outcome of a classpath request.
type Result struct {
	// Classpath is the union of every target's roots in request order.
	Classpath *domain.ClasspathSet
	Targets   []TargetResult
}

// Classpath infers the union classpath of the named targets.
func (a *App) Classpath(_ context.Context, targets []string, opts Options) (result *Result, err error) {
	if len(targets) == 0 {
		return nil, domain.ErrNoTargetsSpecified
	}

	if opts.MetricsFile != "" {
		defer func() {
			if writeErr := a.metrics.WriteTextfile(opts.MetricsFile); writeErr != nil {
				err = errors.Join(err, writeErr)
			}
		}()
	}

	ws, realm, err := a.load(opts)
	if err != nil {
		return nil, err
	}

	var inputHash string
	noStore := opts.NoCache
	if !noStore {
		inputHash, err = a.fingerprinter.ComputeRealmHash(ws, realm.ID())
		if err != nil {
			a.logger.Warn("bypassing classpath store", "realm", realm.ID().String(), "error", err.Error())
			noStore = true
		}
	}

	result = &Result{Classpath: &domain.ClasspathSet{}}
	for _, name := range targets {
		target, err := a.resolveTarget(ws, realm, name, inputHash, noStore)
		if err != nil {
			return nil, err
		}
		for _, path := range target.Roots {
			result.Classpath.Add(domain.NewClasspathRoot(path))
		}
		result.Targets = append(result.Targets, target)

		a.logger.Info("resolved classpath",
			"target", target.Target.String(),
			"source", string(target.Source),
			"roots", len(target.Roots),
			"diagnostics", len(target.Diagnostics))
	}

	return result, nil
}

// ExecOptions configures Exec.
type ExecOptions struct {
	Options
	// Env is the variable that receives the classpath. Defaults to CLASSPATH.
	Env string
	// WorkDir is the working directory of the worker.
	WorkDir string
	Stdout  io.Writer
	Stderr  io.Writer
}

// Exec infers the classpath of target and spawns command with it in the environment.
func (a *App) Exec(ctx context.Context, target string, command []string, opts ExecOptions) error {
	if len(command) == 0 {
		return domain.ErrNoCommandSpecified
	}

	result, err := a.Classpath(ctx, []string{target}, opts.Options)
	if err != nil {
		return err
	}

	envName := opts.Env
	if envName == "" {
		envName = DefaultClasspathEnv
	}
	stdout, stderr := opts.Stdout, opts.Stderr
	if stdout == nil {
		stdout = os.Stdout
	}
	if stderr == nil {
		stderr = os.Stderr
	}

	env := []string{envName + "=" + result.Classpath.String()}
	cmd := &domain.Command{Args: command, Dir: opts.WorkDir}
	return a.executor.Execute(ctx, cmd, env, stdout, stderr)
}

// Clean removes the persisted classpath store of the workspace.
func (a *App) Clean(_ context.Context, opts Options) error {
	cwd, err := workingDir(opts.Dir)
	if err != nil {
		return err
	}
	ws, err := a.configLoader.Load(cwd, opts.ConfigPath)
	if err != nil {
		return zerr.Wrap(err, "failed to load configuration")
	}

	path := ws.StatePath()
	a.logger.Info("removing classpath store", "path", path)
	if err := os.RemoveAll(path); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to remove classpath store"), "path", path)
	}
	return nil
}

// Close releases the realms and their open archives.
func (a *App) Close() error {
	return a.registry.Close()
}

func (a *App) load(opts Options) (*domain.Workspace, ports.Realm, error) {
	cwd, err := workingDir(opts.Dir)
	if err != nil {
		return nil, nil, err
	}

	ws, err := a.configLoader.Load(cwd, opts.ConfigPath)
	if err != nil {
		return nil, nil, zerr.Wrap(err, "failed to load configuration")
	}

	if err := a.registry.Load(ws); err != nil {
		return nil, nil, zerr.Wrap(err, "failed to load realms")
	}

	name := ws.DefaultRealm
	if opts.Realm != "" {
		name = domain.NewInternedString(opts.Realm)
	}
	if name.String() == "" {
		return nil, nil, zerr.Wrap(domain.ErrRealmNotFound, "no realm selected and no default realm configured")
	}

	realm, err := a.registry.Realm(name)
	if err != nil {
		return nil, nil, err
	}
	return ws, realm, nil
}

func (a *App) resolveTarget(
	ws *domain.Workspace, realm ports.Realm, name, inputHash string, noStore bool,
) (TargetResult, error) {
	unit, err := realm.LoadUnit(name)
	if err != nil {
		return TargetResult{}, zerr.With(err, "target", name)
	}

	result := TargetResult{Target: unit}
	if unit.IsBootstrap() {
		result.Source = SourceBootstrap
		return result, nil
	}

	stateDir := ws.StatePath()
	key := domain.RecordKey(realm.ID().String(), name)

	if !noStore {
		roots, ok := a.storedRoots(stateDir, key, inputHash)
		if ok {
			result.Roots = roots
			result.Source = SourceStore
			return result, nil
		}
	}

	set := &domain.ClasspathSet{}
	report, err := a.engine.InferReport(unit, set)
	if err != nil {
		return TargetResult{}, err
	}

	result.Roots = set.Paths()
	result.Diagnostics = report.Diagnostics
	result.Source = SourceInferred
	if report.Cached {
		result.Source = SourceCache
	}

	if !noStore {
		record := domain.ClasspathRecord{
			Target:    name,
			Realm:     realm.ID().String(),
			InputHash: inputHash,
			Roots:     result.Roots,
			Timestamp: a.now(),
		}
		if err := a.store.Put(stateDir, record); err != nil {
			a.logger.Warn("failed to persist classpath", "target", name, "error", err.Error())
		}
	}

	return result, nil
}

// storedRoots returns the persisted roots of key when they were computed from
// the same inputs and still exist on disk.
func (a *App) storedRoots(stateDir, key, inputHash string) ([]string, bool) {
	record, err := a.store.Get(stateDir, key)
	if err != nil {
		a.logger.Warn("ignoring unreadable classpath record", "key", key, "error", err.Error())
		return nil, false
	}
	if record == nil || record.InputHash != inputHash {
		return nil, false
	}

	ok, err := a.verifier.VerifyRoots(record.Roots)
	if err != nil {
		a.logger.Warn("failed to verify stored classpath", "key", key, "error", err.Error())
		return nil, false
	}
	if !ok {
		a.logger.Debug("stored classpath is stale", "key", key)
		return nil, false
	}
	return record.Roots, true
}

func workingDir(dir string) (string, error) {
	if dir != "" {
		return dir, nil
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", zerr.Wrap(err, "failed to get working directory")
	}
	return cwd, nil
}
