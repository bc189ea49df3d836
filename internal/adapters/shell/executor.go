// Package shell provides the process executor adapter.
package shell

import (
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"slices"
	"strings"

	"go.trai.ch/cpinfer/internal/core/domain"
	"go.trai.ch/cpinfer/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Executor = (*Executor)(nil)

// Executor implements ports.Executor using os/exec.
type Executor struct {
	logger ports.Logger
}

// NewExecutor creates a new Executor.
func NewExecutor(logger ports.Logger) *Executor {
	return &Executor{
		logger: logger,
	}
}

// Execute runs the command with the specified environment.
// It merges environments with the following priority (low to high):
// 1. os.Environ()
// 2. env (the inferred classpath variables)
// 3. cmd.Env (user-defined overrides)
func (e *Executor) Execute(
	ctx context.Context, cmd *domain.Command, env []string, stdout, stderr io.Writer,
) error {
	if len(cmd.Args) == 0 {
		return domain.ErrNoCommandSpecified
	}

	name := cmd.Args[0]
	args := cmd.Args[1:]

	cmdEnv := resolveEnvironment(os.Environ(), env, cmd.Env)

	// Resolve the executable against the PATH of the merged environment.
	executable := name
	if !filepath.IsAbs(name) && !strings.ContainsRune(name, filepath.Separator) {
		if lp, err := lookPath(name, cmdEnv); err == nil {
			executable = lp
		}
	}

	proc := exec.CommandContext(ctx, executable, args...) //nolint:gosec // user provided command

	// exec.CommandContext sets Args[0] to the executable path.
	// Keep the name as invoked.
	if len(proc.Args) > 0 {
		proc.Args[0] = name
	}

	if cmd.Dir != "" {
		proc.Dir = cmd.Dir
	}
	proc.Env = cmdEnv
	proc.Stdin = os.Stdin
	proc.Stdout = stdout
	proc.Stderr = stderr

	e.logger.Debug("spawning worker", "command", strings.Join(cmd.Args, " "), "dir", proc.Dir)

	if err := proc.Run(); err != nil {
		exitCode := -1
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			exitCode = exitErr.ExitCode()
		}
		return zerr.With(zerr.With(zerr.Wrap(domain.ErrCommandFailed, err.Error()),
			"command", name), "exit_code", exitCode)
	}

	return nil
}

// resolveEnvironment merges environment variables with the defined priority.
// The result is sorted by key.
func resolveEnvironment(sysEnv, inferredEnv []string, cmdEnv map[string]string) []string {
	envMap := make(map[string]string)
	for _, entries := range [][]string{sysEnv, inferredEnv} {
		for _, entry := range entries {
			if k, v, ok := strings.Cut(entry, "="); ok {
				envMap[k] = v
			}
		}
	}

	for k, v := range cmdEnv {
		envMap[k] = v
	}

	result := make([]string, 0, len(envMap))
	for k, v := range envMap {
		result = append(result, k+"="+v)
	}
	slices.Sort(result)
	return result
}

// lookPath searches for an executable in the directories named by the PATH environment variable.
func lookPath(file string, env []string) (string, error) {
	var path string
	for _, e := range env {
		if v, ok := strings.CutPrefix(e, "PATH="); ok {
			path = v
			break
		}
	}

	if path == "" {
		return "", exec.ErrNotFound
	}

	for _, dir := range filepath.SplitList(path) {
		if dir == "" {
			// Unix shell semantics: path element "" means "."
			dir = "."
		}
		candidate := filepath.Join(dir, file)
		if err := findExecutable(candidate); err == nil {
			return candidate, nil
		}
	}
	return "", exec.ErrNotFound
}

func findExecutable(file string) error {
	d, err := os.Stat(file)
	if err != nil {
		return err
	}
	if m := d.Mode(); !m.IsDir() && m&0o111 != 0 {
		return nil
	}
	return os.ErrPermission
}
