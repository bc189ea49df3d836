package ports

import (
	"context"
	"io"

	"go.trai.ch/cpinfer/internal/core/domain"
)

// Executor spawns worker processes.
//
//go:generate go run go.uber.org/mock/mockgen -source=executor.go -destination=mocks/mock_executor.go -package=mocks
type Executor interface {
	// Execute runs the command with env merged over the current process environment.
	// The env parameter contains environment variables in "KEY=VALUE" format.
	Execute(ctx context.Context, cmd *domain.Command, env []string, stdout, stderr io.Writer) error
}
