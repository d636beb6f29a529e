// Package ports defines the core interfaces for the application.
package ports

import (
	"context"
	"io"

	"go.trai.ch/central/internal/core/domain"
)

// Executor defines the interface for running external commands.
//
//go:generate mockgen -source=executor.go -destination=mocks/mock_executor.go -package=mocks
type Executor interface {
	// Execute runs the command and blocks until it exits.
	// Output is streamed to stdout and stderr as it is produced.
	// It returns an error if the command cannot start or exits non-zero.
	Execute(ctx context.Context, cmd *domain.Command, stdout, stderr io.Writer) error
}
