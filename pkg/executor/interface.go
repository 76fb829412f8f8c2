package executor

import "context"

// Executor defines the interface for executing external commands
type Executor interface {
	Execute(ctx context.Context, name string, args ...string) (string, error)
	// Open hands path to the desktop's default application.
	Open(ctx context.Context, path string) error
}
