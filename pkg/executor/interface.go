// Package executor runs external tools such as ffmpeg.
package executor

import "context"

// Executor defines the interface for executing external commands
type Executor interface {
	// Execute runs name with args and returns its stdout.
	Execute(ctx context.Context, name string, args ...string) (string, error)
}
