// Package config provides configuration types for the session engine.
package config

import (
	"context"
	"io"
)

// Process is the engine's view of the CLI subprocess. The default
// implementation spawns the claude binary; tests substitute an in-memory
// fake via Options.Spawner.
type Process interface {
	// Start spawns the subprocess and wires its pipes.
	// It is called at most once per Process.
	Start(ctx context.Context) error

	// Send writes one outbound line to the subprocess stdin, appending the
	// newline terminator. It must be safe for concurrent use and respect
	// context cancellation even during blocking writes.
	Send(ctx context.Context, line []byte) error

	// Output returns the subprocess stdout reader. The engine's read loop
	// consumes raw chunks from it until EOF.
	Output() io.Reader

	// Kill terminates the subprocess immediately. Safe to call multiple
	// times or on an already-dead process.
	Kill() error

	// Wait reaps the subprocess after its output reaches EOF and returns
	// a *errors.ProcessError on abnormal exit, nil otherwise.
	Wait() error

	// Stderr returns the captured stderr tail, trimmed of noise, for
	// error reporting.
	Stderr() string
}

// Spawner creates a Process for one subprocess lifetime. The engine calls
// it on each spawn (first send after Idle).
type Spawner func(options *Options) Process
