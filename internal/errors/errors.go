package errors

import (
	"errors"
	"fmt"
)

// EngineError is the base interface for all engine errors.
type EngineError interface {
	error
	IsEngineError() bool
}

// Compile-time verification that all error types implement EngineError.
var (
	_ EngineError = (*CLINotFoundError)(nil)
	_ EngineError = (*DecodeError)(nil)
	_ EngineError = (*ProcessError)(nil)
	_ EngineError = (*SinkError)(nil)
)

// Sentinel errors for commonly checked conditions.
var (
	// ErrOutstandingRequest indicates a send was attempted while a prior
	// request is still awaiting its result.
	ErrOutstandingRequest = errors.New("outstanding request: session is waiting for a result")

	// ErrSessionClosed indicates the session has been closed and cannot be reused.
	ErrSessionClosed = errors.New("session closed: sessions are single-use, create a new one with New()")

	// ErrNoCredential indicates no API credential was configured or present
	// in the environment.
	ErrNoCredential = errors.New("no credential: set ANTHROPIC_API_KEY or configure an API key")

	// ErrStdinClosed indicates stdin was closed due to context cancellation.
	ErrStdinClosed = errors.New("stdin closed")

	// ErrTurnFailed indicates a one-shot turn finished unsuccessfully: the
	// stream reported an error or the subprocess died mid-turn.
	ErrTurnFailed = errors.New("turn failed")

	// ErrProcessNotStarted indicates an operation was attempted before the
	// subprocess was started.
	ErrProcessNotStarted = errors.New("process not started")
)

// CLINotFoundError indicates the Claude CLI binary was not found.
type CLINotFoundError struct {
	SearchedPaths []string
}

func (e *CLINotFoundError) Error() string {
	return fmt.Sprintf("claude CLI not found in: %v", e.SearchedPaths)
}

// IsEngineError implements EngineError.
func (e *CLINotFoundError) IsEngineError() bool { return true }

// DecodeError indicates a stream line failed to parse as JSON.
// The line is logged and discarded; the stream continues.
// This error preserves the original line that failed to parse.
type DecodeError struct {
	Line string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("failed to decode stream line: %v", e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// IsEngineError implements EngineError.
func (e *DecodeError) IsEngineError() bool { return true }

// ProcessError indicates the subprocess failed to spawn or exited abnormally.
type ProcessError struct {
	ExitCode int
	Stderr   string
	Err      error
}

func (e *ProcessError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("CLI process failed (exit %d): %v", e.ExitCode, e.Err)
	}

	return fmt.Sprintf("CLI process failed (exit %d): %s", e.ExitCode, e.Stderr)
}

func (e *ProcessError) Unwrap() error {
	return e.Err
}

// IsEngineError implements EngineError.
func (e *ProcessError) IsEngineError() bool { return true }

// SinkError wraps a failure raised by an output sink callback. It is caught
// at the call site and logged; processing continues for subsequent events.
type SinkError struct {
	Op  string // "write" or "finish"
	Err error
}

func (e *SinkError) Error() string {
	return fmt.Sprintf("output sink %s failed: %v", e.Op, e.Err)
}

func (e *SinkError) Unwrap() error {
	return e.Err
}

// IsEngineError implements EngineError.
func (e *SinkError) IsEngineError() bool { return true }
