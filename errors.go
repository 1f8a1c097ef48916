package claudesession

import "github.com/hollis-dev/claude-session-engine/internal/errors"

// Re-export error types from internal package

// EngineError is the marker interface implemented by all typed errors of
// this module.
type EngineError = errors.EngineError

// CLINotFoundError indicates the Claude CLI binary was not found.
type CLINotFoundError = errors.CLINotFoundError

// DecodeError indicates a stream line failed to decode. The session logs
// and discards these; they never surface through the public API unless a
// host inspects the logs.
type DecodeError = errors.DecodeError

// ProcessError indicates the CLI subprocess failed to spawn or exited
// abnormally.
type ProcessError = errors.ProcessError

// SinkError wraps an output sink failure for logging.
type SinkError = errors.SinkError

// Re-export sentinel errors from internal package.
var (
	// ErrOutstandingRequest indicates a send was attempted while a prior
	// request is still awaiting its result.
	ErrOutstandingRequest = errors.ErrOutstandingRequest

	// ErrSessionClosed indicates the session has been closed and cannot be
	// reused.
	ErrSessionClosed = errors.ErrSessionClosed

	// ErrNoCredential indicates no API credential was configured or present
	// in the environment.
	ErrNoCredential = errors.ErrNoCredential

	// ErrStdinClosed indicates subprocess stdin was closed due to context
	// cancellation.
	ErrStdinClosed = errors.ErrStdinClosed

	// ErrTurnFailed indicates a one-shot turn finished unsuccessfully.
	ErrTurnFailed = errors.ErrTurnFailed
)
