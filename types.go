package claudesession

import (
	"github.com/hollis-dev/claude-session-engine/internal/config"
	"github.com/hollis-dev/claude-session-engine/internal/engine"
	"github.com/hollis-dev/claude-session-engine/internal/session"
)

// Re-export the types reachable from the public API.

// ===== Options and Configuration =====

// SessionOptions configures the behavior of one session.
type SessionOptions = config.Options

// DefaultMaxBufferSize is the read buffer size for subprocess stdout chunks
// when no explicit size is configured.
const DefaultMaxBufferSize = config.DefaultMaxBufferSize

// ===== Subprocess Injection =====

// Process is the narrow subprocess interface the session consumes. Tests
// substitute an in-memory fake through WithSpawner.
type Process = config.Process

// Spawner creates the subprocess for a session.
type Spawner = config.Spawner

// ===== Lifecycle =====

// Phase is the lifecycle state of a session's subprocess relationship.
type Phase = session.Phase

const (
	// PhaseIdle means no subprocess is associated with the session.
	PhaseIdle = session.PhaseIdle
	// PhaseStarting means a subprocess spawn has been requested.
	PhaseStarting = session.PhaseStarting
	// PhaseRunning means the subprocess is alive with no outstanding request.
	PhaseRunning = session.PhaseRunning
	// PhaseWaiting means a request was sent and its result has not arrived.
	PhaseWaiting = session.PhaseWaiting
)

// ===== Metrics =====

// Stats captures the metrics of one completed turn. Pointer fields are nil
// when the subprocess result omitted the metric.
type Stats = engine.Stats
