package claudesession

import (
	"context"

	"github.com/hollis-dev/claude-session-engine/internal/config"
	"github.com/hollis-dev/claude-session-engine/internal/engine"
)

// sessionImpl wraps the internal engine to adapt it to the public interface.
type sessionImpl struct {
	engine *engine.Engine
}

// Compile-time check that *sessionImpl implements the Session interface.
var _ Session = (*sessionImpl)(nil)

// newSessionImpl creates the internal engine implementation.
func newSessionImpl(sink OutputSink, options *config.Options) Session {
	return &sessionImpl{engine: engine.New(sink, options)}
}

// Send submits one user message to the conversation.
func (s *sessionImpl) Send(ctx context.Context, text string) error {
	return s.engine.Send(ctx, text)
}

// Reset returns the session to the empty Idle state.
func (s *sessionImpl) Reset(ctx context.Context) error {
	return s.engine.Reset(ctx)
}

// Close terminates the session and releases its subprocess.
func (s *sessionImpl) Close() error {
	return s.engine.Close()
}

// Phase returns the session's lifecycle phase.
func (s *sessionImpl) Phase() Phase {
	return s.engine.Phase()
}

// Waiting reports whether a request is outstanding.
func (s *sessionImpl) Waiting() bool {
	return s.engine.Waiting()
}

// ConversationID returns the conversation id captured from the subprocess
// init message, if one has arrived.
func (s *sessionImpl) ConversationID() (string, bool) {
	return s.engine.ConversationID()
}

// MessageCount returns how many inbound messages decoded successfully since
// the last reset.
func (s *sessionImpl) MessageCount() int {
	return s.engine.MessageCount()
}

// LastStats returns the metrics of the most recent completed turn.
func (s *sessionImpl) LastStats() (Stats, bool) {
	return s.engine.LastStats()
}
