package claudesession

import (
	"context"
	"strings"
	"sync"

	"github.com/hollis-dev/claude-session-engine/internal/errors"
)

// Ask runs a single prompt through a throwaway session and returns the
// accumulated display text and the turn's metrics.
//
// It creates a session over a buffering sink, sends the prompt, waits for
// the turn to complete, and closes the session. A turn that finishes
// unsuccessfully returns the text collected so far together with
// ErrTurnFailed; the text then ends with the stream's error line.
//
//	text, stats, err := claudesession.Ask(ctx, "What does this repo do?",
//	    claudesession.WithModel("haiku"),
//	)
func Ask(ctx context.Context, prompt string, opts ...Option) (string, Stats, error) {
	sink := newBufferSink()

	session, err := New(ctx, sink, opts...)
	if err != nil {
		return "", Stats{}, err
	}

	if err := session.Send(ctx, prompt); err != nil {
		_ = session.Close()

		return "", Stats{}, err
	}

	var success bool
	select {
	case success = <-sink.done:
	case <-ctx.Done():
		_ = session.Close()

		return sink.Text(), Stats{}, ctx.Err()
	}

	// Stats are read before Close: closing resets the session state.
	stats, _ := session.LastStats()

	if err := session.Close(); err != nil {
		return sink.Text(), stats, err
	}

	if !success {
		return sink.Text(), stats, errors.ErrTurnFailed
	}

	return sink.Text(), stats, nil
}

// bufferSink accumulates display text in memory and signals turn completion.
type bufferSink struct {
	mu   sync.Mutex
	buf  strings.Builder
	done chan bool
}

var _ OutputSink = (*bufferSink)(nil)

func newBufferSink() *bufferSink {
	return &bufferSink{done: make(chan bool, 1)}
}

func (s *bufferSink) WriteOutput(text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.buf.WriteString(text)

	return nil
}

// FinishOutput signals the first turn completion; later finishes (a close
// after the turn already ended) are dropped.
func (s *bufferSink) FinishOutput(success bool) error {
	select {
	case s.done <- success:
	default:
	}

	return nil
}

func (s *bufferSink) Text() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.buf.String()
}
