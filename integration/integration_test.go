//go:build integration

package integration

import (
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	claudesession "github.com/hollis-dev/claude-session-engine"
)

// skipIfCLINotInstalled skips the test if the error indicates the CLI is not found.
func skipIfCLINotInstalled(t *testing.T, err error) {
	t.Helper()

	if _, ok := errors.AsType[*claudesession.CLINotFoundError](err); ok {
		t.Skip("Claude CLI not installed")
	}
}

// contains42 checks if a string contains "42" in various formats.
func contains42(s string) bool {
	lower := strings.ToLower(s)

	return strings.Contains(lower, "42") ||
		strings.Contains(lower, "forty-two") ||
		strings.Contains(lower, "forty two")
}

// captureSink records every display event and queues turn completions so
// tests can block on them.
type captureSink struct {
	mu       sync.Mutex
	lines    []string
	finishes chan bool
}

var _ claudesession.OutputSink = (*captureSink)(nil)

func newCaptureSink() *captureSink {
	return &captureSink{finishes: make(chan bool, 16)}
}

func (s *captureSink) WriteOutput(text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lines = append(s.lines, text)

	return nil
}

func (s *captureSink) FinishOutput(success bool) error {
	select {
	case s.finishes <- success:
	default:
	}

	return nil
}

// text returns everything written so far.
func (s *captureSink) text() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return strings.Join(s.lines, "")
}

func (s *captureSink) lineCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.lines)
}

// awaitTurn blocks until the next turn completes and returns its outcome.
func awaitTurn(t *testing.T, sink *captureSink, timeout time.Duration) bool {
	t.Helper()

	select {
	case success := <-sink.finishes:
		return success
	case <-time.After(timeout):
		t.Fatal("Timeout waiting for turn to complete")

		return false
	}
}

// awaitOutput blocks until the sink has received at least one event.
func awaitOutput(t *testing.T, sink *captureSink, timeout time.Duration) {
	t.Helper()

	deadline := time.Now().Add(timeout)
	for sink.lineCount() == 0 {
		if time.Now().After(deadline) {
			t.Fatal("Timeout waiting for first output event")
		}

		time.Sleep(50 * time.Millisecond)
	}
}
