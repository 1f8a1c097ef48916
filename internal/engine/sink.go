package engine

import "github.com/hollis-dev/claude-session-engine/internal/message"

// OutputSink receives display-ready text from the engine. Implementations
// are called from the engine's read-loop goroutine; a returned error is
// logged and the stream continues.
type OutputSink interface {
	// WriteOutput delivers one newline-terminated display line.
	WriteOutput(text string) error

	// FinishOutput marks the end of a turn's output. success is false when
	// the turn ended in a stream error, a subprocess death, or a reset.
	FinishOutput(success bool) error
}

// Stats captures the metrics of one completed turn. Pointer fields are nil
// when the subprocess result omitted the metric.
type Stats struct {
	DurationMs   *float64
	TotalCostUSD *float64
	OutputTokens *int
}

// statsFrom copies the metrics out of a result message so the retained
// stats never alias decoded wire data.
func statsFrom(m *message.ResultMessage) *Stats {
	s := &Stats{}

	if m.DurationMs != nil {
		v := *m.DurationMs
		s.DurationMs = &v
	}

	if m.TotalCostUSD != nil {
		v := *m.TotalCostUSD
		s.TotalCostUSD = &v
	}

	if tokens, ok := m.OutputTokens(); ok {
		s.OutputTokens = &tokens
	}

	return s
}
