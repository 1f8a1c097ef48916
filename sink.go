package claudesession

import (
	"io"
	"sync"

	"github.com/hollis-dev/claude-session-engine/internal/engine"
)

// OutputSink receives display-ready text from a session. The session calls
// both methods and implements neither; the host brings the sink.
//
// WriteOutput delivers one newline-terminated display line. FinishOutput
// marks the end of a turn's output; success is false when the turn ended in
// a stream error, a subprocess death, or a reset. Both are called from the
// session's read-loop goroutine (FinishOutput also from Reset and Close);
// a returned error is logged and the stream continues.
type OutputSink = engine.OutputSink

// WriterSink adapts an io.Writer into an OutputSink for console hosts.
// Writes are serialized; FinishOutput is a no-op.
func WriterSink(w io.Writer) OutputSink {
	return &writerSink{w: w}
}

type writerSink struct {
	mu sync.Mutex
	w  io.Writer
}

var _ OutputSink = (*writerSink)(nil)

func (s *writerSink) WriteOutput(text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := io.WriteString(s.w, text)

	return err
}

func (s *writerSink) FinishOutput(bool) error {
	return nil
}
