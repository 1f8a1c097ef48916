// Package engine orchestrates one conversational subprocess: it spawns the
// CLI, feeds its stdout through the line/decode/track/format pipeline, and
// pushes display-ready events into the host's output sink.
package engine

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/oklog/ulid/v2"
	"golang.org/x/sync/errgroup"

	"github.com/hollis-dev/claude-session-engine/internal/config"
	"github.com/hollis-dev/claude-session-engine/internal/display"
	"github.com/hollis-dev/claude-session-engine/internal/errors"
	"github.com/hollis-dev/claude-session-engine/internal/message"
	"github.com/hollis-dev/claude-session-engine/internal/session"
	"github.com/hollis-dev/claude-session-engine/internal/stream"
	"github.com/hollis-dev/claude-session-engine/internal/subprocess"
	"github.com/hollis-dev/claude-session-engine/internal/tooltrack"
)

// Engine owns exactly one subprocess, one line assembler, one tool tracker,
// one session state, and the injected output sink.
//
// All inbound handling runs on a single read-loop goroutine per spawn,
// managed by an errgroup. The mutex guards the API boundary: Send, Reset,
// Close, and the accessors on one side, the loop's state mutations on the
// other. The assembler and tracker are touched by the loop while it runs and
// by Reset only after the loop has been joined, so they need no locking of
// their own.
type Engine struct {
	log     *slog.Logger
	options *config.Options
	sink    OutputSink
	spawner config.Spawner

	formatter *display.Formatter
	assembler *stream.Assembler
	tracker   *tooltrack.Tracker

	mu        sync.Mutex
	state     *session.State
	proc      config.Process
	eg        *errgroup.Group
	turnOpen  bool // a sent request has not been answered with FinishOutput yet
	stopping  bool // Reset/Close initiated the current shutdown
	closed    bool
	lastStats *Stats
	closeOnce sync.Once
}

// New creates an engine bound to one output sink.
//
// The logger and spawner come from options; both default (no-op logger,
// real CLI subprocesses). The engine is Idle after creation: the first Send
// spawns the subprocess.
func New(sink OutputSink, options *config.Options) *Engine {
	if options == nil {
		options = &config.Options{}
	}

	log := options.Logger
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	spawner := options.Spawner
	if spawner == nil {
		spawner = subprocess.Spawn
	}

	formatter := display.NewFormatter(options.Icons)

	return &Engine{
		log:       log.With("component", "engine"),
		options:   options,
		sink:      sink,
		spawner:   spawner,
		formatter: formatter,
		assembler: stream.NewAssembler(),
		tracker:   tooltrack.NewTracker(formatter),
		state:     session.NewState(),
	}
}

// Send submits one user message to the conversation.
//
// The first send of a session (and the first after a reset or a subprocess
// death) spawns the subprocess. While a previous request is still awaiting
// its result the session is Waiting and Send rejects with
// ErrOutstandingRequest: requests are strictly one-in-flight. On success the
// session is Waiting and the read loop delivers events to the sink until the
// turn's result arrives.
func (e *Engine) Send(ctx context.Context, text string) error {
	line, err := message.EncodeUserText(text)
	if err != nil {
		return err
	}

	e.mu.Lock()

	if e.closed {
		e.mu.Unlock()

		return errors.ErrSessionClosed
	}

	if e.state.Waiting() {
		e.mu.Unlock()

		return errors.ErrOutstandingRequest
	}

	if e.state.Phase() == session.PhaseIdle {
		if err := e.spawnLocked(ctx); err != nil {
			e.mu.Unlock()

			return err
		}
	}

	// Mark the turn open before the write: with a fast subprocess the
	// result could otherwise be handled before the transition happens.
	e.state.MarkWaiting()
	e.turnOpen = true
	proc := e.proc

	e.mu.Unlock()

	e.log.Debug("Sending user message", "text_len", len(text))

	if err := proc.Send(ctx, line); err != nil {
		e.mu.Lock()
		e.state.FinishTurn()
		e.turnOpen = false
		e.mu.Unlock()

		return fmt.Errorf("send user message: %w", err)
	}

	return nil
}

// spawnLocked starts a subprocess and its read loop. Caller holds e.mu.
func (e *Engine) spawnLocked(ctx context.Context) error {
	runID := ulid.Make().String()
	log := e.log.With("run_id", runID)

	e.state.MarkStarting()

	proc := e.spawner(e.options)

	log.Info("Spawning claude subprocess")

	if err := proc.Start(ctx); err != nil {
		e.state.Reset()

		return fmt.Errorf("spawn subprocess: %w", err)
	}

	e.proc = proc
	e.stopping = false
	e.eg = &errgroup.Group{}

	output := proc.Output()

	e.eg.Go(func() error {
		return e.readLoop(log, proc, output)
	})

	e.state.MarkRunning()

	return nil
}

// readLoop consumes the subprocess stdout until EOF, then reaps the process
// and handles its exit. One loop runs per spawn; the loop's logger carries
// that spawn's run id.
func (e *Engine) readLoop(log *slog.Logger, proc config.Process, output io.Reader) error {
	defer log.Debug("Read loop stopped")

	buf := make([]byte, e.options.BufferSize())

	for {
		n, readErr := output.Read(buf)
		if n > 0 {
			for _, line := range e.assembler.Feed(buf[:n]) {
				if line == "" {
					continue
				}

				e.handleLine(log, line)
			}
		}

		if readErr != nil {
			if !stderrors.Is(readErr, io.EOF) {
				log.Debug("Subprocess output closed", "error", readErr)
			}

			break
		}
	}

	waitErr := proc.Wait()
	e.handleExit(log, proc, waitErr)

	return waitErr
}

// handleLine decodes one stream line and dispatches it. No fault in here may
// terminate the read loop: decode failures are logged and the line dropped,
// sink failures are logged and swallowed.
func (e *Engine) handleLine(log *slog.Logger, line string) {
	msg, err := message.Decode([]byte(line))
	if err != nil {
		log.Warn("Discarding undecodable stream line", "error", err)

		return
	}

	var events []display.Event

	var finished *bool

	e.mu.Lock()

	e.state.CountMessage()

	switch m := msg.(type) {
	case *message.SystemMessage:
		if m.Subtype == "init" && e.state.CaptureConversation(m.SessionID) {
			log.Info("Conversation established", "conversation_id", m.SessionID)
		}

	case *message.AssistantMessage:
		for _, block := range m.Content {
			switch b := block.(type) {
			case *message.TextBlock:
				if b.Text != "" {
					events = append(events, &display.AssistantText{Text: b.Text})
				}
			case *message.ToolUseBlock:
				events = append(events, e.tracker.Register(b))
			}
		}

	case *message.UserMessage:
		for _, block := range m.Content {
			if result, ok := block.(*message.ToolResultBlock); ok {
				if ev, resolved := e.tracker.Resolve(result); resolved {
					events = append(events, ev)
				}
			}
		}

	case *message.ResultMessage:
		e.lastStats = statsFrom(m)

		if text, ok := e.formatter.Performance(m); ok {
			events = append(events, &display.PerformanceSummary{Text: text})
		}

		e.state.FinishTurn()

		if e.turnOpen {
			e.turnOpen = false
			success := true
			finished = &success
		}

	case *message.ErrorMessage:
		events = append(events, &display.SessionError{Text: e.formatter.Error(m.Message)})

		e.state.FinishTurn()

		if e.turnOpen {
			e.turnOpen = false
			success := false
			finished = &success
		}

	case *message.UnknownMessage:
		log.Debug("Ignoring unknown message type", "type", m.RawType)
	}

	e.mu.Unlock()

	for _, ev := range events {
		e.emit(log, ev)
	}

	if finished != nil {
		e.finishOutput(log, *finished)
	}
}

// handleExit reacts to the subprocess ending. A shutdown initiated by Reset
// or Close is silent; an unexpected exit clears all process-scoped state and,
// when a request was outstanding, surfaces a session error to the sink and
// closes the turn as failed.
func (e *Engine) handleExit(log *slog.Logger, proc config.Process, waitErr error) {
	e.mu.Lock()

	if e.stopping {
		e.mu.Unlock()

		log.Debug("Subprocess terminated during shutdown")

		return
	}

	wasWaiting := e.state.Waiting()
	turnOpen := e.turnOpen
	e.turnOpen = false
	e.lastStats = nil
	e.assembler.Reset()
	e.tracker.Reset()
	e.state.Reset()

	e.mu.Unlock()

	if !wasWaiting {
		log.Info("Subprocess exited outside of a turn", "error", waitErr)

		return
	}

	log.Error("Subprocess died with outstanding request",
		"error", waitErr,
		"stderr", proc.Stderr(),
	)

	text := "claude process exited unexpectedly"
	if waitErr != nil {
		text = waitErr.Error()
	}

	e.emit(log, &display.SessionError{Text: e.formatter.Error(text)})

	if turnOpen {
		e.finishOutput(log, false)
	}
}

// emit writes one event to the sink, newline-terminated.
func (e *Engine) emit(log *slog.Logger, ev display.Event) {
	defer func() {
		if r := recover(); r != nil {
			log.Error("Output sink panicked during write", "panic", r)
		}
	}()

	if err := e.sink.WriteOutput(ev.String() + "\n"); err != nil {
		sinkErr := &errors.SinkError{Op: "write", Err: err}
		log.Warn("Output sink write failed", "error", sinkErr, "event_type", ev.EventType())
	}
}

// finishOutput closes the current turn on the sink.
func (e *Engine) finishOutput(log *slog.Logger, success bool) {
	defer func() {
		if r := recover(); r != nil {
			log.Error("Output sink panicked during finish", "panic", r)
		}
	}()

	if err := e.sink.FinishOutput(success); err != nil {
		sinkErr := &errors.SinkError{Op: "finish", Err: err}
		log.Warn("Output sink finish failed", "error", sinkErr)
	}
}

// Reset returns the session to the empty Idle state: the subprocess is
// killed and discarded, the read loop joined, and the assembler, tracker,
// and state cleared. An open turn is closed with FinishOutput(false).
//
// Reset is idempotent; resetting an Idle session is a no-op yielding the
// same empty state. The next Send spawns a fresh subprocess and a new
// conversation.
func (e *Engine) Reset(ctx context.Context) error {
	e.mu.Lock()

	if e.closed {
		e.mu.Unlock()

		return errors.ErrSessionClosed
	}

	e.mu.Unlock()

	return e.reset(ctx)
}

func (e *Engine) reset(_ context.Context) error {
	e.mu.Lock()

	proc := e.proc
	eg := e.eg
	e.proc = nil
	e.eg = nil
	e.stopping = proc != nil

	e.mu.Unlock()

	if proc != nil {
		e.log.Info("Resetting session, killing subprocess")

		if err := proc.Kill(); err != nil {
			e.log.Debug("Kill during reset failed", "error", err)
		}
	}

	if eg != nil {
		if err := eg.Wait(); err != nil {
			e.log.Debug("Read loop ended with error during reset", "error", err)
		}
	}

	e.mu.Lock()

	turnOpen := e.turnOpen
	e.turnOpen = false
	e.stopping = false
	e.lastStats = nil
	e.assembler.Reset()
	e.tracker.Reset()
	e.state.Reset()

	e.mu.Unlock()

	if turnOpen {
		e.finishOutput(e.log, false)
	}

	return nil
}

// Close terminates the session and releases its subprocess.
//
// After Close the session cannot be reused: Send and Reset return
// ErrSessionClosed. Close is safe to call multiple times.
func (e *Engine) Close() error {
	var closeErr error

	e.closeOnce.Do(func() {
		e.mu.Lock()
		e.closed = true
		e.mu.Unlock()

		closeErr = e.reset(context.Background())

		e.log.Info("Session closed")
	})

	return closeErr
}

// Phase returns the current lifecycle phase.
func (e *Engine) Phase() session.Phase {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.state.Phase()
}

// Waiting reports whether a request is outstanding. Hosts drive spinner
// animations from this flag.
func (e *Engine) Waiting() bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.state.Waiting()
}

// ConversationID returns the conversation id captured from the subprocess
// init message, if one has arrived.
func (e *Engine) ConversationID() (string, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.state.ConversationID()
}

// MessageCount returns how many inbound messages decoded successfully since
// the last reset.
func (e *Engine) MessageCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.state.MessageCount()
}

// LastStats returns the metrics of the most recent completed turn. The
// second return is false when no turn has completed since the last reset.
func (e *Engine) LastStats() (Stats, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.lastStats == nil {
		return Stats{}, false
	}

	return *e.lastStats, true
}
