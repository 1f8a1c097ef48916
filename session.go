package claudesession

import (
	"context"
	"fmt"

	"github.com/hollis-dev/claude-session-engine/internal/cli"
)

// Session is an interactive, stateful conversation with the Claude CLI.
//
// A session owns at most one subprocess at a time. The first Send spawns it;
// every display-ready event the subprocess produces is pushed to the
// session's OutputSink until the turn completes. Requests are strictly
// one-in-flight: Send while a result is outstanding returns
// ErrOutstandingRequest.
//
// Lifecycle: sessions are single-use. After Close(), create a new session
// with New().
//
// Example usage:
//
//	session, err := claudesession.New(ctx, claudesession.WriterSink(os.Stdout),
//	    claudesession.WithModel("sonnet"),
//	    claudesession.WithPermissionMode("acceptEdits"),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer session.Close()
//
//	if err := session.Send(ctx, "Summarize README.md"); err != nil {
//	    log.Fatal(err)
//	}
//
//	// ... the sink receives progress and text events as they stream in;
//	// poll session.Waiting() to drive a spinner.
type Session interface {
	// Send submits one user message to the conversation. The first send
	// spawns the subprocess. Returns ErrOutstandingRequest while a previous
	// request is still awaiting its result, and ErrSessionClosed after
	// Close.
	Send(ctx context.Context, text string) error

	// Reset returns the session to the empty Idle state: the subprocess is
	// killed and all conversation state discarded. An open turn is closed
	// with FinishOutput(false). The next Send starts a fresh conversation.
	// Reset is idempotent.
	Reset(ctx context.Context) error

	// Close terminates the session and releases its subprocess. After
	// Close the session cannot be reused. Safe to call multiple times.
	Close() error

	// Phase returns the session's lifecycle phase.
	Phase() Phase

	// Waiting reports whether a request is outstanding.
	Waiting() bool

	// ConversationID returns the conversation id captured from the
	// subprocess init message, if one has arrived.
	ConversationID() (string, bool)

	// MessageCount returns how many inbound messages decoded successfully
	// since the last reset.
	MessageCount() int

	// LastStats returns the metrics of the most recent completed turn. The
	// second return is false when no turn has completed since the last
	// reset.
	LastStats() (Stats, bool)
}

// New creates a session bound to one output sink and validates its setup.
//
// Validation fails fast, before any subprocess exists: a missing CLI binary
// returns *CLINotFoundError and a missing credential returns
// ErrNoCredential. The resolved CLI path is pinned so later spawns skip the
// search. Both checks are skipped when WithSpawner injects a custom
// subprocess factory.
//
// The subprocess itself is not spawned until the first Send.
func New(ctx context.Context, sink OutputSink, opts ...Option) (Session, error) {
	if sink == nil {
		return nil, fmt.Errorf("claudesession: output sink must not be nil")
	}

	options, err := buildOptions(opts)
	if err != nil {
		return nil, err
	}

	if options.Spawner == nil {
		discoverer := cli.NewDiscoverer(&cli.Config{
			CLIPath:          options.CLIPath,
			SkipVersionCheck: options.SkipVersionCheck,
			Logger:           options.Logger,
		})

		cliPath, err := discoverer.Discover(ctx)
		if err != nil {
			return nil, err
		}

		// Pin the resolved path; spawns then stat it instead of searching,
		// and the version probe does not run again.
		options.CLIPath = cliPath
		options.SkipVersionCheck = true

		if err := cli.EnsureCredential(options); err != nil {
			return nil, err
		}
	}

	return newSessionImpl(sink, options), nil
}
