package claudesession

import (
	"context"
	"fmt"
)

// WithSession manages session lifecycle with automatic cleanup.
//
// It creates a session bound to sink with the provided options, executes the
// callback, and ensures cleanup via Close() when done.
//
// The callback receives a fully validated Session that is ready for use.
// If the callback returns an error, it is returned to the caller.
// If Close() fails, a warning is logged but does not override the callback's
// error.
//
// Example usage:
//
//	err := claudesession.WithSession(ctx, claudesession.WriterSink(os.Stdout),
//	    func(s claudesession.Session) error {
//	        return s.Send(ctx, "Hello")
//	    },
//	    claudesession.WithPermissionMode("acceptEdits"),
//	)
func WithSession(ctx context.Context, sink OutputSink, fn func(Session) error, opts ...Option) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}

	options := applySessionOptions(opts)

	log := options.Logger
	if log == nil {
		log = NopLogger()
	}

	session, err := New(ctx, sink, opts...)
	if err != nil {
		return fmt.Errorf("failed to start session: %w", err)
	}

	defer func() {
		if closeErr := session.Close(); closeErr != nil {
			log.Warn("failed to close session", "error", closeErr)
		}
	}()

	return fn(session)
}
