// Package claudesession drives interactive conversations with the Claude CLI
// as a supervised subprocess.
//
// A Session owns one CLI process in stream-json mode. Send submits a user
// message; the session decodes the process's output stream, correlates tool
// invocations with their results, and pushes display-ready text (assistant
// replies, tool progress, turn summaries) into an OutputSink the host
// provides. Requests are strictly one-in-flight per session.
//
// # Basic Usage
//
// For a single prompt, use Ask:
//
//	ctx := context.Background()
//	text, stats, err := claudesession.Ask(ctx, "What is 2+2?",
//	    claudesession.WithPermissionMode("acceptEdits"),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Print(text)
//	if stats.TotalCostUSD != nil {
//	    fmt.Printf("cost: $%.4f\n", *stats.TotalCostUSD)
//	}
//
// # Interactive Sessions
//
// For multi-turn conversations, create a session bound to a sink:
//
//	session, err := claudesession.New(ctx, claudesession.WriterSink(os.Stdout),
//	    claudesession.WithModel("sonnet"),
//	    claudesession.WithAllowedTools("Read", "Grep"),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer session.Close()
//
//	if err := session.Send(ctx, "Summarize README.md"); err != nil {
//	    log.Fatal(err)
//	}
//	// output streams into the sink; session.Waiting() reports turn progress
//
// Or use WithSession for automatic lifecycle management:
//
//	err := claudesession.WithSession(ctx, claudesession.WriterSink(os.Stdout),
//	    func(s claudesession.Session) error {
//	        return s.Send(ctx, "Hello Claude")
//	    },
//	)
//
// # Configuration Files
//
// Session defaults can live in a TOML file, layered beneath explicit
// options:
//
//	session, err := claudesession.New(ctx, sink,
//	    claudesession.WithConfigFile("claude.toml"),
//	    claudesession.WithModel("opus"), // overrides the file's model
//	)
//
// # Logging
//
// For detailed operation tracking, use WithLogger:
//
//	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
//	session, err := claudesession.New(ctx, sink,
//	    claudesession.WithLogger(logger),
//	)
//
// # Error Handling
//
// The package provides typed errors for different failure scenarios:
//
//	session, err := claudesession.New(ctx, sink)
//	if err != nil {
//	    if cliErr, ok := errors.AsType[*claudesession.CLINotFoundError](err); ok {
//	        log.Fatalf("Claude CLI not installed, searched: %v", cliErr.SearchedPaths)
//	    }
//	    log.Fatal(err)
//	}
//
//	if err := session.Send(ctx, prompt); errors.Is(err, claudesession.ErrOutstandingRequest) {
//	    // previous turn still running
//	}
//
// # Requirements
//
// The Claude CLI must be installed and available in PATH, with an API key
// in ANTHROPIC_API_KEY. Use WithCLIPath and WithAPIKey to configure both
// explicitly.
package claudesession
