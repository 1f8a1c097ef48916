//go:build integration

package integration

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	claudesession "github.com/hollis-dev/claude-session-engine"
)

// TestAsk_Basic tests an end-to-end one-shot turn against the real CLI.
func TestAsk_Basic(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	text, stats, err := claudesession.Ask(ctx, "What is 6 * 7? Reply with just the number.",
		claudesession.WithModel("haiku"),
		claudesession.WithPermissionMode("acceptEdits"),
	)
	if err != nil {
		skipIfCLINotInstalled(t, err)
		t.Fatalf("Ask failed: %v", err)
	}

	t.Logf("Reply:\n%s", text)

	require.True(t, contains42(text), "Reply should contain the answer")
	require.NotNil(t, stats.DurationMs, "Result should carry a duration")

	if stats.TotalCostUSD != nil {
		t.Logf("Cost: $%.6f", *stats.TotalCostUSD)
	}
}

// TestAsk_WithoutIcons tests that disabling icons yields plain text events.
func TestAsk_WithoutIcons(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	text, _, err := claudesession.Ask(ctx, "Say 'hello'",
		claudesession.WithModel("haiku"),
		claudesession.WithoutIcons(),
	)
	if err != nil {
		skipIfCLINotInstalled(t, err)
		t.Fatalf("Ask failed: %v", err)
	}

	t.Logf("Reply:\n%s", text)

	require.NotEmpty(t, text, "Should receive display text")
	require.NotContains(t, text, "⏱️", "Icons should be disabled")

	// The turn summary still appears, just without its emoji prefix.
	require.Contains(t, text, "Completed in", "Should include the turn summary")
}

// TestAsk_InvalidCLIPath tests the typed error for a missing binary.
func TestAsk_InvalidCLIPath(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, _, err := claudesession.Ask(ctx, "test",
		claudesession.WithCLIPath("/nonexistent/path/to/claude"),
	)

	require.Error(t, err)

	notFound, ok := errors.AsType[*claudesession.CLINotFoundError](err)
	require.True(t, ok, "Error should be *CLINotFoundError, got %T", err)
	require.True(t, strings.Contains(notFound.Error(), "/nonexistent/path/to/claude"),
		"Error should name the missing path")
}

// TestAsk_ContextTimeout tests that a one-shot turn respects its context.
func TestAsk_ContextTimeout(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	_, _, err := claudesession.Ask(ctx, "Write a long essay about networking.",
		claudesession.WithModel("haiku"),
	)
	if err != nil {
		skipIfCLINotInstalled(t, err)
		t.Logf("Ask failed (expected with short timeout): %v", err)

		return
	}

	t.Log("Ask completed within the timeout")
}
