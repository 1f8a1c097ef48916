package subprocess

import (
	"bufio"
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"strings"
	"sync"
	"time"

	"github.com/hollis-dev/claude-session-engine/internal/cli"
	"github.com/hollis-dev/claude-session-engine/internal/config"
	"github.com/hollis-dev/claude-session-engine/internal/errors"
)

// maxStderrBufferSize is the maximum size for the stderr capture buffer.
// Stderr draining continues indefinitely (the callback receives all lines),
// but the buffer stops growing after this limit to prevent unbounded memory
// usage.
const maxStderrBufferSize = 10 * 1024 * 1024 // 10MB

// Process implements config.Process by spawning a Claude CLI subprocess in
// stream-json mode.
//
// The subprocess lifetime is controlled explicitly through Kill and Wait
// rather than through the Start context: a session outlives the context of
// the call that spawned it, so the context passed to Start only bounds
// discovery and spawning.
type Process struct {
	log            *slog.Logger
	options        *config.Options
	cliPath        string
	args           []string
	env            []string
	cwd            string
	cmd            *exec.Cmd
	stdin          io.WriteCloser
	stdout         io.ReadCloser
	stderr         io.ReadCloser
	stderrCallback func(string) // Callback for streaming stderr output
	stderrWg       sync.WaitGroup
	stderrMu       sync.Mutex
	stderrBuf      strings.Builder
	mu             sync.Mutex // Protects stdin writes and lifecycle flags
	killed         bool       // Whether Kill() has been called (intentional shutdown)
	stdinClosed    bool       // Whether stdin was closed (e.g., due to context cancellation)
	waitOnce       sync.Once
	waitErr        error
}

// Compile-time verification that Process implements the config.Process interface.
var _ config.Process = (*Process)(nil)

// New creates a subprocess wrapper for a single spawn.
//
// The logger and stderr callback come from options. CLI discovery is deferred
// to Start(), which searches for the Claude CLI binary in the following order:
//  1. The explicit path in options.CLIPath (if provided)
//  2. The system PATH
//  3. Common installation directories (/usr/local/bin, /usr/bin, ~/.local/bin,
//     ~/.claude/local)
//
// Start() returns CLINotFoundError if the CLI binary cannot be located.
func New(options *config.Options) *Process {
	log := options.Logger
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &Process{
		log:            log.With("component", "subprocess"),
		options:        options,
		stderrCallback: options.Stderr,
	}
}

// Spawn is the default config.Spawner. It creates real CLI subprocesses;
// tests substitute an in-memory fake via Options.Spawner.
func Spawn(options *config.Options) config.Process {
	return New(options)
}

// Start discovers the CLI binary, builds the command, and spawns the process.
//
// It sets up stdin, stdout, and stderr pipes for communication and starts the
// stderr drain goroutine. The prompt is never passed on the command line;
// messages travel over stdin via Send.
//
// Returns CLINotFoundError if the CLI binary cannot be located, or
// ProcessError if the process fails to start.
func (p *Process) Start(ctx context.Context) error {
	p.log.Info("Starting Claude CLI subprocess")

	// Discover CLI binary
	discoverer := cli.NewDiscoverer(&cli.Config{
		CLIPath:          p.options.CLIPath,
		SkipVersionCheck: p.options.SkipVersionCheck,
		Logger:           p.log,
	})

	cliPath, err := discoverer.Discover(ctx)
	if err != nil {
		return fmt.Errorf("discover CLI: %w", err)
	}

	p.cliPath = cliPath

	// Build command arguments
	p.args = cli.BuildArgs(p.options)
	p.log.Debug("Built command arguments", "args", p.args)

	// Build environment
	p.env = cli.BuildEnvironment(p.options)

	// Set working directory
	p.cwd = p.options.Cwd
	if p.cwd == "" {
		p.cwd, err = os.Getwd()
		if err != nil {
			return fmt.Errorf("get working directory: %w", err)
		}
	}

	p.log.Debug("Set working directory", "cwd", p.cwd)

	// The command is deliberately not bound to ctx: the session controls
	// shutdown through Kill, not through the spawning call's context.
	//nolint:gosec // G204: Subprocess launching with dynamic args is expected for CLI invocation
	cmd := exec.Command(p.cliPath, p.args...)
	cmd.Dir = p.cwd
	cmd.Env = p.env

	// Set up stdin pipe for sending messages
	stdin, err := cmd.StdinPipe()
	if err != nil {
		p.log.Error("Failed to create stdin pipe", "error", err)

		return &errors.ProcessError{Err: fmt.Errorf("stdin pipe: %w", err)}
	}

	p.stdin = stdin

	// Set up stdout pipe
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		p.log.Error("Failed to create stdout pipe", "error", err)

		return &errors.ProcessError{Err: fmt.Errorf("stdout pipe: %w", err)}
	}

	p.stdout = stdout

	// Set up stderr pipe for error messages
	stderr, err := cmd.StderrPipe()
	if err != nil {
		p.log.Error("Failed to create stderr pipe", "error", err)

		return &errors.ProcessError{Err: fmt.Errorf("stderr pipe: %w", err)}
	}

	p.stderr = stderr

	// Start the process
	if err := cmd.Start(); err != nil {
		p.log.Error("Failed to start CLI process", "error", err)

		return &errors.ProcessError{Err: fmt.Errorf("start process: %w", err)}
	}

	p.cmd = cmd
	p.drainStderr()

	p.log.Info("Claude CLI subprocess started successfully", "pid", cmd.Process.Pid)

	return nil
}

// drainStderr starts the goroutine that consumes the stderr pipe.
//
// Stderr is always buffered for error reporting (capped at
// maxStderrBufferSize) and streamed to the callback when one is set. The
// goroutine exits when the pipe closes; Wait() joins it before reaping the
// process, as required for pipes obtained from StderrPipe.
// See: https://pkg.go.dev/os/exec#Cmd.StderrPipe
func (p *Process) drainStderr() {
	p.stderrWg.Add(1)

	go func() {
		defer p.stderrWg.Done()

		// Simple scanner loop - relies on process kill to close pipes and
		// unblock Scan(). When Kill() terminates the process, the OS closes
		// all pipes, which reliably returns from blocked Read() calls.
		scanner := bufio.NewScanner(p.stderr)
		for scanner.Scan() {
			line := scanner.Text()

			// Buffer stderr for error reporting (capped at maxStderrBufferSize)
			p.stderrMu.Lock()

			if p.stderrBuf.Len() < maxStderrBufferSize {
				if p.stderrBuf.Len() > 0 {
					p.stderrBuf.WriteString("\n")
				}

				p.stderrBuf.WriteString(line)
			}

			p.stderrMu.Unlock()

			// Invoke callback if set
			if p.stderrCallback != nil {
				p.stderrCallback(line)
			}
		}

		// Log scanner errors (don't fail - process may have exited)
		if err := scanner.Err(); err != nil {
			p.log.Debug("Stderr scanner error", "error", err)
		}
	}()
}

// Output returns the subprocess stdout reader. The engine's read loop
// consumes raw chunks from it until EOF.
func (p *Process) Output() io.Reader {
	return p.stdout
}

// Send writes one line to the CLI stdin.
//
// The data should be a complete JSON message; a newline terminator is
// appended if missing. This method is safe for concurrent use and respects
// context cancellation even during blocking writes.
//
// If context is cancelled during a blocked write, stdin is closed to unblock
// the goroutine (safe since Go 1.9+). Subsequent calls will return ErrStdinClosed.
func (p *Process) Send(ctx context.Context, line []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.stdin == nil {
		return errors.ErrProcessNotStarted
	}

	if p.stdinClosed {
		return errors.ErrStdinClosed
	}

	// Check context before starting
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	p.log.Debug("Sending message to CLI", "data_len", len(line))

	// Ensure data ends with newline
	// Use explicit copy to avoid mutating caller's backing array if slice has spare capacity
	if len(line) == 0 || line[len(line)-1] != '\n' {
		newData := make([]byte, len(line)+1)
		copy(newData, line)
		newData[len(line)] = '\n'
		line = newData
	}

	// Write in goroutine to respect context cancellation
	done := make(chan error, 1)

	go func() {
		_, err := p.stdin.Write(line)
		done <- err
	}()

	select {
	case err := <-done:
		if err != nil {
			p.log.Error("Failed to write message to CLI", "error", err)

			return fmt.Errorf("write to stdin: %w", err)
		}

		p.log.Debug("Message sent successfully")

		return nil

	case <-ctx.Done():
		p.log.Debug("Context cancelled during write, closing stdin")
		// Close stdin to unblock the blocked Write (safe since Go 1.9+)
		if p.stdin != nil {
			_ = p.stdin.Close()
			p.stdinClosed = true
		}
		// Wait for goroutine to exit with timeout to prevent leak
		select {
		case <-done:
			// Write goroutine exited cleanly
		case <-time.After(1 * time.Second):
			p.log.Warn("Write goroutine did not exit after stdin close, potential leak")
		}

		return ctx.Err()
	}
}

// Kill terminates the CLI process.
//
// This forcefully kills the CLI process using SIGKILL, which closes its pipes
// and unblocks any pending reads. It's safe to call Kill multiple times or on
// an already-terminated process. A subsequent Wait() returns nil: a kill is
// an intentional shutdown, not an abnormal exit.
func (p *Process) Kill() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.killed = true
	p.stdinClosed = true

	if p.cmd != nil && p.cmd.Process != nil {
		p.log.Debug("Killing CLI process", "pid", p.cmd.Process.Pid)

		if err := p.cmd.Process.Kill(); err != nil {
			return fmt.Errorf("kill CLI process (pid %d): %w", p.cmd.Process.Pid, err)
		}
	}

	return nil
}

// Wait reaps the CLI process after its output reaches EOF.
//
// It first joins the stderr drain goroutine (reads must complete before the
// process is reaped), then waits for the process. On abnormal exit it returns
// a ProcessError carrying the exit code and the captured stderr tail, cleaned
// of Bun source context. After an intentional Kill it returns nil.
//
// Wait is idempotent; repeated calls return the first result.
func (p *Process) Wait() error {
	p.waitOnce.Do(func() {
		p.waitErr = p.wait()
	})

	return p.waitErr
}

func (p *Process) wait() error {
	if p.cmd == nil {
		return errors.ErrProcessNotStarted
	}

	// Wait for stderr goroutine before process wait
	p.stderrWg.Wait()

	p.log.Debug("Waiting for CLI process to exit")

	err := p.cmd.Wait()
	if err == nil {
		p.log.Info("CLI process exited successfully")

		return nil
	}

	// Check if this is an intentional shutdown
	p.mu.Lock()
	killed := p.killed
	p.mu.Unlock()

	if killed {
		p.log.Debug("CLI process terminated during shutdown")

		return nil
	}

	stderrOutput := p.Stderr()

	exitCode := 0

	var exitErr *exec.ExitError
	if stderrors.As(err, &exitErr) {
		exitCode = exitErr.ExitCode()
	}

	p.log.Error("CLI process exited with error", "exit_code", exitCode, "stderr", stderrOutput)

	return &errors.ProcessError{
		ExitCode: exitCode,
		Stderr:   stderrOutput,
		Err:      err,
	}
}

// Stderr returns the captured stderr tail, cleaned of Bun source context,
// for error reporting.
func (p *Process) Stderr() string {
	p.stderrMu.Lock()
	defer p.stderrMu.Unlock()

	return cleanStderr(p.stderrBuf.String())
}

// cleanStderr parses and cleans stderr output from the CLI.
// Bun includes minified source context in error output which is not useful.
// This extracts just the error message and stack trace.
func cleanStderr(stderr string) string {
	if stderr == "" {
		return ""
	}

	var cleaned strings.Builder

	lines := strings.Split(stderr, "\n")

	for _, line := range lines {
		// Skip Bun source context lines (format: "1234 | <minified code>")
		trimmed := strings.TrimSpace(line)
		if isSourceContextLine(trimmed) {
			continue
		}

		// Keep error messages, stack traces, and other useful output
		if cleaned.Len() > 0 {
			cleaned.WriteString("\n")
		}

		cleaned.WriteString(line)
	}

	return strings.TrimSpace(cleaned.String())
}

// isSourceContextLine checks if a line is Bun's source code context.
// These lines have the format: "1234 | <code>" where 1234 is a line number.
func isSourceContextLine(line string) bool {
	// Find the pipe separator
	pipeIdx := strings.Index(line, "|")
	if pipeIdx < 1 {
		return false
	}

	// Check if everything before the pipe is digits and whitespace
	prefix := strings.TrimSpace(line[:pipeIdx])
	if prefix == "" {
		return false
	}

	for _, ch := range prefix {
		if ch < '0' || ch > '9' {
			return false
		}
	}

	return true
}
