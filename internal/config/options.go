package config

import "log/slog"

// DefaultMaxBufferSize is the read buffer size for subprocess stdout chunks
// when no explicit size is configured.
const DefaultMaxBufferSize = 32 * 1024

// Options configures one session with the Claude CLI subprocess.
type Options struct {
	// Logger is the slog logger for debug output.
	// If nil, logging is disabled (silent operation).
	Logger *slog.Logger

	// Model specifies which Claude model to use (e.g. "claude-sonnet-4-6"
	// or a short alias like "sonnet"). Empty uses the CLI's default.
	Model string

	// Temperature is the sampling temperature passed to the CLI.
	// If nil, no temperature flag is passed.
	Temperature *float64

	// MaxTokens limits the response length in output tokens.
	// Zero means no limit flag is passed.
	MaxTokens int

	// AllowedTools is a list of pre-approved tools the CLI may use
	// without prompting.
	AllowedTools []string

	// PermissionMode controls how the CLI handles tool permissions.
	// Valid values: "acceptEdits", "bypassPermissions", "default", "plan".
	// Legacy aliases are supported and normalized:
	//   - "acceptAll" -> "bypassPermissions"
	//   - "prompt" -> "default"
	// Empty defaults to "default".
	PermissionMode string

	// CLIPath is the explicit path to the claude CLI binary.
	// If empty, the CLI is searched in PATH and common install locations.
	CLIPath string

	// SkipVersionCheck skips CLI version validation during discovery.
	SkipVersionCheck bool

	// APIKey is the credential passed to the subprocess via the
	// ANTHROPIC_API_KEY environment variable. If empty, the key already
	// present in the parent environment is inherited. Credential material
	// never appears in argv.
	APIKey string

	// Cwd sets the working directory for the CLI process.
	Cwd string

	// Env provides additional environment variables for the CLI process.
	Env map[string]string

	// ExtraArgs provides arbitrary CLI flags to pass through.
	// If the value is nil, the flag is passed without a value (boolean flag).
	ExtraArgs map[string]*string

	// Icons enables emoji prefixes on display events. Disabled icons
	// produce bare text with no leading space.
	Icons bool

	// Stderr is a callback receiving subprocess stderr lines as they
	// arrive. The trimmed stderr tail is retained for error reporting
	// regardless.
	Stderr func(string)

	// MaxBufferSize sets the read buffer size in bytes for subprocess
	// stdout chunks. Zero uses DefaultMaxBufferSize.
	MaxBufferSize int

	// ConfigFile is the path of a TOML session file whose values are
	// layered beneath explicit options. See LoadFile for the file shape.
	ConfigFile string

	// Spawner creates the subprocess for a session. If nil, the default
	// CLI subprocess spawner is used. Tests inject an in-memory fake here.
	Spawner Spawner
}

// BufferSize returns the configured chunk buffer size, falling back to the
// default when unset.
func (o *Options) BufferSize() int {
	if o.MaxBufferSize > 0 {
		return o.MaxBufferSize
	}

	return DefaultMaxBufferSize
}
