package claudesession

import (
	"log/slog"
	"slices"

	"github.com/hollis-dev/claude-session-engine/internal/config"
	"github.com/hollis-dev/claude-session-engine/internal/models"
)

// Option configures SessionOptions using the functional options pattern.
// This is the primary option type for configuring sessions.
type Option func(*SessionOptions)

// applySessionOptions applies functional options to a SessionOptions struct.
func applySessionOptions(opts []Option) *SessionOptions {
	options := &SessionOptions{Icons: true}
	for _, opt := range opts {
		opt(options)
	}

	return options
}

// buildOptions resolves the effective options for one session. When a config
// file is named, its values form the base layer and the explicit options are
// applied on top, so code always wins over file.
func buildOptions(opts []Option) (*config.Options, error) {
	options := applySessionOptions(opts)

	if options.ConfigFile == "" {
		return options, nil
	}

	base, err := config.LoadFile(options.ConfigFile)
	if err != nil {
		return nil, err
	}

	for _, opt := range opts {
		opt(base)
	}

	return base, nil
}

// ===== Basic Configuration =====

// WithLogger sets the logger for debug output.
// If not set, logging is disabled (silent operation).
func WithLogger(logger *slog.Logger) Option {
	return func(o *SessionOptions) {
		o.Logger = logger
	}
}

// WithModel specifies which Claude model to use. Short aliases from the
// model catalog resolve to their canonical ID ("sonnet" becomes the current
// sonnet model); names the catalog does not know pass through to the CLI
// unchanged.
func WithModel(model string) Option {
	return func(o *SessionOptions) {
		o.Model = resolveModelAlias(model)
	}
}

// WithTemperature sets the sampling temperature passed to the CLI.
func WithTemperature(temperature float64) Option {
	return func(o *SessionOptions) {
		o.Temperature = &temperature
	}
}

// WithMaxTokens limits the response length in output tokens.
func WithMaxTokens(maxTokens int) Option {
	return func(o *SessionOptions) {
		o.MaxTokens = maxTokens
	}
}

// WithPermissionMode controls how the CLI handles tool permissions.
// Valid values: "default", "acceptEdits", "plan", "bypassPermissions".
// The legacy aliases "acceptAll" and "prompt" are normalized.
func WithPermissionMode(mode string) Option {
	return func(o *SessionOptions) {
		o.PermissionMode = mode
	}
}

// WithAllowedTools sets pre-approved tools the CLI may use without prompting.
func WithAllowedTools(tools ...string) Option {
	return func(o *SessionOptions) {
		o.AllowedTools = tools
	}
}

// ===== Process Environment =====

// WithCLIPath sets the explicit path to the claude CLI binary.
// If not set, the CLI is searched in PATH and common install locations.
func WithCLIPath(path string) Option {
	return func(o *SessionOptions) {
		o.CLIPath = path
	}
}

// WithAPIKey sets the credential passed to the subprocess via the
// ANTHROPIC_API_KEY environment variable. If not set, the key already
// present in the parent environment is inherited.
func WithAPIKey(key string) Option {
	return func(o *SessionOptions) {
		o.APIKey = key
	}
}

// WithCwd sets the working directory for the CLI process.
func WithCwd(cwd string) Option {
	return func(o *SessionOptions) {
		o.Cwd = cwd
	}
}

// WithEnv provides additional environment variables for the CLI process.
func WithEnv(env map[string]string) Option {
	return func(o *SessionOptions) {
		o.Env = env
	}
}

// WithExtraArgs provides arbitrary CLI flags to pass through.
// If the value is nil, the flag is passed without a value (boolean flag).
func WithExtraArgs(args map[string]*string) Option {
	return func(o *SessionOptions) {
		o.ExtraArgs = args
	}
}

// WithStderr sets a callback receiving subprocess stderr lines as they
// arrive. The trimmed stderr tail is retained for error reporting regardless.
func WithStderr(handler func(string)) Option {
	return func(o *SessionOptions) {
		o.Stderr = handler
	}
}

// ===== Output =====

// WithoutIcons disables emoji prefixes on display events, producing bare
// text with no leading space.
func WithoutIcons() Option {
	return func(o *SessionOptions) {
		o.Icons = false
	}
}

// WithMaxBufferSize sets the read buffer size in bytes for subprocess
// stdout chunks.
func WithMaxBufferSize(size int) Option {
	return func(o *SessionOptions) {
		o.MaxBufferSize = size
	}
}

// ===== Files =====

// WithConfigFile layers a TOML session file beneath the explicit options.
// Explicit options always win over file values. See the config file example
// for the accepted keys.
func WithConfigFile(path string) Option {
	return func(o *SessionOptions) {
		o.ConfigFile = path
	}
}

// ===== Advanced =====

// WithSpawner injects a custom subprocess factory. The session then skips
// CLI discovery and credential validation; the spawner owns process
// creation. Tests inject an in-memory fake here.
func WithSpawner(spawner Spawner) Option {
	return func(o *SessionOptions) {
		o.Spawner = spawner
	}
}

// resolveModelAlias canonicalizes catalog aliases only. Exact IDs and dated
// variants pass through untouched so an explicitly pinned model is never
// rewritten.
func resolveModelAlias(model string) string {
	if m := models.ByID(model); m != nil && slices.Contains(m.Aliases, model) {
		return m.ID
	}

	return model
}
