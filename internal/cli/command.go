package cli

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/hollis-dev/claude-session-engine/internal/config"
	"github.com/hollis-dev/claude-session-engine/internal/errors"
)

// APIKeyEnvVar is the environment variable carrying the credential.
// Credential material is passed to the subprocess through the environment,
// never on the command line.
const APIKeyEnvVar = "ANTHROPIC_API_KEY"

// BuildArgs constructs the CLI command arguments for a streaming session.
//
// The base list selects the line-delimited JSON protocol on both stdin and
// stdout; optional flags are appended only when configured.
func BuildArgs(options *config.Options) []string {
	args := []string{
		"--output-format", "stream-json",
		"--input-format", "stream-json",
		"--verbose",
		"--permission-mode", config.NormalizePermissionMode(options.PermissionMode),
	}

	if options.Model != "" {
		args = append(args, "--model", options.Model)
	}

	if options.Temperature != nil {
		args = append(args, "--temperature", fmt.Sprintf("%g", *options.Temperature))
	}

	if options.MaxTokens > 0 {
		args = append(args, "--max-tokens", strconv.Itoa(options.MaxTokens))
	}

	if len(options.AllowedTools) > 0 {
		args = append(args, "--allowed-tools", strings.Join(options.AllowedTools, ","))
	}

	// Extra args (arbitrary CLI flags)
	for key, value := range options.ExtraArgs {
		if value == nil {
			// Boolean flag without value
			args = append(args, "--"+key)
		} else {
			args = append(args, "--"+key, *value)
		}
	}

	return args
}

// BuildEnvironment constructs the environment for the CLI process: the
// parent environment, the explicit API key when configured, and any
// user-provided overrides, in that precedence order.
func BuildEnvironment(options *config.Options) []string {
	env := os.Environ()

	if options.APIKey != "" {
		env = append(env, APIKeyEnvVar+"="+options.APIKey)
	}

	for key, value := range options.Env {
		env = append(env, fmt.Sprintf("%s=%s", key, value))
	}

	return env
}

// EnsureCredential verifies that a credential is available to the
// subprocess: either an explicit key in options or ANTHROPIC_API_KEY in the
// parent environment. It fails fast, before any subprocess is spawned.
func EnsureCredential(options *config.Options) error {
	if options.APIKey != "" {
		return nil
	}

	if _, ok := options.Env[APIKeyEnvVar]; ok {
		return nil
	}

	if os.Getenv(APIKeyEnvVar) != "" {
		return nil
	}

	return errors.ErrNoCredential
}
