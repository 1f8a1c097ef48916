package claudesession

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildOptions_Defaults(t *testing.T) {
	options, err := buildOptions(nil)
	require.NoError(t, err)

	assert.True(t, options.Icons)
	assert.Empty(t, options.Model)
	assert.Equal(t, DefaultMaxBufferSize, options.BufferSize())
}

func TestBuildOptions_Setters(t *testing.T) {
	logger := NopLogger()

	options, err := buildOptions([]Option{
		WithLogger(logger),
		WithModel("claude-sonnet-4-6"),
		WithTemperature(0.7),
		WithMaxTokens(4096),
		WithPermissionMode("acceptEdits"),
		WithAllowedTools("Read", "Grep"),
		WithCLIPath("/usr/local/bin/claude"),
		WithAPIKey("sk-test"),
		WithCwd("/tmp"),
		WithEnv(map[string]string{"NO_COLOR": "1"}),
		WithExtraArgs(map[string]*string{"debug": nil}),
		WithoutIcons(),
		WithStderr(func(string) {}),
		WithMaxBufferSize(1024),
	})
	require.NoError(t, err)

	assert.Same(t, logger, options.Logger)
	assert.Equal(t, "claude-sonnet-4-6", options.Model)
	require.NotNil(t, options.Temperature)
	assert.InDelta(t, 0.7, *options.Temperature, 0.0001)
	assert.Equal(t, 4096, options.MaxTokens)
	assert.Equal(t, "acceptEdits", options.PermissionMode)
	assert.Equal(t, []string{"Read", "Grep"}, options.AllowedTools)
	assert.Equal(t, "/usr/local/bin/claude", options.CLIPath)
	assert.Equal(t, "sk-test", options.APIKey)
	assert.Equal(t, "/tmp", options.Cwd)
	assert.Equal(t, "1", options.Env["NO_COLOR"])
	assert.Contains(t, options.ExtraArgs, "debug")
	assert.False(t, options.Icons)
	assert.NotNil(t, options.Stderr)
	assert.Equal(t, 1024, options.BufferSize())
}

func TestWithModel_AliasResolution(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"alias resolves to canonical id", "sonnet", "claude-sonnet-4-6"},
		{"opus alias", "opus", "claude-opus-4-6"},
		{"exact id passes through", "claude-sonnet-4-5", "claude-sonnet-4-5"},
		{"dated id is never rewritten", "claude-sonnet-4-6-20260205", "claude-sonnet-4-6-20260205"},
		{"unknown model passes through", "my-custom-model", "my-custom-model"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			options := &SessionOptions{}
			WithModel(tt.input)(options)

			assert.Equal(t, tt.want, options.Model)
		})
	}
}

func TestBuildOptions_ConfigFileLayering(t *testing.T) {
	path := filepath.Join(t.TempDir(), "claude.toml")
	content := `
model = "file-model"
temperature = 0.2
icons = false
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	options, err := buildOptions([]Option{
		WithConfigFile(path),
		WithModel("opus"),
	})
	require.NoError(t, err)

	// Explicit option wins over the file; untouched file values persist.
	assert.Equal(t, "claude-opus-4-6", options.Model)
	require.NotNil(t, options.Temperature)
	assert.InDelta(t, 0.2, *options.Temperature, 0.0001)
	assert.False(t, options.Icons)
}

func TestBuildOptions_ConfigFileOnly(t *testing.T) {
	path := filepath.Join(t.TempDir(), "claude.toml")
	content := `
model = "file-model"
allowed_tools = ["Read"]

[env]
NO_COLOR = "1"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	options, err := buildOptions([]Option{WithConfigFile(path)})
	require.NoError(t, err)

	assert.Equal(t, "file-model", options.Model)
	assert.Equal(t, []string{"Read"}, options.AllowedTools)
	assert.Equal(t, "1", options.Env["NO_COLOR"])
	assert.True(t, options.Icons)
}

func TestBuildOptions_ConfigFileMissing(t *testing.T) {
	_, err := buildOptions([]Option{WithConfigFile("/nonexistent/claude.toml")})
	require.Error(t, err)
}

func TestBuildOptions_ConfigFileUnknownKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "claude.toml")
	require.NoError(t, os.WriteFile(path, []byte("modle = \"typo\"\n"), 0o600))

	_, err := buildOptions([]Option{WithConfigFile(path)})
	require.Error(t, err)
	assert.ErrorContains(t, err, "unknown key")
}
