package config

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// fileOptions is the TOML shape of a session config file.
//
//nolint:tagliatelle // TOML keys use snake_case
type fileOptions struct {
	Model          string            `toml:"model"`
	Temperature    *float64          `toml:"temperature"`
	MaxTokens      int               `toml:"max_tokens"`
	AllowedTools   []string          `toml:"allowed_tools"`
	PermissionMode string            `toml:"permission_mode"`
	CLIPath        string            `toml:"cli_path"`
	Cwd            string            `toml:"cwd"`
	Icons          *bool             `toml:"icons"`
	Env            map[string]string `toml:"env"`
}

// LoadFile parses a TOML session file into Options. Unknown keys are
// rejected so typos fail loudly instead of being silently ignored. Icons
// default to enabled when the key is absent.
//
// Example file:
//
//	model = "sonnet"
//	temperature = 0.2
//	max_tokens = 4096
//	allowed_tools = ["Read", "Grep"]
//	permission_mode = "acceptEdits"
//	icons = false
//
//	[env]
//	NO_COLOR = "1"
func LoadFile(path string) (*Options, error) {
	var file fileOptions

	meta, err := toml.DecodeFile(path, &file)
	if err != nil {
		return nil, fmt.Errorf("load config file %s: %w", path, err)
	}

	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("load config file %s: unknown key %q", path, undecoded[0])
	}

	opts := &Options{
		Model:          file.Model,
		Temperature:    file.Temperature,
		MaxTokens:      file.MaxTokens,
		AllowedTools:   file.AllowedTools,
		PermissionMode: file.PermissionMode,
		CLIPath:        file.CLIPath,
		Cwd:            file.Cwd,
		Env:            file.Env,
		Icons:          true,
	}

	if file.Icons != nil {
		opts.Icons = *file.Icons
	}

	return opts, nil
}
