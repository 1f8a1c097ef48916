// Package subprocess spawns and supervises the Claude CLI child process.
//
// This package implements the config.Process interface by launching the CLI
// in stream-json mode and communicating over stdin/stdout. It handles process
// lifecycle management, stderr capture, and error reporting; the engine owns
// reading and decoding the output stream.
package subprocess
