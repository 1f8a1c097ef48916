// Package stream reassembles the CLI's chunked stdout into complete
// newline-delimited lines.
//
// The CLI writes one JSON message per line, but the operating system
// delivers those bytes in arbitrary chunks. Assembler buffers a partial
// line across reads and emits each completed line exactly once, in order,
// independent of how the byte stream was partitioned.
package stream
