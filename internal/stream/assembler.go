package stream

import "bytes"

// Assembler reassembles raw byte chunks into complete newline-terminated
// lines. Subprocess stdout arrives in arbitrary chunks: a single read may
// carry several lines, or a line may be split across many reads. Feed
// accumulates bytes and emits each line exactly once, when its terminator
// has been seen.
//
// Assembler is not safe for concurrent use; it is owned by the single
// goroutine that reads the subprocess output.
type Assembler struct {
	pending []byte
}

// NewAssembler creates an empty Assembler.
func NewAssembler() *Assembler {
	return &Assembler{}
}

// Feed appends chunk to the pending buffer and returns all newly completed
// lines in arrival order, without their terminators. A trailing '\r' is
// stripped so CRLF streams decode identically to LF streams. Any trailing
// partial segment is retained for the next call; at most one incomplete
// fragment is pending at a time.
//
// Splitting a byte stream into any sequence of successive Feed calls yields
// the same ordered line sequence as a single call with the concatenated
// bytes. Empty input yields no lines.
func (a *Assembler) Feed(chunk []byte) []string {
	if len(chunk) == 0 {
		return nil
	}

	a.pending = append(a.pending, chunk...)

	var lines []string

	for {
		idx := bytes.IndexByte(a.pending, '\n')
		if idx < 0 {
			break
		}

		line := a.pending[:idx]
		if n := len(line); n > 0 && line[n-1] == '\r' {
			line = line[:n-1]
		}

		lines = append(lines, string(line))
		a.pending = a.pending[idx+1:]
	}

	// Release the backing array once fully consumed so large lines do not
	// pin memory after they are emitted.
	if len(a.pending) == 0 {
		a.pending = nil
	}

	return lines
}

// Pending returns the current incomplete fragment, if any. It is a copy;
// mutating the result does not affect the assembler.
func (a *Assembler) Pending() string {
	return string(a.pending)
}

// Reset discards any pending partial line.
func (a *Assembler) Reset() {
	a.pending = nil
}
