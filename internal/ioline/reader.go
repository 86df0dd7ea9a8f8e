// Package ioline is the interpreter's I/O bridge: a line-oriented
// reader for READ and a buffered, newline-free writer for WRITE. Both
// wrap a single already-open stream for the lifetime of one engine
// run, mirroring the teacher's bufio.Scanner-over-os.Stdin pattern in
// cmd/emulator/main.go's step mode.
package ioline

import (
	"bufio"
	"io"
	"os"

	"github.com/ipp23/ippcode23/internal/ipperr"
)

// Reader delivers READ's line-at-a-time semantics: each call strips
// the trailing newline and reports ok=false once the stream is
// exhausted.
type Reader struct {
	scanner *bufio.Scanner
	closer  io.Closer
}

// OpenReader opens path for reading, or standard input when path is
// empty.
func OpenReader(path string) (*Reader, error) {
	if path == "" {
		return NewReader(os.Stdin, nil), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, ipperr.Wrap(ipperr.InvalidFile, err, "cannot open input file %q", path)
	}
	return NewReader(f, f), nil
}

// NewReader wraps an already-open stream. closer may be nil when the
// caller owns the stream's lifetime itself (as with os.Stdin).
func NewReader(r io.Reader, closer io.Closer) *Reader {
	return &Reader{scanner: bufio.NewScanner(r), closer: closer}
}

// ReadLine returns the next line with any trailing newline already
// stripped by bufio.Scanner's line-splitting, and ok=false at
// end-of-stream — the condition spec §4.3 calls out as "read returned
// empty" for the purposes of READ yielding Nil.
func (r *Reader) ReadLine() (string, bool) {
	if !r.scanner.Scan() {
		return "", false
	}
	return r.scanner.Text(), true
}

// Close releases the underlying file, if this Reader owns one.
func (r *Reader) Close() error {
	if r.closer == nil {
		return nil
	}
	return r.closer.Close()
}
