package stream

import (
	"bufio"
	"io"
)

// maxLineSize bounds a single history line; production lines are a few
// hundred bytes, but a handful of multi-kilobyte free-text fields (notes,
// problem descriptions) are tolerated by giving the scanner generous room.
const maxLineSize = 4 * 1024 * 1024

// DefaultBufferSize is the scanner's initial buffer size when the caller
// has no config.RunConfig.Performance.BufferSize to pass in (tests, ad hoc
// callers).
const DefaultBufferSize = 64 * 1024

// LineSource produces raw lines from an underlying reader. The CLI is
// responsible for wrapping a compressed file in a decompressing reader
// before handing it to NewLineSource; this package is agnostic to what
// produced the bytes.
type LineSource struct {
	scanner *bufio.Scanner
}

// NewLineSource wraps r for line-at-a-time reading. bufferSize sets the
// scanner's initial read buffer (config.RunConfig.Performance.BufferSize);
// it grows up to maxLineSize for any line that overflows it. A non-positive
// bufferSize falls back to DefaultBufferSize.
func NewLineSource(r io.Reader, bufferSize int) *LineSource {
	if bufferSize <= 0 {
		bufferSize = DefaultBufferSize
	}
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, bufferSize), maxLineSize)
	return &LineSource{scanner: scanner}
}

// Next returns the next line and true, or ok=false at end of stream. A
// non-nil error means the underlying reader failed and the run must abort.
func (ls *LineSource) Next() (line string, ok bool, err error) {
	if ls.scanner.Scan() {
		return ls.scanner.Text(), true, nil
	}
	if err := ls.scanner.Err(); err != nil {
		return "", false, err
	}
	return "", false, nil
}
