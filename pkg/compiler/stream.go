package compiler

import (
	"bufio"
	"io"
	"os"
)

// Stream supplies the characters of one compilation unit with one byte of
// pushback and 1-based line tracking.
type Stream struct {
	r          *bufio.Reader
	closer     io.Closer // nil for in-memory sources
	line       int
	pending    byte
	hasPending bool
	closed     bool
}

// NewStream wraps an in-memory or already-open source.
func NewStream(r io.Reader) *Stream {
	return &Stream{r: bufio.NewReader(r), line: 1}
}

// Open opens the named source file. Close releases it.
func Open(path string) (*Stream, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	s := NewStream(f)
	s.closer = f
	return s, nil
}

// Read returns the next character, draining the pushback buffer first.
// The line counter advances on newlines read fresh from the underlying
// source; replaying a pushed-back newline does not count it twice.
// End of source surfaces as io.EOF and is left for the caller to report.
func (s *Stream) Read() (byte, error) {
	if s.hasPending {
		s.hasPending = false
		return s.pending, nil
	}
	c, err := s.r.ReadByte()
	if err != nil {
		return 0, err
	}
	if c == '\n' {
		s.line++
	}
	return c, nil
}

// Unread stores c for the next Read. A second Unread before an intervening
// Read silently overwrites the first; callers never push back more than one
// character.
func (s *Stream) Unread(c byte) {
	s.pending = c
	s.hasPending = true
}

// Line reports the current 1-based line number.
func (s *Stream) Line() int { return s.line }

// Close releases the underlying file, if any. Safe to call more than once.
func (s *Stream) Close() error {
	if s.closed || s.closer == nil {
		return nil
	}
	s.closed = true
	return s.closer.Close()
}
