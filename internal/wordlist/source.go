// Package wordlist is the line-oriented IO boundary: a raw-byte reader over
// input wordlists and sinks for writing produced payloads. Payloads are kept
// as byte slices end to end so generated encodings are never remangled by
// text decoding.
package wordlist

import (
	"bufio"
	"io"
	"os"
)

// Source reads one payload line at a time from an input wordlist. Usage
// follows the bufio.Scanner pattern:
//
//	for src.Next() {
//	    payload := src.Payload()
//	    ...
//	}
//	if err := src.Err(); err != nil { ... }
type Source struct {
	closer io.Closer
	sc     *bufio.Scanner
	line   []byte
}

// Open opens the wordlist at path for reading.
func Open(path string) (*Source, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	return NewSource(f), nil
}

// NewSource wraps an arbitrary reader as a Source. If the reader is also an
// io.Closer it will be closed by Close.
func NewSource(r io.Reader) *Source {
	sc := bufio.NewScanner(r)
	// Single payload lines can legitimately be long once pre-expanded
	// wordlists are re-sanitized; allow up to 1 MiB per line.
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	s := &Source{sc: sc}
	if c, ok := r.(io.Closer); ok {
		s.closer = c
	}
	return s
}

// Next advances to the next line, skipping empty ones. It returns false at
// EOF or on read error; check Err afterwards.
func (s *Source) Next() bool {
	for s.sc.Scan() {
		raw := s.sc.Bytes()
		if len(trimSpace(raw)) == 0 {
			continue
		}
		// Scanner reuses its buffer, so hand out a copy.
		s.line = append([]byte(nil), raw...)
		return true
	}
	return false
}

// Payload returns the current line. The returned slice is owned by the
// caller and survives subsequent Next calls.
func (s *Source) Payload() []byte { return s.line }

// Err returns the first error encountered while scanning.
func (s *Source) Err() error { return s.sc.Err() }

// Close releases the underlying file, if any.
func (s *Source) Close() error {
	if s.closer == nil {
		return nil
	}
	return s.closer.Close()
}

// trimSpace trims ASCII whitespace from both ends of a byte slice without
// allocating.
func trimSpace(b []byte) []byte {
	start := 0
	for start < len(b) && isSpace(b[start]) {
		start++
	}
	end := len(b)
	for end > start && isSpace(b[end-1]) {
		end--
	}
	return b[start:end]
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}

// TrimSpace is the exported trim used by the canonicalizer and the mutation
// pipeline so all components agree on what "outer whitespace" means.
func TrimSpace(b []byte) []byte { return trimSpace(b) }
