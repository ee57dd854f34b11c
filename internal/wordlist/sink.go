package wordlist

import (
	"bufio"
	"fmt"
	"os"
)

// Sink is a destination for produced payload lines (file, stdout, test
// buffer).
type Sink interface {
	WriteLine(payload []byte) error
}

// FileSink writes newline-delimited payloads to a file through a buffered
// writer. The file is created or truncated at open time; runs never append
// to a previous run's output.
type FileSink struct {
	f     *os.File
	w     *bufio.Writer
	count int
}

// Create opens (and truncates) the output wordlist at path.
func Create(path string) (*FileSink, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, err
	}
	return &FileSink{f: f, w: bufio.NewWriter(f)}, nil
}

// WriteLine appends one payload plus a trailing newline.
func (s *FileSink) WriteLine(payload []byte) error {
	if _, err := s.w.Write(payload); err != nil {
		return err
	}
	if err := s.w.WriteByte('\n'); err != nil {
		return err
	}
	s.count++
	return nil
}

// Count returns the number of lines written so far.
func (s *FileSink) Count() int { return s.count }

// Close flushes buffered output and closes the file. A flush failure is
// reported; a payload is only durable once Close returns nil.
func (s *FileSink) Close() error {
	flushErr := s.w.Flush()
	closeErr := s.f.Close()
	if flushErr != nil {
		return flushErr
	}
	return closeErr
}

// StdoutSink prints payloads to stdout, one per line.
type StdoutSink struct{}

func (StdoutSink) WriteLine(payload []byte) error {
	_, err := fmt.Printf("%s\n", payload)
	return err
}
