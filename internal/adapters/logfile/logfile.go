// Package logfile implements ports.Sink as a plain text file, one
// record per line.
package logfile

import (
	"fmt"
	"os"
)

// Sink appends newline-terminated lines to a file created (or
// truncated) at open time. It is owned by a single writer and closed
// exactly once at the end of the session.
type Sink struct {
	f    *os.File
	path string
}

// Create opens the output file, truncating any previous content.
func Create(path string) (*Sink, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("open output %s: %w", path, err)
	}
	return &Sink{f: f, path: path}, nil
}

// WriteLine appends one line followed by a single newline.
func (s *Sink) WriteLine(line string) error {
	if _, err := s.f.WriteString(line + "\n"); err != nil {
		return fmt.Errorf("write %s: %w", s.path, err)
	}
	return nil
}

// Close flushes and closes the file.
func (s *Sink) Close() error {
	return s.f.Close()
}

// Path returns the file path the sink writes to.
func (s *Sink) Path() string {
	return s.path
}
