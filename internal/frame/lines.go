package frame

import (
	"bufio"
	"io"
	"strings"
)

// LineStream copies newline-delimited text from the byte stream
// verbatim, one line per call, with trailing whitespace stripped.
// Content is never interpreted.
type LineStream struct {
	br *bufio.Reader
}

// NewLineStream returns a LineStream reading from r.
func NewLineStream(r io.Reader) *LineStream {
	return &LineStream{br: bufio.NewReader(r)}
}

// Next returns the next line with its terminator and any trailing
// whitespace removed. A final unterminated line is returned before
// the stream's error is reported on the following call.
func (l *LineStream) Next() (string, error) {
	line, err := l.br.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimRight(line, " \t\r\n"), nil
}
