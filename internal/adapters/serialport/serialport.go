// Package serialport implements ports.ByteSource on top of a real
// serial device using github.com/tarm/serial.
package serialport

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/tarm/serial"

	"github.com/serlab/serlog/internal/domain"
)

// Port wraps an open serial device. Reads block for at most the
// configured read timeout.
type Port struct {
	p    *serial.Port
	name string
}

// Open opens the named device at the given baud rate with a read
// timeout. A device that cannot be opened is fatal for the session;
// no retry is attempted.
func Open(name string, baud int, readTimeout time.Duration) (*Port, error) {
	p, err := serial.OpenPort(&serial.Config{
		Name:        name,
		Baud:        baud,
		ReadTimeout: readTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("open port %s: %w", name, err)
	}
	return &Port{p: p, name: name}, nil
}

// Read reads from the device. The underlying library reports an
// expired read timeout as a zero-byte read (io.EOF on POSIX, a bare
// zero count on Windows); both are normalized to
// domain.ErrReadTimeout so the session driver can tell "link went
// quiet" apart from a real end of stream.
func (p *Port) Read(b []byte) (int, error) {
	n, err := p.p.Read(b)
	if n == 0 && (err == nil || errors.Is(err, io.EOF)) {
		return 0, domain.ErrReadTimeout
	}
	return n, err
}

// Close closes the device.
func (p *Port) Close() error {
	return p.p.Close()
}

// Name returns the device path the port was opened with.
func (p *Port) Name() string {
	return p.name
}
