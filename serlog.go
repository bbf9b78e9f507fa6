// Package serlog captures telemetry streamed over a serial link from
// a microcontroller and persists it to a local text file.
//
// Two capture modes share one session driver: "records" decodes
// sentinel-framed binary frames (a 4-byte 0xFF marker followed by a
// little-endian uint32 timestamp and two uint16 values) into CSV
// lines, and "lines" copies newline-delimited text verbatim.
//
// Example usage:
//
//	cfg := serlog.Config{
//	    Port:        "/dev/ttyUSB0",
//	    Baud:        115200,
//	    Output:      "capture.csv",
//	    Mode:        serlog.ModeRecords,
//	    ReadTimeout: 10 * time.Second,
//	}
//	if err := serlog.Run(context.Background(), cfg); err != nil {
//	    log.Fatal(err)
//	}
package serlog

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/serlab/serlog/internal/cliconfig"
	"github.com/serlab/serlog/internal/frame"
	"github.com/serlab/serlog/internal/session"
)

// Config holds the configuration for one capture session.
type Config = session.Config

// Capture modes accepted in Config.Mode.
const (
	ModeRecords = cliconfig.ModeRecords
	ModeLines   = cliconfig.ModeLines
)

// Run executes one capture session: open the port, open the output
// file, loop until the link times out or an I/O error occurs, close
// both. It returns nil when the session ended cleanly (timeout, end
// of stream or ctx cancellation).
func Run(ctx context.Context, cfg Config) error {
	return session.Run(ctx, cfg)
}

// DefaultSentinel returns a copy of the start-of-record marker used
// when Config.Sentinel is nil.
func DefaultSentinel() []byte {
	s := make([]byte, len(frame.DefaultSentinel))
	copy(s, frame.DefaultSentinel)
	return s
}

// Logger returns the package-level zerolog logger used by the session
// driver.
func Logger() zerolog.Logger {
	return session.Logger()
}
