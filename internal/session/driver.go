package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sync/atomic"
	"time"

	"github.com/serlab/serlog/internal/adapters/logfile"
	"github.com/serlab/serlog/internal/adapters/serialport"
	"github.com/serlab/serlog/internal/cliconfig"
	"github.com/serlab/serlog/internal/domain"
	"github.com/serlab/serlog/internal/frame"
	"github.com/serlab/serlog/internal/ports"
)

// State is the lifecycle phase of a capture session.
type State int32

// Session states. A session moves strictly forward; StateClosed is
// terminal.
const (
	StateIdle State = iota
	StateConnected
	StateLogging
	StateClosed
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateConnected:
		return "connected"
	case StateLogging:
		return "logging"
	case StateClosed:
		return "closed"
	default:
		return fmt.Sprintf("state(%d)", int32(s))
	}
}

// Config holds everything a session needs. It is usually built by the
// CLI from layered configuration (file, env, flags).
type Config struct {
	// Port is the serial device to read from.
	Port string

	// Baud is the serial link speed.
	Baud int

	// Output is the log file path.
	Output string

	// Mode selects the producer: cliconfig.ModeRecords or
	// cliconfig.ModeLines.
	Mode string

	// Verbose echoes every captured line to stdout.
	Verbose bool

	// ReadTimeout bounds each blocking read on the port. A timeout
	// while waiting for the next frame ends the session cleanly.
	ReadTimeout time.Duration

	// Sentinel overrides the start-of-record marker. Nil means
	// frame.DefaultSentinel.
	Sentinel []byte

	// ConfigFile, when set, is watched so that the verbose flag can be
	// toggled while a session is logging.
	ConfigFile string
}

// Driver owns the session state: the open port, the open output file
// and the running flag. Both handles are opened once and closed
// exactly once, on the single exit path.
type Driver struct {
	cfg     Config
	state   atomic.Int32
	verbose atomic.Bool

	// echo is where verbose output goes; stdout outside of tests.
	echo io.Writer
}

// New creates a Driver in StateIdle.
func New(cfg Config) *Driver {
	if len(cfg.Sentinel) == 0 {
		cfg.Sentinel = frame.DefaultSentinel
	}
	d := &Driver{cfg: cfg, echo: os.Stdout}
	d.verbose.Store(cfg.Verbose)
	return d
}

// Run executes one session from port-open to file-close and is the
// package-level convenience for New(cfg).Run(ctx).
func Run(ctx context.Context, cfg Config) error {
	return New(cfg).Run(ctx)
}

// Status returns the current session state.
func (d *Driver) Status() State {
	return State(d.state.Load())
}

// Run opens the port, opens the output file and loops until the link
// times out, an error occurs or ctx is cancelled. The first error of
// any kind ends the session; nothing is retried. The output file, if
// it was opened, is closed before Run returns.
func (d *Driver) Run(ctx context.Context) error {
	src, err := serialport.Open(d.cfg.Port, d.cfg.Baud, d.cfg.ReadTimeout)
	if err != nil {
		d.state.Store(int32(StateClosed))
		return err
	}
	defer src.Close()
	d.state.Store(int32(StateConnected))
	logger.Info().Str("port", d.cfg.Port).Int("baud", d.cfg.Baud).Msg("receiving serial data")

	sink, err := logfile.Create(d.cfg.Output)
	if err != nil {
		d.state.Store(int32(StateClosed))
		return err
	}
	logger.Info().Str("file", d.cfg.Output).Msg("writing log data")

	producer, err := d.newProducer(src)
	if err != nil {
		sink.Close()
		d.state.Store(int32(StateClosed))
		return err
	}

	if d.cfg.ConfigFile != "" {
		go NewConfigWatcher(d.cfg.ConfigFile, &d.verbose).Run(ctx)
	}

	d.state.Store(int32(StateLogging))
	loopErr := d.loop(ctx, producer, sink)

	logger.Info().Str("file", d.cfg.Output).Msg("closing file")
	closeErr := sink.Close()
	d.state.Store(int32(StateClosed))

	if loopErr != nil {
		return loopErr
	}
	return closeErr
}

// newProducer builds the output producer for the configured mode.
func (d *Driver) newProducer(src ports.ByteSource) (ports.Producer, error) {
	switch d.cfg.Mode {
	case cliconfig.ModeLines:
		return frame.NewLineStream(src), nil
	case cliconfig.ModeRecords, "":
		return frame.NewRecordStream(src, d.cfg.Sentinel)
	default:
		return nil, fmt.Errorf("unknown mode %q", d.cfg.Mode)
	}
}

// loop produces one unit of output per iteration and appends it to
// the sink. Each step's outcome is classified into continue, clean
// stop (timeout, end of stream, interruption) or error stop; loop
// returns nil for clean stops so the process can exit successfully.
func (d *Driver) loop(ctx context.Context, producer ports.Producer, sink ports.Sink) error {
	for {
		select {
		case <-ctx.Done():
			logger.Info().Msg("interrupted")
			return nil
		default:
		}

		line, err := producer.Next()
		if err != nil {
			switch {
			case errors.Is(err, domain.ErrReadTimeout):
				logger.Info().Msg("timed out")
				return nil
			case errors.Is(err, io.EOF):
				logger.Info().Msg("end of stream")
				return nil
			default:
				logger.Error().Err(err).Msg("read failed")
				return err
			}
		}

		if err := sink.WriteLine(line); err != nil {
			logger.Error().Err(err).Msg("write failed")
			return err
		}
		if d.verbose.Load() {
			fmt.Fprintln(d.echo, line)
		}
	}
}
