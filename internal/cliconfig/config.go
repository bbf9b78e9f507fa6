package cliconfig

import (
	"fmt"
	"strconv"
	"time"
)

// DefaultBaud is the serial link speed used when none is configured.
const DefaultBaud = 115200

// DefaultReadTimeout bounds every blocking read on the serial port; a
// link that stays quiet for this long ends the session cleanly.
const DefaultReadTimeout = 10 * time.Second

// Capture modes.
const (
	ModeRecords = "records"
	ModeLines   = "lines"
)

// Config holds CLI configuration for serlog.
type Config struct {
	// Port is the serial device to read from (e.g. /dev/ttyUSB0).
	Port string

	// Baud is the serial link speed.
	Baud int

	// Output is the log file path. Empty means derive a name from the
	// current timestamp during Validate.
	Output string

	// Mode selects the capture pipeline: "records" for sentinel-framed
	// binary telemetry, "lines" for verbatim text lines.
	Mode string

	// Verbose echoes every captured line to stdout.
	Verbose bool

	// ReadTimeout is the per-read timeout on the serial port.
	ReadTimeout time.Duration
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		Baud:        DefaultBaud,
		Mode:        ModeRecords,
		ReadTimeout: DefaultReadTimeout,
	}
}

// DefaultOutputName derives the default log filename from a
// timestamp, e.g. 2026-08-26-153045-log_data.csv.
func DefaultOutputName(now time.Time) string {
	return now.Format("2006-01-02-150405") + "-log_data.csv"
}

// Validate checks the configuration for errors and sets derived
// defaults. A missing port is a usage error; nothing is opened.
func (c *Config) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("port is required")
	}
	if c.Baud <= 0 {
		return fmt.Errorf("baud must be positive")
	}
	if c.ReadTimeout <= 0 {
		return fmt.Errorf("read timeout must be positive")
	}
	switch c.Mode {
	case ModeRecords, ModeLines:
	default:
		return fmt.Errorf("mode must be %q or %q", ModeRecords, ModeLines)
	}
	if c.Output == "" {
		c.Output = DefaultOutputName(time.Now())
	}
	return nil
}

// configSetter helps apply configuration values while respecting flag
// precedence. It only applies values if the corresponding flag hasn't
// been explicitly set.
type configSetter struct {
	changed map[string]bool
}

// newConfigSetter creates a new setter with the given changed flags map.
func newConfigSetter(changed map[string]bool) *configSetter {
	return &configSetter{changed: changed}
}

// setString sets a string value if not empty and flag not changed.
func (s *configSetter) setString(flag, value string, dst *string) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value
}

// setInt sets an int value if positive and flag not changed.
func (s *configSetter) setInt(flag string, value int, dst *int) {
	if value <= 0 || s.changed[flag] {
		return
	}
	*dst = value
}

// setDuration parses and sets a duration from string if valid and flag not changed.
func (s *configSetter) setDuration(flag, value string, dst *time.Duration) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	*dst = d
	return nil
}

// setBool sets a bool value from a pointer if not nil and flag not changed.
func (s *configSetter) setBool(flag string, value *bool, dst *bool) {
	if value == nil || s.changed[flag] {
		return
	}
	*dst = *value
}

// setIntFromString parses a string to int and sets the destination if
// valid. Used for environment variables that come as strings.
func (s *configSetter) setIntFromString(flag, value string, dst *int) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	i, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	if i <= 0 {
		return nil
	}
	*dst = i
	return nil
}

// setBoolFromString parses a string to bool and sets the destination.
// Accepts "true", "1" as true, anything else as false.
func (s *configSetter) setBoolFromString(flag, value string, dst *bool) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value == "true" || value == "1"
}
