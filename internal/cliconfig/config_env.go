package cliconfig

import "os"

// ApplyEnvConfig applies configuration from environment variables
// (SERLOG_*). It respects flags that have been explicitly set
// (changed map). Returns an error if any environment variable has an
// invalid format.
func ApplyEnvConfig(cfg *Config, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("port", os.Getenv("SERLOG_PORT"), &cfg.Port)
	s.setString("output", os.Getenv("SERLOG_OUTPUT"), &cfg.Output)
	s.setString("mode", os.Getenv("SERLOG_MODE"), &cfg.Mode)

	if err := s.setIntFromString("baud", os.Getenv("SERLOG_BAUD"), &cfg.Baud); err != nil {
		return err
	}

	if err := s.setDuration("read-timeout", os.Getenv("SERLOG_READ_TIMEOUT"), &cfg.ReadTimeout); err != nil {
		return err
	}

	s.setBoolFromString("verbose", os.Getenv("SERLOG_VERBOSE"), &cfg.Verbose)

	return nil
}
