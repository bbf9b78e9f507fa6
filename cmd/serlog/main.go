package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"runtime/debug"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	pflag "github.com/spf13/pflag"

	"github.com/serlab/serlog/internal/cliconfig"
	"github.com/serlab/serlog/internal/session"
)

const helpDescription = `
Capture telemetry from a microcontroller's serial port into a local text file.

Modes:
  records   Decode sentinel-framed binary records (FF FF FF FF + 8-byte
            little-endian payload) into "timestamp,v1,v2" CSV lines.
  lines     Copy newline-terminated text lines verbatim, trailing
            whitespace stripped.

The session runs until the link stays quiet for the read timeout, an I/O
error occurs, or the process is interrupted; the output file is closed on
every exit path. Configure via flags, SERLOG_* environment variables, or a
TOML config file (flags win over env, env wins over file).
`

var longHelp = strings.TrimSpace(helpDescription)

var exampleUsage = strings.TrimSpace(`
  serlog records -p /dev/ttyUSB0
  serlog lines -p /dev/ttyACM0 -b 9600 -f boot.log -v
  serlog --config $HOME/.serlog/config.toml
`)

func getVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}

func main() {
	cfg := cliconfig.DefaultConfig()
	var cfgPath string

	log := session.Logger()

	run := func(cmd *cobra.Command, mode string) error {
		// Load config file first (default $HOME/.serlog/config.toml),
		// then apply env and flag overrides.
		cfgFile := cfgPath
		if cfgFile == "" {
			cfgFile = cliconfig.DefaultConfigPath()
		}

		// Build set of changed flags
		changed := map[string]bool{}
		cmd.Root().PersistentFlags().Visit(func(f *pflag.Flag) { changed[f.Name] = true })

		if cfgFile != "" && cliconfig.FileExists(cfgFile) {
			fc, err := cliconfig.LoadFileConfig(cfgFile)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if err := cliconfig.ApplyFileConfig(&cfg, fc, changed); err != nil {
				return err
			}
		} else {
			// No file to reload from; disable the live watcher.
			cfgFile = ""
		}

		// Apply environment variables (SERLOG_*).
		// These override file config but are overridden by flags.
		if err := cliconfig.ApplyEnvConfig(&cfg, changed); err != nil {
			return err
		}

		// The subcommand pins the mode; the root command leaves it to
		// config.
		if mode != "" {
			cfg.Mode = mode
		}

		if err := cfg.Validate(); err != nil {
			return err
		}

		log.Info().Interface("config", cfg).Msg("configuration")

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		go func() {
			<-sigCh
			log.Info().Msg("received signal, stopping...")
			cancel()
		}()

		return session.Run(ctx, session.Config{
			Port:        cfg.Port,
			Baud:        cfg.Baud,
			Output:      cfg.Output,
			Mode:        cfg.Mode,
			Verbose:     cfg.Verbose,
			ReadTimeout: cfg.ReadTimeout,
			ConfigFile:  cfgFile,
		})
	}

	root := &cobra.Command{
		Use:     "serlog",
		Short:   "Log serial telemetry from a microcontroller to a text file",
		Long:    longHelp,
		Example: exampleUsage,
		Version: fmt.Sprintf("%s %s/%s", getVersion(), runtime.GOOS, runtime.GOARCH),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, "")
		},
	}

	root.AddCommand(&cobra.Command{
		Use:   "records",
		Short: "Decode sentinel-framed binary records into CSV lines",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, cliconfig.ModeRecords)
		},
	})
	root.AddCommand(&cobra.Command{
		Use:   "lines",
		Short: "Copy newline-terminated text lines verbatim",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, cliconfig.ModeLines)
		},
	})

	// Flags
	root.PersistentFlags().StringVar(&cfgPath, "config", "", "path to config file (default: $HOME/.serlog/config.toml)")
	root.PersistentFlags().StringVarP(&cfg.Port, "port", "p", cfg.Port, "serial port to read from (required)")
	root.PersistentFlags().IntVarP(&cfg.Baud, "baud", "b", cfg.Baud, "baud rate")
	root.PersistentFlags().StringVarP(&cfg.Output, "output", "f", cfg.Output, "output filename (default: <timestamp>-log_data.csv)")
	root.PersistentFlags().BoolVarP(&cfg.Verbose, "verbose", "v", cfg.Verbose, "echo captured data to stdout")
	root.PersistentFlags().DurationVar(&cfg.ReadTimeout, "read-timeout", cfg.ReadTimeout, "serial read timeout ending the session")

	if err := root.Execute(); err != nil {
		log.Error().Err(err).Msg("serlog")
		os.Exit(1)
	}
}
