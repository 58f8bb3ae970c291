package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/signalmesh/edgeboot/pkg/cli"
	"github.com/signalmesh/edgeboot/pkg/config"
)

var (
	// Global flags
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "edgeboot",
	Short: "Edgeboot - edge-gateway bootstrap",
	Long: `Edgeboot synthesizes gateway configuration from the runtime environment,
validates it before it can affect live traffic, and supervises the
resulting network-facing processes.

The bootstrap is fail-closed: any configuration, rendering, validation
or discovery error prevents a listener from ever being started, and the
previously promoted configuration is left untouched.`,
	Version: Version,
}

// Execute runs the root command, mapping error categories to exit
// codes an external process manager can act on.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(cli.ExitCode(err))
	}
}

func init() {
	// Global persistent flags (available to all subcommands)
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "settings file path (optional)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

// setupLogging installs the default structured logger according to the
// settings, with --verbose forcing debug level.
func setupLogging(settings *config.Settings) {
	level := slog.LevelInfo
	switch settings.Logging.Level {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	if verbose {
		level = slog.LevelDebug
	}

	options := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if settings.Logging.Format == "text" {
		handler = slog.NewTextHandler(os.Stderr, options)
	} else {
		handler = slog.NewJSONHandler(os.Stderr, options)
	}
	slog.SetDefault(slog.New(handler))
}
