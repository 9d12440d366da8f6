// Package cmd implements the invoicing command line.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/satheeshds/invoicing/config"
	"github.com/satheeshds/invoicing/logging"
)

// version is set at build time with -ldflags "-X github.com/satheeshds/invoicing/cmd.version=...".
var version = "dev"

// cfg is loaded before any subcommand runs.
var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "invoicing",
	Short: "Invoicing and inventory API server",
	Long: `Invoicing serves a small invoicing/inventory API: invoices with
sequential numbers, a product catalog with optional images stored on
Cloudinary, and sales analytics aggregated in MongoDB.

Running without a subcommand starts the server.`,
	Version:           version,
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
	RunE:              runServe,
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		logging.Error().Err(err).Msg("command failed")
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "path to a YAML config file (overrides "+config.ConfigPathEnvVar+")")
	rootCmd.PersistentFlags().String("log-level", "", "log level: trace, debug, info, warn, error")
	addServeFlags(rootCmd)
}

func loadConfig(cmd *cobra.Command, _ []string) error {
	if path, _ := cmd.Flags().GetString("config"); path != "" {
		if err := os.Setenv(config.ConfigPathEnvVar, path); err != nil {
			return err
		}
	}

	loaded, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}
	if level, _ := cmd.Flags().GetString("log-level"); level != "" {
		if !logging.ValidLevel(level) {
			return fmt.Errorf("invalid --log-level %q", level)
		}
		loaded.Logging.Level = level
	}

	logging.Init(loaded.LoggerConfig())
	cfg = loaded
	return nil
}
