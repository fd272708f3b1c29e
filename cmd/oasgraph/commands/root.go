// Package commands implements the oasgraph CLI commands.
package commands

import (
	"log/slog"
	"os"

	"github.com/speakeasy-api/oasgraph/logging"
	"github.com/spf13/cobra"
)

// Apply adds the global flags and every command to root.
func Apply(root *cobra.Command) {
	root.PersistentFlags().BoolP("verbose", "v", false, "verbose output")
	root.PersistentFlags().StringP("config", "c", "", "path to the configuration file (default: ./.oasgraph.yaml)")

	root.AddCommand(newValidateCmd())
	root.AddCommand(newQueryCmd())
}

// settings loads the configuration and applies the global flags to it.
func settings(cmd *cobra.Command) (*Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := LoadConfig(path)
	if err != nil {
		return nil, err
	}
	if cmd.Flags().Changed("verbose") {
		cfg.Verbose, _ = cmd.Flags().GetBool("verbose")
	}
	return cfg, nil
}

func newLogger(cfg *Config) logging.Logger {
	if !cfg.Verbose {
		return logging.NopLogger{}
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})
	return logging.NewSlogAdapter(slog.New(handler))
}
