// Package cli wires the fittrack command line: the API server and schema tooling.
package cli

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/isdelr/fittrack-be/internal/config"
	"github.com/isdelr/fittrack-be/internal/database"
	"github.com/isdelr/fittrack-be/internal/logger"
	"github.com/spf13/cobra"
)

// Version is set at build time with -ldflags "-X github.com/isdelr/fittrack-be/internal/cli.Version=...".
var Version = "dev"

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "fittrack",
	Short: "Fitness tracking REST API",
	Long: `fittrack serves the workout tracking API and manages its SQLite schema.

  $ fittrack serve            # Apply migrations and start the HTTP server
  $ fittrack migrate up       # Apply pending migrations
  $ fittrack migrate down     # Roll back the last migration
  $ fittrack migrate version  # Show the schema version

Configuration is read from the environment and an optional .env file.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd == versionCmd || cmd.Name() == "help" {
			return nil
		}

		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		logger.Init(cfg.LogLevel, !cfg.IsProduction())
		return nil
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// openDatabase creates the database directory if needed and opens the store.
func openDatabase(path string) (*sql.DB, error) {
	if !strings.HasPrefix(path, "file:") && path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}
	db, err := database.New(path)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	return db, nil
}
