package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/isdelr/fittrack-be/internal/database"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Manage the database schema",
	Long: `Apply or roll back the embedded SQL migrations against DATABASE_PATH.

USAGE:

  fittrack migrate up        # Apply every pending migration
  fittrack migrate down      # Roll back the most recent migration
  fittrack migrate version   # Print the current schema version`,
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply pending migrations",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDatabase(cfg.DatabasePath)
		if err != nil {
			return err
		}
		defer db.Close()

		if err := database.Migrate(db); err != nil {
			return err
		}
		version, _, err := database.Version(db)
		if err != nil {
			return err
		}
		color.Green("✓ Schema is at version %d", version)
		return nil
	},
}

var migrateDownCmd = &cobra.Command{
	Use:   "down",
	Short: "Roll back the most recent migration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDatabase(cfg.DatabasePath)
		if err != nil {
			return err
		}
		defer db.Close()

		if err := database.Rollback(db); err != nil {
			return err
		}
		version, _, err := database.Version(db)
		if err != nil {
			return err
		}
		color.Yellow("✗ Rolled back, schema is at version %d", version)
		return nil
	},
}

var migrateVersionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the current schema version",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDatabase(cfg.DatabasePath)
		if err != nil {
			return err
		}
		defer db.Close()

		version, dirty, err := database.Version(db)
		if err != nil {
			return err
		}
		if version == 0 {
			color.Yellow("No migrations applied")
			return nil
		}
		fmt.Printf("Schema version %d", version)
		if dirty {
			fmt.Print(" ")
			color.New(color.FgRed).Print("(dirty)")
		}
		fmt.Println()
		return nil
	},
}

func init() {
	migrateCmd.AddCommand(migrateUpCmd, migrateDownCmd, migrateVersionCmd)
	rootCmd.AddCommand(migrateCmd)
}
