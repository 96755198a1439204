package cli

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/isdelr/fittrack-be/internal/database"
)

func TestVersionCommand(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"version"})
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
	})

	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if got := out.String(); got != "fittrack dev\n" {
		t.Fatalf("output = %q", got)
	}
}

func TestMigrateCommands(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "fittrack.sqlite")
	t.Setenv("DATABASE_PATH", path)
	t.Setenv("APP_ENV", "development")
	t.Setenv("LOG_LEVEL", "error")
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	for _, args := range [][]string{
		{"migrate", "up"},
		{"migrate", "down"},
		{"migrate", "version"},
	} {
		rootCmd.SetArgs(args)
		if err := rootCmd.Execute(); err != nil {
			t.Fatalf("%v: %v", args, err)
		}
	}

	db, err := openDatabase(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer db.Close()
	version, dirty, err := database.Version(db)
	if err != nil || dirty || version != 1 {
		t.Fatalf("version = %d dirty=%v err=%v, want 1", version, dirty, err)
	}
}
