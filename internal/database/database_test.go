package database

import (
	"database/sql"
	"testing"
)

func openMemory(t *testing.T, name string) *sql.DB {
	t.Helper()
	db, err := New("file:" + name + "?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func mustExec(t *testing.T, db *sql.DB, query string) {
	t.Helper()
	if _, err := db.Exec(query); err != nil {
		t.Fatalf("exec %q: %v", query, err)
	}
}

func TestMigrate_AppliesAllAndIsIdempotent(t *testing.T) {
	db := openMemory(t, "migrate_idempotent")

	if err := Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if err := Migrate(db); err != nil {
		t.Fatalf("second migrate should be a no-op: %v", err)
	}

	v, dirty, err := Version(db)
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	if v != 2 || dirty {
		t.Fatalf("version = %d dirty=%v, want 2 clean", v, dirty)
	}

	for _, table := range []string{"users", "workouts", "exercises", "workout_exercises", "events"} {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name = ?`, table).Scan(&name)
		if err != nil {
			t.Errorf("table %s missing: %v", table, err)
		}
	}
}

func TestRollback_RevertsLastMigration(t *testing.T) {
	db := openMemory(t, "migrate_rollback")
	if err := Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if err := Rollback(db); err != nil {
		t.Fatalf("rollback: %v", err)
	}
	v, _, err := Version(db)
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	if v != 1 {
		t.Fatalf("version after rollback = %d, want 1", v)
	}
	var n int
	if err := db.QueryRow(`SELECT COUNT(*) FROM sqlite_master WHERE name = 'events'`).Scan(&n); err != nil {
		t.Fatalf("query: %v", err)
	}
	if n != 0 {
		t.Fatal("events table should be gone after rollback")
	}
}

func TestForeignKeysEnforced(t *testing.T) {
	db := openMemory(t, "migrate_fk")
	if err := Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	_, err := db.Exec(`INSERT INTO workouts (user_id, date, duration, notes) VALUES (999, '2024-01-01', 30, 'run')`)
	if err == nil {
		t.Fatal("expected foreign key violation for unknown user")
	}
	if !IsConstraintViolation(err) {
		t.Fatalf("expected constraint violation, got %v", err)
	}
}

func TestCascadeOnUserDelete(t *testing.T) {
	db := openMemory(t, "migrate_cascade")
	if err := Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	mustExec(t, db, `INSERT INTO users (id, email, password_hash) VALUES (1, 'a@x.com', 'h')`)
	mustExec(t, db, `INSERT INTO exercises (id, name) VALUES (1, 'Squat')`)
	mustExec(t, db, `INSERT INTO workouts (id, user_id, date, duration, notes) VALUES (1, 1, '2024-01-01', 30, 'run')`)
	mustExec(t, db, `INSERT INTO workout_exercises (workout_id, exercise_id, sets, reps, weight) VALUES (1, 1, 3, 5, 100)`)
	mustExec(t, db, `DELETE FROM users WHERE id = 1`)

	var workouts, entries int
	db.QueryRow(`SELECT COUNT(*) FROM workouts`).Scan(&workouts)
	db.QueryRow(`SELECT COUNT(*) FROM workout_exercises`).Scan(&entries)
	if workouts != 0 || entries != 0 {
		t.Fatalf("cascade failed: workouts=%d workout_exercises=%d", workouts, entries)
	}
}

func TestWithPragmas(t *testing.T) {
	if got := withPragmas("app.db"); got != "app.db?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)" {
		t.Errorf("unexpected dsn %q", got)
	}
	if got := withPragmas("file:x?mode=memory"); got != "file:x?mode=memory&_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)" {
		t.Errorf("unexpected dsn %q", got)
	}
}
