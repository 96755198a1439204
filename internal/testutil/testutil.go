package testutil

import (
	"database/sql"
	"strings"
	"testing"

	"github.com/isdelr/fittrack-be/internal/auth"
	"github.com/isdelr/fittrack-be/internal/database"
	"github.com/isdelr/fittrack-be/internal/models"
)

// JWTSecret signs every token minted by the helpers.
const JWTSecret = "test-secret"

var nameCleaner = strings.NewReplacer("/", "_", " ", "_", "#", "_")

// OpenInMemoryDB opens an in-memory SQLite database named after the test and applies migrations.
// The DB is closed through t.Cleanup.
func OpenInMemoryDB(t *testing.T) *sql.DB {
	t.Helper()
	// Shared cache so that every connection of the pool sees the same database.
	d, err := database.New("file:" + nameCleaner.Replace(t.Name()) + "?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { _ = d.Close() })
	if err := database.Migrate(d); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return d
}

// InsertUser stores a user with an unusable password hash and returns its id.
func InsertUser(t *testing.T, db *sql.DB, email string) int64 {
	t.Helper()
	res, err := db.Exec(`INSERT INTO users (email, password_hash) VALUES (?, 'x')`, email)
	if err != nil {
		t.Fatalf("insert user: %v", err)
	}
	id, _ := res.LastInsertId()
	return id
}

// InsertWorkout stores a workout and returns its id.
func InsertWorkout(t *testing.T, db *sql.DB, userID int64, date string, duration int) int64 {
	t.Helper()
	res, err := db.Exec(`INSERT INTO workouts (user_id, date, duration, notes) VALUES (?, ?, ?, 'notes')`, userID, date, duration)
	if err != nil {
		t.Fatalf("insert workout: %v", err)
	}
	id, _ := res.LastInsertId()
	return id
}

// InsertExercise stores a catalog exercise and returns its id.
func InsertExercise(t *testing.T, db *sql.DB, name string) int64 {
	t.Helper()
	res, err := db.Exec(`INSERT INTO exercises (name) VALUES (?)`, name)
	if err != nil {
		t.Fatalf("insert exercise: %v", err)
	}
	id, _ := res.LastInsertId()
	return id
}

// InsertWorkoutExercise stores a workout-exercise and returns its id.
func InsertWorkoutExercise(t *testing.T, db *sql.DB, workoutID, exerciseID int64, sets, reps int, weight float64) int64 {
	t.Helper()
	res, err := db.Exec(`INSERT INTO workout_exercises (workout_id, exercise_id, sets, reps, weight) VALUES (?, ?, ?, ?, ?)`,
		workoutID, exerciseID, sets, reps, weight)
	if err != nil {
		t.Fatalf("insert workout exercise: %v", err)
	}
	id, _ := res.LastInsertId()
	return id
}

// Token returns a bearer token for the given user signed with JWTSecret.
func Token(t *testing.T, m *auth.Manager, id int64, email string) string {
	t.Helper()
	tok, err := m.GenerateJWT(models.User{ID: id, Email: email})
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return tok
}
