package monitoring

import (
	"context"
	"testing"
	"time"

	"github.com/isdelr/fittrack-be/internal/testutil"
)

type gaugeRecorder map[string]int64

func (g gaugeRecorder) SetTableRows(table string, n int64) { g[table] = n }

func TestScheduler_RunOnce(t *testing.T) {
	db := testutil.OpenInMemoryDB(t)
	u := testutil.InsertUser(t, db, "a@x.com")
	testutil.InsertWorkout(t, db, u, "2024-01-08", 30)
	testutil.InsertWorkout(t, db, u, "2024-01-09", 30)

	for id, created := range map[string]string{
		"old":    "2024-01-01 10:00:00",
		"recent": "2024-06-01 10:00:00",
	} {
		if _, err := db.Exec(`INSERT INTO events (id, user_id, type, message, created_at) VALUES (?, ?, 'workout.create', 'm', ?)`, id, u, created); err != nil {
			t.Fatalf("insert event: %v", err)
		}
	}

	gauge := gaugeRecorder{}
	s, err := NewScheduler(db, gauge, "0 3 * * *")
	if err != nil {
		t.Fatalf("new scheduler: %v", err)
	}
	s.now = func() time.Time { return time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC) }

	if err := s.RunOnce(context.Background()); err != nil {
		t.Fatalf("run once: %v", err)
	}

	var remaining []string
	rows, err := db.Query("SELECT id FROM events")
	if err != nil {
		t.Fatalf("query events: %v", err)
	}
	for rows.Next() {
		var id string
		rows.Scan(&id)
		remaining = append(remaining, id)
	}
	rows.Close()
	if len(remaining) != 1 || remaining[0] != "recent" {
		t.Fatalf("remaining events = %v, want [recent]", remaining)
	}

	want := map[string]int64{"users": 1, "workouts": 2, "exercises": 0, "workout_exercises": 0, "events": 1}
	for table, n := range want {
		if gauge[table] != n {
			t.Errorf("%s rows = %d, want %d", table, gauge[table], n)
		}
	}
}

func TestNewScheduler_RejectsBadSpec(t *testing.T) {
	db := testutil.OpenInMemoryDB(t)
	if _, err := NewScheduler(db, nil, "every tuesday"); err == nil {
		t.Fatal("expected an error for an invalid cron spec")
	}
}

func TestScheduler_RunAndStop(t *testing.T) {
	db := testutil.OpenInMemoryDB(t)
	s, err := NewScheduler(db, nil, "@every 1h")
	if err != nil {
		t.Fatalf("new scheduler: %v", err)
	}
	s.Run()
	s.Stop()
}
