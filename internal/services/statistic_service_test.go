package services

import (
	"context"
	"testing"
	"time"

	"github.com/isdelr/fittrack-be/internal/testutil"
)

func TestStatisticService(t *testing.T) {
	db := testutil.OpenInMemoryDB(t)
	ctx := context.Background()

	u := testutil.InsertUser(t, db, "a@x.com")
	other := testutil.InsertUser(t, db, "b@x.com")
	squat := testutil.InsertExercise(t, db, "Squat")

	// Week of Monday 2024-01-08 .. Sunday 2024-01-14.
	mon := testutil.InsertWorkout(t, db, u, "2024-01-08", 30)
	sun := testutil.InsertWorkout(t, db, u, "2024-01-14", 20)
	testutil.InsertWorkout(t, db, u, "2024-01-10", 15) // no exercises, still counted
	before := testutil.InsertWorkout(t, db, u, "2024-01-07", 60)
	after := testutil.InsertWorkout(t, db, u, "2024-01-15", 45)
	theirs := testutil.InsertWorkout(t, db, other, "2024-01-09", 90)

	testutil.InsertWorkoutExercise(t, db, mon, squat, 3, 5, 100)  // 1500
	testutil.InsertWorkoutExercise(t, db, mon, squat, 1, 10, 50)  // 500
	testutil.InsertWorkoutExercise(t, db, sun, squat, 2, 2, 12.5) // 50
	testutil.InsertWorkoutExercise(t, db, before, squat, 5, 5, 200)
	testutil.InsertWorkoutExercise(t, db, after, squat, 5, 5, 200)
	testutil.InsertWorkoutExercise(t, db, theirs, squat, 5, 5, 200)

	base := NewStatisticService(db)

	allTime, err := base.GetAllTimeStat(ctx, u)
	if err != nil {
		t.Fatalf("all time: %v", err)
	}
	if allTime.TotalDuration != 30+20+15+60+45 {
		t.Fatalf("total duration = %d, want 170", allTime.TotalDuration)
	}

	for _, day := range []string{"2024-01-08", "2024-01-11", "2024-01-14"} {
		t.Run("now="+day, func(t *testing.T) {
			now, _ := time.Parse("2006-01-02", day)
			svc := base.WithClock(func() time.Time { return now.Add(15 * time.Hour) })
			weekly, err := svc.GetWeeklyStat(ctx, u)
			if err != nil {
				t.Fatalf("weekly: %v", err)
			}
			if weekly.TotalVolume != 2050 {
				t.Errorf("volume = %v, want 2050", weekly.TotalVolume)
			}
			if weekly.WorkoutCount != 3 {
				t.Errorf("workout count = %d, want 3", weekly.WorkoutCount)
			}
		})
	}

	t.Run("clock outside UTC", func(t *testing.T) {
		// Monday 05:00 at UTC+10 is still Sunday in UTC.
		zone := time.FixedZone("UTC+10", 10*60*60)
		svc := base.WithClock(func() time.Time { return time.Date(2024, 1, 15, 5, 0, 0, 0, zone) })
		weekly, err := svc.GetWeeklyStat(ctx, u)
		if err != nil {
			t.Fatalf("weekly: %v", err)
		}
		if weekly.TotalVolume != 2050 || weekly.WorkoutCount != 3 {
			t.Fatalf("expected the UTC week of 2024-01-08, got %+v", weekly)
		}
	})

	t.Run("empty week", func(t *testing.T) {
		svc := base.WithClock(func() time.Time { return time.Date(2030, 6, 5, 12, 0, 0, 0, time.UTC) })
		weekly, err := svc.GetWeeklyStat(ctx, u)
		if err != nil {
			t.Fatalf("weekly: %v", err)
		}
		if weekly.TotalVolume != 0 || weekly.WorkoutCount != 0 {
			t.Fatalf("expected zero stats, got %+v", weekly)
		}
	})

	t.Run("no workouts at all", func(t *testing.T) {
		nobody := testutil.InsertUser(t, db, "c@x.com")
		stat, err := base.GetAllTimeStat(ctx, nobody)
		if err != nil || stat.TotalDuration != 0 {
			t.Fatalf("expected zero duration, got %+v err=%v", stat, err)
		}
	})
}
