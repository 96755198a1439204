package services

import (
	"context"
	"database/sql"
	"time"

	"github.com/isdelr/fittrack-be/internal/models"
)

// StatisticServiceProvider defines the interface for read-only training aggregates.
type StatisticServiceProvider interface {
	GetAllTimeStat(ctx context.Context, userID int64) (models.AllTimeStat, error)
	GetWeeklyStat(ctx context.Context, userID int64) (models.WeeklyStat, error)
}

// StatisticService computes aggregates over a user's workouts.
type StatisticService struct {
	db  *sql.DB
	now func() time.Time
}

// NewStatisticService creates a new StatisticService anchored on the wall clock.
func NewStatisticService(db *sql.DB) *StatisticService {
	return &StatisticService{db: db, now: time.Now}
}

// WithClock returns a copy of s that uses now as the reference time.
func (s *StatisticService) WithClock(now func() time.Time) *StatisticService {
	return &StatisticService{db: s.db, now: now}
}

// GetAllTimeStat sums the duration of every workout of userID.
func (s *StatisticService) GetAllTimeStat(ctx context.Context, userID int64) (models.AllTimeStat, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var stat models.AllTimeStat
	err := s.db.QueryRowContext(ctx,
		"SELECT COALESCE(SUM(duration), 0) FROM workouts WHERE user_id = ?", userID,
	).Scan(&stat.TotalDuration)
	return stat, err
}

// GetWeeklyStat returns the volume and workout count of the Monday-Sunday week
// that contains the current day. The window is computed by SQLite:
// '-6 days' then 'weekday 1' lands on the Monday on or before the day, and
// 'weekday 0' on the Sunday on or after it.
func (s *StatisticService) GetWeeklyStat(ctx context.Context, userID int64) (models.WeeklyStat, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	day := s.now().UTC().Format(models.DateLayout)
	var stat models.WeeklyStat
	err := s.db.QueryRowContext(ctx, `
		SELECT
			COALESCE(SUM(we.weight * we.reps * we.sets), 0),
			COUNT(DISTINCT w.id)
		FROM workouts w
		LEFT JOIN workout_exercises we ON we.workout_id = w.id
		WHERE w.user_id = ?
			AND DATE(w.date) BETWEEN DATE(?, '-6 days', 'weekday 1') AND DATE(?, 'weekday 0')`,
		userID, day, day,
	).Scan(&stat.TotalVolume, &stat.WorkoutCount)
	return stat, err
}
