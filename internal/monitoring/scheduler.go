package monitoring

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

const (
	// EventRetention is how long activity events are kept.
	EventRetention = 90 * 24 * time.Hour

	maintenanceTimeout = time.Minute
)

// countedTables are published as row-count gauges after each run.
var countedTables = []string{"users", "workouts", "exercises", "workout_exercises", "events"}

// RowGauge receives the table sizes measured by a maintenance run.
type RowGauge interface {
	SetTableRows(table string, n int64)
}

// Scheduler runs database maintenance on a cron schedule.
type Scheduler struct {
	db    *sql.DB
	gauge RowGauge
	cron  *cron.Cron
	now   func() time.Time
}

// NewScheduler creates a scheduler that runs maintenance on spec, a standard
// five-field cron expression. gauge may be nil.
func NewScheduler(db *sql.DB, gauge RowGauge, spec string) (*Scheduler, error) {
	s := &Scheduler{
		db:    db,
		gauge: gauge,
		cron:  cron.New(),
		now:   time.Now,
	}
	if _, err := s.cron.AddFunc(spec, s.runScheduled); err != nil {
		return nil, fmt.Errorf("invalid maintenance schedule %q: %w", spec, err)
	}
	return s, nil
}

// Run performs one maintenance pass immediately and then starts the cron loop.
func (s *Scheduler) Run() {
	log.Info().Msg("Starting background maintenance scheduler...")
	s.runScheduled()
	s.cron.Start()
}

// Stop halts the scheduler and waits for a running pass to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	log.Info().Msg("Stopped background maintenance scheduler.")
}

func (s *Scheduler) runScheduled() {
	ctx, cancel := context.WithTimeout(context.Background(), maintenanceTimeout)
	defer cancel()
	if err := s.RunOnce(ctx); err != nil {
		log.Error().Err(err).Msg("Scheduler: maintenance failed")
	}
}

// RunOnce prunes expired events, lets SQLite refresh its query planner
// statistics and publishes the row count of every table.
func (s *Scheduler) RunOnce(ctx context.Context) error {
	cutoff := s.now().Add(-EventRetention).UTC().Format("2006-01-02 15:04:05")
	res, err := s.db.ExecContext(ctx, "DELETE FROM events WHERE created_at < ?", cutoff)
	if err != nil {
		return fmt.Errorf("prune events: %w", err)
	}
	pruned, _ := res.RowsAffected()

	if _, err := s.db.ExecContext(ctx, "PRAGMA optimize"); err != nil {
		return fmt.Errorf("optimize: %w", err)
	}

	counts := make(map[string]int64, len(countedTables))
	for _, table := range countedTables {
		var n int64
		// Table names come from countedTables, never from input.
		if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+table).Scan(&n); err != nil {
			return fmt.Errorf("count %s: %w", table, err)
		}
		counts[table] = n
		if s.gauge != nil {
			s.gauge.SetTableRows(table, n)
		}
	}

	log.Info().
		Int64("events_pruned", pruned).
		Int64("users", counts["users"]).
		Int64("workouts", counts["workouts"]).
		Msg("Scheduler: maintenance completed")
	return nil
}
