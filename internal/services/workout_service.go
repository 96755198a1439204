package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/isdelr/fittrack-be/internal/database"
	"github.com/isdelr/fittrack-be/internal/models"
)

// WorkoutServiceProvider defines the interface for workout services.
type WorkoutServiceProvider interface {
	GetAllWorkouts(ctx context.Context) ([]models.Workout, error)
	GetWorkoutsByUser(ctx context.Context, userID int64) ([]models.Workout, error)
	GetWorkoutByID(ctx context.Context, id int64) (models.Workout, error)
	GetOwnedWorkout(ctx context.Context, callerID, id int64) (models.Workout, error)
	CreateWorkout(ctx context.Context, callerID int64, workout models.Workout) (models.Workout, error)
	UpdateWorkout(ctx context.Context, callerID, id int64, changes models.WorkoutChanges) (models.Workout, error)
	DeleteWorkout(ctx context.Context, callerID, id int64) error
}

// WorkoutService provides business logic for workouts.
type WorkoutService struct {
	db     *sql.DB
	events EventServiceProvider
}

// NewWorkoutService creates a new WorkoutService.
func NewWorkoutService(db *sql.DB, events EventServiceProvider) *WorkoutService {
	return &WorkoutService{db: db, events: events}
}

const workoutColumns = "id, user_id, date, duration, notes, created_at"

// GetAllWorkouts retrieves the workouts of every user.
func (s *WorkoutService) GetAllWorkouts(ctx context.Context) ([]models.Workout, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	rows, err := s.db.QueryContext(ctx, "SELECT "+workoutColumns+" FROM workouts ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanWorkouts(rows)
}

// GetWorkoutsByUser retrieves the workouts owned by userID, newest first.
func (s *WorkoutService) GetWorkoutsByUser(ctx context.Context, userID int64) ([]models.Workout, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	rows, err := s.db.QueryContext(ctx, "SELECT "+workoutColumns+" FROM workouts WHERE user_id = ? ORDER BY date DESC, id DESC", userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanWorkouts(rows)
}

// GetWorkoutByID retrieves a single workout without any ownership check.
func (s *WorkoutService) GetWorkoutByID(ctx context.Context, id int64) (models.Workout, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	row := s.db.QueryRowContext(ctx, "SELECT "+workoutColumns+" FROM workouts WHERE id = ?", id)
	workout, err := scanWorkout(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Workout{}, fmt.Errorf("workout %d: %w", id, ErrWorkoutNotFound)
	}
	return workout, err
}

// GetOwnedWorkout retrieves a workout and checks it belongs to callerID.
func (s *WorkoutService) GetOwnedWorkout(ctx context.Context, callerID, id int64) (models.Workout, error) {
	workout, err := s.GetWorkoutByID(ctx, id)
	if err != nil {
		return models.Workout{}, err
	}
	if workout.UserID != callerID {
		return models.Workout{}, fmt.Errorf("workout %d: %w", id, ErrNotOwner)
	}
	return workout, nil
}

// CreateWorkout stores a workout owned by callerID. The owner on the argument is ignored.
func (s *WorkoutService) CreateWorkout(ctx context.Context, callerID int64, workout models.Workout) (models.Workout, error) {
	execCtx, cancel := withTimeout(ctx)
	defer cancel()

	res, err := s.db.ExecContext(execCtx,
		"INSERT INTO workouts (user_id, date, duration, notes) VALUES (?, ?, ?, ?)",
		callerID, workout.Date, workout.Duration, workout.Notes)
	if err != nil {
		if database.IsConstraintViolation(err) {
			return models.Workout{}, fmt.Errorf("user %d: %w", callerID, ErrUserNotFound)
		}
		return models.Workout{}, err
	}
	if err := expectOneRow(res, "insert workout"); err != nil {
		return models.Workout{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return models.Workout{}, err
	}

	created, err := s.GetWorkoutByID(ctx, id)
	if err != nil {
		return models.Workout{}, err
	}
	recordEvent(ctx, s.events, callerID, models.EventWorkoutCreate,
		fmt.Sprintf("Workout on %s (%d min) created.", created.Date, created.Duration))
	return created, nil
}

// UpdateWorkout merges changes into a workout owned by callerID.
func (s *WorkoutService) UpdateWorkout(ctx context.Context, callerID, id int64, changes models.WorkoutChanges) (models.Workout, error) {
	workout, err := s.GetOwnedWorkout(ctx, callerID, id)
	if err != nil {
		return models.Workout{}, err
	}
	changes.Apply(&workout)

	execCtx, cancel := withTimeout(ctx)
	defer cancel()
	res, err := s.db.ExecContext(execCtx,
		"UPDATE workouts SET date = ?, duration = ?, notes = ? WHERE id = ?",
		workout.Date, workout.Duration, workout.Notes, id)
	if err != nil {
		return models.Workout{}, err
	}
	if err := expectOneRow(res, "update workout"); err != nil {
		return models.Workout{}, err
	}

	recordEvent(ctx, s.events, callerID, models.EventWorkoutUpdate, fmt.Sprintf("Workout on %s updated.", workout.Date))
	return workout, nil
}

// DeleteWorkout removes a workout owned by callerID and, by cascade, its exercises.
func (s *WorkoutService) DeleteWorkout(ctx context.Context, callerID, id int64) error {
	workout, err := s.GetOwnedWorkout(ctx, callerID, id)
	if err != nil {
		return err
	}

	execCtx, cancel := withTimeout(ctx)
	defer cancel()
	res, err := s.db.ExecContext(execCtx, "DELETE FROM workouts WHERE id = ?", id)
	if err != nil {
		return err
	}
	if err := expectOneRow(res, "delete workout"); err != nil {
		return err
	}

	recordEvent(ctx, s.events, callerID, models.EventWorkoutDelete, fmt.Sprintf("Workout on %s deleted.", workout.Date))
	return nil
}

func scanWorkouts(rows *sql.Rows) ([]models.Workout, error) {
	workouts := []models.Workout{}
	for rows.Next() {
		workout, err := scanWorkout(rows)
		if err != nil {
			return nil, err
		}
		workouts = append(workouts, workout)
	}
	return workouts, rows.Err()
}

func scanWorkout(scanner rowScanner) (models.Workout, error) {
	var w models.Workout
	err := scanner.Scan(&w.ID, &w.UserID, &w.Date, &w.Duration, &w.Notes, &w.CreatedAt)
	return w, err
}
