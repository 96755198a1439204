package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/isdelr/fittrack-be/internal/models"
)

// WorkoutExerciseServiceProvider defines the interface for workout-exercise services.
type WorkoutExerciseServiceProvider interface {
	GetAllWorkoutExercises(ctx context.Context) ([]models.WorkoutExercise, error)
	GetWorkoutExerciseByID(ctx context.Context, id int64) (models.WorkoutExercise, error)
	GetWorkoutExercisesByUser(ctx context.Context, userID int64) ([]models.WorkoutExercise, error)
	GetWorkoutExercisesByWorkout(ctx context.Context, callerID, workoutID int64) ([]models.WorkoutExercise, error)
	CreateWorkoutExercise(ctx context.Context, callerID int64, we models.WorkoutExercise) (models.WorkoutExercise, error)
	UpdateWorkoutExercise(ctx context.Context, callerID, id int64, changes models.WorkoutExerciseChanges) (models.WorkoutExercise, error)
	DeleteWorkoutExercise(ctx context.Context, callerID, id int64) error
}

// WorkoutExerciseService manages the exercises performed within workouts.
// Ownership is transitive: a workout-exercise belongs to the owner of its workout.
type WorkoutExerciseService struct {
	db        *sql.DB
	workouts  WorkoutServiceProvider
	exercises ExerciseServiceProvider
	events    EventServiceProvider
}

// NewWorkoutExerciseService creates a new WorkoutExerciseService.
func NewWorkoutExerciseService(db *sql.DB, workouts WorkoutServiceProvider, exercises ExerciseServiceProvider, events EventServiceProvider) *WorkoutExerciseService {
	return &WorkoutExerciseService{
		db:        db,
		workouts:  workouts,
		exercises: exercises,
		events:    events,
	}
}

const workoutExerciseColumns = "we.id, we.workout_id, we.exercise_id, we.sets, we.reps, we.weight"

func (s *WorkoutExerciseService) GetAllWorkoutExercises(ctx context.Context) ([]models.WorkoutExercise, error) {
	return s.query(ctx, "SELECT "+workoutExerciseColumns+" FROM workout_exercises we ORDER BY we.id")
}

func (s *WorkoutExerciseService) GetWorkoutExerciseByID(ctx context.Context, id int64) (models.WorkoutExercise, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	row := s.db.QueryRowContext(ctx, "SELECT "+workoutExerciseColumns+" FROM workout_exercises we WHERE we.id = ?", id)
	we, err := scanWorkoutExercise(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.WorkoutExercise{}, fmt.Errorf("workout exercise %d: %w", id, ErrWorkoutExerciseNotFound)
	}
	return we, err
}

// GetWorkoutExercisesByUser lists every workout-exercise whose workout belongs to userID.
func (s *WorkoutExerciseService) GetWorkoutExercisesByUser(ctx context.Context, userID int64) ([]models.WorkoutExercise, error) {
	return s.query(ctx, `
		SELECT `+workoutExerciseColumns+`
		FROM workout_exercises we
		JOIN workouts w ON w.id = we.workout_id
		WHERE w.user_id = ?
		ORDER BY we.id`, userID)
}

// GetWorkoutExercisesByWorkout lists the exercises of a workout owned by callerID.
func (s *WorkoutExerciseService) GetWorkoutExercisesByWorkout(ctx context.Context, callerID, workoutID int64) ([]models.WorkoutExercise, error) {
	if _, err := s.workouts.GetOwnedWorkout(ctx, callerID, workoutID); err != nil {
		return nil, err
	}
	return s.query(ctx, "SELECT "+workoutExerciseColumns+" FROM workout_exercises we WHERE we.workout_id = ? ORDER BY we.id", workoutID)
}

// CreateWorkoutExercise adds an exercise to a workout owned by callerID.
func (s *WorkoutExerciseService) CreateWorkoutExercise(ctx context.Context, callerID int64, we models.WorkoutExercise) (models.WorkoutExercise, error) {
	exercise, err := s.exercises.GetExerciseByID(ctx, we.ExerciseID)
	if err != nil {
		return models.WorkoutExercise{}, err
	}
	workout, err := s.workouts.GetOwnedWorkout(ctx, callerID, we.WorkoutID)
	if err != nil {
		return models.WorkoutExercise{}, err
	}

	execCtx, cancel := withTimeout(ctx)
	defer cancel()
	res, err := s.db.ExecContext(execCtx,
		"INSERT INTO workout_exercises (workout_id, exercise_id, sets, reps, weight) VALUES (?, ?, ?, ?, ?)",
		we.WorkoutID, we.ExerciseID, we.Sets, we.Reps, we.Weight)
	if err != nil {
		return models.WorkoutExercise{}, err
	}
	if err := expectOneRow(res, "insert workout exercise"); err != nil {
		return models.WorkoutExercise{}, err
	}
	if we.ID, err = res.LastInsertId(); err != nil {
		return models.WorkoutExercise{}, err
	}

	recordEvent(ctx, s.events, callerID, models.EventWorkoutExerciseCreate,
		fmt.Sprintf("%s %dx%d @ %g added to workout on %s.", exercise.Name, we.Sets, we.Reps, we.Weight, workout.Date))
	return we, nil
}

// UpdateWorkoutExercise merges changes into a workout-exercise. The caller must own
// the current workout and, when moving the entry, the target workout.
func (s *WorkoutExerciseService) UpdateWorkoutExercise(ctx context.Context, callerID, id int64, changes models.WorkoutExerciseChanges) (models.WorkoutExercise, error) {
	we, err := s.GetWorkoutExerciseByID(ctx, id)
	if err != nil {
		return models.WorkoutExercise{}, err
	}
	if _, err := s.workouts.GetOwnedWorkout(ctx, callerID, we.WorkoutID); err != nil {
		return models.WorkoutExercise{}, err
	}
	if changes.WorkoutID != 0 {
		if _, err := s.workouts.GetOwnedWorkout(ctx, callerID, changes.WorkoutID); err != nil {
			return models.WorkoutExercise{}, err
		}
	}
	if changes.ExerciseID != 0 {
		if _, err := s.exercises.GetExerciseByID(ctx, changes.ExerciseID); err != nil {
			return models.WorkoutExercise{}, err
		}
	}
	changes.Apply(&we)

	execCtx, cancel := withTimeout(ctx)
	defer cancel()
	res, err := s.db.ExecContext(execCtx,
		"UPDATE workout_exercises SET workout_id = ?, exercise_id = ?, sets = ?, reps = ?, weight = ? WHERE id = ?",
		we.WorkoutID, we.ExerciseID, we.Sets, we.Reps, we.Weight, id)
	if err != nil {
		return models.WorkoutExercise{}, err
	}
	if err := expectOneRow(res, "update workout exercise"); err != nil {
		return models.WorkoutExercise{}, err
	}

	recordEvent(ctx, s.events, callerID, models.EventWorkoutExerciseUpdate,
		fmt.Sprintf("Workout exercise %d updated to %dx%d @ %g.", id, we.Sets, we.Reps, we.Weight))
	return we, nil
}

// DeleteWorkoutExercise removes a workout-exercise whose workout belongs to callerID.
func (s *WorkoutExerciseService) DeleteWorkoutExercise(ctx context.Context, callerID, id int64) error {
	we, err := s.GetWorkoutExerciseByID(ctx, id)
	if err != nil {
		return err
	}
	if _, err := s.workouts.GetOwnedWorkout(ctx, callerID, we.WorkoutID); err != nil {
		return err
	}

	execCtx, cancel := withTimeout(ctx)
	defer cancel()
	res, err := s.db.ExecContext(execCtx, "DELETE FROM workout_exercises WHERE id = ?", id)
	if err != nil {
		return err
	}
	if err := expectOneRow(res, "delete workout exercise"); err != nil {
		return err
	}

	recordEvent(ctx, s.events, callerID, models.EventWorkoutExerciseDelete, fmt.Sprintf("Workout exercise %d deleted.", id))
	return nil
}

func (s *WorkoutExerciseService) query(ctx context.Context, query string, args ...interface{}) ([]models.WorkoutExercise, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := []models.WorkoutExercise{}
	for rows.Next() {
		we, err := scanWorkoutExercise(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, we)
	}
	return entries, rows.Err()
}

func scanWorkoutExercise(scanner rowScanner) (models.WorkoutExercise, error) {
	var we models.WorkoutExercise
	err := scanner.Scan(&we.ID, &we.WorkoutID, &we.ExerciseID, &we.Sets, &we.Reps, &we.Weight)
	return we, err
}
