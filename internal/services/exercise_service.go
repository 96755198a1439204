package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/isdelr/fittrack-be/internal/database"
	"github.com/isdelr/fittrack-be/internal/models"
)

// ExerciseServiceProvider defines the interface for the exercise catalog.
type ExerciseServiceProvider interface {
	GetAllExercises(ctx context.Context) ([]models.Exercise, error)
	GetExerciseByID(ctx context.Context, id int64) (models.Exercise, error)
	CreateExercise(ctx context.Context, name string) (models.Exercise, error)
	UpdateExercise(ctx context.Context, id int64, name string) (models.Exercise, error)
	DeleteExercise(ctx context.Context, id int64) error
}

// ExerciseService manages the shared exercise catalog. It has no notion of ownership.
type ExerciseService struct {
	db *sql.DB
}

// NewExerciseService creates a new ExerciseService.
func NewExerciseService(db *sql.DB) *ExerciseService {
	return &ExerciseService{db: db}
}

func (s *ExerciseService) GetAllExercises(ctx context.Context) ([]models.Exercise, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	rows, err := s.db.QueryContext(ctx, "SELECT id, name FROM exercises ORDER BY name, id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	exercises := []models.Exercise{}
	for rows.Next() {
		var e models.Exercise
		if err := rows.Scan(&e.ID, &e.Name); err != nil {
			return nil, err
		}
		exercises = append(exercises, e)
	}
	return exercises, rows.Err()
}

func (s *ExerciseService) GetExerciseByID(ctx context.Context, id int64) (models.Exercise, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var e models.Exercise
	err := s.db.QueryRowContext(ctx, "SELECT id, name FROM exercises WHERE id = ?", id).Scan(&e.ID, &e.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Exercise{}, fmt.Errorf("exercise %d: %w", id, ErrExerciseNotFound)
	}
	return e, err
}

func (s *ExerciseService) CreateExercise(ctx context.Context, name string) (models.Exercise, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	res, err := s.db.ExecContext(ctx, "INSERT INTO exercises (name) VALUES (?)", name)
	if err != nil {
		return models.Exercise{}, err
	}
	if err := expectOneRow(res, "insert exercise"); err != nil {
		return models.Exercise{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return models.Exercise{}, err
	}
	return models.Exercise{ID: id, Name: name}, nil
}

// UpdateExercise renames an exercise.
func (s *ExerciseService) UpdateExercise(ctx context.Context, id int64, name string) (models.Exercise, error) {
	if _, err := s.GetExerciseByID(ctx, id); err != nil {
		return models.Exercise{}, err
	}

	ctx, cancel := withTimeout(ctx)
	defer cancel()
	res, err := s.db.ExecContext(ctx, "UPDATE exercises SET name = ? WHERE id = ?", name, id)
	if err != nil {
		return models.Exercise{}, err
	}
	if err := expectOneRow(res, "update exercise"); err != nil {
		return models.Exercise{}, err
	}
	return models.Exercise{ID: id, Name: name}, nil
}

// DeleteExercise removes an exercise. Exercises still used by a workout cannot be removed.
func (s *ExerciseService) DeleteExercise(ctx context.Context, id int64) error {
	if _, err := s.GetExerciseByID(ctx, id); err != nil {
		return err
	}

	ctx, cancel := withTimeout(ctx)
	defer cancel()
	res, err := s.db.ExecContext(ctx, "DELETE FROM exercises WHERE id = ?", id)
	if err != nil {
		if database.IsConstraintViolation(err) {
			return fmt.Errorf("exercise %d: %w", id, ErrExerciseInUse)
		}
		return err
	}
	return expectOneRow(res, "delete exercise")
}
