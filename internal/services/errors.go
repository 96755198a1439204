package services

import "errors"

// Errors returned by the services. Handlers map them to HTTP statuses.
var (
	ErrUserNotFound            = errors.New("user not found")
	ErrWorkoutNotFound         = errors.New("workout not found")
	ErrExerciseNotFound        = errors.New("exercise not found")
	ErrWorkoutExerciseNotFound = errors.New("workout exercise not found")

	ErrEmailTaken         = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNotOwner           = errors.New("resource belongs to another user")
	ErrExerciseInUse      = errors.New("exercise is referenced by workout exercises")

	// ErrNoRowsAffected means a write that should have touched one row touched none.
	ErrNoRowsAffected = errors.New("write affected no rows")
)

// IsNotFound reports whether err is one of the not-found errors.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrUserNotFound) ||
		errors.Is(err, ErrWorkoutNotFound) ||
		errors.Is(err, ErrExerciseNotFound) ||
		errors.Is(err, ErrWorkoutExerciseNotFound)
}
