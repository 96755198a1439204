package handlers

import (
	"errors"
	"strings"
	"time"

	"github.com/isdelr/fittrack-be/internal/models"
)

// bcrypt only hashes the first 72 bytes and refuses anything longer.
const maxPasswordBytes = 72

var errPasswordTooLong = errors.New("Password must be at most 72 bytes")

// CredentialsPayload is the body of register and login requests.
type CredentialsPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (p *CredentialsPayload) Validate() error {
	p.Email = strings.TrimSpace(p.Email)
	if p.Email == "" || p.Password == "" {
		return errors.New("Email and password are required")
	}
	if len(p.Password) > maxPasswordBytes {
		return errPasswordTooLong
	}
	return nil
}

// UpdateUserPayload carries a partial profile update. Empty fields keep the
// stored value, so an empty body is a no-op.
type UpdateUserPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (p *UpdateUserPayload) Validate() error {
	p.Email = strings.TrimSpace(p.Email)
	if len(p.Password) > maxPasswordBytes {
		return errPasswordTooLong
	}
	return nil
}

// WorkoutPayload is the body of workout create and update requests.
type WorkoutPayload struct {
	Date     string `json:"date"`
	Duration int    `json:"duration"`
	Notes    string `json:"notes"`
}

func (p *WorkoutPayload) Validate() error {
	if p.Date == "" || p.Duration == 0 || p.Notes == "" {
		return errors.New("Date, duration and notes are required")
	}
	return p.validatePartial()
}

// validatePartial checks only the fields that are present.
func (p *WorkoutPayload) validatePartial() error {
	if p.Date != "" {
		if _, err := time.Parse(models.DateLayout, p.Date); err != nil {
			return errors.New("Date must be formatted as YYYY-MM-DD")
		}
	}
	if p.Duration < 0 {
		return errors.New("Duration must be positive")
	}
	return nil
}

func (p WorkoutPayload) workout() models.Workout {
	return models.Workout{Date: p.Date, Duration: p.Duration, Notes: p.Notes}
}

func (p WorkoutPayload) changes() models.WorkoutChanges {
	return models.WorkoutChanges{Date: p.Date, Duration: p.Duration, Notes: p.Notes}
}

// workoutChangesPayload is the PATCH variant of WorkoutPayload where every field is optional.
type workoutChangesPayload struct {
	WorkoutPayload
}

func (p *workoutChangesPayload) Validate() error {
	return p.validatePartial()
}

// ExercisePayload is the body of exercise create and replace requests.
type ExercisePayload struct {
	Name string `json:"name"`
}

func (p *ExercisePayload) Validate() error {
	p.Name = strings.TrimSpace(p.Name)
	if p.Name == "" {
		return errors.New("Name is required")
	}
	return nil
}

// WorkoutExercisePayload is the body of workout-exercise create and update requests.
type WorkoutExercisePayload struct {
	WorkoutID  int64   `json:"workoutId"`
	ExerciseID int64   `json:"exerciseId"`
	Sets       int     `json:"sets"`
	Reps       int     `json:"reps"`
	Weight     float64 `json:"weight"`
}

func (p *WorkoutExercisePayload) Validate() error {
	if p.WorkoutID == 0 || p.ExerciseID == 0 || p.Sets == 0 || p.Reps == 0 || p.Weight == 0 {
		return errors.New("WorkoutId, exerciseId, sets, reps and weight are required")
	}
	return p.validatePartial()
}

func (p *WorkoutExercisePayload) validatePartial() error {
	if p.WorkoutID < 0 || p.ExerciseID < 0 || p.Sets < 0 || p.Reps < 0 || p.Weight < 0 {
		return errors.New("Values must not be negative")
	}
	return nil
}

func (p WorkoutExercisePayload) entry() models.WorkoutExercise {
	return models.WorkoutExercise{
		WorkoutID:  p.WorkoutID,
		ExerciseID: p.ExerciseID,
		Sets:       p.Sets,
		Reps:       p.Reps,
		Weight:     p.Weight,
	}
}

func (p WorkoutExercisePayload) changes() models.WorkoutExerciseChanges {
	return models.WorkoutExerciseChanges{
		WorkoutID:  p.WorkoutID,
		ExerciseID: p.ExerciseID,
		Sets:       p.Sets,
		Reps:       p.Reps,
		Weight:     p.Weight,
	}
}

type workoutExerciseChangesPayload struct {
	WorkoutExercisePayload
}

func (p *workoutExerciseChangesPayload) Validate() error {
	return p.validatePartial()
}
