package models

import "time"

// Event represents a recorded change to a user's training data.
type Event struct {
	ID        string    `json:"id"`
	UserID    int64     `json:"userId"`
	Type      string    `json:"type"` // e.g., "workout.create", "workoutExercise.delete"
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}

// Event types recorded by the services.
const (
	EventWorkoutCreate         = "workout.create"
	EventWorkoutUpdate         = "workout.update"
	EventWorkoutDelete         = "workout.delete"
	EventWorkoutExerciseCreate = "workoutExercise.create"
	EventWorkoutExerciseUpdate = "workoutExercise.update"
	EventWorkoutExerciseDelete = "workoutExercise.delete"
)
