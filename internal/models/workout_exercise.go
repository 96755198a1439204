package models

// WorkoutExercise links one performed exercise to one workout.
type WorkoutExercise struct {
	ID         int64   `json:"id"`
	WorkoutID  int64   `json:"workoutId"`
	ExerciseID int64   `json:"exerciseId"`
	Sets       int     `json:"sets"`
	Reps       int     `json:"reps"`
	Weight     float64 `json:"weight"`
}

// Volume is weight x reps x sets.
func (we WorkoutExercise) Volume() float64 {
	return we.Weight * float64(we.Reps) * float64(we.Sets)
}

// WorkoutExerciseChanges carries a partial update. Zero values mean "keep the current value".
type WorkoutExerciseChanges struct {
	WorkoutID  int64
	ExerciseID int64
	Sets       int
	Reps       int
	Weight     float64
}

// Apply merges the non-zero fields of c into we.
func (c WorkoutExerciseChanges) Apply(we *WorkoutExercise) {
	if c.WorkoutID != 0 {
		we.WorkoutID = c.WorkoutID
	}
	if c.ExerciseID != 0 {
		we.ExerciseID = c.ExerciseID
	}
	if c.Sets != 0 {
		we.Sets = c.Sets
	}
	if c.Reps != 0 {
		we.Reps = c.Reps
	}
	if c.Weight != 0 {
		we.Weight = c.Weight
	}
}
