package models

import "time"

// DateLayout is the calendar date format workouts are stored and exchanged in.
const DateLayout = "2006-01-02"

// Workout is a single training session owned by one user.
type Workout struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"userId"`
	Date      string    `json:"date"`     // YYYY-MM-DD
	Duration  int       `json:"duration"` // minutes
	Notes     string    `json:"notes"`
	CreatedAt time.Time `json:"createdAt"`
}

// WorkoutChanges carries a partial workout update. Zero values mean "keep the current value".
type WorkoutChanges struct {
	Date     string
	Duration int
	Notes    string
}

// Apply merges the non-zero fields of c into w.
func (c WorkoutChanges) Apply(w *Workout) {
	if c.Date != "" {
		w.Date = c.Date
	}
	if c.Duration != 0 {
		w.Duration = c.Duration
	}
	if c.Notes != "" {
		w.Notes = c.Notes
	}
}
