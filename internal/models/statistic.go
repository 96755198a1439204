package models

// AllTimeStat is the lifetime summed training duration of a user.
type AllTimeStat struct {
	TotalDuration int64 `json:"totalDuration"`
}

// WeeklyStat summarizes the Monday-Sunday week containing the reference day.
type WeeklyStat struct {
	TotalVolume  float64 `json:"totalVolume"`
	WorkoutCount int     `json:"workoutCount"`
}
