package handlers

import (
	"net/http"

	"github.com/isdelr/fittrack-be/internal/services"
)

// WorkoutHandler handles HTTP requests for workouts.
type WorkoutHandler struct {
	service services.WorkoutServiceProvider
}

// NewWorkoutHandler creates a new WorkoutHandler.
func NewWorkoutHandler(service services.WorkoutServiceProvider) *WorkoutHandler {
	return &WorkoutHandler{service: service}
}

// GetAll lists the workouts of every user.
func (h *WorkoutHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	workouts, err := h.service.GetAllWorkouts(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeList(w, workouts, "No workouts found")
}

// GetMine lists the caller's workouts, newest first.
func (h *WorkoutHandler) GetMine(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerID(w, r)
	if !ok {
		return
	}
	workouts, err := h.service.GetWorkoutsByUser(r.Context(), caller)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeList(w, workouts, "No workouts found")
}

// Get returns one of the caller's workouts.
func (h *WorkoutHandler) Get(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerID(w, r)
	if !ok {
		return
	}
	id, ok := parseID(w, r, "id")
	if !ok {
		return
	}

	workout, err := h.service.GetOwnedWorkout(r.Context(), caller, id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, workout)
}

// Create stores a workout owned by the caller.
func (h *WorkoutHandler) Create(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerID(w, r)
	if !ok {
		return
	}
	var payload WorkoutPayload
	if !decodePayload(w, r, &payload) {
		return
	}

	if _, err := h.service.CreateWorkout(r.Context(), caller, payload.workout()); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Update applies a partial update to one of the caller's workouts.
func (h *WorkoutHandler) Update(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerID(w, r)
	if !ok {
		return
	}
	id, ok := parseID(w, r, "id")
	if !ok {
		return
	}
	var payload workoutChangesPayload
	if !decodePayload(w, r, &payload) {
		return
	}

	if _, err := h.service.UpdateWorkout(r.Context(), caller, id, payload.changes()); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Delete removes one of the caller's workouts together with its exercises.
func (h *WorkoutHandler) Delete(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerID(w, r)
	if !ok {
		return
	}
	id, ok := parseID(w, r, "id")
	if !ok {
		return
	}

	if err := h.service.DeleteWorkout(r.Context(), caller, id); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
