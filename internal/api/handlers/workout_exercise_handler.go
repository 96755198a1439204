package handlers

import (
	"net/http"

	"github.com/isdelr/fittrack-be/internal/models"
	"github.com/isdelr/fittrack-be/internal/services"
)

// WorkoutExerciseHandler handles HTTP requests for exercises logged within workouts.
type WorkoutExerciseHandler struct {
	service services.WorkoutExerciseServiceProvider
}

// NewWorkoutExerciseHandler creates a new WorkoutExerciseHandler.
func NewWorkoutExerciseHandler(service services.WorkoutExerciseServiceProvider) *WorkoutExerciseHandler {
	return &WorkoutExerciseHandler{service: service}
}

func (h *WorkoutExerciseHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	entries, err := h.service.GetAllWorkoutExercises(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeList(w, entries, "No workout exercises found")
}

func (h *WorkoutExerciseHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "id")
	if !ok {
		return
	}
	entry, err := h.service.GetWorkoutExerciseByID(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, entry)
}

// GetMine lists every entry across the caller's workouts.
func (h *WorkoutExerciseHandler) GetMine(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerID(w, r)
	if !ok {
		return
	}
	entries, err := h.service.GetWorkoutExercisesByUser(r.Context(), caller)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeList(w, entries, "No workout exercises found")
}

// GetByWorkout lists the entries of one owned workout. An empty workout yields [].
func (h *WorkoutExerciseHandler) GetByWorkout(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerID(w, r)
	if !ok {
		return
	}
	workoutID, ok := parseID(w, r, "workoutId")
	if !ok {
		return
	}
	entries, err := h.service.GetWorkoutExercisesByWorkout(r.Context(), caller, workoutID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	if entries == nil {
		entries = []models.WorkoutExercise{}
	}
	writeJSON(w, http.StatusOK, entries)
}

func (h *WorkoutExerciseHandler) Create(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerID(w, r)
	if !ok {
		return
	}
	var payload WorkoutExercisePayload
	if !decodePayload(w, r, &payload) {
		return
	}
	if _, err := h.service.CreateWorkoutExercise(r.Context(), caller, payload.entry()); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *WorkoutExerciseHandler) Update(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerID(w, r)
	if !ok {
		return
	}
	id, ok := parseID(w, r, "id")
	if !ok {
		return
	}
	var payload workoutExerciseChangesPayload
	if !decodePayload(w, r, &payload) {
		return
	}
	if _, err := h.service.UpdateWorkoutExercise(r.Context(), caller, id, payload.changes()); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *WorkoutExerciseHandler) Delete(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerID(w, r)
	if !ok {
		return
	}
	id, ok := parseID(w, r, "id")
	if !ok {
		return
	}
	if err := h.service.DeleteWorkoutExercise(r.Context(), caller, id); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
