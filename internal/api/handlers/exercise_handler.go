package handlers

import (
	"net/http"

	"github.com/isdelr/fittrack-be/internal/services"
)

// ExerciseHandler handles HTTP requests for the exercise catalog.
type ExerciseHandler struct {
	service services.ExerciseServiceProvider
}

// NewExerciseHandler creates a new ExerciseHandler.
func NewExerciseHandler(service services.ExerciseServiceProvider) *ExerciseHandler {
	return &ExerciseHandler{service: service}
}

func (h *ExerciseHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	exercises, err := h.service.GetAllExercises(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeList(w, exercises, "No exercises found")
}

func (h *ExerciseHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "id")
	if !ok {
		return
	}
	exercise, err := h.service.GetExerciseByID(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, exercise)
}

func (h *ExerciseHandler) Create(w http.ResponseWriter, r *http.Request) {
	var payload ExercisePayload
	if !decodePayload(w, r, &payload) {
		return
	}
	exercise, err := h.service.CreateExercise(r.Context(), payload.Name)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, exercise)
}

// Replace renames an exercise.
func (h *ExerciseHandler) Replace(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "id")
	if !ok {
		return
	}
	var payload ExercisePayload
	if !decodePayload(w, r, &payload) {
		return
	}
	exercise, err := h.service.UpdateExercise(r.Context(), id, payload.Name)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, exercise)
}

func (h *ExerciseHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "id")
	if !ok {
		return
	}
	if err := h.service.DeleteExercise(r.Context(), id); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
