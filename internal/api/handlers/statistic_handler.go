package handlers

import (
	"net/http"

	"github.com/isdelr/fittrack-be/internal/services"
)

// StatisticHandler serves the caller's training aggregates.
type StatisticHandler struct {
	service services.StatisticServiceProvider
}

// NewStatisticHandler creates a new StatisticHandler.
func NewStatisticHandler(service services.StatisticServiceProvider) *StatisticHandler {
	return &StatisticHandler{service: service}
}

// AllTime returns the total minutes trained.
func (h *StatisticHandler) AllTime(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerID(w, r)
	if !ok {
		return
	}
	stat, err := h.service.GetAllTimeStat(r.Context(), caller)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, stat)
}

// Weekly returns volume and workout count for the current Monday to Sunday week.
func (h *StatisticHandler) Weekly(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerID(w, r)
	if !ok {
		return
	}
	stat, err := h.service.GetWeeklyStat(r.Context(), caller)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, stat)
}
