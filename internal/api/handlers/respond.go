package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/isdelr/fittrack-be/internal/auth"
	"github.com/isdelr/fittrack-be/internal/services"
	"github.com/rs/zerolog/hlog"
)

const maxBodyBytes = 1 << 20

// errorBody is the JSON shape of every error response.
type errorBody struct {
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorBody{Message: message})
}

// writeServiceError maps a service error to its HTTP status. Anything not
// recognised is logged and answered with a generic 500.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case services.IsNotFound(err):
		writeError(w, http.StatusNotFound, rootMessage(err))
	case errors.Is(err, services.ErrNotOwner):
		writeError(w, http.StatusUnauthorized, "Unauthorized")
	case errors.Is(err, services.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, "Invalid credentials")
	case errors.Is(err, services.ErrEmailTaken):
		writeError(w, http.StatusConflict, "Email already exists")
	case errors.Is(err, services.ErrExerciseInUse):
		writeError(w, http.StatusConflict, "Exercise is used by existing workouts")
	default:
		hlog.FromRequest(r).Error().Err(err).Str("path", r.URL.Path).Msg("Request failed")
		writeError(w, http.StatusInternalServerError, "Internal server error")
	}
}

// rootMessage returns the sentinel's text for a wrapped not-found error.
func rootMessage(err error) string {
	for _, sentinel := range []error{
		services.ErrUserNotFound,
		services.ErrWorkoutNotFound,
		services.ErrExerciseNotFound,
		services.ErrWorkoutExerciseNotFound,
	} {
		if errors.Is(err, sentinel) {
			return capitalize(sentinel.Error())
		}
	}
	return "Not found"
}

func capitalize(s string) string {
	if s == "" || s[0] < 'a' || s[0] > 'z' {
		return s
	}
	return string(s[0]-'a'+'A') + s[1:]
}

// validator is implemented by every request payload.
type validator interface {
	Validate() error
}

// decodePayload reads a JSON body into dst and validates it. On failure it
// writes a 400 and returns false.
func decodePayload(w http.ResponseWriter, r *http.Request, dst validator) bool {
	if err := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return false
	}
	if err := dst.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return false
	}
	return true
}

// parseID reads a positive integer URL parameter. On failure it writes a 400.
func parseID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Invalid %s", name))
		return 0, false
	}
	return id, true
}

// callerID returns the authenticated user id. Routes using it sit behind the
// auth middleware, so a missing id is answered with a 401.
func callerID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		auth.Unauthorized(w, "Unauthorized")
	}
	return id, ok
}

// writeList answers 404 for an empty collection, as every list endpoint of the API does.
func writeList[T any](w http.ResponseWriter, items []T, emptyMessage string) {
	if len(items) == 0 {
		writeError(w, http.StatusNotFound, emptyMessage)
		return
	}
	writeJSON(w, http.StatusOK, items)
}
