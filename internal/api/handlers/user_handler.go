package handlers

import (
	"errors"
	"net/http"

	"github.com/isdelr/fittrack-be/internal/auth"
	"github.com/isdelr/fittrack-be/internal/services"
	"github.com/rs/zerolog/hlog"
)

// AuthFailureRecorder counts rejected logins and registrations.
type AuthFailureRecorder interface {
	RecordAuthFailure(reason string)
}

// UserHandler handles HTTP requests for user management.
type UserHandler struct {
	service  services.UserServiceProvider
	tokens   *auth.Manager
	failures AuthFailureRecorder
}

// NewUserHandler creates a new UserHandler. failures may be nil.
func NewUserHandler(service services.UserServiceProvider, tokens *auth.Manager, failures AuthFailureRecorder) *UserHandler {
	return &UserHandler{service: service, tokens: tokens, failures: failures}
}

func (h *UserHandler) recordFailure(reason string) {
	if h.failures != nil {
		h.failures.RecordAuthFailure(reason)
	}
}

// Register handles new user registration.
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var payload CredentialsPayload
	if !decodePayload(w, r, &payload) {
		return
	}

	user, err := h.service.CreateUser(r.Context(), payload.Email, payload.Password)
	if err != nil {
		if errors.Is(err, services.ErrEmailTaken) {
			h.recordFailure("email_taken")
		}
		writeServiceError(w, r, err)
		return
	}

	hlog.FromRequest(r).Info().Int64("user_id", user.ID).Msg("User registered")
	writeJSON(w, http.StatusCreated, user)
}

// Login handles user authentication and JWT generation.
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var payload CredentialsPayload
	if !decodePayload(w, r, &payload) {
		return
	}

	user, err := h.service.AuthenticateUser(r.Context(), payload.Email, payload.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			hlog.FromRequest(r).Warn().Str("email", payload.Email).Msg("Failed authentication attempt")
			h.recordFailure("invalid_credentials")
		}
		writeServiceError(w, r, err)
		return
	}

	token, err := h.tokens.GenerateJWT(user)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"token": token})
}

// GetMe retrieves the currently authenticated user from the token.
func (h *UserHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	id, ok := callerID(w, r)
	if !ok {
		return
	}

	user, err := h.service.GetUserByID(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// GetAll lists every registered user.
func (h *UserHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	users, err := h.service.GetAllUsers(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeList(w, users, "No users found")
}

// Update handles updating the caller's own email and/or password.
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerID(w, r)
	if !ok {
		return
	}
	id, ok := parseID(w, r, "id")
	if !ok {
		return
	}
	var payload UpdateUserPayload
	if !decodePayload(w, r, &payload) {
		return
	}

	user, err := h.service.UpdateUser(r.Context(), caller, id, payload.Email, payload.Password)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// Delete handles the permanent deletion of the caller's own account.
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerID(w, r)
	if !ok {
		return
	}
	id, ok := parseID(w, r, "id")
	if !ok {
		return
	}

	if err := h.service.DeleteUser(r.Context(), caller, id); err != nil {
		writeServiceError(w, r, err)
		return
	}
	hlog.FromRequest(r).Info().Int64("user_id", id).Msg("User deleted")
	w.WriteHeader(http.StatusNoContent)
}
