package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mkrecek/todolist/internal/apperr"
	"github.com/mkrecek/todolist/internal/auth"
	"github.com/mkrecek/todolist/internal/metrics"
	"github.com/mkrecek/todolist/internal/middleware"
	"github.com/mkrecek/todolist/internal/repo"
	"github.com/mkrecek/todolist/internal/session"
)

// ==========================
// Auth Handler
// ==========================
type AuthHandler struct {
	Users    *repo.UserRepo
	Sessions *session.Manager
}

// ==========================
// Login (username or email + password)
// ==========================
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}

	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		JSONError(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	user, err := h.Users.GetByUsernameOrEmail(r.Context(), input.Username)
	if errors.Is(err, apperr.ErrNotFound) {
		// Same response as a bad password so account existence does not leak.
		WriteError(w, apperr.ErrInvalidCredentials)
		return
	}
	if err != nil {
		WriteError(w, err)
		return
	}

	if err := auth.CheckPassword(user.PasswordHash, input.Password); err != nil {
		WriteError(w, err)
		return
	}

	token, err := h.Sessions.Start(r.Context(), user)
	if err != nil {
		WriteError(w, err)
		return
	}
	metrics.SessionsStarted.Inc()

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(h.Sessions.TTL.Seconds()),
	})

	writeJSON(w, http.StatusOK, map[string]any{
		"token": token,
		"user":  user,
	})
}

// ==========================
// Logout (idempotent)
// ==========================
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	token := middleware.TokenFromRequest(r)
	if err := h.Sessions.End(r.Context(), token); err != nil {
		WriteError(w, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})

	writeJSON(w, http.StatusOK, map[string]string{"message": "logged out"})
}
