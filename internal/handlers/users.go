package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/mkrecek/todolist/internal/apperr"
	"github.com/mkrecek/todolist/internal/auth"
	"github.com/mkrecek/todolist/internal/middleware"
	"github.com/mkrecek/todolist/internal/models"
	"github.com/mkrecek/todolist/internal/policy"
	"github.com/mkrecek/todolist/internal/repo"
)

// ==========================
// UserHandler
// ==========================
type UserHandler struct {
	Users *repo.UserRepo
	Audit *repo.AuditRepo
}

// userSummary is the public shape of a user.
type userSummary struct {
	Username      string `json:"username"`
	MemberSince   string `json:"member_since"`
	LastSeen      string `json:"last_seen"`
	TodoListCount int    `json:"todolist_count"`
}

func summarize(u models.User) userSummary {
	return userSummary{
		Username:      u.Username,
		MemberSince:   u.MemberSince.UTC().Format("2006-01-02T15:04:05Z"),
		LastSeen:      u.LastSeen.UTC().Format("2006-01-02T15:04:05Z"),
		TodoListCount: u.TodoListCount,
	}
}

// ==========================
// List Users
// ==========================
func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.Users.List(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	out := make([]userSummary, 0, len(users))
	for _, u := range users {
		out = append(out, summarize(u))
	}
	writeJSON(w, http.StatusOK, out)
}

// ==========================
// Register (POST /users/)
// ==========================
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		JSONError(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	if !models.ValidUsername(input.Username) {
		WriteError(w, fmt.Errorf("%w: %q is not a valid username", apperr.ErrValidation, input.Username))
		return
	}
	if !models.ValidEmail(input.Email) {
		WriteError(w, fmt.Errorf("%w: %q is not a valid email address", apperr.ErrValidation, input.Email))
		return
	}

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		WriteError(w, err)
		return
	}

	user, err := h.Users.Create(r.Context(), input.Username, input.Email, hash)
	if err != nil {
		WriteError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, user)
}

// ==========================
// Get User (public profile)
// ==========================
func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")

	user, err := h.Users.GetByUsername(r.Context(), username)
	if err != nil {
		WriteError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, summarize(*user))
}

// ==========================
// Delete User (admin only; cascades)
// ==========================
func (h *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")

	if _, err := h.Users.GetByUsername(r.Context(), username); err != nil {
		WriteError(w, err)
		return
	}

	actor := middleware.CurrentUser(r.Context())
	if !policy.Allowed(actor, policy.ActionDelete, policy.Resource{Kind: policy.KindUser, Owner: username}) {
		WriteError(w, denied(actor))
		return
	}

	if err := h.Users.Delete(r.Context(), username); err != nil {
		WriteError(w, err)
		return
	}

	if h.Audit != nil {
		_ = h.Audit.Log(r.Context(), actor.Username, "delete", "user", username, "")
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "user deleted"})
}

// denied picks the right taxonomy error for a policy denial: anonymous
// actors get unauthorized, identified actors get forbidden.
func denied(actor *models.User) error {
	if actor == nil {
		return apperr.ErrUnauthorized
	}
	return apperr.ErrForbidden
}
