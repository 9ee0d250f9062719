package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/mkrecek/todolist/internal/middleware"
	"github.com/mkrecek/todolist/internal/policy"
	"github.com/mkrecek/todolist/internal/repo"
)

// ==========================
// TodoListHandler
// ==========================
type TodoListHandler struct {
	Lists *repo.TodoListRepo
	Users *repo.UserRepo
	Audit *repo.AuditRepo
}

// ==========================
// List a user's todolists (public)
// ==========================
func (h *TodoListHandler) ListUserTodoLists(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")

	if _, err := h.Users.GetByUsername(r.Context(), username); err != nil {
		WriteError(w, err)
		return
	}

	lists, err := h.Lists.ListByCreator(r.Context(), username)
	if err != nil {
		WriteError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, lists)
}

// ==========================
// Create TodoList (owner only)
// ==========================
func (h *TodoListHandler) CreateTodoList(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")

	if _, err := h.Users.GetByUsername(r.Context(), username); err != nil {
		WriteError(w, err)
		return
	}

	actor := middleware.CurrentUser(r.Context())
	if !policy.Allowed(actor, policy.ActionCreate, policy.Resource{Kind: policy.KindTodoList, Owner: username}) {
		WriteError(w, denied(actor))
		return
	}

	var input struct {
		Title string `json:"title"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		JSONError(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	list, err := h.Lists.Create(r.Context(), input.Title, username)
	if err != nil {
		WriteError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, list)
}

// ==========================
// Get TodoList (public)
// ==========================
func (h *TodoListHandler) GetTodoList(w http.ResponseWriter, r *http.Request) {
	id, ok := listID(w, r)
	if !ok {
		return
	}

	list, err := h.Lists.GetByID(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, list)
}

// ==========================
// Update TodoList title (owner only)
// ==========================
func (h *TodoListHandler) UpdateTodoList(w http.ResponseWriter, r *http.Request) {
	id, ok := listID(w, r)
	if !ok {
		return
	}

	list, err := h.Lists.GetByID(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}

	actor := middleware.CurrentUser(r.Context())
	if !policy.Allowed(actor, policy.ActionUpdate, policy.Resource{Kind: policy.KindTodoList, Owner: list.Creator}) {
		WriteError(w, denied(actor))
		return
	}

	var input struct {
		Title string `json:"title"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		JSONError(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	updated, err := h.Lists.Update(r.Context(), id, input.Title)
	if err != nil {
		WriteError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, updated)
}

// ==========================
// Delete TodoList (owner or admin; cascades)
// ==========================
func (h *TodoListHandler) DeleteTodoList(w http.ResponseWriter, r *http.Request) {
	id, ok := listID(w, r)
	if !ok {
		return
	}

	list, err := h.Lists.GetByID(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}

	actor := middleware.CurrentUser(r.Context())
	if !policy.Allowed(actor, policy.ActionDelete, policy.Resource{Kind: policy.KindTodoList, Owner: list.Creator}) {
		WriteError(w, denied(actor))
		return
	}

	if err := h.Lists.Delete(r.Context(), id); err != nil {
		WriteError(w, err)
		return
	}

	if h.Audit != nil {
		_ = h.Audit.Log(r.Context(), actor.Username, "delete", "todolist", strconv.Itoa(id), list.Title)
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "todolist deleted"})
}

// listID parses the {id} URL parameter, responding 404 on garbage so
// /todolist/abc/ behaves like a missing resource.
func listID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id <= 0 {
		JSONError(w, "not found: todolist", http.StatusNotFound)
		return 0, false
	}
	return id, true
}
