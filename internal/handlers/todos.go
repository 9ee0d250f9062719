package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/mkrecek/todolist/internal/apperr"
	"github.com/mkrecek/todolist/internal/metrics"
	"github.com/mkrecek/todolist/internal/middleware"
	"github.com/mkrecek/todolist/internal/policy"
	"github.com/mkrecek/todolist/internal/repo"
)

// ==========================
// TodoHandler
// ==========================
type TodoHandler struct {
	Todos *repo.TodoRepo
	Lists *repo.TodoListRepo
	Audit *repo.AuditRepo
}

// ==========================
// List todos in a list (public)
// ==========================
func (h *TodoHandler) ListTodos(w http.ResponseWriter, r *http.Request) {
	id, ok := listID(w, r)
	if !ok {
		return
	}

	if _, err := h.Lists.GetByID(r.Context(), id); err != nil {
		WriteError(w, err)
		return
	}

	todos, err := h.Todos.ListByList(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, todos)
}

// ==========================
// Create Todo (list owner only)
// ==========================
func (h *TodoHandler) CreateTodo(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")
	id, ok := listID(w, r)
	if !ok {
		return
	}

	list, err := h.Lists.GetByID(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}
	if list.Creator != username {
		// The list exists but not under this user's path.
		WriteError(w, apperr.ErrNotFound)
		return
	}

	actor := middleware.CurrentUser(r.Context())
	if !policy.Allowed(actor, policy.ActionCreate, policy.Resource{Kind: policy.KindTodo, Owner: list.Creator}) {
		WriteError(w, denied(actor))
		return
	}

	var input struct {
		Description string `json:"description"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		JSONError(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	todo, err := h.Todos.Create(r.Context(), id, actor.Username, input.Description)
	if err != nil {
		WriteError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, todo)
}

// ==========================
// Update Todo (creator only)
// ==========================
func (h *TodoHandler) UpdateTodo(w http.ResponseWriter, r *http.Request) {
	id, ok := todoID(w, r)
	if !ok {
		return
	}

	todo, err := h.Todos.GetByID(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}

	actor := middleware.CurrentUser(r.Context())
	if !policy.Allowed(actor, policy.ActionUpdate, policy.Resource{Kind: policy.KindTodo, Owner: todo.Creator}) {
		WriteError(w, denied(actor))
		return
	}

	var input struct {
		Description *string `json:"description"`
		IsFinished  *bool   `json:"is_finished"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		JSONError(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	updated, err := h.Todos.Update(r.Context(), id, repo.TodoUpdate{
		Description: input.Description,
		IsFinished:  input.IsFinished,
	})
	if err != nil {
		WriteError(w, err)
		return
	}

	if !todo.IsFinished && updated.IsFinished {
		metrics.TodosFinished.Inc()
	}

	writeJSON(w, http.StatusOK, updated)
}

// ==========================
// Delete Todo (creator or admin)
// ==========================
func (h *TodoHandler) DeleteTodo(w http.ResponseWriter, r *http.Request) {
	id, ok := todoID(w, r)
	if !ok {
		return
	}

	todo, err := h.Todos.GetByID(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}

	actor := middleware.CurrentUser(r.Context())
	if !policy.Allowed(actor, policy.ActionDelete, policy.Resource{Kind: policy.KindTodo, Owner: todo.Creator}) {
		WriteError(w, denied(actor))
		return
	}

	if err := h.Todos.Delete(r.Context(), id); err != nil {
		WriteError(w, err)
		return
	}

	if h.Audit != nil {
		_ = h.Audit.Log(r.Context(), actor.Username, "delete", "todo", strconv.Itoa(id), todo.Description)
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "todo deleted"})
}

func todoID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id <= 0 {
		JSONError(w, "not found: todo", http.StatusNotFound)
		return 0, false
	}
	return id, true
}
