package handlers

import (
	"net/http"
	"strconv"

	"github.com/mkrecek/todolist/internal/middleware"
	"github.com/mkrecek/todolist/internal/repo"
)

// AuditHandler exposes the audit log to admins.
type AuditHandler struct {
	Audit *repo.AuditRepo
}

func (h *AuditHandler) ListEntries(w http.ResponseWriter, r *http.Request) {
	actor := middleware.CurrentUser(r.Context())
	if actor == nil || !actor.IsAdmin {
		WriteError(w, denied(actor))
		return
	}

	limit := 50
	offset := 0
	if l := r.URL.Query().Get("limit"); l != "" {
		if val, err := strconv.Atoi(l); err == nil && val > 0 {
			limit = val
		}
	}
	if o := r.URL.Query().Get("offset"); o != "" {
		if val, err := strconv.Atoi(o); err == nil && val >= 0 {
			offset = val
		}
	}

	entries, err := h.Audit.List(r.Context(), limit, offset)
	if err != nil {
		WriteError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, entries)
}
