package main

import (
	"net/http"
	"time"

	"database/sql"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mkrecek/todolist/internal/config"
	"github.com/mkrecek/todolist/internal/handlers"
	"github.com/mkrecek/todolist/internal/middleware"
	"github.com/mkrecek/todolist/internal/repo"
	"github.com/mkrecek/todolist/internal/session"
)

// newRouter builds the full handler chain against the given DB. Kept
// separate from main so tests can assemble the API around a mock DB.
func newRouter(db *sql.DB, cfg config.Config) http.Handler {
	userRepo := repo.NewUserRepo(db)
	listRepo := repo.NewTodoListRepo(db)
	todoRepo := repo.NewTodoRepo(db)
	sessionRepo := repo.NewSessionRepo(db)
	auditRepo := repo.NewAuditRepo(db)

	ttl := time.Duration(cfg.SessionTTLHours) * time.Hour
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	sessions := session.NewManager(sessionRepo, userRepo, ttl)

	authH := &handlers.AuthHandler{Users: userRepo, Sessions: sessions}
	userH := &handlers.UserHandler{Users: userRepo, Audit: auditRepo}
	listH := &handlers.TodoListHandler{Lists: listRepo, Users: userRepo, Audit: auditRepo}
	todoH := &handlers.TodoHandler{Todos: todoRepo, Lists: listRepo, Audit: auditRepo}
	auditH := &handlers.AuditHandler{Audit: auditRepo}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(middleware.RequestLog)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Prometheus)
	r.Use(middleware.SecurityHeaders(cfg.TLSCertFile != "" && cfg.TLSKeyFile != ""))
	r.Use(middleware.CORS(cfg.CORSAllowedOrigins))
	r.Use(middleware.MaxBytes(middleware.DefaultMaxBodyBytes))
	r.Use(chimw.StripSlashes)
	r.Use(middleware.Session(sessions))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	r.Get("/ready", func(w http.ResponseWriter, r *http.Request) {
		if err := db.Ping(); err != nil {
			handlers.JSONError(w, "database unreachable", http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte("ready"))
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Post("/auth/login", authH.Login)
	r.Post("/auth/logout", authH.Logout)

	r.Get("/users", userH.ListUsers)
	r.Post("/users", userH.Register)

	r.Route("/user/{username}", func(r chi.Router) {
		r.Get("/", userH.GetUser)
		r.Delete("/", userH.DeleteUser)
		r.Get("/todolists", listH.ListUserTodoLists)
		r.Post("/todolists", listH.CreateTodoList)
		r.Post("/todolist/{id}", todoH.CreateTodo)
	})

	r.Route("/todolist/{id}", func(r chi.Router) {
		r.Get("/", listH.GetTodoList)
		r.Put("/", listH.UpdateTodoList)
		r.Delete("/", listH.DeleteTodoList)
		r.Get("/todos", todoH.ListTodos)
	})

	r.Put("/todo/{id}", todoH.UpdateTodo)
	r.Delete("/todo/{id}", todoH.DeleteTodo)

	r.Get("/audit", auditH.ListEntries)

	return r
}
