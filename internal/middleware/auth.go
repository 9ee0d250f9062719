package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/mkrecek/todolist/internal/models"
	"github.com/mkrecek/todolist/internal/session"
)

type key string

const userKey key = "current_user"

// SessionCookie is the cookie carrying the session token for browser clients.
const SessionCookie = "session_token"

// Session resolves the request's session token into the current user and
// stores it in the request context. It never rejects a request: an
// absent or invalid token means the request proceeds as anonymous, and
// each handler decides what anonymity is allowed to do.
//
// The token is read from "Authorization: Bearer <token>" first, then
// from the session cookie.
func Session(mgr *session.Manager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := TokenFromRequest(r)
			if user := mgr.Resolve(r.Context(), token); user != nil {
				ctx := context.WithValue(r.Context(), userKey, user)
				r = r.WithContext(ctx)
			}
			next.ServeHTTP(w, r)
		})
	}
}

// TokenFromRequest extracts the session token from the Authorization
// header or the session cookie. Empty when neither is present.
func TokenFromRequest(r *http.Request) string {
	if h := r.Header.Get("Authorization"); h != "" {
		return strings.TrimPrefix(h, "Bearer ")
	}
	if c, err := r.Cookie(SessionCookie); err == nil {
		return c.Value
	}
	return ""
}

// CurrentUser returns the authenticated user from the context, or nil
// for anonymous requests.
func CurrentUser(ctx context.Context) *models.User {
	user, _ := ctx.Value(userKey).(*models.User)
	return user
}

// WithUser returns a context carrying user as the current identity.
// Exposed for handler tests.
func WithUser(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, userKey, user)
}
