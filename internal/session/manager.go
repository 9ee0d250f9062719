// Package session issues and resolves opaque session tokens. Tokens are
// random identifiers persisted server-side, so logout actually revokes
// them and expiry is enforced on every lookup.
package session

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/mkrecek/todolist/internal/models"
	"github.com/mkrecek/todolist/internal/repo"
)

type Manager struct {
	Sessions *repo.SessionRepo
	Users    *repo.UserRepo
	TTL      time.Duration
}

func NewManager(sessions *repo.SessionRepo, users *repo.UserRepo, ttl time.Duration) *Manager {
	return &Manager{Sessions: sessions, Users: users, TTL: ttl}
}

// Start issues a token bound to the user and touches their last_seen.
// The touch comes first so a failure cannot leave a live session behind.
func (m *Manager) Start(ctx context.Context, user *models.User) (string, error) {
	if err := m.Users.Touch(ctx, user.ID); err != nil {
		return "", err
	}
	token := uuid.NewString()
	if err := m.Sessions.Create(ctx, token, user.ID, m.TTL); err != nil {
		return "", err
	}
	return token, nil
}

// Resolve returns the user bound to token, or nil for anonymous. An
// absent, malformed, or expired token is anonymous, never an error.
// Each successful resolve updates the user's last_seen.
func (m *Manager) Resolve(ctx context.Context, token string) *models.User {
	if token == "" {
		return nil
	}
	if _, err := uuid.Parse(token); err != nil {
		return nil
	}
	user, err := m.Sessions.GetUser(ctx, token)
	if err != nil {
		return nil
	}
	// A failed touch must not turn an authenticated request anonymous.
	_ = m.Users.Touch(ctx, user.ID)
	return user
}

// End invalidates token. Ending an already-ended session is a no-op.
func (m *Manager) End(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	if _, err := uuid.Parse(token); err != nil {
		return nil
	}
	return m.Sessions.Delete(ctx, token)
}
