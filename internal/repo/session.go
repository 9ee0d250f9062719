package repo

import (
	"context"
	"database/sql"
	"time"

	"github.com/mkrecek/todolist/internal/models"
)

// SessionRepo persists opaque session tokens.
type SessionRepo struct {
	DB *sql.DB
}

func NewSessionRepo(db *sql.DB) *SessionRepo {
	return &SessionRepo{DB: db}
}

// Create stores a token for the user with the given lifetime.
func (r *SessionRepo) Create(ctx context.Context, token string, userID int, ttl time.Duration) error {
	_, err := r.DB.ExecContext(ctx,
		`INSERT INTO sessions (token, user_id, expires_at) VALUES ($1, $2, now() + make_interval(secs => $3))`,
		token, userID, ttl.Seconds(),
	)
	return err
}

// GetUser returns the user bound to an unexpired token, or
// sql.ErrNoRows when the token is unknown or expired.
func (r *SessionRepo) GetUser(ctx context.Context, token string) (*models.User, error) {
	user := &models.User{}

	err := r.DB.QueryRowContext(ctx,
		`SELECT u.id, u.username, u.email, u.password_hash, u.is_admin, u.member_since, u.last_seen
		 FROM sessions s
		 JOIN users u ON u.id = s.user_id
		 WHERE s.token = $1 AND s.expires_at > now()`,
		token,
	).Scan(&user.ID, &user.Username, &user.Email, &user.PasswordHash, &user.IsAdmin, &user.MemberSince, &user.LastSeen)

	if err != nil {
		return nil, err
	}

	return user, nil
}

// Delete removes a token. Removing an absent token is not an error.
func (r *SessionRepo) Delete(ctx context.Context, token string) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM sessions WHERE token = $1`, token)
	return err
}

// DeleteExpired purges expired sessions and returns how many were removed.
func (r *SessionRepo) DeleteExpired(ctx context.Context) (int64, error) {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM sessions WHERE expires_at <= now()`)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
