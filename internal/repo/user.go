package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
	"github.com/mkrecek/todolist/internal/apperr"
	"github.com/mkrecek/todolist/internal/models"
)

// pqUniqueViolation is the Postgres error code for unique constraint violations.
const pqUniqueViolation = "23505"

// ==========================
// UserRepo
// ==========================
type UserRepo struct {
	DB *sql.DB
}

func NewUserRepo(db *sql.DB) *UserRepo {
	return &UserRepo{DB: db}
}

// ==========================
// Create User
// ==========================
func (r *UserRepo) Create(ctx context.Context, username, email, passwordHash string) (*models.User, error) {
	query := `
		INSERT INTO users (username, email, password_hash)
		VALUES ($1, $2, $3)
		RETURNING id, username, email, password_hash, is_admin, member_since, last_seen
	`

	user := &models.User{}

	err := r.DB.QueryRowContext(ctx, query, username, email, passwordHash).
		Scan(&user.ID, &user.Username, &user.Email, &user.PasswordHash, &user.IsAdmin, &user.MemberSince, &user.LastSeen)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation {
			return nil, fmt.Errorf("%w: username or email already taken", apperr.ErrDuplicateIdentity)
		}
		return nil, err
	}

	return user, nil
}

// ==========================
// Get By Username
// ==========================

// GetByUsername returns the user along with their todolist count.
func (r *UserRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	user := &models.User{}

	err := r.DB.QueryRowContext(ctx,
		`SELECT u.id, u.username, u.email, u.password_hash, u.is_admin, u.member_since, u.last_seen, COUNT(l.id)
		 FROM users u
		 LEFT JOIN todolists l ON l.creator = u.username
		 WHERE u.username = $1
		 GROUP BY u.id`,
		username,
	).Scan(&user.ID, &user.Username, &user.Email, &user.PasswordHash, &user.IsAdmin,
		&user.MemberSince, &user.LastSeen, &user.TodoListCount)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: user", apperr.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}

	return user, nil
}

// ==========================
// Get By Username Or Email
// ==========================
func (r *UserRepo) GetByUsernameOrEmail(ctx context.Context, identifier string) (*models.User, error) {
	user := &models.User{}

	err := r.DB.QueryRowContext(ctx,
		`SELECT id, username, email, password_hash, is_admin, member_since, last_seen
		 FROM users
		 WHERE username = $1 OR email = $1`,
		identifier,
	).Scan(&user.ID, &user.Username, &user.Email, &user.PasswordHash, &user.IsAdmin, &user.MemberSince, &user.LastSeen)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: user", apperr.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}

	return user, nil
}

// ==========================
// Touch (last seen)
// ==========================
func (r *UserRepo) Touch(ctx context.Context, id int) error {
	_, err := r.DB.ExecContext(ctx, `UPDATE users SET last_seen = now() WHERE id = $1`, id)
	return err
}

// ==========================
// Promote To Admin
// ==========================
func (r *UserRepo) PromoteToAdmin(ctx context.Context, username string) error {
	result, err := r.DB.ExecContext(ctx, `UPDATE users SET is_admin = TRUE WHERE username = $1`, username)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return fmt.Errorf("%w: user", apperr.ErrNotFound)
	}
	return nil
}

// ==========================
// Delete User (cascades)
// ==========================

// Delete removes the user, their sessions, their todolists, and every
// todo in those lists in one transaction. Dependents go first so the
// foreign keys hold at every step.
func (r *UserRepo) Delete(ctx context.Context, username string) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM todos WHERE todolist_id IN (SELECT id FROM todolists WHERE creator = $1)`,
		username,
	); err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM todolists WHERE creator = $1`, username); err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM sessions WHERE user_id IN (SELECT id FROM users WHERE username = $1)`,
		username,
	); err != nil {
		return err
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM users WHERE username = $1`, username)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return fmt.Errorf("%w: user", apperr.ErrNotFound)
	}

	return tx.Commit()
}

// ==========================
// List Users
// ==========================
func (r *UserRepo) List(ctx context.Context) ([]models.User, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT u.id, u.username, u.email, u.password_hash, u.is_admin, u.member_since, u.last_seen, COUNT(l.id)
		 FROM users u
		 LEFT JOIN todolists l ON l.creator = u.username
		 GROUP BY u.id
		 ORDER BY u.id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.IsAdmin,
			&u.MemberSince, &u.LastSeen, &u.TodoListCount); err != nil {
			return nil, err
		}
		users = append(users, u)
	}

	return users, rows.Err()
}
