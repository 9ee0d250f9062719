package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mkrecek/todolist/internal/apperr"
	"github.com/mkrecek/todolist/internal/models"
)

// ==========================
// TodoRepo
// ==========================
type TodoRepo struct {
	DB *sql.DB
}

func NewTodoRepo(db *sql.DB) *TodoRepo {
	return &TodoRepo{DB: db}
}

// TodoUpdate carries the mutable todo fields. Nil means "leave as is".
type TodoUpdate struct {
	Description *string
	IsFinished  *bool
}

// ==========================
// Create Todo
// ==========================
func (r *TodoRepo) Create(ctx context.Context, todolistID int, creator, description string) (*models.Todo, error) {
	if !models.ValidDescription(description) {
		return nil, fmt.Errorf("%w: description must be 1-%d characters", apperr.ErrValidation, models.MaxDescriptionLen)
	}

	todo := &models.Todo{}

	err := r.DB.QueryRowContext(ctx,
		`INSERT INTO todos (description, creator, todolist_id)
		 SELECT $1, $2, id FROM todolists WHERE id = $3
		 RETURNING id, description, creator, todolist_id, created_at, is_finished, finished_at`,
		description, creator, todolistID,
	).Scan(&todo.ID, &todo.Description, &todo.Creator, &todo.TodoListID,
		&todo.CreatedAt, &todo.IsFinished, &todo.FinishedAt)

	if errors.Is(err, sql.ErrNoRows) {
		// The INSERT..SELECT matched no list row.
		return nil, fmt.Errorf("%w: todolist", apperr.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}

	todo.DeriveStatus()
	return todo, nil
}

// ==========================
// Get By ID
// ==========================
func (r *TodoRepo) GetByID(ctx context.Context, id int) (*models.Todo, error) {
	todo := &models.Todo{}

	err := r.DB.QueryRowContext(ctx,
		`SELECT id, description, creator, todolist_id, created_at, is_finished, finished_at
		 FROM todos
		 WHERE id = $1`,
		id,
	).Scan(&todo.ID, &todo.Description, &todo.Creator, &todo.TodoListID,
		&todo.CreatedAt, &todo.IsFinished, &todo.FinishedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: todo", apperr.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}

	todo.DeriveStatus()
	return todo, nil
}

// ==========================
// List By TodoList
// ==========================
func (r *TodoRepo) ListByList(ctx context.Context, todolistID int) ([]models.Todo, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT id, description, creator, todolist_id, created_at, is_finished, finished_at
		 FROM todos
		 WHERE todolist_id = $1
		 ORDER BY created_at, id`,
		todolistID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var todos []models.Todo
	for rows.Next() {
		var t models.Todo
		if err := rows.Scan(&t.ID, &t.Description, &t.Creator, &t.TodoListID,
			&t.CreatedAt, &t.IsFinished, &t.FinishedAt); err != nil {
			return nil, err
		}
		t.DeriveStatus()
		todos = append(todos, t)
	}

	return todos, rows.Err()
}

// ==========================
// Update Todo
// ==========================

// Update applies upd to the todo. The finished_at timestamp is set and
// cleared inside the same statement as the is_finished transition, so
// the two can never disagree.
func (r *TodoRepo) Update(ctx context.Context, id int, upd TodoUpdate) (*models.Todo, error) {
	if upd.Description != nil && !models.ValidDescription(*upd.Description) {
		return nil, fmt.Errorf("%w: description must be 1-%d characters", apperr.ErrValidation, models.MaxDescriptionLen)
	}

	todo := &models.Todo{}

	err := r.DB.QueryRowContext(ctx,
		`UPDATE todos
		 SET description = COALESCE($1::varchar, description),
		     is_finished = COALESCE($2::boolean, is_finished),
		     finished_at = CASE
		         WHEN $2::boolean IS NULL THEN finished_at
		         WHEN $2::boolean AND NOT is_finished THEN now()
		         WHEN NOT $2::boolean THEN NULL
		         ELSE finished_at
		     END
		 WHERE id = $3
		 RETURNING id, description, creator, todolist_id, created_at, is_finished, finished_at`,
		upd.Description, upd.IsFinished, id,
	).Scan(&todo.ID, &todo.Description, &todo.Creator, &todo.TodoListID,
		&todo.CreatedAt, &todo.IsFinished, &todo.FinishedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: todo", apperr.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}

	todo.DeriveStatus()
	return todo, nil
}

// ==========================
// Delete Todo
// ==========================
func (r *TodoRepo) Delete(ctx context.Context, id int) error {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM todos WHERE id = $1`, id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return fmt.Errorf("%w: todo", apperr.ErrNotFound)
	}

	return nil
}
