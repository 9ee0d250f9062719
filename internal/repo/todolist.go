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
// TodoListRepo
// ==========================
type TodoListRepo struct {
	DB *sql.DB
}

func NewTodoListRepo(db *sql.DB) *TodoListRepo {
	return &TodoListRepo{DB: db}
}

// listColumns selects todolist fields plus per-list todo counts.
const listColumns = `
	l.id, l.title, l.creator, l.created_at,
	COUNT(t.id),
	COUNT(t.id) FILTER (WHERE NOT t.is_finished),
	COUNT(t.id) FILTER (WHERE t.is_finished)
`

// ==========================
// Create TodoList
// ==========================
func (r *TodoListRepo) Create(ctx context.Context, title, creator string) (*models.TodoList, error) {
	if !models.ValidTitle(title) {
		return nil, fmt.Errorf("%w: title must be 1-%d characters", apperr.ErrValidation, models.MaxTitleLen)
	}

	list := &models.TodoList{}

	err := r.DB.QueryRowContext(ctx,
		`INSERT INTO todolists (title, creator)
		 VALUES ($1, $2)
		 RETURNING id, title, creator, created_at`,
		title, creator,
	).Scan(&list.ID, &list.Title, &list.Creator, &list.CreatedAt)

	if err != nil {
		return nil, err
	}

	return list, nil
}

// ==========================
// Get By ID
// ==========================
func (r *TodoListRepo) GetByID(ctx context.Context, id int) (*models.TodoList, error) {
	list := &models.TodoList{}

	err := r.DB.QueryRowContext(ctx,
		`SELECT `+listColumns+`
		 FROM todolists l
		 LEFT JOIN todos t ON t.todolist_id = l.id
		 WHERE l.id = $1
		 GROUP BY l.id`,
		id,
	).Scan(&list.ID, &list.Title, &list.Creator, &list.CreatedAt,
		&list.TodoCount, &list.OpenCount, &list.FinishedCount)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: todolist", apperr.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}

	return list, nil
}

// ==========================
// List By Creator
// ==========================
func (r *TodoListRepo) ListByCreator(ctx context.Context, creator string) ([]models.TodoList, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT `+listColumns+`
		 FROM todolists l
		 LEFT JOIN todos t ON t.todolist_id = l.id
		 WHERE l.creator = $1
		 GROUP BY l.id
		 ORDER BY l.id`,
		creator,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lists []models.TodoList
	for rows.Next() {
		var l models.TodoList
		if err := rows.Scan(&l.ID, &l.Title, &l.Creator, &l.CreatedAt,
			&l.TodoCount, &l.OpenCount, &l.FinishedCount); err != nil {
			return nil, err
		}
		lists = append(lists, l)
	}

	return lists, rows.Err()
}

// ==========================
// Update Title
// ==========================
func (r *TodoListRepo) Update(ctx context.Context, id int, title string) (*models.TodoList, error) {
	if !models.ValidTitle(title) {
		return nil, fmt.Errorf("%w: title must be 1-%d characters", apperr.ErrValidation, models.MaxTitleLen)
	}

	list := &models.TodoList{}

	err := r.DB.QueryRowContext(ctx,
		`UPDATE todolists
		 SET title = $1
		 WHERE id = $2
		 RETURNING id, title, creator, created_at`,
		title, id,
	).Scan(&list.ID, &list.Title, &list.Creator, &list.CreatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: todolist", apperr.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}

	return list, nil
}

// ==========================
// Delete TodoList (cascades)
// ==========================

// Delete removes the list and its todos in one transaction.
func (r *TodoListRepo) Delete(ctx context.Context, id int) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM todos WHERE todolist_id = $1`, id); err != nil {
		return err
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM todolists WHERE id = $1`, id)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return fmt.Errorf("%w: todolist", apperr.ErrNotFound)
	}

	return tx.Commit()
}
