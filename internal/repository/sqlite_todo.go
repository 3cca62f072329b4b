package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/todod/internal/db"
	"github.com/alexanderramin/todod/internal/domain"
)

// SQLiteTodoRepo implements TodoRepo on top of a DBTX, so the same code runs
// against the pool or inside a unit of work.
type SQLiteTodoRepo struct {
	db db.DBTX
}

// NewSQLiteTodoRepo creates a new SQLiteTodoRepo.
func NewSQLiteTodoRepo(db db.DBTX) *SQLiteTodoRepo {
	return &SQLiteTodoRepo{db: db}
}

// todoRow mirrors one row of the todos table.
type todoRow struct {
	ID          int64          `db:"id"`
	Title       string         `db:"title"`
	Description sql.NullString `db:"description"`
	Completed   int            `db:"completed"`
}

func newTodoRow(in domain.TodoInput) todoRow {
	return todoRow{
		Title:       in.Title,
		Description: nullableString(in.Description),
		Completed:   boolToInt(in.Completed),
	}
}

func (r todoRow) toDomain() *domain.Todo {
	return &domain.Todo{
		ID:          r.ID,
		Title:       r.Title,
		Description: stringFromNull(r.Description),
		Completed:   intToBool(r.Completed),
	}
}

const selectTodo = `SELECT id, title, description, completed FROM todos`

func (r *SQLiteTodoRepo) Insert(ctx context.Context, in domain.TodoInput) (*domain.Todo, error) {
	row := newTodoRow(in)
	res, err := r.db.NamedExecContext(ctx,
		`INSERT INTO todos (title, description, completed) VALUES (:title, :description, :completed)`,
		row,
	)
	if err != nil {
		return nil, fmt.Errorf("inserting todo: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("reading inserted todo id: %w", err)
	}
	return r.GetByID(ctx, id)
}

func (r *SQLiteTodoRepo) List(ctx context.Context) ([]*domain.Todo, error) {
	var rows []todoRow
	if err := r.db.SelectContext(ctx, &rows, selectTodo+` ORDER BY id`); err != nil {
		return nil, fmt.Errorf("listing todos: %w", err)
	}
	todos := make([]*domain.Todo, 0, len(rows))
	for _, row := range rows {
		todos = append(todos, row.toDomain())
	}
	return todos, nil
}

func (r *SQLiteTodoRepo) GetByID(ctx context.Context, id int64) (*domain.Todo, error) {
	var row todoRow
	err := r.db.GetContext(ctx, &row, selectTodo+` WHERE id = ?`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrTodoNotFound
		}
		return nil, fmt.Errorf("getting todo %d: %w", id, err)
	}
	return row.toDomain(), nil
}

func (r *SQLiteTodoRepo) Update(ctx context.Context, id int64, in domain.TodoInput) (*domain.Todo, error) {
	row := newTodoRow(in)
	row.ID = id
	res, err := r.db.NamedExecContext(ctx,
		`UPDATE todos SET title = :title, description = :description, completed = :completed WHERE id = :id`,
		row,
	)
	if err != nil {
		return nil, fmt.Errorf("updating todo %d: %w", id, err)
	}
	if err := requireAffected(res); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

func (r *SQLiteTodoRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM todos WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting todo %d: %w", id, err)
	}
	return requireAffected(res)
}

// requireAffected maps a zero-row write to ErrTodoNotFound.
func requireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("reading affected rows: %w", err)
	}
	if n == 0 {
		return domain.ErrTodoNotFound
	}
	return nil
}
