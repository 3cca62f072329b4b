package repository

import (
	"context"

	"github.com/alexanderramin/todod/internal/domain"
)

// TodoRepo persists to-do records. Lookups by an unknown id return
// domain.ErrTodoNotFound and leave storage untouched.
type TodoRepo interface {
	Insert(ctx context.Context, in domain.TodoInput) (*domain.Todo, error)
	List(ctx context.Context) ([]*domain.Todo, error)
	GetByID(ctx context.Context, id int64) (*domain.Todo, error)
	Update(ctx context.Context, id int64, in domain.TodoInput) (*domain.Todo, error)
	Delete(ctx context.Context, id int64) error
}

var _ TodoRepo = (*SQLiteTodoRepo)(nil)
