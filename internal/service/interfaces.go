package service

import (
	"context"

	"github.com/alexanderramin/todod/internal/domain"
)

// TodoService is the use-case boundary for to-do records. Operations on an
// unknown id return domain.ErrTodoNotFound.
type TodoService interface {
	Create(ctx context.Context, in domain.TodoInput) (*domain.Todo, error)
	List(ctx context.Context) ([]*domain.Todo, error)
	Get(ctx context.Context, id int64) (*domain.Todo, error)
	Update(ctx context.Context, id int64, in domain.TodoInput) (*domain.Todo, error)
	Delete(ctx context.Context, id int64) error
}
