package service

import (
	"context"
	"time"

	"github.com/alexanderramin/todod/internal/db"
	"github.com/alexanderramin/todod/internal/domain"
	"github.com/alexanderramin/todod/internal/repository"
)

// TodoRepoFactory builds a repository bound to one unit of work.
type TodoRepoFactory func(tx db.DBTX) repository.TodoRepo

type todoService struct {
	uow      db.UnitOfWork
	repoFor  TodoRepoFactory
	observer UseCaseObserver
}

// NewTodoService returns a TodoService that runs every call inside its own
// unit of work.
func NewTodoService(uow db.UnitOfWork, observers ...UseCaseObserver) TodoService {
	return &todoService{
		uow: uow,
		repoFor: func(tx db.DBTX) repository.TodoRepo {
			return repository.NewSQLiteTodoRepo(tx)
		},
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *todoService) Create(ctx context.Context, in domain.TodoInput) (todo *domain.Todo, err error) {
	fields := map[string]any{}
	defer s.observe(ctx, "create-todo", time.Now().UTC(), fields, &err)

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		var txErr error
		todo, txErr = s.repoFor(tx).Insert(ctx, in)
		return txErr
	})
	if err != nil {
		return nil, err
	}
	fields["todo_id"] = todo.ID
	return todo, nil
}

func (s *todoService) List(ctx context.Context) (todos []*domain.Todo, err error) {
	fields := map[string]any{}
	defer s.observe(ctx, "list-todos", time.Now().UTC(), fields, &err)

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		var txErr error
		todos, txErr = s.repoFor(tx).List(ctx)
		return txErr
	})
	if err != nil {
		return nil, err
	}
	fields["count"] = len(todos)
	return todos, nil
}

func (s *todoService) Get(ctx context.Context, id int64) (todo *domain.Todo, err error) {
	defer s.observe(ctx, "get-todo", time.Now().UTC(), map[string]any{"todo_id": id}, &err)

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		var txErr error
		todo, txErr = s.repoFor(tx).GetByID(ctx, id)
		return txErr
	})
	if err != nil {
		return nil, err
	}
	return todo, nil
}

func (s *todoService) Update(ctx context.Context, id int64, in domain.TodoInput) (todo *domain.Todo, err error) {
	defer s.observe(ctx, "update-todo", time.Now().UTC(), map[string]any{"todo_id": id}, &err)

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		var txErr error
		todo, txErr = s.repoFor(tx).Update(ctx, id, in)
		return txErr
	})
	if err != nil {
		return nil, err
	}
	return todo, nil
}

func (s *todoService) Delete(ctx context.Context, id int64) (err error) {
	defer s.observe(ctx, "delete-todo", time.Now().UTC(), map[string]any{"todo_id": id}, &err)

	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return s.repoFor(tx).Delete(ctx, id)
	})
}

// observe is deferred by every use case; errp is read after the call returns.
func (s *todoService) observe(ctx context.Context, name string, startedAt time.Time, fields map[string]any, errp *error) {
	err := *errp
	s.observer.ObserveUseCase(ctx, UseCaseEvent{
		Name:      name,
		StartedAt: startedAt,
		Duration:  time.Since(startedAt),
		Success:   err == nil,
		Err:       err,
		Fields:    fields,
	})
}
