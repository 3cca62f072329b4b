package testutil

import (
	"fmt"
	"sync/atomic"

	"github.com/alexanderramin/todod/internal/domain"
)

var testTitleCounter atomic.Int64

// TodoOption customizes a test TodoInput.
type TodoOption func(*domain.TodoInput)

func WithDescription(d string) TodoOption {
	return func(in *domain.TodoInput) {
		in.Description = &d
	}
}

func WithCompleted(c bool) TodoOption {
	return func(in *domain.TodoInput) {
		in.Completed = c
	}
}

func WithTitle(title string) TodoOption {
	return func(in *domain.TodoInput) {
		in.Title = title
	}
}

// NewTestTodoInput returns an input with a unique title, no description and
// completed=false unless overridden.
func NewTestTodoInput(opts ...TodoOption) domain.TodoInput {
	in := domain.TodoInput{
		Title: fmt.Sprintf("todo %d", testTitleCounter.Add(1)),
	}
	for _, opt := range opts {
		opt(&in)
	}
	return in
}

// Ptr returns a pointer to v.
func Ptr[T any](v T) *T {
	return &v
}
