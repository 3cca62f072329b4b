package domain

import "errors"

// ErrTodoNotFound is returned when an operation targets an id with no
// stored record.
var ErrTodoNotFound = errors.New("todo not found")

// Todo is a single stored to-do record. ID is assigned by storage and never
// changes; Description is nil when absent.
type Todo struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Description *string `json:"description"`
	Completed   bool    `json:"completed"`
}

// TodoInput carries the mutable fields for a create or a full-replacement
// update. An empty Title is allowed.
type TodoInput struct {
	Title       string
	Description *string
	Completed   bool
}

// Apply overwrites every mutable field of t with in. Fields are never merged.
func (t *Todo) Apply(in TodoInput) {
	t.Title = in.Title
	t.Description = in.Description
	t.Completed = in.Completed
}

// Input returns the mutable fields of t.
func (t *Todo) Input() TodoInput {
	return TodoInput{
		Title:       t.Title,
		Description: t.Description,
		Completed:   t.Completed,
	}
}
