package todo

import (
	"context"
	"errors"
	"fmt"
)

type Todo struct {
	ID        uint64 `json:"id"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
}

type CreateTodo struct {
	Title string `json:"title"`
}

// UpdateTodo is a partial update: a nil field leaves the stored value as is.
type UpdateTodo struct {
	Title     *string `json:"title,omitempty"`
	Completed *bool   `json:"completed,omitempty"`
}

func (u UpdateTodo) apply(t *Todo) {
	if u.Title != nil {
		t.Title = *u.Title
	}
	if u.Completed != nil {
		t.Completed = *u.Completed
	}
}

var ErrNotFound = errors.New("todo not found")

// NotFoundError carries the requested id. Its message is what clients see.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("Todo with id %s not found", e.ID)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

func notFound(id uint64) error {
	return &NotFoundError{ID: fmt.Sprint(id)}
}

type Store interface {
	Create(ctx context.Context, title string) (Todo, error)
	List(ctx context.Context) ([]Todo, error)
	Get(ctx context.Context, id uint64) (Todo, error)
	Update(ctx context.Context, id uint64, upd UpdateTodo) (Todo, error)
	Delete(ctx context.Context, id uint64) error
	Ping(ctx context.Context) error
	Len() int
}

// Seed is the data a fresh process starts with.
func Seed() []Todo {
	return []Todo{
		{ID: 1, Title: "Learn Rust", Completed: false},
		{ID: 2, Title: "Build an API with Axum", Completed: true},
	}
}
