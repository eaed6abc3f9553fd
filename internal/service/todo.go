package service

import (
	"context"
	"errors"

	"github.com/charmbracelet/log"

	"github.com/nhle/todoapp/internal/auth"
	"github.com/nhle/todoapp/internal/model"
	"github.com/nhle/todoapp/internal/store"
	"github.com/nhle/todoapp/internal/validate"
	"github.com/nhle/todoapp/internal/view"
)

// TodosPath is the route whose cached views are invalidated after
// every todo mutation.
const TodosPath = "/todos"

// msgTodoNotFound covers both a missing todo and one owned by another
// user. The two cases must stay indistinguishable so callers cannot
// probe for the existence of other users' todos.
const msgTodoNotFound = "task not found"

// Todos is the todo mutation service. Every operation authorizes
// first, then validates, then touches the store at most twice (one
// read-check, one write).
type Todos struct {
	store store.Store
	guard *auth.Guard
	views view.Invalidator
	log   *log.Logger
}

// NewTodos returns the todo service.
func NewTodos(s store.Store, guard *auth.Guard, views view.Invalidator, logger *log.Logger) *Todos {
	return &Todos{store: s, guard: guard, views: views, log: logger}
}

// require resolves the caller's identity, collapsing every failure
// into the uniform unauthenticated rejection. Unexpected resolution
// errors are logged before being masked.
func require(ctx context.Context, guard *auth.Guard, token string, logger *log.Logger) (*auth.Identity, error) {
	ident, err := guard.Require(ctx, token)
	if err != nil {
		if !errors.Is(err, auth.ErrNoIdentity) {
			logger.Error("resolving session", "error", err)
		}
		return nil, errUnauthenticated
	}
	return ident, nil
}

// Create validates and persists a new todo owned by the caller.
func (s *Todos) Create(ctx context.Context, token string, in validate.CreateTodoInput) (*model.Todo, error) {
	ident, err := require(ctx, s.guard, token, s.log)
	if err != nil {
		return nil, err
	}

	in, issues := validate.CreateTodo(in)
	if len(issues) > 0 {
		return nil, validationErr(issues.First())
	}

	todo, err := s.store.CreateTodo(ctx, model.Todo{
		UserID:   ident.UserID,
		Title:    in.Title,
		Memo:     in.Memo,
		Priority: in.Priority,
		DueDate:  in.DueDate,
	})
	if err != nil {
		s.log.Error("creating todo", "user_id", ident.UserID, "error", err)
		return nil, failedErr("failed to create task")
	}

	s.views.Invalidate(TodosPath)
	return todo, nil
}

// List returns all of the caller's todos, newest-created-first.
func (s *Todos) List(ctx context.Context, token string) ([]model.Todo, error) {
	ident, err := require(ctx, s.guard, token, s.log)
	if err != nil {
		return nil, err
	}

	todos, err := s.store.GetTodosByOwner(ctx, ident.UserID)
	if err != nil {
		s.log.Error("listing todos", "user_id", ident.UserID, "error", err)
		return nil, failedErr("failed to fetch tasks")
	}
	return todos, nil
}

// Update replaces all mutable fields of one of the caller's todos.
func (s *Todos) Update(ctx context.Context, token string, in validate.UpdateTodoInput) (*model.Todo, error) {
	ident, err := require(ctx, s.guard, token, s.log)
	if err != nil {
		return nil, err
	}

	in, issues := validate.UpdateTodo(in)
	if len(issues) > 0 {
		return nil, validationErr(issues.First())
	}

	existing, err := s.checkOwnership(ctx, in.ID, ident, "failed to update task")
	if err != nil {
		return nil, err
	}

	todo, err := s.store.UpdateTodo(ctx, model.Todo{
		ID:          existing.ID,
		UserID:      existing.UserID,
		Title:       in.Title,
		Memo:        in.Memo,
		IsCompleted: in.IsCompleted,
		Priority:    in.Priority,
		DueDate:     in.DueDate,
	})
	if err != nil {
		s.log.Error("updating todo", "todo_id", in.ID, "error", err)
		return nil, failedErr("failed to update task")
	}

	s.views.Invalidate(TodosPath)
	return todo, nil
}

// Delete removes one of the caller's todos.
func (s *Todos) Delete(ctx context.Context, token string, id string) error {
	ident, err := require(ctx, s.guard, token, s.log)
	if err != nil {
		return err
	}

	if id == "" {
		return validationErr("id is required")
	}

	if _, err := s.checkOwnership(ctx, id, ident, "failed to delete task"); err != nil {
		return err
	}

	if err := s.store.DeleteTodo(ctx, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return notFoundErr(msgTodoNotFound)
		}
		s.log.Error("deleting todo", "todo_id", id, "error", err)
		return failedErr("failed to delete task")
	}

	s.views.Invalidate(TodosPath)
	return nil
}

// ToggleComplete flips the completion state of one of the caller's
// todos. It reads the current state and writes its negation, so two
// consecutive toggles restore the original state.
func (s *Todos) ToggleComplete(ctx context.Context, token string, id string) (*model.Todo, error) {
	ident, err := require(ctx, s.guard, token, s.log)
	if err != nil {
		return nil, err
	}

	if id == "" {
		return nil, validationErr("id is required")
	}

	existing, err := s.checkOwnership(ctx, id, ident, "failed to update task")
	if err != nil {
		return nil, err
	}

	existing.IsCompleted = !existing.IsCompleted

	todo, err := s.store.UpdateTodo(ctx, *existing)
	if err != nil {
		s.log.Error("toggling todo", "todo_id", id, "error", err)
		return nil, failedErr("failed to update task")
	}

	s.views.Invalidate(TodosPath)
	return todo, nil
}

// checkOwnership loads a todo and verifies the caller owns it. A
// missing todo and a foreign-owned todo produce the identical error.
func (s *Todos) checkOwnership(ctx context.Context, id string, ident *auth.Identity, failMsg string) (*model.Todo, error) {
	existing, err := s.store.GetTodoByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, notFoundErr(msgTodoNotFound)
		}
		s.log.Error("loading todo for ownership check", "todo_id", id, "error", err)
		return nil, failedErr(failMsg)
	}
	if existing.UserID != ident.UserID {
		return nil, notFoundErr(msgTodoNotFound)
	}
	return existing, nil
}
