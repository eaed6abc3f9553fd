package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/nhle/todoapp/internal/model"
)

// CreateTodo inserts a new todo. Generates a UUID if ID is empty and
// defaults the priority to medium.
func (s *SQLiteStore) CreateTodo(ctx context.Context, todo model.Todo) (*model.Todo, error) {
	if todo.ID == "" {
		todo.ID = uuid.New().String()
	}
	if todo.Priority == "" {
		todo.Priority = model.PriorityMedium
	}
	now := time.Now().UTC()
	if todo.CreatedAt.IsZero() {
		todo.CreatedAt = now
	}
	todo.UpdatedAt = now

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO todos (
			id, user_id, title, memo, is_completed,
			priority, due_date, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		todo.ID, todo.UserID, todo.Title, todo.Memo, todo.IsCompleted,
		todo.Priority, todo.DueDate, todo.CreatedAt, todo.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("creating todo: %w", err)
	}

	return &todo, nil
}

// UpdateTodo replaces all mutable fields of an existing todo by ID.
// The owner reference is never part of the write set.
func (s *SQLiteStore) UpdateTodo(ctx context.Context, todo model.Todo) (*model.Todo, error) {
	todo.UpdatedAt = time.Now().UTC()

	result, err := s.db.ExecContext(ctx, `
		UPDATE todos SET
			title = ?, memo = ?, is_completed = ?,
			priority = ?, due_date = ?, updated_at = ?
		WHERE id = ?`,
		todo.Title, todo.Memo, todo.IsCompleted,
		todo.Priority, todo.DueDate, todo.UpdatedAt,
		todo.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("updating todo %s: %w", todo.ID, err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return nil, ErrNotFound
	}

	return s.GetTodoByID(ctx, todo.ID)
}

// DeleteTodo removes a todo by ID.
func (s *SQLiteStore) DeleteTodo(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM todos WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting todo %s: %w", id, err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

// GetTodoByID retrieves a single todo by ID.
func (s *SQLiteStore) GetTodoByID(ctx context.Context, id string) (*model.Todo, error) {
	var todo model.Todo
	err := s.db.GetContext(ctx, &todo, "SELECT * FROM todos WHERE id = ?", id)
	if err != nil {
		return nil, notFoundErr(err, fmt.Sprintf("getting todo %s", id))
	}
	return &todo, nil
}

// GetTodosByOwner retrieves all todos owned by the given user,
// newest-created-first.
func (s *SQLiteStore) GetTodosByOwner(ctx context.Context, userID string) ([]model.Todo, error) {
	var todos []model.Todo
	err := s.db.SelectContext(ctx, &todos,
		"SELECT * FROM todos WHERE user_id = ? ORDER BY created_at DESC",
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("querying todos for user %s: %w", userID, err)
	}
	return todos, nil
}
