package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// ListTasks returns all tasks owned by userID, newest first.
func (s *Store) ListTasks(ctx context.Context, userID string) ([]Task, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, description, quadrant, status, created_at, updated_at
		FROM tasks WHERE user_id = ?
		ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("listing tasks: %w", err)
	}
	defer rows.Close()

	tasks := []Task{}
	for rows.Next() {
		var t Task
		if err := rows.Scan(&t.ID, &t.Title, &t.Description, &t.Quadrant,
			&t.Status, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning task: %w", err)
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

// ReplaceTasks atomically replaces the user's entire task list. The
// frontend sends the full matrix on every save, so partial updates are
// never needed. Tasks without an id get one assigned.
func (s *Store) ReplaceTasks(ctx context.Context, userID string, tasks []Task) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM tasks WHERE user_id = ?`, userID); err != nil {
		return 0, fmt.Errorf("clearing tasks: %w", err)
	}

	ts := now()
	for _, t := range tasks {
		if t.ID == "" {
			t.ID = uuid.NewString()
		}
		if t.CreatedAt == "" {
			t.CreatedAt = ts
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO tasks (id, user_id, title, description, quadrant, status, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			t.ID, userID, t.Title, t.Description, t.Quadrant, t.Status, t.CreatedAt, ts); err != nil {
			return 0, fmt.Errorf("inserting task %q: %w", t.Title, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing tasks: %w", err)
	}
	return len(tasks), nil
}
