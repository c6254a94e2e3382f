// Package service defines the backend-agnostic interface for task operations.
package service

import "context"

// Service defines the interface for remote task operations.
// The store and the commands go through this interface and never import
// a backend SDK directly.
type Service interface {
	// ListTasks returns every task in insertion order (oldest first).
	ListTasks(ctx context.Context) ([]Task, error)

	// CreateTask creates a new open task and returns it with its
	// backend-assigned ID.
	CreateTask(ctx context.Context, text string) (Task, error)

	// UpdateTask replaces the text and completion flag of an existing task.
	// Returns ErrNotFound (possibly wrapped) if the ID is unknown.
	UpdateTask(ctx context.Context, task Task) (Task, error)

	// DeleteTask deletes a task by ID.
	DeleteTask(ctx context.Context, id string) error
}

// Reverse returns a copy of tasks in reverse order.
// The input slice is not modified.
func Reverse(tasks []Task) []Task {
	out := make([]Task, len(tasks))
	for i, t := range tasks {
		out[len(tasks)-1-i] = t
	}
	return out
}
