// Package service defines the backend-agnostic interface for task operations.
package service

import "errors"

var (
	// ErrNotFound is returned when a task does not exist on the backend.
	ErrNotFound = errors.New("not found")

	// ErrUnauthorized is returned when the backend rejects the credentials.
	ErrUnauthorized = errors.New("unauthorized")
)

// Task represents a single todo item.
type Task struct {
	ID        string
	Text      string
	Completed bool
}
