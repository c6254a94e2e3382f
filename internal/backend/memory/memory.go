// Package memory implements service.Service in process memory.
// Nothing is persisted; the collection is gone when the program exits.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"gtodo/internal/service"
)

// Service is an in-memory task service.
type Service struct {
	mu    sync.RWMutex
	tasks []service.Task
}

// New creates an empty in-memory service.
func New() *Service {
	return &Service{}
}

// ListTasks implements service.Service.
func (s *Service) ListTasks(ctx context.Context) ([]service.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]service.Task, len(s.tasks))
	copy(out, s.tasks)
	return out, nil
}

// CreateTask implements service.Service.
func (s *Service) CreateTask(ctx context.Context, text string) (service.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	task := service.Task{ID: uuid.NewString(), Text: text}
	s.tasks = append(s.tasks, task)
	return task, nil
}

// UpdateTask implements service.Service.
func (s *Service) UpdateTask(ctx context.Context, task service.Task) (service.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.index(task.ID)
	if i < 0 {
		return service.Task{}, fmt.Errorf("task %s: %w", task.ID, service.ErrNotFound)
	}
	s.tasks[i] = task
	return task, nil
}

// DeleteTask implements service.Service.
func (s *Service) DeleteTask(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.index(id)
	if i < 0 {
		return fmt.Errorf("task %s: %w", id, service.ErrNotFound)
	}
	s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
	return nil
}

func (s *Service) index(id string) int {
	for i, t := range s.tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}
