package memory_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"gtodo/internal/backend/memory"
	"gtodo/internal/service"
)

func TestService_CRUD(t *testing.T) {
	ctx := context.Background()
	svc := memory.New()

	a, err := svc.CreateTask(ctx, "Buy milk")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := uuid.Parse(a.ID); err != nil {
		t.Errorf("expected uuid id, got %q", a.ID)
	}
	b, _ := svc.CreateTask(ctx, "Walk dog")

	tasks, _ := svc.ListTasks(ctx)
	if len(tasks) != 2 || tasks[0].ID != a.ID || tasks[1].ID != b.ID {
		t.Fatalf("expected insertion order [a b], got %+v", tasks)
	}

	a.Completed = true
	if _, err := svc.UpdateTask(ctx, a); err != nil {
		t.Fatalf("update: %v", err)
	}
	tasks, _ = svc.ListTasks(ctx)
	if !tasks[0].Completed || tasks[1].Completed {
		t.Errorf("expected only first task completed, got %+v", tasks)
	}

	if err := svc.DeleteTask(ctx, a.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	tasks, _ = svc.ListTasks(ctx)
	if len(tasks) != 1 || tasks[0].ID != b.ID {
		t.Errorf("expected only b left, got %+v", tasks)
	}
}

func TestService_NotFound(t *testing.T) {
	ctx := context.Background()
	svc := memory.New()

	if _, err := svc.UpdateTask(ctx, service.Task{ID: "missing"}); !errors.Is(err, service.ErrNotFound) {
		t.Errorf("expected ErrNotFound from update, got %v", err)
	}
	if err := svc.DeleteTask(ctx, "missing"); !errors.Is(err, service.ErrNotFound) {
		t.Errorf("expected ErrNotFound from delete, got %v", err)
	}
}
