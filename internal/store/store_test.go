package store_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"gtodo/internal/logging"
	"gtodo/internal/service"
	"gtodo/internal/store"
	"gtodo/internal/testutil"
)

func TestStore_Load(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTask("a", "A", false)
	svc.AddTask("b", "B", true)

	s := store.New(svc)
	s.Load(context.Background())
	s.Wait()

	st := s.State()
	if !st.Loaded {
		t.Error("expected Loaded after successful load")
	}
	if st.Pending != 0 {
		t.Errorf("expected no pending intents, got %d", st.Pending)
	}
	if len(st.Tasks) != 2 || st.Tasks[0].ID != "a" || st.Tasks[1].ID != "b" {
		t.Errorf("unexpected tasks %+v", st.Tasks)
	}
}

func TestStore_Scenario(t *testing.T) {
	ctx := context.Background()
	svc := testutil.NewFakeService()
	s := store.New(svc)

	s.Load(ctx)
	s.Wait()
	if len(s.Tasks()) != 0 {
		t.Fatalf("expected empty store, got %+v", s.Tasks())
	}

	s.Add(ctx, "Buy milk")
	s.Wait()
	tasks := s.Tasks()
	if len(tasks) != 1 || tasks[0].Text != "Buy milk" || tasks[0].Completed {
		t.Fatalf("unexpected tasks after add: %+v", tasks)
	}

	toggled := tasks[0]
	toggled.Completed = true
	s.Update(ctx, toggled)
	s.Wait()
	if got := s.Tasks(); len(got) != 1 || !got[0].Completed {
		t.Fatalf("expected completed task, got %+v", got)
	}

	s.Delete(ctx, toggled.ID)
	s.Wait()
	if got := s.Tasks(); len(got) != 0 {
		t.Fatalf("expected empty store after delete, got %+v", got)
	}
}

func TestStore_UpdateTouchesOnlyTarget(t *testing.T) {
	ctx := context.Background()
	svc := testutil.NewFakeService()
	svc.AddTask("a", "A", false)
	svc.AddTask("b", "B", false)
	svc.AddTask("c", "C", false)

	s := store.New(svc)
	s.Load(ctx)
	s.Wait()

	s.Update(ctx, service.Task{ID: "b", Text: "B", Completed: true})
	s.Wait()

	want := []service.Task{
		{ID: "a", Text: "A"},
		{ID: "b", Text: "B", Completed: true},
		{ID: "c", Text: "C"},
	}
	got := s.Tasks()
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("task %d: expected %+v, got %+v", i, want[i], got[i])
		}
	}
}

func TestStore_FailureKeepsCollection(t *testing.T) {
	ctx := context.Background()
	svc := testutil.NewFakeService()
	svc.AddTask("a", "A", false)

	var buf bytes.Buffer
	logger := logging.New(&buf, logging.Options{Level: log.DebugLevel})
	s := store.New(svc, store.WithLogger(logger))
	s.Load(ctx)
	s.Wait()

	boom := errors.New("boom")
	svc.DeleteTaskErr = boom
	s.Delete(ctx, "a")
	s.Wait()

	st := s.State()
	if len(st.Tasks) != 1 {
		t.Errorf("failed delete must not change the collection, got %+v", st.Tasks)
	}
	if !errors.Is(st.Err, boom) {
		t.Errorf("expected recorded error, got %v", st.Err)
	}
	if !strings.Contains(buf.String(), "intent failed") {
		t.Errorf("expected failure to be logged, got %q", buf.String())
	}

	svc.DeleteTaskErr = nil
	s.Delete(ctx, "a")
	s.Wait()
	if st := s.State(); st.Err != nil || len(st.Tasks) != 0 {
		t.Errorf("expected error cleared and task removed, got %+v", st)
	}
}

func TestStore_IntentsDoNotBlock(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.Gate = make(chan struct{})
	s := store.New(svc)

	done := make(chan struct{})
	go func() {
		s.Add(context.Background(), "one")
		s.Add(context.Background(), "two")
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("intents blocked the caller")
	}
	if st := s.State(); st.Pending != 2 || len(st.Tasks) != 0 {
		t.Errorf("expected 2 pending and no tasks yet, got %+v", st)
	}

	close(svc.Gate)
	s.Wait()
	if got := s.Tasks(); len(got) != 2 {
		t.Errorf("expected both adds applied, got %+v", got)
	}
}

func TestStore_DoubleSubmitNotDeduplicated(t *testing.T) {
	ctx := context.Background()
	svc := testutil.NewFakeService()
	s := store.New(svc)

	s.Add(ctx, "same")
	s.Add(ctx, "same")
	s.Wait()

	if got := s.Tasks(); len(got) != 2 {
		t.Errorf("expected two tasks, got %+v", got)
	}
}

func TestStore_Subscribe(t *testing.T) {
	svc := testutil.NewFakeService()
	s := store.New(svc)

	ch, cancel := s.Subscribe()
	s.Add(context.Background(), "Buy milk")
	s.Wait()

	select {
	case <-ch:
	case <-time.After(time.Second):
		t.Fatal("expected change signal")
	}

	cancel()
	cancel()
	if _, ok := <-ch; ok {
		// A signal may still be buffered; the channel must close after it.
		if _, ok := <-ch; ok {
			t.Error("expected channel closed after cancel")
		}
	}
}

func TestStore_CancelledSubscriptionSurvivesIntents(t *testing.T) {
	svc := testutil.NewFakeService()
	s := store.New(svc)

	cancelled, cancel := s.Subscribe()
	live, stop := s.Subscribe()
	defer stop()

	cancel()

	// Intents after cancel must not send on the closed channel.
	s.Add(context.Background(), "Buy milk")
	s.Delete(context.Background(), "missing")
	s.Wait()

	if _, ok := <-cancelled; ok {
		t.Error("expected cancelled channel to be closed")
	}

	select {
	case <-live:
	case <-time.After(time.Second):
		t.Fatal("expected the remaining subscriber to be signalled")
	}
	if len(s.Tasks()) != 1 {
		t.Errorf("expected one task, got %+v", s.Tasks())
	}
}

func TestStore_TasksReturnsCopy(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTask("a", "A", false)
	s := store.New(svc)
	s.Load(context.Background())
	s.Wait()

	got := s.Tasks()
	got[0].Text = "mutated"
	if s.Tasks()[0].Text != "A" {
		t.Error("Tasks must return a copy")
	}
}
