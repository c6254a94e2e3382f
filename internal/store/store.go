// Package store holds the authoritative task collection and synchronizes it
// with a remote service.
//
// Intents (Load, Add, Update, Delete) return immediately. Each one runs its
// remote call on its own goroutine and, on success, folds the result into the
// collection. Intents are neither deduplicated nor ordered: results apply in
// completion order. Observers learn about changes through Subscribe.
package store

import (
	"context"
	"sync"

	"github.com/charmbracelet/log"

	"gtodo/internal/logging"
	"gtodo/internal/service"
)

// State is a point-in-time copy of the store.
type State struct {
	// Tasks is the collection in insertion order.
	Tasks []service.Task

	// Loaded is true once a load has succeeded.
	Loaded bool

	// Pending counts intents whose remote call has not settled.
	Pending int

	// Err is the most recent remote failure, nil after the next success.
	Err error
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for intents and failures.
func WithLogger(logger *log.Logger) Option {
	return func(s *Store) {
		s.logger = logger
	}
}

// Store is the state container shared by the view and the remote service.
type Store struct {
	svc    service.Service
	logger *log.Logger

	mu      sync.RWMutex
	tasks   []service.Task
	loaded  bool
	pending int
	err     error
	subs    map[int]chan struct{}
	nextSub int

	wg sync.WaitGroup
}

// New creates an empty store backed by svc.
func New(svc service.Service, opts ...Option) *Store {
	s := &Store{
		svc:    svc,
		logger: logging.Discard(),
		subs:   make(map[int]chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load replaces the collection with the service's current one.
func (s *Store) Load(ctx context.Context) {
	s.dispatch(ctx, "load", func(ctx context.Context) (func(), error) {
		tasks, err := s.svc.ListTasks(ctx)
		if err != nil {
			return nil, err
		}
		return func() {
			s.tasks = tasks
			s.loaded = true
		}, nil
	})
}

// Add creates a task and appends it to the collection.
func (s *Store) Add(ctx context.Context, text string) {
	s.dispatch(ctx, "add", func(ctx context.Context) (func(), error) {
		created, err := s.svc.CreateTask(ctx, text)
		if err != nil {
			return nil, err
		}
		return func() {
			s.tasks = append(s.tasks, created)
		}, nil
	})
}

// Update replaces a task's text and completion flag. If the task has left
// the collection by the time the call returns, the result is dropped.
func (s *Store) Update(ctx context.Context, task service.Task) {
	s.dispatch(ctx, "update", func(ctx context.Context) (func(), error) {
		updated, err := s.svc.UpdateTask(ctx, task)
		if err != nil {
			return nil, err
		}
		return func() {
			if i := s.index(updated.ID); i >= 0 {
				s.tasks[i] = updated
			}
		}, nil
	}, "id", task.ID)
}

// Delete removes a task.
func (s *Store) Delete(ctx context.Context, id string) {
	s.dispatch(ctx, "delete", func(ctx context.Context) (func(), error) {
		if err := s.svc.DeleteTask(ctx, id); err != nil {
			return nil, err
		}
		return func() {
			if i := s.index(id); i >= 0 {
				s.tasks = append(s.tasks[:i:i], s.tasks[i+1:]...)
			}
		}, nil
	}, "id", id)
}

// Tasks returns a copy of the collection in insertion order.
func (s *Store) Tasks() []service.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.copyTasks()
}

// State returns a copy of the full store state.
func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return State{
		Tasks:   s.copyTasks(),
		Loaded:  s.loaded,
		Pending: s.pending,
		Err:     s.err,
	}
}

// Subscribe returns a channel that receives a signal after every state
// change, and a function that cancels the subscription. Signals coalesce:
// a subscriber that falls behind sees one pending signal, never a backlog.
func (s *Store) Subscribe() (<-chan struct{}, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextSub
	s.nextSub++
	ch := make(chan struct{}, 1)
	s.subs[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			delete(s.subs, id)
			close(ch)
		})
	}
}

// Wait blocks until every dispatched intent has settled.
func (s *Store) Wait() {
	s.wg.Wait()
}

// reducer runs a remote call and returns the state mutation to apply.
type reducer func(ctx context.Context) (apply func(), err error)

func (s *Store) dispatch(ctx context.Context, op string, run reducer, keyvals ...any) {
	s.wg.Add(1)
	s.mu.Lock()
	s.pending++
	s.notifyLocked()
	s.mu.Unlock()

	s.logger.Debug("dispatch", append([]any{"op", op}, keyvals...)...)

	go func() {
		defer s.wg.Done()

		apply, err := run(ctx)

		s.mu.Lock()
		defer s.mu.Unlock()
		s.pending--
		if err != nil {
			s.err = err
			s.logger.Error("intent failed", append([]any{"op", op, "err", err}, keyvals...)...)
		} else {
			s.err = nil
			apply()
		}
		s.notifyLocked()
	}()
}

func (s *Store) notifyLocked() {
	for _, ch := range s.subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

func (s *Store) index(id string) int {
	for i, t := range s.tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) copyTasks() []service.Task {
	out := make([]service.Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}
