// Package todo implements the view state of the task list: the draft being
// typed, the task under edit, the derived display order, and the scroll
// effects that follow list and edit changes.
//
// The package renders nothing. A front end feeds it user actions, reads
// Display, Placeholder and SubmitLabel when drawing, and calls Sync after
// every draw.
package todo

import (
	"context"
	"strings"

	"gtodo/internal/service"
)

// Intents is the write side of the store.
type Intents interface {
	Load(ctx context.Context)
	Add(ctx context.Context, text string)
	Update(ctx context.Context, task service.Task)
	Delete(ctx context.Context, id string)
}

// Source is the read side of the store.
type Source interface {
	Tasks() []service.Task
}

// Store combines both sides; *store.Store satisfies it.
type Store interface {
	Intents
	Source
}

// Mode is the state of the add/edit machine.
type Mode int

const (
	// Idle means the draft will create a new task.
	Idle Mode = iota
	// Editing means the draft is bound to an existing task.
	Editing
)

func (m Mode) String() string {
	if m == Editing {
		return "editing"
	}
	return "idle"
}

// Draft is the input in progress.
type Draft struct {
	Text      string
	EditingID string // empty when Idle
}

// Editor owns the draft and forwards user intents to the store.
type Editor struct {
	store    Store
	scroller Scroller
	draft    Draft

	seenLen     int
	seenEditing string
}

// NewEditor creates an Idle editor. A nil scroller is replaced by NopScroller.
func NewEditor(store Store, scroller Scroller) *Editor {
	if scroller == nil {
		scroller = NopScroller{}
	}
	return &Editor{store: store, scroller: scroller}
}

// Mount requests the initial load.
func (e *Editor) Mount(ctx context.Context) {
	e.store.Load(ctx)
}

// Draft returns the current draft.
func (e *Editor) Draft() Draft {
	return e.draft
}

// Mode reports whether the draft is bound to an existing task.
func (e *Editor) Mode() Mode {
	if e.draft.EditingID != "" {
		return Editing
	}
	return Idle
}

// SetText replaces the draft text.
func (e *Editor) SetText(text string) {
	e.draft.Text = text
}

// StartEdit binds the draft to task and brings the input into view.
func (e *Editor) StartEdit(task service.Task) {
	e.draft = Draft{Text: task.Text, EditingID: task.ID}
	e.seenEditing = task.ID
	e.scroller.ScrollIntoView(ElementInput)
}

// CancelEdit leaves edit mode and clears the draft.
func (e *Editor) CancelEdit() {
	if e.draft.EditingID == "" {
		return
	}
	e.draft = Draft{}
}

// Submit dispatches the draft: an add in Idle, an update in Editing.
// Whitespace-only text is ignored without feedback and Submit returns false.
// An update resets the task's completion flag.
func (e *Editor) Submit(ctx context.Context) bool {
	text := strings.TrimSpace(e.draft.Text)
	if text == "" {
		return false
	}

	if id := e.draft.EditingID; id != "" {
		e.store.Update(ctx, service.Task{ID: id, Text: text, Completed: false})
	} else {
		e.store.Add(ctx, text)
	}
	e.draft = Draft{}
	return true
}

// ToggleComplete dispatches an update with the completion flag flipped.
func (e *Editor) ToggleComplete(ctx context.Context, task service.Task) {
	task.Completed = !task.Completed
	e.store.Update(ctx, task)
}

// DeleteTask dispatches a delete.
func (e *Editor) DeleteTask(ctx context.Context, id string) {
	e.store.Delete(ctx, id)
}

// Display returns the store's collection newest first.
func (e *Editor) Display() []service.Task {
	return service.Reverse(e.store.Tasks())
}

// Placeholder is the input hint for the current mode.
func (e *Editor) Placeholder() string {
	if e.Mode() == Editing {
		return "Update todo"
	}
	return "Add a new task"
}

// SubmitLabel is the submit button caption for the current mode.
func (e *Editor) SubmitLabel() string {
	if e.Mode() == Editing {
		return "Update Task"
	}
	return "Add Task"
}

// Sync runs the scroll effects. Call it after every render.
func (e *Editor) Sync() {
	if n := len(e.store.Tasks()); n != e.seenLen {
		e.seenLen = n
		e.scroller.ScrollIntoView(ElementFirstRow)
	}
	if id := e.draft.EditingID; id != e.seenEditing {
		e.seenEditing = id
		if id != "" {
			e.scroller.ScrollIntoView(ElementInput)
		}
	}
}
