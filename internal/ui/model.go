package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"gtodo/internal/store"
	"gtodo/internal/todo"
)

const (
	defaultWidth  = 80
	defaultHeight = 24

	// chromeHeight is the number of lines above and below the list:
	// title, blank, bordered input (3), button, blank, status, help.
	chromeHeight = 9

	inputCharLimit = 280
)

type focusArea int

const (
	focusInput focusArea = iota
	focusList
)

// storeChangedMsg signals that the store state changed.
type storeChangedMsg struct{}

// storeClosedMsg signals that the store subscription ended.
type storeClosedMsg struct{}

// Model is the bubbletea model of the task view.
type Model struct {
	ctx    context.Context
	store  *store.Store
	editor *todo.Editor

	changes     <-chan struct{}
	unsubscribe func()

	input    textinput.Model
	viewport viewport.Model
	help     help.Model
	keys     keyMap

	focus  focusArea
	cursor int
	width  int
	height int
}

// NewModel creates the view for st. The model subscribes to the store
// immediately; call Close when the program ends.
func NewModel(ctx context.Context, st *store.Store) *Model {
	m := &Model{
		ctx:      ctx,
		store:    st,
		input:    textinput.New(),
		viewport: viewport.New(defaultWidth, defaultHeight-chromeHeight),
		help:     help.New(),
		keys:     defaultKeyMap(),
		width:    defaultWidth,
		height:   defaultHeight,
	}
	m.editor = todo.NewEditor(st, todo.ScrollFunc(m.scrollIntoView))
	m.changes, m.unsubscribe = st.Subscribe()

	m.input.CharLimit = inputCharLimit
	m.input.Width = defaultWidth - 6
	m.input.Placeholder = m.editor.Placeholder()
	m.input.Focus()
	return m
}

// Close cancels the store subscription.
func (m *Model) Close() {
	m.unsubscribe()
}

// Editor exposes the view state.
func (m *Model) Editor() *todo.Editor {
	return m.editor
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	m.editor.Mount(m.ctx)
	return tea.Batch(textinput.Blink, waitForChange(m.changes))
}

func waitForChange(ch <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return storeClosedMsg{}
		}
		return storeChangedMsg{}
	}
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)

	case storeChangedMsg:
		cmds = append(cmds, waitForChange(m.changes))

	case storeClosedMsg:
		return m, nil

	case tea.KeyMsg:
		cmd, quit := m.handleKey(msg)
		if quit {
			return m, tea.Quit
		}
		cmds = append(cmds, cmd)

	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		cmds = append(cmds, cmd)
	}

	m.afterUpdate()
	return m, tea.Batch(cmds...)
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	if msg.String() == "ctrl+c" {
		return nil, true
	}
	if key.Matches(msg, m.keys.Focus) {
		if m.focus == focusInput {
			m.setFocus(focusList)
		} else {
			m.setFocus(focusInput)
		}
		return nil, false
	}

	if m.focus == focusInput {
		return m.handleInputKey(msg), false
	}
	return nil, m.handleListKey(msg)
}

func (m *Model) handleInputKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Submit):
		m.editor.SetText(m.input.Value())
		if m.editor.Submit(m.ctx) {
			m.input.Reset()
		}
		return nil
	case key.Matches(msg, m.keys.Cancel):
		if m.editor.Mode() == todo.Editing {
			m.editor.CancelEdit()
			m.input.Reset()
		}
		return nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.editor.SetText(m.input.Value())
	return cmd
}

func (m *Model) handleListKey(msg tea.KeyMsg) bool {
	rows := m.editor.Display()

	switch {
	case key.Matches(msg, m.keys.Quit):
		return true
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(rows)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Cancel):
		m.setFocus(focusInput)
	}

	if m.cursor >= len(rows) {
		return false
	}
	selected := rows[m.cursor]

	switch {
	case key.Matches(msg, m.keys.Toggle):
		m.editor.ToggleComplete(m.ctx, selected)
	case key.Matches(msg, m.keys.Delete):
		m.editor.DeleteTask(m.ctx, selected.ID)
	case key.Matches(msg, m.keys.Edit):
		m.editor.StartEdit(selected)
		m.input.SetValue(selected.Text)
		m.input.CursorEnd()
	}
	return false
}

// scrollIntoView implements todo.Scroller.
func (m *Model) scrollIntoView(el todo.Element) {
	switch el {
	case todo.ElementFirstRow:
		m.cursor = 0
		m.viewport.GotoTop()
	case todo.ElementInput:
		m.setFocus(focusInput)
	}
}

func (m *Model) setFocus(f focusArea) {
	m.focus = f
	if f == focusInput {
		m.input.Focus()
	} else {
		m.input.Blur()
	}
}

func (m *Model) resize(width, height int) {
	m.width, m.height = width, height
	m.input.Width = max(width-6, 10)
	m.viewport.Width = width
	m.viewport.Height = max(height-chromeHeight, 1)
	m.help.Width = width
}

// afterUpdate refreshes derived view state and runs the editor's effects.
func (m *Model) afterUpdate() {
	m.input.Placeholder = m.editor.Placeholder()
	m.editor.Sync()

	rows := m.editor.Display()
	if m.cursor >= len(rows) {
		m.cursor = max(len(rows)-1, 0)
	}
	m.renderList()
}

func (m *Model) renderList() {
	rows := m.editor.Display()
	if len(rows) == 0 {
		m.viewport.SetContent(mutedStyle.Render("  No tasks yet."))
		return
	}

	var b strings.Builder
	cursorTop, cursorBottom := 0, 0
	line := 0
	for i, task := range rows {
		rendered := m.renderRow(i, task.Text, task.Completed)
		h := lipgloss.Height(rendered)
		if i == m.cursor {
			cursorTop, cursorBottom = line, line+h
		}
		line += h
		b.WriteString(rendered)
		if i < len(rows)-1 {
			b.WriteString("\n")
		}
	}
	m.viewport.SetContent(b.String())

	// Keep the selected row visible.
	if cursorTop < m.viewport.YOffset {
		m.viewport.SetYOffset(cursorTop)
	} else if cursorBottom > m.viewport.YOffset+m.viewport.Height {
		m.viewport.SetYOffset(cursorBottom - m.viewport.Height)
	}
}

func (m *Model) renderRow(i int, text string, completed bool) string {
	box := "[ ]"
	if completed {
		box = "[x]"
		text = completedStyle.Render(text)
	}
	controls := deleteHintStyle.Render("[del]") + " " + editHintStyle.Render("[edit]")

	textWidth := max(m.width-lipgloss.Width(controls)-10, 10)
	body := lipgloss.NewStyle().Width(textWidth).Render(text)
	row := lipgloss.JoinHorizontal(lipgloss.Top, box+" ", body, " ", controls)

	if m.focus == focusList && i == m.cursor {
		return selectedRowStyle.Render(row)
	}
	return rowStyle.Render(row)
}

// View implements tea.Model.
func (m *Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Todo List"))
	b.WriteString("\n\n")
	b.WriteString(inputStyle.Render(m.input.View()))
	b.WriteString("\n")
	b.WriteString(buttonStyle.Render(m.editor.SubmitLabel()))
	b.WriteString("\n\n")
	b.WriteString(m.viewport.View())
	b.WriteString("\n")
	b.WriteString(m.statusLine())
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m *Model) statusLine() string {
	st := m.store.State()
	switch {
	case !st.Loaded && st.Pending > 0:
		return mutedStyle.Render("Loading...")
	case st.Pending > 0:
		return mutedStyle.Render(fmt.Sprintf("%d tasks · syncing", len(st.Tasks)))
	default:
		return mutedStyle.Render(fmt.Sprintf("%d tasks", len(st.Tasks)))
	}
}
