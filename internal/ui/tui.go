// Package ui provides the interactive terminal view of the task list.
package ui

import (
	"context"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"gtodo/internal/store"
)

// Run starts the interactive view and blocks until the user quits or ctx
// is cancelled. Intents still in flight when the view closes are awaited.
func Run(ctx context.Context, st *store.Store, logger *log.Logger) error {
	if !IsTTY(os.Stdout) {
		return fmt.Errorf("interactive view requires a TTY")
	}

	model := NewModel(ctx, st)
	defer model.Close()

	logger.Debug("starting view")
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := program.Run(); err != nil {
		return err
	}

	st.Wait()
	logger.Debug("view closed")
	return nil
}

// IsTTY returns true if w is a terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}
