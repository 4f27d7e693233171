package tui

import (
	"context"
	"fmt"

	"account-transactions/internal/form"

	tea "github.com/charmbracelet/bubbletea"
)

// Run shows the form until the user quits. The component is disposed on exit.
func Run(ctx context.Context, component *form.Component, toasts *ToastBoard) error {
	defer component.Dispose()

	p := tea.NewProgram(NewModel(ctx, component, toasts), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("failed to run terminal UI: %w", err)
	}
	return nil
}
