// Package tui is the interactive full-screen front end: toolbar, input, output and
// history panel, all driven by the application controller.
package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/doeshing/textpolish/internal/application/controller"
	"github.com/doeshing/textpolish/internal/ports"
)

// Run blocks until the user quits.
func Run(ctx context.Context, ctrl *controller.Controller, clip ports.Clipboard, logger ports.Logger) error {
	m := newModel(ctx, ctrl, clip, logger)
	final, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	if fm, ok := final.(model); ok {
		fm.cancelPending()
	}
	return err
}
