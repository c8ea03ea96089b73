package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/smileynet/contactbook/internal/contact"
)

// Run shows the contact screen and blocks until the user quits or ctx is
// cancelled. Extra options are passed to the Bubble Tea program.
func Run(ctx context.Context, book *contact.Book, opts ...tea.ProgramOption) error {
	opts = append([]tea.ProgramOption{tea.WithContext(ctx)}, opts...)
	_, err := tea.NewProgram(NewModel(book), opts...).Run()
	return err
}
