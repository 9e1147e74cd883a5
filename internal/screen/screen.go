// Package screen defines the contract between the router and the screens
// it displays.
package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/memoflow/internal/ui/layout"
)

// Screen is one page of the practice TUI.
type Screen interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the content area, excluding header and footer.
	View(width, height int) string

	// Title is shown in the header.
	Title() string
}

// KeyHintProvider is implemented by screens with their own footer hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// StatusProvider is implemented by screens that show a header status, such
// as the position within a session.
type StatusProvider interface {
	Status() string
}
