// Package caughtup is shown when a course has nothing due and nothing new.
package caughtup

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/memoflow/internal/screen"
	"github.com/abhisek/memoflow/internal/ui/layout"
	"github.com/abhisek/memoflow/internal/ui/theme"
)

// Screen tells the learner there is nothing to practice.
type Screen struct {
	course string
}

var _ screen.Screen = (*Screen)(nil)
var _ screen.KeyHintProvider = (*Screen)(nil)

// New creates the screen for the named course.
func New(course string) *Screen {
	return &Screen{course: course}
}

func (s *Screen) Init() tea.Cmd { return nil }

func (s *Screen) Title() string { return s.course }

func (s *Screen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{{Key: "Any key", Description: "Exit"}}
}

// Update quits on any key.
func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if _, ok := msg.(tea.KeyPressMsg); ok {
		return s, tea.Quit
	}
	return s, nil
}

func (s *Screen) View(width, height int) string {
	var b strings.Builder
	b.WriteString(theme.Title.Render("All caught up"))
	b.WriteString("\n\n")
	b.WriteString(theme.Subtitle.Render("No words are due and every word has been started."))
	b.WriteString("\n")
	b.WriteString(theme.Hint.Render("Come back later for your next review."))
	return layout.Center(lipgloss.NewStyle().Align(lipgloss.Center).Render(b.String()), width, height)
}
