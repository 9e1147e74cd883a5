// Package summary shows the result of a practice session and commits it.
package summary

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/bubbles/v2/key"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/memoflow/internal/screen"
	"github.com/abhisek/memoflow/internal/session"
	"github.com/abhisek/memoflow/internal/spacedrep"
	"github.com/abhisek/memoflow/internal/ui/components"
	"github.com/abhisek/memoflow/internal/ui/layout"
	"github.com/abhisek/memoflow/internal/ui/theme"
)

// Finisher commits the outcomes of a session. session.Runner.Finish bound
// to the active session satisfies it.
type Finisher func(ctx context.Context, outcomes []spacedrep.Outcome) *session.Result

// FinishedMsg reports that the outcomes were committed.
type FinishedMsg struct {
	Result *session.Result
}

type state int

const (
	statePending state = iota
	stateSaving
	stateDone
)

// SummaryScreen displays the tally and saves it on request.
type SummaryScreen struct {
	ctx      context.Context
	outcomes []spacedrep.Outcome
	summary  session.Summary
	early    bool
	finish   Finisher

	state  state
	result *session.Result
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)

// New creates a summary for outcomes. early marks a session that was left
// before every word was answered.
func New(ctx context.Context, outcomes []spacedrep.Outcome, elapsed time.Duration, early bool, finish Finisher) *SummaryScreen {
	return &SummaryScreen{
		ctx:      ctx,
		outcomes: outcomes,
		summary:  session.BuildSummary(outcomes, elapsed),
		early:    early,
		finish:   finish,
	}
}

func (s *SummaryScreen) Init() tea.Cmd { return nil }

func (s *SummaryScreen) Title() string { return "Session Summary" }

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	if s.state == stateDone {
		return []layout.KeyHint{{Key: "Any key", Description: "Exit"}}
	}
	return []layout.KeyHint{{Key: "Enter", Description: "Finish & save"}}
}

// Result returns the committed result, or nil before saving finished.
func (s *SummaryScreen) Result() *session.Result { return s.result }

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case FinishedMsg:
		s.state = stateDone
		s.result = msg.Result
		return s, nil

	case tea.KeyPressMsg:
		switch s.state {
		case statePending:
			if key.Matches(msg, components.Keys.Choose) {
				s.state = stateSaving
				return s, s.save()
			}
		case stateDone:
			return s, tea.Quit
		}
	}
	return s, nil
}

func (s *SummaryScreen) save() tea.Cmd {
	ctx, finish, outcomes := s.ctx, s.finish, s.outcomes
	return func() tea.Msg {
		if finish == nil {
			return FinishedMsg{}
		}
		return FinishedMsg{Result: finish(ctx, outcomes)}
	}
}

func (s *SummaryScreen) View(width, height int) string {
	center := func(st lipgloss.Style, text string) string {
		return lipgloss.PlaceHorizontal(width, lipgloss.Center, st.Render(text))
	}

	var b strings.Builder
	heading := "Session complete!"
	if s.early {
		heading = "Session ended early"
	}
	b.WriteString(center(theme.Title, heading))
	b.WriteString("\n\n")

	mins := int(s.summary.Duration.Minutes())
	secs := int(s.summary.Duration.Seconds()) % 60
	b.WriteString(center(theme.Subtitle, fmt.Sprintf("Duration: %d:%02d", mins, secs)))
	b.WriteString("\n\n")

	b.WriteString(center(theme.Correct, fmt.Sprintf("Correct  %d", s.summary.Correct)))
	b.WriteString("\n")
	b.WriteString(center(theme.Incorrect, fmt.Sprintf("Wrong    %d", s.summary.Wrong())))
	b.WriteString("\n")
	b.WriteString(center(theme.Body, fmt.Sprintf("Accuracy %d%%", s.summary.Percent())))
	b.WriteString("\n\n")

	switch s.state {
	case statePending:
		b.WriteString(center(theme.Hint, "Press Enter to finish & save"))
	case stateSaving:
		b.WriteString(center(theme.Hint, "Saving..."))
	case stateDone:
		switch {
		case s.result == nil || s.result.Summary.Served == 0:
			b.WriteString(center(theme.Hint, "Nothing to save"))
		case s.result.Saved():
			b.WriteString(center(theme.Correct, "Progress saved"))
		default:
			b.WriteString(center(theme.Incorrect, "Could not save progress: "+s.result.SaveErr.Error()))
		}
	}
	return layout.Center(b.String(), width, height)
}
