package components

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/bubbles/v2/key"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/memoflow/internal/quiz"
	"github.com/abhisek/memoflow/internal/ui/theme"
)

// MultiChoice lets the learner pick the meaning of a word.
type MultiChoice struct {
	Question  quiz.Question
	Selected  int
	Submitted bool
	Chosen    int
}

// NewMultiChoice creates a selector for q.
func NewMultiChoice(q quiz.Question) MultiChoice {
	return MultiChoice{Question: q, Chosen: -1}
}

// Update moves the cursor or submits a choice. Keys 1-9 and a-i answer
// directly.
func (m MultiChoice) Update(msg tea.Msg) (MultiChoice, tea.Cmd) {
	if m.Submitted {
		return m, nil
	}
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return m, nil
	}

	n := len(m.Question.Options)
	switch {
	case key.Matches(kmsg, Keys.Up):
		if m.Selected > 0 {
			m.Selected--
		}
	case key.Matches(kmsg, Keys.Down):
		if m.Selected < n-1 {
			m.Selected++
		}
	case key.Matches(kmsg, Keys.Choose):
		m.submit(m.Selected)
	default:
		if i := OptionIndex(kmsg.String(), n); i >= 0 {
			m.Selected = i
			m.submit(i)
		}
	}
	return m, nil
}

func (m *MultiChoice) submit(i int) {
	m.Submitted = true
	m.Chosen = i
}

// IsCorrect reports whether the submitted choice is the answer.
func (m MultiChoice) IsCorrect() bool {
	return m.Submitted && m.Question.IsCorrect(m.Chosen)
}

// View renders the options. After submission the answer is green and a wrong
// choice red.
func (m MultiChoice) View() string {
	var b strings.Builder
	for i, opt := range m.Question.Options {
		prefix := "  "
		if i == m.Selected && !m.Submitted {
			prefix = "▸ "
		}
		line := fmt.Sprintf("%s%s)  %s", prefix, quiz.Label(i), opt.Meaning)

		var style lipgloss.Style
		switch {
		case m.Submitted && i == m.Question.Answer:
			style = theme.Correct
		case m.Submitted && i == m.Chosen:
			style = theme.Incorrect
		case m.Submitted:
			style = theme.Subtitle
		case i == m.Selected:
			style = theme.Selected
		default:
			style = theme.Unselected
		}
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}
	return b.String()
}
