// Package choice implements quiz mode: pick the meaning of a word from
// lettered options.
package choice

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/bubbles/v2/key"

	"github.com/abhisek/memoflow/internal/quiz"
	"github.com/abhisek/memoflow/internal/router"
	"github.com/abhisek/memoflow/internal/screen"
	"github.com/abhisek/memoflow/internal/screens/summary"
	"github.com/abhisek/memoflow/internal/spacedrep"
	"github.com/abhisek/memoflow/internal/ui/components"
	"github.com/abhisek/memoflow/internal/ui/layout"
	"github.com/abhisek/memoflow/internal/ui/theme"
)

// QuizScreen asks one question at a time and shows feedback after each.
type QuizScreen struct {
	ctx       context.Context
	title     string
	questions []quiz.Question
	finish    summary.Finisher
	now       func() time.Time
	started   time.Time

	index      int
	choice     components.MultiChoice
	confirming bool
	outcomes   []spacedrep.Outcome
}

var _ screen.Screen = (*QuizScreen)(nil)
var _ screen.KeyHintProvider = (*QuizScreen)(nil)
var _ screen.StatusProvider = (*QuizScreen)(nil)

// New creates a quiz over questions.
func New(ctx context.Context, title string, questions []quiz.Question, finish summary.Finisher) *QuizScreen {
	s := &QuizScreen{
		ctx:       ctx,
		title:     title,
		questions: questions,
		finish:    finish,
		now:       time.Now,
		started:   time.Now(),
	}
	if len(questions) > 0 {
		s.choice = components.NewMultiChoice(questions[0])
	}
	return s
}

func (s *QuizScreen) Init() tea.Cmd { return nil }

func (s *QuizScreen) Title() string { return s.title }

func (s *QuizScreen) Status() string {
	return fmt.Sprintf("%d / %d", min(s.index+1, len(s.questions)), len(s.questions))
}

// Outcomes returns the answers recorded so far.
func (s *QuizScreen) Outcomes() []spacedrep.Outcome { return s.outcomes }

func (s *QuizScreen) KeyHints() []layout.KeyHint {
	switch {
	case s.confirming:
		return []layout.KeyHint{
			{Key: "Y", Description: "Finish & save"},
			{Key: "N", Description: "Keep going"},
		}
	case s.choice.Submitted:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Next"},
			{Key: "Esc", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "A-D", Description: "Answer"},
		{Key: "Enter", Description: "Select"},
		{Key: "Esc", Description: "Quit"},
	}
}

func (s *QuizScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok || len(s.questions) == 0 {
		return s, nil
	}

	if s.confirming {
		switch {
		case key.Matches(kmsg, components.Keys.Yes):
			return s, s.end(true)
		case key.Matches(kmsg, components.Keys.No):
			s.confirming = false
		}
		return s, nil
	}

	if key.Matches(kmsg, components.Keys.Quit) {
		s.confirming = true
		return s, nil
	}

	if s.choice.Submitted {
		if key.Matches(kmsg, components.Keys.Flip) {
			return s, s.next()
		}
		return s, nil
	}

	s.choice, _ = s.choice.Update(kmsg)
	if s.choice.Submitted {
		s.outcomes = append(s.outcomes, spacedrep.Outcome{
			WordID:  s.choice.Question.Word.ID,
			Success: s.choice.IsCorrect(),
		})
	}
	return s, nil
}

func (s *QuizScreen) next() tea.Cmd {
	if s.index+1 >= len(s.questions) {
		return s.end(false)
	}
	s.index++
	s.choice = components.NewMultiChoice(s.questions[s.index])
	return nil
}

func (s *QuizScreen) end(early bool) tea.Cmd {
	next := summary.New(s.ctx, s.outcomes, s.now().Sub(s.started), early, s.finish)
	return func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
}

func (s *QuizScreen) View(width, height int) string {
	if len(s.questions) == 0 {
		return ""
	}
	if s.confirming {
		return layout.Center(theme.Body.Render(components.ConfirmQuit(len(s.outcomes))), width, height)
	}

	q := s.choice.Question
	cardWidth := min(width-8, 64)

	var b strings.Builder
	b.WriteString(components.ProgressBar{Done: s.index, Total: len(s.questions), Width: cardWidth}.View())
	b.WriteString("\n\n")

	head := theme.Headword.Render(q.Word.Text)
	if q.Word.Phonetic != "" {
		head += "  " + theme.Subtitle.Render(q.Word.Phonetic)
	}
	b.WriteString(head)
	b.WriteString("\n\n")
	b.WriteString(s.choice.View())

	if s.choice.Submitted {
		b.WriteString("\n")
		if s.choice.IsCorrect() {
			b.WriteString(theme.Correct.Render("Correct!"))
		} else {
			answer := q.Options[q.Answer]
			b.WriteString(theme.Incorrect.Render(fmt.Sprintf("Not quite. The answer is %s) %s",
				quiz.Label(q.Answer), answer.Meaning)))
		}
		b.WriteString("\n")
		b.WriteString(theme.Hint.Render("Press Enter to continue"))
	}
	return layout.Center(b.String(), width, height)
}
