// Package flashcard implements learn mode: flip a card, then say whether the
// meaning was known.
package flashcard

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/bubbles/v2/key"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/memoflow/internal/insight"
	"github.com/abhisek/memoflow/internal/router"
	"github.com/abhisek/memoflow/internal/screen"
	"github.com/abhisek/memoflow/internal/screens/summary"
	"github.com/abhisek/memoflow/internal/spacedrep"
	"github.com/abhisek/memoflow/internal/ui/components"
	"github.com/abhisek/memoflow/internal/ui/layout"
	"github.com/abhisek/memoflow/internal/ui/theme"
	"github.com/abhisek/memoflow/internal/vocab"
)

const insightPollInterval = 150 * time.Millisecond

// Explainer produces AI insights in the background. *insight.Service
// implements it.
type Explainer interface {
	Request(ctx context.Context, w vocab.Word)
	Consume() (*insight.Insight, bool)
}

type insightPollMsg struct{}

// FlashcardScreen walks through the session words one card at a time.
type FlashcardScreen struct {
	ctx       context.Context
	title     string
	words     []vocab.Word
	explainer Explainer
	finish    summary.Finisher
	now       func() time.Time
	started   time.Time

	index      int
	flipped    bool
	confirming bool
	outcomes   []spacedrep.Outcome

	waiting string // word ID of an outstanding insight request
	insight *insight.Insight
}

var _ screen.Screen = (*FlashcardScreen)(nil)
var _ screen.KeyHintProvider = (*FlashcardScreen)(nil)
var _ screen.StatusProvider = (*FlashcardScreen)(nil)

// New creates a learn session over words. explainer may be nil to hide AI
// insights.
func New(ctx context.Context, title string, words []vocab.Word, explainer Explainer, finish summary.Finisher) *FlashcardScreen {
	return &FlashcardScreen{
		ctx:       ctx,
		title:     title,
		words:     words,
		explainer: explainer,
		finish:    finish,
		now:       time.Now,
		started:   time.Now(),
	}
}

func (s *FlashcardScreen) Init() tea.Cmd { return nil }

func (s *FlashcardScreen) Title() string { return s.title }

func (s *FlashcardScreen) Status() string {
	return fmt.Sprintf("%d / %d", min(s.index+1, len(s.words)), len(s.words))
}

// Outcomes returns the answers recorded so far.
func (s *FlashcardScreen) Outcomes() []spacedrep.Outcome { return s.outcomes }

func (s *FlashcardScreen) KeyHints() []layout.KeyHint {
	if s.confirming {
		return []layout.KeyHint{
			{Key: "Y", Description: "Finish & save"},
			{Key: "N", Description: "Keep going"},
		}
	}
	var hints []layout.KeyHint
	if s.flipped {
		hints = append(hints, hint(components.Keys.Knew), hint(components.Keys.Forgot))
	} else {
		hints = append(hints, hint(components.Keys.Flip))
	}
	if s.explainer != nil {
		hints = append(hints, hint(components.Keys.Insight))
	}
	return append(hints, hint(components.Keys.Quit))
}

func hint(b key.Binding) layout.KeyHint {
	h := b.Help()
	return layout.KeyHint{Key: h.Key, Description: h.Desc}
}

func (s *FlashcardScreen) current() vocab.Word {
	return s.words[s.index]
}

func (s *FlashcardScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case insightPollMsg:
		return s, s.pollInsight()
	case tea.KeyPressMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

func (s *FlashcardScreen) handleKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	if len(s.words) == 0 {
		return s, nil
	}
	if s.confirming {
		switch {
		case key.Matches(msg, components.Keys.Yes):
			return s, s.end(true)
		case key.Matches(msg, components.Keys.No):
			s.confirming = false
		}
		return s, nil
	}

	switch {
	case key.Matches(msg, components.Keys.Quit):
		s.confirming = true
	case key.Matches(msg, components.Keys.Insight):
		return s, s.requestInsight()
	case !s.flipped && key.Matches(msg, components.Keys.Flip):
		s.flipped = true
	case s.flipped && key.Matches(msg, components.Keys.Knew):
		return s, s.answer(true)
	case s.flipped && key.Matches(msg, components.Keys.Forgot):
		return s, s.answer(false)
	}
	return s, nil
}

func (s *FlashcardScreen) answer(knew bool) tea.Cmd {
	s.outcomes = append(s.outcomes, spacedrep.Outcome{WordID: s.current().ID, Success: knew})
	if s.index+1 >= len(s.words) {
		return s.end(false)
	}
	s.index++
	s.flipped = false
	s.insight = nil
	return nil
}

func (s *FlashcardScreen) end(early bool) tea.Cmd {
	next := summary.New(s.ctx, s.outcomes, s.now().Sub(s.started), early, s.finish)
	return func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
}

func (s *FlashcardScreen) requestInsight() tea.Cmd {
	if s.explainer == nil || s.waiting != "" || s.insight != nil {
		return nil
	}
	w := s.current()
	s.waiting = w.ID
	s.explainer.Request(s.ctx, w)
	return pollInsight()
}

func (s *FlashcardScreen) pollInsight() tea.Cmd {
	if s.waiting == "" {
		return nil
	}
	in, ok := s.explainer.Consume()
	if !ok {
		return pollInsight()
	}
	s.waiting = ""
	if in.WordID == s.current().ID {
		s.insight = in
	}
	return nil
}

func pollInsight() tea.Cmd {
	return tea.Tick(insightPollInterval, func(time.Time) tea.Msg { return insightPollMsg{} })
}

func (s *FlashcardScreen) View(width, height int) string {
	if len(s.words) == 0 {
		return ""
	}
	if s.confirming {
		return layout.Center(theme.Body.Render(components.ConfirmQuit(len(s.outcomes))), width, height)
	}

	cardWidth := min(width-8, 64)
	var b strings.Builder
	b.WriteString(components.ProgressBar{Done: s.index, Total: len(s.words), Width: cardWidth}.View())
	b.WriteString("\n\n")
	b.WriteString(theme.Card.Width(cardWidth).Render(s.cardContent()))

	switch {
	case s.insight != nil:
		b.WriteString("\n\n")
		b.WriteString(lipgloss.NewStyle().Width(cardWidth).Render(renderInsight(s.insight)))
	case s.waiting == s.current().ID:
		b.WriteString("\n\n")
		b.WriteString(theme.Hint.Render("Asking the AI helper..."))
	}
	return layout.Center(b.String(), width, height)
}

func (s *FlashcardScreen) cardContent() string {
	w := s.current()
	var b strings.Builder
	b.WriteString(theme.Headword.Render(w.Text))
	if w.Phonetic != "" {
		b.WriteString("  " + theme.Subtitle.Render(w.Phonetic))
	}
	b.WriteString("\n\n")

	if !s.flipped {
		b.WriteString(theme.Hint.Render("Do you know this word? Press Space to flip."))
		return b.String()
	}

	meaning := w.Meaning
	if w.PartOfSpeech != "" {
		meaning = w.PartOfSpeech + " " + meaning
	}
	b.WriteString(theme.Meaning.Render(meaning))
	if w.Example != "" {
		b.WriteString("\n\n")
		b.WriteString(theme.Body.Render(w.Example))
	}
	return b.String()
}

func renderInsight(in *insight.Insight) string {
	if !in.Available() {
		return theme.Hint.Render(in.Notice)
	}
	var b strings.Builder
	b.WriteString(theme.Subtitle.Render("Mnemonic  ") + theme.Body.Render(in.Mnemonic))
	for _, ex := range in.Examples {
		b.WriteString("\n" + theme.Body.Render("• "+ex.En) + "\n  " + theme.Subtitle.Render(ex.Zh))
	}
	if len(in.Collocations) > 0 {
		b.WriteString("\n" + theme.Subtitle.Render("Collocations  ") + theme.Body.Render(strings.Join(in.Collocations, ", ")))
	}
	if in.Nuance != "" {
		b.WriteString("\n" + theme.Subtitle.Render("Nuance  ") + theme.Body.Render(in.Nuance))
	}
	return b.String()
}
