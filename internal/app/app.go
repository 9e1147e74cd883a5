// Package app runs the practice TUI for one planned session.
package app

import (
	"context"
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/memoflow/internal/quiz"
	"github.com/abhisek/memoflow/internal/router"
	"github.com/abhisek/memoflow/internal/screen"
	"github.com/abhisek/memoflow/internal/screens/caughtup"
	"github.com/abhisek/memoflow/internal/screens/choice"
	"github.com/abhisek/memoflow/internal/screens/flashcard"
	"github.com/abhisek/memoflow/internal/screens/summary"
	"github.com/abhisek/memoflow/internal/session"
	"github.com/abhisek/memoflow/internal/ui/layout"
)

// Options describes the session to present.
type Options struct {
	Title  string
	Active *session.Active
	Finish summary.Finisher

	// Explainer enables AI insights in learn mode. Leave nil to hide them.
	Explainer flashcard.Explainer

	Distractors int
	Rand        quiz.Rand
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	width  int
	height int
	result *session.Result
}

// NewAppModel picks the first screen for the planned session.
func NewAppModel(ctx context.Context, opts Options) AppModel {
	return AppModel{router: router.New(initialScreen(ctx, opts))}
}

func initialScreen(ctx context.Context, opts Options) screen.Screen {
	plan := opts.Active.Plan
	if plan.Empty() {
		return caughtup.New(opts.Title)
	}
	if plan.Mode == session.ModeQuiz {
		rng := opts.Rand
		if rng == nil {
			rng = quiz.NewTimeSeededRand()
		}
		questions := quiz.BuildQuestions(plan.Words, plan.Pool, opts.Distractors, rng)
		return choice.New(ctx, opts.Title, questions, opts.Finish)
	}
	return flashcard.New(ctx, opts.Title, plan.Words, opts.Explainer, opts.Finish)
}

// Result returns the committed session result, or nil if the program ended
// before the session was saved.
func (m AppModel) Result() *session.Result { return m.result }

func (m AppModel) Init() tea.Cmd {
	return m.router.Active().Init()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyPressMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

	case summary.FinishedMsg:
		m.result = msg.Result
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView(m.render())
	v.AltScreen = true
	return v
}

func (m AppModel) render() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	active := m.router.Active()
	var status string
	if sp, ok := active.(screen.StatusProvider); ok {
		status = sp.Status()
	}
	header := layout.RenderHeader(active.Title(), status, m.width)

	hints := []layout.KeyHint{{Key: "Ctrl+C", Description: "Quit"}}
	if hp, ok := active.(screen.KeyHintProvider); ok {
		hints = hp.KeyHints()
	}
	footer := layout.RenderFooter(hints, m.width)

	contentHeight := max(m.height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	content := m.router.View(m.width, contentHeight)
	return layout.RenderFrame(header, content, footer, m.width, m.height)
}

// Run presents the session until the learner exits. The returned result is
// nil when nothing was committed.
func Run(ctx context.Context, opts Options) (*session.Result, error) {
	p := tea.NewProgram(NewAppModel(ctx, opts), tea.WithContext(ctx))
	final, err := p.Run()
	if err != nil {
		return nil, fmt.Errorf("run practice session: %w", err)
	}
	if m, ok := final.(AppModel); ok {
		return m.result, nil
	}
	return nil, nil
}
