package app

import (
	"context"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/memoflow/internal/quiz"
	"github.com/abhisek/memoflow/internal/screens/caughtup"
	"github.com/abhisek/memoflow/internal/screens/choice"
	"github.com/abhisek/memoflow/internal/screens/flashcard"
	"github.com/abhisek/memoflow/internal/screens/summary"
	"github.com/abhisek/memoflow/internal/session"
	"github.com/abhisek/memoflow/internal/spacedrep"
	"github.com/abhisek/memoflow/internal/vocab"
)

func testWords() []vocab.Word {
	return []vocab.Word{
		{ID: "s1", Text: "abandon", Meaning: "放弃"},
		{ID: "s2", Text: "benefit", Meaning: "益处"},
		{ID: "s3", Text: "result", Meaning: "结果"},
		{ID: "s4", Text: "vital", Meaning: "至关重要的"},
	}
}

func activeFor(mode session.Mode, words []vocab.Word) *session.Active {
	return &session.Active{
		ID:   "test",
		Plan: &session.Plan{Course: vocab.Senior3500, Mode: mode, Words: words, Pool: testWords()},
	}
}

// drive feeds msg through the model and runs any resulting commands that
// produce screen changes or saves.
func drive(t *testing.T, m AppModel, msg tea.Msg) AppModel {
	t.Helper()
	updated, cmd := m.Update(msg)
	m = updated.(AppModel)
	for cmd != nil {
		next := cmd()
		if _, ok := next.(tea.QuitMsg); ok {
			return m
		}
		updated, cmd = m.Update(next)
		m = updated.(AppModel)
	}
	return m
}

func TestInitialScreen(t *testing.T) {
	ctx := context.Background()

	m := NewAppModel(ctx, Options{Title: "Senior", Active: activeFor(session.ModeLearn, nil)})
	assert.IsType(t, &caughtup.Screen{}, m.router.Active())

	m = NewAppModel(ctx, Options{Title: "Senior", Active: activeFor(session.ModeLearn, testWords()[:2])})
	assert.IsType(t, &flashcard.FlashcardScreen{}, m.router.Active())

	m = NewAppModel(ctx, Options{
		Title:       "Senior",
		Active:      activeFor(session.ModeQuiz, testWords()[:2]),
		Distractors: quiz.DefaultDistractors,
		Rand:        quiz.NewRand(7),
	})
	assert.IsType(t, &choice.QuizScreen{}, m.router.Active())
}

func TestLearnSessionCommitsResult(t *testing.T) {
	var committed []spacedrep.Outcome
	finish := func(_ context.Context, outcomes []spacedrep.Outcome) *session.Result {
		committed = outcomes
		return &session.Result{Summary: session.BuildSummary(outcomes, 0)}
	}
	m := NewAppModel(context.Background(), Options{
		Title:  "Senior",
		Active: activeFor(session.ModeLearn, testWords()[:2]),
		Finish: finish,
	})

	space := tea.KeyPressMsg{Code: tea.KeySpace, Text: " "}
	yes := tea.KeyPressMsg{Code: 'y', Text: "y"}
	no := tea.KeyPressMsg{Code: 'n', Text: "n"}

	m = drive(t, m, space)
	m = drive(t, m, yes)
	m = drive(t, m, space)
	m = drive(t, m, no)
	require.IsType(t, &summary.SummaryScreen{}, m.router.Active())
	assert.Nil(t, m.Result())

	m = drive(t, m, tea.KeyPressMsg{Code: tea.KeyEnter})
	require.NotNil(t, m.Result())
	assert.Equal(t, 1, m.Result().Summary.Correct)
	assert.Len(t, committed, 2)
}

func TestView(t *testing.T) {
	m := NewAppModel(context.Background(), Options{
		Title:  "Senior High 3500",
		Active: activeFor(session.ModeLearn, testWords()[:2]),
	})
	assert.Empty(t, m.render(), "no size yet")
	assert.True(t, m.View().AltScreen)

	m = drive(t, m, tea.WindowSizeMsg{Width: 30, Height: 10})
	assert.Contains(t, m.render(), "Terminal too small")

	m = drive(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
	content := m.render()
	assert.Contains(t, content, "Senior High 3500")
	assert.Contains(t, content, "1 / 2")
	assert.Contains(t, content, "Flip")
	assert.True(t, strings.Contains(content, "abandon"))
}

func TestCtrlCQuitsWithoutSaving(t *testing.T) {
	m := NewAppModel(context.Background(), Options{
		Title:  "Senior",
		Active: activeFor(session.ModeLearn, testWords()[:2]),
	})
	_, cmd := m.Update(tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.Nil(t, m.Result())
}
