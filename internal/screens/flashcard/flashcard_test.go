package flashcard

import (
	"context"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/memoflow/internal/insight"
	"github.com/abhisek/memoflow/internal/router"
	"github.com/abhisek/memoflow/internal/screens/summary"
	"github.com/abhisek/memoflow/internal/spacedrep"
	"github.com/abhisek/memoflow/internal/vocab"
)

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func testWords() []vocab.Word {
	return []vocab.Word{
		{ID: "s1", Text: "abandon", Meaning: "放弃", Phonetic: "/əˈbændən/", PartOfSpeech: "v.", Example: "Never abandon hope."},
		{ID: "s2", Text: "benefit", Meaning: "益处"},
	}
}

type fakeExplainer struct {
	requested []string
	queue     []*insight.Insight
}

func (f *fakeExplainer) Request(_ context.Context, w vocab.Word) {
	f.requested = append(f.requested, w.ID)
}

func (f *fakeExplainer) Consume() (*insight.Insight, bool) {
	if len(f.queue) == 0 {
		return nil, false
	}
	in := f.queue[0]
	f.queue = f.queue[1:]
	return in, true
}

func summaryFrom(t *testing.T, cmd tea.Cmd) *summary.SummaryScreen {
	t.Helper()
	require.NotNil(t, cmd)
	msg, ok := cmd().(router.ReplaceScreenMsg)
	require.True(t, ok, "expected a ReplaceScreenMsg")
	sum, ok := msg.Screen.(*summary.SummaryScreen)
	require.True(t, ok)
	return sum
}

func TestFlashcard_FlipAndAnswer(t *testing.T) {
	s := New(context.Background(), "Senior High 3500", testWords(), nil, nil)
	assert.Equal(t, "1 / 2", s.Status())

	view := s.View(80, 30)
	assert.Contains(t, view, "abandon")
	assert.NotContains(t, view, "放弃", "meaning hidden before flip")

	s.Update(keyPress('y'))
	assert.Empty(t, s.Outcomes(), "cannot answer before flipping")

	s.Update(tea.KeyPressMsg{Code: tea.KeySpace, Text: " "})
	view = s.View(80, 30)
	assert.Contains(t, view, "v. 放弃")
	assert.Contains(t, view, "Never abandon hope.")

	_, cmd := s.Update(keyPress('y'))
	assert.Nil(t, cmd)
	assert.Equal(t, "2 / 2", s.Status())

	s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	_, cmd = s.Update(tea.KeyPressMsg{Code: tea.KeyLeft})
	sum := summaryFrom(t, cmd)

	assert.Equal(t, []spacedrep.Outcome{
		{WordID: "s1", Success: true},
		{WordID: "s2", Success: false},
	}, s.Outcomes())
	assert.Contains(t, sum.View(80, 24), "Accuracy 50%")
}

func TestFlashcard_QuitEarly(t *testing.T) {
	s := New(context.Background(), "Senior High 3500", testWords(), nil, nil)
	s.Update(keyPress(' '))
	s.Update(keyPress('n'))

	s.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	assert.Contains(t, s.View(80, 24), "1 answered word(s) will be saved")

	s.Update(keyPress('n'))
	assert.NotContains(t, s.View(80, 24), "answered word(s)", "N keeps going")
	assert.Len(t, s.Outcomes(), 1)

	s.Update(keyPress('q'))
	_, cmd := s.Update(keyPress('y'))
	sum := summaryFrom(t, cmd)
	assert.Contains(t, sum.View(80, 24), "Session ended early")
	assert.Len(t, s.Outcomes(), 1, "confirming does not record an answer")
}

func TestFlashcard_Insight(t *testing.T) {
	ex := &fakeExplainer{}
	s := New(context.Background(), "Senior High 3500", testWords(), ex, nil)

	_, cmd := s.Update(keyPress('i'))
	require.NotNil(t, cmd, "poll scheduled")
	assert.Equal(t, []string{"s1"}, ex.requested)
	assert.Contains(t, s.View(80, 30), "Asking the AI helper")

	_, cmd = s.Update(keyPress('i'))
	assert.Nil(t, cmd, "one request at a time")

	_, cmd = s.Update(insightPollMsg{})
	assert.NotNil(t, cmd, "keeps polling until ready")

	ex.queue = append(ex.queue, &insight.Insight{
		WordID:       "s1",
		Mnemonic:     "a band on the run abandons the stage",
		Examples:     []insight.Example{{En: "They abandoned the car.", Zh: "他们弃车而去。"}},
		Collocations: []string{"abandon hope", "abandon a plan"},
		Nuance:       "Stronger than leave.",
	})
	_, cmd = s.Update(insightPollMsg{})
	assert.Nil(t, cmd)

	view := s.View(100, 40)
	assert.Contains(t, view, "a band on the run")
	assert.Contains(t, view, "abandon hope, abandon a plan")
	assert.Contains(t, view, "Stronger than leave.")
}

func TestFlashcard_InsightNotice(t *testing.T) {
	ex := &fakeExplainer{queue: []*insight.Insight{{WordID: "s1", Notice: insight.NoticeNotConfigured}}}
	s := New(context.Background(), "Senior High 3500", testWords(), ex, nil)

	s.Update(keyPress('i'))
	s.Update(insightPollMsg{})
	assert.Contains(t, s.View(200, 40), "AI insights are off")
}

func TestFlashcard_StaleInsightDropped(t *testing.T) {
	ex := &fakeExplainer{}
	s := New(context.Background(), "Senior High 3500", testWords(), ex, nil)

	s.Update(keyPress('i'))
	s.Update(keyPress(' '))
	s.Update(keyPress('y'))

	ex.queue = append(ex.queue, &insight.Insight{WordID: "s1", Mnemonic: "old"})
	s.Update(insightPollMsg{})
	assert.NotContains(t, s.View(100, 40), "old")

	_, cmd := s.Update(keyPress('i'))
	assert.NotNil(t, cmd, "a new request is allowed once the stale one drained")
	assert.Equal(t, []string{"s1", "s2"}, ex.requested)
}

func TestFlashcard_KeyHints(t *testing.T) {
	s := New(context.Background(), "Senior High 3500", testWords(), nil, nil)
	hints := s.KeyHints()
	assert.Equal(t, "Flip", hints[0].Description)
	for _, h := range hints {
		assert.NotEqual(t, "AI insight", h.Description, "no explainer configured")
	}

	s.Update(keyPress(' '))
	assert.Equal(t, "Knew it", s.KeyHints()[0].Description)
}
