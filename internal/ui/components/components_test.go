package components

import (
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"

	"github.com/abhisek/memoflow/internal/quiz"
	"github.com/abhisek/memoflow/internal/vocab"
)

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func testQuestion() quiz.Question {
	return quiz.Question{
		Word: vocab.Word{ID: "s1", Text: "abandon", Meaning: "放弃"},
		Options: []vocab.Word{
			{ID: "s2", Meaning: "益处"},
			{ID: "s1", Meaning: "放弃"},
			{ID: "s3", Meaning: "后果"},
		},
		Answer: 1,
	}
}

func TestMultiChoice_Navigate(t *testing.T) {
	m := NewMultiChoice(testQuestion())

	m, _ = m.Update(specialKey(tea.KeyUp))
	assert.Equal(t, 0, m.Selected, "cursor stays at the top")

	m, _ = m.Update(specialKey(tea.KeyDown))
	m, _ = m.Update(keyPress('j'))
	m, _ = m.Update(specialKey(tea.KeyDown))
	assert.Equal(t, 2, m.Selected, "cursor stops at the last option")

	m, _ = m.Update(keyPress('k'))
	m, _ = m.Update(specialKey(tea.KeyEnter))
	assert.True(t, m.Submitted)
	assert.Equal(t, 1, m.Chosen)
	assert.True(t, m.IsCorrect())

	m, _ = m.Update(specialKey(tea.KeyUp))
	assert.Equal(t, 1, m.Selected, "input ignored after submission")
}

func TestMultiChoice_DirectKeys(t *testing.T) {
	tests := []struct {
		key     rune
		chosen  int
		correct bool
	}{
		{'1', 0, false},
		{'2', 1, true},
		{'c', 2, false},
		{'b', 1, true},
	}
	for _, tt := range tests {
		m := NewMultiChoice(testQuestion())
		m, _ = m.Update(keyPress(tt.key))
		assert.True(t, m.Submitted, string(tt.key))
		assert.Equal(t, tt.chosen, m.Chosen, string(tt.key))
		assert.Equal(t, tt.correct, m.IsCorrect(), string(tt.key))
	}

	m := NewMultiChoice(testQuestion())
	m, _ = m.Update(keyPress('4'))
	assert.False(t, m.Submitted, "no fourth option")
}

func TestMultiChoice_View(t *testing.T) {
	m := NewMultiChoice(testQuestion())
	v := m.View()
	assert.Contains(t, v, "A)  益处")
	assert.Contains(t, v, "B)  放弃")
	assert.Contains(t, v, "C)  后果")
}

func TestOptionIndex(t *testing.T) {
	assert.Equal(t, 0, OptionIndex("1", 4))
	assert.Equal(t, 3, OptionIndex("d", 4))
	assert.Equal(t, -1, OptionIndex("e", 4))
	assert.Equal(t, -1, OptionIndex("enter", 4))
	assert.Equal(t, -1, OptionIndex("0", 4))
}

func TestProgressBar(t *testing.T) {
	assert.Zero(t, ProgressBar{}.Percent())
	assert.InDelta(t, 0.5, ProgressBar{Done: 3, Total: 6}.Percent(), 1e-9)
	assert.Equal(t, 1.0, ProgressBar{Done: 9, Total: 6}.Percent())
	assert.Contains(t, ProgressBar{Done: 3, Total: 6, Width: 30}.View(), "3/6")
}
