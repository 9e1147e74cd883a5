package session

import (
	"fmt"

	"github.com/abhisek/memoflow/internal/vocab"
)

// Mode selects how the session presents its words.
type Mode string

const (
	ModeLearn Mode = "learn" // flashcards
	ModeQuiz  Mode = "quiz"  // multiple choice
)

// ParseMode converts a command-line value into a Mode.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeLearn, ModeQuiz:
		return Mode(s), nil
	}
	return "", fmt.Errorf("session: unknown mode %q", s)
}

// Plan is the ordered list of words for one session.
type Plan struct {
	Course vocab.CourseID
	Mode   Mode
	Words  []vocab.Word

	// Pool is the full course word list, used for quiz distractors.
	Pool []vocab.Word

	// DueCount and NewCount describe how Words was filled.
	DueCount int
	NewCount int
}

// Empty reports whether there is nothing to practice right now.
func (p *Plan) Empty() bool {
	return p == nil || len(p.Words) == 0
}
