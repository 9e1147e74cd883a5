package quiz

import "github.com/abhisek/memoflow/internal/vocab"

// Question is a multiple-choice item: pick the meaning of Word.
type Question struct {
	Word    vocab.Word
	Options []vocab.Word
	Answer  int
}

// NewQuestion builds a question for target with distractors drawn from pool.
func NewQuestion(target vocab.Word, pool []vocab.Word, k int, rng Rand) Question {
	options, answer := Sample(target, pool, k, rng)
	return Question{Word: target, Options: options, Answer: answer}
}

// BuildQuestions creates one question per session word, in order.
func BuildQuestions(words, pool []vocab.Word, k int, rng Rand) []Question {
	questions := make([]Question, len(words))
	for i, w := range words {
		questions[i] = NewQuestion(w, pool, k, rng)
	}
	return questions
}

// IsCorrect reports whether choice selects the target word.
func (q Question) IsCorrect(choice int) bool {
	if choice < 0 || choice >= len(q.Options) {
		return false
	}
	return q.Options[choice].ID == q.Word.ID
}

// Label returns the letter shown for option i ("A", "B", ...).
func Label(i int) string {
	if i < 0 || i >= 26 {
		return "?"
	}
	return string(rune('A' + i))
}
