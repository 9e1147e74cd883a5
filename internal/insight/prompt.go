package insight

import (
	"fmt"
	"strings"

	"github.com/abhisek/memoflow/internal/vocab"
)

const systemPrompt = `You are an English vocabulary coach for Chinese-speaking secondary school students. Answers are short, concrete and accurate.`

// describe is the single input turn sent for w.
func describe(w vocab.Word) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Word: %s\n", w.Text)
	fmt.Fprintf(&b, "Meaning: %s\n", w.Meaning)
	if w.PartOfSpeech != "" {
		fmt.Fprintf(&b, "Part of speech: %s\n", w.PartOfSpeech)
	}
	if w.Phonetic != "" {
		fmt.Fprintf(&b, "Phonetic: %s\n", w.Phonetic)
	}
	if w.Example != "" {
		fmt.Fprintf(&b, "Textbook example: %s\n", w.Example)
	}

	b.WriteString(`
Instructions:
1. Give one mnemonic that links the spelling or sound to the meaning.
2. Write two example sentences a teenager would meet, each with a Chinese translation. Do not reuse the textbook example.
3. List two common collocations.
4. Explain in one or two sentences how the word differs from a near-synonym, or a common mistake learners make with it.
Use plain text without markdown.`)

	return b.String()
}
