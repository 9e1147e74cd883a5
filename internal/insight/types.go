// Package insight asks the configured LLM for study notes on a word and
// caches the answer per word.
package insight

import "time"

// Fixed notices shown instead of generated content.
const (
	NoticeNotConfigured = "AI insights are off. Set MEMOFLOW_LLM_PROVIDER and the matching API key (for example MEMOFLOW_GEMINI_API_KEY) to enable them."
	NoticeUnavailable   = "Sorry, the AI helper could not answer right now. Please try again later."
)

// Insight is the generated study note for one word.
type Insight struct {
	WordID       string
	Word         string
	Mnemonic     string
	Examples     []Example
	Collocations []string
	Nuance       string
	Model        string
	Cached       bool
	CreatedAt    time.Time

	// Notice is set instead of the content fields when nothing could be
	// generated.
	Notice string
}

// Example is a sentence using the word with its translation.
type Example struct {
	En string `json:"en"`
	Zh string `json:"zh"`
}

// Available reports whether the insight carries generated content.
func (i *Insight) Available() bool {
	return i != nil && i.Notice == ""
}

// Config holds insight generation settings.
type Config struct {
	MaxTokens   int
	Temperature float64
	Timeout     time.Duration
}

// DefaultConfig returns the defaults used by the CLI.
func DefaultConfig() Config {
	return Config{
		MaxTokens:   600,
		Temperature: 0.4,
		Timeout:     45 * time.Second,
	}
}
