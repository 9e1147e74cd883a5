package llm

import (
	"context"
	"encoding/json"
	"errors"
)

// Provider answers a single structured prompt with JSON that matches the
// prompt's schema. Adapters exist for Anthropic, OpenAI (and compatible
// gateways such as OpenRouter) and Gemini; decorators add retries, deadlines
// and request logging.
type Provider interface {
	Complete(ctx context.Context, p Prompt) (*Completion, error)
	Model() string
}

// Prompt is one single-turn request. memoflow never holds a conversation with
// the model: every insight is an instruction block, one input text and the
// shape of the expected answer.
type Prompt struct {
	Instructions string
	Input        string
	Schema       *Schema

	MaxTokens   int
	Temperature float64
}

var errNoSchema = errors.New("llm: prompt has no schema")

func (p Prompt) check() error {
	if p.Schema == nil {
		return errNoSchema
	}
	return nil
}

// Completion is an answer that already passed schema validation.
type Completion struct {
	JSON   json.RawMessage
	Model  string
	Tokens Tokens
}

// Tokens counts what a request consumed.
type Tokens struct {
	In  int
	Out int
}

func (t Tokens) Total() int { return t.In + t.Out }
