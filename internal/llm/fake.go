package llm

import (
	"context"
	"encoding/json"
	"slices"
	"sync"
)

// Reply is one scripted answer of a Fake.
type Reply struct {
	JSON   json.RawMessage
	Tokens Tokens
	Err    error
}

// Fake answers from a script, one Reply per call, and keeps every prompt it
// receives. Replies are returned as written, without schema validation. Once
// the script runs out every call fails as Unavailable, which is all the "mock"
// provider setting ever does.
type Fake struct {
	mu      sync.Mutex
	script  []Reply
	prompts []Prompt
}

func NewFake(script ...Reply) *Fake {
	return &Fake{script: script}
}

func (f *Fake) Model() string { return "mock" }

func (f *Fake) Complete(_ context.Context, p Prompt) (*Completion, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.prompts = append(f.prompts, p)
	if len(f.script) == 0 {
		return nil, &Error{Kind: Unavailable}
	}
	next := f.script[0]
	f.script = f.script[1:]
	if next.Err != nil {
		return nil, next.Err
	}
	return &Completion{JSON: next.JSON, Model: "mock", Tokens: next.Tokens}, nil
}

// Prompts returns the prompts received so far.
func (f *Fake) Prompts() []Prompt {
	f.mu.Lock()
	defer f.mu.Unlock()
	return slices.Clone(f.prompts)
}

func (f *Fake) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.prompts)
}
