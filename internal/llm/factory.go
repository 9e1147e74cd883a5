package llm

import (
	"context"
	"fmt"
	"time"
)

// NewProvider builds the configured provider. Calls pass through a deadline,
// then retries, then request recording (skipped when sink is nil) before
// reaching the vendor adapter, so every attempt is recorded and the deadline
// covers all of them.
func NewProvider(ctx context.Context, cfg Config, sink EventSink) (Provider, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var (
		p   Provider
		err error
	)
	switch cfg.Provider {
	case ProviderAnthropic:
		p, err = NewAnthropic(cfg.Anthropic)
	case ProviderOpenAI:
		p, err = NewOpenAI(cfg.OpenAI)
	case ProviderOpenRouter:
		p, err = NewOpenRouter(cfg.OpenRouter)
	case ProviderGemini:
		p, err = NewGemini(ctx, cfg.Gemini)
	case ProviderMock:
		p = NewFake()
	}
	if err != nil {
		return nil, fmt.Errorf("%s provider: %w", cfg.Provider, err)
	}

	if sink != nil {
		p = Recording(p, cfg.Provider, sink)
	}
	p = Retrying(p, cfg.Retry)
	if cfg.Timeout > 0 {
		p = Bounded(p, cfg.Timeout)
	}
	return p, nil
}

type bounded struct {
	next Provider
	d    time.Duration
}

// Bounded gives every Complete call, retries included, a deadline of d.
func Bounded(p Provider, d time.Duration) Provider {
	return &bounded{next: p, d: d}
}

func (b *bounded) Model() string { return b.next.Model() }

func (b *bounded) Complete(ctx context.Context, p Prompt) (*Completion, error) {
	ctx, cancel := context.WithTimeout(ctx, b.d)
	defer cancel()
	return b.next.Complete(ctx, p)
}
