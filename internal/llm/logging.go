package llm

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/abhisek/memoflow/internal/store"
)

// EventSink stores one event per request. store.EventRepo implements it.
type EventSink interface {
	AppendLLMRequest(ctx context.Context, data store.LLMRequestEventData) error
}

type recorder struct {
	next   Provider
	name   string
	sink   EventSink
	logger *slog.Logger
	now    func() time.Time
}

// Recording stores every request made through p in sink, labelled with the
// provider name. `memoflow llm` reads these events back.
func Recording(p Provider, name string, sink EventSink) Provider {
	return &recorder{next: p, name: name, sink: sink, logger: slog.Default(), now: time.Now}
}

func (r *recorder) Model() string { return r.next.Model() }

func (r *recorder) Complete(ctx context.Context, p Prompt) (*Completion, error) {
	start := r.now()
	c, err := r.next.Complete(ctx, p)

	ev := store.LLMRequestEventData{
		Provider:    r.name,
		Model:       r.next.Model(),
		Purpose:     PurposeFrom(ctx),
		LatencyMs:   r.now().Sub(start).Milliseconds(),
		Success:     err == nil,
		RequestBody: transcript(p),
	}
	if err != nil {
		ev.ErrorMessage = err.Error()
		// Keep what the model said when it broke the schema or ran out of tokens.
		var e *Error
		if errors.As(err, &e) {
			ev.ResponseBody = string(e.Body)
		}
		r.logger.Warn("LLM request failed", "provider", r.name, "purpose", ev.Purpose, "error", err)
	} else {
		ev.Model = c.Model
		ev.InputTokens = c.Tokens.In
		ev.OutputTokens = c.Tokens.Out
		ev.ResponseBody = string(c.JSON)
	}

	if serr := r.sink.AppendLLMRequest(context.WithoutCancel(ctx), ev); serr != nil {
		r.logger.Warn("failed to record LLM request", "error", serr)
	}
	return c, err
}

// transcript renders a prompt for `memoflow llm view`.
func transcript(p Prompt) string {
	var b strings.Builder
	if p.Instructions != "" {
		fmt.Fprintf(&b, "[instructions]\n%s\n\n", p.Instructions)
	}
	fmt.Fprintf(&b, "[input]\n%s\n", p.Input)
	if p.Schema != nil {
		if def, err := p.Schema.JSON(); err == nil {
			fmt.Fprintf(&b, "\n[schema %s]\n%s\n", p.Schema.Name, def)
		}
	}
	return b.String()
}
