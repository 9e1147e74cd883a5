package llm

import (
	"context"
	"errors"
	"log/slog"
	"math/rand/v2"
	"time"
)

type retrier struct {
	next   Provider
	cfg    RetryConfig
	logger *slog.Logger
	jitter func() float64
}

// Retrying retries Retryable failures with exponential backoff, waiting
// RetryAfter instead when the provider sent one.
func Retrying(p Provider, cfg RetryConfig) Provider {
	cfg.MaxAttempts = max(cfg.MaxAttempts, 1)
	return &retrier{next: p, cfg: cfg, logger: slog.Default(), jitter: rand.Float64}
}

func (r *retrier) Model() string { return r.next.Model() }

// Complete gives a malformed answer only one more chance; a model that
// misreads the schema twice tends to keep misreading it.
func (r *retrier) Complete(ctx context.Context, p Prompt) (*Completion, error) {
	sawMalformed := false
	for attempt := 1; ; attempt++ {
		c, err := r.next.Complete(ctx, p)
		if err == nil {
			return c, nil
		}
		if attempt >= r.cfg.MaxAttempts || !Retryable(err) {
			return nil, err
		}
		if k, _ := KindOf(err); k == Malformed {
			if sawMalformed {
				return nil, err
			}
			sawMalformed = true
		}

		wait := r.delay(attempt, err)
		r.logger.Debug("retrying LLM request", "model", r.next.Model(), "attempt", attempt, "wait", wait, "error", err)
		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}
}

// delay is InitialWait * Multiplier^(attempt-1), capped at MaxWait, with
// 20% jitter either way.
func (r *retrier) delay(attempt int, err error) time.Duration {
	var e *Error
	if errors.As(err, &e) && e.RetryAfter > 0 {
		return e.RetryAfter
	}
	d := float64(r.cfg.InitialWait)
	for range attempt - 1 {
		d *= r.cfg.Multiplier
	}
	d = min(d, float64(r.cfg.MaxWait))
	return time.Duration(d * (0.8 + 0.4*r.jitter()))
}
