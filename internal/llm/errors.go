package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"
)

// Kind classifies a provider failure.
type Kind int

const (
	// Unavailable covers outages, network errors and anything unclassified.
	Unavailable Kind = iota
	RateLimited
	// Malformed means the answer was not JSON or did not match the schema.
	Malformed
	// Truncated means generation stopped at MaxTokens.
	Truncated
)

func (k Kind) String() string {
	switch k {
	case RateLimited:
		return "rate limited"
	case Malformed:
		return "malformed answer"
	case Truncated:
		return "truncated answer"
	default:
		return "provider unavailable"
	}
}

// Error is the error type returned by every adapter.
type Error struct {
	Kind       Kind
	RetryAfter time.Duration
	// Body is the raw answer for Malformed and Truncated failures.
	Body json.RawMessage
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return "llm: " + e.Kind.String()
	}
	return fmt.Sprintf("llm: %s: %v", e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// KindOf reports the Kind of err when it wraps an *Error.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if !errors.As(err, &e) {
		return 0, false
	}
	return e.Kind, true
}

// fromStatus classifies an SDK error carrying an HTTP status code. h may be
// nil when the SDK does not expose response headers.
func fromStatus(status int, h http.Header, err error) *Error {
	if status != http.StatusTooManyRequests {
		return &Error{Kind: Unavailable, Err: err}
	}
	e := &Error{Kind: RateLimited, Err: err}
	if secs, perr := strconv.Atoi(h.Get("Retry-After")); perr == nil && secs > 0 {
		e.RetryAfter = time.Duration(secs) * time.Second
	}
	return e
}

func malformed(body json.RawMessage, format string, args ...any) *Error {
	return &Error{Kind: Malformed, Body: body, Err: fmt.Errorf(format, args...)}
}

// Retryable reports whether another attempt could succeed. Cancellation,
// deadlines and truncated answers are final.
func Retryable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	k, _ := KindOf(err)
	return k != Truncated
}
