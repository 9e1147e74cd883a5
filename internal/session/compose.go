package session

import (
	"errors"
	"fmt"
)

// DefaultCap is the standard maximum number of words served per session.
const DefaultCap = 15

// ErrInvalidCap is returned when a session cap is zero or negative.
var ErrInvalidCap = errors.New("session: cap must be positive")

// Compose builds the session list: all due words first, then new words,
// truncated to limit. Order within each input is kept.
func Compose(due, fresh []string, limit int) ([]string, error) {
	if limit <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidCap, limit)
	}

	total := min(len(due)+len(fresh), limit)
	out := make([]string, 0, total)
	for _, id := range due {
		if len(out) == total {
			return out, nil
		}
		out = append(out, id)
	}
	for _, id := range fresh {
		if len(out) == total {
			break
		}
		out = append(out, id)
	}
	return out, nil
}
