package session

import (
	"time"

	"github.com/abhisek/memoflow/internal/spacedrep"
)

// Summary holds the data displayed at the end of a session.
type Summary struct {
	Served   int
	Correct  int
	Duration time.Duration
}

// Wrong returns the number of failed reviews.
func (s Summary) Wrong() int { return s.Served - s.Correct }

// Accuracy returns the fraction of correct reviews, or 0 for an empty session.
func (s Summary) Accuracy() float64 {
	if s.Served == 0 {
		return 0
	}
	return float64(s.Correct) / float64(s.Served)
}

// Percent returns Accuracy rounded to a whole percentage.
func (s Summary) Percent() int {
	return int(s.Accuracy()*100 + 0.5)
}

// BuildSummary counts outcomes. Callers pass de-duplicated outcomes.
func BuildSummary(outcomes []spacedrep.Outcome, elapsed time.Duration) Summary {
	s := Summary{Served: len(outcomes), Duration: elapsed}
	for _, o := range outcomes {
		if o.Success {
			s.Correct++
		}
	}
	return s
}
