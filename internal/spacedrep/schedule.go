package spacedrep

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidStage is returned when a stage index falls outside the ladder.
var ErrInvalidStage = errors.New("spacedrep: invalid stage")

// ErrInvalidLadder is returned by Ladder.Validate for malformed ladders.
var ErrInvalidLadder = errors.New("spacedrep: invalid ladder")

// Ladder maps a memory stage to the interval until the next review.
// Stage 0 is a brand-new word and must have a zero interval.
type Ladder []time.Duration

// DefaultLadder is the expanding review schedule.
//
//	0: immediate (new)   3: 12 hours   6: 4 days
//	1: 5 minutes         4: 1 day      7: 7 days
//	2: 30 minutes        5: 2 days     8: 15 days (mastered)
var DefaultLadder = Ladder{
	0,
	5 * time.Minute,
	30 * time.Minute,
	12 * time.Hour,
	24 * time.Hour,
	2 * 24 * time.Hour,
	4 * 24 * time.Hour,
	7 * 24 * time.Hour,
	15 * 24 * time.Hour,
}

// MaxStage is the highest stage index in DefaultLadder.
const MaxStage = 8

// MasteredStage is the stage above which a word counts as mastered on the dashboard.
const MasteredStage = 6

// MaxStage returns the highest stage index of the ladder.
func (l Ladder) MaxStage() int {
	return len(l) - 1
}

// Interval returns the review interval for the given stage.
func (l Ladder) Interval(stage int) (time.Duration, error) {
	if stage < 0 || stage >= len(l) {
		return 0, fmt.Errorf("%w: %d (ladder has %d stages)", ErrInvalidStage, stage, len(l))
	}
	return l[stage], nil
}

// Validate checks that the ladder starts at zero and never shortens.
func (l Ladder) Validate() error {
	if len(l) == 0 {
		return fmt.Errorf("%w: empty", ErrInvalidLadder)
	}
	if l[0] != 0 {
		return fmt.Errorf("%w: stage 0 interval is %s, want 0", ErrInvalidLadder, l[0])
	}
	for i := 1; i < len(l); i++ {
		if l[i] < l[i-1] {
			return fmt.Errorf("%w: stage %d (%s) shorter than stage %d (%s)",
				ErrInvalidLadder, i, l[i], i-1, l[i-1])
		}
	}
	return nil
}
