package session

import (
	"context"
	"fmt"

	"github.com/abhisek/memoflow/internal/spacedrep"
	"github.com/abhisek/memoflow/internal/vocab"
)

// WordSource supplies the word pool of a course. *vocab.Catalog implements it.
type WordSource interface {
	WordsForCourse(ctx context.Context, course vocab.CourseID) ([]vocab.Word, error)
}

// Planner builds a session plan from the course pool and the learner's progress.
type Planner struct {
	words WordSource
	sched *spacedrep.Scheduler
	limit int
}

// NewPlanner creates a Planner. A limit of zero selects DefaultCap.
func NewPlanner(words WordSource, sched *spacedrep.Scheduler, limit int) (*Planner, error) {
	if limit == 0 {
		limit = DefaultCap
	}
	if limit < 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidCap, limit)
	}
	return &Planner{words: words, sched: sched, limit: limit}, nil
}

// Cap returns the maximum session size.
func (p *Planner) Cap() int { return p.limit }

// BuildPlan classifies the course pool against progress and composes the
// capped session. An empty plan is not an error.
func (p *Planner) BuildPlan(ctx context.Context, course vocab.CourseID, mode Mode, progress spacedrep.ProgressMap) (*Plan, error) {
	pool, err := p.words.WordsForCourse(ctx, course)
	if err != nil {
		return nil, fmt.Errorf("load course %s: %w", course, err)
	}

	due, fresh := p.sched.Classify(vocab.IDs(pool), progress)
	ids, err := Compose(due, fresh, p.limit)
	if err != nil {
		return nil, err
	}

	byID := vocab.Index(pool)
	words := make([]vocab.Word, 0, len(ids))
	for _, id := range ids {
		words = append(words, byID[id])
	}

	return &Plan{
		Course:   course,
		Mode:     mode,
		Words:    words,
		Pool:     pool,
		DueCount: min(len(due), len(ids)),
		NewCount: max(0, len(ids)-len(due)),
	}, nil
}
