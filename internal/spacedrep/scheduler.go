package spacedrep

import (
	"fmt"
	"sort"
	"time"
)

// Transition computes the next stage and review time for a review outcome.
//
// A success advances one stage, capped at the ladder's last stage. A failure
// halves the stage but never drops below 1, so a forgotten word is not
// treated as brand new again. Stages above the ladder are clamped first.
// A negative stage is a caller defect and panics.
func Transition(l Ladder, stage int, success bool, now time.Time) (int, time.Time) {
	if stage < 0 {
		panic(fmt.Errorf("%w: %d", ErrInvalidStage, stage))
	}
	maxStage := l.MaxStage()
	if stage > maxStage {
		stage = maxStage
	}

	var next int
	if success {
		next = min(stage+1, maxStage)
	} else {
		next = max(1, stage/2)
	}
	// Ladders shorter than two stages cannot honour the failure floor.
	next = min(next, maxStage)

	return next, now.Add(l[next])
}

// Apply returns rec updated with a single review outcome.
func Apply(l Ladder, rec Record, success bool, now time.Time) Record {
	stage, nextReview := Transition(l, rec.Stage, success, now)
	rec.Stage = stage
	rec.NextReview = nextReview
	rec.LastReviewed = now
	return rec
}

// Classify partitions ids into due and new words, preserving input order.
// Words with a record that is not yet due are left out of both lists.
func Classify(ids []string, progress ProgressMap, now time.Time) (due, fresh []string) {
	due = []string{}
	fresh = []string{}
	for _, id := range ids {
		rec, ok := progress[id]
		switch {
		case !ok:
			fresh = append(fresh, id)
		case rec.IsDue(now):
			due = append(due, id)
		}
	}
	return due, fresh
}

// Scheduler binds a ladder to a clock.
type Scheduler struct {
	ladder Ladder
	now    func() time.Time
}

// NewScheduler creates a scheduler for the given ladder. A nil clock uses time.Now.
func NewScheduler(l Ladder, clock func() time.Time) (*Scheduler, error) {
	if err := l.Validate(); err != nil {
		return nil, err
	}
	if clock == nil {
		clock = time.Now
	}
	return &Scheduler{ladder: l, now: clock}, nil
}

// Now returns the scheduler's current time.
func (s *Scheduler) Now() time.Time {
	return s.now()
}

// Classify partitions ids against progress at the scheduler's current time.
func (s *Scheduler) Classify(ids []string, progress ProgressMap) (due, fresh []string) {
	return Classify(ids, progress, s.now())
}

// ApplyOutcomes returns a new progress map with every outcome applied once.
// The input map is not modified. Repeated outcomes for the same word after
// the first are ignored, and words never seen before start from stage 0.
func (s *Scheduler) ApplyOutcomes(progress ProgressMap, outcomes []Outcome) ProgressMap {
	now := s.now()
	updated := progress.Clone()
	seen := make(map[string]bool, len(outcomes))

	for _, o := range outcomes {
		if o.WordID == "" || seen[o.WordID] {
			continue
		}
		seen[o.WordID] = true

		rec, ok := updated[o.WordID]
		if !ok {
			rec = Record{WordID: o.WordID}
		}
		updated[o.WordID] = Apply(s.ladder, rec, o.Success, now)
	}
	return updated
}

// DueWords returns the IDs of every word in progress that is due at now,
// most overdue first. Ties are broken by ID.
func DueWords(progress ProgressMap, now time.Time) []string {
	type dueWord struct {
		id      string
		overdue time.Duration
	}
	var due []dueWord
	for id, rec := range progress {
		if rec.IsDue(now) {
			due = append(due, dueWord{id: id, overdue: rec.Overdue(now)})
		}
	}

	sort.Slice(due, func(i, j int) bool {
		if due[i].overdue != due[j].overdue {
			return due[i].overdue > due[j].overdue
		}
		return due[i].id < due[j].id
	})

	ids := make([]string, len(due))
	for i, d := range due {
		ids[i] = d.id
	}
	return ids
}
