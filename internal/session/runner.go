// Package session plans practice sessions and commits their results.
package session

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/memoflow/internal/spacedrep"
	"github.com/abhisek/memoflow/internal/store"
	"github.com/abhisek/memoflow/internal/vocab"
)

// ProgressStore persists the whole progress map.
type ProgressStore interface {
	LoadProgress(ctx context.Context) (spacedrep.ProgressMap, error)
	SaveProgress(ctx context.Context, progress spacedrep.ProgressMap) error
}

// EventLog records completed sessions.
type EventLog interface {
	AppendSessionEvent(ctx context.Context, data store.SessionEventData) error
}

// Active is a session that has been planned but not yet committed.
type Active struct {
	ID        string
	Plan      *Plan
	Progress  spacedrep.ProgressMap
	StartedAt time.Time
}

// Result is what Finish produced.
type Result struct {
	Progress spacedrep.ProgressMap
	Summary  Summary

	// SaveErr is set when the progress could not be written. The in-memory
	// Progress is still valid so the caller may retry.
	SaveErr error
}

// Saved reports whether the progress write succeeded.
func (r *Result) Saved() bool { return r.SaveErr == nil }

// Runner ties planning, scheduling and persistence together for one session.
type Runner struct {
	store   ProgressStore
	events  EventLog
	planner *Planner
	sched   *spacedrep.Scheduler
	logger  *slog.Logger
}

// NewRunner creates a Runner. events and logger may be nil.
func NewRunner(ps ProgressStore, events EventLog, planner *Planner, sched *spacedrep.Scheduler, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{
		store:   ps,
		events:  events,
		planner: planner,
		sched:   sched,
		logger:  logger,
	}
}

// LoadProgress reads the progress map. Any storage failure yields an empty
// map and a warning; it never fails.
func (r *Runner) LoadProgress(ctx context.Context) spacedrep.ProgressMap {
	progress, err := r.store.LoadProgress(ctx)
	if err != nil {
		r.logger.Warn("progress unavailable, starting from empty", "error", err)
		return spacedrep.ProgressMap{}
	}
	if progress == nil {
		return spacedrep.ProgressMap{}
	}
	return progress
}

// Start loads progress and plans a session for course. Only catalog errors
// are returned.
func (r *Runner) Start(ctx context.Context, course vocab.CourseID, mode Mode) (*Active, error) {
	progress := r.LoadProgress(ctx)
	plan, err := r.planner.BuildPlan(ctx, course, mode, progress)
	if err != nil {
		return nil, err
	}
	return &Active{
		ID:        uuid.NewString(),
		Plan:      plan,
		Progress:  progress,
		StartedAt: r.sched.Now(),
	}, nil
}

// Finish applies outcomes to the session's progress and saves the result
// once. Outcomes for words outside the plan, and repeats of a word, are
// ignored. With no outcomes nothing is written. A session whose progress
// could not be saved is not added to the history.
func (r *Runner) Finish(ctx context.Context, a *Active, outcomes []spacedrep.Outcome) *Result {
	accepted := acceptOutcomes(a.Plan, outcomes)
	elapsed := r.sched.Now().Sub(a.StartedAt)
	res := &Result{
		Progress: a.Progress,
		Summary:  BuildSummary(accepted, elapsed),
	}
	if len(accepted) == 0 {
		return res
	}

	res.Progress = r.sched.ApplyOutcomes(a.Progress, accepted)
	if err := r.store.SaveProgress(ctx, res.Progress); err != nil {
		r.logger.Warn("failed to save progress", "session", a.ID, "error", err)
		res.SaveErr = err
		return res
	}

	if r.events != nil {
		err := r.events.AppendSessionEvent(ctx, store.SessionEventData{
			SessionID:    a.ID,
			Course:       string(a.Plan.Course),
			Mode:         string(a.Plan.Mode),
			Served:       res.Summary.Served,
			Correct:      res.Summary.Correct,
			DurationSecs: int(elapsed.Seconds()),
		})
		if err != nil {
			r.logger.Warn("failed to record session event", "session", a.ID, "error", err)
		}
	}
	return res
}

func acceptOutcomes(plan *Plan, outcomes []spacedrep.Outcome) []spacedrep.Outcome {
	if plan.Empty() {
		return nil
	}
	inPlan := make(map[string]bool, len(plan.Words))
	for _, w := range plan.Words {
		inPlan[w.ID] = true
	}
	accepted := make([]spacedrep.Outcome, 0, len(outcomes))
	for _, o := range outcomes {
		if !inPlan[o.WordID] {
			continue
		}
		inPlan[o.WordID] = false
		accepted = append(accepted, o)
	}
	return accepted
}
