// Package reminder periodically checks the progress map and reports how many
// words are due in each course.
package reminder

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/abhisek/memoflow/internal/spacedrep"
	"github.com/abhisek/memoflow/internal/stats"
	"github.com/abhisek/memoflow/internal/vocab"
)

// ErrInvalidInterval is returned for intervals that are not positive.
var ErrInvalidInterval = errors.New("reminder: interval must be positive")

// ProgressLoader reads the current progress map.
type ProgressLoader interface {
	LoadProgress(ctx context.Context) (spacedrep.ProgressMap, error)
}

// Notifier receives the result of every check.
type Notifier interface {
	Notify(ctx context.Context, r Report) error
}

// CourseDue is the due count of one course.
type CourseDue struct {
	Course vocab.CourseID
	Title  string
	Due    int
}

// Report is the outcome of one check.
type Report struct {
	At      time.Time
	Courses []CourseDue
	// MostOverdue holds the text of the longest-waiting due words.
	MostOverdue []string
}

// Total returns the number of due words across courses.
func (r Report) Total() int {
	n := 0
	for _, c := range r.Courses {
		n += c.Due
	}
	return n
}

// Watcher runs checks on a gocron schedule.
type Watcher struct {
	progress ProgressLoader
	words    stats.WordSource
	notifier Notifier
	interval time.Duration
	logger   *slog.Logger
	now      func() time.Time

	sched *gocron.Scheduler
}

// New creates a Watcher. A nil notifier logs reports through logger.
func New(progress ProgressLoader, words stats.WordSource, notifier Notifier, interval time.Duration, logger *slog.Logger) (*Watcher, error) {
	if interval <= 0 {
		return nil, fmt.Errorf("%w: got %s", ErrInvalidInterval, interval)
	}
	if logger == nil {
		logger = slog.Default()
	}
	if notifier == nil {
		notifier = LogNotifier{Logger: logger}
	}
	return &Watcher{
		progress: progress,
		words:    words,
		notifier: notifier,
		interval: interval,
		logger:   logger,
		now:      time.Now,
	}, nil
}

// Check classifies every course once and passes the report to the notifier.
func (w *Watcher) Check(ctx context.Context) (Report, error) {
	progress, err := w.progress.LoadProgress(ctx)
	if err != nil {
		return Report{}, fmt.Errorf("load progress: %w", err)
	}
	d, err := stats.Compute(ctx, w.words, nil, progress, w.now())
	if err != nil {
		return Report{}, err
	}

	r := Report{At: d.GeneratedAt}
	for _, c := range d.Courses {
		r.Courses = append(r.Courses, CourseDue{Course: c.Course.ID, Title: c.Course.Title, Due: c.Due})
	}
	for _, o := range d.MostOverdue {
		r.MostOverdue = append(r.MostOverdue, o.Word.Text)
	}
	if err := w.notifier.Notify(ctx, r); err != nil {
		return r, fmt.Errorf("notify: %w", err)
	}
	return r, nil
}

// Start schedules Check every interval, beginning immediately. Runs never
// overlap.
func (w *Watcher) Start(ctx context.Context) error {
	if w.sched != nil {
		return errors.New("reminder: already started")
	}
	s := gocron.NewScheduler(time.UTC)
	s.SingletonModeAll()

	_, err := s.Every(w.interval).Do(func() {
		if _, err := w.Check(ctx); err != nil {
			w.logger.Warn("reminder check failed", "error", err)
		}
	})
	if err != nil {
		return fmt.Errorf("schedule reminder: %w", err)
	}
	s.StartAsync()
	w.sched = s
	return nil
}

// Stop halts the schedule. It is safe to call on a stopped Watcher.
func (w *Watcher) Stop() {
	if w.sched == nil {
		return
	}
	w.sched.Stop()
	w.sched = nil
}

// Run starts the Watcher and blocks until ctx is done.
func (w *Watcher) Run(ctx context.Context) error {
	if err := w.Start(ctx); err != nil {
		return err
	}
	<-ctx.Done()
	w.Stop()
	return nil
}

// LogNotifier writes reports to a slog logger.
type LogNotifier struct {
	Logger *slog.Logger
}

func (n LogNotifier) Notify(_ context.Context, r Report) error {
	if r.Total() == 0 {
		n.Logger.Info("no words due")
		return nil
	}
	for _, c := range r.Courses {
		if c.Due > 0 {
			n.Logger.Info("words due for review", "course", c.Course, "due", c.Due)
		}
	}
	if len(r.MostOverdue) > 0 {
		n.Logger.Info("most overdue", "words", strings.Join(r.MostOverdue, ", "))
	}
	return nil
}
