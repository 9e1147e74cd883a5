// Package stats computes the per-course dashboard numbers.
package stats

import (
	"context"
	"fmt"
	"time"

	"github.com/abhisek/memoflow/internal/spacedrep"
	"github.com/abhisek/memoflow/internal/vocab"
)

// WordSource returns the merged word list of a course. vocab.Catalog
// implements it.
type WordSource interface {
	WordsForCourse(ctx context.Context, course vocab.CourseID) ([]vocab.Word, error)
}

// CustomCounter reports how many words were imported per course.
// store.WordRepo implements it.
type CustomCounter interface {
	CountCustom(ctx context.Context) (map[vocab.CourseID]int, error)
}

// CourseStats summarises one course against the progress map.
type CourseStats struct {
	Course vocab.Course
	Total  int
	// Custom is the number of stored imported words, including any that
	// duplicate a built-in ID.
	Custom   int
	Due      int
	New      int
	// Learning counts started words that are neither due nor mastered.
	Learning int
	// Mastered counts every word past the mastered stage, due or not.
	Mastered int
}

// MostOverdueLimit caps Dashboard.MostOverdue.
const MostOverdueLimit = 5

// OverdueWord is a due word and how long it has been waiting.
type OverdueWord struct {
	Course  vocab.CourseID
	Word    vocab.Word
	Overdue time.Duration
}

// Dashboard holds the stats of every course.
type Dashboard struct {
	Courses []CourseStats
	// MostOverdue lists the longest-waiting due words across courses.
	MostOverdue []OverdueWord
	GeneratedAt time.Time
}

// Totals sums the stats of every course.
func (d *Dashboard) Totals() CourseStats {
	var t CourseStats
	t.Course = vocab.Course{Title: "All courses"}
	for _, c := range d.Courses {
		t.Total += c.Total
		t.Custom += c.Custom
		t.Due += c.Due
		t.New += c.New
		t.Learning += c.Learning
		t.Mastered += c.Mastered
	}
	return t
}

// DueTotal is the number of due words across every course.
func (d *Dashboard) DueTotal() int {
	n := 0
	for _, c := range d.Courses {
		n += c.Due
	}
	return n
}

// Compute builds the dashboard at now. counter may be nil.
func Compute(ctx context.Context, words WordSource, counter CustomCounter, progress spacedrep.ProgressMap, now time.Time) (*Dashboard, error) {
	var custom map[vocab.CourseID]int
	if counter != nil {
		var err error
		if custom, err = counter.CountCustom(ctx); err != nil {
			return nil, fmt.Errorf("count custom words: %w", err)
		}
	}

	type located struct {
		course vocab.CourseID
		word   vocab.Word
	}
	known := map[string]located{}

	d := &Dashboard{GeneratedAt: now}
	for _, course := range vocab.Courses {
		list, err := words.WordsForCourse(ctx, course.ID)
		if err != nil {
			return nil, fmt.Errorf("load course %s: %w", course.ID, err)
		}
		for _, w := range list {
			known[w.ID] = located{course: course.ID, word: w}
		}
		d.Courses = append(d.Courses, ForCourse(course, vocab.IDs(list), custom[course.ID], progress, now))
	}

	// Progress can outlive a cleared import; those IDs are skipped.
	for _, id := range spacedrep.DueWords(progress, now) {
		if len(d.MostOverdue) == MostOverdueLimit {
			break
		}
		loc, ok := known[id]
		if !ok {
			continue
		}
		d.MostOverdue = append(d.MostOverdue, OverdueWord{
			Course:  loc.course,
			Word:    loc.word,
			Overdue: progress[id].Overdue(now),
		})
	}
	return d, nil
}

// ForCourse computes the stats for one course from its word IDs.
func ForCourse(course vocab.Course, ids []string, custom int, progress spacedrep.ProgressMap, now time.Time) CourseStats {
	cs := CourseStats{Course: course, Total: len(ids), Custom: custom}
	for _, id := range ids {
		rec, ok := progress[id]
		switch spacedrep.Status(rec, ok, now) {
		case spacedrep.StatusNew:
			cs.New++
		case spacedrep.StatusDue:
			cs.Due++
		case spacedrep.StatusLearning:
			cs.Learning++
		}
		if ok && rec.Mastered() {
			cs.Mastered++
		}
	}
	return cs
}
