package spacedrep

import "time"

// Record holds the spaced repetition state for a single word.
// A word without a Record has never been reviewed.
type Record struct {
	WordID       string    `json:"word_id"`
	Stage        int       `json:"stage"`
	NextReview   time.Time `json:"next_review"`
	LastReviewed time.Time `json:"last_reviewed"`
}

// ProgressMap maps word IDs to their review records. It is the unit of persistence.
type ProgressMap map[string]Record

// Outcome is a single review result reported by the presentation layer.
type Outcome struct {
	WordID  string `json:"word_id"`
	Success bool   `json:"success"`
}

// IsDue returns true if the word is due for review (at or past the review time).
func (r Record) IsDue(now time.Time) bool {
	return !now.Before(r.NextReview)
}

// Mastered reports whether the record is past the mastered threshold.
func (r Record) Mastered() bool {
	return r.Stage > MasteredStage
}

// Overdue returns how long past due the word is. Returns 0 if not yet due.
func (r Record) Overdue(now time.Time) time.Duration {
	if now.Before(r.NextReview) {
		return 0
	}
	return now.Sub(r.NextReview)
}

// ReviewStatus describes a word's review status for display.
type ReviewStatus string

const (
	StatusNew      ReviewStatus = "new"
	StatusLearning ReviewStatus = "learning"
	StatusDue      ReviewStatus = "due"
	StatusMastered ReviewStatus = "mastered"
)

// Status returns the display status of a word given its record, if any.
func Status(rec Record, ok bool, now time.Time) ReviewStatus {
	switch {
	case !ok:
		return StatusNew
	case rec.IsDue(now):
		return StatusDue
	case rec.Mastered():
		return StatusMastered
	default:
		return StatusLearning
	}
}

// Clone returns a shallow copy of the map. Records are values, so the copy
// can be mutated without touching the original.
func (m ProgressMap) Clone() ProgressMap {
	out := make(ProgressMap, len(m))
	for id, rec := range m {
		out[id] = rec
	}
	return out
}
