package session

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/memoflow/internal/spacedrep"
	"github.com/abhisek/memoflow/internal/store"
	"github.com/abhisek/memoflow/internal/vocab"
)

var testNow = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

// memStore is an in-memory ProgressStore with injectable failures.
type memStore struct {
	progress spacedrep.ProgressMap
	loadErr  error
	saveErr  error
	saves    int
}

func (m *memStore) LoadProgress(context.Context) (spacedrep.ProgressMap, error) {
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	return m.progress.Clone(), nil
}

func (m *memStore) SaveProgress(_ context.Context, p spacedrep.ProgressMap) error {
	m.saves++
	if m.saveErr != nil {
		return m.saveErr
	}
	m.progress = p.Clone()
	return nil
}

type recordingLog struct {
	events []store.SessionEventData
	err    error
}

func (r *recordingLog) AppendSessionEvent(_ context.Context, data store.SessionEventData) error {
	r.events = append(r.events, data)
	return r.err
}

type staticWords []vocab.Word

func (s staticWords) WordsForCourse(context.Context, vocab.CourseID) ([]vocab.Word, error) {
	return s, nil
}

type failingWords struct{ err error }

func (f failingWords) WordsForCourse(context.Context, vocab.CourseID) ([]vocab.Word, error) {
	return nil, f.err
}

func makeWords(n int) staticWords {
	words := make(staticWords, n)
	for i, id := range ids("w", n) {
		words[i] = vocab.Word{ID: id, Text: "text " + id, Meaning: "meaning " + id}
	}
	return words
}

func newTestRunner(t *testing.T, ps ProgressStore, events EventLog, words WordSource, limit int) *Runner {
	t.Helper()
	sched, err := spacedrep.NewScheduler(spacedrep.DefaultLadder, func() time.Time { return testNow })
	require.NoError(t, err)
	planner, err := NewPlanner(words, sched, limit)
	require.NoError(t, err)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewRunner(ps, events, planner, sched, logger)
}

func TestPlanner_DueBeforeNew(t *testing.T) {
	words := makeWords(6)
	progress := spacedrep.ProgressMap{
		"w2": {WordID: "w2", Stage: 3, NextReview: testNow.Add(-time.Hour)},
		"w4": {WordID: "w4", Stage: 2, NextReview: testNow},
		"w5": {WordID: "w5", Stage: 5, NextReview: testNow.Add(time.Hour)},
	}
	r := newTestRunner(t, &memStore{progress: progress}, nil, words, 3)

	plan, err := r.planner.BuildPlan(t.Context(), vocab.Junior1600, ModeLearn, progress)
	require.NoError(t, err)

	assert.Equal(t, []string{"w2", "w4", "w1"}, vocab.IDs(plan.Words))
	assert.Equal(t, 2, plan.DueCount)
	assert.Equal(t, 1, plan.NewCount)
	assert.Len(t, plan.Pool, 6)
	assert.False(t, plan.Empty())
}

func TestPlanner_EmptyWhenNothingDue(t *testing.T) {
	words := makeWords(2)
	progress := spacedrep.ProgressMap{
		"w1": {WordID: "w1", Stage: 4, NextReview: testNow.Add(time.Hour)},
		"w2": {WordID: "w2", Stage: 4, NextReview: testNow.Add(time.Minute)},
	}
	r := newTestRunner(t, &memStore{progress: progress}, nil, words, 0)

	plan, err := r.planner.BuildPlan(t.Context(), vocab.Junior1600, ModeQuiz, progress)
	require.NoError(t, err)
	assert.True(t, plan.Empty())
	assert.Equal(t, DefaultCap, r.planner.Cap())
}

func TestPlanner_LimitTruncatesPlan(t *testing.T) {
	progress := spacedrep.ProgressMap{
		"w3": {WordID: "w3", Stage: 2, NextReview: testNow.Add(-time.Minute)},
	}
	r := newTestRunner(t, &memStore{progress: progress}, nil, makeWords(8), 3)

	plan, err := r.planner.BuildPlan(t.Context(), vocab.Junior1600, ModeLearn, progress)
	require.NoError(t, err)
	require.Len(t, plan.Words, 3)
	assert.Equal(t, "w3", plan.Words[0].ID)
	assert.Equal(t, 3, r.planner.Cap())
}

func TestNewPlanner_NegativeCap(t *testing.T) {
	sched, err := spacedrep.NewScheduler(spacedrep.DefaultLadder, nil)
	require.NoError(t, err)
	_, err = NewPlanner(makeWords(1), sched, -3)
	assert.ErrorIs(t, err, ErrInvalidCap)
}

func TestRunner_StartAndFinish(t *testing.T) {
	ps := &memStore{progress: spacedrep.ProgressMap{}}
	events := &recordingLog{}
	r := newTestRunner(t, ps, events, makeWords(4), DefaultCap)

	active, err := r.Start(t.Context(), vocab.Senior3500, ModeQuiz)
	require.NoError(t, err)
	require.Len(t, active.Plan.Words, 4)
	assert.NotEmpty(t, active.ID)

	res := r.Finish(t.Context(), active, []spacedrep.Outcome{
		{WordID: "w1", Success: true},
		{WordID: "w2", Success: false},
		{WordID: "w1", Success: false}, // repeat, ignored
		{WordID: "stranger", Success: true},
	})

	require.True(t, res.Saved())
	assert.Equal(t, 1, ps.saves)
	assert.Equal(t, Summary{Served: 2, Correct: 1}, res.Summary)

	require.Len(t, ps.progress, 2)
	assert.Equal(t, 1, ps.progress["w1"].Stage)
	assert.Equal(t, testNow.Add(5*time.Minute), ps.progress["w1"].NextReview)
	assert.Equal(t, 1, ps.progress["w2"].Stage)
	assert.NotContains(t, ps.progress, "w3")

	require.Len(t, events.events, 1)
	assert.Equal(t, store.SessionEventData{
		SessionID: active.ID,
		Course:    string(vocab.Senior3500),
		Mode:      string(ModeQuiz),
		Served:    2,
		Correct:   1,
	}, events.events[0])
}

func TestRunner_LoadFailureStartsEmpty(t *testing.T) {
	ps := &memStore{loadErr: errors.New("database is locked")}
	r := newTestRunner(t, ps, nil, makeWords(3), DefaultCap)

	active, err := r.Start(t.Context(), vocab.Junior1600, ModeLearn)
	require.NoError(t, err)
	assert.Empty(t, active.Progress)
	assert.Len(t, active.Plan.Words, 3)
	assert.Equal(t, 3, active.Plan.NewCount)
}

func TestRunner_SaveFailureKeepsResult(t *testing.T) {
	saveErr := errors.New("disk full")
	ps := &memStore{progress: spacedrep.ProgressMap{}, saveErr: saveErr}
	events := &recordingLog{}
	r := newTestRunner(t, ps, events, makeWords(2), DefaultCap)

	active, err := r.Start(t.Context(), vocab.Junior1600, ModeLearn)
	require.NoError(t, err)

	res := r.Finish(t.Context(), active, []spacedrep.Outcome{{WordID: "w1", Success: true}})

	assert.False(t, res.Saved())
	assert.ErrorIs(t, res.SaveErr, saveErr)
	assert.Equal(t, 1, res.Progress["w1"].Stage)
	assert.Empty(t, active.Progress, "session progress must not be mutated")
	assert.Empty(t, events.events, "an unsaved session stays out of the history")
}

func TestRunner_EventFailureIsNotFatal(t *testing.T) {
	ps := &memStore{progress: spacedrep.ProgressMap{}}
	events := &recordingLog{err: errors.New("no table")}
	r := newTestRunner(t, ps, events, makeWords(1), DefaultCap)

	active, err := r.Start(t.Context(), vocab.Junior1600, ModeLearn)
	require.NoError(t, err)
	res := r.Finish(t.Context(), active, []spacedrep.Outcome{{WordID: "w1", Success: false}})

	assert.True(t, res.Saved())
	assert.Equal(t, 1, ps.progress["w1"].Stage)
}

func TestRunner_NoOutcomesNoSave(t *testing.T) {
	ps := &memStore{progress: spacedrep.ProgressMap{}}
	events := &recordingLog{}
	r := newTestRunner(t, ps, events, makeWords(3), DefaultCap)

	active, err := r.Start(t.Context(), vocab.Junior1600, ModeQuiz)
	require.NoError(t, err)
	res := r.Finish(t.Context(), active, nil)

	assert.True(t, res.Saved())
	assert.Zero(t, ps.saves)
	assert.Empty(t, events.events)
	assert.Zero(t, res.Summary.Served)
}

func TestRunner_CatalogError(t *testing.T) {
	boom := errors.New("broken catalog")
	r := newTestRunner(t, &memStore{}, nil, failingWords{err: boom}, DefaultCap)

	_, err := r.Start(t.Context(), vocab.Junior1600, ModeLearn)
	assert.ErrorIs(t, err, boom)
}

func TestSummary(t *testing.T) {
	s := BuildSummary([]spacedrep.Outcome{
		{WordID: "a", Success: true},
		{WordID: "b", Success: true},
		{WordID: "c", Success: false},
	}, time.Minute)

	assert.Equal(t, 3, s.Served)
	assert.Equal(t, 2, s.Correct)
	assert.Equal(t, 1, s.Wrong())
	assert.InDelta(t, 0.6667, s.Accuracy(), 0.001)
	assert.Equal(t, 67, s.Percent())

	assert.Zero(t, Summary{}.Accuracy())
}

func TestParseMode(t *testing.T) {
	m, err := ParseMode("quiz")
	require.NoError(t, err)
	assert.Equal(t, ModeQuiz, m)

	_, err = ParseMode("speed")
	assert.Error(t, err)
}
