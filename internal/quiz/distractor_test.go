package quiz

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/memoflow/internal/vocab"
)

func makePool(n int) []vocab.Word {
	pool := make([]vocab.Word, n)
	for i := range pool {
		id := fmt.Sprintf("w%d", i)
		pool[i] = vocab.Word{ID: id, Text: "word " + id, Meaning: "meaning " + id}
	}
	return pool
}

// firstRand always picks the lowest index, making the output predictable.
type firstRand struct{}

func (firstRand) IntN(int) int { return 0 }

func assertValidOptions(t *testing.T, target vocab.Word, options []vocab.Word, answer int) {
	t.Helper()
	ids := make(map[string]int)
	for _, w := range options {
		ids[w.ID]++
	}
	for id, n := range ids {
		assert.Equal(t, 1, n, "id %s appears %d times", id, n)
	}
	assert.Equal(t, 1, ids[target.ID], "target must appear exactly once")
	require.GreaterOrEqual(t, answer, 0)
	require.Less(t, answer, len(options))
	assert.Equal(t, target.ID, options[answer].ID)
}

func TestSample_Properties(t *testing.T) {
	for _, size := range []int{1, 2, 3, 4, 5, 10, 50} {
		for _, k := range []int{0, 1, 3, 5} {
			for seed := uint64(0); seed < 20; seed++ {
				pool := makePool(size)
				target := pool[int(seed)%size]

				options, answer := Sample(target, pool, k, NewRand(seed))

				assert.Len(t, options, min(k+1, size), "size=%d k=%d seed=%d", size, k, seed)
				assertValidOptions(t, target, options, answer)
			}
		}
	}
}

func TestSample_OnlyTarget(t *testing.T) {
	target := vocab.Word{ID: "solo", Meaning: "alone"}
	options, answer := Sample(target, []vocab.Word{target}, DefaultDistractors, NewRand(1))

	require.Len(t, options, 1)
	assert.Equal(t, "solo", options[0].ID)
	assert.Equal(t, 0, answer)
}

func TestSample_EmptyPool(t *testing.T) {
	target := vocab.Word{ID: "t"}
	options, answer := Sample(target, nil, DefaultDistractors, NewRand(1))
	assert.Equal(t, []vocab.Word{target}, options)
	assert.Equal(t, 0, answer)
}

func TestSample_TargetNotInPool(t *testing.T) {
	target := vocab.Word{ID: "outside"}
	options, answer := Sample(target, makePool(6), 3, NewRand(7))
	assert.Len(t, options, 4)
	assertValidOptions(t, target, options, answer)
}

func TestSample_DuplicateMeaningsUseIdentity(t *testing.T) {
	target := vocab.Word{ID: "big", Text: "big", Meaning: "大的"}
	pool := []vocab.Word{
		target,
		{ID: "large", Text: "large", Meaning: "大的"},
		{ID: "huge", Text: "huge", Meaning: "大的"},
	}
	for seed := uint64(0); seed < 10; seed++ {
		options, answer := Sample(target, pool, 3, NewRand(seed))
		assert.Len(t, options, 3)
		assert.Equal(t, "big", options[answer].ID)
	}
}

func TestSample_DuplicatePoolEntries(t *testing.T) {
	pool := []vocab.Word{{ID: "a"}, {ID: "a"}, {ID: "b"}, {ID: "b"}, {ID: "t"}}
	options, answer := Sample(vocab.Word{ID: "t"}, pool, 3, NewRand(3))
	assert.Len(t, options, 3)
	assertValidOptions(t, vocab.Word{ID: "t"}, options, answer)
}

func TestSample_Deterministic(t *testing.T) {
	pool := makePool(20)
	a, ia := Sample(pool[4], pool, 3, NewRand(99))
	b, ib := Sample(pool[4], pool, 3, NewRand(99))
	assert.Equal(t, a, b)
	assert.Equal(t, ia, ib)
}

func TestSample_FixedSource(t *testing.T) {
	pool := makePool(5)

	// With IntN always 0 the first candidates are drawn in order, then the
	// shuffle rotates the slice: [w1 w2 w3 w0] -> [w2 w3 w0 w1].
	options, answer := Sample(pool[0], pool, 3, firstRand{})

	got := vocab.IDs(options)
	assert.Equal(t, []string{"w2", "w3", "w0", "w1"}, got)
	assert.Equal(t, 2, answer)
}

func TestSample_CoversAllCandidates(t *testing.T) {
	pool := makePool(8)
	target := pool[0]
	counts := make(map[string]int)
	rng := NewRand(2024)
	for i := 0; i < 2000; i++ {
		options, _ := Sample(target, pool, 3, rng)
		for _, w := range options {
			counts[w.ID]++
		}
	}
	for _, w := range pool[1:] {
		assert.Greater(t, counts[w.ID], 0, "candidate %s never drawn", w.ID)
	}
	assert.Equal(t, 2000, counts[target.ID])
}

func TestSample_NegativeKPanics(t *testing.T) {
	assert.Panics(t, func() {
		Sample(vocab.Word{ID: "t"}, makePool(3), -1, NewRand(1))
	})
}

func TestQuestion_IsCorrect(t *testing.T) {
	pool := makePool(6)
	q := NewQuestion(pool[2], pool, DefaultDistractors, NewRand(5))

	assert.True(t, q.IsCorrect(q.Answer))
	for i := range q.Options {
		if i != q.Answer {
			assert.False(t, q.IsCorrect(i))
		}
	}
	assert.False(t, q.IsCorrect(-1))
	assert.False(t, q.IsCorrect(len(q.Options)))
}

func TestBuildQuestions(t *testing.T) {
	pool := makePool(10)
	questions := BuildQuestions(pool[:3], pool, DefaultDistractors, NewRand(11))
	require.Len(t, questions, 3)
	for i, q := range questions {
		assert.Equal(t, pool[i].ID, q.Word.ID)
		assert.Len(t, q.Options, DefaultDistractors+1)
	}
}

func TestLabel(t *testing.T) {
	assert.Equal(t, "A", Label(0))
	assert.Equal(t, "D", Label(3))
	assert.Equal(t, "?", Label(-1))
}
