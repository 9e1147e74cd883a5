// Package quiz builds multiple-choice questions for vocabulary quizzes.
package quiz

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/abhisek/memoflow/internal/vocab"
)

// DefaultDistractors is the number of wrong options offered per question.
const DefaultDistractors = 3

// Rand is the randomness source used for sampling and shuffling.
// *rand.Rand from math/rand/v2 satisfies it.
type Rand interface {
	IntN(n int) int
}

// NewRand returns a PCG-backed source. Equal seeds give equal sequences.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// NewTimeSeededRand returns a source seeded from the wall clock.
func NewTimeSeededRand() *rand.Rand {
	return NewRand(uint64(time.Now().UnixNano()))
}

// Sample picks up to k distractors for target from pool and returns them
// shuffled together with target, plus the index of target in the result.
//
// The target is excluded from the pool by ID and pool entries sharing an ID
// are considered once. When fewer than k candidates remain, all of them are
// used. The answer index is found by ID, since two words may share a meaning.
func Sample(target vocab.Word, pool []vocab.Word, k int, rng Rand) ([]vocab.Word, int) {
	if k < 0 {
		panic(fmt.Sprintf("quiz: negative distractor count %d", k))
	}

	seen := map[string]bool{target.ID: true}
	candidates := make([]vocab.Word, 0, len(pool))
	for _, w := range pool {
		if seen[w.ID] {
			continue
		}
		seen[w.ID] = true
		candidates = append(candidates, w)
	}

	// Partial Fisher-Yates: the first n slots become a uniform sample.
	n := min(k, len(candidates))
	for i := 0; i < n; i++ {
		j := i + rng.IntN(len(candidates)-i)
		candidates[i], candidates[j] = candidates[j], candidates[i]
	}

	options := make([]vocab.Word, 0, n+1)
	options = append(options, candidates[:n]...)
	options = append(options, target)
	shuffle(options, rng)

	answer := -1
	for i, w := range options {
		if w.ID == target.ID {
			answer = i
			break
		}
	}
	return options, answer
}

func shuffle(words []vocab.Word, rng Rand) {
	for i := len(words) - 1; i > 0; i-- {
		j := rng.IntN(i + 1)
		words[i], words[j] = words[j], words[i]
	}
}
