package session

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ids(prefix string, n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("%s%d", prefix, i+1)
	}
	return out
}

func TestCompose_DueFirstThenNew(t *testing.T) {
	// 10 due, 20 new, cap 15: all due then the first 5 new.
	due := ids("d", 10)
	fresh := ids("n", 20)

	got, err := Compose(due, fresh, 15)
	require.NoError(t, err)

	want := append(append([]string{}, due...), fresh[:5]...)
	assert.Equal(t, want, got)
}

func TestCompose_Properties(t *testing.T) {
	for _, nd := range []int{0, 1, 5, 15, 30} {
		for _, nf := range []int{0, 1, 5, 15, 30} {
			for _, limit := range []int{1, 5, 15, 100} {
				name := fmt.Sprintf("due=%d new=%d cap=%d", nd, nf, limit)
				t.Run(name, func(t *testing.T) {
					due := ids("d", nd)
					fresh := ids("n", nf)

					got, err := Compose(due, fresh, limit)
					require.NoError(t, err)

					assert.Len(t, got, min(nd+nf, limit))

					// Result is a prefix of due ++ fresh.
					all := append(append([]string{}, due...), fresh...)
					assert.Equal(t, all[:len(got)], got)

					// No new word appears while a due word was dropped.
					if len(got) < nd {
						for _, id := range got {
							assert.NotContains(t, fresh, id)
						}
					}
				})
			}
		}
	}
}

func TestCompose_EmptyInputs(t *testing.T) {
	got, err := Compose(nil, nil, DefaultCap)
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestCompose_InvalidCap(t *testing.T) {
	for _, limit := range []int{0, -1} {
		_, err := Compose(ids("d", 3), nil, limit)
		assert.ErrorIs(t, err, ErrInvalidCap)
	}
}

func TestCompose_DoesNotAliasInput(t *testing.T) {
	due := ids("d", 3)
	got, err := Compose(due, nil, 2)
	require.NoError(t, err)
	got[0] = "changed"
	assert.Equal(t, "d1", due[0])
}
