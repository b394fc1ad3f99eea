package service

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShuffleOptionsPreservesMultiset(t *testing.T) {
	randomizer := NewSeededRandomizer(1, 2)
	options := []string{"alpha", "bravo", "charlie", "delta"}

	for i := 0; i < 1000; i++ {
		shuffled, err := randomizer.ShuffleOptions("charlie", options)
		require.NoError(t, err)
		require.Len(t, shuffled, len(options))

		assert.Contains(t, shuffled, "charlie")

		sortedIn := append([]string(nil), options...)
		sortedOut := append([]string(nil), shuffled...)
		sort.Strings(sortedIn)
		sort.Strings(sortedOut)
		assert.Equal(t, sortedIn, sortedOut)
	}
}

func TestShuffleOptionsDoesNotModifyInput(t *testing.T) {
	randomizer := NewSeededRandomizer(3, 4)
	options := []string{"a", "b", "c", "d"}

	_, err := randomizer.ShuffleOptions("a", options)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c", "d"}, options)
}

func TestShuffleOptionsRejectsMissingAnswer(t *testing.T) {
	randomizer := NewSeededRandomizer(5, 6)

	shuffled, err := randomizer.ShuffleOptions("echo", []string{"alpha", "bravo", "charlie", "delta"})
	require.ErrorIs(t, err, ErrAnswerNotInOptions)
	assert.Nil(t, shuffled)
}

func TestShuffleOptionsEventuallyReorders(t *testing.T) {
	randomizer := NewSeededRandomizer(7, 8)
	options := []string{"alpha", "bravo", "charlie", "delta"}

	reordered := false
	for i := 0; i < 100 && !reordered; i++ {
		shuffled, err := randomizer.ShuffleOptions("alpha", options)
		require.NoError(t, err)
		for j := range options {
			if shuffled[j] != options[j] {
				reordered = true
				break
			}
		}
	}
	assert.True(t, reordered, "100 shuffles of 4 options never changed the order")
}

func TestPermCoversRange(t *testing.T) {
	randomizer := NewSeededRandomizer(9, 10)

	perm := randomizer.Perm(10)
	require.Len(t, perm, 10)

	seen := make(map[int]bool, 10)
	for _, v := range perm {
		assert.GreaterOrEqual(t, v, 0)
		assert.Less(t, v, 10)
		seen[v] = true
	}
	assert.Len(t, seen, 10)
}
