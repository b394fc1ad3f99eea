package service

import (
	"fmt"
	"math/rand/v2"
)

// Randomizer wraps the random source used for option shuffling and distractor
// picking. The source is injectable so tests can seed it; production seeds
// from the auto-seeded global generator. Scoring never depends on option
// order, only on string equality with the stored correct answer, so the
// shuffle is deliberately non-reproducible.
type Randomizer struct {
	rng *rand.Rand
}

// NewRandomizer returns a Randomizer over a fresh PCG source.
func NewRandomizer() *Randomizer {
	return NewSeededRandomizer(rand.Uint64(), rand.Uint64())
}

// NewSeededRandomizer returns a Randomizer with a deterministic source.
func NewSeededRandomizer(seed1, seed2 uint64) *Randomizer {
	return &Randomizer{rng: rand.New(rand.NewPCG(seed1, seed2))}
}

// ShuffleOptions returns a uniformly random permutation of options. It fails
// with ErrAnswerNotInOptions if correctAnswer is missing from the input; that
// is a hard precondition, not a recoverable condition. The input slice is not
// modified.
func (r *Randomizer) ShuffleOptions(correctAnswer string, options []string) ([]string, error) {
	found := false
	for _, opt := range options {
		if opt == correctAnswer {
			found = true
			break
		}
	}
	if !found {
		return nil, fmt.Errorf("%w: answer %q", ErrAnswerNotInOptions, correctAnswer)
	}

	shuffled := make([]string, len(options))
	copy(shuffled, options)
	r.rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	return shuffled, nil
}

// Perm returns a random permutation of [0, n), used to pick distractors
// without replacement.
func (r *Randomizer) Perm(n int) []int {
	return r.rng.Perm(n)
}
