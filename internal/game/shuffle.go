package game

import (
	"math/rand/v2"
)

// Shuffler produces uniform random permutations. *rand.Rand from math/rand
// and math/rand/v2 both satisfy it.
type Shuffler interface {
	Shuffle(n int, swap func(i, j int))
}

type globalShuffler struct{}

func (globalShuffler) Shuffle(n int, swap func(i, j int)) {
	rand.Shuffle(n, swap)
}

// DefaultShuffler returns a shuffler backed by the process-wide random source.
func DefaultShuffler() Shuffler {
	return globalShuffler{}
}

// NewSeededShuffler returns a deterministic shuffler. Two shufflers created
// with the same seed produce the same sequence of permutations.
func NewSeededShuffler(seed uint64) Shuffler {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}
