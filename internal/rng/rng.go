// Package rng provides the seeded generator handle threaded through map
// generation. Every stochastic decision goes through one *Rng so two runs
// with the same seed and stage sequence produce identical output.
package rng

import "math/rand"

// Rng wraps a seeded *rand.Rand with dice-style helpers.
type Rng struct {
	seed int64
	r    *rand.Rand
}

// New returns a generator seeded with seed.
func New(seed int64) *Rng {
	return &Rng{seed: seed, r: rand.New(rand.NewSource(seed))}
}

// Reseed restarts the sequence from seed.
func (g *Rng) Reseed(seed int64) {
	g.seed = seed
	g.r = rand.New(rand.NewSource(seed))
}

// Seed returns the seed the generator was last (re)seeded with.
func (g *Rng) Seed() int64 { return g.seed }

// RollDice returns the sum of n rolls of a die with the given number of sides.
// A die with fewer than one side always rolls 1.
func (g *Rng) RollDice(n, sides int) int {
	total := 0
	for range n {
		if sides < 1 {
			total++
			continue
		}
		total += g.r.Intn(sides) + 1
	}
	return total
}

// Range returns a uniform value in [min, max). It returns min when max <= min.
func (g *Rng) Range(min, max int) int {
	if max <= min {
		return min
	}
	return min + g.r.Intn(max-min)
}

