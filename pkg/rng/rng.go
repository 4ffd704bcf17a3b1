// Package rng provides the seeded pseudo-random stream and string hashing that
// every generation step is derived from.
package rng

// LCG parameters. Generated text is a direct function of this recurrence, so
// changing any of them changes every word of every language.
const (
	multiplier = 9301
	increment  = 49297
	modulus    = 233280
)

// Rng is a linear congruential generator. The zero value is a valid generator
// seeded with 0. It is not safe for concurrent use.
type Rng struct {
	state uint64
}

// New returns a generator seeded with seed.
func New(seed uint64) *Rng {
	return &Rng{state: seed}
}

// Next advances the generator and returns a value in [0, 1).
func (r *Rng) Next() float64 {
	r.state = (r.state*multiplier + increment) % modulus
	return float64(r.state) / modulus
}

// Range returns an integer in [min, max).
func (r *Rng) Range(min, max int) int {
	return min + int(r.Next()*float64(max-min))
}

// WeightedChoice draws an index with probability proportional to its weight.
// Weights need not sum to 1. A zero-sum or otherwise degenerate vector yields
// the last index. weights must not be empty.
func (r *Rng) WeightedChoice(weights []float32) int {
	var total float32
	for _, w := range weights {
		total += w
	}

	draw := float32(r.Next()) * total
	for i, w := range weights {
		if draw < w {
			return i
		}
		draw -= w
	}

	return len(weights) - 1
}

// Choice returns a uniformly drawn element of items. items must not be empty.
func Choice[T any](r *Rng, items []T) T {
	index := int(r.Next() * float64(len(items)))
	return items[min(index, len(items)-1)]
}
