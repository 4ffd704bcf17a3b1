// Package morphology holds the per-language morpheme database and the rules
// for joining morphemes into compounds.
package morphology

import (
	"fmt"

	"github.com/ersonp/phyla/pkg/culture"
	"github.com/ersonp/phyla/pkg/genome"
	"github.com/ersonp/phyla/pkg/rng"
	"github.com/ersonp/phyla/pkg/wordgen"
)

// Morpheme is a meaningful word part.
type Morpheme struct {
	Form    string
	Meaning MorphemeType
	Weight  float32
}

// Database holds exactly one morpheme per MorphemeType. It is immutable after
// construction and safe for concurrent reads.
type Database struct {
	morphemes []Morpheme // indexed by MorphemeType
}

// FromGenome builds the database for a language. Each form is the word the
// genome generates for the type's key.
func FromGenome(g *genome.Genome, c culture.Profile, geo culture.Geography) *Database {
	morphemes := make([]Morpheme, numTypes)
	for _, t := range AllTypes() {
		morphemes[t] = Morpheme{
			Form:    wordgen.GenerateWord(g, t.String()),
			Meaning: t,
			Weight:  t.CulturalWeight(geo, c),
		}
	}
	return &Database{morphemes: morphemes}
}

// Get returns the morpheme for t.
func (d *Database) Get(t MorphemeType) (Morpheme, bool) {
	if t < 0 || int(t) >= len(d.morphemes) {
		return Morpheme{}, false
	}
	return d.morphemes[t], true
}

// All returns every morpheme in type order. The slice is a copy.
func (d *Database) All() []Morpheme {
	out := make([]Morpheme, len(d.morphemes))
	copy(out, d.morphemes)
	return out
}

// Len returns the number of morphemes.
func (d *Database) Len() int {
	return len(d.morphemes)
}

// SelectWeighted draws a morpheme with probability proportional to its
// cultural weight, over all types in declaration order.
func (d *Database) SelectWeighted(r *rng.Rng) Morpheme {
	weights := make([]float32, len(d.morphemes))
	for i, m := range d.morphemes {
		weights[i] = m.Weight
	}
	return d.morphemes[r.WeightedChoice(weights)]
}

// SelectFromTypes draws a morpheme by weight from the given types. Types the
// database does not know are skipped; ok is false when none remain.
func (d *Database) SelectFromTypes(types []MorphemeType, r *rng.Rng) (m Morpheme, ok bool) {
	candidates := make([]Morpheme, 0, len(types))
	for _, t := range types {
		if found, exists := d.Get(t); exists {
			candidates = append(candidates, found)
		}
	}
	if len(candidates) == 0 {
		return Morpheme{}, false
	}

	weights := make([]float32, len(candidates))
	for i, c := range candidates {
		weights[i] = c.Weight
	}
	return candidates[r.WeightedChoice(weights)], true
}

// CombiningRule joins two morpheme forms into one name.
type CombiningRule int

// Combining rules.
const (
	Concatenate CombiningRule = iota
	Hyphenated
	Genitive
)

func (r CombiningRule) String() string {
	switch r {
	case Concatenate:
		return "concatenate"
	case Hyphenated:
		return "hyphenated"
	case Genitive:
		return "genitive"
	}
	return fmt.Sprintf("rule(%d)", int(r))
}

// RuleFromCulture picks the combining rule for a culture.
func RuleFromCulture(c culture.Profile) CombiningRule {
	switch {
	case c.NormalizedConscientiousness() > 0.6:
		return Hyphenated
	case c.NormalizedOpenness() > 0.7:
		return Genitive
	default:
		return Concatenate
	}
}

// Combine joins a and b. Genitive reverses the order: "b of a".
func (r CombiningRule) Combine(a, b string) string {
	switch r {
	case Hyphenated:
		return a + "-" + b
	case Genitive:
		return b + " of " + a
	default:
		return a + b
	}
}
