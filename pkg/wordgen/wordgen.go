// Package wordgen turns concepts into phonologically valid word forms.
package wordgen

import (
	"strings"

	"github.com/ersonp/phyla/pkg/genome"
	"github.com/ersonp/phyla/pkg/phonology"
	"github.com/ersonp/phyla/pkg/rng"
)

// shortConcept is the byte length below which a concept gets fewer syllables.
const shortConcept = 4

// GenerateWord returns the word for concept. The result depends only on the
// concept and the genome.
func GenerateWord(g *genome.Genome, concept string) string {
	r := rng.New(rng.HashDeterministic(concept, g.Seed))

	var count int
	if len(concept) < shortConcept {
		count = 1 + r.Range(0, 2)
	} else {
		count = 2 + r.Range(0, 2)
	}

	return Syllables(g, r, count)
}

// Syllables draws count syllables from r and concatenates them.
func Syllables(g *genome.Genome, r *rng.Rng, count int) string {
	var b strings.Builder
	for i := 0; i < count; i++ {
		writeSyllable(&b, g, r)
	}
	return b.String()
}

// Syllable draws a single syllable from r.
func Syllable(g *genome.Genome, r *rng.Rng) string {
	var b strings.Builder
	writeSyllable(&b, g, r)
	return b.String()
}

func writeSyllable(b *strings.Builder, g *genome.Genome, r *rng.Rng) {
	pattern := rng.Choice(r, g.SyllablePatterns).Pattern()
	for _, slot := range pattern {
		switch slot {
		case 'C':
			b.WriteString(string(chooseConsonant(&g.Inventory, r)))
		case 'V':
			b.WriteString(string(rng.Choice(r, g.Inventory.Vowels)))
		}
	}
}

// chooseConsonant picks a category by weight among the non-empty ones, then a
// consonant uniformly within it. It returns "" when no category has members.
func chooseConsonant(inv *phonology.Inventory, r *rng.Rng) phonology.Consonant {
	available := inv.AvailableCategories()
	if len(available) == 0 {
		return ""
	}

	weights := make([]float32, len(available))
	for i, c := range available {
		weights[i] = inv.CategoryWeights[c]
	}

	category := available[r.WeightedChoice(weights)]
	return rng.Choice(r, inv.Category(category))
}
