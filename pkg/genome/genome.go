// Package genome derives the fixed structural parameters of a language from a
// cultural profile, a geography and a seed.
package genome

import (
	"fmt"
	"strings"

	"github.com/ersonp/phyla/pkg/culture"
	"github.com/ersonp/phyla/pkg/phonology"
	"github.com/ersonp/phyla/pkg/rng"
)

// wordOrderSalt decorrelates word-order draws from other seed consumers.
const wordOrderSalt = 7919

// WordOrder is the basic clause order of subject, verb and object.
type WordOrder int

// Word orders.
const (
	SVO WordOrder = iota
	SOV
	VSO
	VOS
	OVS
	OSV
)

var wordOrderNames = [...]string{"SVO", "SOV", "VSO", "VOS", "OVS", "OSV"}

func (w WordOrder) String() string {
	if w < 0 || int(w) >= len(wordOrderNames) {
		return "unknown"
	}
	return wordOrderNames[w]
}

// ParseWordOrder accepts a case-insensitive order name such as "sov".
func ParseWordOrder(s string) (WordOrder, error) {
	upper := strings.ToUpper(strings.TrimSpace(s))
	for i, name := range wordOrderNames {
		if name == upper {
			return WordOrder(i), nil
		}
	}
	return 0, fmt.Errorf("unknown word order %q", s)
}

// MorphologyType classifies how words are built from morphemes. It is
// recorded on the genome but generation does not consult it.
type MorphologyType int

// Morphology types.
const (
	Isolating MorphologyType = iota
	Agglutinative
	Fusional
)

func (m MorphologyType) String() string {
	switch m {
	case Isolating:
		return "isolating"
	case Agglutinative:
		return "agglutinative"
	case Fusional:
		return "fusional"
	}
	return "unknown"
}

// Genome is the immutable description of a language. Values returned by
// FromCulture are shared between components and must not be mutated.
type Genome struct {
	Inventory        phonology.Inventory
	SyllablePatterns []phonology.SyllableStructure
	Prosody          phonology.ProsodicSystem
	Morphology       MorphologyType
	WordOrder        WordOrder
	Seed             uint64
}

// FromCulture builds a genome. The same inputs always produce the same genome.
func FromCulture(c culture.Profile, geo culture.Geography, seed uint64) *Genome {
	return &Genome{
		Inventory:        buildInventory(c, geo),
		SyllablePatterns: buildSyllablePatterns(c, geo),
		Prosody:          phonology.DefaultProsody(),
		Morphology:       deriveMorphology(c),
		WordOrder:        deriveWordOrder(c, seed),
		Seed:             seed,
	}
}

func buildInventory(c culture.Profile, geo culture.Geography) phonology.Inventory {
	stops := []phonology.Consonant{"p", "t", "k"}
	fricatives := []phonology.Consonant{"s", "h"}
	nasals := []phonology.Consonant{"m", "n"}
	liquids := []phonology.Consonant{"l", "r"}

	switch geo {
	case culture.Mountains:
		stops = append(stops, "kʼ", "tʼ")
		fricatives = append(fricatives, "x", "ʃ")
	case culture.Coastal:
		fricatives = append(fricatives, "f", "v")
	case culture.Desert:
		stops = append(stops, "q")
		fricatives = append(fricatives, "ʃ", "x", "ħ", "ʕ")
	case culture.Forest:
		fricatives = append(fricatives, "f")
		nasals = append(nasals, "ŋ")
	case culture.RiverValley, culture.Plains:
		stops = append(stops, "b", "d", "g")
		fricatives = append(fricatives, "f", "v", "z", "ʃ", "ʒ")
	}

	openness := c.NormalizedOpenness()
	vowels := []phonology.Vowel{"a", "i", "u"}
	if openness > 0.5 {
		vowels = append(vowels, "e", "o")
	}
	if openness > 0.7 {
		vowels = append(vowels, "ə")
	}

	// Agreeable cultures favour sonorants over stops.
	agreeableness := c.NormalizedAgreeableness()
	weights := [phonology.NumCategories]float32{
		phonology.Stops:      0.3 - agreeableness*0.1,
		phonology.Fricatives: 0.25,
		phonology.Nasals:     0.15 + agreeableness*0.15,
		phonology.Liquids:    0.15 + agreeableness*0.15,
		phonology.Glides:     0.1,
	}

	return phonology.Inventory{
		Stops:           stops,
		Fricatives:      fricatives,
		Nasals:          nasals,
		Liquids:         liquids,
		Glides:          []phonology.Consonant{},
		Vowels:          vowels,
		CategoryWeights: weights,
	}
}

func buildSyllablePatterns(c culture.Profile, geo culture.Geography) []phonology.SyllableStructure {
	patterns := []phonology.SyllableStructure{phonology.CV, phonology.CVC}

	if c.NormalizedEmotionality() > 0.5 {
		patterns = append(patterns, phonology.V, phonology.CVV)
	}

	openness := c.NormalizedOpenness()
	if openness > 0.5 {
		patterns = append(patterns, phonology.CCV, phonology.CCVC)
	}
	if openness > 0.7 {
		patterns = append(patterns, phonology.CVCC, phonology.VCC)
	}

	if c.NormalizedConscientiousness() < 0.3 {
		patterns = append(patterns, phonology.VC)
	}

	// Repeated patterns weight the uniform draw.
	switch geo {
	case culture.Mountains:
		patterns = append(patterns, phonology.CVC, phonology.CCVC)
	case culture.Coastal:
		patterns = append(patterns, phonology.CV, phonology.V, phonology.CVV)
	}

	return patterns
}

func deriveMorphology(c culture.Profile) MorphologyType {
	conscientiousness := c.NormalizedConscientiousness()
	openness := c.NormalizedOpenness()

	switch {
	case conscientiousness > 0.6 && openness > 0.6:
		return Agglutinative
	case conscientiousness > 0.6:
		return Isolating
	default:
		return Fusional
	}
}

func deriveWordOrder(c culture.Profile, seed uint64) WordOrder {
	r := rng.New(seed * wordOrderSalt)
	conscientiousness := c.NormalizedConscientiousness()

	switch {
	case conscientiousness > 0.7:
		if r.Next() < 0.8 {
			return SOV
		}
		return SVO
	case conscientiousness < 0.3:
		if r.Next() < 0.7 {
			return VSO
		}
		return VOS
	default:
		if r.Next() < 0.7 {
			return SVO
		}
		if r.Next() < 0.5 {
			return SOV
		}
		return VSO
	}
}
