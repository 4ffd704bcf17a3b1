// Package naming generates personal names, place names and epithets that are
// consistent with a language's sound system and culture.
package naming

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/ersonp/phyla/pkg/culture"
	"github.com/ersonp/phyla/pkg/genome"
	"github.com/ersonp/phyla/pkg/morphology"
	"github.com/ersonp/phyla/pkg/rng"
	"github.com/ersonp/phyla/pkg/wordgen"
)

// NamePattern is the structure a culture uses for personal names.
type NamePattern int

// Name patterns.
const (
	// Simple is a single given name.
	Simple NamePattern = iota
	// Patronymic appends a marker derived from the parent's name.
	Patronymic
	// Compound joins several meaningful morphemes.
	Compound
	// Elaborate adds a title and a lineage.
	Elaborate
	// Descriptive follows the given name with a characteristic.
	Descriptive
)

func (p NamePattern) String() string {
	switch p {
	case Simple:
		return "simple"
	case Patronymic:
		return "patronymic"
	case Compound:
		return "compound"
	case Elaborate:
		return "elaborate"
	case Descriptive:
		return "descriptive"
	}
	return fmt.Sprintf("pattern(%d)", int(p))
}

// lowHonesty is compared against the raw honesty-humility score.
const lowHonesty = 2.5

// PatternFromCulture picks the naming pattern. Checks run in priority order.
func PatternFromCulture(c culture.Profile) NamePattern {
	switch {
	case c.HonestyHumility < lowHonesty:
		return Elaborate
	case c.NormalizedOpenness() > 0.7:
		return Compound
	case c.NormalizedConscientiousness() > 0.6:
		return Patronymic
	case c.NormalizedExtraversion() > 0.7:
		return Descriptive
	default:
		return Simple
	}
}

// System generates names for one language. It is read-only after
// construction and safe for concurrent use.
type System struct {
	Genome           *genome.Genome
	Culture          culture.Profile
	Geography        culture.Geography
	Morphemes        *morphology.Database
	Pattern          NamePattern
	CombiningRule    morphology.CombiningRule
	SyllablesPerName int
}

// NewSystem derives a naming system from a genome and its culture.
func NewSystem(g *genome.Genome, c culture.Profile, geo culture.Geography) *System {
	return &System{
		Genome:           g,
		Culture:          c,
		Geography:        geo,
		Morphemes:        morphology.FromGenome(g, c, geo),
		Pattern:          PatternFromCulture(c),
		CombiningRule:    morphology.RuleFromCulture(c),
		SyllablesPerName: syllablesPerName(c, geo),
	}
}

func syllablesPerName(c culture.Profile, geo culture.Geography) int {
	syllables := 2

	if c.NormalizedOpenness() > 0.6 {
		syllables++
	}
	if c.HonestyHumility < lowHonesty {
		syllables++
	}

	switch geo {
	case culture.Mountains:
		syllables = max(syllables-1, 0)
	case culture.Coastal:
		syllables++
	}

	return min(max(syllables, 1), 4)
}

// GenerateSimpleName returns a capitalized name of SyllablesPerName
// syllables. Equal seeds give equal names.
func (s *System) GenerateSimpleName(seed uint64) string {
	r := rng.New(rng.HashDeterministic(fmt.Sprintf("name_%d", seed), s.Genome.Seed))
	return capitalizeFirst(wordgen.Syllables(s.Genome, r, s.SyllablesPerName))
}

// GenerateCompoundName folds count weighted morphemes together with the
// language's combining rule.
func (s *System) GenerateCompoundName(seed uint64, count int) string {
	r := rng.New(seed ^ s.Genome.Seed)

	if count <= 0 {
		return s.GenerateSimpleName(seed)
	}

	name := s.Morphemes.SelectWeighted(r).Form
	for i := 1; i < count; i++ {
		name = s.CombiningRule.Combine(name, s.Morphemes.SelectWeighted(r).Form)
	}
	return capitalizeName(name)
}

// fallbackName is used when a morpheme lookup comes back empty.
func (s *System) fallbackName(r *rng.Rng) string {
	return s.GenerateSimpleName(uint64(r.Next() * 1_000_000))
}

func (s *System) formOrFallback(types []morphology.MorphemeType, r *rng.Rng) string {
	if m, ok := s.Morphemes.SelectFromTypes(types, r); ok {
		return m.Form
	}
	return s.fallbackName(r)
}

// capitalizeFirst upper-cases the first code point of s.
func capitalizeFirst(s string) string {
	first, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		return s
	}
	return string(unicode.ToUpper(first)) + s[size:]
}

// capitalizeName capitalizes every hyphen-separated part, both sides of a
// single " of " genitive, or otherwise the first letter only.
func capitalizeName(name string) string {
	if strings.Contains(name, "-") {
		parts := strings.Split(name, "-")
		for i, part := range parts {
			parts[i] = capitalizeFirst(part)
		}
		return strings.Join(parts, "-")
	}

	if parts := strings.Split(name, " of "); len(parts) == 2 {
		return capitalizeFirst(parts[0]) + " of " + capitalizeFirst(parts[1])
	}

	return capitalizeFirst(name)
}
