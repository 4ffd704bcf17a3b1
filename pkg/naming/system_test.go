package naming

import (
	"testing"
	"unicode"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ersonp/phyla/pkg/culture"
	"github.com/ersonp/phyla/pkg/genome"
	"github.com/ersonp/phyla/pkg/morphology"
)

func newTestSystem(t *testing.T, c culture.Profile, geo culture.Geography, seed uint64) *System {
	t.Helper()
	return NewSystem(genome.FromCulture(c, geo, seed), c, geo)
}

func startsUpper(s string) bool {
	r, _ := utf8.DecodeRuneInString(s)
	return r == unicode.ToUpper(r)
}

func TestPatternFromCulture(t *testing.T) {
	tests := []struct {
		name    string
		profile culture.Profile
		want    NamePattern
	}{
		{"low honesty", culture.NewProfile(3, 3, 3, 3, 1.5, 3), Elaborate},
		{"low honesty overrides openness", culture.NewProfile(3, 5, 5, 5, 1.5, 3), Elaborate},
		{"high openness", culture.NewProfile(3, 4.5, 3, 3, 3, 3), Compound},
		{"high conscientiousness", culture.NewProfile(3, 3, 4.5, 3, 3, 3), Patronymic},
		{"moderate openness", culture.NewProfile(3, 3.6, 4.5, 3, 3, 3), Patronymic},
		{"high extraversion", culture.NewProfile(3, 3, 3, 4.5, 3, 3), Descriptive},
		{"neutral", culture.NeutralProfile(), Simple},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PatternFromCulture(tt.profile))
		})
	}
}

func TestSyllablesPerName(t *testing.T) {
	tests := []struct {
		name    string
		profile culture.Profile
		geo     culture.Geography
		want    int
	}{
		{"neutral plains", culture.NeutralProfile(), culture.Plains, 2},
		{"neutral mountains", culture.NeutralProfile(), culture.Mountains, 1},
		{"neutral coastal", culture.NeutralProfile(), culture.Coastal, 3},
		{"open", culture.NewProfile(3, 5, 3, 3, 3, 3), culture.Forest, 3},
		{"open and vain", culture.NewProfile(3, 5, 3, 3, 1, 3), culture.Desert, 4},
		{"clamped to four", culture.NewProfile(3, 5, 3, 3, 1, 3), culture.Coastal, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, syllablesPerName(tt.profile, tt.geo))
		})
	}
}

func TestNewSystem(t *testing.T) {
	c := culture.NewProfile(3, 3, 4.5, 3, 3, 3)
	s := newTestSystem(t, c, culture.Mountains, 77)

	assert.Equal(t, Patronymic, s.Pattern)
	assert.Equal(t, morphology.Hyphenated, s.CombiningRule)
	assert.Equal(t, 1, s.SyllablesPerName)
	assert.Equal(t, 55, s.Morphemes.Len())
	assert.Equal(t, uint64(77), s.Genome.Seed)
}

func TestGenerateSimpleName(t *testing.T) {
	s := newTestSystem(t, culture.NeutralProfile(), culture.Forest, 123)

	for id := uint64(0); id < 50; id++ {
		name := s.GenerateSimpleName(id)
		require.NotEmpty(t, name)
		assert.True(t, startsUpper(name), name)
		assert.Equal(t, name, s.GenerateSimpleName(id))
	}
}

func TestGenerateCompoundName(t *testing.T) {
	s := newTestSystem(t, culture.NeutralProfile(), culture.Plains, 5)

	name := s.GenerateCompoundName(42, 3)
	assert.NotEmpty(t, name)
	assert.True(t, startsUpper(name))
	assert.Equal(t, name, s.GenerateCompoundName(42, 3))

	assert.Equal(t, s.GenerateSimpleName(42), s.GenerateCompoundName(42, 0))
}

func TestCapitalizeFirst(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"", ""},
		{"a", "A"},
		{"fire", "Fire"},
		{"Fire", "Fire"},
		{"ʃaka", "Ʃaka"},
		{"ŋu", "Ŋu"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, capitalizeFirst(tt.input))
		})
	}
}

func TestCapitalizeName(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"firestone", "Firestone"},
		{"fire-stone", "Fire-Stone"},
		{"fire-stone-sky", "Fire-Stone-Sky"},
		{"stone of fire", "Stone of Fire"},
		{"sky of stone of fire", "Sky of stone of fire"},
		{"fire-", "Fire-"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, capitalizeName(tt.input))
		})
	}
}
