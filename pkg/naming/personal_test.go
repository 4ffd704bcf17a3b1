package naming

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ersonp/phyla/pkg/culture"
	"github.com/ersonp/phyla/pkg/morphology"
)

func TestPersonalContext_Builders(t *testing.T) {
	ctx := NewPersonalContext(9).WithParent("Aldric").WithBirthOrder(2)
	assert.Equal(t, uint64(9), ctx.EntityID)
	assert.Equal(t, "Aldric", ctx.ParentName)
	assert.Equal(t, 2, ctx.BirthOrder)

	// Builders return copies.
	base := NewPersonalContext(1)
	_ = base.WithParent("X")
	assert.Empty(t, base.ParentName)
}

func TestGeneratePersonalName_Deterministic(t *testing.T) {
	profiles := []culture.Profile{
		culture.NeutralProfile(),
		culture.NewProfile(3, 3, 4.5, 3, 3, 3),
		culture.NewProfile(3, 4.5, 3, 3, 3, 3),
		culture.NewProfile(3, 3, 3, 3, 1.5, 3),
		culture.NewProfile(3, 3, 3, 4.5, 3, 3),
	}

	for _, c := range profiles {
		s := newTestSystem(t, c, culture.Plains, 2024)
		for id := uint64(1); id <= 20; id++ {
			ctx := NewPersonalContext(id).WithParent("Borin")
			name := s.GeneratePersonalName(ctx)
			require.NotEmpty(t, name, s.Pattern.String())
			assert.Equal(t, name, s.GeneratePersonalName(ctx), s.Pattern.String())
		}
	}
}

func TestGeneratePersonalName_Simple(t *testing.T) {
	s := newTestSystem(t, culture.NeutralProfile(), culture.Plains, 11)
	require.Equal(t, Simple, s.Pattern)

	assert.Equal(t, s.GenerateSimpleName(5), s.GeneratePersonalName(NewPersonalContext(5)))
}

func TestGeneratePersonalName_Patronymic(t *testing.T) {
	s := newTestSystem(t, culture.NewProfile(3, 3, 4.5, 3, 3, 3), culture.Mountains, 31)
	require.Equal(t, Patronymic, s.Pattern)

	given := s.GenerateSimpleName(7)

	t.Run("with parent", func(t *testing.T) {
		name := s.GeneratePersonalName(NewPersonalContext(7).WithParent("Aldric"))
		prefix := given + " Aldric-"
		require.True(t, strings.HasPrefix(name, prefix), name)

		marker := strings.TrimPrefix(name, prefix)
		assert.NotEmpty(t, marker)
		assert.LessOrEqual(t, utf8.RuneCountInString(marker), 3)
	})

	t.Run("marker is shared across people", func(t *testing.T) {
		a := strings.TrimPrefix(s.GeneratePersonalName(NewPersonalContext(1).WithParent("Aldric")), s.GenerateSimpleName(1))
		b := strings.TrimPrefix(s.GeneratePersonalName(NewPersonalContext(2).WithParent("Aldric")), s.GenerateSimpleName(2))
		assert.Equal(t, a, b)
	})

	t.Run("without parent", func(t *testing.T) {
		assert.Equal(t, given, s.GeneratePersonalName(NewPersonalContext(7)))
	})
}

func TestPatronymic_Concatenated(t *testing.T) {
	s := newTestSystem(t, culture.NeutralProfile(), culture.Plains, 31)
	s.Pattern = Patronymic

	name := s.GeneratePersonalName(NewPersonalContext(3).WithParent("Aldric"))
	assert.True(t, strings.HasPrefix(name, s.GenerateSimpleName(3)+" Aldric"), name)
	assert.NotContains(t, name, "-")
}

func TestGeneratePersonalName_Compound(t *testing.T) {
	s := newTestSystem(t, culture.NewProfile(3, 4.5, 3, 3, 3, 3), culture.Coastal, 99)
	require.Equal(t, Compound, s.Pattern)
	require.Equal(t, morphology.Genitive, s.CombiningRule)

	for id := uint64(1); id <= 20; id++ {
		name := s.GeneratePersonalName(NewPersonalContext(id))
		parts := strings.Count(name, " of ") + 1
		assert.GreaterOrEqual(t, parts, 2, name)
		assert.LessOrEqual(t, parts, 3, name)
		assert.True(t, startsUpper(name), name)
	}
}

func TestGeneratePersonalName_Elaborate(t *testing.T) {
	s := newTestSystem(t, culture.NewProfile(3, 3, 3, 3, 1.5, 3), culture.Forest, 64)
	require.Equal(t, Elaborate, s.Pattern)

	var sawOrdinal, sawGeographic bool
	for id := uint64(1); id <= 40; id++ {
		name := s.GeneratePersonalName(NewPersonalContext(id))
		given := s.GenerateSimpleName(id)

		title, rest, found := strings.Cut(name, " "+given+" ")
		require.True(t, found, name)
		assert.True(t, startsUpper(title), name)

		switch {
		case strings.HasPrefix(rest, "of the "):
			sawGeographic = true
		case strings.HasPrefix(rest, "the "):
			assert.Contains(t, ordinals, strings.TrimPrefix(rest, "the "))
			sawOrdinal = true
		default:
			t.Errorf("unexpected lineage %q in %q", rest, name)
		}
	}
	assert.True(t, sawOrdinal)
	assert.True(t, sawGeographic)
}

func TestGeneratePersonalName_Descriptive(t *testing.T) {
	s := newTestSystem(t, culture.NewProfile(3, 3, 3, 4.5, 3, 3), culture.Desert, 8)
	require.Equal(t, Descriptive, s.Pattern)

	given := s.GenerateSimpleName(4)
	name := s.GeneratePersonalName(NewPersonalContext(4))
	require.True(t, strings.HasPrefix(name, given+" "), name)
	assert.True(t, startsUpper(strings.TrimPrefix(name, given+" ")))

	s.CombiningRule = morphology.Hyphenated
	name = s.GeneratePersonalName(NewPersonalContext(4))
	assert.True(t, strings.HasPrefix(name, given+"-"), name)
}

func TestGeneratePersonalName_KnownOutputs(t *testing.T) {
	tests := []struct {
		name    string
		profile culture.Profile
		geo     culture.Geography
		seed    uint64
		pattern NamePattern
		first   string
		second  string
	}{
		{"simple", culture.NeutralProfile(), culture.Mountains, 1, Simple, "Li", "Hhuk"},
		{"patronymic forest", culture.NewProfile(3, 3, 4.5, 3, 3, 3), culture.Forest, 12345, Patronymic, "Sumal", "Lurnun Ragnar-Sil"},
		{"patronymic coastal", culture.NewProfile(3, 3, 4.5, 3, 3, 3), culture.Coastal, 42, Patronymic, "Kaapillah", "Navuki Ragnar-Rai"},
		{"compound forest", culture.NewProfile(3, 5, 3, 3, 3, 3), culture.Forest, 12345, Compound, "Orp of Sətppsinŋhu", "Kufaplku of ŋathfu of hfol"},
		{"compound coastal", culture.NewProfile(3, 5, 3, 3, 3, 3), culture.Coastal, 42, Compound, "Fuiokmvau of onlrətpull of ləliro", "Khireps of Mupumra"},
		{"elaborate forest", culture.NewProfile(3, 3, 3, 3, 2, 3), culture.Forest, 12345, Elaborate, "Tipku Sumalha the Third", "Rirup Lurnunsik the Second"},
		{"elaborate coastal", culture.NewProfile(3, 3, 3, 3, 2, 3), culture.Coastal, 42, Elaborate, "Huffiulil Kaapillahkia of the Mumulua", "Huula Navukinu the Second"},
		{"descriptive forest", culture.NewProfile(3, 3, 3, 5, 3, 3), culture.Forest, 12345, Descriptive, "Sumal Suttasa", "Lurnun Tulri"},
		{"descriptive coastal", culture.NewProfile(3, 3, 3, 5, 3, 3), culture.Coastal, 42, Descriptive, "Kaapillah Karmukaa", "Navuki Munui"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestSystem(t, tt.profile, tt.geo, tt.seed)
			require.Equal(t, tt.pattern, s.Pattern)

			assert.Equal(t, tt.first, s.GeneratePersonalName(NewPersonalContext(1)))
			assert.Equal(t, tt.second, s.GeneratePersonalName(NewPersonalContext(7).WithParent("Ragnar")))
		})
	}
}
