package phonology

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func testInventory() Inventory {
	return Inventory{
		Stops:           []Consonant{"p", "t", "k"},
		Fricatives:      []Consonant{"s"},
		Nasals:          []Consonant{"m", "n"},
		Liquids:         nil,
		Glides:          []Consonant{},
		Vowels:          []Vowel{"a", "i", "u"},
		CategoryWeights: [NumCategories]float32{0.3, 0.25, 0.15, 0.15, 0.1},
	}
}

func TestInventory_AvailableCategories(t *testing.T) {
	inv := testInventory()
	assert.Equal(t, []Category{Stops, Fricatives, Nasals}, inv.AvailableCategories())

	empty := Inventory{}
	assert.Empty(t, empty.AvailableCategories())
}

func TestInventory_AllConsonants(t *testing.T) {
	inv := testInventory()
	assert.Equal(t, []Consonant{"p", "t", "k", "s", "m", "n"}, inv.AllConsonants())
}

func TestInventory_Category(t *testing.T) {
	inv := testInventory()
	assert.Equal(t, inv.Nasals, inv.Category(Nasals))
	assert.Nil(t, inv.Category(Category(9)))
}

func TestSyllableStructure_Pattern(t *testing.T) {
	tests := []struct {
		s    SyllableStructure
		want string
	}{
		{V, "V"},
		{CV, "CV"},
		{VC, "VC"},
		{CVC, "CVC"},
		{CCV, "CCV"},
		{VCC, "VCC"},
		{CCVC, "CCVC"},
		{CVCC, "CVCC"},
		{CVV, "CVV"},
		{SyllableStructure(42), ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.s.Pattern())
	}
}

func TestCategoryAndStressNames(t *testing.T) {
	assert.Equal(t, "fricatives", Fricatives.String())
	assert.Equal(t, "unknown", Category(-1).String())
	assert.Equal(t, "none", DefaultProsody().Stress.String())
	assert.Equal(t, "penultimate", Penultimate.String())
}
