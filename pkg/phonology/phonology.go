// Package phonology describes the sound inventory and syllable shapes of a
// language.
package phonology

// Consonant is a consonant phoneme written as an IPA string. A phoneme may
// span several code points, e.g. the ejective "kʼ".
type Consonant string

// Vowel is a vowel phoneme written as an IPA string.
type Vowel string

// Category groups consonants by manner of articulation.
type Category int

// Consonant categories, in the fixed order used for weighted selection.
const (
	Stops Category = iota
	Fricatives
	Nasals
	Liquids
	Glides
)

// NumCategories is the number of consonant categories.
const NumCategories = 5

var categoryNames = [NumCategories]string{"stops", "fricatives", "nasals", "liquids", "glides"}

func (c Category) String() string {
	if c < 0 || int(c) >= NumCategories {
		return "unknown"
	}
	return categoryNames[c]
}

// Categories returns every category in selection order.
func Categories() []Category {
	return []Category{Stops, Fricatives, Nasals, Liquids, Glides}
}

// Inventory is the set of phonemes a language may use. CategoryWeights is
// indexed by Category.
type Inventory struct {
	Stops           []Consonant
	Fricatives      []Consonant
	Nasals          []Consonant
	Liquids         []Consonant
	Glides          []Consonant
	Vowels          []Vowel
	CategoryWeights [NumCategories]float32
}

// Category returns the consonants in c.
func (inv *Inventory) Category(c Category) []Consonant {
	switch c {
	case Stops:
		return inv.Stops
	case Fricatives:
		return inv.Fricatives
	case Nasals:
		return inv.Nasals
	case Liquids:
		return inv.Liquids
	case Glides:
		return inv.Glides
	}
	return nil
}

// AvailableCategories returns the non-empty categories in selection order.
func (inv *Inventory) AvailableCategories() []Category {
	available := make([]Category, 0, NumCategories)
	for _, c := range Categories() {
		if len(inv.Category(c)) > 0 {
			available = append(available, c)
		}
	}
	return available
}

// AllConsonants returns every consonant, grouped by category.
func (inv *Inventory) AllConsonants() []Consonant {
	all := make([]Consonant, 0, len(inv.Stops)+len(inv.Fricatives)+len(inv.Nasals)+len(inv.Liquids)+len(inv.Glides))
	for _, c := range Categories() {
		all = append(all, inv.Category(c)...)
	}
	return all
}

// SyllableStructure is a syllable template over consonant (C) and vowel (V)
// slots.
type SyllableStructure int

// Syllable templates.
const (
	V SyllableStructure = iota
	CV
	VC
	CVC
	CCV
	VCC
	CCVC
	CVCC
	CVV
)

var syllablePatterns = [...]string{
	V:    "V",
	CV:   "CV",
	VC:   "VC",
	CVC:  "CVC",
	CCV:  "CCV",
	VCC:  "VCC",
	CCVC: "CCVC",
	CVCC: "CVCC",
	CVV:  "CVV",
}

// Pattern returns the slot sequence, e.g. "CCVC".
func (s SyllableStructure) Pattern() string {
	if s < 0 || int(s) >= len(syllablePatterns) {
		return ""
	}
	return syllablePatterns[s]
}

func (s SyllableStructure) String() string {
	return s.Pattern()
}

// StressPattern places primary stress within a word. The zero value means
// stress is not distinctive.
type StressPattern int

// Stress patterns.
const (
	NoStress StressPattern = iota
	Initial
	Final
	Penultimate
)

func (s StressPattern) String() string {
	switch s {
	case NoStress:
		return "none"
	case Initial:
		return "initial"
	case Final:
		return "final"
	case Penultimate:
		return "penultimate"
	}
	return "unknown"
}

// ProsodicSystem carries suprasegmental features. Generation does not read it
// yet.
type ProsodicSystem struct {
	Stress StressPattern
}

// DefaultProsody returns a system without distinctive stress.
func DefaultProsody() ProsodicSystem {
	return ProsodicSystem{Stress: NoStress}
}
