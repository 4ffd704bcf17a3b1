package morphology

import (
	"fmt"
	"strings"

	"github.com/ersonp/phyla/pkg/culture"
)

// MorphemeType is the meaning a morpheme carries.
type MorphemeType int

// Morpheme types, grouped by theme. The order is fixed and defines the
// iteration order of a Database.
const (
	// Elements and nature.
	Fire MorphemeType = iota
	Water
	Earth
	Air
	Stone
	Mountain
	River
	Forest
	Sea
	Sky
	Storm
	Sun
	Moon
	Star

	// Qualities.
	Great
	Small
	Ancient
	Young
	Strong
	Wise
	Swift
	Brave
	Gentle
	Dark
	Bright
	Cold
	Warm

	// Actions.
	Strike
	Protect
	Create
	Destroy
	Walk
	Fly
	Swim
	Speak
	See
	Hear

	// Virtues and social concepts.
	Honor
	Courage
	Peace
	War
	Love
	Hope
	Faith
	Truth
	Justice

	// Abstract concepts.
	Spirit
	Soul
	Heart
	Mind
	Power
	Life
	Death
	Time
	Fate

	numTypes
)

var typeNames = [numTypes]string{
	"fire", "water", "earth", "air", "stone", "mountain", "river", "forest", "sea", "sky", "storm", "sun", "moon", "star",
	"great", "small", "ancient", "young", "strong", "wise", "swift", "brave", "gentle", "dark", "bright", "cold", "warm",
	"strike", "protect", "create", "destroy", "walk", "fly", "swim", "speak", "see", "hear",
	"honor", "courage", "peace", "war", "love", "hope", "faith", "truth", "justice",
	"spirit", "soul", "heart", "mind", "power", "life", "death", "time", "fate",
}

// AllTypes returns every morpheme type in declaration order.
func AllTypes() []MorphemeType {
	types := make([]MorphemeType, numTypes)
	for i := range types {
		types[i] = MorphemeType(i)
	}
	return types
}

// String returns the lowercase key used as the concept for word generation.
func (t MorphemeType) String() string {
	if t < 0 || t >= numTypes {
		return fmt.Sprintf("morpheme(%d)", int(t))
	}
	return typeNames[t]
}

// ParseMorphemeType looks up a type by its lowercase key.
func ParseMorphemeType(s string) (MorphemeType, bool) {
	key := strings.ToLower(strings.TrimSpace(s))
	for i, name := range typeNames {
		if name == key {
			return MorphemeType(i), true
		}
	}
	return 0, false
}

// minWeight keeps every morpheme selectable.
const minWeight = 0.1

// CulturalWeight returns the selection weight of t for a culture. The result
// is never below 0.1.
func (t MorphemeType) CulturalWeight(geo culture.Geography, c culture.Profile) float32 {
	weight := float32(1.0)

	switch geo {
	case culture.Mountains:
		switch t {
		case Mountain, Stone, Sky:
			weight += 2.0
		case Strong, Cold:
			weight += 1.0
		}
	case culture.Coastal:
		switch t {
		case Sea, Water, Storm:
			weight += 2.0
		case Swim, Gentle:
			weight += 1.0
		}
	case culture.Desert:
		switch t {
		case Sun, Fire, Stone:
			weight += 2.0
		case Warm, Swift:
			weight += 1.0
		}
	case culture.Forest:
		switch t {
		case Forest, Earth, Life:
			weight += 2.0
		case Gentle, Wise:
			weight += 1.0
		}
	case culture.Plains, culture.RiverValley:
		switch t {
		case River, Sky, Walk:
			weight += 1.0
		}
	}

	if c.NormalizedOpenness() > 0.6 {
		switch t {
		case Spirit, Soul, Fate, Time, Mind:
			weight += 1.0
		}
	}

	agreeableness := c.NormalizedAgreeableness()
	if agreeableness > 0.6 {
		switch t {
		case Peace, Love, Hope, Gentle:
			weight += 1.0
		case War, Destroy, Strike:
			weight -= 0.5
		}
	} else if agreeableness < 0.4 {
		switch t {
		case War, Strike, Destroy, Power, Strong:
			weight += 1.0
		}
	}

	if c.NormalizedEmotionality() > 0.6 {
		switch t {
		case Heart, Love, Hope, Soul:
			weight += 1.0
		}
	}

	return max(weight, minWeight)
}
