// Package culture models the personality profile and geography that seed a
// language.
package culture

import (
	"fmt"
	"strings"
)

// Profile holds six HEXACO-style trait scores on a nominal 1..5 scale.
// Scores outside that range are clamped when normalized.
type Profile struct {
	Agreeableness     float32 `yaml:"agreeableness" json:"agreeableness"`
	Openness          float32 `yaml:"openness" json:"openness"`
	Conscientiousness float32 `yaml:"conscientiousness" json:"conscientiousness"`
	Extraversion      float32 `yaml:"extraversion" json:"extraversion"`
	HonestyHumility   float32 `yaml:"honesty_humility" json:"honesty_humility"`
	Emotionality      float32 `yaml:"emotionality" json:"emotionality"`
}

// NewProfile builds a profile from the six raw scores.
func NewProfile(agreeableness, openness, conscientiousness, extraversion, honestyHumility, emotionality float32) Profile {
	return Profile{
		Agreeableness:     agreeableness,
		Openness:          openness,
		Conscientiousness: conscientiousness,
		Extraversion:      extraversion,
		HonestyHumility:   honestyHumility,
		Emotionality:      emotionality,
	}
}

// NeutralProfile returns a profile with every trait at the midpoint.
func NeutralProfile() Profile {
	return NewProfile(3, 3, 3, 3, 3, 3)
}

// NormalizedAgreeableness maps agreeableness onto [0, 1].
func (p Profile) NormalizedAgreeableness() float32 { return normalize(p.Agreeableness) }

// NormalizedOpenness maps openness onto [0, 1].
func (p Profile) NormalizedOpenness() float32 { return normalize(p.Openness) }

// NormalizedConscientiousness maps conscientiousness onto [0, 1].
func (p Profile) NormalizedConscientiousness() float32 { return normalize(p.Conscientiousness) }

// NormalizedExtraversion maps extraversion onto [0, 1].
func (p Profile) NormalizedExtraversion() float32 { return normalize(p.Extraversion) }

// NormalizedEmotionality maps emotionality onto [0, 1].
func (p Profile) NormalizedEmotionality() float32 { return normalize(p.Emotionality) }

func normalize(score float32) float32 {
	if score < 1 {
		score = 1
	} else if score > 5 {
		score = 5
	}
	return (score - 1) / 4
}

// Geography is the dominant terrain of a culture.
type Geography int

// Geography values.
const (
	Mountains Geography = iota
	Coastal
	Desert
	Forest
	Plains
	RiverValley
)

var geographyNames = [...]string{
	Mountains:   "mountains",
	Coastal:     "coastal",
	Desert:      "desert",
	Forest:      "forest",
	Plains:      "plains",
	RiverValley: "river_valley",
}

// AllGeographies returns every geography in declaration order.
func AllGeographies() []Geography {
	return []Geography{Mountains, Coastal, Desert, Forest, Plains, RiverValley}
}

func (g Geography) String() string {
	if g < 0 || int(g) >= len(geographyNames) {
		return fmt.Sprintf("geography(%d)", int(g))
	}
	return geographyNames[g]
}

// ParseGeography accepts the snake_case name of a geography. Case, spaces and
// hyphens are tolerated so "River Valley" and "river-valley" both parse.
func ParseGeography(s string) (Geography, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	key = strings.NewReplacer(" ", "_", "-", "_").Replace(key)
	if key == "rivervalley" {
		key = "river_valley"
	}
	for i, name := range geographyNames {
		if name == key {
			return Geography(i), nil
		}
	}
	return 0, fmt.Errorf("unknown geography %q", s)
}
