package naming

import (
	"fmt"

	"github.com/ersonp/phyla/pkg/culture"
	"github.com/ersonp/phyla/pkg/morphology"
	"github.com/ersonp/phyla/pkg/rng"
	"github.com/ersonp/phyla/pkg/wordgen"
)

// PlaceType is the kind of place being named.
type PlaceType int

// Place types.
const (
	Settlement PlaceType = iota
	Natural
	Landmark
	Region
)

var placeTypeNames = [...]string{"settlement", "natural", "landmark", "region"}

func (p PlaceType) String() string {
	if p < 0 || int(p) >= len(placeTypeNames) {
		return fmt.Sprintf("place(%d)", int(p))
	}
	return placeTypeNames[p]
}

// ParsePlaceType accepts a lowercase place type name.
func ParsePlaceType(s string) (PlaceType, error) {
	for i, name := range placeTypeNames {
		if name == s {
			return PlaceType(i), nil
		}
	}
	return 0, fmt.Errorf("unknown place type %q", s)
}

// PlaceContext identifies the place being named. A nil LocalGeography means
// the language's own geography applies; empty strings mean the hint is absent.
type PlaceContext struct {
	PlaceID         uint64
	PlaceType       PlaceType
	LocalGeography  *culture.Geography
	FounderName     string
	HistoricalEvent string
}

// NewPlaceContext returns a context with no hints.
func NewPlaceContext(placeID uint64, placeType PlaceType) PlaceContext {
	return PlaceContext{PlaceID: placeID, PlaceType: placeType}
}

// WithGeography returns a copy of c with a local geography.
func (c PlaceContext) WithGeography(geo culture.Geography) PlaceContext {
	c.LocalGeography = &geo
	return c
}

// WithFounder returns a copy of c with a founder's name.
func (c PlaceContext) WithFounder(name string) PlaceContext {
	c.FounderName = name
	return c
}

// WithEvent returns a copy of c with a historical event.
func (c PlaceContext) WithEvent(event string) PlaceContext {
	c.HistoricalEvent = event
	return c
}

type placeStrategy int

const (
	descriptivePlace placeStrategy = iota
	founderPlace
	historicalPlace
	mythopoeticPlace
)

var (
	qualityTypes = []morphology.MorphemeType{
		morphology.Great, morphology.Ancient, morphology.Dark, morphology.Bright,
		morphology.Cold, morphology.Warm, morphology.Strong,
	}
	mythicTypes = []morphology.MorphemeType{
		morphology.Spirit, morphology.Fate, morphology.Star, morphology.Moon, morphology.Storm, morphology.Power,
	}
	mythicFeatureTypes = []morphology.MorphemeType{
		morphology.Mountain, morphology.Sky, morphology.Sea, morphology.Forest,
	}
)

// GeneratePlaceName names a place.
func (s *System) GeneratePlaceName(ctx PlaceContext) string {
	r := rng.New(ctx.PlaceID ^ s.Genome.Seed)

	switch s.placeStrategy(ctx, r) {
	case founderPlace:
		return s.founderPlaceName(ctx, r)
	case historicalPlace:
		return s.historicalPlaceName(ctx, r)
	case mythopoeticPlace:
		return s.mythopoeticPlaceName(r)
	default:
		return s.descriptivePlaceName(ctx, r)
	}
}

func (s *System) placeStrategy(ctx PlaceContext, r *rng.Rng) placeStrategy {
	if s.Culture.NormalizedOpenness() > 0.7 {
		return mythopoeticPlace
	}
	if s.Culture.NormalizedConscientiousness() > 0.7 {
		return descriptivePlace
	}
	if ctx.FounderName != "" && r.Next() < 0.4 {
		return founderPlace
	}
	if ctx.HistoricalEvent != "" && r.Next() < 0.3 {
		return historicalPlace
	}
	return descriptivePlace
}

func (s *System) descriptivePlaceName(ctx PlaceContext, r *rng.Rng) string {
	geo := s.Geography
	if ctx.LocalGeography != nil {
		geo = *ctx.LocalGeography
	}

	feature := s.formOrFallback(featureTypes(ctx.PlaceType, geo), r)
	quality := s.formOrFallback(qualityTypes, r)

	return capitalizeName(s.CombiningRule.Combine(quality, feature))
}

func featureTypes(placeType PlaceType, geo culture.Geography) []morphology.MorphemeType {
	switch placeType {
	case Natural:
		switch geo {
		case culture.Mountains:
			return []morphology.MorphemeType{morphology.Mountain, morphology.Stone, morphology.Sky, morphology.Cold}
		case culture.Coastal:
			return []morphology.MorphemeType{morphology.Sea, morphology.Water, morphology.Storm}
		case culture.Desert:
			return []morphology.MorphemeType{morphology.Sun, morphology.Stone, morphology.Fire}
		case culture.Forest:
			return []morphology.MorphemeType{morphology.Forest, morphology.Earth, morphology.Life}
		default:
			return []morphology.MorphemeType{morphology.River, morphology.Sky, morphology.Earth}
		}
	case Landmark:
		return []morphology.MorphemeType{morphology.Stone, morphology.Power, morphology.Protect}
	case Region:
		return []morphology.MorphemeType{morphology.Earth, morphology.Sky, morphology.Great}
	default:
		return []morphology.MorphemeType{morphology.River, morphology.Forest, morphology.Mountain, morphology.Stone}
	}
}

func (s *System) founderPlaceName(ctx PlaceContext, r *rng.Rng) string {
	founder := ctx.FounderName

	switch r.Range(0, 3) {
	case 0:
		concept := "land"
		switch ctx.PlaceType {
		case Settlement:
			concept = "town"
		case Landmark:
			concept = "hold"
		}
		return founder + wordgen.GenerateWord(s.Genome, concept)
	case 1:
		feature := "Realm"
		switch ctx.PlaceType {
		case Settlement:
			feature = "Rest"
		case Landmark:
			feature = "Tower"
		case Natural:
			feature = "Vale"
		}
		return founder + "'s " + feature
	default:
		return "New " + founder
	}
}

func (s *System) historicalPlaceName(ctx PlaceContext, r *rng.Rng) string {
	eventWord := wordgen.GenerateWord(s.Genome, ctx.HistoricalEvent)
	// Historical names ignore any local geography.
	feature := s.formOrFallback(featureTypes(ctx.PlaceType, s.Geography), r)
	return capitalizeName(s.CombiningRule.Combine(eventWord, feature))
}

func (s *System) mythopoeticPlaceName(r *rng.Rng) string {
	mythic := "mystic"
	if m, ok := s.Morphemes.SelectFromTypes(mythicTypes, r); ok {
		mythic = m.Form
	}

	feature := "place"
	if m, ok := s.Morphemes.SelectFromTypes(mythicFeatureTypes, r); ok {
		feature = m.Form
	}

	return capitalizeName(s.CombiningRule.Combine(mythic, feature))
}
