package naming

import (
	"github.com/ersonp/phyla/pkg/morphology"
	"github.com/ersonp/phyla/pkg/rng"
)

// patronymicSalt seeds the shared patronymic marker ("PATRONYM").
const patronymicSalt uint64 = 0x504154524F4E594D

// markerLength is the number of code points kept from the marker word.
const markerLength = 3

var ordinals = []string{"First", "Second", "Third", "Fourth", "Fifth"}

var (
	titleTypes          = []morphology.MorphemeType{morphology.Power, morphology.Great, morphology.Strong, morphology.Wise}
	lineageTypes        = []morphology.MorphemeType{morphology.Mountain, morphology.Sea, morphology.Forest, morphology.River}
	characteristicTypes = []morphology.MorphemeType{
		morphology.Strong, morphology.Wise, morphology.Swift, morphology.Brave,
		morphology.Gentle, morphology.Dark, morphology.Bright,
	}
)

// PersonalContext identifies the person being named. Hints are optional; an
// empty ParentName means no parent is known.
type PersonalContext struct {
	EntityID   uint64
	ParentName string
	BirthOrder int
}

// NewPersonalContext returns a context with no hints.
func NewPersonalContext(entityID uint64) PersonalContext {
	return PersonalContext{EntityID: entityID}
}

// WithParent returns a copy of c with the parent's name set.
func (c PersonalContext) WithParent(name string) PersonalContext {
	c.ParentName = name
	return c
}

// WithBirthOrder returns a copy of c with a 1-based birth order.
func (c PersonalContext) WithBirthOrder(order int) PersonalContext {
	c.BirthOrder = order
	return c
}

// GeneratePersonalName names a person according to the system's pattern.
func (s *System) GeneratePersonalName(ctx PersonalContext) string {
	switch s.Pattern {
	case Patronymic:
		return s.patronymicName(ctx)
	case Compound:
		r := rng.New(ctx.EntityID ^ s.Genome.Seed)
		return s.GenerateCompoundName(ctx.EntityID, 2+r.Range(0, 2))
	case Elaborate:
		return s.elaborateName(ctx)
	case Descriptive:
		return s.descriptiveName(ctx)
	default:
		return s.GenerateSimpleName(ctx.EntityID)
	}
}

func (s *System) patronymicName(ctx PersonalContext) string {
	given := s.GenerateSimpleName(ctx.EntityID)
	if ctx.ParentName == "" {
		return given
	}
	return given + " " + s.patronymic(ctx.ParentName)
}

func (s *System) patronymic(parent string) string {
	marker := []rune(s.GenerateSimpleName(s.Genome.Seed ^ patronymicSalt))
	if len(marker) > markerLength {
		marker = marker[:markerLength]
	}

	if s.Culture.NormalizedConscientiousness() > 0.6 {
		return parent + "-" + string(marker)
	}
	return parent + string(marker)
}

func (s *System) elaborateName(ctx PersonalContext) string {
	r := rng.New(ctx.EntityID ^ s.Genome.Seed)

	title := capitalizeFirst(s.formOrFallback(titleTypes, r))
	given := s.GenerateSimpleName(ctx.EntityID)
	lineage := s.lineage(r)

	return title + " " + given + " " + lineage
}

func (s *System) lineage(r *rng.Rng) string {
	if r.Next() < 0.5 {
		return "the " + ordinals[r.Range(0, len(ordinals))]
	}

	if m, ok := s.Morphemes.SelectFromTypes(lineageTypes, r); ok {
		return "of the " + capitalizeFirst(m.Form)
	}
	return "the Elder"
}

func (s *System) descriptiveName(ctx PersonalContext) string {
	r := rng.New(ctx.EntityID ^ s.Genome.Seed)

	given := s.GenerateSimpleName(ctx.EntityID)
	characteristic := capitalizeFirst(s.formOrFallback(characteristicTypes, r))

	if s.CombiningRule == morphology.Hyphenated {
		return given + "-" + characteristic
	}
	return given + " " + characteristic
}
