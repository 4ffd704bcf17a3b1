package naming

import (
	"fmt"
	"strings"

	"github.com/ersonp/phyla/pkg/morphology"
	"github.com/ersonp/phyla/pkg/rng"
	"github.com/ersonp/phyla/pkg/wordgen"
)

// Characteristic is a defining trait that can earn an epithet. The zero value
// means no characteristic.
type Characteristic int

// Characteristics, grouped as physical, mental, moral and social.
const (
	Tall Characteristic = iota + 1
	Short
	Strong
	Swift

	Wise
	Cunning
	Mad

	Honest
	Brave
	Cruel
	Just

	Silent
	Loud
	Beloved
	Feared
)

var characteristicNames = map[Characteristic]string{
	Tall: "tall", Short: "short", Strong: "strong", Swift: "swift",
	Wise: "wise", Cunning: "cunning", Mad: "mad",
	Honest: "honest", Brave: "brave", Cruel: "cruel", Just: "just",
	Silent: "silent", Loud: "loud", Beloved: "beloved", Feared: "feared",
}

var characteristicMorphemes = map[Characteristic][]morphology.MorphemeType{
	Tall:    {morphology.Great, morphology.Sky},
	Short:   {morphology.Small},
	Strong:  {morphology.Strong, morphology.Power},
	Swift:   {morphology.Swift, morphology.Air},
	Wise:    {morphology.Wise, morphology.Ancient},
	Cunning: {morphology.Wise, morphology.Dark},
	Mad:     {morphology.Storm, morphology.Dark},
	Honest:  {morphology.Truth, morphology.Bright},
	Brave:   {morphology.Brave, morphology.Courage},
	Cruel:   {morphology.Dark, morphology.Destroy},
	Just:    {morphology.Justice, morphology.Truth},
	Silent:  {morphology.Dark, morphology.Spirit},
	Loud:    {morphology.Storm, morphology.Strike},
	Beloved: {morphology.Love, morphology.Hope},
	Feared:  {morphology.Dark, morphology.Power},
}

func (c Characteristic) String() string {
	if name, ok := characteristicNames[c]; ok {
		return name
	}
	return fmt.Sprintf("characteristic(%d)", int(c))
}

// MorphemeTypes returns the meanings an epithet for c may draw on.
func (c Characteristic) MorphemeTypes() []morphology.MorphemeType {
	return characteristicMorphemes[c]
}

// Characteristics returns every characteristic in declaration order.
func Characteristics() []Characteristic {
	out := make([]Characteristic, 0, len(characteristicNames))
	for c := Tall; c <= Feared; c++ {
		out = append(out, c)
	}
	return out
}

// ParseCharacteristic looks up a characteristic by name.
func ParseCharacteristic(s string) (Characteristic, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	for _, c := range Characteristics() {
		if characteristicNames[c] == key {
			return c, nil
		}
	}
	return 0, fmt.Errorf("unknown characteristic %q", s)
}

// EpithetContext identifies the entity receiving an epithet. Empty strings
// and the zero Characteristic mean the hint is absent.
type EpithetContext struct {
	EntityID       uint64
	BirthEvent     string
	Achievement    string
	Characteristic Characteristic
}

// NewEpithetContext returns a context with no hints.
func NewEpithetContext(entityID uint64) EpithetContext {
	return EpithetContext{EntityID: entityID}
}

// WithBirthEvent returns a copy of c with the circumstance of birth set.
func (c EpithetContext) WithBirthEvent(event string) EpithetContext {
	c.BirthEvent = event
	return c
}

// WithAchievement returns a copy of c with a notable deed set.
func (c EpithetContext) WithAchievement(achievement string) EpithetContext {
	c.Achievement = achievement
	return c
}

// WithCharacteristic returns a copy of c with a defining trait set.
func (c EpithetContext) WithCharacteristic(ch Characteristic) EpithetContext {
	c.Characteristic = ch
	return c
}

var (
	actionTypes = []morphology.MorphemeType{morphology.Strike, morphology.Destroy, morphology.Protect}
	birthTypes  = []morphology.MorphemeType{morphology.Life, morphology.Young}
)

// GenerateEpithet returns an epithet, or ok=false when the culture declines
// to give one or the context carries no hint. Normalized openness is the
// probability an epithet is given at all.
func (s *System) GenerateEpithet(ctx EpithetContext) (epithet string, ok bool) {
	r := rng.New(ctx.EntityID ^ s.Genome.Seed)

	openness := s.Culture.NormalizedOpenness()
	if openness <= 0 || float32(r.Next()) > openness {
		return "", false
	}

	switch {
	case ctx.Achievement != "":
		return s.achievementEpithet(ctx.Achievement, r), true
	case ctx.BirthEvent != "":
		return s.birthEpithet(ctx.BirthEvent, r), true
	case ctx.Characteristic != 0:
		return s.characteristicEpithet(ctx.Characteristic, r), true
	default:
		return "", false
	}
}

// GenerateNameWithEpithet appends an epithet to base when one is given.
func (s *System) GenerateNameWithEpithet(base string, ctx EpithetContext) string {
	if epithet, ok := s.GenerateEpithet(ctx); ok {
		return base + " " + epithet
	}
	return base
}

func (s *System) achievementEpithet(achievement string, r *rng.Rng) string {
	word := capitalizeFirst(wordgen.GenerateWord(s.Genome, achievement))

	if r.Next() < 0.5 {
		return "the " + word
	}
	if action, ok := s.Morphemes.SelectFromTypes(actionTypes, r); ok {
		return word + action.Form
	}
	return "the " + word
}

func (s *System) birthEpithet(event string, r *rng.Rng) string {
	word := wordgen.GenerateWord(s.Genome, event)

	if born, ok := s.Morphemes.SelectFromTypes(birthTypes, r); ok {
		return capitalizeName(s.CombiningRule.Combine(word, born.Form))
	}
	return capitalizeFirst(word) + "-Born"
}

func (s *System) characteristicEpithet(ch Characteristic, r *rng.Rng) string {
	if m, ok := s.Morphemes.SelectFromTypes(ch.MorphemeTypes(), r); ok {
		return "the " + capitalizeFirst(m.Form)
	}
	return "the Elder"
}
