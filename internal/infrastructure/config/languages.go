package config

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/ersonp/phyla/pkg/culture"
	"github.com/ersonp/phyla/pkg/language"
)

// Trait scores accepted in configuration. The generator itself clamps.
const (
	MinTrait = 1.0
	MaxTrait = 5.0
)

// suggestDistance is the largest edit distance offered as "did you mean".
const suggestDistance = 2

// LanguageConfig defines a named language.
type LanguageConfig struct {
	Description string          `yaml:"description,omitempty"`
	Seed        uint64          `yaml:"seed"`
	Geography   string          `yaml:"geography"`
	Culture     culture.Profile `yaml:"culture"`
}

// GeographyTag parses the configured geography.
func (l LanguageConfig) GeographyTag() (culture.Geography, error) {
	return culture.ParseGeography(l.Geography)
}

// Profile returns the cultural profile.
func (l LanguageConfig) Profile() culture.Profile {
	return l.Culture
}

// Validate rejects unknown geographies and out-of-range or NaN trait scores.
func (l LanguageConfig) Validate() error {
	if _, err := l.GeographyTag(); err != nil {
		return err
	}

	traits := []struct {
		name  string
		value float32
	}{
		{"agreeableness", l.Culture.Agreeableness},
		{"openness", l.Culture.Openness},
		{"conscientiousness", l.Culture.Conscientiousness},
		{"extraversion", l.Culture.Extraversion},
		{"honesty_humility", l.Culture.HonestyHumility},
		{"emotionality", l.Culture.Emotionality},
	}
	for _, t := range traits {
		if math.IsNaN(float64(t.value)) || t.value < MinTrait || t.value > MaxTrait {
			return fmt.Errorf("%s must be between %.0f and %.0f, got %g", t.name, MinTrait, MaxTrait, t.value)
		}
	}
	return nil
}

// Build generates the language.
func (l LanguageConfig) Build() (*language.Language, error) {
	geo, err := l.GeographyTag()
	if err != nil {
		return nil, err
	}
	return language.New(l.Culture, geo, l.Seed), nil
}

// AddLanguage adds or replaces a language.
func (c *Config) AddLanguage(name string, lang LanguageConfig) {
	if c.Languages == nil {
		c.Languages = make(map[string]LanguageConfig)
	}
	c.Languages[name] = lang
}

// RemoveLanguage removes a language.
func (c *Config) RemoveLanguage(name string) {
	delete(c.Languages, name)
}

// HasLanguage reports whether a language is configured.
func (c *Config) HasLanguage(name string) bool {
	_, ok := c.Languages[name]
	return ok
}

// LanguageNames returns the configured names in sorted order.
func (c *Config) LanguageNames() []string {
	names := make([]string, 0, len(c.Languages))
	for name := range c.Languages {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Language returns the named language config. Unknown names produce an error
// that suggests the closest configured name.
func (c *Config) Language(name string) (*LanguageConfig, error) {
	if len(c.Languages) == 0 {
		return nil, errors.New("no languages configured (run 'phyla languages create')")
	}

	lang, ok := c.Languages[name]
	if ok {
		return &lang, nil
	}

	names := c.LanguageNames()
	if suggestion := closestName(name, names); suggestion != "" {
		return nil, fmt.Errorf("language %q not found (did you mean %q?)", name, suggestion)
	}

	shown := names
	if len(shown) > 5 {
		shown = append(shown[:5:5], "...")
	}
	return nil, fmt.Errorf("language %q not found (available: %s)", name, strings.Join(shown, ", "))
}

func closestName(name string, candidates []string) string {
	best, bestDist := "", suggestDistance+1
	for _, candidate := range candidates {
		d := levenshtein.ComputeDistance(strings.ToLower(name), strings.ToLower(candidate))
		if d < bestDist {
			best, bestDist = candidate, d
		}
	}
	return best
}
