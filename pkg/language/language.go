// Package language is the entry point for generating and using a constructed
// language.
package language

import (
	"fmt"
	"slices"
	"strings"
	"sync"

	"golang.org/x/text/cases"
	textlang "golang.org/x/text/language"

	"github.com/ersonp/phyla/pkg/culture"
	"github.com/ersonp/phyla/pkg/genome"
	"github.com/ersonp/phyla/pkg/naming"
	"github.com/ersonp/phyla/pkg/wordgen"
)

// Language bundles a genome with its naming system and a translation cache.
// It is safe for concurrent use.
type Language struct {
	id        string
	genome    *genome.Genome
	culture   culture.Profile
	geography culture.Geography
	naming    *naming.System

	cache   map[string]string
	cacheMu sync.RWMutex
}

// New generates a language from a culture, a geography and a seed.
func New(c culture.Profile, geo culture.Geography, seed uint64) *Language {
	return FromGenome(genome.FromCulture(c, geo, seed), c, geo)
}

// FromGenome wraps an existing genome. The culture and geography should be
// the ones the genome was built from.
func FromGenome(g *genome.Genome, c culture.Profile, geo culture.Geography) *Language {
	return &Language{
		id:        fmt.Sprintf("lang_%d", g.Seed),
		genome:    g,
		culture:   c,
		geography: geo,
		naming:    naming.NewSystem(g, c, geo),
		cache:     make(map[string]string),
	}
}

// ID returns "lang_<seed>".
func (l *Language) ID() string { return l.id }

// Genome returns the language's genome. It must not be modified.
func (l *Language) Genome() *genome.Genome { return l.genome }

// Culture returns the profile the language was built from.
func (l *Language) Culture() culture.Profile { return l.culture }

// Geography returns the geography the language was built from.
func (l *Language) Geography() culture.Geography { return l.geography }

// Naming returns the naming system.
func (l *Language) Naming() *naming.System { return l.naming }

// WordOrder returns the basic clause order.
func (l *Language) WordOrder() genome.WordOrder { return l.genome.WordOrder }

// TranslateWord returns the word for concept. Concepts are case-insensitive
// under full Unicode lowercasing, so "ΟΔΟΣ" and "οδος" share a word.
// Repeated calls return the cached word.
func (l *Language) TranslateWord(concept string) string {
	key := foldConcept(concept)

	l.cacheMu.RLock()
	word, ok := l.cache[key]
	l.cacheMu.RUnlock()
	if ok {
		return word
	}

	word = wordgen.GenerateWord(l.genome, key)

	l.cacheMu.Lock()
	defer l.cacheMu.Unlock()
	// Another goroutine may have stored the same deterministic word first.
	if cached, ok := l.cache[key]; ok {
		return cached
	}
	l.cache[key] = word
	return word
}

// foldConcept lowercases concept, mapping a word-final capital sigma to ς.
// A Caser is stateful, so each call builds its own.
func foldConcept(concept string) string {
	return cases.Lower(textlang.Und).String(concept)
}

// TranslatePhrase translates each whitespace-separated token and reorders the
// first three as subject, verb and object according to the word order.
func (l *Language) TranslatePhrase(phrase string) string {
	tokens := strings.Fields(phrase)
	words := make([]string, len(tokens))
	for i, token := range tokens {
		words[i] = l.TranslateWord(token)
	}
	return strings.Join(ApplyWordOrder(l.genome.WordOrder, words), " ")
}

// ClearCache discards every cached translation.
func (l *Language) ClearCache() {
	l.cacheMu.Lock()
	l.cache = make(map[string]string)
	l.cacheMu.Unlock()
}

// CacheSize returns the number of cached translations.
func (l *Language) CacheSize() int {
	l.cacheMu.RLock()
	defer l.cacheMu.RUnlock()
	return len(l.cache)
}

// ApplyWordOrder reorders the first three words, read as subject, verb and
// object, into order. Under VOS and OVS the subject is removed and appended
// after any trailing words, so both yield verb, object, trailing words,
// subject. OSV leaves the phrase unchanged. Fewer than three words are
// returned unchanged. The input slice is not modified.
func ApplyWordOrder(order genome.WordOrder, words []string) []string {
	out := slices.Clone(words)
	if len(out) < 3 {
		return out
	}

	s, v, o := out[0], out[1], out[2]
	switch order {
	case genome.SOV:
		out[1], out[2] = o, v
	case genome.VSO:
		out[0], out[1] = v, s
	case genome.VOS:
		out = append(append([]string{v}, out[2:]...), s)
	case genome.OVS:
		out = append(out[1:], s)
	case genome.OSV:
		// unchanged
	}
	return out
}
