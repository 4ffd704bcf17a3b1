// Package entities contains core domain data structures.
package entities

import (
	"fmt"
	"strings"
	"time"
)

// EntryKind is the category of a lexicon entry.
type EntryKind string

// Entry kinds.
const (
	KindWord         EntryKind = "word"
	KindPhrase       EntryKind = "phrase"
	KindPersonalName EntryKind = "personal_name"
	KindPlaceName    EntryKind = "place_name"
	KindEpithet      EntryKind = "epithet"
)

// AllKinds lists every entry kind.
var AllKinds = []EntryKind{KindWord, KindPhrase, KindPersonalName, KindPlaceName, KindEpithet}

// IsValid reports whether k is a known kind.
func (k EntryKind) IsValid() bool {
	for _, known := range AllKinds {
		if k == known {
			return true
		}
	}
	return false
}

// ParseEntryKind validates and normalizes a kind name.
func ParseEntryKind(s string) (EntryKind, error) {
	k := EntryKind(strings.ToLower(strings.TrimSpace(s)))
	if !k.IsValid() {
		return "", fmt.Errorf("invalid kind %q (valid: word, phrase, personal_name, place_name, epithet)", s)
	}
	return k, nil
}

// LexiconEntry is a generated form saved for a language. Gloss is the
// meaning: a concept for words and phrases, a stable key such as "person:7"
// for names.
type LexiconEntry struct {
	ID        string    `json:"id"`
	Language  string    `json:"language"`
	Kind      EntryKind `json:"kind"`
	Gloss     string    `json:"gloss"`
	Form      string    `json:"form"`
	Context   string    `json:"context,omitempty"`
	Embedding []float32 `json:"embedding,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NormalizeGloss lowercases and trims a gloss for matching.
func NormalizeGloss(gloss string) string {
	return strings.ToLower(strings.TrimSpace(gloss))
}

// EmbeddingText is the text embedded for semantic search.
func (e *LexiconEntry) EmbeddingText() string {
	if e.Context != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Kind, e.Gloss, e.Context)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Gloss)
}

// HomophonePair is two entries with different meanings whose forms are close.
type HomophonePair struct {
	First    LexiconEntry `json:"first"`
	Second   LexiconEntry `json:"second"`
	Distance int          `json:"distance"`
}
