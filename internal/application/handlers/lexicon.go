package handlers

import (
	"context"
	"errors"
	"fmt"

	"github.com/ersonp/phyla/internal/domain/entities"
	"github.com/ersonp/phyla/internal/domain/services"
	"github.com/ersonp/phyla/pkg/naming"
)

// LexiconHandler generates words and names and manages the saved lexicon.
type LexiconHandler struct {
	lexicon *services.LexiconService
}

// NewLexiconHandler creates a new lexicon handler.
func NewLexiconHandler(lexicon *services.LexiconService) *LexiconHandler {
	return &LexiconHandler{lexicon: lexicon}
}

// Saved reports whether generated entries are persisted.
func (h *LexiconHandler) Saved() bool {
	return h.lexicon.Persistent()
}

// Words translates each concept in order.
func (h *LexiconHandler) Words(ctx context.Context, lang services.NamedLanguage, concepts []string) ([]entities.LexiconEntry, error) {
	if len(concepts) == 0 {
		return nil, errors.New("at least one concept is required")
	}

	entries := make([]entities.LexiconEntry, 0, len(concepts))
	for _, concept := range concepts {
		entry, err := h.lexicon.Translate(ctx, lang, concept) //nolint:loopcall // each concept is its own upsert
		if err != nil {
			return nil, fmt.Errorf("translating %q: %w", concept, err)
		}
		entries = append(entries, *entry)
	}
	return entries, nil
}

// Phrase translates a phrase word by word in the language's word order.
func (h *LexiconHandler) Phrase(ctx context.Context, lang services.NamedLanguage, phrase string) (*entities.LexiconEntry, error) {
	entry, err := h.lexicon.TranslatePhrase(ctx, lang, phrase)
	if err != nil {
		return nil, fmt.Errorf("translating phrase: %w", err)
	}
	return entry, nil
}

// Person names a person.
func (h *LexiconHandler) Person(ctx context.Context, lang services.NamedLanguage, pc naming.PersonalContext) (*entities.LexiconEntry, error) {
	entry, err := h.lexicon.NamePerson(ctx, lang, pc)
	if err != nil {
		return nil, fmt.Errorf("naming person: %w", err)
	}
	return entry, nil
}

// Place names a place.
func (h *LexiconHandler) Place(ctx context.Context, lang services.NamedLanguage, pc naming.PlaceContext) (*entities.LexiconEntry, error) {
	entry, err := h.lexicon.NamePlace(ctx, lang, pc)
	if err != nil {
		return nil, fmt.Errorf("naming place: %w", err)
	}
	return entry, nil
}

// EpithetResult is an epithet and, when a base name was given, the full
// title. Entry is nil when the culture gives the entity no epithet.
type EpithetResult struct {
	Entry *entities.LexiconEntry
	Title string
}

// Epithet generates an epithet and, if base is set, joins it to the name.
func (h *LexiconHandler) Epithet(ctx context.Context, lang services.NamedLanguage, ec naming.EpithetContext, base string) (*EpithetResult, error) {
	entry, err := h.lexicon.NameEpithet(ctx, lang, ec)
	if err != nil {
		return nil, fmt.Errorf("naming epithet: %w", err)
	}

	result := &EpithetResult{Entry: entry}
	if base != "" {
		result.Title = lang.Naming().GenerateNameWithEpithet(base, ec)
	}
	return result, nil
}

// ListResult is a page of the lexicon.
type ListResult struct {
	Entries []entities.LexiconEntry
	Total   int
}

// List returns a page of a language's lexicon with the total count.
func (h *LexiconHandler) List(ctx context.Context, lang string, kind entities.EntryKind, limit, offset int) (*ListResult, error) {
	entries, err := h.lexicon.List(ctx, lang, kind, limit, offset)
	if err != nil {
		return nil, err
	}

	total, err := h.lexicon.Count(ctx, lang, kind)
	if err != nil {
		return nil, err
	}

	return &ListResult{Entries: entries, Total: total}, nil
}

// Delete removes an entry from the lexicon.
func (h *LexiconHandler) Delete(ctx context.Context, id string) error {
	return h.lexicon.Delete(ctx, id)
}

// History returns the audit trail for an entry, or for an action when id is
// empty.
func (h *LexiconHandler) History(ctx context.Context, id, action string, limit int) ([]entities.AuditEntry, error) {
	if id != "" {
		return h.lexicon.History(ctx, id)
	}
	switch action {
	case entities.ActionCreate, entities.ActionUpdate, entities.ActionDelete, entities.ActionImport, entities.ActionIngest:
	default:
		return nil, fmt.Errorf("unknown action %q", action)
	}
	return h.lexicon.Activity(ctx, action, limit)
}

// Homophones finds entries whose forms collide. A maxDistance of zero picks
// a distance from the form length.
func (h *LexiconHandler) Homophones(ctx context.Context, lang string, maxDistance int) ([]entities.HomophonePair, error) {
	pairs, err := h.lexicon.Homophones(ctx, lang, maxDistance)
	if err != nil {
		return nil, fmt.Errorf("finding homophones: %w", err)
	}
	return pairs, nil
}
