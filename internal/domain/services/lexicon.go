// Package services contains domain business logic.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"

	"github.com/ersonp/phyla/internal/domain/entities"
	"github.com/ersonp/phyla/internal/domain/ports"
	"github.com/ersonp/phyla/pkg/language"
	"github.com/ersonp/phyla/pkg/naming"
)

// NamedLanguage is a generated language under its configured name.
type NamedLanguage struct {
	Name string
	*language.Language
}

// NewNamedLanguage pairs a language with its name.
func NewNamedLanguage(name string, lang *language.Language) NamedLanguage {
	return NamedLanguage{Name: name, Language: lang}
}

// LexiconService generates forms and records them in a lexicon store.
// With a nil store it only generates.
type LexiconService struct {
	store  ports.LexiconStore
	logger *slog.Logger
}

// NewLexiconService creates a new lexicon service.
func NewLexiconService(store ports.LexiconStore, logger *slog.Logger) *LexiconService {
	return &LexiconService{
		store:  store,
		logger: orDiscard(logger),
	}
}

// Persistent reports whether generated entries are saved.
func (s *LexiconService) Persistent() bool {
	return s.store != nil
}

// Translate produces the word for a concept.
func (s *LexiconService) Translate(ctx context.Context, lang NamedLanguage, concept string) (*entities.LexiconEntry, error) {
	return s.TranslateWithContext(ctx, lang, concept, "")
}

// TranslateWithContext is Translate with a usage note stored on the entry.
func (s *LexiconService) TranslateWithContext(ctx context.Context, lang NamedLanguage, concept, note string) (*entities.LexiconEntry, error) {
	gloss := entities.NormalizeGloss(concept)
	if gloss == "" {
		return nil, errors.New("concept is required")
	}

	entry := &entities.LexiconEntry{
		Language: lang.Name,
		Kind:     entities.KindWord,
		Gloss:    gloss,
		Form:     lang.TranslateWord(gloss),
		Context:  note,
	}
	return s.record(ctx, entry)
}

// TranslatePhrase translates each word of a phrase and reorders the result
// by the language's word order.
func (s *LexiconService) TranslatePhrase(ctx context.Context, lang NamedLanguage, phrase string) (*entities.LexiconEntry, error) {
	return s.TranslatePhraseWithContext(ctx, lang, phrase, "")
}

// TranslatePhraseWithContext is TranslatePhrase with a usage note.
func (s *LexiconService) TranslatePhraseWithContext(ctx context.Context, lang NamedLanguage, phrase, note string) (*entities.LexiconEntry, error) {
	gloss := strings.Join(strings.Fields(entities.NormalizeGloss(phrase)), " ")
	if gloss == "" {
		return nil, errors.New("phrase is required")
	}

	entry := &entities.LexiconEntry{
		Language: lang.Name,
		Kind:     entities.KindPhrase,
		Gloss:    gloss,
		Form:     lang.TranslatePhrase(gloss),
		Context:  note,
	}
	return s.record(ctx, entry)
}

// NamePerson generates a personal name. The gloss is "person:<id>".
func (s *LexiconService) NamePerson(ctx context.Context, lang NamedLanguage, pc naming.PersonalContext) (*entities.LexiconEntry, error) {
	var note string
	if pc.ParentName != "" {
		note = "child of " + pc.ParentName
	}

	entry := &entities.LexiconEntry{
		Language: lang.Name,
		Kind:     entities.KindPersonalName,
		Gloss:    fmt.Sprintf("person:%d", pc.EntityID),
		Form:     lang.Naming().GeneratePersonalName(pc),
		Context:  note,
	}
	return s.record(ctx, entry)
}

// NamePlace generates a place name. The gloss is "place:<id>:<type>".
func (s *LexiconService) NamePlace(ctx context.Context, lang NamedLanguage, pc naming.PlaceContext) (*entities.LexiconEntry, error) {
	var notes []string
	if pc.LocalGeography != nil {
		notes = append(notes, pc.LocalGeography.String())
	}
	if pc.FounderName != "" {
		notes = append(notes, "founded by "+pc.FounderName)
	}
	if pc.HistoricalEvent != "" {
		notes = append(notes, "site of "+pc.HistoricalEvent)
	}

	entry := &entities.LexiconEntry{
		Language: lang.Name,
		Kind:     entities.KindPlaceName,
		Gloss:    fmt.Sprintf("place:%d:%s", pc.PlaceID, pc.PlaceType),
		Form:     lang.Naming().GeneratePlaceName(pc),
		Context:  strings.Join(notes, "; "),
	}
	return s.record(ctx, entry)
}

// NameEpithet generates an epithet. It returns (nil, nil) when the culture
// gives this entity none.
func (s *LexiconService) NameEpithet(ctx context.Context, lang NamedLanguage, ec naming.EpithetContext) (*entities.LexiconEntry, error) {
	form, ok := lang.Naming().GenerateEpithet(ec)
	if !ok {
		s.logger.Debug("no epithet", "language", lang.Name, "entity", ec.EntityID)
		return nil, nil
	}

	var notes []string
	if ec.Characteristic != 0 {
		notes = append(notes, ec.Characteristic.String())
	}
	if ec.Achievement != "" {
		notes = append(notes, ec.Achievement)
	}
	if ec.BirthEvent != "" {
		notes = append(notes, "born "+ec.BirthEvent)
	}

	entry := &entities.LexiconEntry{
		Language: lang.Name,
		Kind:     entities.KindEpithet,
		Gloss:    fmt.Sprintf("epithet:%d", ec.EntityID),
		Form:     form,
		Context:  strings.Join(notes, "; "),
	}
	return s.record(ctx, entry)
}

// record saves the entry when a store is configured and audits the change.
func (s *LexiconService) record(ctx context.Context, entry *entities.LexiconEntry) (*entities.LexiconEntry, error) {
	if s.store == nil {
		return entry, nil
	}

	existing, err := s.store.FindEntry(ctx, entry.Language, entry.Kind, entry.Gloss)
	if err != nil {
		return nil, fmt.Errorf("looking up entry: %w", err)
	}

	if err := s.store.SaveEntry(ctx, entry); err != nil {
		return nil, fmt.Errorf("saving entry: %w", err)
	}

	action := entities.ActionCreate
	if existing != nil {
		action = entities.ActionUpdate
	}
	details := map[string]any{
		"kind":  string(entry.Kind),
		"gloss": entry.Gloss,
		"form":  entry.Form,
	}
	if err := s.store.LogAction(ctx, action, entry.ID, details); err != nil {
		// Entry is already saved
		s.logger.Warn("audit log failed", "entry", entry.ID, "error", err)
	}

	s.logger.Debug("recorded entry", "language", entry.Language, "kind", entry.Kind, "gloss", entry.Gloss, "action", action)
	return entry, nil
}

// List lists a language's saved entries. An empty kind lists all kinds.
func (s *LexiconService) List(ctx context.Context, lang string, kind entities.EntryKind, limit, offset int) ([]entities.LexiconEntry, error) {
	if err := s.requireStore(); err != nil {
		return nil, err
	}
	entries, err := s.store.ListEntries(ctx, lang, kind, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("listing entries: %w", err)
	}
	return entries, nil
}

// Count counts a language's saved entries.
func (s *LexiconService) Count(ctx context.Context, lang string, kind entities.EntryKind) (int, error) {
	if err := s.requireStore(); err != nil {
		return 0, err
	}
	n, err := s.store.CountEntries(ctx, lang, kind)
	if err != nil {
		return 0, fmt.Errorf("counting entries: %w", err)
	}
	return n, nil
}

// Delete removes an entry by ID.
func (s *LexiconService) Delete(ctx context.Context, id string) error {
	if err := s.requireStore(); err != nil {
		return err
	}
	if err := s.store.DeleteEntry(ctx, id); err != nil {
		return fmt.Errorf("deleting entry: %w", err)
	}
	if err := s.store.LogAction(ctx, entities.ActionDelete, id, nil); err != nil {
		s.logger.Warn("audit log failed", "entry", id, "error", err)
	}
	return nil
}

// History returns the audit trail of one entry, newest first.
func (s *LexiconService) History(ctx context.Context, id string) ([]entities.AuditEntry, error) {
	if err := s.requireStore(); err != nil {
		return nil, err
	}
	entries, err := s.store.FindAuditLog(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("reading audit log: %w", err)
	}
	return entries, nil
}

// Activity returns the most recent audit entries for an action.
func (s *LexiconService) Activity(ctx context.Context, action string, limit int) ([]entities.AuditEntry, error) {
	if err := s.requireStore(); err != nil {
		return nil, err
	}
	entries, err := s.store.FindAuditLogByAction(ctx, action, limit)
	if err != nil {
		return nil, fmt.Errorf("reading audit log: %w", err)
	}
	return entries, nil
}

// Homophones finds pairs of entries with different glosses whose forms are
// within maxDistance edits. A maxDistance <= 0 picks a limit from the
// shorter form's length.
func (s *LexiconService) Homophones(ctx context.Context, lang string, maxDistance int) ([]entities.HomophonePair, error) {
	entries, err := s.List(ctx, lang, "", 0, 0)
	if err != nil {
		return nil, err
	}

	forms := make([]string, len(entries))
	for i := range entries {
		forms[i] = strings.ToLower(entries[i].Form)
	}

	var pairs []entities.HomophonePair
	for i := 0; i < len(entries); i++ {
		for j := i + 1; j < len(entries); j++ {
			if entries[i].Gloss == entries[j].Gloss {
				continue
			}

			limit := maxDistance
			if limit <= 0 {
				limit = DefaultHomophoneDistance(min(utf8.RuneCountInString(forms[i]), utf8.RuneCountInString(forms[j])))
			}

			// Length difference is a lower bound on edit distance
			diff := utf8.RuneCountInString(forms[i]) - utf8.RuneCountInString(forms[j])
			if diff > limit || -diff > limit {
				continue
			}

			d := levenshtein.ComputeDistance(forms[i], forms[j])
			if d <= limit {
				pairs = append(pairs, entities.HomophonePair{First: entries[i], Second: entries[j], Distance: d})
			}
		}
	}

	sort.SliceStable(pairs, func(a, b int) bool {
		return pairs[a].Distance < pairs[b].Distance
	})
	return pairs, nil
}

// DefaultHomophoneDistance is the edit distance under which forms of the
// given length sound alike.
func DefaultHomophoneDistance(length int) int {
	switch {
	case length <= 4:
		return 1
	case length <= 8:
		return 2
	default:
		return 3
	}
}

func (s *LexiconService) requireStore() error {
	if s.store == nil {
		return errors.New("no lexicon store configured")
	}
	return nil
}

func orDiscard(logger *slog.Logger) *slog.Logger {
	if logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return logger
}
