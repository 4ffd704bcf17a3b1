package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ersonp/phyla/internal/domain/entities"
	"github.com/ersonp/phyla/internal/domain/ports"
	"github.com/ersonp/phyla/internal/infrastructure/parsers"
)

// ConflictStrategy defines how to handle glosses that are already saved.
type ConflictStrategy string

const (
	// ConflictSkip leaves existing entries untouched.
	ConflictSkip ConflictStrategy = "skip"
	// ConflictOverwrite regenerates and saves over existing entries.
	ConflictOverwrite ConflictStrategy = "overwrite"
)

// ParseConflictStrategy validates a strategy name.
func ParseConflictStrategy(s string) (ConflictStrategy, error) {
	switch ConflictStrategy(strings.ToLower(s)) {
	case ConflictSkip:
		return ConflictSkip, nil
	case ConflictOverwrite:
		return ConflictOverwrite, nil
	default:
		return "", fmt.Errorf("invalid conflict strategy %q (valid: skip, overwrite)", s)
	}
}

// ImportOptions controls import behavior.
type ImportOptions struct {
	DryRun     bool             // Generate without saving
	OnConflict ConflictStrategy // How to handle existing glosses
}

// ImportError represents an error for a specific concept during import.
type ImportError struct {
	Line    int    // Line number (1-indexed, 0 if unknown)
	Field   string // Which field has the error
	Value   string // The invalid value
	Message string // Human-readable error message
}

func (e ImportError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s", e.Line, e.Message)
	}
	return e.Message
}

// ImportResult contains the result of an import operation.
type ImportResult struct {
	Imported int
	Skipped  int
	Errors   []ImportError
	// Entries holds the generated entries, saved or not.
	Entries []entities.LexiconEntry
}

// ImportService generates and saves forms for a list of concepts.
type ImportService struct {
	store  ports.LexiconStore
	logger *slog.Logger
}

// NewImportService creates a new import service.
func NewImportService(store ports.LexiconStore, logger *slog.Logger) *ImportService {
	return &ImportService{
		store:  store,
		logger: orDiscard(logger),
	}
}

// Import validates raw concepts, generates their forms and saves them.
func (s *ImportService) Import(ctx context.Context, lang NamedLanguage, raw []parsers.RawConcept, opts ImportOptions) (*ImportResult, error) {
	if s.store == nil && !opts.DryRun {
		return nil, errors.New("no lexicon store configured")
	}

	result := &ImportResult{}

	valid, validationErrors := validateConcepts(raw)
	result.Errors = validationErrors

	entries, duplicates := generateEntries(lang, valid)
	result.Skipped += duplicates

	if len(entries) == 0 {
		return result, nil
	}

	if opts.DryRun {
		result.Imported = len(entries)
		result.Entries = entries
		return result, nil
	}

	if opts.OnConflict == ConflictSkip {
		var skipped int
		var err error
		entries, skipped, err = s.filterExisting(ctx, entries)
		if err != nil {
			return nil, err
		}
		result.Skipped += skipped
	}

	if len(entries) > 0 {
		if err := s.store.SaveEntries(ctx, entries); err != nil {
			return nil, fmt.Errorf("saving entries: %w", err)
		}
	}

	result.Imported = len(entries)
	result.Entries = entries

	details := map[string]any{
		"language": lang.Name,
		"imported": result.Imported,
		"skipped":  result.Skipped,
		"errors":   len(result.Errors),
	}
	if err := s.store.LogAction(ctx, entities.ActionImport, "", details); err != nil {
		s.logger.Warn("audit log failed", "action", entities.ActionImport, "error", err)
	}

	s.logger.Info("import finished", "language", lang.Name, "imported", result.Imported, "skipped", result.Skipped, "errors", len(result.Errors))
	return result, nil
}

// validateConcepts returns the usable concepts with kinds defaulted, and an
// error per rejected row.
func validateConcepts(raw []parsers.RawConcept) ([]parsers.RawConcept, []ImportError) {
	valid := make([]parsers.RawConcept, 0, len(raw))
	var errs []ImportError

	for i := range raw {
		rc := raw[i]
		if rc.LineNum == 0 {
			rc.LineNum = i + 1
		}

		if err := validateConcept(&rc); err != nil {
			errs = append(errs, *err)
			continue
		}
		valid = append(valid, rc)
	}

	return valid, errs
}

func validateConcept(rc *parsers.RawConcept) *ImportError {
	if entities.NormalizeGloss(rc.Concept) == "" {
		return &ImportError{Line: rc.LineNum, Field: "concept", Message: "missing required field: concept"}
	}

	kind := entities.EntryKind(strings.ToLower(strings.TrimSpace(rc.Kind)))
	switch kind {
	case "":
		kind = entities.KindWord
	case entities.KindWord, entities.KindPhrase:
	default:
		return &ImportError{
			Line:    rc.LineNum,
			Field:   "kind",
			Value:   rc.Kind,
			Message: fmt.Sprintf("invalid kind %q (valid: word, phrase)", rc.Kind),
		}
	}
	rc.Kind = string(kind)

	if kind == entities.KindWord && len(strings.Fields(rc.Concept)) > 1 {
		return &ImportError{
			Line:    rc.LineNum,
			Field:   "concept",
			Value:   rc.Concept,
			Message: fmt.Sprintf("%q has several words; use kind \"phrase\"", rc.Concept),
		}
	}

	return nil
}

// generateEntries builds one entry per distinct (kind, gloss).
func generateEntries(lang NamedLanguage, concepts []parsers.RawConcept) ([]entities.LexiconEntry, int) {
	seen := make(map[string]bool, len(concepts))
	entries := make([]entities.LexiconEntry, 0, len(concepts))
	var duplicates int

	for _, rc := range concepts {
		kind := entities.EntryKind(rc.Kind)
		gloss := strings.Join(strings.Fields(entities.NormalizeGloss(rc.Concept)), " ")

		key := rc.Kind + "\x00" + gloss
		if seen[key] {
			duplicates++
			continue
		}
		seen[key] = true

		form := lang.TranslateWord(gloss)
		if kind == entities.KindPhrase {
			form = lang.TranslatePhrase(gloss)
		}

		entries = append(entries, entities.LexiconEntry{
			ID:       rc.ID,
			Language: lang.Name,
			Kind:     kind,
			Gloss:    gloss,
			Form:     form,
			Context:  rc.Context,
		})
	}

	return entries, duplicates
}

// filterExisting drops entries whose gloss is already saved.
func (s *ImportService) filterExisting(ctx context.Context, entries []entities.LexiconEntry) ([]entities.LexiconEntry, int, error) {
	toSave := make([]entities.LexiconEntry, 0, len(entries))
	var skipped int

	for i := range entries {
		//nolint:loopcall // lookups are local SQLite reads keyed on the unique index
		existing, err := s.store.FindEntry(ctx, entries[i].Language, entries[i].Kind, entries[i].Gloss)
		if err != nil {
			return nil, 0, fmt.Errorf("checking existing entries: %w", err)
		}
		if existing != nil {
			skipped++
			continue
		}
		toSave = append(toSave, entries[i])
	}

	return toSave, skipped, nil
}
