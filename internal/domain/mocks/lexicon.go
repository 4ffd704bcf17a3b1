package mocks

import (
	"context"
	"fmt"
	"sort"
	"strconv"

	"github.com/ersonp/phyla/internal/domain/entities"
)

// LexiconStore is an in-memory implementation of ports.LexiconStore.
type LexiconStore struct {
	Entries map[string]*entities.LexiconEntry
	Audit   []entities.AuditEntry
	Err     error

	nextID int
}

// NewLexiconStore creates an empty store.
func NewLexiconStore() *LexiconStore {
	return &LexiconStore{
		Entries: make(map[string]*entities.LexiconEntry),
	}
}

// EnsureSchema returns the configured error.
func (m *LexiconStore) EnsureSchema(_ context.Context) error {
	return m.Err
}

// Close is a no-op.
func (m *LexiconStore) Close() error {
	return nil
}

// SaveEntry upserts by (language, kind, gloss).
func (m *LexiconStore) SaveEntry(_ context.Context, entry *entities.LexiconEntry) error {
	if m.Err != nil {
		return m.Err
	}
	if existing := m.find(entry.Language, entry.Kind, entry.Gloss); existing != nil {
		entry.ID = existing.ID
		entry.CreatedAt = existing.CreatedAt
	}
	if entry.ID == "" {
		m.nextID++
		entry.ID = "entry-" + strconv.Itoa(m.nextID)
	}
	stored := *entry
	m.Entries[entry.ID] = &stored
	return nil
}

// SaveEntries saves each entry.
func (m *LexiconStore) SaveEntries(ctx context.Context, entries []entities.LexiconEntry) error {
	for i := range entries {
		if err := m.SaveEntry(ctx, &entries[i]); err != nil { //nolint:loopcall // in-memory
			return err
		}
	}
	return nil
}

// FindEntry finds an entry by natural key.
func (m *LexiconStore) FindEntry(_ context.Context, language string, kind entities.EntryKind, gloss string) (*entities.LexiconEntry, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if e := m.find(language, kind, gloss); e != nil {
		found := *e
		return &found, nil
	}
	return nil, nil
}

func (m *LexiconStore) find(language string, kind entities.EntryKind, gloss string) *entities.LexiconEntry {
	for _, e := range m.Entries {
		if e.Language == language && e.Kind == kind && e.Gloss == gloss {
			return e
		}
	}
	return nil
}

// FindEntryByID finds an entry by ID.
func (m *LexiconStore) FindEntryByID(_ context.Context, id string) (*entities.LexiconEntry, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if e, ok := m.Entries[id]; ok {
		found := *e
		return &found, nil
	}
	return nil, nil
}

// FindEntriesByIDs returns the entries that exist among ids.
func (m *LexiconStore) FindEntriesByIDs(_ context.Context, ids []string) ([]entities.LexiconEntry, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	var result []entities.LexiconEntry
	for _, id := range ids {
		if e, ok := m.Entries[id]; ok {
			result = append(result, *e)
		}
	}
	return result, nil
}

// ListEntries lists entries sorted by kind then gloss.
func (m *LexiconStore) ListEntries(_ context.Context, language string, kind entities.EntryKind, limit, offset int) ([]entities.LexiconEntry, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	result := m.filter(language, kind)
	if offset >= len(result) {
		return nil, nil
	}
	result = result[offset:]
	if limit > 0 && limit < len(result) {
		result = result[:limit]
	}
	return result, nil
}

// CountEntries counts matching entries.
func (m *LexiconStore) CountEntries(_ context.Context, language string, kind entities.EntryKind) (int, error) {
	if m.Err != nil {
		return 0, m.Err
	}
	return len(m.filter(language, kind)), nil
}

func (m *LexiconStore) filter(language string, kind entities.EntryKind) []entities.LexiconEntry {
	result := make([]entities.LexiconEntry, 0, len(m.Entries))
	for _, e := range m.Entries {
		if e.Language == language && (kind == "" || e.Kind == kind) {
			result = append(result, *e)
		}
	}
	// Sort for deterministic test results
	sort.Slice(result, func(i, j int) bool {
		if result[i].Kind != result[j].Kind {
			return result[i].Kind < result[j].Kind
		}
		return result[i].Gloss < result[j].Gloss
	})
	return result
}

// DeleteEntry deletes an entry by ID.
func (m *LexiconStore) DeleteEntry(_ context.Context, id string) error {
	if m.Err != nil {
		return m.Err
	}
	if _, ok := m.Entries[id]; !ok {
		return fmt.Errorf("entry not found: %s", id)
	}
	delete(m.Entries, id)
	return nil
}

// DeleteLanguage deletes every entry of a language.
func (m *LexiconStore) DeleteLanguage(_ context.Context, language string) (int, error) {
	if m.Err != nil {
		return 0, m.Err
	}
	var n int
	for id, e := range m.Entries {
		if e.Language == language {
			delete(m.Entries, id)
			n++
		}
	}
	return n, nil
}

// LogAction records an audit entry.
func (m *LexiconStore) LogAction(_ context.Context, action string, entryID string, details map[string]any) error {
	if m.Err != nil {
		return m.Err
	}
	m.Audit = append(m.Audit, entities.AuditEntry{
		ID:      int64(len(m.Audit) + 1),
		Action:  action,
		EntryID: entryID,
		Details: details,
	})
	return nil
}

// FindAuditLog finds audit entries for an entry.
func (m *LexiconStore) FindAuditLog(_ context.Context, entryID string) ([]entities.AuditEntry, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	var result []entities.AuditEntry
	for _, a := range m.Audit {
		if a.EntryID == entryID {
			result = append(result, a)
		}
	}
	return result, nil
}

// FindAuditLogByAction finds audit entries by action.
func (m *LexiconStore) FindAuditLogByAction(_ context.Context, action string, limit int) ([]entities.AuditEntry, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	var result []entities.AuditEntry
	for _, a := range m.Audit {
		if a.Action == action {
			result = append(result, a)
		}
	}
	if limit > 0 && limit < len(result) {
		result = result[:limit]
	}
	return result, nil
}
