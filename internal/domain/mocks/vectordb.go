package mocks

import (
	"context"

	"github.com/ersonp/phyla/internal/domain/entities"
)

// VectorIndex is a mock implementation of ports.VectorIndex.
type VectorIndex struct {
	Entries []entities.LexiconEntry
	Err     error

	// Call tracking
	SaveBatchCallCount   int
	SaveBatchLastEntries []entities.LexiconEntry
	DeletedIDs           []string
}

// Save stores a single entry.
func (m *VectorIndex) Save(_ context.Context, entry entities.LexiconEntry) error {
	if m.Err != nil {
		return m.Err
	}
	m.Entries = append(m.Entries, entry)
	return nil
}

// SaveBatch stores multiple entries.
func (m *VectorIndex) SaveBatch(_ context.Context, entries []entities.LexiconEntry) error {
	m.SaveBatchCallCount++
	m.SaveBatchLastEntries = entries
	if m.Err != nil {
		return m.Err
	}
	m.Entries = append(m.Entries, entries...)
	return nil
}

// Search returns the first limit entries.
func (m *VectorIndex) Search(_ context.Context, _ []float32, limit int) ([]entities.LexiconEntry, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if limit > len(m.Entries) {
		return m.Entries, nil
	}
	return m.Entries[:limit], nil
}

// SearchByKind returns the first limit entries of a kind.
func (m *VectorIndex) SearchByKind(_ context.Context, _ []float32, kind entities.EntryKind, limit int) ([]entities.LexiconEntry, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	var filtered []entities.LexiconEntry
	for i := range m.Entries {
		if m.Entries[i].Kind == kind {
			filtered = append(filtered, m.Entries[i])
		}
	}
	if limit > len(filtered) {
		return filtered, nil
	}
	return filtered[:limit], nil
}

// Delete records the ID.
func (m *VectorIndex) Delete(_ context.Context, id string) error {
	m.DeletedIDs = append(m.DeletedIDs, id)
	return m.Err
}
