package ports

import (
	"context"

	"github.com/ersonp/phyla/internal/domain/entities"
)

// VectorIndex stores lexicon entries with their embeddings for semantic
// search.
type VectorIndex interface {
	// Save stores an entry with its embedding.
	Save(ctx context.Context, entry entities.LexiconEntry) error

	// SaveBatch stores multiple entries.
	SaveBatch(ctx context.Context, entries []entities.LexiconEntry) error

	// Search performs a semantic search and returns similar entries.
	Search(ctx context.Context, embedding []float32, limit int) ([]entities.LexiconEntry, error)

	// SearchByKind performs a semantic search filtered by entry kind.
	SearchByKind(ctx context.Context, embedding []float32, kind entities.EntryKind, limit int) ([]entities.LexiconEntry, error)

	// Delete removes an entry by its ID.
	Delete(ctx context.Context, id string) error
}
