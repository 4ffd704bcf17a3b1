package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ersonp/phyla/internal/domain/entities"
	"github.com/ersonp/phyla/internal/domain/ports"
)

const (
	// DefaultSearchLimit is the default number of results to return.
	DefaultSearchLimit = 10
	// DefaultIndexBatchSize is how many entries are embedded per request.
	DefaultIndexBatchSize = 100
)

// SearchService indexes a language's lexicon by meaning and searches it.
type SearchService struct {
	store       ports.LexiconStore
	index       ports.VectorIndex
	collections ports.CollectionManager
	embedder    ports.Embedder
	vectorSize  uint64
	batchSize   int
	logger      *slog.Logger
}

// NewSearchService creates a new search service. vectorSize is the embedding
// dimension used when the collection has to be created.
func NewSearchService(
	store ports.LexiconStore,
	index ports.VectorIndex,
	collections ports.CollectionManager,
	embedder ports.Embedder,
	vectorSize uint64,
	logger *slog.Logger,
) *SearchService {
	return &SearchService{
		store:       store,
		index:       index,
		collections: collections,
		embedder:    embedder,
		vectorSize:  vectorSize,
		batchSize:   DefaultIndexBatchSize,
		logger:      orDiscard(logger),
	}
}

// Index embeds every saved entry of a language and upserts it into the
// vector index. It returns the number of entries indexed.
func (s *SearchService) Index(ctx context.Context, lang string) (int, error) {
	if s.collections != nil {
		if err := s.collections.EnsureCollection(ctx, s.vectorSize); err != nil {
			return 0, fmt.Errorf("ensuring collection: %w", err)
		}
	}

	var indexed int
	for offset := 0; ; offset += s.batchSize {
		//nolint:loopcall // paged so each embedding request stays under the provider's input limit
		batch, err := s.store.ListEntries(ctx, lang, "", s.batchSize, offset)
		if err != nil {
			return indexed, fmt.Errorf("listing entries: %w", err)
		}
		if len(batch) == 0 {
			break
		}

		if err := s.indexBatch(ctx, batch); err != nil {
			return indexed, err
		}
		indexed += len(batch)
		s.logger.Debug("indexed batch", "language", lang, "count", len(batch), "total", indexed)

		if len(batch) < s.batchSize {
			break
		}
	}

	s.logger.Info("index finished", "language", lang, "entries", indexed)
	return indexed, nil
}

func (s *SearchService) indexBatch(ctx context.Context, batch []entities.LexiconEntry) error {
	texts := make([]string, len(batch))
	for i := range batch {
		texts[i] = batch[i].EmbeddingText()
	}

	embeddings, err := s.embedder.EmbedBatch(ctx, texts)
	if err != nil {
		return fmt.Errorf("generating embeddings: %w", err)
	}
	if len(embeddings) != len(batch) {
		return fmt.Errorf("expected %d embeddings, got %d", len(batch), len(embeddings))
	}

	for i := range batch {
		batch[i].Embedding = embeddings[i]
	}

	if err := s.index.SaveBatch(ctx, batch); err != nil {
		return fmt.Errorf("saving to index: %w", err)
	}
	return nil
}

// Search finds saved entries whose meaning is close to the query. An empty
// kind searches every kind. Hits whose entry has since been deleted from the
// store are dropped.
func (s *SearchService) Search(ctx context.Context, query string, kind entities.EntryKind, limit int) ([]entities.LexiconEntry, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, errors.New("query is required")
	}
	if limit <= 0 {
		limit = DefaultSearchLimit
	}

	embedding, err := s.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("generating query embedding: %w", err)
	}

	var hits []entities.LexiconEntry
	if kind == "" {
		hits, err = s.index.Search(ctx, embedding, limit)
	} else {
		hits, err = s.index.SearchByKind(ctx, embedding, kind, limit)
	}
	if err != nil {
		return nil, fmt.Errorf("searching index: %w", err)
	}

	return s.hydrate(ctx, hits)
}

// hydrate replaces index payloads with the stored entries, keeping rank order.
func (s *SearchService) hydrate(ctx context.Context, hits []entities.LexiconEntry) ([]entities.LexiconEntry, error) {
	if len(hits) == 0 {
		return []entities.LexiconEntry{}, nil
	}

	ids := make([]string, len(hits))
	for i := range hits {
		ids[i] = hits[i].ID
	}

	stored, err := s.store.FindEntriesByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("loading entries: %w", err)
	}

	byID := make(map[string]entities.LexiconEntry, len(stored))
	for i := range stored {
		byID[stored[i].ID] = stored[i]
	}

	result := make([]entities.LexiconEntry, 0, len(hits))
	for _, id := range ids {
		if e, ok := byID[id]; ok {
			result = append(result, e)
		} else {
			s.logger.Debug("dropping stale index hit", "entry", id)
		}
	}
	return result, nil
}

// Forget removes an entry from the index.
func (s *SearchService) Forget(ctx context.Context, id string) error {
	if err := s.index.Delete(ctx, id); err != nil {
		return fmt.Errorf("removing from index: %w", err)
	}
	return nil
}

// Drop deletes the language's whole collection.
func (s *SearchService) Drop(ctx context.Context) error {
	if s.collections == nil {
		return nil
	}
	if err := s.collections.DeleteCollection(ctx); err != nil {
		return fmt.Errorf("deleting collection: %w", err)
	}
	return nil
}
