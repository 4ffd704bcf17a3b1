package handlers

import (
	"context"
	"fmt"

	"github.com/ersonp/phyla/internal/domain/entities"
	"github.com/ersonp/phyla/internal/domain/services"
)

// SearchHandler indexes a lexicon by meaning and searches it.
type SearchHandler struct {
	searchService *services.SearchService
}

// NewSearchHandler creates a new search handler.
func NewSearchHandler(searchService *services.SearchService) *SearchHandler {
	return &SearchHandler{
		searchService: searchService,
	}
}

// SearchResult contains the result of a search.
type SearchResult struct {
	Query   string
	Entries []entities.LexiconEntry
}

// Index embeds a language's saved entries and returns how many were indexed.
func (h *SearchHandler) Index(ctx context.Context, lang string) (int, error) {
	n, err := h.searchService.Index(ctx, lang)
	if err != nil {
		return 0, fmt.Errorf("indexing lexicon: %w", err)
	}
	return n, nil
}

// Handle searches for entries whose meaning matches the query. An empty
// kind searches every kind.
func (h *SearchHandler) Handle(ctx context.Context, query string, kind entities.EntryKind, limit int) (*SearchResult, error) {
	found, err := h.searchService.Search(ctx, query, kind, limit)
	if err != nil {
		return nil, fmt.Errorf("searching lexicon: %w", err)
	}

	return &SearchResult{
		Query:   query,
		Entries: found,
	}, nil
}

// Forget removes an entry from the index.
func (h *SearchHandler) Forget(ctx context.Context, id string) error {
	return h.searchService.Forget(ctx, id)
}
