package ports

import (
	"context"

	"github.com/ersonp/phyla/internal/domain/entities"
)

// ExtractedConcept is a concept found in prose.
type ExtractedConcept struct {
	Concept string             `json:"concept"`
	Kind    entities.EntryKind `json:"kind"`
	Context string             `json:"context,omitempty"`
}

// ConceptExtractor picks out the concepts a passage would need words for.
type ConceptExtractor interface {
	// ExtractConcepts returns the concepts found in text.
	ExtractConcepts(ctx context.Context, text string) ([]ExtractedConcept, error)
}
