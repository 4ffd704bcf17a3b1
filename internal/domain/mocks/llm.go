package mocks

import (
	"context"

	"github.com/ersonp/phyla/internal/domain/ports"
)

// ConceptExtractor is a mock implementation of ports.ConceptExtractor.
type ConceptExtractor struct {
	Concepts []ports.ExtractedConcept
	Err      error

	CallCount int
	LastText  string
}

// ExtractConcepts returns the configured concepts or error.
func (m *ConceptExtractor) ExtractConcepts(_ context.Context, text string) ([]ports.ExtractedConcept, error) {
	m.CallCount++
	m.LastText = text
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Concepts, nil
}
