package parsers

import (
	"encoding/json"
	"fmt"
	"io"
)

// JSONParser parses an array of concept objects.
type JSONParser struct{}

// Parse reads JSON from the reader and returns parsed concepts.
func (p *JSONParser) Parse(r io.Reader) ([]RawConcept, error) {
	var concepts []RawConcept

	decoder := json.NewDecoder(r)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&concepts); err != nil {
		return nil, fmt.Errorf("parsing JSON: %w", err)
	}

	// Array index + 1
	for i := range concepts {
		concepts[i].LineNum = i + 1
	}

	return concepts, nil
}
