// Package parsers provides parsers for importing concept lists from various formats.
package parsers

import (
	"io"
	"path/filepath"
	"strings"
)

// RawConcept is a concept parsed from an external source before validation.
type RawConcept struct {
	ID      string `json:"id,omitempty"`
	Concept string `json:"concept"`
	Kind    string `json:"kind,omitempty"`
	Context string `json:"context,omitempty"`
	LineNum int    `json:"-"` // Line number in source file (set by parser)
}

// Parser defines the interface for parsing concepts from various formats.
type Parser interface {
	Parse(r io.Reader) ([]RawConcept, error)
}

// ForFormat returns the appropriate parser for the given format.
// Supported formats: "json", "csv", "txt".
func ForFormat(format string) Parser {
	switch strings.ToLower(format) {
	case "json":
		return &JSONParser{}
	case "csv":
		return &CSVParser{}
	case "txt", "list":
		return &ListParser{}
	default:
		return nil
	}
}

// ForFile returns the appropriate parser based on file extension.
func ForFile(filename string) Parser {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".json":
		return &JSONParser{}
	case ".csv":
		return &CSVParser{}
	case ".txt":
		return &ListParser{}
	default:
		return nil
	}
}
