package handlers

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ersonp/phyla/internal/domain/services"
	"github.com/ersonp/phyla/internal/infrastructure/parsers"
)

// ImportHandler imports concept lists from files.
type ImportHandler struct {
	service *services.ImportService
}

// NewImportHandler creates a new import handler.
func NewImportHandler(service *services.ImportService) *ImportHandler {
	return &ImportHandler{service: service}
}

// ImportOptions controls an import. An empty or "auto" Format picks the
// parser from the file extension.
type ImportOptions struct {
	Format     string
	DryRun     bool
	OnConflict services.ConflictStrategy
}

// Handle generates a form for every concept in the file.
func (h *ImportHandler) Handle(ctx context.Context, lang services.NamedLanguage, path string, opts ImportOptions) (*services.ImportResult, error) {
	parser, err := parserFor(path, opts.Format)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer f.Close()

	concepts, err := parser.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", filepath.Base(path), err)
	}
	if len(concepts) == 0 {
		return &services.ImportResult{}, nil
	}

	return h.service.Import(ctx, lang, concepts, services.ImportOptions{
		DryRun:     opts.DryRun,
		OnConflict: opts.OnConflict,
	})
}

func parserFor(path, format string) (parsers.Parser, error) {
	if format == "" || format == "auto" {
		if p := parsers.ForFile(path); p != nil {
			return p, nil
		}
		return nil, fmt.Errorf("unsupported format for file: %s (use --format)", path)
	}
	if p := parsers.ForFormat(format); p != nil {
		return p, nil
	}
	return nil, fmt.Errorf("unsupported format %q", format)
}
