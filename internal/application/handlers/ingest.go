package handlers

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/ersonp/phyla/internal/domain/entities"
	"github.com/ersonp/phyla/internal/domain/ports"
	"github.com/ersonp/phyla/internal/domain/services"
)

// DefaultIngestPattern selects prose files when a directory is ingested.
const DefaultIngestPattern = "*.txt"

// IngestHandler coins words for the concepts found in prose files.
type IngestHandler struct {
	extraction *services.ExtractionService
}

// NewIngestHandler creates a new ingest handler.
func NewIngestHandler(extraction *services.ExtractionService) *IngestHandler {
	return &IngestHandler{extraction: extraction}
}

// IngestOptions controls ingestion. Pattern and Recursive only apply to
// directories; Progress is called before each file of a batch.
type IngestOptions struct {
	DryRun    bool
	Pattern   string
	Recursive bool
	Progress  func(file string)
}

// IngestResult is what one file contributed to the lexicon.
type IngestResult struct {
	FilePath string
	Chunks   int
	Concepts []ports.ExtractedConcept
	Entries  []entities.LexiconEntry
}

// IngestBatchResult sums up a directory or glob ingest. Entries counts every
// entry produced, Distinct counts unique (kind, gloss) pairs since a concept
// named in several files maps to one lexicon entry.
type IngestBatchResult struct {
	Files    []*IngestResult
	Failed   []error
	Entries  int
	Distinct int
}

// IsBatch reports whether path names several files: a directory or a glob.
func IsBatch(path string) bool {
	if isGlob(path) {
		return true
	}
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// Handle ingests one file.
func (h *IngestHandler) Handle(ctx context.Context, lang services.NamedLanguage, path string, opts IngestOptions) (*IngestResult, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}

	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("accessing file: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s is a directory", abs)
	}

	f, err := os.Open(abs)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer f.Close()

	res, err := h.extraction.IngestReader(ctx, lang, f, abs, services.IngestOptions{DryRun: opts.DryRun})
	if err != nil {
		return nil, fmt.Errorf("ingesting %s: %w", filepath.Base(abs), err)
	}

	return &IngestResult{
		FilePath: abs,
		Chunks:   res.Chunks,
		Concepts: res.Concepts,
		Entries:  res.Entries,
	}, nil
}

// HandleBatch ingests every file a directory or glob selects, in lexical
// order. A failing file is recorded in Failed and the rest still run.
func (h *IngestHandler) HandleBatch(ctx context.Context, lang services.NamedLanguage, path string, opts IngestOptions) (*IngestBatchResult, error) {
	files, err := sources(path, opts)
	if err != nil {
		return nil, err
	}

	result := &IngestBatchResult{Files: make([]*IngestResult, 0, len(files))}
	seen := make(map[string]bool)

	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		if opts.Progress != nil {
			opts.Progress(file)
		}

		res, err := h.Handle(ctx, lang, file, opts) //nolint:loopcall // files are ingested one at a time to bound LLM usage
		if err != nil {
			result.Failed = append(result.Failed, err)
			continue
		}

		result.Files = append(result.Files, res)
		result.Entries += len(res.Entries)
		for _, e := range res.Entries {
			key := string(e.Kind) + "\x00" + e.Gloss
			if !seen[key] {
				seen[key] = true
				result.Distinct++
			}
		}
	}

	return result, nil
}

// sources expands a directory or glob into the files to ingest. A glob's
// base name overrides opts.Pattern.
func sources(path string, opts IngestOptions) ([]string, error) {
	dir, pattern := path, opts.Pattern
	if isGlob(path) {
		dir, pattern = filepath.Dir(path), filepath.Base(path)
	}
	if pattern == "" {
		pattern = DefaultIngestPattern
	}
	if _, err := filepath.Match(pattern, ""); err != nil {
		return nil, fmt.Errorf("invalid pattern %q: %w", pattern, err)
	}

	root, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("accessing path: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", root)
	}

	var files []string
	err = filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if p != root && !opts.Recursive {
				return filepath.SkipDir
			}
			return nil
		}
		if ok, _ := filepath.Match(pattern, d.Name()); ok {
			files = append(files, p)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", root, err)
	}

	if len(files) == 0 {
		return nil, fmt.Errorf("no files matching %q in %s", pattern, root)
	}
	return files, nil
}

func isGlob(path string) bool {
	return strings.ContainsAny(path, "*?[")
}
