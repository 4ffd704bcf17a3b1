package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/ersonp/phyla/internal/domain/entities"
	"github.com/ersonp/phyla/internal/domain/ports"
)

const (
	// DefaultChunkSize is the default size for text chunks.
	DefaultChunkSize = 2000
	// DefaultChunkOverlap is the default overlap between chunks.
	DefaultChunkOverlap = 200
)

// IngestOptions controls ingestion.
type IngestOptions struct {
	DryRun bool // Generate without saving
}

// IngestResult contains the result of ingesting a passage.
type IngestResult struct {
	Chunks   int
	Concepts []ports.ExtractedConcept
	Entries  []entities.LexiconEntry
}

// ExtractionService finds the concepts in prose and gives each a word.
// The model only picks concepts; forms always come from the generator.
type ExtractionService struct {
	extractor ports.ConceptExtractor
	lexicon   *LexiconService
	logger    *slog.Logger
}

// NewExtractionService creates a new extraction service.
func NewExtractionService(extractor ports.ConceptExtractor, lexicon *LexiconService, logger *slog.Logger) *ExtractionService {
	return &ExtractionService{
		extractor: extractor,
		lexicon:   lexicon,
		logger:    orDiscard(logger),
	}
}

// IngestReader reads a passage and ingests it.
func (s *ExtractionService) IngestReader(ctx context.Context, lang NamedLanguage, r io.Reader, source string, opts IngestOptions) (*IngestResult, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading input: %w", err)
	}
	return s.Ingest(ctx, lang, string(data), source, opts)
}

// Ingest extracts concepts from text chunk by chunk, then translates each
// distinct concept once.
func (s *ExtractionService) Ingest(ctx context.Context, lang NamedLanguage, text, source string, opts IngestOptions) (*IngestResult, error) {
	if strings.TrimSpace(text) == "" {
		return nil, errors.New("no text to ingest")
	}

	chunks := ChunkText(text, DefaultChunkSize, DefaultChunkOverlap)
	result := &IngestResult{Chunks: len(chunks)}

	seen := make(map[string]bool)
	for i, chunk := range chunks {
		//nolint:loopcall // LLM has token limits, must process chunks separately
		concepts, err := s.extractor.ExtractConcepts(ctx, chunk)
		if err != nil {
			return nil, fmt.Errorf("extracting concepts from chunk %d: %w", i, err)
		}
		s.logger.Debug("extracted concepts", "chunk", i, "count", len(concepts))

		for _, c := range concepts {
			key := string(c.Kind) + "\x00" + c.Concept
			if c.Concept == "" || seen[key] {
				continue
			}
			seen[key] = true
			result.Concepts = append(result.Concepts, c)
		}
	}

	lexicon := s.lexicon
	if opts.DryRun {
		lexicon = NewLexiconService(nil, s.logger)
	}

	for _, c := range result.Concepts {
		var entry *entities.LexiconEntry
		var err error
		if c.Kind == entities.KindPhrase {
			entry, err = lexicon.TranslatePhraseWithContext(ctx, lang, c.Concept, c.Context)
		} else {
			entry, err = lexicon.TranslateWithContext(ctx, lang, c.Concept, c.Context)
		}
		if err != nil {
			return nil, fmt.Errorf("translating %q: %w", c.Concept, err)
		}
		result.Entries = append(result.Entries, *entry)
	}

	if !opts.DryRun && lexicon.Persistent() {
		details := map[string]any{
			"language": lang.Name,
			"source":   source,
			"chunks":   result.Chunks,
			"concepts": len(result.Concepts),
		}
		if err := lexicon.store.LogAction(ctx, entities.ActionIngest, "", details); err != nil {
			s.logger.Warn("audit log failed", "action", entities.ActionIngest, "error", err)
		}
	}

	s.logger.Info("ingest finished", "language", lang.Name, "source", source, "chunks", result.Chunks, "concepts", len(result.Concepts))
	return result, nil
}

// ChunkText splits text into chunks on paragraph boundaries. Each chunk after
// the first starts with the tail of the previous one.
func ChunkText(text string, chunkSize int, overlap int) []string {
	if len(text) <= chunkSize {
		return []string{text}
	}

	var chunks []string
	var current strings.Builder

	for _, para := range strings.Split(text, "\n\n") {
		para = strings.TrimSpace(para)
		if para == "" {
			continue
		}

		if current.Len() > 0 && current.Len()+len(para)+2 > chunkSize {
			chunks = append(chunks, current.String())

			tail := overlapText(current.String(), overlap)
			current.Reset()
			current.WriteString(tail)
		}

		if current.Len() > 0 {
			current.WriteString("\n\n")
		}
		current.WriteString(para)
	}

	if current.Len() > 0 {
		chunks = append(chunks, current.String())
	}

	if len(chunks) == 0 {
		chunks = append(chunks, text)
	}

	return chunks
}

// overlapText returns at most n bytes from the end of text, cut at a rune
// boundary and then forward to the next space so no word is split.
func overlapText(text string, n int) string {
	if n <= 0 {
		return ""
	}
	if len(text) <= n {
		return text
	}

	start := len(text) - n
	for start < len(text) && !utf8.RuneStart(text[start]) {
		start++
	}
	if start > 0 && text[start-1] != ' ' && text[start-1] != '\n' {
		if i := strings.IndexAny(text[start:], " \n"); i >= 0 {
			start += i + 1
		}
	}
	return text[start:]
}
