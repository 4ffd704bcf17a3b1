package main

import (
	"context"
	"fmt"
	"os"

	"github.com/ersonp/phyla/internal/application/handlers"
	"github.com/ersonp/phyla/internal/domain/ports"
	"github.com/ersonp/phyla/internal/domain/services"
	"github.com/ersonp/phyla/internal/infrastructure/config"
	embedder "github.com/ersonp/phyla/internal/infrastructure/embedder/openai"
	llm "github.com/ersonp/phyla/internal/infrastructure/llm/openai"
	"github.com/ersonp/phyla/internal/infrastructure/relationaldb/sqlite"
	"github.com/ersonp/phyla/internal/infrastructure/vectordb/qdrant"
)

// need selects which backing services a command connects to. Generation
// alone needs none of them.
type need int

const (
	needStore need = 1 << iota
	needIndex
	needExtractor
)

// Deps holds high-level dependencies for commands.
// Only handlers are exposed - services and repositories are internal.
type Deps struct {
	Language services.NamedLanguage
	Lexicon  *handlers.LexiconHandler
	Import   *handlers.ImportHandler
	Ingest   *handlers.IngestHandler // nil unless needExtractor
	Search   *handlers.SearchHandler // nil unless needIndex
}

// withDeps resolves the selected language, connects what n asks for, then
// calls fn. Connections are closed when fn returns.
func withDeps(ctx context.Context, n need, fn func(*Deps) error) error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getting current directory: %w", err)
	}

	cfg, err := config.Load(cwd)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	lang, err := handlers.NewLanguageHandler(cwd).Open(globalLanguage)
	if err != nil {
		return err
	}
	logger.Debug("language loaded", "language", lang.Name, "id", lang.ID())

	// A nil interface, not a typed nil, keeps the services generate-only
	var store ports.LexiconStore
	if n&needStore != 0 {
		repo, err := openStore(ctx, cwd, lang.Name)
		if err != nil {
			return err
		}
		defer repo.Close()
		store = repo
	}

	lexicon := services.NewLexiconService(store, logger)
	deps := &Deps{
		Language: lang,
		Lexicon:  handlers.NewLexiconHandler(lexicon),
		Import:   handlers.NewImportHandler(services.NewImportService(store, logger)),
	}

	if n&needExtractor != 0 {
		client, err := llm.NewClient(cfg.LLM)
		if err != nil {
			return fmt.Errorf("creating llm client: %w", err)
		}
		deps.Ingest = handlers.NewIngestHandler(services.NewExtractionService(client, lexicon, logger))
	}

	if n&needIndex != 0 {
		index, err := openIndex(cfg, lang.Name)
		if err != nil {
			return err
		}
		defer index.Close()

		emb, err := embedder.NewEmbedder(cfg.Embedder)
		if err != nil {
			return fmt.Errorf("creating embedder: %w", err)
		}

		search := services.NewSearchService(store, index, index, emb, emb.VectorSize(), logger)
		deps.Search = handlers.NewSearchHandler(search)
	}

	return fn(deps)
}

// openStore opens the language's lexicon database, creating it on first use.
func openStore(ctx context.Context, basePath, lang string) (*sqlite.Repository, error) {
	if err := os.MkdirAll(config.LanguageDir(basePath, lang), 0755); err != nil {
		return nil, fmt.Errorf("creating language directory: %w", err)
	}

	repo, err := sqlite.NewRepository(config.SQLiteConfig{Path: config.SQLitePathForLanguage(basePath, lang)})
	if err != nil {
		return nil, fmt.Errorf("creating sqlite repository: %w", err)
	}

	if err := repo.EnsureSchema(ctx); err != nil {
		repo.Close()
		return nil, fmt.Errorf("ensuring sqlite schema: %w", err)
	}

	logger.Debug("lexicon opened", "path", repo.Path())
	return repo, nil
}

// openIndex connects to the language's qdrant collection.
func openIndex(cfg *config.Config, lang string) (*qdrant.Repository, error) {
	qdrantCfg := cfg.Qdrant
	qdrantCfg.Collection = config.CollectionName(lang)

	repo, err := qdrant.NewRepository(qdrantCfg)
	if err != nil {
		return nil, fmt.Errorf("creating qdrant repository: %w", err)
	}
	return repo, nil
}

func storeIf(save bool) need {
	if save {
		return needStore
	}
	return 0
}
