// Package handlers contains application use case handlers.
package handlers

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/ersonp/phyla/internal/domain/ports"
	"github.com/ersonp/phyla/internal/domain/services"
	"github.com/ersonp/phyla/internal/infrastructure/config"
)

// LanguageHandler manages the named languages in a project's config.
type LanguageHandler struct {
	basePath string
}

// NewLanguageHandler creates a language handler rooted at basePath.
func NewLanguageHandler(basePath string) *LanguageHandler {
	return &LanguageHandler{basePath: basePath}
}

// LanguageSummary is one row of the language listing.
type LanguageSummary struct {
	Name        string
	ID          string
	Geography   string
	Seed        uint64
	Description string
}

// LanguageDetails is a configured language and its generated form.
type LanguageDetails struct {
	Name     string
	Config   config.LanguageConfig
	Language services.NamedLanguage
}

// CreateLanguageResult contains the result of creating a language.
type CreateLanguageResult struct {
	ConfigPath  string
	Initialized bool
	Language    services.NamedLanguage
}

// DeleteLanguageResult contains the result of deleting a language.
type DeleteLanguageResult struct {
	Name              string
	RemovedLexicon    bool
	DroppedCollection bool
}

// Create adds a language to the config, writing a default config first if
// the project has none.
func (h *LanguageHandler) Create(name string, lang config.LanguageConfig) (*CreateLanguageResult, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.New("language name is required")
	}

	if err := lang.Validate(); err != nil {
		return nil, fmt.Errorf("invalid language %q: %w", name, err)
	}

	initialized := false
	if !config.Exists(h.basePath) {
		if err := config.WriteDefault(h.basePath); err != nil {
			return nil, fmt.Errorf("initializing config: %w", err)
		}
		initialized = true
	}

	cfg, err := config.Load(h.basePath)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	if cfg.HasLanguage(name) {
		return nil, fmt.Errorf("language %q already exists", name)
	}

	cfg.AddLanguage(name, lang)
	if err := config.Write(h.basePath, cfg); err != nil {
		return nil, fmt.Errorf("saving config: %w", err)
	}

	built, err := lang.Build()
	if err != nil {
		return nil, fmt.Errorf("building language: %w", err)
	}

	return &CreateLanguageResult{
		ConfigPath:  config.ConfigFilePath(h.basePath),
		Initialized: initialized,
		Language:    services.NewNamedLanguage(name, built),
	}, nil
}

// List returns the configured languages sorted by name. A project without a
// config has none.
func (h *LanguageHandler) List() ([]LanguageSummary, error) {
	if !config.Exists(h.basePath) {
		return nil, nil
	}

	cfg, err := config.Load(h.basePath)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	names := cfg.LanguageNames()
	summaries := make([]LanguageSummary, 0, len(names))
	for _, name := range names {
		lang := cfg.Languages[name]
		summaries = append(summaries, LanguageSummary{
			Name:        name,
			ID:          fmt.Sprintf("lang_%d", lang.Seed),
			Geography:   lang.Geography,
			Seed:        lang.Seed,
			Description: lang.Description,
		})
	}
	return summaries, nil
}

// Show loads and builds a language. An empty name resolves to the only
// configured language.
func (h *LanguageHandler) Show(name string) (*LanguageDetails, error) {
	cfg, err := config.Load(h.basePath)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	name, err = resolveName(cfg, name)
	if err != nil {
		return nil, err
	}

	lang, err := cfg.Language(name)
	if err != nil {
		return nil, err
	}

	built, err := lang.Build()
	if err != nil {
		return nil, fmt.Errorf("building language %q: %w", name, err)
	}

	return &LanguageDetails{
		Name:     name,
		Config:   *lang,
		Language: services.NewNamedLanguage(name, built),
	}, nil
}

// Open builds the named language.
func (h *LanguageHandler) Open(name string) (services.NamedLanguage, error) {
	details, err := h.Show(name)
	if err != nil {
		return services.NamedLanguage{}, err
	}
	return details.Language, nil
}

// Delete removes a language from the config along with its lexicon. When
// collections is non-nil the language's vector collection is dropped too.
func (h *LanguageHandler) Delete(ctx context.Context, name string, collections ports.CollectionManager) (*DeleteLanguageResult, error) {
	cfg, err := config.Load(h.basePath)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	if _, err := cfg.Language(name); err != nil {
		return nil, err
	}

	result := &DeleteLanguageResult{Name: name}

	if collections != nil {
		if err := collections.DeleteCollection(ctx); err != nil {
			return nil, fmt.Errorf("dropping collection: %w", err)
		}
		result.DroppedCollection = true
	}

	dir := config.LanguageDir(h.basePath, name)
	if _, err := os.Stat(dir); err == nil {
		if err := os.RemoveAll(dir); err != nil {
			return nil, fmt.Errorf("removing lexicon: %w", err)
		}
		result.RemovedLexicon = true
	}

	cfg.RemoveLanguage(name)
	if err := config.Write(h.basePath, cfg); err != nil {
		return nil, fmt.Errorf("saving config: %w", err)
	}

	return result, nil
}

func resolveName(cfg *config.Config, name string) (string, error) {
	if name != "" {
		return name, nil
	}

	names := cfg.LanguageNames()
	switch len(names) {
	case 0:
		return "", errors.New("no languages configured (run 'phyla languages create')")
	case 1:
		return names[0], nil
	default:
		return "", fmt.Errorf("language is required (use --language, one of: %s)", strings.Join(names, ", "))
	}
}
