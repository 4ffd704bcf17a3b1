// Package config provides configuration loading and management.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultConfigDir is the directory name for phyla configuration.
	DefaultConfigDir = ".phyla"
	// DefaultConfigFile is the default config file name.
	DefaultConfigFile = "config.yaml"
	// LexiconFile is the per-language SQLite file name.
	LexiconFile = "lexicon.db"
)

var (
	// reNonAlphanumeric matches characters that aren't alphanumeric or underscore.
	reNonAlphanumeric = regexp.MustCompile(`[^a-z0-9_]`)
	// reMultipleUnderscores matches consecutive underscores.
	reMultipleUnderscores = regexp.MustCompile(`_+`)
)

// Config is the contents of .phyla/config.yaml.
type Config struct {
	LLM       LLMConfig                 `yaml:"llm,omitempty"`
	Embedder  EmbedderConfig            `yaml:"embedder,omitempty"`
	Qdrant    QdrantConfig              `yaml:"qdrant,omitempty"`
	Languages map[string]LanguageConfig `yaml:"languages,omitempty"`
}

// LLMConfig holds configuration for the concept extraction model.
type LLMConfig struct {
	Provider string `yaml:"provider,omitempty"`
	Model    string `yaml:"model,omitempty"`
	APIKey   string `yaml:"api_key,omitempty"`
	// BaseURL points at an OpenAI-compatible server. Empty means api.openai.com.
	BaseURL string `yaml:"base_url,omitempty"`
}

// EmbedderConfig holds configuration for the embedding provider.
type EmbedderConfig struct {
	Provider string `yaml:"provider,omitempty"`
	Model    string `yaml:"model,omitempty"`
	APIKey   string `yaml:"api_key,omitempty"`
	BaseURL  string `yaml:"base_url,omitempty"`
	// Dimensions of the model's vectors; 0 means the default model size.
	Dimensions int `yaml:"dimensions,omitempty"`
}

// QdrantConfig holds configuration for the Qdrant vector database.
// Collection is derived per language and not read from the file.
type QdrantConfig struct {
	Host       string `yaml:"host,omitempty"`
	Port       int    `yaml:"port,omitempty"`
	APIKey     string `yaml:"api_key,omitempty"`
	Collection string `yaml:"-"`
}

// SQLiteConfig holds configuration for the SQLite lexicon store.
type SQLiteConfig struct {
	// Path is the database file, or ":memory:".
	Path string
}

// Default returns a Config with default values.
func Default() *Config {
	return &Config{
		LLM: LLMConfig{
			Provider: "openai",
			Model:    "gpt-4o-mini",
		},
		Embedder: EmbedderConfig{
			Provider: "openai",
			Model:    "text-embedding-3-small",
		},
		Qdrant: QdrantConfig{
			Host: "localhost",
			Port: 6334,
		},
		Languages: make(map[string]LanguageConfig),
	}
}

// Load loads configuration from the .phyla directory in the given path.
func Load(basePath string) (*Config, error) {
	configFile := ConfigFilePath(basePath)

	data, err := os.ReadFile(configFile)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found: %s (run 'phyla languages create' first)", configFile)
	}
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	// Start with defaults
	cfg := Default()

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}
	if cfg.Languages == nil {
		cfg.Languages = make(map[string]LanguageConfig)
	}

	cfg.applyEnvOverrides()

	return cfg, nil
}

// LoadOrDefault loads the config, or returns defaults when none exists yet.
func LoadOrDefault(basePath string) (*Config, error) {
	if !Exists(basePath) {
		cfg := Default()
		cfg.applyEnvOverrides()
		return cfg, nil
	}
	return Load(basePath)
}

// applyEnvOverrides fills unset API keys from the environment.
func (c *Config) applyEnvOverrides() {
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		if c.LLM.APIKey == "" {
			c.LLM.APIKey = key
		}
		if c.Embedder.APIKey == "" {
			c.Embedder.APIKey = key
		}
	}
	if key := os.Getenv("QDRANT_API_KEY"); key != "" {
		if c.Qdrant.APIKey == "" {
			c.Qdrant.APIKey = key
		}
	}
}

// ConfigDir returns the path to the .phyla config directory.
func ConfigDir(basePath string) string {
	return filepath.Join(basePath, DefaultConfigDir)
}

// ConfigFilePath returns the path to the config file.
func ConfigFilePath(basePath string) string {
	return filepath.Join(basePath, DefaultConfigDir, DefaultConfigFile)
}

// Exists checks if a phyla config exists in the given path.
func Exists(basePath string) bool {
	_, err := os.Stat(ConfigFilePath(basePath))
	return err == nil
}

// SanitizeName converts a language name to a safe directory and collection
// suffix.
func SanitizeName(name string) string {
	name = strings.ToLower(name)

	name = strings.ReplaceAll(name, " ", "_")
	name = strings.ReplaceAll(name, "-", "_")

	name = reNonAlphanumeric.ReplaceAllString(name, "")
	name = reMultipleUnderscores.ReplaceAllString(name, "_")
	name = strings.Trim(name, "_")

	if name == "" {
		return "default"
	}

	return name
}

// CollectionName returns the Qdrant collection for a language.
func CollectionName(language string) string {
	return "phyla_" + SanitizeName(language)
}

// LanguageDir returns the data directory for a language.
func LanguageDir(basePath, language string) string {
	return filepath.Join(basePath, DefaultConfigDir, "languages", SanitizeName(language))
}

// SQLitePathForLanguage returns the lexicon database path for a language.
func SQLitePathForLanguage(basePath, language string) string {
	return filepath.Join(LanguageDir(basePath, language), LexiconFile)
}
