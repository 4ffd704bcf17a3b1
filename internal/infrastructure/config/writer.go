package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultConfigYAML is the default configuration content.
const DefaultConfigYAML = `# Phyla Configuration

llm:
  provider: openai
  model: gpt-4o-mini
  # api_key: your-api-key (or set OPENAI_API_KEY env var)

embedder:
  provider: openai
  model: text-embedding-3-small
  # api_key: your-api-key (or set OPENAI_API_KEY env var)

qdrant:
  host: localhost
  port: 6334
  # api_key: your-api-key (for Qdrant Cloud)

# languages:
#   eldar:
#     description: mountain clans
#     seed: 12345
#     geography: mountains
#     culture:
#       agreeableness: 3.5
#       openness: 4.2
#       conscientiousness: 3.8
#       extraversion: 3.0
#       honesty_humility: 3.3
#       emotionality: 2.9
`

// WriteDefault creates the .phyla directory and writes a default config file.
func WriteDefault(basePath string) error {
	configDir := ConfigDir(basePath)
	configFile := filepath.Join(configDir, DefaultConfigFile)

	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	if _, err := os.Stat(configFile); err == nil {
		return fmt.Errorf("config file already exists: %s", configFile)
	}

	if err := os.WriteFile(configFile, []byte(DefaultConfigYAML), 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

// Write writes the given config to the config file. API keys taken from the
// environment are not written back.
func Write(basePath string, cfg *Config) error {
	configDir := ConfigDir(basePath)
	configFile := filepath.Join(configDir, DefaultConfigFile)

	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	out := *cfg
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		if out.LLM.APIKey == key {
			out.LLM.APIKey = ""
		}
		if out.Embedder.APIKey == key {
			out.Embedder.APIKey = ""
		}
	}
	if key := os.Getenv("QDRANT_API_KEY"); key != "" && out.Qdrant.APIKey == key {
		out.Qdrant.APIKey = ""
	}

	data, err := yaml.Marshal(&out)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(configFile, data, 0600); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}
