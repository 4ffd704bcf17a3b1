package config

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ersonp/phyla/pkg/culture"
)

func TestSanitizeName(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "simple lowercase", input: "eldar", expected: "eldar"},
		{name: "uppercase converted", input: "Eldar", expected: "eldar"},
		{name: "spaces to underscores", input: "high eldar", expected: "high_eldar"},
		{name: "hyphens to underscores", input: "high-eldar", expected: "high_eldar"},
		{name: "special characters removed", input: "el@dar!", expected: "eldar"},
		{name: "consecutive underscores collapsed", input: "high--eldar", expected: "high_eldar"},
		{name: "leading trailing underscores trimmed", input: "-eldar-", expected: "eldar"},
		{name: "empty string returns default", input: "", expected: "default"},
		{name: "only special chars returns default", input: "!!!", expected: "default"},
		{name: "complex mixed input", input: "Old Tongue (Age 2)", expected: "old_tongue_age_2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SanitizeName(tt.input))
		})
	}
}

func TestCollectionName(t *testing.T) {
	assert.Equal(t, "phyla_eldar", CollectionName("eldar"))
	assert.Equal(t, "phyla_old_tongue", CollectionName("Old-Tongue!"))
	assert.Equal(t, "phyla_default", CollectionName(""))
}

func TestPaths(t *testing.T) {
	base := "/home/user/project"

	assert.Equal(t, "/home/user/project/.phyla", ConfigDir(base))
	assert.Equal(t, "/home/user/project/.phyla/config.yaml", ConfigFilePath(base))
	assert.Equal(t, "/home/user/project/.phyla/languages/old_tongue", LanguageDir(base, "Old Tongue"))
	assert.Equal(t, "/home/user/project/.phyla/languages/eldar/lexicon.db", SQLitePathForLanguage(base, "eldar"))
}

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "openai", cfg.LLM.Provider)
	assert.Equal(t, "gpt-4o-mini", cfg.LLM.Model)
	assert.Equal(t, "openai", cfg.Embedder.Provider)
	assert.Equal(t, "text-embedding-3-small", cfg.Embedder.Model)
	assert.Equal(t, "localhost", cfg.Qdrant.Host)
	assert.Equal(t, 6334, cfg.Qdrant.Port)
	assert.NotNil(t, cfg.Languages)
	assert.Empty(t, cfg.Languages)
}

func TestLoad_Missing(t *testing.T) {
	_, err := Load(t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config file not found")
}

func TestLoadOrDefault_Missing(t *testing.T) {
	cfg, err := LoadOrDefault(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, "gpt-4o-mini", cfg.LLM.Model)
}

func TestLoad_MergesWithDefaults(t *testing.T) {
	base := t.TempDir()
	require.NoError(t, os.MkdirAll(ConfigDir(base), 0755))

	content := `
llm:
  model: gpt-4o
languages:
  eldar:
    seed: 42
    geography: mountains
    culture:
      agreeableness: 3
      openness: 4.5
      conscientiousness: 3
      extraversion: 3
      honesty_humility: 2
      emotionality: 3
`
	require.NoError(t, os.WriteFile(ConfigFilePath(base), []byte(content), 0644))

	cfg, err := Load(base)
	require.NoError(t, err)

	assert.Equal(t, "gpt-4o", cfg.LLM.Model)
	assert.Equal(t, "openai", cfg.LLM.Provider)
	assert.Equal(t, 6334, cfg.Qdrant.Port)

	lang, err := cfg.Language("eldar")
	require.NoError(t, err)
	assert.Equal(t, uint64(42), lang.Seed)
	assert.InDelta(t, 4.5, lang.Culture.Openness, 1e-6)
	assert.InDelta(t, 2.0, lang.Culture.HonestyHumility, 1e-6)

	geo, err := lang.GeographyTag()
	require.NoError(t, err)
	assert.Equal(t, culture.Mountains, geo)
}

func TestLoad_InvalidYAML(t *testing.T) {
	base := t.TempDir()
	require.NoError(t, os.MkdirAll(ConfigDir(base), 0755))
	require.NoError(t, os.WriteFile(ConfigFilePath(base), []byte("llm: [unclosed"), 0644))

	_, err := Load(base)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing config file")
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-env")
	t.Setenv("QDRANT_API_KEY", "qd-env")

	base := t.TempDir()
	require.NoError(t, WriteDefault(base))

	cfg, err := Load(base)
	require.NoError(t, err)
	assert.Equal(t, "sk-env", cfg.LLM.APIKey)
	assert.Equal(t, "sk-env", cfg.Embedder.APIKey)
	assert.Equal(t, "qd-env", cfg.Qdrant.APIKey)
}

func TestWriteDefault(t *testing.T) {
	base := t.TempDir()
	require.NoError(t, WriteDefault(base))
	assert.True(t, Exists(base))

	err := WriteDefault(base)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}

func TestWrite_RoundTrip(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-env")

	base := t.TempDir()
	cfg := Default()
	cfg.LLM.APIKey = "sk-env"
	cfg.AddLanguage("eldar", LanguageConfig{
		Seed:      7,
		Geography: "coastal",
		Culture:   culture.NeutralProfile(),
	})
	require.NoError(t, Write(base, cfg))

	data, err := os.ReadFile(filepath.Join(base, DefaultConfigDir, DefaultConfigFile))
	require.NoError(t, err)
	assert.NotContains(t, string(data), "sk-env")

	loaded, err := Load(base)
	require.NoError(t, err)
	assert.True(t, loaded.HasLanguage("eldar"))
	assert.Equal(t, uint64(7), loaded.Languages["eldar"].Seed)
}

func TestLanguageConfig_Validate(t *testing.T) {
	valid := LanguageConfig{Geography: "forest", Culture: culture.NeutralProfile()}

	tests := []struct {
		name    string
		modify  func(*LanguageConfig)
		wantErr string
	}{
		{name: "valid", modify: func(*LanguageConfig) {}},
		{name: "unknown geography", modify: func(l *LanguageConfig) { l.Geography = "tundra" }, wantErr: "tundra"},
		{name: "trait too low", modify: func(l *LanguageConfig) { l.Culture.Openness = 0.5 }, wantErr: "openness"},
		{name: "trait too high", modify: func(l *LanguageConfig) { l.Culture.HonestyHumility = 6 }, wantErr: "honesty_humility"},
		{name: "trait NaN", modify: func(l *LanguageConfig) { l.Culture.Openness = float32(math.NaN()) }, wantErr: "openness must be between"},
		{name: "bounds inclusive", modify: func(l *LanguageConfig) {
			l.Culture.Agreeableness = 1
			l.Culture.Emotionality = 5
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lang := valid
			tt.modify(&lang)
			err := lang.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLanguageConfig_Build(t *testing.T) {
	lang := LanguageConfig{Seed: 99, Geography: "desert", Culture: culture.NeutralProfile()}

	l, err := lang.Build()
	require.NoError(t, err)
	assert.Equal(t, "lang_99", l.ID())
	assert.Equal(t, culture.Desert, l.Geography())

	_, err = LanguageConfig{Geography: "moon"}.Build()
	assert.Error(t, err)
}

func TestConfig_Language(t *testing.T) {
	cfg := Default()

	_, err := cfg.Language("eldar")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no languages configured")

	cfg.AddLanguage("eldar", LanguageConfig{Geography: "forest"})
	cfg.AddLanguage("dwarvish", LanguageConfig{Geography: "mountains"})

	got, err := cfg.Language("eldar")
	require.NoError(t, err)
	assert.Equal(t, "forest", got.Geography)

	_, err = cfg.Language("eldr")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `did you mean "eldar"`)

	_, err = cfg.Language("orcish")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "available: dwarvish, eldar")

	cfg.RemoveLanguage("eldar")
	assert.False(t, cfg.HasLanguage("eldar"))
	assert.Equal(t, []string{"dwarvish"}, cfg.LanguageNames())
}
