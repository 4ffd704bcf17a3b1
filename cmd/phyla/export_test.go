package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ersonp/phyla/internal/domain/entities"
)

func testEntries() []entities.LexiconEntry {
	return []entities.LexiconEntry{
		{
			ID:      "entry-1",
			Kind:    entities.KindWord,
			Gloss:   "fire",
			Form:    "kaʃa",
			Context: "hearth",
		},
		{
			ID:    "entry-2",
			Kind:  entities.KindPlaceName,
			Gloss: "place:3:settlement",
			Form:  "Tolmarest",
		},
	}
}

func TestFormatJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, formatJSON(&buf, testEntries()))

	var parsed []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &parsed))

	require.Len(t, parsed, 2)
	assert.Equal(t, "entry-1", parsed[0]["id"])
	assert.Equal(t, "word", parsed[0]["kind"])
	assert.Equal(t, "fire", parsed[0]["gloss"])
	assert.Equal(t, "kaʃa", parsed[0]["form"])
	assert.Equal(t, "hearth", parsed[0]["context"])
	assert.NotContains(t, parsed[1], "context")
}

func TestFormatJSON_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, formatJSON(&buf, nil))
	assert.Equal(t, "[]\n", buf.String())
}

func TestFormatCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, formatCSV(&buf, testEntries()))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "id,kind,gloss,form,context", lines[0])
	assert.Equal(t, "entry-1,word,fire,kaʃa,hearth", lines[1])
	assert.Equal(t, "entry-2,place_name,place:3:settlement,Tolmarest,", lines[2])
}

func TestFormatCSV_SpecialCharacters(t *testing.T) {
	entries := []entities.LexiconEntry{
		{ID: "entry-1", Kind: entities.KindPhrase, Gloss: "fire, water", Form: "kaʃa mor", Context: `the "old" oath`},
	}

	var buf bytes.Buffer
	require.NoError(t, formatCSV(&buf, entries))

	result := buf.String()
	assert.Contains(t, result, `"fire, water"`)
	assert.Contains(t, result, `"the ""old"" oath"`)
}

func TestFormatMarkdown(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, formatMarkdown(&buf, "eldar", testEntries()))

	result := buf.String()
	assert.Contains(t, result, "# eldar Lexicon")
	assert.Contains(t, result, "Total: 2 entries")
	assert.Contains(t, result, "| Kind | Gloss | Form | Context |")
	assert.Contains(t, result, "| word | fire | kaʃa | hearth |")
	assert.Contains(t, result, "| place_name | place:3:settlement | Tolmarest |  |")
}

func TestEscapeMarkdown(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "pipe escaped",
			input:    "value|with|pipes",
			expected: "value\\|with\\|pipes",
		},
		{
			name:     "newline replaced",
			input:    "line1\nline2",
			expected: "line1 line2",
		},
		{
			name:     "no change needed",
			input:    "simple text",
			expected: "simple text",
		},
		{
			name:     "combined",
			input:    "pipe|and\nnewline",
			expected: "pipe\\|and newline",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, escapeMarkdown(tt.input))
		})
	}
}
