// Package openai provides a ConceptExtractor implementation using OpenAI chat
// completions.
package openai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"

	"github.com/ersonp/phyla/internal/domain/entities"
	"github.com/ersonp/phyla/internal/domain/ports"
	"github.com/ersonp/phyla/internal/infrastructure/config"
)

const extractionPrompt = `You build vocabulary lists for an invented language. Read the passage and list the concepts a translator would need words for.

For each concept, give:
- concept: the English meaning, lowercase, singular, no articles (e.g. "river", not "the rivers")
- kind: "word" for a single concept, "phrase" for a fixed expression of several words
- context: a few words on how the passage uses it (optional)

Skip proper names. List each concept once.

Return ONLY a valid JSON array, no other text.

Example:
Input: "The old smith crossed the river at dawn and swore by the first fire."
Output: [
  {"concept": "smith", "kind": "word", "context": "a craftsman"},
  {"concept": "river", "kind": "word"},
  {"concept": "dawn", "kind": "word"},
  {"concept": "first fire", "kind": "phrase", "context": "used in an oath"}
]`

// Client implements ports.ConceptExtractor using OpenAI.
type Client struct {
	client *openai.Client
	model  string
}

// NewClient creates a new OpenAI LLM client.
func NewClient(cfg config.LLMConfig) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("OpenAI API key is required")
	}

	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}

	model := "gpt-4o-mini"
	if cfg.Model != "" {
		model = cfg.Model
	}

	return &Client{
		client: openai.NewClientWithConfig(clientCfg),
		model:  model,
	}, nil
}

// ExtractConcepts lists the concepts in text that need words.
func (c *Client) ExtractConcepts(ctx context.Context, text string) ([]ports.ExtractedConcept, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: extractionPrompt,
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: text,
			},
		},
		Temperature: 0.1,
	})
	if err != nil {
		return nil, fmt.Errorf("calling OpenAI: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, errors.New("no response from OpenAI")
	}

	content := cleanJSONResponse(resp.Choices[0].Message.Content)

	var raw []rawConcept
	if err := json.Unmarshal([]byte(content), &raw); err != nil {
		return nil, fmt.Errorf("parsing concepts JSON: %w (response: %s)", err, content)
	}

	return normalizeConcepts(raw), nil
}

// rawConcept is the JSON structure the model returns.
type rawConcept struct {
	Concept string `json:"concept"`
	Kind    string `json:"kind"`
	Context string `json:"context,omitempty"`
}

// normalizeConcepts lowercases, drops blanks and duplicates, and maps
// anything that is not a phrase to a word.
func normalizeConcepts(raw []rawConcept) []ports.ExtractedConcept {
	seen := make(map[string]bool, len(raw))
	concepts := make([]ports.ExtractedConcept, 0, len(raw))

	for _, rc := range raw {
		concept := strings.Join(strings.Fields(strings.ToLower(rc.Concept)), " ")
		if concept == "" {
			continue
		}

		kind := entities.KindWord
		if entities.EntryKind(strings.ToLower(strings.TrimSpace(rc.Kind))) == entities.KindPhrase {
			kind = entities.KindPhrase
		}

		key := string(kind) + "\x00" + concept
		if seen[key] {
			continue
		}
		seen[key] = true

		concepts = append(concepts, ports.ExtractedConcept{
			Concept: concept,
			Kind:    kind,
			Context: strings.TrimSpace(rc.Context),
		})
	}

	return concepts
}

// cleanJSONResponse removes markdown code blocks if present.
func cleanJSONResponse(content string) string {
	content = strings.TrimSpace(content)

	if strings.HasPrefix(content, "```json") {
		content = strings.TrimPrefix(content, "```json")
		content = strings.TrimSuffix(content, "```")
	} else if strings.HasPrefix(content, "```") {
		content = strings.TrimPrefix(content, "```")
		content = strings.TrimSuffix(content, "```")
	}

	return strings.TrimSpace(content)
}
