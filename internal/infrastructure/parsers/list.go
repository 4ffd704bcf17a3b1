package parsers

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// ListParser parses a plain word list: one concept per line. Blank lines and
// lines starting with '#' are skipped. A "kind:" prefix such as
// "phrase: by the river" sets the kind; anything else is a word.
type ListParser struct{}

var listKinds = []string{"word", "phrase"}

// Parse reads the list from r.
func (p *ListParser) Parse(r io.Reader) ([]RawConcept, error) {
	var concepts []RawConcept

	scanner := bufio.NewScanner(r)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		concept := RawConcept{Concept: line, LineNum: lineNum}
		if prefix, rest, ok := strings.Cut(line, ":"); ok {
			for _, kind := range listKinds {
				if strings.EqualFold(strings.TrimSpace(prefix), kind) {
					concept.Kind = kind
					concept.Concept = strings.TrimSpace(rest)
					break
				}
			}
		}
		concepts = append(concepts, concept)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("line %d: %w", lineNum+1, err)
	}

	return concepts, nil
}
