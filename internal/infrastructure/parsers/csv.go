package parsers

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// CSVParser parses concepts from CSV with a header row.
type CSVParser struct{}

// Parse reads CSV from the reader and returns parsed concepts.
// Expected columns: concept, and optionally kind, context, id.
func (p *CSVParser) Parse(r io.Reader) ([]RawConcept, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	colIndex, err := p.readHeader(reader)
	if err != nil {
		return nil, err
	}

	return p.readRecords(reader, colIndex)
}

func (p *CSVParser) readHeader(reader *csv.Reader) (map[string]int, error) {
	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("reading CSV header: %w", err)
	}

	colIndex := make(map[string]int)
	for i, col := range header {
		colIndex[strings.ToLower(strings.TrimSpace(col))] = i
	}

	if _, ok := colIndex["concept"]; !ok {
		return nil, fmt.Errorf("missing required column: concept")
	}

	return colIndex, nil
}

func (p *CSVParser) readRecords(reader *csv.Reader, colIndex map[string]int) ([]RawConcept, error) {
	var concepts []RawConcept
	lineNum := 1 // Header is line 1

	for {
		lineNum++
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNum, err)
		}

		concepts = append(concepts, RawConcept{
			ID:      getColumn(record, colIndex, "id"),
			Concept: getColumn(record, colIndex, "concept"),
			Kind:    getColumn(record, colIndex, "kind"),
			Context: getColumn(record, colIndex, "context"),
			LineNum: lineNum,
		})
	}

	return concepts, nil
}

// getColumn safely retrieves a column value from a record.
func getColumn(record []string, colIndex map[string]int, col string) string {
	if idx, ok := colIndex[col]; ok && idx < len(record) {
		return strings.TrimSpace(record[idx])
	}
	return ""
}
