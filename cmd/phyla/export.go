package main

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ersonp/phyla/internal/domain/entities"
)

type exportFlags struct {
	format string
	output string
	kind   string
	limit  int
}

type exporter struct {
	language string
	format   string
	output   string
	stdout   io.Writer
}

func newLexiconExportCmd() *cobra.Command {
	var flags exportFlags

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the lexicon to a file",
		Long:  "Exports saved entries to JSON, CSV, or a markdown table.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd, flags)
		},
	}

	cmd.Flags().StringVarP(&flags.format, "format", "f", "json", "Output format (json, csv, markdown)")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "Output file (default: stdout)")
	cmd.Flags().StringVarP(&flags.kind, "kind", "k", "", "Filter by kind")
	cmd.Flags().IntVarP(&flags.limit, "limit", "n", DefaultExportLimit, "Maximum number of entries to export (0 for all)")

	return cmd
}

func runExport(cmd *cobra.Command, flags exportFlags) error {
	if !slices.Contains(validFormats, flags.format) {
		return fmt.Errorf("invalid format %q, valid formats: %v", flags.format, validFormats)
	}

	kind, err := parseKind(flags.kind)
	if err != nil {
		return err
	}

	ctx := cmd.Context()

	return withDeps(ctx, needStore, func(d *Deps) error {
		result, err := d.Lexicon.List(ctx, d.Language.Name, kind, flags.limit, 0)
		if err != nil {
			return err
		}

		if len(result.Entries) == 0 {
			return errors.New("no entries found to export")
		}

		e := &exporter{
			language: d.Language.Name,
			format:   flags.format,
			output:   flags.output,
			stdout:   cmd.OutOrStdout(),
		}
		return e.export(result.Entries)
	})
}

func (e *exporter) export(entries []entities.LexiconEntry) (err error) {
	w := e.stdout

	if e.output != "" {
		f, err := os.OpenFile(e.output, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
		if err != nil {
			return fmt.Errorf("creating file: %w", err)
		}
		defer func() {
			if cerr := f.Close(); cerr != nil && err == nil {
				err = fmt.Errorf("closing file: %w", cerr)
			}
		}()
		w = f
	}

	if err := e.formatEntries(w, entries); err != nil {
		return fmt.Errorf("formatting output: %w", err)
	}

	if e.output != "" {
		fmt.Fprintf(e.stdout, "Exported %d entries to %s\n", len(entries), e.output)
	}

	return nil
}

func (e *exporter) formatEntries(w io.Writer, entries []entities.LexiconEntry) error {
	switch e.format {
	case "json":
		return formatJSON(w, entries)
	case "csv":
		return formatCSV(w, entries)
	case "markdown":
		return formatMarkdown(w, e.language, entries)
	default:
		return fmt.Errorf("unknown format: %s", e.format)
	}
}

func formatJSON(w io.Writer, entries []entities.LexiconEntry) error {
	type exportEntry struct {
		ID      string `json:"id"`
		Kind    string `json:"kind"`
		Gloss   string `json:"gloss"`
		Form    string `json:"form"`
		Context string `json:"context,omitempty"`
	}

	out := make([]exportEntry, 0, len(entries))
	for _, en := range entries {
		out = append(out, exportEntry{
			ID:      en.ID,
			Kind:    string(en.Kind),
			Gloss:   en.Gloss,
			Form:    en.Form,
			Context: en.Context,
		})
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)
	return encoder.Encode(out)
}

func formatCSV(w io.Writer, entries []entities.LexiconEntry) error {
	writer := csv.NewWriter(w)

	header := []string{"id", "kind", "gloss", "form", "context"}
	if err := writer.Write(header); err != nil {
		return err
	}

	for _, en := range entries {
		row := []string{en.ID, string(en.Kind), en.Gloss, en.Form, en.Context}
		if err := writer.Write(row); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

func formatMarkdown(w io.Writer, language string, entries []entities.LexiconEntry) error {
	if _, err := fmt.Fprintf(w, "# %s Lexicon\n\nTotal: %d entries\n\n", language, len(entries)); err != nil {
		return err
	}

	if _, err := fmt.Fprint(w, "| Kind | Gloss | Form | Context |\n"); err != nil {
		return err
	}
	if _, err := fmt.Fprint(w, "|------|-------|------|---------|\n"); err != nil {
		return err
	}

	for _, en := range entries {
		if _, err := fmt.Fprintf(w, "| %s | %s | %s | %s |\n",
			en.Kind,
			escapeMarkdown(en.Gloss),
			escapeMarkdown(en.Form),
			escapeMarkdown(en.Context),
		); err != nil {
			return err
		}
	}

	return nil
}

func escapeMarkdown(s string) string {
	s = strings.ReplaceAll(s, "|", "\\|")
	s = strings.ReplaceAll(s, "\n", " ")
	return s
}
