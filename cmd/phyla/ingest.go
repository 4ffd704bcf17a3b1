package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ersonp/phyla/internal/application/handlers"
)

type ingestFlags struct {
	pattern   string
	recursive bool
	dryRun    bool
}

func newIngestCmd() *cobra.Command {
	var flags ingestFlags

	cmd := &cobra.Command{
		Use:   "ingest PATH",
		Short: "Coin words for the concepts in prose",
		Long: `Reads a text file, or every matching file in a directory or glob, asks the LLM which
concepts the text would need words for, and generates a word or phrase for each.
The LLM only picks concepts; the forms always come from the language.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runIngest(cmd, args[0], flags)
		},
	}

	cmd.Flags().StringVarP(&flags.pattern, "pattern", "p", handlers.DefaultIngestPattern, "File name pattern when PATH is a directory")
	cmd.Flags().BoolVarP(&flags.recursive, "recursive", "r", false, "Descend into subdirectories")
	cmd.Flags().BoolVar(&flags.dryRun, "dry-run", false, "Generate without saving")

	return cmd
}

func runIngest(cmd *cobra.Command, path string, flags ingestFlags) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	n := needExtractor | needStore
	if flags.dryRun {
		n = needExtractor
	}

	opts := handlers.IngestOptions{
		DryRun:    flags.dryRun,
		Pattern:   flags.pattern,
		Recursive: flags.recursive,
		Progress: func(file string) {
			fmt.Fprintf(out, "Ingesting %s...\n", file)
		},
	}

	return withDeps(ctx, n, func(d *Deps) error {
		if !handlers.IsBatch(path) {
			fmt.Fprintf(out, "Ingesting %s...\n", path)

			result, err := d.Ingest.Handle(ctx, d.Language, path, opts)
			if err != nil {
				return err
			}

			fmt.Fprintf(out, "Found %d concepts in %d chunks of %s\n\n", len(result.Concepts), result.Chunks, result.FilePath)
			return printEntries(out, result.Entries, false)
		}

		result, err := d.Ingest.HandleBatch(ctx, d.Language, path, opts)
		if err != nil {
			return err
		}

		for _, e := range result.Failed {
			fmt.Fprintf(cmd.ErrOrStderr(), "  failed: %v\n", e)
		}
		fmt.Fprintf(out, "\nIngested %d files, %d entries (%d distinct)", len(result.Files), result.Entries, result.Distinct)
		if len(result.Failed) > 0 {
			fmt.Fprintf(out, ", %d failed", len(result.Failed))
		}
		fmt.Fprintln(out)
		return nil
	})
}
