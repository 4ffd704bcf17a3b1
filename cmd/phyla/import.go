package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ersonp/phyla/internal/application/handlers"
	"github.com/ersonp/phyla/internal/domain/services"
)

type importFlags struct {
	format     string
	dryRun     bool
	onConflict string
}

func newImportCmd() *cobra.Command {
	var flags importFlags

	cmd := &cobra.Command{
		Use:   "import FILE",
		Short: "Import concepts from JSON, CSV or a word list",
		Long: `Generates and saves a word or phrase for every concept in a structured file.

JSON files hold an array of {"concept", "kind", "context"} objects. CSV files
need a header with a concept column and may add kind and context columns.
Text files list one concept per line; "phrase:" marks a phrase and lines
starting with # are comments.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(cmd, args[0], flags)
		},
	}

	cmd.Flags().StringVarP(&flags.format, "format", "f", "auto", "File format (json, csv, txt, auto)")
	cmd.Flags().BoolVar(&flags.dryRun, "dry-run", false, "Generate without saving")
	cmd.Flags().StringVar(&flags.onConflict, "on-conflict", "skip", "Conflict handling (skip, overwrite)")

	return cmd
}

func runImport(cmd *cobra.Command, filePath string, flags importFlags) error {
	onConflict, err := services.ParseConflictStrategy(flags.onConflict)
	if err != nil {
		return fmt.Errorf("invalid --on-conflict value: %w", err)
	}

	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	n := needStore
	if flags.dryRun {
		n = 0
	}

	return withDeps(ctx, n, func(d *Deps) error {
		opts := handlers.ImportOptions{
			Format:     flags.format,
			DryRun:     flags.dryRun,
			OnConflict: onConflict,
		}

		fmt.Fprintf(out, "Importing %s...\n", filePath)

		result, err := d.Import.Handle(ctx, d.Language, filePath, opts)
		if err != nil {
			return fmt.Errorf("importing file: %w", err)
		}

		if len(result.Errors) > 0 {
			fmt.Fprintf(out, "\nValidation errors (%d):\n", len(result.Errors))
			for _, e := range result.Errors {
				fmt.Fprintf(out, "  %s\n", e.Error())
			}
		}

		if flags.dryRun && len(result.Entries) > 0 {
			fmt.Fprintln(out)
			if err := printEntries(out, result.Entries, false); err != nil {
				return err
			}
		}

		fmt.Fprintln(out)
		if flags.dryRun {
			fmt.Fprintf(out, "Dry run: %d entries would be imported", result.Imported)
		} else {
			fmt.Fprintf(out, "Imported: %d entries", result.Imported)
		}

		if result.Skipped > 0 {
			fmt.Fprintf(out, ", %d skipped (already exist or repeated)", result.Skipped)
		}

		if len(result.Errors) > 0 {
			fmt.Fprintf(out, ", %d errors", len(result.Errors))
		}

		fmt.Fprintln(out)

		return nil
	})
}
