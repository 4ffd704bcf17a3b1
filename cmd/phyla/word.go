package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ersonp/phyla/internal/domain/entities"
)

func newWordCmd() *cobra.Command {
	var save bool

	cmd := &cobra.Command{
		Use:   "word CONCEPT...",
		Short: "Translate concepts into words",
		Long:  "Generates the word for each concept. A concept always gets the same word in the same language.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWord(cmd, args, save)
		},
	}

	cmd.Flags().BoolVar(&save, "save", false, "Save the words to the lexicon")

	return cmd
}

func runWord(cmd *cobra.Command, concepts []string, save bool) error {
	ctx := cmd.Context()

	return withDeps(ctx, storeIf(save), func(d *Deps) error {
		entries, err := d.Lexicon.Words(ctx, d.Language, concepts)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if len(entries) == 1 {
			fmt.Fprintln(out, entries[0].Form)
		} else if err := printEntries(out, entries, false); err != nil {
			return err
		}
		savedNote(out, save, len(entries))
		return nil
	})
}

func newPhraseCmd() *cobra.Command {
	var save bool

	cmd := &cobra.Command{
		Use:   "phrase TEXT...",
		Short: "Translate a phrase",
		Long:  "Translates a phrase word by word, rearranging the first three words to the language's word order.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPhrase(cmd, strings.Join(args, " "), save)
		},
	}

	cmd.Flags().BoolVar(&save, "save", false, "Save the phrase to the lexicon")

	return cmd
}

func runPhrase(cmd *cobra.Command, phrase string, save bool) error {
	ctx := cmd.Context()

	return withDeps(ctx, storeIf(save), func(d *Deps) error {
		entry, err := d.Lexicon.Phrase(ctx, d.Language, phrase)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, entry.Form)
		savedNote(out, save, 1)
		return nil
	})
}

// parseKind accepts an empty string as "all kinds".
func parseKind(s string) (entities.EntryKind, error) {
	if s == "" {
		return "", nil
	}
	return entities.ParseEntryKind(s)
}
