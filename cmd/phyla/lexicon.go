package main

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
)

func newLexiconCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lexicon",
		Short: "Manage saved words and names",
	}

	cmd.AddCommand(
		newLexiconListCmd(),
		newLexiconExportCmd(),
		newLexiconDeleteCmd(),
		newLexiconHomophonesCmd(),
		newLexiconHistoryCmd(),
	)

	return cmd
}

func newLexiconListCmd() *cobra.Command {
	var (
		kind   string
		limit  int
		offset int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List saved entries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLexiconList(cmd, kind, limit, offset)
		},
	}

	cmd.Flags().StringVarP(&kind, "kind", "k", "", "Filter by kind (word, phrase, personal_name, place_name, epithet)")
	cmd.Flags().IntVarP(&limit, "limit", "n", DefaultListLimit, "Maximum number of entries to display (0 for all)")
	cmd.Flags().IntVar(&offset, "offset", 0, "Number of entries to skip")

	return cmd
}

func runLexiconList(cmd *cobra.Command, kindName string, limit, offset int) error {
	ctx := cmd.Context()

	kind, err := parseKind(kindName)
	if err != nil {
		return err
	}

	return withDeps(ctx, needStore, func(d *Deps) error {
		result, err := d.Lexicon.List(ctx, d.Language.Name, kind, limit, offset)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if len(result.Entries) == 0 {
			fmt.Fprintln(out, "No entries found.")
			return nil
		}

		fmt.Fprintf(out, "Showing %d of %d entries:\n\n", len(result.Entries), result.Total)
		return printEntries(out, result.Entries, true)
	})
}

func newLexiconDeleteCmd() *cobra.Command {
	var unindex bool

	cmd := &cobra.Command{
		Use:   "delete ID...",
		Short: "Delete saved entries",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLexiconDelete(cmd, args, unindex)
		},
	}

	cmd.Flags().BoolVar(&unindex, "unindex", false, "Also remove the entries from the search index")

	return cmd
}

func runLexiconDelete(cmd *cobra.Command, ids []string, unindex bool) error {
	ctx := cmd.Context()

	n := needStore
	if unindex {
		n |= needIndex
	}

	return withDeps(ctx, n, func(d *Deps) error {
		out := cmd.OutOrStdout()
		var errs []error
		for _, id := range ids {
			if err := d.Lexicon.Delete(ctx, id); err != nil { //nolint:loopcall // each ID is audited separately
				errs = append(errs, err)
				continue
			}
			if unindex {
				if err := d.Search.Forget(ctx, id); err != nil { //nolint:loopcall // qdrant deletes one point per call here
					errs = append(errs, err)
				}
			}
			fmt.Fprintf(out, "Deleted %s\n", id)
		}
		return errors.Join(errs...)
	})
}

func newLexiconHomophonesCmd() *cobra.Command {
	var distance int

	cmd := &cobra.Command{
		Use:   "homophones",
		Short: "Find saved entries whose forms sound alike",
		Long: `Lists pairs of saved entries with different meanings whose forms are within
an edit distance of each other. Without --distance the limit grows with the
length of the shorter form.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLexiconHomophones(cmd, distance)
		},
	}

	cmd.Flags().IntVar(&distance, "distance", 0, "Maximum edit distance (0 picks one by form length)")

	return cmd
}

func runLexiconHomophones(cmd *cobra.Command, distance int) error {
	ctx := cmd.Context()

	if distance < 0 {
		return fmt.Errorf("--distance must not be negative, got %d", distance)
	}

	return withDeps(ctx, needStore, func(d *Deps) error {
		pairs, err := d.Lexicon.Homophones(ctx, d.Language.Name, distance)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if len(pairs) == 0 {
			fmt.Fprintln(out, "No homophones found.")
			return nil
		}

		tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "DISTANCE\tFORM\tGLOSS\tFORM\tGLOSS")
		for _, p := range pairs {
			fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", p.Distance, p.First.Form, p.First.Gloss, p.Second.Form, p.Second.Gloss)
		}
		return tw.Flush()
	})
}

func newLexiconHistoryCmd() *cobra.Command {
	var (
		action string
		limit  int
	)

	cmd := &cobra.Command{
		Use:   "history [ID]",
		Short: "Show the audit log",
		Long: `With an ID, shows every recorded change to that entry. Without one, shows
the most recent actions of the kind given by --action.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var id string
			if len(args) == 1 {
				id = args[0]
			}
			return runLexiconHistory(cmd, id, action, limit)
		},
	}

	cmd.Flags().StringVar(&action, "action", "create", "Action to show when no ID is given (create, update, delete, import, ingest)")
	cmd.Flags().IntVarP(&limit, "limit", "n", DefaultListLimit, "Maximum number of actions to display (0 for all)")

	return cmd
}

func runLexiconHistory(cmd *cobra.Command, id, action string, limit int) error {
	ctx := cmd.Context()

	return withDeps(ctx, needStore, func(d *Deps) error {
		entries, err := d.Lexicon.History(ctx, id, action, limit)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if len(entries) == 0 {
			fmt.Fprintln(out, "No history found.")
			return nil
		}

		tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "TIME\tACTION\tENTRY\tDETAILS")
		for _, e := range entries {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", e.CreatedAt.Format(time.DateTime), e.Action, e.EntryID, formatDetails(e.Details))
		}
		return tw.Flush()
	})
}

func formatDetails(details map[string]any) string {
	if len(details) == 0 {
		return ""
	}
	keys := make([]string, 0, len(details))
	for k := range details {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s=%v", k, details[k])
	}
	return strings.Join(parts, " ")
}
