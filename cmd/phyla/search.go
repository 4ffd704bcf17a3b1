package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newIndexCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "index",
		Short: "Index the lexicon for semantic search",
		Long:  "Embeds the meaning of every saved entry and stores it in the language's qdrant collection.",
		Args:  cobra.NoArgs,
		RunE:  runIndex,
	}
}

func runIndex(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	return withDeps(ctx, needStore|needIndex, func(d *Deps) error {
		n, err := d.Search.Index(ctx, d.Language.Name)
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Indexed %d entries\n", n)
		return nil
	})
}

func newSearchCmd() *cobra.Command {
	var (
		limit int
		kind  string
	)

	cmd := &cobra.Command{
		Use:   "search QUERY",
		Short: "Search the lexicon by meaning",
		Long:  "Finds saved entries whose meaning is close to the query. Run 'phyla index' first.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSearch(cmd, args[0], kind, limit)
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", DefaultSearchLimit, "Maximum number of results")
	cmd.Flags().StringVarP(&kind, "kind", "k", "", "Filter by kind")

	return cmd
}

func runSearch(cmd *cobra.Command, query, kindName string, limit int) error {
	ctx := cmd.Context()

	kind, err := parseKind(kindName)
	if err != nil {
		return err
	}

	return withDeps(ctx, needStore|needIndex, func(d *Deps) error {
		result, err := d.Search.Handle(ctx, query, kind, limit)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if len(result.Entries) == 0 {
			fmt.Fprintln(out, "No entries found.")
			return nil
		}

		fmt.Fprintf(out, "Found %d entries:\n\n", len(result.Entries))
		return printEntries(out, result.Entries, true)
	})
}
