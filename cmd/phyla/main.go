// Package main provides the entry point for the phyla CLI application.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var (
	version        = "0.1.0-dev"
	globalLanguage string
	globalVerbose  bool
	logger         = slog.New(slog.DiscardHandler)
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string) error {
	rootCmd := newRootCmd()
	rootCmd.SetArgs(args)
	return rootCmd.ExecuteContext(ctx)
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "phyla",
		Short:         "Deterministic constructed languages for worldbuilding",
		Long:          "Generates words, phrases and names from a culture, a geography and a seed. The same inputs always produce the same language.",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logger = newLogger(cmd.ErrOrStderr(), globalVerbose)
		},
	}

	rootCmd.PersistentFlags().StringVarP(&globalLanguage, "language", "l", "", "Language to operate on (optional when only one is configured)")
	rootCmd.PersistentFlags().BoolVar(&globalVerbose, "verbose", false, "Log debug output to stderr")

	rootCmd.AddCommand(
		newLanguagesCmd(),
		newWordCmd(),
		newPhraseCmd(),
		newNameCmd(),
		newGenomeCmd(),
		newMorphemesCmd(),
		newLexiconCmd(),
		newImportCmd(),
		newIngestCmd(),
		newIndexCmd(),
		newSearchCmd(),
	)

	return rootCmd
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
