package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ersonp/phyla/internal/application/handlers"
	"github.com/ersonp/phyla/internal/domain/ports"
	"github.com/ersonp/phyla/internal/infrastructure/config"
	"github.com/ersonp/phyla/pkg/culture"
	"github.com/ersonp/phyla/pkg/rng"
)

const defaultCulture = "3,3,3,3,3,3"

type createFlags struct {
	geography   string
	seed        uint64
	culture     string
	description string
}

func newLanguagesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "languages",
		Short: "Manage languages",
		RunE:  runLanguagesList,
	}

	cmd.AddCommand(
		newLanguagesListCmd(),
		newLanguagesCreateCmd(),
		newLanguagesDeleteCmd(),
		newLanguagesShowCmd(),
	)

	return cmd
}

func newLanguagesListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all languages",
		Args:  cobra.NoArgs,
		RunE:  runLanguagesList,
	}
}

func runLanguagesList(cmd *cobra.Command, args []string) error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getting current directory: %w", err)
	}

	summaries, err := handlers.NewLanguageHandler(cwd).List()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(summaries) == 0 {
		fmt.Fprintln(out, "No languages configured.")
		fmt.Fprintln(out, "Use 'phyla languages create NAME' to create one.")
		return nil
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tID\tGEOGRAPHY\tDESCRIPTION")
	for _, s := range summaries {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", s.Name, s.ID, s.Geography, s.Description)
	}
	return tw.Flush()
}

func newLanguagesCreateCmd() *cobra.Command {
	var flags createFlags

	cmd := &cobra.Command{
		Use:   "create NAME",
		Short: "Create a new language",
		Long: `Creates a language from a geography, a seed and a culture.

The culture is six trait scores from 1 to 5, in the order agreeableness,
openness, conscientiousness, extraversion, honesty-humility, emotionality.
Without --seed the seed is derived from the name.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("seed") {
				flags.seed = rng.HashString(args[0])
			}
			return runLanguagesCreate(cmd, args[0], flags)
		},
	}

	cmd.Flags().StringVarP(&flags.geography, "geography", "g", "plains", "Geography (mountains, coastal, desert, forest, plains, river_valley)")
	cmd.Flags().Uint64Var(&flags.seed, "seed", 0, "Seed (default: derived from the name)")
	cmd.Flags().StringVarP(&flags.culture, "culture", "c", defaultCulture, "Trait scores a,o,c,x,h,e from 1 to 5")
	cmd.Flags().StringVarP(&flags.description, "description", "d", "", "Language description")

	return cmd
}

func runLanguagesCreate(cmd *cobra.Command, name string, flags createFlags) error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getting current directory: %w", err)
	}

	profile, err := parseCulture(flags.culture)
	if err != nil {
		return err
	}

	geo, err := culture.ParseGeography(flags.geography)
	if err != nil {
		return err
	}

	result, err := handlers.NewLanguageHandler(cwd).Create(name, config.LanguageConfig{
		Description: flags.description,
		Seed:        flags.seed,
		Geography:   geo.String(),
		Culture:     profile,
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if result.Initialized {
		fmt.Fprintf(out, "Initialized phyla in %s\n", config.ConfigDir(cwd))
	}
	fmt.Fprintf(out, "Created language %q (%s)\n", name, result.Language.ID())
	fmt.Fprintf(out, "Sample: %s\n", strings.Join(sampleWords(result.Language.TranslateWord), " "))

	return nil
}

func newLanguagesDeleteCmd() *cobra.Command {
	var dropIndex bool

	cmd := &cobra.Command{
		Use:   "delete NAME",
		Short: "Delete a language and its lexicon",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLanguagesDelete(cmd, args[0], dropIndex)
		},
	}

	cmd.Flags().BoolVar(&dropIndex, "drop-index", false, "Also drop the language's search collection in qdrant")

	return cmd
}

func runLanguagesDelete(cmd *cobra.Command, name string, dropIndex bool) error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getting current directory: %w", err)
	}

	var collections ports.CollectionManager
	if dropIndex {
		cfg, err := config.Load(cwd)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		index, err := openIndex(cfg, name)
		if err != nil {
			return err
		}
		defer index.Close()
		collections = index
	}

	result, err := handlers.NewLanguageHandler(cwd).Delete(cmd.Context(), name, collections)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Deleted language %q\n", result.Name)
	if result.RemovedLexicon {
		fmt.Fprintln(out, "Removed its lexicon.")
	}
	if result.DroppedCollection {
		fmt.Fprintf(out, "Dropped collection %q\n", config.CollectionName(name))
	}
	return nil
}

func newLanguagesShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show [NAME]",
		Short: "Show a language's settings and derived traits",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := globalLanguage
			if len(args) == 1 {
				name = args[0]
			}
			return runLanguagesShow(cmd, name)
		},
	}
}

func runLanguagesShow(cmd *cobra.Command, name string) error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getting current directory: %w", err)
	}

	details, err := handlers.NewLanguageHandler(cwd).Show(name)
	if err != nil {
		return err
	}

	lang := details.Language
	sys := lang.Naming()
	c := details.Config.Culture

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Name:\t%s\n", details.Name)
	if details.Config.Description != "" {
		fmt.Fprintf(tw, "Description:\t%s\n", details.Config.Description)
	}
	fmt.Fprintf(tw, "ID:\t%s\n", lang.ID())
	fmt.Fprintf(tw, "Seed:\t%d\n", details.Config.Seed)
	fmt.Fprintf(tw, "Geography:\t%s\n", lang.Geography())
	fmt.Fprintf(tw, "Culture:\tA=%g O=%g C=%g X=%g H=%g E=%g\n",
		c.Agreeableness, c.Openness, c.Conscientiousness, c.Extraversion, c.HonestyHumility, c.Emotionality)
	fmt.Fprintf(tw, "Word order:\t%s\n", lang.WordOrder())
	fmt.Fprintf(tw, "Morphology:\t%s\n", lang.Genome().Morphology)
	fmt.Fprintf(tw, "Name pattern:\t%s\n", sys.Pattern)
	fmt.Fprintf(tw, "Combining rule:\t%s\n", sys.CombiningRule)
	fmt.Fprintf(tw, "Syllables per name:\t%d\n", sys.SyllablesPerName)
	fmt.Fprintf(tw, "Sample:\t%s\n", strings.Join(sampleWords(lang.TranslateWord), " "))
	return tw.Flush()
}

// parseCulture reads six comma-separated trait scores.
func parseCulture(s string) (culture.Profile, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 6 {
		return culture.Profile{}, fmt.Errorf("culture needs 6 comma-separated scores (a,o,c,x,h,e), got %d", len(parts))
	}

	var scores [6]float32
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 32)
		if err != nil {
			return culture.Profile{}, fmt.Errorf("culture score %d: %w", i+1, err)
		}
		scores[i] = float32(v)
	}

	return culture.NewProfile(scores[0], scores[1], scores[2], scores[3], scores[4], scores[5]), nil
}

var sampleConcepts = []string{"fire", "water", "stone", "sky", "home"}

func sampleWords(translate func(string) string) []string {
	words := make([]string, len(sampleConcepts))
	for i, c := range sampleConcepts {
		words[i] = translate(c)
	}
	return words
}
