package main

import (
	"fmt"
	"io"
	"slices"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/ersonp/phyla/pkg/genome"
	"github.com/ersonp/phyla/pkg/phonology"
)

// genomeView is the printable form of a genome.
type genomeView struct {
	Language         string        `yaml:"language"`
	ID               string        `yaml:"id"`
	Seed             uint64        `yaml:"seed"`
	WordOrder        string        `yaml:"word_order"`
	Morphology       string        `yaml:"morphology"`
	Stress           string        `yaml:"stress"`
	SyllablePatterns []string      `yaml:"syllable_patterns"`
	Inventory        inventoryView `yaml:"inventory"`
}

type inventoryView struct {
	Stops      []phonology.Consonant `yaml:"stops,flow"`
	Fricatives []phonology.Consonant `yaml:"fricatives,flow"`
	Nasals     []phonology.Consonant `yaml:"nasals,flow"`
	Liquids    []phonology.Consonant `yaml:"liquids,flow"`
	Glides     []phonology.Consonant `yaml:"glides,flow"`
	Vowels     []phonology.Vowel     `yaml:"vowels,flow"`
	Weights    weightsView           `yaml:"category_weights"`
}

type weightsView struct {
	Stops      float32 `yaml:"stops"`
	Fricatives float32 `yaml:"fricatives"`
	Nasals     float32 `yaml:"nasals"`
	Liquids    float32 `yaml:"liquids"`
	Glides     float32 `yaml:"glides"`
}

func newGenomeView(name, id string, g *genome.Genome) genomeView {
	patterns := make([]string, len(g.SyllablePatterns))
	for i, p := range g.SyllablePatterns {
		patterns[i] = p.Pattern()
	}

	inv := g.Inventory
	w := inv.CategoryWeights
	return genomeView{
		Language:         name,
		ID:               id,
		Seed:             g.Seed,
		WordOrder:        g.WordOrder.String(),
		Morphology:       g.Morphology.String(),
		Stress:           g.Prosody.Stress.String(),
		SyllablePatterns: patterns,
		Inventory: inventoryView{
			Stops:      slices.Clone(inv.Stops),
			Fricatives: slices.Clone(inv.Fricatives),
			Nasals:     slices.Clone(inv.Nasals),
			Liquids:    slices.Clone(inv.Liquids),
			Glides:     slices.Clone(inv.Glides),
			Vowels:     slices.Clone(inv.Vowels),
			Weights: weightsView{
				Stops:      w[phonology.Stops],
				Fricatives: w[phonology.Fricatives],
				Nasals:     w[phonology.Nasals],
				Liquids:    w[phonology.Liquids],
				Glides:     w[phonology.Glides],
			},
		},
	}
}

func newGenomeCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "genome",
		Short: "Show a language's phonology and grammar",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenome(cmd, format)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "text", "Output format (text, yaml)")

	return cmd
}

func runGenome(cmd *cobra.Command, format string) error {
	if !slices.Contains(validGenomeFormats, format) {
		return fmt.Errorf("invalid format %q, valid formats: %v", format, validGenomeFormats)
	}

	return withDeps(cmd.Context(), 0, func(d *Deps) error {
		view := newGenomeView(d.Language.Name, d.Language.ID(), d.Language.Genome())
		if format == "yaml" {
			return writeGenomeYAML(cmd.OutOrStdout(), view)
		}
		return writeGenomeText(cmd.OutOrStdout(), view)
	})
}

func writeGenomeYAML(w io.Writer, view genomeView) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(view); err != nil {
		return fmt.Errorf("encoding genome: %w", err)
	}
	return enc.Close()
}

func writeGenomeText(w io.Writer, view genomeView) error {
	inv := view.Inventory
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Language:\t%s (%s)\n", view.Language, view.ID)
	fmt.Fprintf(tw, "Word order:\t%s\n", view.WordOrder)
	fmt.Fprintf(tw, "Morphology:\t%s\n", view.Morphology)
	fmt.Fprintf(tw, "Stress:\t%s\n", view.Stress)
	fmt.Fprintf(tw, "Syllables:\t%s\n", strings.Join(view.SyllablePatterns, " "))
	fmt.Fprintf(tw, "Stops:\t%s\t%.2f\n", joinPhonemes(inv.Stops), inv.Weights.Stops)
	fmt.Fprintf(tw, "Fricatives:\t%s\t%.2f\n", joinPhonemes(inv.Fricatives), inv.Weights.Fricatives)
	fmt.Fprintf(tw, "Nasals:\t%s\t%.2f\n", joinPhonemes(inv.Nasals), inv.Weights.Nasals)
	fmt.Fprintf(tw, "Liquids:\t%s\t%.2f\n", joinPhonemes(inv.Liquids), inv.Weights.Liquids)
	fmt.Fprintf(tw, "Glides:\t%s\t%.2f\n", joinPhonemes(inv.Glides), inv.Weights.Glides)
	fmt.Fprintf(tw, "Vowels:\t%s\n", joinPhonemes(inv.Vowels))
	return tw.Flush()
}

func joinPhonemes[T ~string](phonemes []T) string {
	if len(phonemes) == 0 {
		return "-"
	}
	parts := make([]string, len(phonemes))
	for i, p := range phonemes {
		parts[i] = string(p)
	}
	return strings.Join(parts, " ")
}

func newMorphemesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "morphemes",
		Short: "List a language's meaning-bearing roots",
		Long:  "Lists the morpheme for each of the 55 core meanings with its cultural weight.",
		Args:  cobra.NoArgs,
		RunE:  runMorphemes,
	}
}

func runMorphemes(cmd *cobra.Command, args []string) error {
	return withDeps(cmd.Context(), 0, func(d *Deps) error {
		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "MEANING\tFORM\tWEIGHT")
		for _, m := range d.Language.Naming().Morphemes.All() {
			fmt.Fprintf(tw, "%s\t%s\t%.2f\n", m.Meaning, m.Form, m.Weight)
		}
		return tw.Flush()
	})
}
