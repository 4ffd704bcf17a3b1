package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ersonp/phyla/pkg/culture"
	"github.com/ersonp/phyla/pkg/naming"
)

type personFlags struct {
	id     uint64
	parent string
	order  int
	save   bool
}

type placeFlags struct {
	id        uint64
	placeType string
	geography string
	founder   string
	event     string
	save      bool
}

type epithetFlags struct {
	id          uint64
	achievement string
	birth       string
	trait       string
	base        string
	save        bool
}

func newNameCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "name",
		Short: "Generate names",
		Long:  "Generates personal names, place names and epithets. The same ID always gets the same name.",
	}

	cmd.AddCommand(
		newNamePersonCmd(),
		newNamePlaceCmd(),
		newNameEpithetCmd(),
	)

	return cmd
}

func newNamePersonCmd() *cobra.Command {
	var flags personFlags

	cmd := &cobra.Command{
		Use:   "person",
		Short: "Generate a personal name",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runNamePerson(cmd, flags)
		},
	}

	cmd.Flags().Uint64Var(&flags.id, "id", 0, "Entity ID")
	cmd.Flags().StringVar(&flags.parent, "parent", "", "Parent's name, used by patronymic cultures")
	cmd.Flags().IntVar(&flags.order, "birth-order", 0, "Birth order among siblings")
	cmd.Flags().BoolVar(&flags.save, "save", false, "Save the name to the lexicon")

	return cmd
}

func runNamePerson(cmd *cobra.Command, flags personFlags) error {
	ctx := cmd.Context()

	pc := naming.NewPersonalContext(flags.id)
	if flags.parent != "" {
		pc = pc.WithParent(flags.parent)
	}
	if flags.order > 0 {
		pc = pc.WithBirthOrder(flags.order)
	}

	return withDeps(ctx, storeIf(flags.save), func(d *Deps) error {
		entry, err := d.Lexicon.Person(ctx, d.Language, pc)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, entry.Form)
		savedNote(out, flags.save, 1)
		return nil
	})
}

func newNamePlaceCmd() *cobra.Command {
	var flags placeFlags

	cmd := &cobra.Command{
		Use:   "place",
		Short: "Generate a place name",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runNamePlace(cmd, flags)
		},
	}

	cmd.Flags().Uint64Var(&flags.id, "id", 0, "Place ID")
	cmd.Flags().StringVarP(&flags.placeType, "type", "t", "settlement", "Place type (settlement, natural, landmark, region)")
	cmd.Flags().StringVarP(&flags.geography, "geography", "g", "", "Local geography, if it differs from the language's")
	cmd.Flags().StringVar(&flags.founder, "founder", "", "Founder's name")
	cmd.Flags().StringVar(&flags.event, "event", "", "Historical event that happened there")
	cmd.Flags().BoolVar(&flags.save, "save", false, "Save the name to the lexicon")

	return cmd
}

func runNamePlace(cmd *cobra.Command, flags placeFlags) error {
	ctx := cmd.Context()

	placeType, err := naming.ParsePlaceType(flags.placeType)
	if err != nil {
		return err
	}

	pc := naming.NewPlaceContext(flags.id, placeType)
	if flags.geography != "" {
		geo, err := culture.ParseGeography(flags.geography)
		if err != nil {
			return err
		}
		pc = pc.WithGeography(geo)
	}
	if flags.founder != "" {
		pc = pc.WithFounder(flags.founder)
	}
	if flags.event != "" {
		pc = pc.WithEvent(flags.event)
	}

	return withDeps(ctx, storeIf(flags.save), func(d *Deps) error {
		entry, err := d.Lexicon.Place(ctx, d.Language, pc)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, entry.Form)
		savedNote(out, flags.save, 1)
		return nil
	})
}

func newNameEpithetCmd() *cobra.Command {
	var flags epithetFlags

	cmd := &cobra.Command{
		Use:   "epithet",
		Short: "Generate an epithet",
		Long: `Generates an epithet from an achievement, a birth event or a character trait,
checked in that order. How often a culture grants epithets follows its openness,
so some entities get none.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runNameEpithet(cmd, flags)
		},
	}

	cmd.Flags().Uint64Var(&flags.id, "id", 0, "Entity ID")
	cmd.Flags().StringVar(&flags.achievement, "achievement", "", "Deed the entity is known for")
	cmd.Flags().StringVar(&flags.birth, "birth", "", "Event at the entity's birth")
	cmd.Flags().StringVar(&flags.trait, "trait", "", "Defining trait (brave, wise, cunning, ...)")
	cmd.Flags().StringVar(&flags.base, "base", "", "Name to attach the epithet to")
	cmd.Flags().BoolVar(&flags.save, "save", false, "Save the epithet to the lexicon")

	return cmd
}

func runNameEpithet(cmd *cobra.Command, flags epithetFlags) error {
	ctx := cmd.Context()

	ec := naming.NewEpithetContext(flags.id)
	if flags.achievement != "" {
		ec = ec.WithAchievement(flags.achievement)
	}
	if flags.birth != "" {
		ec = ec.WithBirthEvent(flags.birth)
	}
	if flags.trait != "" {
		ch, err := naming.ParseCharacteristic(flags.trait)
		if err != nil {
			return err
		}
		ec = ec.WithCharacteristic(ch)
	}

	return withDeps(ctx, storeIf(flags.save), func(d *Deps) error {
		result, err := d.Lexicon.Epithet(ctx, d.Language, ec, flags.base)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		switch {
		case result.Entry == nil && flags.base != "":
			fmt.Fprintln(out, result.Title)
			fmt.Fprintln(cmd.ErrOrStderr(), "(no epithet for this entity)")
		case result.Entry == nil:
			fmt.Fprintln(cmd.ErrOrStderr(), "No epithet for this entity.")
		case flags.base != "":
			fmt.Fprintln(out, result.Title)
			savedNote(out, flags.save, 1)
		default:
			fmt.Fprintln(out, result.Entry.Form)
			savedNote(out, flags.save, 1)
		}
		return nil
	})
}
