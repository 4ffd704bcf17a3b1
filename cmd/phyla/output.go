package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/ersonp/phyla/internal/domain/entities"
)

// printEntries writes entries as a FORM/GLOSS table. The ID column is shown
// only for saved entries.
func printEntries(w io.Writer, entries []entities.LexiconEntry, withID bool) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if withID {
		fmt.Fprintln(tw, "ID\tKIND\tGLOSS\tFORM\tCONTEXT")
	} else {
		fmt.Fprintln(tw, "GLOSS\tFORM")
	}

	for _, e := range entries {
		if withID {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", e.ID, e.Kind, e.Gloss, e.Form, e.Context)
		} else {
			fmt.Fprintf(tw, "%s\t%s\n", e.Gloss, e.Form)
		}
	}
	return tw.Flush()
}

// savedNote reports where a generated entry went when --save was given.
func savedNote(w io.Writer, save bool, n int) {
	if save {
		fmt.Fprintf(w, "Saved %d %s to the lexicon.\n", n, plural(n, "entry", "entries"))
	}
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
