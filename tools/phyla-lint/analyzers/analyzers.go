// Package analyzers provides all custom static analyzers for phyla.
package analyzers

import (
	"golang.org/x/tools/go/analysis"

	"github.com/ersonp/phyla/tools/phyla-lint/analyzers/globalrand"
	"github.com/ersonp/phyla/tools/phyla-lint/analyzers/loopcall"
	"github.com/ersonp/phyla/tools/phyla-lint/analyzers/maprange"
)

// All returns all analyzers to run.
func All() []*analysis.Analyzer {
	return []*analysis.Analyzer{
		loopcall.Analyzer,
		globalrand.Analyzer,
		maprange.Analyzer,
	}
}
