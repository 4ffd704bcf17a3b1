// Package globalrand reports sources of nondeterminism in the generator
// packages. Everything under pkg/ must draw from the seeded rng package so
// that a seed always yields the same language.
package globalrand

import (
	"go/ast"
	"go/types"
	"strconv"
	"strings"

	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/passes/inspect"
	"golang.org/x/tools/go/ast/inspector"
)

// Analyzer reports global randomness and wall-clock reads.
var Analyzer = &analysis.Analyzer{
	Name:     "globalrand",
	Doc:      "reports math/rand, crypto/rand and time.Now in deterministic packages",
	Requires: []*analysis.Analyzer{inspect.Analyzer},
	Run:      run,
}

// scope limits the check to packages whose import path contains it.
var scope string

func init() {
	Analyzer.Flags.StringVar(&scope, "scope", "/pkg/", "only check packages whose path contains this")
}

var bannedImports = map[string]bool{
	"math/rand":    true,
	"math/rand/v2": true,
	"crypto/rand":  true,
}

func run(pass *analysis.Pass) (interface{}, error) {
	if !strings.Contains(pass.Pkg.Path(), scope) {
		return nil, nil
	}

	for _, f := range pass.Files {
		for _, imp := range f.Imports {
			path, err := strconv.Unquote(imp.Path.Value)
			if err != nil {
				continue
			}
			if bannedImports[path] {
				pass.Reportf(imp.Pos(), "nondeterministic import %q - use the seeded rng package", path)
			}
		}
	}

	inspect := pass.ResultOf[inspect.Analyzer].(*inspector.Inspector)

	nodeFilter := []ast.Node{
		(*ast.SelectorExpr)(nil),
	}

	inspect.Preorder(nodeFilter, func(n ast.Node) {
		sel := n.(*ast.SelectorExpr)
		fn, ok := pass.TypesInfo.Uses[sel.Sel].(*types.Func)
		if !ok || fn.Pkg() == nil {
			return
		}
		if fn.Pkg().Path() == "time" && fn.Name() == "Now" {
			pass.Reportf(sel.Pos(), "time.Now in deterministic package - derive values from the seed")
		}
	})

	return nil, nil
}
