// Package maprange reports ranging over maps in the generator packages,
// where Go's randomized iteration order would leak into generated output.
package maprange

import (
	"go/ast"
	"go/types"
	"strings"

	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/passes/inspect"
	"golang.org/x/tools/go/ast/inspector"
)

// Analyzer reports range statements over maps.
var Analyzer = &analysis.Analyzer{
	Name:     "maprange",
	Doc:      "reports range over map in deterministic packages",
	Requires: []*analysis.Analyzer{inspect.Analyzer},
	Run:      run,
}

var scope string

func init() {
	Analyzer.Flags.StringVar(&scope, "scope", "/pkg/", "only check packages whose path contains this")
}

func run(pass *analysis.Pass) (interface{}, error) {
	if !strings.Contains(pass.Pkg.Path(), scope) {
		return nil, nil
	}

	inspect := pass.ResultOf[inspect.Analyzer].(*inspector.Inspector)

	nodeFilter := []ast.Node{
		(*ast.RangeStmt)(nil),
	}

	inspect.Preorder(nodeFilter, func(n ast.Node) {
		stmt := n.(*ast.RangeStmt)
		t := pass.TypesInfo.TypeOf(stmt.X)
		if t == nil {
			return
		}
		if _, ok := t.Underlying().(*types.Map); ok {
			pass.Reportf(stmt.Pos(), "range over map has random order - iterate a sorted key slice")
		}
	})

	return nil, nil
}
