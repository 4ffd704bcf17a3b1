// Package loopcall detects embedding, vector, LLM and lexicon store calls
// inside loops.
package loopcall

import (
	"go/ast"
	"strings"

	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/passes/inspect"
	"golang.org/x/tools/go/ast/inspector"
)

// Analyzer detects external calls inside loops that should be batched.
var Analyzer = &analysis.Analyzer{
	Name:     "loopcall",
	Doc:      "detects embedding, vector, LLM and store calls inside loops that should be batched",
	Requires: []*analysis.Analyzer{inspect.Analyzer},
	Run:      run,
}

const suppress = "nolint:loopcall"

// externalMethods are method names that indicate external calls.
var externalMethods = map[string]bool{
	// Embedder
	"Embed": true,
	// VectorIndex (non-batch)
	"Save":   true,
	"Search": true,
	"Delete": true,
	// ConceptExtractor
	"ExtractConcepts": true,
	// LexiconStore
	"SaveEntry":   true,
	"FindEntry":   true,
	"ListEntries": true,
	"DeleteEntry": true,
}

func run(pass *analysis.Pass) (interface{}, error) {
	inspect := pass.ResultOf[inspect.Analyzer].(*inspector.Inspector)
	suppressed := suppressedLines(pass)

	nodeFilter := []ast.Node{
		(*ast.RangeStmt)(nil),
		(*ast.ForStmt)(nil),
	}

	inspect.Preorder(nodeFilter, func(n ast.Node) {
		var body *ast.BlockStmt
		switch stmt := n.(type) {
		case *ast.RangeStmt:
			body = stmt.Body
		case *ast.ForStmt:
			body = stmt.Body
		}
		if body == nil {
			return
		}

		ast.Inspect(body, func(n ast.Node) bool {
			call, ok := n.(*ast.CallExpr)
			if !ok {
				return true
			}

			sel, ok := call.Fun.(*ast.SelectorExpr)
			if !ok {
				return true
			}

			methodName := sel.Sel.Name
			if !externalMethods[methodName] {
				return true
			}

			pos := pass.Fset.Position(call.Pos())
			if suppressed[lineKey{pos.Filename, pos.Line}] {
				return true
			}

			pass.Reportf(call.Pos(),
				"potential N+1: %s called inside loop - consider batching",
				methodName)
			return true
		})
	})

	return nil, nil
}

type lineKey struct {
	file string
	line int
}

// suppressedLines returns the lines covered by a nolint:loopcall comment:
// the comment's own line and the line after it.
func suppressedLines(pass *analysis.Pass) map[lineKey]bool {
	lines := make(map[lineKey]bool)
	for _, f := range pass.Files {
		for _, group := range f.Comments {
			for _, c := range group.List {
				if !strings.Contains(c.Text, suppress) {
					continue
				}
				pos := pass.Fset.Position(c.Slash)
				lines[lineKey{pos.Filename, pos.Line}] = true
				lines[lineKey{pos.Filename, pos.Line + 1}] = true
			}
		}
	}
	return lines
}
