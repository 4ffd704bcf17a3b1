// phyla-lint checks phyla's determinism and batching rules.
package main

import (
	"golang.org/x/tools/go/analysis/multichecker"

	"github.com/ersonp/phyla/tools/phyla-lint/analyzers"
)

func main() {
	multichecker.Main(analyzers.All()...)
}
