package maprange_test

import (
	"testing"

	"golang.org/x/tools/go/analysis/analysistest"

	"github.com/ersonp/phyla/tools/phyla-lint/analyzers/maprange"
)

func TestAnalyzer(t *testing.T) {
	if err := maprange.Analyzer.Flags.Set("scope", ""); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = maprange.Analyzer.Flags.Set("scope", "/pkg/") })

	testdata := analysistest.TestData()
	analysistest.Run(t, testdata, maprange.Analyzer, "a")
}
