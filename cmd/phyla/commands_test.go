package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/ersonp/phyla/pkg/culture"
	"github.com/ersonp/phyla/pkg/language"
	"github.com/ersonp/phyla/pkg/naming"
)

// execute runs the CLI in the current directory and returns stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	cmd := newRootCmd()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(t.Context())
	return stdout.String(), err
}

// project creates a workspace with one language, eldar.
func project(t *testing.T) *language.Language {
	t.Helper()
	t.Chdir(t.TempDir())

	out, err := execute(t, "languages", "create", "eldar", "--geography", "mountains", "--seed", "42")
	require.NoError(t, err)
	require.Contains(t, out, "Initialized phyla")
	require.Contains(t, out, `Created language "eldar" (lang_42)`)

	return language.New(culture.NewProfile(3, 3, 3, 3, 3, 3), culture.Mountains, 42)
}

func TestLanguagesCommands(t *testing.T) {
	project(t)

	_, err := execute(t, "languages", "create", "seafolk", "-g", "coastal", "-c", "4,5,2,3,3,2", "-d", "island traders")
	require.NoError(t, err)

	out, err := execute(t, "languages")
	require.NoError(t, err)
	assert.Contains(t, out, "NAME")
	assert.Contains(t, out, "eldar")
	assert.Contains(t, out, "island traders")

	out, err = execute(t, "languages", "show", "seafolk")
	require.NoError(t, err)
	assert.Contains(t, out, "coastal")
	assert.Contains(t, out, "A=4 O=5 C=2 X=3 H=3 E=2")

	_, err = execute(t, "word", "fire")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "language is required")

	_, err = execute(t, "word", "-l", "eldr", "fire")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `did you mean "eldar"`)

	out, err = execute(t, "languages", "delete", "seafolk")
	require.NoError(t, err)
	assert.Contains(t, out, `Deleted language "seafolk"`)

	out, err = execute(t, "languages", "list")
	require.NoError(t, err)
	assert.NotContains(t, out, "seafolk")
}

func TestLanguagesCreate_InvalidInput(t *testing.T) {
	t.Chdir(t.TempDir())

	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{"too few scores", []string{"--culture", "3,3,3"}, "6 comma-separated scores"},
		{"not a number", []string{"--culture", "3,3,x,3,3,3"}, "culture score 3"},
		{"out of range", []string{"--culture", "3,3,3,3,3,9"}, "emotionality"},
		{"unknown geography", []string{"--geography", "tundra"}, "unknown geography"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"languages", "create", "eldar"}, tt.args...)
			_, err := execute(t, args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLanguagesCreate_SeedFromName(t *testing.T) {
	t.Chdir(t.TempDir())

	first, err := execute(t, "languages", "create", "eldar")
	require.NoError(t, err)

	require.NoError(t, os.RemoveAll(".phyla"))

	second, err := execute(t, "languages", "create", "eldar")
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestWordAndPhraseCommands(t *testing.T) {
	lang := project(t)

	out, err := execute(t, "word", "fire")
	require.NoError(t, err)
	assert.Equal(t, lang.TranslateWord("fire")+"\n", out)

	out, err = execute(t, "word", "fire", "water")
	require.NoError(t, err)
	assert.Contains(t, out, lang.TranslateWord("water"))

	out, err = execute(t, "phrase", "the", "river", "flows")
	require.NoError(t, err)
	assert.Equal(t, lang.TranslatePhrase("the river flows")+"\n", out)

	// Generating alone never creates a lexicon
	assert.NoDirExists(t, filepath.Join(".phyla", "languages"))
}

func TestNameCommands(t *testing.T) {
	lang := project(t)
	sys := lang.Naming()

	out, err := execute(t, "name", "person", "--id", "7")
	require.NoError(t, err)
	assert.Equal(t, sys.GeneratePersonalName(naming.NewPersonalContext(7))+"\n", out)

	out, err = execute(t, "name", "place", "--id", "3", "--type", "landmark", "--founder", "Aldo")
	require.NoError(t, err)
	pc := naming.NewPlaceContext(3, naming.Landmark).WithFounder("Aldo")
	assert.Equal(t, sys.GeneratePlaceName(pc)+"\n", out)

	out, err = execute(t, "name", "epithet", "--id", "11", "--trait", "brave", "--base", "Aldo")
	require.NoError(t, err)
	ec := naming.NewEpithetContext(11).WithCharacteristic(naming.Brave)
	assert.Equal(t, sys.GenerateNameWithEpithet("Aldo", ec)+"\n", out)

	_, err = execute(t, "name", "place", "--type", "swamp")
	require.Error(t, err)

	_, err = execute(t, "name", "epithet", "--trait", "sleepy")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown characteristic")
}

func TestLexiconCommands(t *testing.T) {
	lang := project(t)

	out, err := execute(t, "word", "--save", "fire", "water", "stone")
	require.NoError(t, err)
	assert.Contains(t, out, "Saved 3 entries to the lexicon.")

	_, err = execute(t, "name", "person", "--id", "7", "--save")
	require.NoError(t, err)

	out, err = execute(t, "lexicon", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Showing 4 of 4 entries")
	assert.Contains(t, out, lang.TranslateWord("stone"))

	out, err = execute(t, "lexicon", "list", "--kind", "personal_name")
	require.NoError(t, err)
	assert.Contains(t, out, "Showing 1 of 1 entries")
	assert.Contains(t, out, "person:7")

	out, err = execute(t, "lexicon", "export", "--format", "csv", "--kind", "word")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "id,kind,gloss,form,context", lines[0])
	assert.Contains(t, lines[1], ",word,fire,"+lang.TranslateWord("fire")+",")
	id := strings.SplitN(lines[1], ",", 2)[0]

	exportPath := filepath.Join(t.TempDir(), "lexicon.md")
	out, err = execute(t, "lexicon", "export", "-f", "markdown", "-o", exportPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Exported 4 entries")
	data, err := os.ReadFile(exportPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "# eldar Lexicon")

	out, err = execute(t, "lexicon", "delete", id)
	require.NoError(t, err)
	assert.Contains(t, out, "Deleted "+id)

	out, err = execute(t, "lexicon", "list", "--kind", "word")
	require.NoError(t, err)
	assert.Contains(t, out, "Showing 2 of 2 entries")

	_, err = execute(t, "lexicon", "delete", id)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")

	_, err = execute(t, "lexicon", "homophones")
	require.NoError(t, err)

	out, err = execute(t, "lexicon", "history", id)
	require.NoError(t, err)
	assert.Contains(t, out, "create")
	assert.Contains(t, out, "delete")
	assert.Contains(t, out, "gloss=fire")

	out, err = execute(t, "lexicon", "history", "--action", "delete")
	require.NoError(t, err)
	assert.Contains(t, out, id)

	out, err = execute(t, "lexicon", "history", "--action", "import")
	require.NoError(t, err)
	assert.Contains(t, out, "No history found.")

	_, err = execute(t, "lexicon", "export", "--format", "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid format")
}

func TestImportCommand(t *testing.T) {
	lang := project(t)

	path := filepath.Join(t.TempDir(), "concepts.csv")
	require.NoError(t, os.WriteFile(path, []byte("concept,kind\nfire,word\nthe river flows,phrase\nwater,verb\n"), 0644))

	out, err := execute(t, "import", path, "--dry-run")
	require.NoError(t, err)
	assert.Contains(t, out, "Dry run: 2 entries would be imported, 1 errors")
	assert.Contains(t, out, lang.TranslatePhrase("the river flows"))
	assert.NoDirExists(t, filepath.Join(".phyla", "languages"))

	out, err = execute(t, "import", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Imported: 2 entries")

	out, err = execute(t, "import", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Imported: 0 entries, 2 skipped")

	out, err = execute(t, "import", path, "--on-conflict", "overwrite")
	require.NoError(t, err)
	assert.Contains(t, out, "Imported: 2 entries")

	_, err = execute(t, "import", path, "--on-conflict", "merge")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid --on-conflict")
}

func TestGenomeCommand(t *testing.T) {
	lang := project(t)

	out, err := execute(t, "genome", "--format", "yaml")
	require.NoError(t, err)

	var view genomeView
	require.NoError(t, yaml.Unmarshal([]byte(out), &view))
	assert.Equal(t, "eldar", view.Language)
	assert.Equal(t, "lang_42", view.ID)
	assert.Equal(t, uint64(42), view.Seed)
	assert.Equal(t, lang.WordOrder().String(), view.WordOrder)
	assert.Equal(t, "none", view.Stress)
	assert.Len(t, view.SyllablePatterns, len(lang.Genome().SyllablePatterns))
	assert.Len(t, view.Inventory.Vowels, len(lang.Genome().Inventory.Vowels))

	out, err = execute(t, "genome")
	require.NoError(t, err)
	assert.Contains(t, out, "Word order:")
	assert.Contains(t, out, lang.Genome().Morphology.String())

	_, err = execute(t, "genome", "--format", "json")
	require.Error(t, err)
}

func TestMorphemesCommand(t *testing.T) {
	lang := project(t)

	out, err := execute(t, "morphemes")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	all := lang.Naming().Morphemes.All()
	require.Len(t, lines, len(all)+1)
	assert.True(t, strings.HasPrefix(lines[0], "MEANING"))
	assert.Contains(t, lines[1], all[0].Form)
}

func TestCommands_WithoutConfig(t *testing.T) {
	t.Chdir(t.TempDir())

	_, err := execute(t, "word", "fire")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config file not found")

	out, err := execute(t, "languages")
	require.NoError(t, err)
	assert.Contains(t, out, "No languages configured.")
}
