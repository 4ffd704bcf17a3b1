package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ersonp/phyla/internal/domain/entities"
	"github.com/ersonp/phyla/internal/domain/mocks"
	"github.com/ersonp/phyla/pkg/culture"
	"github.com/ersonp/phyla/pkg/naming"
)

func TestLexiconService_Translate(t *testing.T) {
	store := mocks.NewLexiconStore()
	service := NewLexiconService(store, nil)
	lang := testLanguage()
	ctx := context.Background()

	entry, err := service.Translate(ctx, lang, "  Fire ")
	require.NoError(t, err)

	assert.Equal(t, "eldar", entry.Language)
	assert.Equal(t, entities.KindWord, entry.Kind)
	assert.Equal(t, "fire", entry.Gloss)
	assert.Equal(t, lang.TranslateWord("fire"), entry.Form)
	assert.NotEmpty(t, entry.ID)

	require.Len(t, store.Audit, 1)
	assert.Equal(t, entities.ActionCreate, store.Audit[0].Action)
	assert.Equal(t, entry.ID, store.Audit[0].EntryID)

	t.Run("repeat updates the same entry", func(t *testing.T) {
		again, err := service.Translate(ctx, lang, "fire")
		require.NoError(t, err)
		assert.Equal(t, entry.ID, again.ID)
		assert.Equal(t, entry.Form, again.Form)
		assert.Len(t, store.Entries, 1)
		assert.Equal(t, entities.ActionUpdate, store.Audit[1].Action)
	})

	t.Run("empty concept", func(t *testing.T) {
		_, err := service.Translate(ctx, lang, "   ")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "concept is required")
	})
}

func TestLexiconService_TranslateWithContext(t *testing.T) {
	store := mocks.NewLexiconStore()
	service := NewLexiconService(store, nil)

	entry, err := service.TranslateWithContext(context.Background(), testLanguage(), "smith", "a craftsman")
	require.NoError(t, err)
	assert.Equal(t, "a craftsman", entry.Context)
	assert.Equal(t, "a craftsman", store.Entries[entry.ID].Context)
}

func TestLexiconService_GenerateOnly(t *testing.T) {
	service := NewLexiconService(nil, nil)
	lang := testLanguage()
	ctx := context.Background()

	assert.False(t, service.Persistent())

	entry, err := service.Translate(ctx, lang, "water")
	require.NoError(t, err)
	assert.Empty(t, entry.ID)
	assert.Equal(t, lang.TranslateWord("water"), entry.Form)

	_, err = service.List(ctx, "eldar", "", 0, 0)
	require.Error(t, err)
	_, err = service.Count(ctx, "eldar", "")
	require.Error(t, err)
	require.Error(t, service.Delete(ctx, "x"))
}

func TestLexiconService_TranslatePhrase(t *testing.T) {
	service := NewLexiconService(mocks.NewLexiconStore(), nil)
	lang := testLanguage()

	entry, err := service.TranslatePhrase(context.Background(), lang, "The  Sun   rises")
	require.NoError(t, err)
	assert.Equal(t, entities.KindPhrase, entry.Kind)
	assert.Equal(t, "the sun rises", entry.Gloss)
	assert.Equal(t, lang.TranslatePhrase("the sun rises"), entry.Form)

	_, err = service.TranslatePhrase(context.Background(), lang, "")
	require.Error(t, err)
}

func TestLexiconService_NamePerson(t *testing.T) {
	store := mocks.NewLexiconStore()
	service := NewLexiconService(store, nil)
	lang := testLanguage()

	pc := naming.NewPersonalContext(7).WithParent("Aldo")
	entry, err := service.NamePerson(context.Background(), lang, pc)
	require.NoError(t, err)

	assert.Equal(t, entities.KindPersonalName, entry.Kind)
	assert.Equal(t, "person:7", entry.Gloss)
	assert.Equal(t, lang.Naming().GeneratePersonalName(pc), entry.Form)
	assert.Equal(t, "child of Aldo", entry.Context)
	assert.Len(t, store.Entries, 1)
}

func TestLexiconService_NamePlace(t *testing.T) {
	service := NewLexiconService(mocks.NewLexiconStore(), nil)
	lang := testLanguage()

	pc := naming.NewPlaceContext(3, naming.Settlement).
		WithGeography(culture.Forest).
		WithFounder("Kalu").
		WithEvent("the long winter")
	entry, err := service.NamePlace(context.Background(), lang, pc)
	require.NoError(t, err)

	assert.Equal(t, entities.KindPlaceName, entry.Kind)
	assert.Equal(t, "place:3:settlement", entry.Gloss)
	assert.Equal(t, lang.Naming().GeneratePlaceName(pc), entry.Form)
	assert.Equal(t, "forest; founded by Kalu; site of the long winter", entry.Context)
}

func TestLexiconService_NameEpithet(t *testing.T) {
	ctx := context.Background()

	t.Run("granted", func(t *testing.T) {
		store := mocks.NewLexiconStore()
		service := NewLexiconService(store, nil)
		lang := openLanguage()

		ec := naming.NewEpithetContext(9).WithCharacteristic(naming.Brave)
		entry, err := service.NameEpithet(ctx, lang, ec)
		require.NoError(t, err)
		require.NotNil(t, entry)

		want, ok := lang.Naming().GenerateEpithet(ec)
		require.True(t, ok)
		assert.Equal(t, want, entry.Form)
		assert.Equal(t, "epithet:9", entry.Gloss)
		assert.Equal(t, "brave", entry.Context)
		assert.Len(t, store.Entries, 1)
	})

	t.Run("withheld", func(t *testing.T) {
		store := mocks.NewLexiconStore()
		service := NewLexiconService(store, nil)

		entry, err := service.NameEpithet(ctx, closedLanguage(), naming.NewEpithetContext(9))
		require.NoError(t, err)
		assert.Nil(t, entry)
		assert.Empty(t, store.Entries)
		assert.Empty(t, store.Audit)
	})
}

func TestLexiconService_StoreErrors(t *testing.T) {
	store := mocks.NewLexiconStore()
	store.Err = errors.New("disk full")
	service := NewLexiconService(store, nil)
	ctx := context.Background()

	_, err := service.Translate(ctx, testLanguage(), "fire")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")

	_, err = service.List(ctx, "eldar", "", 0, 0)
	require.Error(t, err)
}

func TestLexiconService_ListCountDelete(t *testing.T) {
	store := mocks.NewLexiconStore()
	service := NewLexiconService(store, nil)
	lang := testLanguage()
	ctx := context.Background()

	for _, c := range []string{"water", "fire", "stone"} {
		_, err := service.Translate(ctx, lang, c)
		require.NoError(t, err)
	}
	_, err := service.TranslatePhrase(ctx, lang, "the river flows")
	require.NoError(t, err)

	words, err := service.List(ctx, "eldar", entities.KindWord, 0, 0)
	require.NoError(t, err)
	require.Len(t, words, 3)
	assert.Equal(t, "fire", words[0].Gloss)

	n, err := service.Count(ctx, "eldar", "")
	require.NoError(t, err)
	assert.Equal(t, 4, n)

	require.NoError(t, service.Delete(ctx, words[0].ID))
	n, err = service.Count(ctx, "eldar", entities.KindWord)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, entities.ActionDelete, store.Audit[len(store.Audit)-1].Action)

	require.Error(t, service.Delete(ctx, words[0].ID))
}

func TestLexiconService_History(t *testing.T) {
	store := mocks.NewLexiconStore()
	service := NewLexiconService(store, nil)
	ctx := context.Background()

	fire, err := service.Translate(ctx, testLanguage(), "fire")
	require.NoError(t, err)
	_, err = service.Translate(ctx, testLanguage(), "fire")
	require.NoError(t, err)
	_, err = service.Translate(ctx, testLanguage(), "water")
	require.NoError(t, err)

	history, err := service.History(ctx, fire.ID)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, entities.ActionCreate, history[0].Action)
	assert.Equal(t, entities.ActionUpdate, history[1].Action)
	assert.Equal(t, "fire", history[0].Details["gloss"])

	created, err := service.Activity(ctx, entities.ActionCreate, 10)
	require.NoError(t, err)
	assert.Len(t, created, 2)

	t.Run("without store", func(t *testing.T) {
		_, err := NewLexiconService(nil, nil).History(ctx, fire.ID)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no lexicon store")
	})

	t.Run("store error", func(t *testing.T) {
		store.Err = errors.New("locked")
		_, err := service.Activity(ctx, entities.ActionCreate, 10)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "reading audit log")
	})
}

func TestLexiconService_Homophones(t *testing.T) {
	store := mocks.NewLexiconStore()
	ctx := context.Background()

	seed := []entities.LexiconEntry{
		{Language: "eldar", Kind: entities.KindWord, Gloss: "fire", Form: "kala"},
		{Language: "eldar", Kind: entities.KindWord, Gloss: "water", Form: "Kalo"},
		{Language: "eldar", Kind: entities.KindWord, Gloss: "stone", Form: "mirun"},
		{Language: "eldar", Kind: entities.KindPhrase, Gloss: "fire", Form: "kala"},
		{Language: "eldar", Kind: entities.KindWord, Gloss: "starlight", Form: "tessaranu"},
		{Language: "eldar", Kind: entities.KindWord, Gloss: "moonlight", Form: "tessarima"},
		{Language: "dwarvish", Kind: entities.KindWord, Gloss: "axe", Form: "kala"},
	}
	require.NoError(t, store.SaveEntries(ctx, seed))

	service := NewLexiconService(store, nil)

	t.Run("length based default", func(t *testing.T) {
		pairs, err := service.Homophones(ctx, "eldar", 0)
		require.NoError(t, err)

		got := make([][2]string, 0, len(pairs))
		for _, p := range pairs {
			got = append(got, [2]string{p.First.Gloss, p.Second.Gloss})
		}
		// kala/Kalo twice (word and phrase "fire"), tessaranu/tessarima at 3
		assert.ElementsMatch(t, [][2]string{
			{"fire", "water"},
			{"fire", "water"},
			{"moonlight", "starlight"},
		}, got)
		assert.Equal(t, 1, pairs[0].Distance)
		assert.Equal(t, 3, pairs[len(pairs)-1].Distance)
	})

	t.Run("explicit distance", func(t *testing.T) {
		pairs, err := service.Homophones(ctx, "eldar", 1)
		require.NoError(t, err)
		assert.Len(t, pairs, 2)
		for _, p := range pairs {
			assert.Equal(t, 1, p.Distance)
		}
	})
}

func TestDefaultHomophoneDistance(t *testing.T) {
	tests := []struct {
		length   int
		expected int
	}{
		{0, 1}, {4, 1}, {5, 2}, {8, 2}, {9, 3}, {20, 3},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, DefaultHomophoneDistance(tt.length), "length %d", tt.length)
	}
}
