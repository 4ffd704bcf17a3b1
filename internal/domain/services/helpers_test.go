package services

import (
	"github.com/ersonp/phyla/pkg/culture"
	"github.com/ersonp/phyla/pkg/language"
)

func testLanguage() NamedLanguage {
	return NewNamedLanguage("eldar", language.New(culture.NeutralProfile(), culture.Plains, 42))
}

// openLanguage has maximal openness, so it always grants epithets.
func openLanguage() NamedLanguage {
	c := culture.NewProfile(3, 5, 3, 3, 3, 3)
	return NewNamedLanguage("seafolk", language.New(c, culture.Coastal, 7))
}

// closedLanguage has minimal openness, so it never grants epithets.
func closedLanguage() NamedLanguage {
	c := culture.NewProfile(3, 1, 3, 3, 3, 3)
	return NewNamedLanguage("stonefolk", language.New(c, culture.Mountains, 7))
}
