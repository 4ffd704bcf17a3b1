package handlers

import (
	"github.com/ersonp/phyla/internal/domain/services"
	"github.com/ersonp/phyla/internal/infrastructure/config"
	"github.com/ersonp/phyla/pkg/culture"
	"github.com/ersonp/phyla/pkg/language"
)

func testLanguage() services.NamedLanguage {
	return services.NewNamedLanguage("eldar", language.New(culture.NeutralProfile(), culture.Plains, 42))
}

func languageConfig(geo string, seed uint64) config.LanguageConfig {
	return config.LanguageConfig{
		Seed:      seed,
		Geography: geo,
		Culture:   culture.NewProfile(3, 3, 3, 3, 3, 3),
	}
}
