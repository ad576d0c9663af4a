package advice

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Message keys.
const (
	keyShortFlight  = "advice.short-flight"
	keyShortCarTrip = "advice.short-car-trip"
	keyHighEmission = "advice.high-emission"
	keyZeroEmission = "advice.zero-emission"
)

// genericTipKeys is the fallback pool, in display order.
//
//nolint:gochecknoglobals // Compile-time constant list.
var genericTipKeys = []string{
	"tip.plant-tree",
	"tip.cycle",
	"tip.public-transport",
	"tip.share-rides",
	"tip.electric",
	"tip.trains",
	"tip.small-actions",
	"tip.support-projects",
}

// translations holds the printf-style text for each key per language.
// Literal percent signs are escaped as %%.
//
//nolint:gochecknoglobals // Compile-time constant translation table.
var translations = map[language.Tag]map[string]string{
	language.English: {
		keyShortFlight:  "✈️ Suggestion: for short distances (<500 km) flying is inefficient. Consider a bus or train.",
		keyShortCarTrip: "🚗 Suggestion: trips under 5 km are ideal for cycling or walking.",
		keyHighEmission: "🌳 Suggestion: this trip's emission is high. Plant 5 trees or donate to reforestation NGOs.",
		keyZeroEmission: "🌟 Perfect! This trip is carbon neutral.",

		"tip.plant-tree":       "🌳 Plant a tree to offset your emissions!",
		"tip.cycle":            "🚲 Consider cycling for short trips.",
		"tip.public-transport": "🚌 Public transport cuts your carbon footprint by up to 75%%.",
		"tip.share-rides":      "🌿 Share rides to split the emissions.",
		"tip.electric":         "⚡ Electric vehicles emit 50%% less CO2.",
		"tip.trains":           "🚆 Trains are the greenest motorized transport.",
		"tip.small-actions":    "🌍 Every small action counts for the planet!",
		"tip.support-projects": "💚 Offset your emissions by supporting environmental projects.",
	},
	language.BrazilianPortuguese: {
		keyShortFlight:  "✈️ Sugestão: para distâncias curtas (<500km), o avião é ineficiente. Considere ônibus ou trem.",
		keyShortCarTrip: "🚗 Sugestão: distâncias menores que 5km são ideais para bicicleta ou caminhada.",
		keyHighEmission: "🌳 Sugestão: sua emissão é alta. Plante 5 árvores ou doe para ONGs de reflorestamento.",
		keyZeroEmission: "🌟 Perfeito! Você atingiu a neutralidade de carbono nesta viagem.",

		"tip.plant-tree":       "🌳 Plante uma árvore para compensar suas emissões!",
		"tip.cycle":            "🚲 Considere usar bicicleta para trajetos curtos.",
		"tip.public-transport": "🚌 O transporte público reduz a pegada de carbono em até 75%%.",
		"tip.share-rides":      "🌿 Compartilhe caronas para dividir as emissões.",
		"tip.electric":         "⚡ Veículos elétricos emitem 50%% menos CO2.",
		"tip.trains":           "🚆 Trens são os transportes motorizados mais ecológicos.",
		"tip.small-actions":    "🌍 Cada pequena ação conta para o planeta!",
		"tip.support-projects": "💚 Compense suas emissões apoiando projetos ambientais.",
	},
}

// supported lists the catalog languages; the first one is the fallback.
//
//nolint:gochecknoglobals // Compile-time constant list.
var supported = []language.Tag{language.English, language.BrazilianPortuguese}

// messages is the catalog every Selector prints from.
//
//nolint:gochecknoglobals // Built once; read-only afterwards.
var messages = newCatalog()

// newCatalog registers every translation. The table is fixed at build time,
// so a registration failure is a programming error and panics.
func newCatalog() *catalog.Builder {
	b := catalog.NewBuilder(catalog.Fallback(language.English))
	for tag, entries := range translations {
		for key, text := range entries {
			if err := b.SetString(tag, key, text); err != nil {
				panic(fmt.Sprintf("advice: registering %q for %s: %v", key, tag, err))
			}
		}
	}
	return b
}

// SupportedLanguages lists the languages advice is available in, English first.
func SupportedLanguages() []language.Tag {
	out := make([]language.Tag, len(supported))
	copy(out, supported)
	return out
}

// MatchLanguage returns the supported language closest to tag.
func MatchLanguage(tag language.Tag) language.Tag {
	_, idx, _ := language.NewMatcher(supported).Match(tag)
	return supported[idx]
}

// newPrinter returns a printer for the closest supported language.
func newPrinter(tag language.Tag) *message.Printer {
	return message.NewPrinter(MatchLanguage(tag), message.Catalog(messages))
}
