package mapping

import (
	"strings"

	"github.com/rs/zerolog/log"

	"plan-catalog/pkg/catalog"
)

// categoryAliases maps accent-stripped, lowercased ES/EN category labels to
// the normalized enum. Entries past the canonical names come from labels
// observed in scraped datasets.
var categoryAliases = map[string]catalog.Category{
	"salud":        catalog.CategorySalud,
	"health":       catalog.CategorySalud,
	"medicina":     catalog.CategorySalud,
	"medical":      catalog.CategorySalud,
	"odontologico": catalog.CategoryDental,
	"dental":       catalog.CategoryDental,
	"soat":         catalog.CategorySoat,
	"hogar":        catalog.CategoryHogar,
	"home":         catalog.CategoryHogar,
	"auto":         catalog.CategoryAuto,
	"car":          catalog.CategoryAuto,
	"viaje":        catalog.CategoryViaje,
	"travel":       catalog.CategoryViaje,
	"educativa":    catalog.CategoryEducativa,
	"education":    catalog.CategoryEducativa,
	"educacion":    catalog.CategoryEducativa,
	"mascotas":     catalog.CategoryMascotas,
	"pets":         catalog.CategoryMascotas,
	"vida":         catalog.CategoryVida,
	"empresarial":  catalog.CategoryOtros,
	"tecnologia":   catalog.CategoryOtros,
	"dispositivos": catalog.CategoryOtros,
}

// NormalizeCategory maps a raw category label to the normalized enum.
// Unmapped labels fall back to "otros" with a non-fatal warning.
func NormalizeCategory(input string) catalog.Category {
	key := strings.ToLower(strings.TrimSpace(StripDiacritics(input)))
	if mapped, ok := categoryAliases[key]; ok {
		return mapped
	}
	log.Warn().Str("category", input).Msg("unmapped category, using 'otros'")
	return catalog.CategoryOtros
}
