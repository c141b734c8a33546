package mapping

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeProvider(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"strips SA suffix", "Seguros Bolivar S.A.", "Seguros Bolivar"},
		{"strips sa de cv", "Qualitas S.A. de C.V.", "Qualitas"},
		{"strips ltda", "Protección LTDA", "Protección"},
		{"strips inc", "Global Insurance Inc.", "Global Insurance"},
		{"brand acronym uppercased", "sura", "SURA"},
		{"brand acronym mid name", "seguros sura colombia", "Seguros SURA Colombia"},
		{"axa brand", "axa colpatria", "AXA Colpatria"},
		{"small words lowered", "seguros DE LA nacion", "Seguros de la Nacion"},
		{"small word first position titled", "la equidad", "La Equidad"},
		{"phrase becomes Seguros", "Compañia de Seguros Atlas", "Seguros Atlas"},
		{"grupo financiero phrase", "Grupo Financiero Monterrey", "Seguros Monterrey"},
		{"empty stays empty", "", ""},
		{"whitespace only", "   ", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeProvider(tt.input))
		})
	}
}

func TestNormalizeProviderAllClutterKeepsRaw(t *testing.T) {
	// Stripping everything must not return an empty brand.
	assert.Equal(t, "S.A.", NormalizeProvider("S.A."))
}
