package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"plan-catalog/pkg/catalog"
)

func TestHasExplicitUSDMarker(t *testing.T) {
	assert.True(t, HasExplicitUSDMarker("Plan travel US$49/month"))
	assert.True(t, HasExplicitUSDMarker("", "precio en USD"))
	assert.True(t, HasExplicitUSDMarker("precios en dólares americanos"))
	assert.True(t, HasExplicitUSDMarker("precios en dolares"))
	assert.False(t, HasExplicitUSDMarker("Plan viaje premium"))
	assert.False(t, HasExplicitUSDMarker("sused")) // needs a word boundary
}

func TestEnforceCountryCurrency(t *testing.T) {
	tests := []struct {
		name         string
		country      catalog.Country
		declared     string
		usdJustified bool
		want         catalog.Currency
		coerced      bool
		reason       string
	}{
		{
			name: "co empty defaults to cop", country: catalog.CountryCO,
			want: catalog.CurrencyCOP,
		},
		{
			name: "co cop stays", country: catalog.CountryCO, declared: "COP",
			want: catalog.CurrencyCOP,
		},
		{
			name: "co lowercase normalized", country: catalog.CountryCO, declared: "cop",
			want: catalog.CurrencyCOP,
		},
		{
			name: "usd without marker coerces for mx", country: catalog.CountryMX, declared: "USD",
			want: catalog.CurrencyMXN, coerced: true,
			reason: "Coerced USD→MXN (unjustified) for MX",
		},
		{
			name: "usd without marker coerces for co", country: catalog.CountryCO, declared: "USD",
			want: catalog.CurrencyCOP, coerced: true,
			reason: "Coerced USD→COP (unjustified) for CO",
		},
		{
			name: "usd with marker survives", country: catalog.CountryMX, declared: "USD", usdJustified: true,
			want: catalog.CurrencyUSD,
		},
		{
			name: "eur coerces to local", country: catalog.CountryCO, declared: "EUR",
			want: catalog.CurrencyCOP, coerced: true,
			reason: "Coerced EUR→COP for CO",
		},
		{
			name: "mxn in co coerces", country: catalog.CountryCO, declared: "MXN",
			want: catalog.CurrencyCOP, coerced: true,
			reason: "Coerced MXN→COP for CO",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EnforceCountryCurrency(tt.country, tt.declared, tt.usdJustified)
			assert.Equal(t, tt.want, got.Currency)
			assert.Equal(t, tt.coerced, got.Coerced)
			assert.Equal(t, tt.reason, got.Reason)
		})
	}
}
