package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validPlan() Plan {
	return Plan{
		ID:           "plan_0123456789abcdef",
		Provider:     "Seguros Bolivar",
		Name:         "Plan Salud Integral",
		NameEN:       "Full Health Plan",
		Category:     CategorySalud,
		Country:      CountryCO,
		BasePrice:    120000,
		Currency:     CurrencyCOP,
		ExternalLink: "https://bolivar.co/salud",
		Benefits:     []string{"a", "b", "c"},
		BenefitsEN:   []string{"a", "b", "c"},
	}
}

func TestPlanValidateAccepts(t *testing.T) {
	p := validPlan()
	require.NoError(t, p.Validate())

	minAge := 18.0
	p.MinAge = &minAge
	p.BrochureLink = "https://bolivar.co/folleto.pdf"
	p.Tags = []string{"salud"}
	require.NoError(t, p.Validate())
}

func TestPlanValidateRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Plan)
		want   string
	}{
		{"empty id", func(p *Plan) { p.ID = " " }, "id is empty"},
		{"empty provider", func(p *Plan) { p.Provider = "" }, "provider is empty"},
		{"bad category", func(p *Plan) { p.Category = "quantum" }, "not a known category"},
		{"bad country", func(p *Plan) { p.Country = "AR" }, "not CO or MX"},
		{"negative price", func(p *Plan) { p.BasePrice = -1 }, "is negative"},
		{"bad currency", func(p *Plan) { p.Currency = "GBP" }, "not a known currency"},
		{"bad link", func(p *Plan) { p.ExternalLink = "notaurl" }, "not a valid http(s) URL"},
		{"relative link", func(p *Plan) { p.ExternalLink = "/planes/salud" }, "not a valid http(s) URL"},
		{"too few benefits", func(p *Plan) { p.Benefits = []string{"a", "b"} }, "benefits has 2 entries"},
		{"too many benefits", func(p *Plan) {
			p.Benefits = make([]string, 13)
			for i := range p.Benefits {
				p.Benefits[i] = "x"
			}
		}, "benefits has 13 entries"},
		{"negative min age", func(p *Plan) { age := -1.0; p.MinAge = &age }, "min_age"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validPlan()
			tt.mutate(&p)
			err := p.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestEnumValidity(t *testing.T) {
	assert.True(t, CountryCO.Valid())
	assert.False(t, Country("US").Valid())
	assert.True(t, CurrencyEUR.Valid())
	assert.False(t, Currency("GBP").Valid())
	for _, c := range Categories {
		assert.True(t, c.Valid())
	}
	assert.False(t, Category("viajes").Valid())
}

func TestLocalCurrency(t *testing.T) {
	assert.Equal(t, CurrencyCOP, CountryCO.LocalCurrency())
	assert.Equal(t, CurrencyMXN, CountryMX.LocalCurrency())
}
