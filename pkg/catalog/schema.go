// Package catalog defines the canonical insurance-plan schema (strict output)
// and the loose scraped-row schema (permissive input with field aliases).
package catalog

// Country is the market a plan is sold in.
type Country string

const (
	CountryCO Country = "CO"
	CountryMX Country = "MX"
)

// Valid reports whether the country is one of the supported markets.
func (c Country) Valid() bool {
	return c == CountryCO || c == CountryMX
}

// LocalCurrency returns the home currency for the country.
func (c Country) LocalCurrency() Currency {
	if c == CountryMX {
		return CurrencyMXN
	}
	return CurrencyCOP
}

// Currency is an accepted pricing currency.
type Currency string

const (
	CurrencyCOP Currency = "COP"
	CurrencyMXN Currency = "MXN"
	CurrencyUSD Currency = "USD"
	CurrencyEUR Currency = "EUR"
)

// Valid reports whether the currency is one of the accepted codes.
func (c Currency) Valid() bool {
	switch c {
	case CurrencyCOP, CurrencyMXN, CurrencyUSD, CurrencyEUR:
		return true
	}
	return false
}

// Category is the normalized plan category.
type Category string

const (
	CategorySalud     Category = "salud"
	CategoryVida      Category = "vida"
	CategoryHogar     Category = "hogar"
	CategoryAuto      Category = "auto"
	CategoryViaje     Category = "viaje"
	CategorySoat      Category = "soat"
	CategoryDental    Category = "dental"
	CategoryEducativa Category = "educativa"
	CategoryMascotas  Category = "mascotas"
	CategoryOtros     Category = "otros"
)

// Categories lists every normalized category in schema order.
var Categories = []Category{
	CategorySalud,
	CategoryVida,
	CategoryHogar,
	CategoryAuto,
	CategoryViaje,
	CategorySoat,
	CategoryDental,
	CategoryEducativa,
	CategoryMascotas,
	CategoryOtros,
}

// Valid reports whether the category is one of the normalized values.
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// Plan is a fully validated catalog record. Instances are only produced by
// the transform pipeline and are immutable once written.
//
// The ID is content-addressed: "plan_" + first 16 hex chars of
// sha1(provider|country|slug(name)), 21 characters total.
type Plan struct {
	ID       string   `json:"id"`
	Provider string   `json:"provider"`
	Name     string   `json:"name"`
	NameEN   string   `json:"name_en"`
	Category Category `json:"category"`
	Country  Country  `json:"country"`

	// Pricing is monthly. Zero is allowed by the schema for quote-only
	// flows; the transform pipeline itself rejects zero prices.
	BasePrice float64  `json:"base_price"`
	Currency  Currency `json:"currency"`

	ExternalLink string `json:"external_link"`
	BrochureLink string `json:"brochure_link,omitempty"`

	Benefits   []string `json:"benefits"`
	BenefitsEN []string `json:"benefits_en"`

	MinAge *float64 `json:"min_age,omitempty"`
	MaxAge *float64 `json:"max_age,omitempty"`
	Tags   []string `json:"tags,omitempty"`
}

// IDLength is the exact length of a content-addressed plan ID
// ("plan_" prefix plus 16 hex characters).
const IDLength = 21

// IDPrefix prefixes every content-addressed plan ID.
const IDPrefix = "plan_"

// Benefit list bounds enforced by the strict schema.
const (
	MinBenefits = 3
	MaxBenefits = 12
)

// CSVHeader is the column order shared by the CSV and SQL writers.
var CSVHeader = []string{
	"id",
	"provider",
	"name",
	"name_en",
	"category",
	"country",
	"base_price",
	"currency",
	"external_link",
	"brochure_link",
	"benefits",
	"benefits_en",
	"min_age",
	"max_age",
	"tags",
}
