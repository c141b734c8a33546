package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// FlexNumber holds a JSON value that scrapers emit as either a number or a
// formatted string ("1.234.567,89"). Absent values unmarshal to the zero
// FlexNumber.
type FlexNumber struct {
	Present  bool
	IsNumber bool
	Number   float64
	Text     string
}

// UnmarshalJSON accepts a JSON number, string, or null.
func (f *FlexNumber) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*f = FlexNumber{}
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = FlexNumber{Present: true, Text: s}
		return nil
	}
	n, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		return fmt.Errorf("value %s is neither number nor string", data)
	}
	*f = FlexNumber{Present: true, IsNumber: true, Number: n}
	return nil
}

// MarshalJSON round-trips the original representation.
func (f FlexNumber) MarshalJSON() ([]byte, error) {
	if !f.Present {
		return []byte("null"), nil
	}
	if f.IsNumber {
		return json.Marshal(f.Number)
	}
	return json.Marshal(f.Text)
}

// PriceKind tags the shape the price field arrived in.
type PriceKind int

const (
	PriceAbsent PriceKind = iota
	PriceScalar
	PriceStructured
)

// PriceSpec is the union-typed price field made explicit: scrapers send a
// bare number, a formatted string, or an {amount, period, currency} object.
type PriceSpec struct {
	Kind     PriceKind
	Scalar   FlexNumber // set when Kind == PriceScalar
	Amount   FlexNumber // set when Kind == PriceStructured
	Period   string     // "day" | "month" | "year" | unknown
	Currency string
}

type structuredPrice struct {
	Amount   FlexNumber `json:"amount"`
	Period   string     `json:"period"`
	Currency string     `json:"currency"`
}

// UnmarshalJSON dispatches on the JSON shape.
func (p *PriceSpec) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*p = PriceSpec{}
		return nil
	}
	if data[0] == '{' {
		var sp structuredPrice
		if err := json.Unmarshal(data, &sp); err != nil {
			return err
		}
		*p = PriceSpec{Kind: PriceStructured, Amount: sp.Amount, Period: sp.Period, Currency: sp.Currency}
		return nil
	}
	var n FlexNumber
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*p = PriceSpec{Kind: PriceScalar, Scalar: n}
	return nil
}

// MarshalJSON round-trips the tagged shape.
func (p PriceSpec) MarshalJSON() ([]byte, error) {
	switch p.Kind {
	case PriceStructured:
		return json.Marshal(structuredPrice{Amount: p.Amount, Period: p.Period, Currency: p.Currency})
	case PriceScalar:
		return json.Marshal(p.Scalar)
	default:
		return []byte("null"), nil
	}
}

// LinkSet is the nested links object some feeds use.
type LinkSet struct {
	Product  string `json:"product,omitempty"`
	Brochure string `json:"brochure,omitempty"`
	URL      string `json:"url,omitempty"`
	Website  string `json:"website,omitempty"`
	Quote    string `json:"quote,omitempty"`
	PDF      string `json:"pdf,omitempty"`
}

// RawRow is a single scraped listing in the loose input schema. Every field
// is optional and adversarial; aliases for the same concept coexist
// (provider_name/provider/company, title/name/plan_name, ...). Keys the
// schema does not know about land in Additional so nothing is silently lost.
type RawRow struct {
	ProviderName string `json:"provider_name,omitempty"`
	Provider     string `json:"provider,omitempty"`
	Company      string `json:"company,omitempty"`

	Title       string `json:"title,omitempty"`
	Name        string `json:"name,omitempty"`
	PlanName    string `json:"plan_name,omitempty"`
	TitleEN     string `json:"title_en,omitempty"`
	EnglishName string `json:"english_name,omitempty"`

	Category    string `json:"category,omitempty"`
	CategoryRaw string `json:"category_raw,omitempty"`
	ProductType string `json:"product_type,omitempty"`
	Type        string `json:"type,omitempty"`

	Country     string `json:"country,omitempty"`
	CountryCode string `json:"country_code,omitempty"`

	Currency     string     `json:"currency,omitempty"`
	BasePrice    FlexNumber `json:"base_price,omitempty"`
	MonthlyPrice FlexNumber `json:"monthly_price,omitempty"`
	Price        PriceSpec  `json:"price,omitempty"`

	Links       *LinkSet `json:"links,omitempty"`
	ProductURL  string   `json:"product_url,omitempty"`
	BrochureURL string   `json:"brochure_url,omitempty"`
	URL         string   `json:"url,omitempty"`
	Website     string   `json:"website,omitempty"`
	QuoteURL    string   `json:"quote_url,omitempty"`
	PDFURL      string   `json:"pdf_url,omitempty"`
	SourceURL   string   `json:"source_url,omitempty"`

	Benefits     []string `json:"benefits,omitempty"`
	BenefitsEN   []string `json:"benefits_en,omitempty"`
	Features     []string `json:"features,omitempty"`
	BulletPoints []string `json:"bulletPoints,omitempty"`

	Notes       string `json:"notes,omitempty"`
	Description string `json:"description,omitempty"`

	Tags     []string `json:"tags,omitempty"`
	Keywords []string `json:"keywords,omitempty"`

	MinAge FlexNumber `json:"min_age,omitempty"`
	MaxAge FlexNumber `json:"max_age,omitempty"`

	// Additional carries unrecognized keys verbatim.
	Additional map[string]json.RawMessage `json:"-"`
}

// rawRowAlias has identical fields but no methods, so unmarshal recursion
// terminates.
type rawRowAlias RawRow

var rawRowKnownKeys = map[string]struct{}{
	"provider_name": {}, "provider": {}, "company": {},
	"title": {}, "name": {}, "plan_name": {}, "title_en": {}, "english_name": {},
	"category": {}, "category_raw": {}, "product_type": {}, "type": {},
	"country": {}, "country_code": {},
	"currency": {}, "base_price": {}, "monthly_price": {}, "price": {},
	"links": {}, "product_url": {}, "brochure_url": {}, "url": {}, "website": {},
	"quote_url": {}, "pdf_url": {}, "source_url": {},
	"benefits": {}, "benefits_en": {}, "features": {}, "bulletPoints": {},
	"notes": {}, "description": {},
	"tags": {}, "keywords": {},
	"min_age": {}, "max_age": {},
}

// UnmarshalJSON decodes known fields strictly and collects everything else
// into Additional.
func (r *RawRow) UnmarshalJSON(data []byte) error {
	var alias rawRowAlias
	if err := json.Unmarshal(data, &alias); err != nil {
		return err
	}
	var all map[string]json.RawMessage
	if err := json.Unmarshal(data, &all); err != nil {
		return err
	}
	for key := range all {
		if _, known := rawRowKnownKeys[key]; known {
			delete(all, key)
		}
	}
	*r = RawRow(alias)
	if len(all) > 0 {
		r.Additional = all
	}
	return nil
}
