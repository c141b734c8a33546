// Package normalize implements field-level validation and normalization:
// locale-aware money parsing, currency/country enforcement, link
// classification, and benefit-text cleanup. Every function is pure; rows can
// be processed concurrently without coordination.
package normalize

import (
	"math"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"plan-catalog/pkg/catalog"
)

var nonMoneyRunes = regexp.MustCompile(`[^0-9.,-]`)

// ParseMaybeNumber parses a scraped money value that may be a number or a
// locale-formatted string ("COP 1.234.567,89", "1,234.56"). Separator
// heuristics: when both '.' and ',' occur, the rightmost is the decimal
// separator; a lone comma followed by at most two digits is decimal,
// otherwise commas are thousands separators. Unparseable input returns
// ok=false, never an error.
func ParseMaybeNumber(v catalog.FlexNumber) (float64, bool) {
	if !v.Present {
		return 0, false
	}
	if v.IsNumber {
		if math.IsInf(v.Number, 0) || math.IsNaN(v.Number) {
			return 0, false
		}
		return v.Number, true
	}
	return ParseMoneyString(v.Text)
}

// ParseMoneyString applies the separator heuristics to a formatted string.
func ParseMoneyString(s string) (float64, bool) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return 0, false
	}
	cleaned := nonMoneyRunes.ReplaceAllString(trimmed, "")
	lastComma := strings.LastIndex(cleaned, ",")
	lastDot := strings.LastIndex(cleaned, ".")

	normalized := cleaned
	switch {
	case lastComma != -1 && lastDot != -1:
		if lastComma > lastDot {
			// 1.234.567,89 -> dots are thousands, comma is decimal
			normalized = strings.ReplaceAll(cleaned, ".", "")
			normalized = strings.Replace(normalized, ",", ".", 1)
		} else {
			// 1,234.56 -> commas are thousands
			normalized = strings.ReplaceAll(cleaned, ",", "")
		}
	case lastComma != -1:
		commaCount := strings.Count(cleaned, ",")
		if commaCount == 1 && len(cleaned)-lastComma-1 <= 2 {
			normalized = strings.Replace(cleaned, ",", ".", 1)
		} else {
			normalized = strings.ReplaceAll(cleaned, ",", "")
		}
	}

	d, err := decimal.NewFromString(normalized)
	if err != nil {
		return 0, false
	}
	f, _ := d.Float64()
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return 0, false
	}
	return f, true
}

// ConvertToMonthly converts an amount in the given billing period to a
// monthly amount. Days use the accepted 30-day-month approximation; unknown
// periods are assumed monthly.
func ConvertToMonthly(amount float64, period string) float64 {
	p := strings.ToLower(strings.TrimSpace(period))
	switch {
	case strings.HasPrefix(p, "year"):
		return amount / 12
	case strings.HasPrefix(p, "day"):
		return amount * 30
	default:
		return amount
	}
}

// RoundToTwoDecimals rounds half-up to two decimal places. Going through
// decimal avoids the float epsilon dance.
func RoundToTwoDecimals(v float64) float64 {
	out, _ := decimal.NewFromFloat(v).Round(2).Float64()
	return out
}

// HasAtMostTwoDecimals reports whether v is already exact at two decimal
// places.
func HasAtMostTwoDecimals(v float64) bool {
	d := decimal.NewFromFloat(v)
	return d.Equal(d.Round(2))
}

// Monthly price bounds per country, in local currency units. Breaching them
// is treated as a unit mixup (e.g. an annual price logged as monthly) and
// rejects the row rather than coercing.
var priceRanges = map[catalog.Country][2]float64{
	catalog.CountryCO: {10, 50_000_000},
	catalog.CountryMX: {10, 1_000_000},
}

// EnforcePriceRanges checks the per-country monthly price bounds. A
// non-empty reason means the row must be rejected.
func EnforcePriceRanges(country catalog.Country, basePrice float64) (ok bool, reason string) {
	bounds, known := priceRanges[country]
	if !known {
		return true, ""
	}
	if basePrice < bounds[0] || basePrice > bounds[1] {
		return false, priceRangeReason(country, basePrice, bounds)
	}
	return true, ""
}

func priceRangeReason(country catalog.Country, price float64, bounds [2]float64) string {
	return "Price " + decimal.NewFromFloat(price).String() +
		" out of range for " + string(country) +
		" [" + decimal.NewFromFloat(bounds[0]).String() + ", " + decimal.NewFromFloat(bounds[1]).String() + "]"
}
