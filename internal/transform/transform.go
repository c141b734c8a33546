package transform

import (
	"encoding/json"
	"strings"

	"plan-catalog/internal/mapping"
	"plan-catalog/internal/normalize"
	"plan-catalog/pkg/catalog"
)

// Reject reasons owned by the pipeline (link reasons live in normalize).
const (
	reasonLooseParse       = "Row failed loose parse"
	reasonMissingIdentity  = "Missing provider/name/country"
	reasonMissingPrice     = "Missing or zero price"
	reasonTooFewBenefits   = "Insufficient benefits (<3)"
	reasonStrictValidation = "Plan validation failed"
)

// Audit carries the report-relevant side effects of one row, kept separate
// from the accept/reject outcome so rejected rows still contribute to the
// coercion log and link-quality counters, exactly once each.
type Audit struct {
	Coercions      []string
	USDRow         *catalog.USDRow
	PDFDetected    bool
	MissingWebsite bool
}

// Outcome is the result of processing one row: exactly one of Plan or
// Reject is set.
type Outcome struct {
	Plan   *catalog.Plan
	Reject *catalog.Reject
	Audit  Audit
}

func rejected(raw json.RawMessage, audit Audit, reasons ...string) Outcome {
	return Outcome{Reject: &catalog.Reject{Row: raw, Reasons: reasons}, Audit: audit}
}

// Transform runs the fixed per-row pipeline, short-circuiting on the first
// failure. It is a pure function of the row and the package-level rule
// tables, so rows can be processed on any number of goroutines.
func Transform(raw json.RawMessage) Outcome {
	var audit Audit

	row, err := DecodeRow(raw)
	if err != nil {
		return rejected(raw, audit, reasonLooseParse)
	}

	// Identity fields.
	provider := mapping.NormalizeProvider(pickFirst(row.ProviderName, row.Provider, row.Company))
	name := pickFirst(row.Title, row.Name, row.PlanName)
	nameEN := pickFirst(row.TitleEN, row.EnglishName)
	if nameEN == "" {
		nameEN = name
	}
	categoryRaw := pickFirst(row.Category, row.CategoryRaw, row.ProductType, row.Type)
	if categoryRaw == "" {
		categoryRaw = string(catalog.CategoryOtros)
	}
	category := mapping.NormalizeCategory(categoryRaw)

	country := catalog.Country(strings.ToUpper(pickFirst(row.Country, row.CountryCode)))
	if provider == "" || name == "" || !country.Valid() {
		return rejected(raw, audit, reasonMissingIdentity)
	}

	// Links.
	links := normalize.ClassifyLinks(linkCandidates(&row))
	audit.PDFDetected = links.PDFOnly
	if links.ExternalLink == "" {
		audit.MissingWebsite = true
		return rejected(raw, audit, links.RejectReason)
	}

	// Price, converted to monthly.
	amount, period := resolvePrice(&row)
	value, ok := normalize.ParseMaybeNumber(amount)
	if !ok {
		return rejected(raw, audit, reasonMissingPrice)
	}
	monthly := normalize.RoundToTwoDecimals(normalize.ConvertToMonthly(value, period))
	if monthly == 0 {
		return rejected(raw, audit, reasonMissingPrice)
	}

	// Currency settles against the country; never rejects.
	usdMarker := normalize.HasExplicitUSDMarker(row.Title, row.TitleEN, row.Description, row.Notes)
	decision := normalize.EnforceCountryCurrency(country, declaredCurrency(&row), usdMarker)
	if decision.Coerced {
		audit.Coercions = append(audit.Coercions, decision.Reason)
	}
	if decision.Currency == catalog.CurrencyUSD {
		audit.USDRow = &catalog.USDRow{
			Provider: provider,
			Country:  string(country),
			Reason:   decision.Reason,
		}
	}

	// Out-of-range prices signal a unit mixup and are fatal.
	if ok, reason := normalize.EnforcePriceRanges(country, monthly); !ok {
		return rejected(raw, audit, reason)
	}

	// Benefits, with the description-sentence fallback when cleaning leaves
	// fewer than the minimum.
	benefits := normalize.EnsureBenefitCount(normalize.CleanBenefits(
		firstNonEmptyList(row.Benefits, row.Features, row.BulletPoints)))
	benefitsEN := normalize.EnsureBenefitCount(normalize.CleanBenefits(row.BenefitsEN))
	if len(benefits) < catalog.MinBenefits && row.Description != "" {
		synthesized := normalize.SynthesizeFromDescription(row.Description, 6)
		benefits = normalize.EnsureBenefitCount(
			normalize.DedupNormalized(append(benefits, synthesized...)))
	}
	if len(benefits) < catalog.MinBenefits {
		return rejected(raw, audit, reasonTooFewBenefits)
	}
	if len(benefitsEN) < catalog.MinBenefits {
		benefitsEN = append([]string(nil), benefits[:min(len(benefits), catalog.MaxBenefits)]...)
	}

	// Optional ages.
	var minAge, maxAge *float64
	if v, ok := normalize.ParseMaybeNumber(row.MinAge); ok {
		minAge = &v
	}
	if v, ok := normalize.ParseMaybeNumber(row.MaxAge); ok {
		maxAge = &v
	}

	// Tags: explicit tags, explicit keywords, then inferred.
	tags := uniqueInOrder(concat(row.Tags, row.Keywords, mapping.InferTags(name, benefits)))
	if len(tags) == 0 {
		tags = nil
	}

	plan := &catalog.Plan{
		ID:           StableID(provider, country, name),
		Provider:     provider,
		Name:         name,
		NameEN:       nameEN,
		Category:     category,
		Country:      country,
		BasePrice:    monthly,
		Currency:     decision.Currency,
		ExternalLink: links.ExternalLink,
		BrochureLink: links.BrochureLink,
		Benefits:     benefits,
		BenefitsEN:   benefitsEN,
		MinAge:       minAge,
		MaxAge:       maxAge,
		Tags:         tags,
	}

	// Defensive double-check: a failure here is a pipeline bug, not bad
	// input, but the row is still rejected rather than emitted.
	if err := plan.Validate(); err != nil {
		return rejected(raw, audit, reasonStrictValidation, err.Error())
	}
	return Outcome{Plan: plan, Audit: audit}
}

// linkCandidates lists URL candidates in alias-priority order. Brochure-ish
// aliases go last so a product page always wins when both exist.
func linkCandidates(row *catalog.RawRow) []string {
	var c []string
	if row.Links != nil {
		c = append(c, row.Links.Product, row.Links.Website, row.Links.URL, row.Links.Quote, row.Links.PDF)
	}
	c = append(c, row.SourceURL, row.ProductURL, row.Website, row.URL, row.QuoteURL, row.PDFURL, row.BrochureURL)
	if row.Links != nil {
		c = append(c, row.Links.Brochure)
	}
	return c
}

// resolvePrice picks the amount by alias priority (structured amount,
// monthly_price, base_price, bare scalar) and the billing period.
func resolvePrice(row *catalog.RawRow) (catalog.FlexNumber, string) {
	period := "month"
	if row.Price.Kind == catalog.PriceStructured && strings.TrimSpace(row.Price.Period) != "" {
		period = row.Price.Period
	}
	switch {
	case row.Price.Kind == catalog.PriceStructured && row.Price.Amount.Present:
		return row.Price.Amount, period
	case row.MonthlyPrice.Present:
		return row.MonthlyPrice, period
	case row.BasePrice.Present:
		return row.BasePrice, period
	case row.Price.Kind == catalog.PriceScalar:
		return row.Price.Scalar, period
	}
	return catalog.FlexNumber{}, period
}

func declaredCurrency(row *catalog.RawRow) string {
	if row.Price.Kind == catalog.PriceStructured && strings.TrimSpace(row.Price.Currency) != "" {
		return row.Price.Currency
	}
	return row.Currency
}

func concat(lists ...[]string) []string {
	var out []string
	for _, l := range lists {
		out = append(out, l...)
	}
	return out
}
