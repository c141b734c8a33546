// Package transform is the per-row ETL pipeline: it flattens and resolves
// scraped rows, runs them through normalization in a fixed order, and folds
// the outcomes into the canonical catalog plus rejects and a run report.
package transform

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"plan-catalog/pkg/catalog"
)

// attributeEnvelope is the wrapped export format some scrape runs produce:
// {attributes: {field: {value: ...}}}.
type attributeEnvelope struct {
	Attributes map[string]attributeValue `json:"attributes"`
}

type attributeValue struct {
	Value json.RawMessage `json:"value"`
}

// DecodeRow unmarshals one raw row, flattening the attribute-envelope format
// into the plain loose shape first when present.
func DecodeRow(raw json.RawMessage) (catalog.RawRow, error) {
	var probe attributeEnvelope
	if err := json.Unmarshal(raw, &probe); err != nil {
		return catalog.RawRow{}, fmt.Errorf("row is not an object: %w", err)
	}
	if len(probe.Attributes) > 0 {
		return flattenEnvelope(probe.Attributes), nil
	}
	var row catalog.RawRow
	if err := json.Unmarshal(raw, &row); err != nil {
		return catalog.RawRow{}, err
	}
	return row, nil
}

func flattenEnvelope(attrs map[string]attributeValue) catalog.RawRow {
	val := func(key string) json.RawMessage {
		if a, ok := attrs[key]; ok {
			return a.Value
		}
		return nil
	}

	row := catalog.RawRow{
		Provider:   attrString(val("provider")),
		Name:       attrString(val("name")),
		Title:      attrString(val("name")),
		TitleEN:    attrString(val("name_en")),
		Category:   attrString(val("category")),
		Country:    attrString(val("country")),
		Benefits:   attrStrings(val("benefits")),
		BenefitsEN: attrStrings(val("benefits_en")),
		Tags:       attrStrings(val("tags")),
	}

	product := attrURL(val("external_link"))
	if product == "" {
		product = attrURL(val("source_url"))
	}
	brochure := attrURL(val("brochure_link"))
	if product != "" || brochure != "" {
		row.Links = &catalog.LinkSet{Product: product, Brochure: brochure}
	}

	amount := attrFlexNumber(val("base_price"))
	currency := attrString(val("currency"))
	if amount.Present || currency != "" {
		row.Price = catalog.PriceSpec{
			Kind:     catalog.PriceStructured,
			Amount:   amount,
			Period:   "month",
			Currency: currency,
		}
	}

	row.MinAge = attrFlexNumber(val("min_age"))
	row.MaxAge = attrFlexNumber(val("max_age"))
	return row
}

// attrString decodes a JSON string attribute, treating empty strings and the
// literal "N/A" as absent.
func attrString(raw json.RawMessage) string {
	if raw == nil {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	s = strings.TrimSpace(s)
	if s == "N/A" || s == "n/a" {
		return ""
	}
	return s
}

func attrURL(raw json.RawMessage) string {
	s := attrString(raw)
	lower := strings.ToLower(s)
	if strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") {
		return s
	}
	return ""
}

// attrStrings decodes an array attribute to strings, stringifying scalar
// members; a bare string becomes a single-element list.
func attrStrings(raw json.RawMessage) []string {
	if raw == nil {
		return nil
	}
	var items []any
	if err := json.Unmarshal(raw, &items); err == nil {
		out := make([]string, 0, len(items))
		for _, item := range items {
			switch v := item.(type) {
			case string:
				out = append(out, v)
			case float64:
				out = append(out, strconv.FormatFloat(v, 'f', -1, 64))
			case bool:
				out = append(out, strconv.FormatBool(v))
			}
		}
		return out
	}
	if s := attrString(raw); s != "" {
		return []string{s}
	}
	return nil
}

func attrFlexNumber(raw json.RawMessage) catalog.FlexNumber {
	if raw == nil {
		return catalog.FlexNumber{}
	}
	var f catalog.FlexNumber
	if err := json.Unmarshal(raw, &f); err != nil {
		return catalog.FlexNumber{}
	}
	return f
}
