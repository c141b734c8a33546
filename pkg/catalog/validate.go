package catalog

import (
	"fmt"
	"net/url"
	"strings"
)

// Validate checks the strict schema invariants. It is the last gate in the
// transform pipeline: a failure here means an earlier step let a bad value
// through, so callers treat it as a pipeline defect rather than bad input.
func (p *Plan) Validate() error {
	var problems []string

	if strings.TrimSpace(p.ID) == "" {
		problems = append(problems, "id is empty")
	}
	if strings.TrimSpace(p.Provider) == "" {
		problems = append(problems, "provider is empty")
	}
	if strings.TrimSpace(p.Name) == "" {
		problems = append(problems, "name is empty")
	}
	if strings.TrimSpace(p.NameEN) == "" {
		problems = append(problems, "name_en is empty")
	}
	if !p.Category.Valid() {
		problems = append(problems, fmt.Sprintf("category %q is not a known category", p.Category))
	}
	if !p.Country.Valid() {
		problems = append(problems, fmt.Sprintf("country %q is not CO or MX", p.Country))
	}
	if p.BasePrice < 0 {
		problems = append(problems, fmt.Sprintf("base_price %v is negative", p.BasePrice))
	}
	if !p.Currency.Valid() {
		problems = append(problems, fmt.Sprintf("currency %q is not a known currency", p.Currency))
	}
	if !IsHTTPURL(p.ExternalLink) {
		problems = append(problems, fmt.Sprintf("external_link %q is not a valid http(s) URL", p.ExternalLink))
	}
	if p.BrochureLink != "" && !IsHTTPURL(p.BrochureLink) {
		problems = append(problems, fmt.Sprintf("brochure_link %q is not a valid http(s) URL", p.BrochureLink))
	}
	if n := len(p.Benefits); n < MinBenefits || n > MaxBenefits {
		problems = append(problems, fmt.Sprintf("benefits has %d entries, want %d..%d", n, MinBenefits, MaxBenefits))
	}
	if n := len(p.BenefitsEN); n < MinBenefits || n > MaxBenefits {
		problems = append(problems, fmt.Sprintf("benefits_en has %d entries, want %d..%d", n, MinBenefits, MaxBenefits))
	}
	if p.MinAge != nil && *p.MinAge < 0 {
		problems = append(problems, fmt.Sprintf("min_age %v is negative", *p.MinAge))
	}
	if p.MaxAge != nil && *p.MaxAge < 0 {
		problems = append(problems, fmt.Sprintf("max_age %v is negative", *p.MaxAge))
	}

	if len(problems) > 0 {
		return fmt.Errorf("plan %s: %s", p.ID, strings.Join(problems, "; "))
	}
	return nil
}

// IsHTTPURL reports whether s parses as an absolute http or https URL with
// a host.
func IsHTTPURL(s string) bool {
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
