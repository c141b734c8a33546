// Package check re-validates a written catalog file against the strict
// schema and the cross-field invariants the search backend assumes. It is a
// separate leaf tool: it only reads the JSON artifact, never the pipeline's
// in-memory state.
package check

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"plan-catalog/internal/normalize"
	"plan-catalog/pkg/catalog"
)

// Result summarizes a consistency check.
type Result struct {
	Rows     int
	USDRows  int
	Problems []string
}

// OK reports whether every assertion held.
func (r *Result) OK() bool {
	return len(r.Problems) == 0
}

// File loads and checks a plans_v2.json artifact.
func File(path string) (*Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return Bytes(data)
}

// Bytes checks a serialized catalog document.
func Bytes(data []byte) (*Result, error) {
	var plans []catalog.Plan
	if err := json.Unmarshal(data, &plans); err != nil {
		return nil, fmt.Errorf("catalog must be a JSON array of plans: %w", err)
	}
	res := &Result{Rows: len(plans)}
	for i := range plans {
		res.Problems = append(res.Problems, checkPlan(&plans[i])...)
		if plans[i].Currency == catalog.CurrencyUSD {
			res.USDRows++
		}
	}
	return res, nil
}

func checkPlan(p *catalog.Plan) []string {
	var problems []string
	fail := func(format string, args ...any) {
		problems = append(problems, fmt.Sprintf("%s: %s", p.ID, fmt.Sprintf(format, args...)))
	}

	if err := p.Validate(); err != nil {
		fail("strict schema: %v", err)
	}
	if len(p.ID) != catalog.IDLength || !strings.HasPrefix(p.ID, catalog.IDPrefix) {
		fail("id must be %q plus 16 hex chars", catalog.IDPrefix)
	}
	if p.BasePrice <= 0 {
		fail("base_price must be > 0, got %v", p.BasePrice)
	}
	if !normalize.HasAtMostTwoDecimals(p.BasePrice) {
		fail("base_price must have at most 2 decimals, got %v", p.BasePrice)
	}
	if !catalog.IsHTTPURL(p.ExternalLink) {
		fail("external_link is not a well-formed URL")
	}
	switch p.Country {
	case catalog.CountryCO:
		if p.Currency != catalog.CurrencyCOP && p.Currency != catalog.CurrencyUSD {
			fail("CO rows must be COP or justified USD, got %s", p.Currency)
		}
	case catalog.CountryMX:
		if p.Currency != catalog.CurrencyMXN && p.Currency != catalog.CurrencyUSD {
			fail("MX rows must be MXN or justified USD, got %s", p.Currency)
		}
	}
	return problems
}
