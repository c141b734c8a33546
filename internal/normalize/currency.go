package normalize

import (
	"fmt"
	"regexp"
	"strings"

	"plan-catalog/pkg/catalog"
)

// usdMarker is the free-text signal that a USD price is intentional. A
// heuristic that can both under- and over-trigger; kept deliberately loose.
var usdMarker = regexp.MustCompile(`\busd\b|us\$|dolares|dólares`)

// HasExplicitUSDMarker scans free-text fields (title, description, notes)
// for a USD justification marker.
func HasExplicitUSDMarker(fields ...string) bool {
	joined := strings.ToLower(strings.Join(fields, " "))
	return usdMarker.MatchString(joined)
}

// CurrencyDecision is the outcome of currency/country enforcement.
type CurrencyDecision struct {
	Currency     catalog.Currency
	Coerced      bool
	Reason       string
	USDJustified bool
}

// EnforceCountryCurrency settles the row currency against its country. USD
// survives only with an explicit free-text justification; any other mismatch
// is coerced to the country's local currency. This step never rejects, it
// only coerces and logs.
func EnforceCountryCurrency(country catalog.Country, declared string, usdJustified bool) CurrencyDecision {
	code := catalog.Currency(strings.ToUpper(strings.TrimSpace(declared)))
	local := country.LocalCurrency()

	if code == catalog.CurrencyUSD {
		if !usdJustified {
			return CurrencyDecision{
				Currency: local,
				Coerced:  true,
				Reason:   fmt.Sprintf("Coerced USD→%s (unjustified) for %s", local, country),
			}
		}
		return CurrencyDecision{Currency: catalog.CurrencyUSD, USDJustified: true}
	}

	if code != "" && code != local {
		return CurrencyDecision{
			Currency: local,
			Coerced:  true,
			Reason:   fmt.Sprintf("Coerced %s→%s for %s", code, local, country),
		}
	}
	return CurrencyDecision{Currency: local}
}
