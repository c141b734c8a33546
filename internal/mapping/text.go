// Package mapping holds the fixed rule tables of the catalog: category
// aliases, provider-name cleanup, and keyword-driven tag inference. All
// tables are package-level immutable constants so row processing stays
// thread-safe without locking.
package mapping

import (
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var diacriticStripper = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// StripDiacritics removes combining marks: "educación" -> "educacion".
func StripDiacritics(s string) string {
	out, _, err := transform.String(diacriticStripper, s)
	if err != nil {
		return s
	}
	return out
}
