package transform

import (
	"crypto/sha1"
	"encoding/hex"
	"regexp"
	"strings"

	"plan-catalog/internal/mapping"
	"plan-catalog/pkg/catalog"
)

var (
	slugInvalid    = regexp.MustCompile(`[^a-z0-9\s-]`)
	slugWhitespace = regexp.MustCompile(`\s+`)
)

// Slugify lowercases, strips diacritics, and reduces a plan name to a
// hyphenated slug used in the ID hash.
func Slugify(input string) string {
	s := strings.ToLower(mapping.StripDiacritics(input))
	s = slugInvalid.ReplaceAllString(s, "")
	s = strings.TrimSpace(slugWhitespace.ReplaceAllString(s, " "))
	return strings.ReplaceAll(s, " ", "-")
}

// StableID derives the content-addressed plan ID. Identical
// (provider, country, name) triples always produce the same ID, across runs
// and machines.
func StableID(provider string, country catalog.Country, name string) string {
	sum := sha1.Sum([]byte(provider + "|" + string(country) + "|" + Slugify(name)))
	return catalog.IDPrefix + hex.EncodeToString(sum[:])[:16]
}
