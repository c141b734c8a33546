package normalize

import (
	"regexp"
	"sort"
	"strings"

	"plan-catalog/pkg/catalog"
)

var (
	htmlTag          = regexp.MustCompile(`<[^>]*>`)
	leadingBullets   = regexp.MustCompile(`^[\s•*\-–—]+`)
	innerWhitespace  = regexp.MustCompile(`\s+`)
	trailingPunct    = regexp.MustCompile(`[;,.!?]+$`)
	duplicatePeriods = regexp.MustCompile(`\.{2,}$`)
	sentenceSplit    = regexp.MustCompile(`[.!?]`)
)

// CleanBenefitLine strips embedded HTML and leading bullet glyphs, collapses
// whitespace, and normalizes trailing punctuation to a single period.
func CleanBenefitLine(line string) string {
	s := htmlTag.ReplaceAllString(line, "")
	s = leadingBullets.ReplaceAllString(s, "")
	s = strings.TrimSpace(innerWhitespace.ReplaceAllString(s, " "))
	s = trailingPunct.ReplaceAllString(s, ".")
	s = duplicatePeriods.ReplaceAllString(s, ".")
	return strings.TrimSpace(s)
}

// DedupNormalized removes case-insensitive duplicates, keeping the first
// occurrence and its original casing. The key ignores the trailing period so
// "Cobertura dental." and "cobertura DENTAL" collapse to one entry.
func DedupNormalized(lines []string) []string {
	seen := make(map[string]struct{}, len(lines))
	out := make([]string, 0, len(lines))
	for _, l := range lines {
		key := strings.TrimRight(strings.ToLower(strings.TrimSpace(l)), ".")
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, l)
	}
	return out
}

// CleanBenefits cleans every line, drops empties, and dedups.
func CleanBenefits(raw []string) []string {
	cleaned := make([]string, 0, len(raw))
	for _, line := range raw {
		if s := CleanBenefitLine(line); s != "" {
			cleaned = append(cleaned, s)
		}
	}
	return DedupNormalized(cleaned)
}

// EnsureBenefitCount caps the list at the schema maximum, keeping the
// longest lines as the most informative ones. Ties keep input order so the
// result is deterministic.
func EnsureBenefitCount(benefits []string) []string {
	if len(benefits) <= catalog.MaxBenefits {
		return benefits
	}
	capped := make([]string, len(benefits))
	copy(capped, benefits)
	sort.SliceStable(capped, func(i, j int) bool {
		return len(capped[i]) > len(capped[j])
	})
	return capped[:catalog.MaxBenefits]
}

// SynthesizeFromDescription splits free text into sentence candidates for
// the <3-benefits fallback. At most max sentences are returned.
func SynthesizeFromDescription(description string, max int) []string {
	parts := sentenceSplit.Split(description, -1)
	out := make([]string, 0, max)
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
			if len(out) == max {
				break
			}
		}
	}
	return out
}
