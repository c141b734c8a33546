package mapping

import (
	"regexp"
	"strings"
	"unicode"
)

// Phrase rules run before token rules; "compañia de seguros" collapses to
// the brand token "Seguros" instead of disappearing.
var clutterPhrases = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\bgrupo\s+financiero\b`),
	regexp.MustCompile(`(?i)\bcompa[nñ]ia\s+de\s+seguros\b`),
}

var clutterTokens = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\bs\.?a\.?\s*(de\s*c\.?v\.?)?\b`),
	regexp.MustCompile(`(?i)\bs\.?a\.?s\.?\b`),
	regexp.MustCompile(`(?i)\bs\.r\.l\.?\b`),
	regexp.MustCompile(`(?i)\bltda\.?\b`),
	regexp.MustCompile(`(?i)\bltd\.?\b`),
	regexp.MustCompile(`(?i)\binc\.?\b`),
	regexp.MustCompile(`(?i)\bcorp\.?\b`),
	regexp.MustCompile(`(?i)\bco\.?\b`),
}

var multiSpace = regexp.MustCompile(`\s{2,}`)

// Brand acronyms stay fully uppercased regardless of position.
var uppercaseBrands = map[string]struct{}{
	"axa": {}, "sura": {}, "mapfre": {}, "bupa": {}, "eps": {}, "isapre": {},
}

// Small words stay lowercase except at the start of the name.
var smallWords = map[string]struct{}{
	"de": {}, "del": {}, "la": {}, "y": {}, "en": {}, "el": {}, "los": {}, "las": {},
}

// NormalizeProvider strips legal-form clutter (S.A., LTDA, INC, ...) from a
// provider name and title-cases the remainder. Known brand acronyms are
// uppercased; Spanish small words are lowered except in first position. If
// stripping removes everything, the raw input is returned untouched.
func NormalizeProvider(input string) string {
	raw := strings.TrimSpace(input)
	if raw == "" {
		return ""
	}
	cleaned := raw
	for _, rx := range clutterPhrases {
		cleaned = rx.ReplaceAllString(cleaned, "Seguros")
	}
	for _, rx := range clutterTokens {
		cleaned = rx.ReplaceAllString(cleaned, "")
	}
	cleaned = strings.TrimSpace(multiSpace.ReplaceAllString(cleaned, " "))

	// Token stripping can leave orphan punctuation ("Bolivar S.A." keeps a
	// stray dot); drop words with no letters or digits.
	words := make([]string, 0, 8)
	for _, w := range strings.Fields(cleaned) {
		if hasAlnum(w) {
			words = append(words, w)
		}
	}
	for i, w := range words {
		lower := strings.ToLower(w)
		if _, ok := uppercaseBrands[lower]; ok {
			words[i] = strings.ToUpper(w)
			continue
		}
		if _, ok := smallWords[lower]; ok && i > 0 {
			words[i] = lower
			continue
		}
		words[i] = titleWord(lower)
	}
	titled := strings.Join(words, " ")
	if titled == "" {
		return raw
	}
	return titled
}

func hasAlnum(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return true
		}
	}
	return false
}

func titleWord(lower string) string {
	if lower == "" {
		return lower
	}
	r := []rune(lower)
	return strings.ToUpper(string(r[0])) + string(r[1:])
}
