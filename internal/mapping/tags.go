package mapping

import (
	"regexp"
	"strings"
)

// tagRule matches free text (plan name + benefits) to an inferred tag.
type tagRule struct {
	pattern *regexp.Regexp
	tag     string
}

// Fixed keyword -> tag rules, evaluated in order so inferred tags come out
// in a stable sequence.
var tagRules = []tagRule{
	{regexp.MustCompile(`schengen`), "schengen"},
	{regexp.MustCompile(`odont|dental`), "odontologia"},
	{regexp.MustCompile(`internacional|international`), "internacional"},
	{regexp.MustCompile(`familiar|family`), "familiar"},
	{regexp.MustCompile(`covid(-19)?`), "covid"},
	{regexp.MustCompile(`mascotas|pets?`), "mascotas"},
	{regexp.MustCompile(`soat`), "soat"},
	{regexp.MustCompile(`auto|car`), "auto"},
	{regexp.MustCompile(`hogar|home`), "hogar"},
	{regexp.MustCompile(`viaje|travel`), "viaje"},
}

// InferTags derives tags from the plan name and benefit lines using the
// fixed keyword rules. Pure and deterministic.
func InferTags(name string, benefits []string) []string {
	text := strings.ToLower(name + " " + strings.Join(benefits, " "))
	var tags []string
	for _, rule := range tagRules {
		if rule.pattern.MatchString(text) {
			tags = append(tags, rule.tag)
		}
	}
	return tags
}
