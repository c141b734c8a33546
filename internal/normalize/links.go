package normalize

import (
	"net/url"
	"regexp"
)

// Reject reasons surfaced by link classification.
const (
	ReasonMissingProductPage = "Missing product page (external_link)"
	ReasonNoValidLink        = "No valid external link"
)

var (
	httpPrefix = regexp.MustCompile(`(?i)^https?://`)
	pdfSuffix  = regexp.MustCompile(`(?i)\.pdf(\?|$)`)
	pdfKeyword = regexp.MustCompile(`(?i)brochure|folleto|condiciones|pdf|policy|poliza`)
)

// IsLikelyPDF reports whether a URL points at a brochure rather than a
// product page: the path ends in .pdf or contains a brochure-ish keyword.
func IsLikelyPDF(rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil || u.Path == "" && u.Host == "" {
		return pdfSuffix.MatchString(rawURL)
	}
	if pdfSuffix.MatchString(u.Path) {
		return true
	}
	return pdfKeyword.MatchString(u.Path)
}

// LinkAssignment is the outcome of classifying a row's URL candidates.
// RejectReason is set when no usable product page was found; a brochure
// alone never substitutes for one.
type LinkAssignment struct {
	ExternalLink string
	BrochureLink string
	RejectReason string
	PDFOnly      bool
}

// ClassifyLinks keeps well-formed absolute http(s) candidates and partitions
// them by the PDF heuristic. The first non-PDF candidate becomes the product
// page, the first PDF-like one the brochure. Candidate order is the caller's
// alias priority, so classification is deterministic.
func ClassifyLinks(candidates []string) LinkAssignment {
	var product, brochure string
	for _, c := range candidates {
		if c == "" || !httpPrefix.MatchString(c) {
			continue
		}
		if IsLikelyPDF(c) {
			if brochure == "" {
				brochure = c
			}
		} else if product == "" {
			product = c
		}
	}

	if product == "" && brochure != "" {
		return LinkAssignment{BrochureLink: brochure, RejectReason: ReasonMissingProductPage, PDFOnly: true}
	}
	if product == "" {
		return LinkAssignment{RejectReason: ReasonNoValidLink}
	}
	return LinkAssignment{ExternalLink: product, BrochureLink: brochure}
}
