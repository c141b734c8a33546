package output

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"plan-catalog/pkg/catalog"
)

// PrintSummary prints the one-page run summary, kept off stdout by the CLI
// so piped output stays machine-readable. Reject reasons are not repeated
// here; they live in the rejects file.
func PrintSummary(out io.Writer, report *catalog.Report, outDir string) {
	rule := strings.Repeat("—", 60)
	fmt.Fprintln(out, rule)
	fmt.Fprintln(out, "Plan Catalog ETL: scraped listings → plans_v2")
	fmt.Fprintf(out, "Valid: %d | Rejected: %d (of %d rows)\n",
		report.ValidRows, report.RejectedRows, report.TotalRows)
	fmt.Fprintf(out, "Counts by country:  %s\n", formatCounts(report.CountsByCountry))
	fmt.Fprintf(out, "Counts by category: %s\n", formatCounts(report.CountsByCategory))
	fmt.Fprintf(out, "Link quality: missing website=%d, pdf detected=%d\n",
		report.LinkQuality.MissingWebsite, report.LinkQuality.PDFDetected)
	fmt.Fprintf(out, "Coercions: %d | USD rows: %d\n", len(report.Coercions), len(report.USDRows))
	fmt.Fprintf(out, "Outputs written to: %s\n", outDir)
	fmt.Fprintln(out, rule)
}

// formatCounts renders a counter map with sorted keys so the summary is
// stable across runs.
func formatCounts(counts map[string]int) string {
	if len(counts) == 0 {
		return "(none)"
	}
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%d", k, counts[k]))
	}
	return strings.Join(parts, " ")
}
