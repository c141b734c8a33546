package transform

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"runtime"
	"sort"
	"strconv"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"plan-catalog/internal/normalize"
	"plan-catalog/pkg/catalog"
)

// DecodeDocument extracts the row list from an input document: a top-level
// JSON array, or an object carrying a "rows" or "data" array. Any other
// well-formed shape yields zero rows; malformed JSON is a fatal run error.
func DecodeDocument(data []byte) ([]json.RawMessage, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("input document is empty")
	}
	if trimmed[0] == '[' {
		var rows []json.RawMessage
		if err := json.Unmarshal(trimmed, &rows); err != nil {
			return nil, fmt.Errorf("invalid JSON input: %w", err)
		}
		return rows, nil
	}
	var doc struct {
		Rows []json.RawMessage `json:"rows"`
		Data []json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(trimmed, &doc); err != nil {
		return nil, fmt.Errorf("invalid JSON input: %w", err)
	}
	if doc.Rows != nil {
		return doc.Rows, nil
	}
	return doc.Data, nil
}

// RunID derives a deterministic run identifier from the input content
// (UUIDv5 over the raw document), so reruns of the same file produce
// byte-identical reports.
func RunID(input []byte) string {
	return uuid.NewSHA1(uuid.NameSpaceOID, input).String()
}

// Result is everything a transform run produces.
type Result struct {
	Plans   []catalog.Plan
	Rejects []catalog.Reject
	Report  *catalog.Report
}

// Run processes every row exactly once, fanning rows across workers. Rows
// share no mutable state, so the fan-out is a plain parallel map; outcomes
// are folded into the report sequentially in input order to keep the output
// deterministic regardless of scheduling.
func Run(ctx context.Context, runID string, rows []json.RawMessage, workers int) (*Result, error) {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	outcomes := make([]Outcome, len(rows))
	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, raw := range rows {
		i, raw := i, raw
		g.Go(func() error {
			outcomes[i] = Transform(raw)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	report := catalog.NewReport(runID)
	report.TotalRows = len(rows)
	result := &Result{
		Plans:   []catalog.Plan{},
		Rejects: []catalog.Reject{},
		Report:  report,
	}
	for _, out := range outcomes {
		foldOutcome(result, out)
	}
	report.ValidRows = len(result.Plans)
	report.RejectedRows = len(result.Rejects)
	computePriceStats(report, result.Plans)
	return result, nil
}

func foldOutcome(result *Result, out Outcome) {
	report := result.Report
	report.Coercions = append(report.Coercions, out.Audit.Coercions...)
	if out.Audit.USDRow != nil {
		report.USDRows = append(report.USDRows, *out.Audit.USDRow)
	}
	if out.Audit.PDFDetected {
		report.LinkQuality.PDFDetected++
	}
	if out.Audit.MissingWebsite {
		report.LinkQuality.MissingWebsite++
	}

	if out.Reject != nil {
		result.Rejects = append(result.Rejects, *out.Reject)
		return
	}

	plan := *out.Plan
	result.Plans = append(result.Plans, plan)
	report.CountsByCountry[string(plan.Country)]++
	report.CountsByCategory[string(plan.Category)]++
	report.CountsByProvider[plan.Provider]++
	report.BenefitLengthDistribution[strconv.Itoa(len(plan.Benefits))]++
}

// computePriceStats fills per-country min/max/avg/median over accepted rows.
func computePriceStats(report *catalog.Report, plans []catalog.Plan) {
	byCountry := map[string][]float64{}
	for _, p := range plans {
		byCountry[string(p.Country)] = append(byCountry[string(p.Country)], p.BasePrice)
	}
	for country, count := range report.CountsByCountry {
		prices := byCountry[country]
		report.PriceStatsByCountry[country] = catalog.PriceStats{
			Min:    normalize.RoundToTwoDecimals(minOf(prices)),
			Max:    normalize.RoundToTwoDecimals(maxOf(prices)),
			Avg:    normalize.RoundToTwoDecimals(avgOf(prices)),
			Median: normalize.RoundToTwoDecimals(medianOf(prices)),
			Count:  count,
		}
	}
}

func minOf(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	m := values[0]
	for _, v := range values[1:] {
		if v < m {
			m = v
		}
	}
	return m
}

func maxOf(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	m := values[0]
	for _, v := range values[1:] {
		if v > m {
			m = v
		}
	}
	return m
}

func avgOf(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := decimal.Zero
	for _, v := range values {
		sum = sum.Add(decimal.NewFromFloat(v))
	}
	avg, _ := sum.Div(decimal.NewFromInt(int64(len(values)))).Float64()
	return avg
}

func medianOf(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return (sorted[mid-1] + sorted[mid]) / 2
	}
	return sorted[mid]
}
