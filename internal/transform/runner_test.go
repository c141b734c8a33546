package transform

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"plan-catalog/pkg/catalog"
)

func TestDecodeDocument(t *testing.T) {
	t.Run("top-level array", func(t *testing.T) {
		rows, err := DecodeDocument([]byte(`[{"a":1},{"b":2}]`))
		require.NoError(t, err)
		assert.Len(t, rows, 2)
	})

	t.Run("rows object", func(t *testing.T) {
		rows, err := DecodeDocument([]byte(`{"rows":[{"a":1}]}`))
		require.NoError(t, err)
		assert.Len(t, rows, 1)
	})

	t.Run("data object", func(t *testing.T) {
		rows, err := DecodeDocument([]byte(`{"data":[{"a":1},{"b":2},{"c":3}]}`))
		require.NoError(t, err)
		assert.Len(t, rows, 3)
	})

	t.Run("rows wins over data", func(t *testing.T) {
		rows, err := DecodeDocument([]byte(`{"rows":[{"a":1}],"data":[{"b":2},{"c":3}]}`))
		require.NoError(t, err)
		assert.Len(t, rows, 1)
	})

	t.Run("other object shape yields zero rows", func(t *testing.T) {
		rows, err := DecodeDocument([]byte(`{"foo":"bar"}`))
		require.NoError(t, err)
		assert.Empty(t, rows)
	})

	t.Run("malformed json is fatal", func(t *testing.T) {
		_, err := DecodeDocument([]byte(`{"rows": [`))
		require.Error(t, err)
	})

	t.Run("empty input is fatal", func(t *testing.T) {
		_, err := DecodeDocument([]byte("  "))
		require.Error(t, err)
	})
}

func TestRunID(t *testing.T) {
	a := RunID([]byte(`[{"x":1}]`))
	b := RunID([]byte(`[{"x":1}]`))
	c := RunID([]byte(`[{"x":2}]`))
	assert.Equal(t, a, b, "same input, same run id")
	assert.NotEqual(t, a, c)
}

func testRows(t *testing.T) []json.RawMessage {
	t.Helper()
	valid := validRow()

	usdRow := validRow()
	usdRow["name"] = "Plan Dolar"
	usdRow["price"] = map[string]any{"amount": 120000, "period": "month", "currency": "USD"}

	brochureOnly := validRow()
	brochureOnly["name"] = "Plan Folleto"
	brochureOnly["links"] = map[string]any{"pdf": "https://bolivar.co/folleto.pdf"}

	noPrice := validRow()
	noPrice["name"] = "Plan Sin Precio"
	delete(noPrice, "price")

	rows := []json.RawMessage{
		mustRow(t, valid),
		mustRow(t, usdRow),
		mustRow(t, brochureOnly),
		mustRow(t, noPrice),
		json.RawMessage(`"not an object"`),
	}
	return rows
}

func TestRunCompleteness(t *testing.T) {
	rows := testRows(t)
	result, err := Run(context.Background(), "run-1", rows, 4)
	require.NoError(t, err)

	assert.Len(t, result.Plans, 2)
	assert.Len(t, result.Rejects, 3)
	assert.Equal(t, len(rows), len(result.Plans)+len(result.Rejects),
		"every row lands in exactly one collection")

	report := result.Report
	assert.Equal(t, "run-1", report.RunID)
	assert.Equal(t, 5, report.TotalRows)
	assert.Equal(t, 2, report.ValidRows)
	assert.Equal(t, 3, report.RejectedRows)
	assert.Equal(t, 2, report.CountsByCountry["CO"])
	assert.Equal(t, 2, report.CountsByCategory["salud"])
	assert.Equal(t, 2, report.CountsByProvider["Seguros Bolivar"])
	assert.Equal(t, 1, report.LinkQuality.PDFDetected)
	assert.Equal(t, 1, report.LinkQuality.MissingWebsite)
	// The USD row has no justification marker, so it was coerced.
	assert.Equal(t, []string{"Coerced USD→COP (unjustified) for CO"}, report.Coercions)
	assert.Empty(t, report.USDRows)
	assert.Equal(t, 2, report.BenefitLengthDistribution["3"])
}

func TestRunPriceStats(t *testing.T) {
	prices := []float64{20000, 30000, 100000}
	var rows []json.RawMessage
	for i, price := range prices {
		row := validRow()
		row["name"] = fmt.Sprintf("Plan %d", i)
		row["price"] = map[string]any{"amount": price, "period": "month", "currency": "COP"}
		rows = append(rows, mustRow(t, row))
	}

	result, err := Run(context.Background(), "run-stats", rows, 2)
	require.NoError(t, err)
	require.Len(t, result.Plans, 3)

	stats := result.Report.PriceStatsByCountry["CO"]
	assert.Equal(t, catalog.PriceStats{
		Min:    20000,
		Max:    100000,
		Avg:    50000,
		Median: 30000,
		Count:  3,
	}, stats)
}

func TestRunIsDeterministicAcrossWorkerCounts(t *testing.T) {
	var rows []json.RawMessage
	for i := 0; i < 40; i++ {
		row := validRow()
		row["name"] = fmt.Sprintf("Plan %02d", i)
		if i%5 == 0 {
			delete(row, "links")
		}
		rows = append(rows, mustRow(t, row))
	}

	serial, err := Run(context.Background(), "run-x", rows, 1)
	require.NoError(t, err)
	parallel, err := Run(context.Background(), "run-x", rows, 8)
	require.NoError(t, err)

	assert.Equal(t, serial.Plans, parallel.Plans)
	assert.Equal(t, serial.Rejects, parallel.Rejects)
	assert.Equal(t, serial.Report, parallel.Report)

	serialJSON, err := json.Marshal(serial.Report)
	require.NoError(t, err)
	parallelJSON, err := json.Marshal(parallel.Report)
	require.NoError(t, err)
	assert.Equal(t, serialJSON, parallelJSON, "reports are byte-identical")
}

func TestRunEmptyInput(t *testing.T) {
	result, err := Run(context.Background(), "run-empty", nil, 0)
	require.NoError(t, err)
	assert.Empty(t, result.Plans)
	assert.Empty(t, result.Rejects)
	assert.Equal(t, 0, result.Report.TotalRows)
	assert.Empty(t, result.Report.PriceStatsByCountry)
}
