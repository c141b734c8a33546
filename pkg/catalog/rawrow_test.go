package catalog

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlexNumberUnmarshal(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want FlexNumber
	}{
		{"number", `42.5`, FlexNumber{Present: true, IsNumber: true, Number: 42.5}},
		{"integer", `42`, FlexNumber{Present: true, IsNumber: true, Number: 42}},
		{"string", `"1.234,56"`, FlexNumber{Present: true, Text: "1.234,56"}},
		{"null", `null`, FlexNumber{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got FlexNumber
			require.NoError(t, json.Unmarshal([]byte(tt.in), &got))
			assert.Equal(t, tt.want, got)
		})
	}

	var got FlexNumber
	assert.Error(t, json.Unmarshal([]byte(`{"x":1}`), &got))
	assert.Error(t, json.Unmarshal([]byte(`true`), &got))
}

func TestPriceSpecUnmarshal(t *testing.T) {
	t.Run("scalar number", func(t *testing.T) {
		var p PriceSpec
		require.NoError(t, json.Unmarshal([]byte(`120000`), &p))
		assert.Equal(t, PriceScalar, p.Kind)
		assert.Equal(t, 120000.0, p.Scalar.Number)
	})

	t.Run("scalar string", func(t *testing.T) {
		var p PriceSpec
		require.NoError(t, json.Unmarshal([]byte(`"COP 99.000"`), &p))
		assert.Equal(t, PriceScalar, p.Kind)
		assert.Equal(t, "COP 99.000", p.Scalar.Text)
	})

	t.Run("structured", func(t *testing.T) {
		var p PriceSpec
		require.NoError(t, json.Unmarshal([]byte(`{"amount":120000,"period":"year","currency":"COP"}`), &p))
		assert.Equal(t, PriceStructured, p.Kind)
		assert.Equal(t, 120000.0, p.Amount.Number)
		assert.Equal(t, "year", p.Period)
		assert.Equal(t, "COP", p.Currency)
	})

	t.Run("structured partial", func(t *testing.T) {
		var p PriceSpec
		require.NoError(t, json.Unmarshal([]byte(`{"currency":"USD"}`), &p))
		assert.Equal(t, PriceStructured, p.Kind)
		assert.False(t, p.Amount.Present)
	})

	t.Run("null", func(t *testing.T) {
		var p PriceSpec
		require.NoError(t, json.Unmarshal([]byte(`null`), &p))
		assert.Equal(t, PriceAbsent, p.Kind)
	})
}

func TestRawRowUnmarshalAdditional(t *testing.T) {
	raw := `{
		"provider": "Sura",
		"name": "Plan Vida",
		"scraper_batch": "2024-11",
		"confidence": 0.93
	}`
	var row RawRow
	require.NoError(t, json.Unmarshal([]byte(raw), &row))

	assert.Equal(t, "Sura", row.Provider)
	assert.Equal(t, "Plan Vida", row.Name)
	require.Len(t, row.Additional, 2)
	assert.JSONEq(t, `"2024-11"`, string(row.Additional["scraper_batch"]))
	assert.JSONEq(t, `0.93`, string(row.Additional["confidence"]))
}

func TestRawRowUnmarshalNoAdditional(t *testing.T) {
	var row RawRow
	require.NoError(t, json.Unmarshal([]byte(`{"provider":"Sura"}`), &row))
	assert.Nil(t, row.Additional)
}

func TestRawRowUnmarshalRejectsWrongTypes(t *testing.T) {
	var row RawRow
	assert.Error(t, json.Unmarshal([]byte(`{"benefits":[1,2,3]}`), &row))
	assert.Error(t, json.Unmarshal([]byte(`{"links":"https://x.co"}`), &row))
}
