package catalog

import "encoding/json"

// Reject pairs a row that failed the pipeline with the reasons it failed.
// The row is kept as raw JSON so the rejects file round-trips the input.
type Reject struct {
	Row     json.RawMessage `json:"row"`
	Reasons []string        `json:"reasons"`
}

// PriceStats summarizes accepted monthly prices for one country.
type PriceStats struct {
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Avg    float64 `json:"avg"`
	Median float64 `json:"median"`
	Count  int     `json:"count"`
}

// USDRow is one entry in the USD-justification audit log.
type USDRow struct {
	ID       string `json:"id,omitempty"`
	Provider string `json:"provider,omitempty"`
	Country  string `json:"country,omitempty"`
	Reason   string `json:"reason,omitempty"`
}

// LinkQuality counts link-classification outcomes across the run.
type LinkQuality struct {
	MissingWebsite int `json:"missingWebsite"`
	PDFDetected    int `json:"pdfDetected"`
}

// Report is the aggregate side-channel for a transform run. Counters cover
// accepted rows only, except LinkQuality and Coercions which also record
// what happened to rejected rows.
type Report struct {
	RunID        string `json:"run_id"`
	TotalRows    int    `json:"total_rows"`
	ValidRows    int    `json:"valid_rows"`
	RejectedRows int    `json:"rejected_rows"`

	CountsByCountry  map[string]int `json:"countsByCountry"`
	CountsByCategory map[string]int `json:"countsByCategory"`
	CountsByProvider map[string]int `json:"countsByProvider"`

	PriceStatsByCountry map[string]PriceStats `json:"priceStatsByCountry"`

	USDRows     []USDRow    `json:"usdRows"`
	LinkQuality LinkQuality `json:"linkQuality"`

	BenefitLengthDistribution map[string]int `json:"benefitLengthDistribution"`
	Coercions                 []string       `json:"coercions"`
}

// NewReport returns a Report with all maps and slices initialized so the
// serialized form always carries every section.
func NewReport(runID string) *Report {
	return &Report{
		RunID:                     runID,
		CountsByCountry:           map[string]int{},
		CountsByCategory:          map[string]int{},
		CountsByProvider:          map[string]int{},
		PriceStatsByCountry:       map[string]PriceStats{},
		USDRows:                   []USDRow{},
		BenefitLengthDistribution: map[string]int{},
		Coercions:                 []string{},
	}
}
