// Package output serializes a transform run to its five artifacts: the
// canonical JSON catalog, a CSV export, SQL INSERT statements, the rejects
// file, and the aggregate report.
package output

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"plan-catalog/pkg/catalog"
)

// Artifact file names, fixed by the downstream search backend.
const (
	PlansJSONFile  = "plans_v2.json"
	PlansCSVFile   = "plans_v2.csv"
	PlansSQLFile   = "plans_v2.sql"
	RejectedFile   = "plans_v2_rejected.json"
	ReportFile     = "plans_v2_report.json"
	plansSQLTable  = "plans_v2"
	csvListDivider = " | "
)

// Writer writes run artifacts into a single output directory.
type Writer struct {
	OutDir string
}

// NewWriter returns a writer rooted at outDir, creating it if needed.
func NewWriter(outDir string) (*Writer, error) {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}
	return &Writer{OutDir: outDir}, nil
}

// WriteAll writes every artifact. Partial output on error is acceptable for
// a batch job; the caller aborts with a nonzero exit either way.
func (w *Writer) WriteAll(plans []catalog.Plan, rejects []catalog.Reject, report *catalog.Report) error {
	if err := w.writeJSON(PlansJSONFile, plans); err != nil {
		return err
	}
	if err := w.writeCSV(plans); err != nil {
		return err
	}
	if err := w.writeSQL(plans); err != nil {
		return err
	}
	if err := w.writeJSON(RejectedFile, rejects); err != nil {
		return err
	}
	return w.writeJSON(ReportFile, report)
}

func (w *Writer) writeJSON(name string, v any) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode %s: %w", name, err)
	}
	return w.writeFile(name, buf.Bytes())
}

func (w *Writer) writeCSV(plans []catalog.Plan) error {
	var buf bytes.Buffer
	cw := csv.NewWriter(&buf)
	if err := cw.Write(catalog.CSVHeader); err != nil {
		return err
	}
	for i := range plans {
		if err := cw.Write(csvRecord(&plans[i])); err != nil {
			return err
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	return w.writeFile(PlansCSVFile, buf.Bytes())
}

func csvRecord(p *catalog.Plan) []string {
	return []string{
		p.ID,
		p.Provider,
		p.Name,
		p.NameEN,
		string(p.Category),
		string(p.Country),
		decimal.NewFromFloat(p.BasePrice).StringFixed(2),
		string(p.Currency),
		p.ExternalLink,
		p.BrochureLink,
		strings.Join(p.Benefits, csvListDivider),
		strings.Join(p.BenefitsEN, csvListDivider),
		formatOptionalAge(p.MinAge),
		formatOptionalAge(p.MaxAge),
		strings.Join(p.Tags, csvListDivider),
	}
}

func formatOptionalAge(age *float64) string {
	if age == nil {
		return ""
	}
	return strconv.FormatFloat(*age, 'f', -1, 64)
}

func (w *Writer) writeSQL(plans []catalog.Plan) error {
	var buf bytes.Buffer
	for i := range plans {
		stmt, err := sqlInsert(&plans[i])
		if err != nil {
			return err
		}
		buf.WriteString(stmt)
		buf.WriteByte('\n')
	}
	return w.writeFile(PlansSQLFile, buf.Bytes())
}

// sqlInsert renders one INSERT with list columns JSON-encoded. String
// literals go through pq quoting so embedded quotes cannot break the
// statement.
func sqlInsert(p *catalog.Plan) (string, error) {
	benefits, err := json.Marshal(p.Benefits)
	if err != nil {
		return "", err
	}
	benefitsEN, err := json.Marshal(p.BenefitsEN)
	if err != nil {
		return "", err
	}
	tags := p.Tags
	if tags == nil {
		tags = []string{}
	}
	tagsJSON, err := json.Marshal(tags)
	if err != nil {
		return "", err
	}

	values := []string{
		pq.QuoteLiteral(p.ID),
		pq.QuoteLiteral(p.Provider),
		pq.QuoteLiteral(p.Name),
		pq.QuoteLiteral(p.NameEN),
		pq.QuoteLiteral(string(p.Category)),
		pq.QuoteLiteral(string(p.Country)),
		strconv.FormatFloat(p.BasePrice, 'f', -1, 64),
		pq.QuoteLiteral(string(p.Currency)),
		pq.QuoteLiteral(p.ExternalLink),
		sqlOptionalString(p.BrochureLink),
		pq.QuoteLiteral(string(benefits)),
		pq.QuoteLiteral(string(benefitsEN)),
		sqlOptionalNumber(p.MinAge),
		sqlOptionalNumber(p.MaxAge),
		pq.QuoteLiteral(string(tagsJSON)),
	}
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s);",
		plansSQLTable,
		strings.Join(catalog.CSVHeader, ", "),
		strings.Join(values, ", ")), nil
}

func sqlOptionalString(s string) string {
	if s == "" {
		return "NULL"
	}
	return pq.QuoteLiteral(s)
}

func sqlOptionalNumber(v *float64) string {
	if v == nil {
		return "NULL"
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

func (w *Writer) writeFile(name string, data []byte) error {
	path := filepath.Join(w.OutDir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	return nil
}
