package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"

	"gorm.io/gorm"

	"github.com/kairowan/gatehouse/internal/domain"
	"github.com/kairowan/gatehouse/internal/query"
)

const (
	FormatJSON = "json"
	FormatCSV  = "csv"
)

type ExportResult struct {
	Report  string   `json:"report"`
	Columns []string `json:"columns"`
	Rows    [][]any  `json:"rows,omitempty"`
	CSV     string   `json:"csv,omitempty"`
}

// Exporter runs pre-approved reports. The identifier is the only input that
// reaches the query layer; there is no path for caller-supplied SQL.
type Exporter struct {
	db *gorm.DB
}

func NewExporter(db *gorm.DB) *Exporter { return &Exporter{db: db} }

func (e *Exporter) Export(ctx context.Context, reportName, format string) (ExportResult, error) {
	if format == "" {
		format = FormatJSON
	}
	if format != FormatJSON && format != FormatCSV {
		return ExportResult{}, domain.Validation("unknown export format")
	}
	rep, err := query.BuildReport(reportName)
	if err != nil {
		return ExportResult{}, err
	}

	rows, err := e.db.WithContext(ctx).Raw(rep.Template).Rows()
	if err != nil {
		return ExportResult{}, domain.Internal("report query failed", err)
	}
	defer rows.Close()

	out := ExportResult{Report: rep.Name, Columns: rep.Columns}
	for rows.Next() {
		vals := make([]any, len(rep.Columns))
		ptrs := make([]any, len(vals))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return ExportResult{}, domain.Internal("report scan failed", err)
		}
		for i, v := range vals {
			if b, ok := v.([]byte); ok {
				vals[i] = string(b)
			}
		}
		out.Rows = append(out.Rows, vals)
	}
	if err := rows.Err(); err != nil {
		return ExportResult{}, domain.Internal("report read failed", err)
	}

	if format == FormatCSV {
		csvText, err := encodeCSV(rep.Columns, out.Rows)
		if err != nil {
			return ExportResult{}, domain.Internal("csv encode failed", err)
		}
		out.Rows = nil
		out.CSV = csvText
	}
	return out, nil
}

func encodeCSV(columns []string, rows [][]any) (string, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(columns); err != nil {
		return "", err
	}
	for _, row := range rows {
		rec := make([]string, len(row))
		for i, v := range row {
			if v == nil {
				rec[i] = ""
				continue
			}
			rec[i] = fmt.Sprint(v)
		}
		if err := w.Write(rec); err != nil {
			return "", err
		}
	}
	w.Flush()
	return buf.String(), w.Error()
}
