package export

import (
	"bytes"
	"fmt"
	"strings"
)

// CSVExporter renders datasets as comma separated text. The header row is
// written verbatim; every data field is wrapped in double quotes with
// embedded quotes doubled, so empty values come out as "".
type CSVExporter struct{}

// NewCSVExporter builds a CSV exporter.
func NewCSVExporter() *CSVExporter {
	return &CSVExporter{}
}

// ContentType of the rendered payload.
func (e *CSVExporter) ContentType() string { return "text/csv; charset=utf-8" }

// Extension of the rendered payload.
func (e *CSVExporter) Extension() string { return "csv" }

// Render produces CSV encoded bytes for the dataset.
func (e *CSVExporter) Render(data Dataset) ([]byte, error) {
	if len(data.Headers) == 0 {
		return nil, fmt.Errorf("csv requires at least one header")
	}
	buf := &bytes.Buffer{}
	buf.WriteString(strings.Join(data.Headers, ","))
	buf.WriteByte('\n')
	for _, row := range data.Rows {
		record := data.record(row)
		for i, value := range record {
			if i > 0 {
				buf.WriteByte(',')
			}
			buf.WriteString(Quote(value))
		}
		buf.WriteByte('\n')
	}
	return buf.Bytes(), nil
}

// Quote wraps value in double quotes, doubling any embedded quote.
func Quote(value string) string {
	return `"` + strings.ReplaceAll(value, `"`, `""`) + `"`
}
