package reports

import (
	"bytes"
	"encoding/csv"
	"html/template"
	"io"
	"strings"

	"github.com/shopspring/decimal"
)

// WriteCSV writes the report as CSV with one record per row. Spacer rows
// are written as empty records.
func WriteCSV(w io.Writer, res Result) error {
	cw := csv.NewWriter(w)
	header := make([]string, 0, len(res.Columns))
	for _, c := range res.Columns {
		header = append(header, c.Label)
	}
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, row := range res.Rows {
		if err := cw.Write(csvRecord(row, res.Filters.ShowVariance)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func csvRecord(row Row, variance bool) []string {
	n := 5
	if variance {
		n = 6
	}
	if row.Spacer {
		return make([]string, n)
	}
	name := row.Name
	if row.Indent > 0 {
		name = strings.Repeat("  ", row.Indent) + name
	}
	record := []string{name, row.CostCenter, amount(row.Debit), amount(row.Credit), amount(row.Balance)}
	if variance {
		record = append(record, optionalAmount(row.Variance))
	}
	return record
}

func amount(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func optionalAmount(v *decimal.Decimal) string {
	if v == nil {
		return ""
	}
	return amount(*v)
}

var pdfTemplate = template.Must(template.New("inquiry").Funcs(template.FuncMap{
	"amount":   amount,
	"variance": optionalAmount,
}).Parse(`<!DOCTYPE html>
<html><head><meta charset="utf-8"><title>{{.Title}}</title>
<style>
body { font-family: sans-serif; font-size: 11px; }
table { width: 100%; border-collapse: collapse; }
th, td { padding: 4px 6px; border-bottom: 1px solid #ddd; }
td.num { text-align: right; }
tr.group td { font-weight: bold; background: #f5f5f5; }
td.indent { padding-left: 24px; }
</style></head>
<body>
<h1>{{.Title}}</h1>
<p>{{.Result.Filters.Company}} &middot; {{.From}} to {{.To}} &middot; {{.Result.Filters.GroupBy}} &middot; {{.Result.Filters.Factor}}</p>
<table>
<thead><tr>{{range .Result.Columns}}<th>{{.Label}}</th>{{end}}</tr></thead>
<tbody>
{{- range .Result.Rows}}
{{- if .Spacer}}<tr><td colspan="{{len $.Result.Columns}}">&nbsp;</td></tr>
{{- else}}<tr{{if .IsGroup}} class="group"{{end}}><td{{if .Indent}} class="indent"{{end}}>{{.Name}}</td><td>{{.CostCenter}}</td><td class="num">{{amount .Debit}}</td><td class="num">{{amount .Credit}}</td><td class="num">{{amount .Balance}}</td>{{if $.Result.Filters.ShowVariance}}<td class="num">{{variance .Variance}}</td>{{end}}</tr>
{{- end}}
{{- end}}
</tbody>
</table>
</body></html>`))

// RenderHTML renders the report as a standalone HTML document for PDF
// conversion.
func RenderHTML(res Result) (string, error) {
	var buf bytes.Buffer
	err := pdfTemplate.Execute(&buf, struct {
		Title  string
		From   string
		To     string
		Result Result
	}{
		Title:  ReportName,
		From:   isoDate(res.Filters.FromDate),
		To:     isoDate(res.Filters.ToDate),
		Result: res,
	})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}
