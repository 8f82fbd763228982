package reports

import (
	"bytes"
	"html/template"
	"net/url"
	"strings"
	"time"
)

const generalLedgerPath = "/app/query-report/General Ledger"

// DrillParams are the General Ledger filters carried by a balance link.
type DrillParams struct {
	Company    string
	Account    string
	FromDate   string
	ToDate     string
	CostCenter string
	Location   string
	Currency   string
}

var componentUnescaper = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

// EncodeComponent percent-encodes s the way browsers encode URI components:
// everything except A-Z a-z 0-9 and -_.!~*'() is escaped, spaces as %20.
func EncodeComponent(s string) string {
	return componentUnescaper.Replace(url.QueryEscape(s))
}

// DrillThroughURL builds the General Ledger link of a report row. The
// optional cost_center, location and currency parameters are only added
// when non-empty.
func DrillThroughURL(p DrillParams) string {
	params := []string{
		"company=" + EncodeComponent(p.Company),
		"account=" + EncodeComponent(p.Account),
		"from_date=" + EncodeComponent(p.FromDate),
		"to_date=" + EncodeComponent(p.ToDate),
	}
	if p.CostCenter != "" {
		params = append(params, "cost_center="+EncodeComponent(p.CostCenter))
	}
	if p.Location != "" {
		params = append(params, "location="+EncodeComponent(p.Location))
	}
	if p.Currency != "" {
		params = append(params, "currency="+EncodeComponent(p.Currency))
	}
	return generalLedgerPath + "?" + strings.Join(params, "&")
}

var balanceLink = template.Must(template.New("balance").Parse(
	`<a href="{{.URL}}" target="_blank" class="btn-link">{{.Value}}</a>`))

// FormatBalanceCell wraps the formatted balance of an account row in a link
// to the General Ledger. Group rows and rows without an account are
// returned as plain escaped text.
func FormatBalanceCell(row Row, f Filters, formatted string) string {
	if row.IsGroup || row.Account == "" {
		return template.HTMLEscapeString(formatted)
	}
	link := DrillThroughURL(DrillParams{
		Company:    f.Company,
		Account:    row.Account,
		FromDate:   row.ReportFrom,
		ToDate:     row.ReportTo,
		CostCenter: row.CostCenter,
		Location:   row.Location,
		Currency:   f.Currency,
	})
	var buf bytes.Buffer
	if err := balanceLink.Execute(&buf, struct {
		URL   string
		Value string
	}{URL: link, Value: formatted}); err != nil {
		return template.HTMLEscapeString(formatted)
	}
	return buf.String()
}

func isoDate(t time.Time) string {
	return t.Format(time.DateOnly)
}
