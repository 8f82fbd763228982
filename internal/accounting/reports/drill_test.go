package reports

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEncodeComponent(t *testing.T) {
	cases := map[string]string{
		"Acme Corp":        "Acme%20Corp",
		"1100 - Cash - AC": "1100%20-%20Cash%20-%20AC",
		"it's (a)*!~":      "it's%20(a)*!~",
		"R&D/Ops+1":        "R%26D%2FOps%2B1",
		"":                 "",
	}
	for in, want := range cases {
		assert.Equal(t, want, EncodeComponent(in), in)
	}
}

func TestDrillThroughURLRequiredParams(t *testing.T) {
	got := DrillThroughURL(DrillParams{
		Company:  "Acme Corp",
		Account:  "1100 - Cash - AC",
		FromDate: "2026-01-01",
		ToDate:   "2026-01-31",
	})
	assert.Equal(t, "/app/query-report/General Ledger?company=Acme%20Corp&account=1100%20-%20Cash%20-%20AC&from_date=2026-01-01&to_date=2026-01-31", got)
}

func TestDrillThroughURLOptionalParams(t *testing.T) {
	got := DrillThroughURL(DrillParams{
		Company:    "Acme",
		Account:    "1100 - Cash - AC",
		FromDate:   "2026-01-01",
		ToDate:     "2026-01-31",
		CostCenter: "Main - AC",
		Location:   "01 - Dubai - AC",
		Currency:   "USD",
	})
	assert.Equal(t, "/app/query-report/General Ledger?company=Acme&account=1100%20-%20Cash%20-%20AC&from_date=2026-01-01&to_date=2026-01-31"+
		"&cost_center=Main%20-%20AC&location=01%20-%20Dubai%20-%20AC&currency=USD", got)
}

func TestFormatBalanceCell(t *testing.T) {
	f := Filters{Company: "Acme"}
	row := Row{Account: "1100 - Cash - AC", ReportFrom: "2026-01-01", ReportTo: "2026-01-31"}

	cell := FormatBalanceCell(row, f, "AED 800.00")
	assert.Contains(t, cell, `href="/app/query-report/General%20Ledger?company=Acme&amp;account=1100%20-%20Cash%20-%20AC&amp;from_date=2026-01-01&amp;to_date=2026-01-31"`)
	assert.Contains(t, cell, `target="_blank"`)
	assert.Contains(t, cell, ">AED 800.00</a>")
}

func TestFormatBalanceCellPlainForGroups(t *testing.T) {
	f := Filters{Company: "Acme"}
	assert.Equal(t, "AED 1,000.00", FormatBalanceCell(Row{Name: "Jan 2026", IsGroup: true}, f, "AED 1,000.00"))
	assert.Equal(t, "&lt;b&gt;", FormatBalanceCell(Row{Name: "Grand Total"}, f, "<b>"))
}
