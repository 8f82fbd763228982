// Package reports implements the Account Inquiry report: GL activity per
// period, grouped by account and cost center, with budget variance,
// scaling, summary totals and General Ledger drill-through links.
package reports

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReportName is the report title used in exports.
const ReportName = "Account Inquiry"

// Group by options.
const (
	GroupByMonth   = "Month"
	GroupByQuarter = "Quarter"
	GroupByYear    = "Year"
)

// Factor options scale every amount of the report.
const (
	FactorUnits     = "Units"
	FactorThousands = "Thousands"
	FactorMillions  = "Millions"
	FactorBillions  = "Billions"
)

// Currency type options.
const (
	CurrencyTotalEntered = "Total Entered"
	CurrencyPTDConverted = "PTD Converted"
	CurrencyYTDConverted = "YTD Converted"
)

var factors = map[string]int64{
	FactorUnits:     1,
	FactorThousands: 1_000,
	FactorMillions:  1_000_000,
	FactorBillions:  1_000_000_000,
}

// Filters are the parsed report filters.
type Filters struct {
	Company      string    `json:"company" validate:"required"`
	Currency     string    `json:"currency" validate:"omitempty,len=3"`
	FromDate     time.Time `json:"from_date"`
	ToDate       time.Time `json:"to_date"`
	Account      string    `json:"account"`
	CostCenter   string    `json:"cost_center"`
	Location     string    `json:"location"`
	GroupBy      string    `json:"group_by" validate:"omitempty,oneof=Month Quarter Year"`
	Factor       string    `json:"factor" validate:"omitempty,oneof=Units Thousands Millions Billions"`
	CurrencyType string    `json:"currency_type" validate:"omitempty,oneof='Total Entered' 'PTD Converted' 'YTD Converted'"`
	ShowSummary  bool      `json:"show_summary"`
	ShowVariance bool      `json:"show_variance"`
}

// Scale returns the divisor of the selected factor, 1 when unknown.
func (f Filters) Scale() decimal.Decimal {
	if n, ok := factors[f.Factor]; ok {
		return decimal.NewFromInt(n)
	}
	return decimal.NewFromInt(1)
}

// Period is one report bucket, clipped to the filter range.
type Period struct {
	Label string
	From  time.Time
	To    time.Time
}

// EntryQuery selects GL activity for one period.
type EntryQuery struct {
	Company    string
	From       time.Time
	To         time.Time
	Account    string
	CostCenter string
	Currency   string
	Location   string
}

// EntrySum is GL activity grouped by account, cost center and currency.
type EntrySum struct {
	Account         string
	CostCenter      string
	AccountCurrency string
	Location        string
	Debit           decimal.Decimal
	Credit          decimal.Decimal
}

// BudgetLine is the budgeted amount of an account for a cost center.
type BudgetLine struct {
	Account    string
	CostCenter string
	Amount     decimal.Decimal
}

// Row is a report line. Period headers are groups; account rows point at
// their period through Parent.
type Row struct {
	Name        string           `json:"name"`
	Parent      string           `json:"parent,omitempty"`
	Indent      int              `json:"indent"`
	IsGroup     bool             `json:"is_group"`
	Spacer      bool             `json:"spacer,omitempty"`
	Account     string           `json:"account,omitempty"`
	CostCenter  string           `json:"cost_center,omitempty"`
	Location    string           `json:"location,omitempty"`
	Currency    string           `json:"account_currency,omitempty"`
	Debit       decimal.Decimal  `json:"debit"`
	Credit      decimal.Decimal  `json:"credit"`
	Balance     decimal.Decimal  `json:"balance"`
	Variance    *decimal.Decimal `json:"variance,omitempty"`
	ReportFrom  string           `json:"report_from,omitempty"`
	ReportTo    string           `json:"report_to,omitempty"`
	BalanceLink string           `json:"balance_link,omitempty"`
}

// Column describes a report column.
type Column struct {
	Label     string `json:"label"`
	Fieldname string `json:"fieldname"`
	Fieldtype string `json:"fieldtype"`
	Options   string `json:"options,omitempty"`
	Width     int    `json:"width"`
}

// Result is a rendered report.
type Result struct {
	Filters Filters  `json:"filters"`
	Columns []Column `json:"columns"`
	Rows    []Row    `json:"data"`
}
