package reports

import (
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/odyssey-erp/custom-accounting/internal/accounting/shared"
	"github.com/odyssey-erp/custom-accounting/internal/platform/httpx"
	"github.com/odyssey-erp/custom-accounting/internal/uischema"
)

// Defaults are the per-user filter defaults.
type Defaults struct {
	Company  string
	Currency string
}

// LocationQuery is the named query listing the locations of a cost center.
const LocationQuery = "location_query"

// FilterSet describes the report filters. Currency falls back to
// fallbackCurrency when the user has no default.
func FilterSet(d Defaults, now time.Time, fallbackCurrency string) uischema.ReportSettings {
	currency := d.Currency
	if currency == "" {
		currency = fallbackCurrency
	}
	today := day(now)
	monthStart := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC)

	return uischema.ReportSettings{
		Filters: []uischema.Filter{
			{Fieldname: "company", Label: "Company", Fieldtype: uischema.TypeLink, Options: "Company", Default: d.Company, Reqd: true},
			{Fieldname: "currency", Label: "Currency", Fieldtype: uischema.TypeLink, Options: "Currency", Default: currency},
			{Fieldname: "from_date", Label: "From Date", Fieldtype: uischema.TypeDate, Default: isoDate(monthStart), Reqd: true},
			{Fieldname: "to_date", Label: "To Date", Fieldtype: uischema.TypeDate, Default: isoDate(today), Reqd: true},
			{
				Fieldname: "account", Label: "Account", Fieldtype: uischema.TypeLink, Options: "Account",
				DependsOn: []string{"company"},
				GetQuery: func(v uischema.Values) uischema.LinkQuery {
					return uischema.LinkQuery{Filters: map[string]any{"company": v["company"], "is_group": 0}}
				},
			},
			{
				Fieldname: "cost_center", Label: "Cost Center", Fieldtype: uischema.TypeLink, Options: "Cost Center",
				DependsOn: []string{"company", "location"},
				GetQuery: func(v uischema.Values) uischema.LinkQuery {
					filters := map[string]any{"company": v["company"], "is_group": 0}
					if v["location"] != "" {
						filters["custom_location"] = v["location"]
					}
					return uischema.LinkQuery{Filters: filters}
				},
			},
			{
				Fieldname: "location", Label: "Location", Fieldtype: uischema.TypeLink, Options: "Location",
				DependsOn: []string{"cost_center"},
				GetQuery: func(v uischema.Values) uischema.LinkQuery {
					return uischema.LinkQuery{Query: LocationQuery, Filters: map[string]any{"cost_center": v["cost_center"]}}
				},
			},
			{Fieldname: "group_by", Label: "Group By", Fieldtype: uischema.TypeSelect,
				Options: []string{GroupByMonth, GroupByQuarter, GroupByYear}, Default: GroupByMonth},
			{Fieldname: "factor", Label: "Factor", Fieldtype: uischema.TypeSelect,
				Options: []string{FactorUnits, FactorThousands, FactorMillions, FactorBillions}, Default: FactorUnits},
			{Fieldname: "currency_type", Label: "Currency Type", Fieldtype: uischema.TypeSelect,
				Options: []string{CurrencyTotalEntered, CurrencyPTDConverted, CurrencyYTDConverted}, Default: CurrencyTotalEntered},
			{Fieldname: "show_summary", Label: "Show Summary Totals", Fieldtype: uischema.TypeCheck, Default: 1},
			{Fieldname: "show_variance", Label: "Show Variance vs Budget", Fieldtype: uischema.TypeCheck, Default: 0},
		},
		Tree:         true,
		NameField:    "name",
		ParentField:  "parent",
		InitialDepth: 1,
	}
}

// ParseFilters reads report filters from query values and validates them.
func ParseFilters(v url.Values) (Filters, error) {
	f := Filters{
		Company:      strings.TrimSpace(v.Get("company")),
		Currency:     strings.ToUpper(strings.TrimSpace(v.Get("currency"))),
		Account:      strings.TrimSpace(v.Get("account")),
		CostCenter:   strings.TrimSpace(v.Get("cost_center")),
		Location:     strings.TrimSpace(v.Get("location")),
		GroupBy:      v.Get("group_by"),
		Factor:       v.Get("factor"),
		CurrencyType: v.Get("currency_type"),
		ShowSummary:  true,
	}
	if raw := v.Get("show_summary"); raw != "" {
		f.ShowSummary, _ = strconv.ParseBool(raw)
	}
	f.ShowVariance, _ = strconv.ParseBool(v.Get("show_variance"))
	if f.GroupBy == "" {
		f.GroupBy = GroupByMonth
	}
	if f.Factor == "" {
		f.Factor = FactorUnits
	}
	if f.CurrencyType == "" {
		f.CurrencyType = CurrencyTotalEntered
	}

	if f.Company == "" {
		return Filters{}, shared.Invalid("Company is required")
	}
	from, to := v.Get("from_date"), v.Get("to_date")
	if from == "" || to == "" {
		return Filters{}, shared.Invalid("From Date and To Date are required")
	}
	var err error
	if f.FromDate, err = time.Parse(time.DateOnly, from); err != nil {
		return Filters{}, &shared.ValidationError{Message: "Invalid From Date", Fields: map[string]string{"from_date": "must be YYYY-MM-DD"}}
	}
	if f.ToDate, err = time.Parse(time.DateOnly, to); err != nil {
		return Filters{}, &shared.ValidationError{Message: "Invalid To Date", Fields: map[string]string{"to_date": "must be YYYY-MM-DD"}}
	}
	if err := f.Validate(); err != nil {
		return Filters{}, err
	}
	return f, nil
}

// Validate checks required filters and the date range.
func (f Filters) Validate() error {
	if strings.TrimSpace(f.Company) == "" {
		return shared.Invalid("Company is required")
	}
	if f.FromDate.IsZero() || f.ToDate.IsZero() {
		return shared.Invalid("From Date and To Date are required")
	}
	if f.FromDate.After(f.ToDate) {
		return shared.Invalid("From Date cannot be greater than To Date")
	}
	return httpx.Validate(f)
}

// Columns returns the report columns for f.
func Columns(f Filters) []Column {
	cols := []Column{
		{Label: "Period / Account", Fieldname: "name", Fieldtype: "Data", Width: 300},
		{Label: "Cost Center", Fieldname: "cost_center", Fieldtype: "Link", Options: "Cost Center", Width: 160},
		{Label: "Debit", Fieldname: "debit", Fieldtype: "Currency", Options: f.Currency, Width: 130},
		{Label: "Credit", Fieldname: "credit", Fieldtype: "Currency", Options: f.Currency, Width: 130},
		{Label: "Balance", Fieldname: "balance", Fieldtype: "Currency", Options: f.Currency, Width: 130},
	}
	if f.ShowVariance {
		cols = append(cols, Column{Label: "Variance vs Budget", Fieldname: "variance", Fieldtype: "Currency", Options: f.Currency, Width: 150})
	}
	return cols
}
