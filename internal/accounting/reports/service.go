package reports

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/odyssey-erp/custom-accounting/internal/accounting/periods"
	"github.com/odyssey-erp/custom-accounting/internal/accounting/shared"
	"github.com/odyssey-erp/custom-accounting/internal/uischema"
)

// FiscalYears resolves the fiscal year budgets are read from.
type FiscalYears interface {
	FiscalYearFor(ctx context.Context, company string, date time.Time) (periods.FiscalYear, error)
}

const (
	periodWorkers = 4
	linkLimit     = 20
)

// Service runs the Account Inquiry report.
type Service struct {
	repo            Repository
	fiscal          FiscalYears
	defaultCurrency string
	now             func() time.Time
}

// NewService constructs the report service.
func NewService(repo Repository, fiscal FiscalYears, defaultCurrency string) *Service {
	return &Service{repo: repo, fiscal: fiscal, defaultCurrency: defaultCurrency, now: time.Now}
}

// WithNow overrides the clock for testing.
func (s *Service) WithNow(now func() time.Time) {
	if now != nil {
		s.now = now
	}
}

// Settings returns the filter descriptors for the user defaults.
func (s *Service) Settings(d Defaults) uischema.ReportSettings {
	return FilterSet(d, s.now(), s.defaultCurrency)
}

// LinkOptions searches the records offered by the Link filter field, using
// the filter's dependent query evaluated against the current values.
func (s *Service) LinkOptions(ctx context.Context, field string, values uischema.Values, search string) ([]string, error) {
	filter, ok := s.Settings(Defaults{}).Filter(field)
	if !ok || filter.Fieldtype != uischema.TypeLink {
		return nil, shared.Invalid("Unknown link filter " + field)
	}
	doctype, _ := filter.Options.(string)
	var q uischema.LinkQuery
	if filter.GetQuery != nil {
		q = filter.GetQuery(values)
	}
	options, err := s.repo.SearchLinks(ctx, doctype, q, search, linkLimit)
	if err != nil {
		return nil, err
	}
	if options == nil {
		options = []string{}
	}
	return options, nil
}

type budgetKey struct {
	account    string
	costCenter string
}

type periodQuery struct {
	period Period
	query  EntryQuery
}

// Run builds the report. Periods are aggregated concurrently and assembled
// in order.
func (s *Service) Run(ctx context.Context, f Filters) (Result, error) {
	if err := f.Validate(); err != nil {
		return Result{}, err
	}
	queries := s.periodQueries(f)
	sums := make([][]EntrySum, len(queries))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(periodWorkers)
	for i, pq := range queries {
		g.Go(func() error {
			entries, err := s.repo.PeriodEntries(gctx, pq.query)
			if err != nil {
				return err
			}
			sums[i] = entries
			return nil
		})
	}
	var budgets map[budgetKey]decimal.Decimal
	if f.ShowVariance {
		g.Go(func() error {
			var err error
			budgets, err = s.budgets(gctx, f)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return Result{}, err
	}

	rows := s.assemble(f, queries, sums, budgets)
	return Result{Filters: f, Columns: Columns(f), Rows: rows}, nil
}

// periodQueries derives one GL query per period. For YTD Converted the
// first period of each calendar year starts on January 1 so the running
// total carries activity before the requested range.
func (s *Service) periodQueries(f Filters) []periodQuery {
	buckets := BuildPeriods(f.GroupBy, f.FromDate, f.ToDate)
	out := make([]periodQuery, 0, len(buckets))
	for i, p := range buckets {
		q := EntryQuery{
			Company:    f.Company,
			From:       p.From,
			To:         p.To,
			Account:    f.Account,
			CostCenter: f.CostCenter,
			Currency:   f.Currency,
			Location:   f.Location,
		}
		if f.CurrencyType == CurrencyYTDConverted && (i == 0 || buckets[i-1].From.Year() != p.From.Year()) {
			q.From = time.Date(p.From.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
		}
		out = append(out, periodQuery{period: p, query: q})
	}
	return out
}

func (s *Service) budgets(ctx context.Context, f Filters) (map[budgetKey]decimal.Decimal, error) {
	fy, err := s.fiscal.FiscalYearFor(ctx, f.Company, f.FromDate)
	if err != nil {
		if errors.Is(err, shared.ErrNoFiscalYear) {
			return nil, nil
		}
		return nil, err
	}
	lines, err := s.repo.BudgetLines(ctx, f.Company, fy.Name)
	if err != nil {
		return nil, err
	}
	out := make(map[budgetKey]decimal.Decimal, len(lines))
	for _, l := range lines {
		k := budgetKey{account: l.Account, costCenter: l.CostCenter}
		out[k] = out[k].Add(l.Amount)
	}
	return out, nil
}

func (s *Service) assemble(f Filters, queries []periodQuery, sums [][]EntrySum, budgets map[budgetKey]decimal.Decimal) []Row {
	scale := f.Scale()
	currency := f.Currency
	if currency == "" {
		currency = s.defaultCurrency
	}
	var (
		rows                                   []Row
		grandDebit, grandCredit, grandVariance decimal.Decimal
		ytdDebit, ytdCredit                    decimal.Decimal
		ytdYear                                int
	)
	for i, pq := range queries {
		var periodDebit, periodCredit decimal.Decimal
		for _, e := range sums[i] {
			periodDebit = periodDebit.Add(e.Debit)
			periodCredit = periodCredit.Add(e.Credit)
		}
		grandDebit = grandDebit.Add(periodDebit)
		grandCredit = grandCredit.Add(periodCredit)

		if f.CurrencyType == CurrencyYTDConverted {
			if year := pq.period.From.Year(); year != ytdYear {
				ytdYear = year
				ytdDebit, ytdCredit = decimal.Zero, decimal.Zero
			}
			ytdDebit = ytdDebit.Add(periodDebit)
			ytdCredit = ytdCredit.Add(periodCredit)
			periodDebit, periodCredit = ytdDebit, ytdCredit
		}

		from, to := isoDate(pq.query.From), isoDate(pq.query.To)
		header := Row{
			Name:       pq.period.Label,
			IsGroup:    true,
			Debit:      periodDebit,
			Credit:     periodCredit,
			Balance:    periodDebit.Sub(periodCredit),
			ReportFrom: from,
			ReportTo:   to,
		}
		var headerVariance decimal.Decimal
		children := make([]Row, 0, len(sums[i]))
		for _, e := range sums[i] {
			balance := e.Debit.Sub(e.Credit)
			row := Row{
				Name:       e.Account,
				Parent:     pq.period.Label,
				Indent:     1,
				Account:    e.Account,
				CostCenter: e.CostCenter,
				Location:   e.Location,
				Currency:   e.AccountCurrency,
				Debit:      e.Debit,
				Credit:     e.Credit,
				Balance:    balance,
				ReportFrom: from,
				ReportTo:   to,
			}
			if f.ShowVariance {
				v := balance.Sub(budgets[budgetKey{account: e.Account, costCenter: e.CostCenter}])
				row.Variance = &v
				headerVariance = headerVariance.Add(v)
			}
			children = append(children, row)
		}
		if f.ShowVariance {
			header.Variance = &headerVariance
			grandVariance = grandVariance.Add(headerVariance)
		}
		rows = append(rows, scaleRow(header, scale))
		for _, row := range children {
			row = scaleRow(row, scale)
			row.BalanceLink = FormatBalanceCell(row, f, shared.FormatCurrency(row.Balance, currency))
			rows = append(rows, row)
		}
	}

	if f.ShowSummary {
		total := Row{
			Name:    "Grand Total",
			IsGroup: true,
			Debit:   grandDebit,
			Credit:  grandCredit,
			Balance: grandDebit.Sub(grandCredit),
		}
		if f.ShowVariance {
			total.Variance = &grandVariance
		}
		rows = append(rows, Row{Spacer: true}, scaleRow(total, scale))
	}
	return rows
}

func scaleRow(r Row, scale decimal.Decimal) Row {
	if scale.Equal(decimal.NewFromInt(1)) {
		return r
	}
	r.Debit = r.Debit.Div(scale)
	r.Credit = r.Credit.Div(scale)
	r.Balance = r.Balance.Div(scale)
	if r.Variance != nil {
		v := r.Variance.Div(scale)
		r.Variance = &v
	}
	return r
}
