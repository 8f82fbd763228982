package reports

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/odyssey-erp/custom-accounting/internal/platform/db"
	"github.com/odyssey-erp/custom-accounting/internal/uischema"
)

// Repository reads GL activity, budgets and link filter options.
type Repository interface {
	PeriodEntries(ctx context.Context, q EntryQuery) ([]EntrySum, error)
	BudgetLines(ctx context.Context, company, fiscalYear string) ([]BudgetLine, error)
	SearchLinks(ctx context.Context, doctype string, q uischema.LinkQuery, search string, limit int) ([]string, error)
}

type repository struct {
	db db.Querier
}

// NewRepository returns a pgx backed Repository.
func NewRepository(q db.Querier) Repository {
	return &repository{db: q}
}

const periodEntriesSQL = `SELECT g.account,
	COALESCE(g.cost_center, ''),
	COALESCE(g.account_currency, ''),
	COALESCE(cc.custom_location, ''),
	SUM(g.debit)::text,
	SUM(g.credit)::text
FROM gl_entries g
LEFT JOIN cost_centers cc ON cc.name = g.cost_center
WHERE g.company = $1
	AND g.is_cancelled = FALSE
	AND g.posting_date BETWEEN $2 AND $3
	AND ($4 = '' OR g.account = $4)
	AND ($5 = '' OR g.cost_center = $5)
	AND ($6 = '' OR g.account_currency = $6)
	AND ($7 = '' OR cc.custom_location = $7)
GROUP BY g.account, g.cost_center, g.account_currency, cc.custom_location
ORDER BY g.account, g.cost_center`

func (r *repository) PeriodEntries(ctx context.Context, q EntryQuery) ([]EntrySum, error) {
	rows, err := r.db.Query(ctx, periodEntriesSQL, q.Company, q.From, q.To, q.Account, q.CostCenter, q.Currency, q.Location)
	if err != nil {
		return nil, fmt.Errorf("reports: period entries: %w", err)
	}
	defer rows.Close()
	var out []EntrySum
	for rows.Next() {
		var (
			e             EntrySum
			debit, credit string
		)
		if err := rows.Scan(&e.Account, &e.CostCenter, &e.AccountCurrency, &e.Location, &debit, &credit); err != nil {
			return nil, err
		}
		if e.Debit, err = decimal.NewFromString(debit); err != nil {
			return nil, fmt.Errorf("reports: parse debit: %w", err)
		}
		if e.Credit, err = decimal.NewFromString(credit); err != nil {
			return nil, fmt.Errorf("reports: parse credit: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *repository) BudgetLines(ctx context.Context, company, fiscalYear string) ([]BudgetLine, error) {
	rows, err := r.db.Query(ctx, `SELECT ba.account, COALESCE(b.cost_center, ''), SUM(ba.budget_amount)::text
FROM budget_accounts ba
JOIN budgets b ON b.name = ba.budget
WHERE b.company = $1 AND b.fiscal_year = $2
GROUP BY ba.account, b.cost_center`, company, fiscalYear)
	if err != nil {
		return nil, fmt.Errorf("reports: budget lines: %w", err)
	}
	defer rows.Close()
	var out []BudgetLine
	for rows.Next() {
		var (
			line   BudgetLine
			amount string
		)
		if err := rows.Scan(&line.Account, &line.CostCenter, &amount); err != nil {
			return nil, err
		}
		if line.Amount, err = decimal.NewFromString(amount); err != nil {
			return nil, fmt.Errorf("reports: parse budget amount: %w", err)
		}
		out = append(out, line)
	}
	return out, rows.Err()
}

// SearchLinks lists record names of doctype matching search, narrowed by the
// link query of the filter. Unsupported doctypes yield no options.
func (r *repository) SearchLinks(ctx context.Context, doctype string, q uischema.LinkQuery, search string, limit int) ([]string, error) {
	pattern := "%" + search + "%"
	var (
		sql  string
		args []any
	)
	switch doctype {
	case "Company":
		sql = `SELECT name FROM companies WHERE name ILIKE $1 ORDER BY name LIMIT $2`
		args = []any{pattern, limit}
	case "Currency":
		sql = `SELECT code FROM (
	SELECT default_currency AS code FROM companies
	UNION
	SELECT account_currency FROM accounts WHERE account_currency IS NOT NULL
) c WHERE code ILIKE $1 ORDER BY code LIMIT $2`
		args = []any{pattern, limit}
	case "Account":
		sql = `SELECT name FROM accounts WHERE company = $1 AND is_group = FALSE AND name ILIKE $2 ORDER BY name LIMIT $3`
		args = []any{stringFilter(q, "company"), pattern, limit}
	case "Cost Center":
		sql = `SELECT name FROM cost_centers WHERE company = $1 AND is_group = FALSE
	AND ($2 = '' OR custom_location = $2) AND name ILIKE $3 ORDER BY name LIMIT $4`
		args = []any{stringFilter(q, "company"), stringFilter(q, "custom_location"), pattern, limit}
	case "Location":
		sql = `SELECT l.name FROM locations l
WHERE ($1 = '' OR l.name = (SELECT custom_location FROM cost_centers WHERE name = $1))
	AND l.name ILIKE $2 ORDER BY l.name LIMIT $3`
		args = []any{stringFilter(q, "cost_center"), pattern, limit}
	default:
		return nil, nil
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("reports: search %s: %w", doctype, err)
	}
	defer rows.Close()
	var out []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		out = append(out, name)
	}
	return out, rows.Err()
}

func stringFilter(q uischema.LinkQuery, key string) string {
	if v, ok := q.Filters[key].(string); ok {
		return v
	}
	return ""
}
