package balances

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/odyssey-erp/custom-accounting/internal/platform/db"
)

// Repository reads GL balances and the chart display setting.
type Repository interface {
	ShowBalanceInChart(ctx context.Context) (bool, error)
	AccountBalances(ctx context.Context, company string, accounts []string, asOf time.Time) ([]Balance, error)
}

type repository struct {
	db db.Querier
}

// NewRepository returns a pgx backed Repository.
func NewRepository(q db.Querier) Repository {
	return &repository{db: q}
}

// ShowBalanceInChart defaults to true when accounts settings were never saved.
func (r *repository) ShowBalanceInChart(ctx context.Context) (bool, error) {
	var show bool
	err := r.db.QueryRow(ctx, `SELECT COALESCE((SELECT show_balance_in_coa FROM accounts_settings LIMIT 1), TRUE)`).Scan(&show)
	if err != nil {
		return false, fmt.Errorf("balances: show balance setting: %w", err)
	}
	return show, nil
}

const balancesSQL = `WITH RECURSIVE tree AS (
	SELECT a.name AS root, a.name AS name
	FROM accounts a
	WHERE a.company = $1 AND a.name = ANY($2)
	UNION ALL
	SELECT t.root, c.name
	FROM accounts c
	JOIN tree t ON c.parent_account = t.name
)
SELECT r.name,
	COALESCE(r.account_currency, co.default_currency),
	co.default_currency,
	COALESCE(SUM(g.debit - g.credit), 0)::text,
	COALESCE(SUM(g.debit_in_account_currency - g.credit_in_account_currency), 0)::text
FROM accounts r
JOIN companies co ON co.name = r.company
LEFT JOIN tree t ON t.root = r.name
LEFT JOIN gl_entries g ON g.account = t.name
	AND g.company = $1
	AND g.is_cancelled = FALSE
	AND g.posting_date <= $3
WHERE r.company = $1 AND r.name = ANY($2)
GROUP BY r.name, r.account_currency, co.default_currency
ORDER BY r.name`

func (r *repository) AccountBalances(ctx context.Context, company string, accounts []string, asOf time.Time) ([]Balance, error) {
	rows, err := r.db.Query(ctx, balancesSQL, company, accounts, asOf)
	if err != nil {
		return nil, fmt.Errorf("balances: query: %w", err)
	}
	defer rows.Close()
	var out []Balance
	for rows.Next() {
		var (
			b                 Balance
			balance, inAccCur string
		)
		if err := rows.Scan(&b.Account, &b.AccountCurrency, &b.CompanyCurrency, &balance, &inAccCur); err != nil {
			return nil, err
		}
		if b.Balance, err = decimal.NewFromString(balance); err != nil {
			return nil, fmt.Errorf("balances: parse balance of %s: %w", b.Account, err)
		}
		if b.AccountCurrency != b.CompanyCurrency {
			if b.BalanceInAccountCurrency, err = decimal.NewFromString(inAccCur); err != nil {
				return nil, fmt.Errorf("balances: parse account currency balance of %s: %w", b.Account, err)
			}
		}
		out = append(out, b)
	}
	return out, rows.Err()
}
