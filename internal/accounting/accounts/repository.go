package accounts

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/odyssey-erp/custom-accounting/internal/accounting/shared"
	"github.com/odyssey-erp/custom-accounting/internal/platform/db"
)

// Repository reads and writes chart of accounts records.
type Repository interface {
	GetAccount(ctx context.Context, name string) (Account, error)
	FindAccount(ctx context.Context, company, accountName, accountNumber string) (Account, error)
	ChildAccounts(ctx context.Context, company, parent string) ([]Account, error)
	AccountsByCostCenter(ctx context.Context, company, costCenter string) ([]Account, error)
	AccountLocations(ctx context.Context, company string) ([]LocationRef, error)
	LocationExists(ctx context.Context, name string) (bool, error)
	CostCenterExists(ctx context.Context, name string) (bool, error)
	CostCentersInLocation(ctx context.Context, company, location string) ([]string, error)
	HasAccountsTagged(ctx context.Context, company, costCenter, location string) (bool, error)
	CreateAccount(ctx context.Context, acc Account) error
}

type repository struct {
	db db.Querier
}

// NewRepository returns a pgx backed Repository.
func NewRepository(q db.Querier) Repository {
	return &repository{db: q}
}

const accountColumns = `name, account_name, COALESCE(account_number, ''), company, COALESCE(parent_account, ''),
	is_group, COALESCE(root_type, ''), COALESCE(account_type, ''), COALESCE(account_currency, ''), tax_rate,
	COALESCE(custom_location, ''), COALESCE(custom_cost_center, '')`

func scanAccount(row pgx.Row) (Account, error) {
	var a Account
	err := row.Scan(&a.Name, &a.AccountName, &a.AccountNumber, &a.Company, &a.ParentAccount,
		&a.IsGroup, &a.RootType, &a.AccountType, &a.AccountCurrency, &a.TaxRate,
		&a.Location, &a.CostCenter)
	return a, err
}

func (r *repository) GetAccount(ctx context.Context, name string) (Account, error) {
	acc, err := scanAccount(r.db.QueryRow(ctx, `SELECT `+accountColumns+` FROM accounts WHERE name = $1`, name))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Account{}, shared.ErrAccountNotFound
		}
		return Account{}, fmt.Errorf("accounts: get account: %w", err)
	}
	return acc, nil
}

// FindAccount matches on company and account_name, plus account_number when given.
func (r *repository) FindAccount(ctx context.Context, company, accountName, accountNumber string) (Account, error) {
	acc, err := scanAccount(r.db.QueryRow(ctx, `SELECT `+accountColumns+` FROM accounts
WHERE company = $1 AND account_name = $2 AND ($3 = '' OR account_number = $3)
ORDER BY name LIMIT 1`, company, accountName, accountNumber))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Account{}, shared.ErrAccountNotFound
		}
		return Account{}, fmt.Errorf("accounts: find account: %w", err)
	}
	return acc, nil
}

func (r *repository) ChildAccounts(ctx context.Context, company, parent string) ([]Account, error) {
	return r.queryAccounts(ctx, `SELECT `+accountColumns+` FROM accounts
WHERE company = $1 AND parent_account = $2 ORDER BY account_number ASC NULLS LAST, name`, company, parent)
}

func (r *repository) AccountsByCostCenter(ctx context.Context, company, costCenter string) ([]Account, error) {
	return r.queryAccounts(ctx, `SELECT `+accountColumns+` FROM accounts
WHERE company = $1 AND custom_cost_center = $2 ORDER BY account_number ASC NULLS LAST, name`, company, costCenter)
}

func (r *repository) queryAccounts(ctx context.Context, sql string, args ...any) ([]Account, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("accounts: query accounts: %w", err)
	}
	defer rows.Close()
	var out []Account
	for rows.Next() {
		acc, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, acc)
	}
	return out, rows.Err()
}

func (r *repository) AccountLocations(ctx context.Context, company string) ([]LocationRef, error) {
	rows, err := r.db.Query(ctx, `SELECT l.name, COALESCE(l.custom_account_number, '')
FROM locations l
WHERE l.name IN (SELECT DISTINCT custom_location FROM accounts WHERE company = $1 AND custom_location IS NOT NULL AND custom_location <> '')
ORDER BY l.name`, company)
	if err != nil {
		return nil, fmt.Errorf("accounts: account locations: %w", err)
	}
	defer rows.Close()
	var out []LocationRef
	for rows.Next() {
		var ref LocationRef
		if err := rows.Scan(&ref.Name, &ref.AccountNumber); err != nil {
			return nil, err
		}
		out = append(out, ref)
	}
	return out, rows.Err()
}

func (r *repository) LocationExists(ctx context.Context, name string) (bool, error) {
	return r.exists(ctx, `SELECT EXISTS (SELECT 1 FROM locations WHERE name = $1)`, name)
}

func (r *repository) CostCenterExists(ctx context.Context, name string) (bool, error) {
	return r.exists(ctx, `SELECT EXISTS (SELECT 1 FROM cost_centers WHERE name = $1)`, name)
}

// HasAccountsTagged reports whether any account of company is tagged with the
// given cost center (when non-empty) or location (when non-empty).
func (r *repository) HasAccountsTagged(ctx context.Context, company, costCenter, location string) (bool, error) {
	return r.exists(ctx, `SELECT EXISTS (SELECT 1 FROM accounts WHERE company = $1
AND ($2 = '' OR custom_cost_center = $2) AND ($3 = '' OR custom_location = $3))`, company, costCenter, location)
}

func (r *repository) exists(ctx context.Context, sql string, args ...any) (bool, error) {
	var ok bool
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&ok); err != nil {
		return false, fmt.Errorf("accounts: exists: %w", err)
	}
	return ok, nil
}

func (r *repository) CostCentersInLocation(ctx context.Context, company, location string) ([]string, error) {
	rows, err := r.db.Query(ctx, `SELECT cc.name FROM cost_centers cc
WHERE cc.name IN (SELECT DISTINCT custom_cost_center FROM accounts WHERE company = $1 AND custom_location = $2 AND custom_cost_center IS NOT NULL AND custom_cost_center <> '')
ORDER BY cc.name`, company, location)
	if err != nil {
		return nil, fmt.Errorf("accounts: cost centers in location: %w", err)
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

func (r *repository) CreateAccount(ctx context.Context, acc Account) error {
	_, err := r.db.Exec(ctx, `INSERT INTO accounts (name, account_name, account_number, company, parent_account, is_group,
	root_type, account_type, account_currency, tax_rate, custom_location, custom_cost_center)
VALUES ($1, $2, NULLIF($3, ''), $4, NULLIF($5, ''), $6, NULLIF($7, ''), NULLIF($8, ''), NULLIF($9, ''), $10, NULLIF($11, ''), NULLIF($12, ''))`,
		acc.Name, acc.AccountName, acc.AccountNumber, acc.Company, acc.ParentAccount, acc.IsGroup,
		acc.RootType, acc.AccountType, acc.AccountCurrency, acc.TaxRate, acc.Location, acc.CostCenter)
	if err != nil {
		if db.IsUniqueViolation(err) {
			return shared.ErrDuplicate
		}
		return fmt.Errorf("accounts: create account: %w", err)
	}
	return nil
}
