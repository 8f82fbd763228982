package companies

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/odyssey-erp/custom-accounting/internal/masterdata/shared"
	"github.com/odyssey-erp/custom-accounting/internal/platform/db"
)

type Repository interface {
	List(ctx context.Context, filters shared.ListFilters) ([]Company, error)
	Get(ctx context.Context, name string) (Company, error)
}

type repository struct {
	db db.Querier
}

func NewRepository(q db.Querier) Repository {
	return &repository{db: q}
}

const companyColumns = `name, abbr, default_currency, COALESCE(parent_company, ''), allow_account_creation_against_child_company`

func (r *repository) List(ctx context.Context, filters shared.ListFilters) ([]Company, error) {
	query := `SELECT ` + companyColumns + ` FROM companies`
	args := []any{}
	if filters.Search != "" {
		query += ` WHERE name ILIKE $1 OR abbr ILIKE $1`
		args = append(args, "%"+filters.Search+"%")
	}
	query += fmt.Sprintf(` ORDER BY name LIMIT %d`, filters.EffectiveLimit())

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Company
	for rows.Next() {
		var c Company
		if err := rows.Scan(&c.Name, &c.Abbr, &c.DefaultCurrency, &c.ParentCompany, &c.AllowAccountCreationAgainstChildCompany); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *repository) Get(ctx context.Context, name string) (Company, error) {
	var c Company
	err := r.db.QueryRow(ctx, `SELECT `+companyColumns+` FROM companies WHERE name = $1`, name).
		Scan(&c.Name, &c.Abbr, &c.DefaultCurrency, &c.ParentCompany, &c.AllowAccountCreationAgainstChildCompany)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Company{}, shared.ErrNotFound
		}
		return Company{}, err
	}
	return c, nil
}
