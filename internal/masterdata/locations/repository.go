package locations

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/odyssey-erp/custom-accounting/internal/masterdata/shared"
	"github.com/odyssey-erp/custom-accounting/internal/platform/db"
)

type Repository interface {
	List(ctx context.Context, filters shared.ListFilters) ([]Location, error)
	Get(ctx context.Context, name string) (Location, error)
	Create(ctx context.Context, loc Location) (Location, error)
}

type repository struct {
	db db.Querier
}

func NewRepository(q db.Querier) Repository {
	return &repository{db: q}
}

func (r *repository) List(ctx context.Context, filters shared.ListFilters) ([]Location, error) {
	query := `SELECT name, location_name, COALESCE(custom_location_number, ''), COALESCE(custom_account_number, ''), company
FROM locations WHERE ($1 = '' OR company = $1) AND ($2 = '' OR name ILIKE '%' || $2 || '%')`
	query += fmt.Sprintf(` ORDER BY name LIMIT %d`, filters.EffectiveLimit())
	rows, err := r.db.Query(ctx, query, filters.Company, filters.Search)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Location
	for rows.Next() {
		var l Location
		if err := rows.Scan(&l.Name, &l.LocationName, &l.LocationNumber, &l.AccountNumber, &l.Company); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

func (r *repository) Get(ctx context.Context, name string) (Location, error) {
	var l Location
	err := r.db.QueryRow(ctx, `SELECT name, location_name, COALESCE(custom_location_number, ''), COALESCE(custom_account_number, ''), company
FROM locations WHERE name = $1`, name).Scan(&l.Name, &l.LocationName, &l.LocationNumber, &l.AccountNumber, &l.Company)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Location{}, shared.ErrNotFound
		}
		return Location{}, err
	}
	return l, nil
}

func (r *repository) Create(ctx context.Context, loc Location) (Location, error) {
	_, err := r.db.Exec(ctx, `INSERT INTO locations (name, location_name, custom_location_number, custom_account_number, company)
VALUES ($1, $2, NULLIF($3, ''), NULLIF($4, ''), $5)`, loc.Name, loc.LocationName, loc.LocationNumber, loc.AccountNumber, loc.Company)
	if err != nil {
		if db.IsUniqueViolation(err) {
			return Location{}, shared.ErrDuplicate
		}
		return Location{}, err
	}
	return loc, nil
}
