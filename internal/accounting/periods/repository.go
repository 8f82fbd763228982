package periods

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/odyssey-erp/custom-accounting/internal/accounting/shared"
	"github.com/odyssey-erp/custom-accounting/internal/platform/db"
)

// Repository looks up stored fiscal years.
type Repository interface {
	FindFiscalYear(ctx context.Context, company string, date time.Time) (FiscalYear, error)
}

type repository struct {
	db db.Querier
}

// NewRepository returns a pgx backed Repository.
func NewRepository(q db.Querier) Repository {
	return &repository{db: q}
}

// FindFiscalYear returns the enabled fiscal year covering date. Years restricted
// to the company win over years shared by every company.
func (r *repository) FindFiscalYear(ctx context.Context, company string, date time.Time) (FiscalYear, error) {
	var fy FiscalYear
	err := r.db.QueryRow(ctx, `SELECT fy.name, fy.year_start_date, fy.year_end_date
FROM fiscal_years fy
LEFT JOIN fiscal_year_companies fyc ON fyc.fiscal_year = fy.name
WHERE fy.disabled = FALSE
  AND $2::date BETWEEN fy.year_start_date AND fy.year_end_date
  AND (fyc.company IS NULL OR fyc.company = $1)
ORDER BY (fyc.company IS NULL), fy.year_start_date DESC
LIMIT 1`, company, date).Scan(&fy.Name, &fy.Start, &fy.End)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return FiscalYear{}, shared.ErrNoFiscalYear
		}
		return FiscalYear{}, fmt.Errorf("periods: find fiscal year: %w", err)
	}
	return fy, nil
}
