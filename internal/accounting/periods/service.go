package periods

import (
	"context"
	"errors"
	"time"

	"github.com/odyssey-erp/custom-accounting/internal/accounting/shared"
)

// Service resolves fiscal years, falling back to a configured year start
// when none is stored.
type Service struct {
	repo     Repository
	fallback *YearStart
}

// NewService builds a Service. A nil fallback makes missing years an error.
func NewService(repo Repository, fallback *YearStart) *Service {
	return &Service{repo: repo, fallback: fallback}
}

// FiscalYearFor returns the fiscal year of company containing date.
func (s *Service) FiscalYearFor(ctx context.Context, company string, date time.Time) (FiscalYear, error) {
	if s.repo != nil {
		fy, err := s.repo.FindFiscalYear(ctx, company, date)
		if err == nil {
			return fy, nil
		}
		if !errors.Is(err, shared.ErrNoFiscalYear) {
			return FiscalYear{}, err
		}
	}
	if s.fallback == nil {
		return FiscalYear{}, shared.ErrNoFiscalYear
	}
	return Boundary(date, *s.fallback), nil
}
