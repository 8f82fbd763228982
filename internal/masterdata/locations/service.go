package locations

import (
	"context"
	"fmt"
	"strings"

	"github.com/odyssey-erp/custom-accounting/internal/accounting/naming"
	"github.com/odyssey-erp/custom-accounting/internal/masterdata/companies"
	"github.com/odyssey-erp/custom-accounting/internal/masterdata/shared"
	"github.com/odyssey-erp/custom-accounting/internal/platform/httpx"
)

// CompanyLookup resolves the company a location belongs to.
type CompanyLookup interface {
	Get(ctx context.Context, name string) (companies.Company, error)
}

type Service struct {
	repo      Repository
	companies CompanyLookup
}

func NewService(repo Repository, companies CompanyLookup) *Service {
	return &Service{repo: repo, companies: companies}
}

func (s *Service) List(ctx context.Context, filters shared.ListFilters) ([]Location, error) {
	return s.repo.List(ctx, filters)
}

func (s *Service) Get(ctx context.Context, name string) (Location, error) {
	return s.repo.Get(ctx, name)
}

// Create stores a location named "<number> - <name> - <abbr>" with empty
// parts omitted.
func (s *Service) Create(ctx context.Context, form LocationForm) (Location, error) {
	form.LocationName = strings.TrimSpace(form.LocationName)
	form.Company = strings.TrimSpace(form.Company)
	if err := httpx.Validate(form); err != nil {
		return Location{}, err
	}
	company, err := s.companies.Get(ctx, form.Company)
	if err != nil {
		return Location{}, fmt.Errorf("locations: company %q: %w", form.Company, err)
	}
	loc := Location{
		Name:           naming.LocationName(form.LocationNumber, form.LocationName, company.Abbr),
		LocationName:   form.LocationName,
		LocationNumber: strings.TrimSpace(form.LocationNumber),
		AccountNumber:  strings.TrimSpace(form.AccountNumber),
		Company:        company.Name,
	}
	return s.repo.Create(ctx, loc)
}
