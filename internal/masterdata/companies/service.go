package companies

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/odyssey-erp/custom-accounting/internal/masterdata/shared"
)

// maxCompanyDepth bounds parent_company walks so a cyclic hierarchy cannot loop forever.
const maxCompanyDepth = 32

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context, filters shared.ListFilters) ([]Company, error) {
	return s.repo.List(ctx, filters)
}

func (s *Service) Get(ctx context.Context, name string) (Company, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Company{}, shared.ErrNotFound
	}
	return s.repo.Get(ctx, name)
}

// RootCompany returns the topmost ancestor of a child company, or an empty
// string when company has no parent.
func (s *Service) RootCompany(ctx context.Context, name string) (string, error) {
	company, err := s.Get(ctx, name)
	if err != nil {
		return "", err
	}
	return s.rootOf(ctx, company)
}

func (s *Service) rootOf(ctx context.Context, company Company) (string, error) {
	root := ""
	seen := map[string]struct{}{company.Name: {}}
	for parent := company.ParentCompany; parent != ""; {
		if _, ok := seen[parent]; ok || len(seen) > maxCompanyDepth {
			return "", fmt.Errorf("companies: cyclic parent chain at %q", parent)
		}
		seen[parent] = struct{}{}
		next, err := s.repo.Get(ctx, parent)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return parent, nil
			}
			return "", err
		}
		root = next.Name
		parent = next.ParentCompany
	}
	return root, nil
}

// Context resolves the company filter context shown by the tree views.
func (s *Service) Context(ctx context.Context, name string) (Context, error) {
	company, err := s.Get(ctx, name)
	if err != nil {
		return Context{}, err
	}
	root, err := s.rootOf(ctx, company)
	if err != nil {
		return Context{}, err
	}
	return Context{
		Company:                                 company.Name,
		Abbr:                                    company.Abbr,
		DefaultCurrency:                         company.DefaultCurrency,
		RootCompany:                             root,
		AllowAccountCreationAgainstChildCompany: company.AllowAccountCreationAgainstChildCompany,
	}, nil
}
