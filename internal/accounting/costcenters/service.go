package costcenters

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/odyssey-erp/custom-accounting/internal/accounting/naming"
	"github.com/odyssey-erp/custom-accounting/internal/accounting/shared"
	"github.com/odyssey-erp/custom-accounting/internal/masterdata/companies"
	"github.com/odyssey-erp/custom-accounting/internal/platform/httpx"
	internalShared "github.com/odyssey-erp/custom-accounting/internal/shared"
)

// CompanyDirectory resolves company context for tree requests.
type CompanyDirectory interface {
	Context(ctx context.Context, name string) (companies.Context, error)
}

// Service serves the cost center tree.
type Service struct {
	store     Store
	companies CompanyDirectory
	now       func() time.Time
}

// NewService constructs the cost center service.
func NewService(store Store, companies CompanyDirectory) *Service {
	return &Service{store: store, companies: companies, now: time.Now}
}

// WithNow overrides the clock for testing.
func (s *Service) WithNow(now func() time.Time) {
	if now != nil {
		s.now = now
	}
}

// Children lists the nodes of the Location > Cost Center hierarchy.
func (s *Service) Children(ctx context.Context, q ChildrenQuery) ([]Node, error) {
	company := strings.TrimSpace(q.Company)
	if company == "" {
		return nil, shared.ErrCompanyRequired
	}
	centers, err := s.store.ListByCompany(ctx, company)
	if err != nil {
		return nil, err
	}
	parent := strings.TrimSpace(q.Parent)

	if q.IsRoot || parent == "" || parent == company {
		var locations []string
		for _, cc := range centers {
			if cc.Location != "" && !slices.Contains(locations, cc.Location) {
				locations = append(locations, cc.Location)
			}
		}
		slices.Sort(locations)
		nodes := make([]Node, 0, len(locations))
		for _, loc := range locations {
			nodes = append(nodes, Node{Value: loc, Expandable: true})
		}
		return nodes, nil
	}

	byName := make(map[string]CostCenter, len(centers))
	isLocation := false
	for _, cc := range centers {
		byName[cc.Name] = cc
		if cc.Location == parent {
			isLocation = true
		}
	}

	nodes := []Node{}
	if isLocation {
		for _, cc := range centers {
			if cc.Location != parent {
				continue
			}
			if p, ok := byName[cc.ParentCostCenter]; cc.ParentCostCenter == "" || !ok || p.Location != parent {
				nodes = append(nodes, Node{Value: cc.Name, Expandable: cc.IsGroup, Parent: parent})
			}
		}
		return nodes, nil
	}

	if _, ok := byName[parent]; ok {
		for _, cc := range centers {
			if cc.ParentCostCenter == parent {
				nodes = append(nodes, Node{Value: cc.Name, Expandable: cc.IsGroup, Parent: parent})
			}
		}
	}
	return nodes, nil
}

// AddCostCenter creates a cost center under a cost center or a location.
// Cost centers added under a location are top level and tagged with it.
func (s *Service) AddCostCenter(ctx context.Context, in AddCostCenterInput) (CostCenter, error) {
	in.Company = strings.TrimSpace(in.Company)
	in.Parent = strings.TrimSpace(in.Parent)
	in.CostCenterName = strings.TrimSpace(in.CostCenterName)
	in.CostCenterNumber = strings.TrimSpace(in.CostCenterNumber)
	if in.Company == "" {
		return CostCenter{}, shared.ErrCompanyRequired
	}
	if err := httpx.Validate(in); err != nil {
		return CostCenter{}, err
	}
	cc, err := s.companies.Context(ctx, in.Company)
	if err != nil {
		return CostCenter{}, err
	}

	created := CostCenter{
		Name:             naming.FormatTitle(in.CostCenterNumber, in.CostCenterName) + naming.CompanySuffix(cc.Abbr),
		CostCenterName:   in.CostCenterName,
		CostCenterNumber: in.CostCenterNumber,
		Company:          cc.Company,
		IsGroup:          in.IsGroup,
	}
	err = s.store.WithTx(ctx, func(ctx context.Context, tx TxRepository) error {
		if err := place(ctx, tx, &created, in, cc.Company); err != nil {
			return err
		}
		if err := tx.Create(ctx, created); err != nil {
			return err
		}
		return tx.RecordAudit(ctx, internalShared.AuditLog{
			ActorID:  in.ActorID,
			Company:  created.Company,
			Action:   internalShared.AuditCostCenterCreate,
			Entity:   "cost_center",
			EntityID: created.Name,
			Meta: map[string]any{
				"parent_cost_center": created.ParentCostCenter,
				"custom_location":    created.Location,
			},
			At: s.now(),
		})
	})
	if err != nil {
		return CostCenter{}, err
	}
	return created, nil
}

func place(ctx context.Context, repo Repository, cc *CostCenter, in AddCostCenterInput, company string) error {
	if in.IsRoot || in.Parent == "" || in.Parent == company {
		if !cc.IsGroup {
			return shared.Invalid("Root cost center must be a group")
		}
		return nil
	}
	parent, err := repo.Get(ctx, in.Parent)
	switch {
	case err == nil:
		if parent.Company != company {
			return shared.Invalid("Parent cost center " + parent.Name + " belongs to another company")
		}
		if !parent.IsGroup {
			return shared.Invalid("Parent cost center " + parent.Name + " is not a group")
		}
		cc.ParentCostCenter = parent.Name
		cc.Location = parent.Location
		return nil
	case !errors.Is(err, ErrNotFound):
		return err
	}
	exists, err := repo.LocationExists(ctx, in.Parent)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("%w: no cost center or location named '%s' in company '%s'", shared.ErrParentNotFound, in.Parent, company)
	}
	cc.Location = in.Parent
	return nil
}
