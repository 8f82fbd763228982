package accounts

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/odyssey-erp/custom-accounting/internal/accounting/naming"
	"github.com/odyssey-erp/custom-accounting/internal/accounting/periods"
	"github.com/odyssey-erp/custom-accounting/internal/accounting/shared"
	"github.com/odyssey-erp/custom-accounting/internal/masterdata/companies"
)

// CompanyDirectory resolves company context for tree requests.
type CompanyDirectory interface {
	Context(ctx context.Context, name string) (companies.Context, error)
}

// FiscalYears resolves the fiscal year used by ledger navigation.
type FiscalYears interface {
	FiscalYearFor(ctx context.Context, company string, date time.Time) (periods.FiscalYear, error)
}

// ResolutionRecorder observes ledger resolution outcomes.
type ResolutionRecorder interface {
	ObserveLedgerResolution(found bool)
}

// Service serves the chart of accounts tree.
type Service struct {
	store     Store
	companies CompanyDirectory
	fiscal    FiscalYears
	recorder  ResolutionRecorder
	now       func() time.Time
}

// NewService constructs the chart of accounts service.
func NewService(store Store, companies CompanyDirectory, fiscal FiscalYears) *Service {
	return &Service{store: store, companies: companies, fiscal: fiscal, now: time.Now}
}

// WithNow overrides the clock for testing.
func (s *Service) WithNow(now func() time.Time) {
	if now != nil {
		s.now = now
	}
}

// WithRecorder attaches a metrics recorder.
func (s *Service) WithRecorder(r ResolutionRecorder) {
	s.recorder = r
}

// CompanyContext returns the company filter context (root company, abbr).
func (s *Service) CompanyContext(ctx context.Context, company string) (companies.Context, error) {
	company = strings.TrimSpace(company)
	if company == "" {
		return companies.Context{}, shared.ErrCompanyRequired
	}
	return s.companies.Context(ctx, company)
}

// Children lists the nodes under q.Parent following the
// Company > Location > Cost Center > Account hierarchy.
func (s *Service) Children(ctx context.Context, q ChildrenQuery) ([]Node, error) {
	cc, err := s.CompanyContext(ctx, q.Company)
	if err != nil {
		return nil, err
	}
	company := cc.Company
	parent := strings.TrimSpace(q.Parent)
	suffix := naming.CompanySuffix(cc.Abbr)

	if parent == "" {
		return []Node{{Value: company, Title: company, Expandable: true, IsRoot: true}}, nil
	}

	if parent == company {
		return s.locationNodes(ctx, company)
	}

	if nodes, ok, err := s.costCenterNodes(ctx, company, parent); err != nil || ok {
		return nodes, err
	}

	if suffix != "" && !strings.HasSuffix(parent, suffix) {
		return s.baseNode(ctx, company, parent, suffix)
	}

	children, err := s.store.ChildAccounts(ctx, company, parent)
	if err != nil {
		return nil, err
	}
	if len(children) > 0 {
		return accountNodes(children, suffix, parent), nil
	}

	return s.costCenterAccounts(ctx, company, parent, suffix)
}

func (s *Service) locationNodes(ctx context.Context, company string) ([]Node, error) {
	locs, err := s.store.AccountLocations(ctx, company)
	if err != nil {
		return nil, err
	}
	nodes := make([]Node, 0, len(locs))
	for _, loc := range locs {
		title := naming.FormatTitle(loc.AccountNumber, loc.Name)
		nodes = append(nodes, Node{
			Value:      title,
			Title:      title,
			Expandable: true,
			HideAdd:    true,
			Parent:     company,
		})
	}
	return nodes, nil
}

// costCenterNodes lists the cost centers of a location node. ok is false
// when parent is not a location or the location has no tagged cost centers.
func (s *Service) costCenterNodes(ctx context.Context, company, parent string) ([]Node, bool, error) {
	location := naming.StripNumericPrefix(parent)
	exists, err := s.store.LocationExists(ctx, location)
	if err != nil || !exists {
		return nil, false, err
	}
	names, err := s.store.CostCentersInLocation(ctx, company, location)
	if err != nil || len(names) == 0 {
		return nil, false, err
	}
	nodes := make([]Node, 0, len(names))
	for _, name := range names {
		nodes = append(nodes, Node{Value: name, Title: name, Expandable: true, Parent: parent})
	}
	return nodes, true, nil
}

// baseNode resolves a synthetic "number - name" node to its real account.
func (s *Service) baseNode(ctx context.Context, company, parent, suffix string) ([]Node, error) {
	number, name := naming.SplitTitle(parent)
	acc, err := s.store.FindAccount(ctx, company, name, number)
	if err != nil {
		if errors.Is(err, shared.ErrAccountNotFound) {
			return []Node{}, nil
		}
		return nil, err
	}
	return []Node{{
		Value:           acc.Name,
		Title:           naming.FormatTitle(acc.AccountNumber, acc.AccountName) + suffix,
		Expandable:      acc.IsGroup,
		IsLedger:        true,
		AccountCurrency: acc.AccountCurrency,
		Parent:          parent,
	}}, nil
}

func (s *Service) costCenterAccounts(ctx context.Context, company, parent, suffix string) ([]Node, error) {
	costCenter := naming.StripNumericPrefix(parent)
	exists, err := s.store.CostCenterExists(ctx, costCenter)
	if err != nil {
		return nil, err
	}
	if !exists {
		return []Node{}, nil
	}
	tagged, err := s.store.AccountsByCostCenter(ctx, company, costCenter)
	if err != nil {
		return nil, err
	}
	inSet := make(map[string]struct{}, len(tagged))
	for _, acc := range tagged {
		inSet[acc.Name] = struct{}{}
	}
	top := make([]Account, 0, len(tagged))
	for _, acc := range tagged {
		if _, nested := inSet[acc.ParentAccount]; acc.ParentAccount == "" || !nested {
			top = append(top, acc)
		}
	}
	return accountNodes(top, suffix, parent), nil
}

// accountNodes renders accounts as tree nodes. With a company suffix the
// nodes are synthetic base titles that expand into the real account.
func accountNodes(accs []Account, suffix, parent string) []Node {
	nodes := make([]Node, 0, len(accs))
	for _, acc := range accs {
		title := naming.FormatTitle(acc.AccountNumber, acc.AccountName)
		node := Node{Title: title, IsLedger: true, Parent: parent}
		if suffix != "" {
			node.Value = title
			node.Expandable = true
		} else {
			node.Value = acc.Name
			node.Expandable = acc.IsGroup
			node.AccountCurrency = acc.AccountCurrency
		}
		nodes = append(nodes, node)
	}
	return nodes
}

// Tree expands parent recursively up to maxDepth levels.
func (s *Service) Tree(ctx context.Context, company, parent string, maxDepth int) ([]Node, error) {
	if maxDepth <= 0 {
		maxDepth = 8
	}
	path := map[string]struct{}{parent: {}}
	return s.expand(ctx, company, parent, maxDepth, path)
}

// expand loads the children of parent. path holds the ancestors of the
// current branch only, so a value repeated under another branch (a cost
// center used in two locations) is expanded again.
func (s *Service) expand(ctx context.Context, company, parent string, depth int, path map[string]struct{}) ([]Node, error) {
	nodes, err := s.Children(ctx, ChildrenQuery{Company: company, Parent: parent})
	if err != nil {
		return nil, err
	}
	if depth <= 1 {
		return nodes, nil
	}
	for i := range nodes {
		if !nodes[i].Expandable {
			continue
		}
		if _, cyclic := path[nodes[i].Value]; cyclic {
			continue
		}
		path[nodes[i].Value] = struct{}{}
		children, err := s.expand(ctx, company, nodes[i].Value, depth-1, path)
		delete(path, nodes[i].Value)
		if err != nil {
			return nil, fmt.Errorf("accounts: expand %q: %w", nodes[i].Value, err)
		}
		nodes[i].Children = children
	}
	return nodes, nil
}
