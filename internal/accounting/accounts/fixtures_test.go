package accounts

import (
	"context"
	"sort"
	"time"

	"github.com/odyssey-erp/custom-accounting/internal/accounting/periods"
	"github.com/odyssey-erp/custom-accounting/internal/accounting/shared"
	"github.com/odyssey-erp/custom-accounting/internal/masterdata/companies"
	mdshared "github.com/odyssey-erp/custom-accounting/internal/masterdata/shared"
	internalShared "github.com/odyssey-erp/custom-accounting/internal/shared"
)

type memStore struct {
	accounts     map[string]Account
	locations    []LocationRef
	ccByLocation map[string][]string
	costCenters  map[string]bool
	keys         map[string]bool
	audits       []internalShared.AuditLog
}

func newMemStore() *memStore {
	s := &memStore{
		accounts: map[string]Account{},
		locations: []LocationRef{
			{Name: "Dubai", AccountNumber: "01"},
		},
		ccByLocation: map[string][]string{"Dubai": {"101 - Retail - AC"}},
		costCenters:  map[string]bool{"Retail - AC": true},
		keys:         map[string]bool{},
	}
	for _, acc := range []Account{
		{Name: "1000 - Assets - AC", AccountName: "Assets", AccountNumber: "1000", Company: "Acme", IsGroup: true, RootType: RootTypeAsset, AccountCurrency: "AED"},
		{Name: "1100 - Cash - AC", AccountName: "Cash", AccountNumber: "1100", Company: "Acme", ParentAccount: "1000 - Assets - AC", RootType: RootTypeAsset, AccountCurrency: "AED"},
		{Name: "1200 - Bank - AC", AccountName: "Bank", AccountNumber: "1200", Company: "Acme", ParentAccount: "1000 - Assets - AC", IsGroup: true, RootType: RootTypeAsset, AccountCurrency: "USD", Location: "Dubai"},
		{Name: "4000 - Sales - AC", AccountName: "Sales", AccountNumber: "4000", Company: "Acme", IsGroup: true, RootType: RootTypeIncome, AccountCurrency: "AED", CostCenter: "Retail - AC"},
		{Name: "4100 - Counter Sales - AC", AccountName: "Counter Sales", AccountNumber: "4100", Company: "Acme", ParentAccount: "4000 - Sales - AC", RootType: RootTypeIncome, AccountCurrency: "AED", CostCenter: "Retail - AC"},
	} {
		s.accounts[acc.Name] = acc
	}
	return s
}

func (s *memStore) sorted(keep func(Account) bool) []Account {
	var out []Account
	for _, acc := range s.accounts {
		if keep(acc) {
			out = append(out, acc)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func (s *memStore) GetAccount(_ context.Context, name string) (Account, error) {
	acc, ok := s.accounts[name]
	if !ok {
		return Account{}, shared.ErrAccountNotFound
	}
	return acc, nil
}

func (s *memStore) FindAccount(_ context.Context, company, accountName, accountNumber string) (Account, error) {
	found := s.sorted(func(a Account) bool {
		return a.Company == company && a.AccountName == accountName && (accountNumber == "" || a.AccountNumber == accountNumber)
	})
	if len(found) == 0 {
		return Account{}, shared.ErrAccountNotFound
	}
	return found[0], nil
}

func (s *memStore) ChildAccounts(_ context.Context, company, parent string) ([]Account, error) {
	return s.sorted(func(a Account) bool { return a.Company == company && a.ParentAccount == parent }), nil
}

func (s *memStore) AccountsByCostCenter(_ context.Context, company, costCenter string) ([]Account, error) {
	return s.sorted(func(a Account) bool { return a.Company == company && a.CostCenter == costCenter }), nil
}

func (s *memStore) AccountLocations(context.Context, string) ([]LocationRef, error) {
	return s.locations, nil
}

func (s *memStore) LocationExists(_ context.Context, name string) (bool, error) {
	for _, loc := range s.locations {
		if loc.Name == name {
			return true, nil
		}
	}
	return false, nil
}

func (s *memStore) CostCenterExists(_ context.Context, name string) (bool, error) {
	return s.costCenters[name], nil
}

func (s *memStore) CostCentersInLocation(_ context.Context, _ string, location string) ([]string, error) {
	return s.ccByLocation[location], nil
}

func (s *memStore) HasAccountsTagged(_ context.Context, company, costCenter, location string) (bool, error) {
	tagged := s.sorted(func(a Account) bool {
		return a.Company == company &&
			(costCenter == "" || a.CostCenter == costCenter) &&
			(location == "" || a.Location == location)
	})
	return len(tagged) > 0, nil
}

func (s *memStore) CreateAccount(_ context.Context, acc Account) error {
	if _, dup := s.accounts[acc.Name]; dup {
		return shared.ErrDuplicate
	}
	s.accounts[acc.Name] = acc
	return nil
}

func (s *memStore) RecordAudit(_ context.Context, log internalShared.AuditLog) error {
	s.audits = append(s.audits, log)
	return nil
}

func (s *memStore) ClaimIdempotencyKey(_ context.Context, key string) error {
	if s.keys[key] {
		return internalShared.ErrIdempotencyConflict
	}
	s.keys[key] = true
	return nil
}

func (s *memStore) WithTx(ctx context.Context, fn func(context.Context, TxRepository) error) error {
	return fn(ctx, s)
}

type companyDirectory map[string]companies.Context

func (d companyDirectory) Context(_ context.Context, name string) (companies.Context, error) {
	cc, ok := d[name]
	if !ok {
		return companies.Context{}, mdshared.ErrNotFound
	}
	return cc, nil
}

func testCompanies() companyDirectory {
	return companyDirectory{
		"Acme":        {Company: "Acme", Abbr: "AC", DefaultCurrency: "AED"},
		"Acme Branch": {Company: "Acme Branch", Abbr: "ACB", DefaultCurrency: "AED", RootCompany: "Acme"},
	}
}

type calendarYears struct{}

func (calendarYears) FiscalYearFor(_ context.Context, _ string, date time.Time) (periods.FiscalYear, error) {
	return periods.Boundary(date, periods.YearStart{Month: time.January, Day: 1}), nil
}

type countingRecorder struct {
	found, missing int
}

func (r *countingRecorder) ObserveLedgerResolution(found bool) {
	if found {
		r.found++
		return
	}
	r.missing++
}

func newTestService() (*Service, *memStore) {
	store := newMemStore()
	svc := NewService(store, testCompanies(), calendarYears{})
	svc.WithNow(func() time.Time { return time.Date(2026, time.March, 14, 9, 0, 0, 0, time.UTC) })
	return svc, store
}
