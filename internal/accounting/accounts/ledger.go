package accounts

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"time"

	"github.com/odyssey-erp/custom-accounting/internal/accounting/naming"
	"github.com/odyssey-erp/custom-accounting/internal/accounting/shared"
)

// GeneralLedgerReport is the report opened by "View Ledger".
const GeneralLedgerReport = "General Ledger"

// ResolveAccount maps a ledger node value to its stored account. Values
// carrying the company suffix are account names; anything else is split into
// number and name and looked up within the company.
func (s *Service) ResolveAccount(ctx context.Context, company, value string) (Account, error) {
	cc, err := s.CompanyContext(ctx, company)
	if err != nil {
		return Account{}, err
	}
	value = strings.TrimSpace(value)
	if value == "" {
		return Account{}, shared.ErrAccountNotFound
	}
	if naming.HasCompanySuffix(value, cc.Abbr) {
		acc, err := s.store.GetAccount(ctx, value)
		if err != nil {
			return Account{}, err
		}
		// names are unique across companies; never follow one out of the filter
		if acc.Company != cc.Company {
			return Account{}, shared.ErrAccountNotFound
		}
		return acc, nil
	}
	number, name := naming.SplitTitle(value)
	return s.store.FindAccount(ctx, cc.Company, name, number)
}

// LedgerRoute builds the General Ledger navigation for a ledger node, scoped
// to the fiscal year containing today. ErrAccountNotFound means no
// navigation must happen.
func (s *Service) LedgerRoute(ctx context.Context, company, value string) (Route, error) {
	acc, err := s.ResolveAccount(ctx, company, value)
	if s.recorder != nil && (err == nil || errors.Is(err, shared.ErrAccountNotFound)) {
		s.recorder.ObserveLedgerResolution(err == nil)
	}
	if err != nil {
		return Route{}, err
	}
	fy, err := s.fiscal.FiscalYearFor(ctx, acc.Company, s.now())
	if err != nil {
		return Route{}, err
	}
	opts := map[string]string{
		"from_date": fy.Start.Format(time.DateOnly),
		"to_date":   fy.End.Format(time.DateOnly),
		"company":   acc.Company,
		"account":   acc.Name,
	}
	return Route{
		Path:    []string{"query-report", GeneralLedgerReport},
		Options: opts,
		URL:     routeURL(GeneralLedgerReport, opts, "from_date", "to_date", "company", "account"),
	}, nil
}

func routeURL(report string, opts map[string]string, order ...string) string {
	var b strings.Builder
	b.WriteString("/app/query-report/")
	b.WriteString(url.PathEscape(report))
	sep := "?"
	for _, key := range order {
		b.WriteString(sep)
		b.WriteString(key)
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(opts[key]))
		sep = "&"
	}
	return b.String()
}
