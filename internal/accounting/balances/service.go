package balances

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"slices"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/odyssey-erp/custom-accounting/internal/accounting/accounts"
	"github.com/odyssey-erp/custom-accounting/internal/accounting/naming"
	"github.com/odyssey-erp/custom-accounting/internal/accounting/shared"
	"github.com/odyssey-erp/custom-accounting/internal/masterdata/companies"
	"github.com/odyssey-erp/custom-accounting/internal/platform/cache"
)

// CompanyDirectory resolves the abbreviation used to qualify node values.
type CompanyDirectory interface {
	Context(ctx context.Context, name string) (companies.Context, error)
}

// LookupRecorder observes cache results of balance lookups.
type LookupRecorder interface {
	ObserveBalanceLookup(result string)
}

// Service annotates chart of accounts nodes with their balances.
type Service struct {
	repo      Repository
	companies CompanyDirectory
	cache     *cache.Versioned
	group     singleflight.Group
	recorder  LookupRecorder
	now       func() time.Time
}

// NewService constructs the balance service. cache may be nil.
func NewService(repo Repository, companies CompanyDirectory, c *cache.Versioned) *Service {
	return &Service{repo: repo, companies: companies, cache: c, now: time.Now}
}

// WithNow overrides the clock for testing.
func (s *Service) WithNow(now func() time.Time) {
	if now != nil {
		s.now = now
	}
}

// WithRecorder attaches a metrics recorder.
func (s *Service) WithRecorder(r LookupRecorder) {
	s.recorder = r
}

type lookup struct {
	key  string
	node accounts.Node
}

// Annotate returns balance labels for the ledger nodes of in. Nothing is
// returned when the viewer cannot read GL entries, no company is selected,
// there are no ledger nodes or the chart is configured to hide balances.
func (s *Service) Annotate(ctx context.Context, in AnnotateInput) ([]Annotation, error) {
	company := strings.TrimSpace(in.Company)
	if !in.CanReadGL || company == "" {
		return nil, nil
	}
	cc, err := s.companies.Context(ctx, company)
	if err != nil {
		return nil, err
	}

	nodes := in.Nodes
	if in.Deep {
		nodes = flatten(nil, in.Nodes)
	}
	var (
		lookups []lookup
		keys    []string
	)
	for _, n := range nodes {
		if n.Value == "" || !n.IsLedger {
			continue
		}
		key := naming.QualifyAccount(n.Value, cc.Abbr)
		lookups = append(lookups, lookup{key: key, node: n})
		if !slices.Contains(keys, key) {
			keys = append(keys, key)
		}
	}
	if len(lookups) == 0 {
		return nil, nil
	}

	show, err := s.repo.ShowBalanceInChart(ctx)
	if err != nil || !show {
		return nil, err
	}

	found, err := s.lookup(ctx, cc.Company, keys)
	if err != nil {
		return nil, err
	}
	if len(found) == 0 {
		return nil, nil
	}
	byAccount := make(map[string]Balance, len(found))
	for _, b := range found {
		byAccount[b.Account] = b
	}

	out := make([]Annotation, 0, len(lookups))
	for _, l := range lookups {
		if l.node.IsRoot {
			continue
		}
		b, ok := byAccount[l.key]
		if !ok {
			continue
		}
		out = append(out, annotation(l.node.Value, b))
	}
	return out, nil
}

func flatten(acc []accounts.Node, nodes []accounts.Node) []accounts.Node {
	for _, n := range nodes {
		acc = append(acc, n)
		if len(n.Children) > 0 {
			acc = flatten(acc, n.Children)
		}
	}
	return acc
}

// annotation renders "<account currency amount> / <company amount> Dr|Cr".
// The sign is taken from the account currency balance when there is one.
func annotation(node string, b Balance) Annotation {
	chosen := b.Balance
	if !b.BalanceInAccountCurrency.IsZero() {
		chosen = b.BalanceInAccountCurrency
	}
	drCr := "Cr"
	if chosen.IsPositive() {
		drCr = "Dr"
	}
	var label strings.Builder
	if !b.BalanceInAccountCurrency.IsZero() {
		label.WriteString(shared.FormatCurrency(b.BalanceInAccountCurrency.Abs(), b.AccountCurrency))
		label.WriteString(" / ")
	}
	label.WriteString(shared.FormatCurrency(b.Balance.Abs(), b.CompanyCurrency))
	label.WriteString(" ")
	label.WriteString(drCr)
	return Annotation{Node: node, Label: label.String(), Balance: chosen, DrCr: drCr}
}

type fetchResult struct {
	balances []Balance
	hit      bool
}

// lookup loads balances through the versioned cache. Concurrent requests for
// the same accounts share one database round trip.
func (s *Service) lookup(ctx context.Context, company string, keys []string) ([]Balance, error) {
	asOf := s.now()
	sorted := slices.Clone(keys)
	slices.Sort(sorted)
	digest := sha256.Sum256([]byte(strings.Join(sorted, "\x00")))

	key, err := s.cache.BuildKey(ctx, company, asOf.Format(time.DateOnly), hex.EncodeToString(digest[:8]))
	if err != nil {
		s.observe("error")
		return nil, err
	}
	ch := s.group.DoChan(key, func() (interface{}, error) {
		var out []Balance
		hit, err := s.cache.FetchJSON(ctx, key, &out, func(ctx context.Context) (any, error) {
			return s.repo.AccountBalances(ctx, company, sorted, asOf)
		})
		return fetchResult{balances: out, hit: hit}, err
	})
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			s.observe("error")
			return nil, res.Err
		}
		fetched := res.Val.(fetchResult)
		if fetched.hit {
			s.observe("hit")
		} else {
			s.observe("miss")
		}
		return fetched.balances, nil
	}
}

func (s *Service) observe(result string) {
	if s.recorder != nil {
		s.recorder.ObserveBalanceLookup(result)
	}
}

// Invalidate drops every cached balance, e.g. after GL postings.
func (s *Service) Invalidate(ctx context.Context) error {
	_, err := s.cache.Bump(ctx)
	return err
}
