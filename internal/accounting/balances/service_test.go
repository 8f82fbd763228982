package balances

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/odyssey-erp/custom-accounting/internal/accounting/accounts"
	"github.com/odyssey-erp/custom-accounting/internal/masterdata/companies"
	"github.com/odyssey-erp/custom-accounting/internal/platform/cache"
)

type stubRepo struct {
	hide     bool
	balances map[string]Balance
	calls    int
	lastKeys []string
}

func (r *stubRepo) ShowBalanceInChart(context.Context) (bool, error) {
	return !r.hide, nil
}

func (r *stubRepo) AccountBalances(_ context.Context, _ string, accounts []string, _ time.Time) ([]Balance, error) {
	r.calls++
	r.lastKeys = accounts
	var out []Balance
	for _, name := range accounts {
		if b, ok := r.balances[name]; ok {
			out = append(out, b)
		}
	}
	return out, nil
}

type stubCompanies struct{}

func (stubCompanies) Context(_ context.Context, name string) (companies.Context, error) {
	return companies.Context{Company: name, Abbr: "AC", DefaultCurrency: "AED"}, nil
}

type recorder map[string]int

func (r recorder) ObserveBalanceLookup(result string) { r[result]++ }

func newRepo() *stubRepo {
	return &stubRepo{balances: map[string]Balance{
		"1100 - Cash - AC": {
			Account: "1100 - Cash - AC", AccountCurrency: "AED", CompanyCurrency: "AED",
			Balance: decimal.RequireFromString("1234.5"),
		},
		"1200 - Bank - AC": {
			Account: "1200 - Bank - AC", AccountCurrency: "USD", CompanyCurrency: "AED",
			Balance:                  decimal.RequireFromString("-500"),
			BalanceInAccountCurrency: decimal.RequireFromString("-136.15"),
		},
	}}
}

func newCache(t *testing.T) *cache.Versioned {
	t.Helper()
	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return cache.NewVersioned(client, "balances", time.Minute)
}

func treeNodes() []accounts.Node {
	return []accounts.Node{
		{Value: "Acme", IsRoot: true, Expandable: true},
		{Value: "01 - Dubai", Expandable: true, HideAdd: true},
		{Value: "1100 - Cash", IsLedger: true, Expandable: true},
		{Value: "1200 - Bank - AC", IsLedger: true},
	}
}

func TestAnnotateFormatsLabels(t *testing.T) {
	repo := newRepo()
	svc := NewService(repo, stubCompanies{}, nil)

	got, err := svc.Annotate(context.Background(), AnnotateInput{Company: "Acme", Nodes: treeNodes(), CanReadGL: true})
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, "1100 - Cash", got[0].Node)
	assert.Equal(t, "AED 1,234.50 Dr", got[0].Label)
	assert.Equal(t, "Dr", got[0].DrCr)

	assert.Equal(t, "1200 - Bank - AC", got[1].Node)
	assert.Equal(t, "USD 136.15 / AED 500.00 Cr", got[1].Label)
	assert.True(t, got[1].Balance.Equal(decimal.RequireFromString("-136.15")))

	assert.Equal(t, []string{"1100 - Cash - AC", "1200 - Bank - AC"}, repo.lastKeys)
}

func TestAnnotateNoOps(t *testing.T) {
	cases := []struct {
		name string
		in   AnnotateInput
		hide bool
	}{
		{name: "no gl permission", in: AnnotateInput{Company: "Acme", Nodes: treeNodes()}},
		{name: "no company", in: AnnotateInput{Nodes: treeNodes(), CanReadGL: true}},
		{name: "no ledger nodes", in: AnnotateInput{Company: "Acme", Nodes: treeNodes()[:2], CanReadGL: true}},
		{name: "hidden in settings", in: AnnotateInput{Company: "Acme", Nodes: treeNodes(), CanReadGL: true}, hide: true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := newRepo()
			repo.hide = tc.hide
			got, err := NewService(repo, stubCompanies{}, nil).Annotate(context.Background(), tc.in)
			require.NoError(t, err)
			assert.Empty(t, got)
			assert.Zero(t, repo.calls)
		})
	}
}

func TestAnnotateSkipsRootAndMissing(t *testing.T) {
	repo := newRepo()
	nodes := []accounts.Node{
		{Value: "1100 - Cash - AC", IsLedger: true, IsRoot: true},
		{Value: "9999 - Ghost", IsLedger: true},
	}
	got, err := NewService(repo, stubCompanies{}, nil).Annotate(context.Background(), AnnotateInput{Company: "Acme", Nodes: nodes, CanReadGL: true})
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.Equal(t, 1, repo.calls)
}

func TestAnnotateDeepCollectsChildren(t *testing.T) {
	repo := newRepo()
	nodes := []accounts.Node{{
		Value: "Acme", IsRoot: true, Expandable: true,
		Children: []accounts.Node{{
			Value: "1000 - Assets - AC", IsLedger: true, Expandable: true,
			Children: []accounts.Node{{Value: "1100 - Cash", IsLedger: true}},
		}},
	}}
	svc := NewService(repo, stubCompanies{}, nil)

	shallow, err := svc.Annotate(context.Background(), AnnotateInput{Company: "Acme", Nodes: nodes, CanReadGL: true})
	require.NoError(t, err)
	assert.Empty(t, shallow)

	deep, err := svc.Annotate(context.Background(), AnnotateInput{Company: "Acme", Nodes: nodes, Deep: true, CanReadGL: true})
	require.NoError(t, err)
	require.Len(t, deep, 1)
	assert.Equal(t, "1100 - Cash", deep[0].Node)
}

func TestAnnotateUsesCache(t *testing.T) {
	ctx := context.Background()
	repo := newRepo()
	rec := recorder{}
	svc := NewService(repo, stubCompanies{}, newCache(t))
	svc.WithRecorder(rec)
	svc.WithNow(func() time.Time { return time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC) })
	in := AnnotateInput{Company: "Acme", Nodes: treeNodes(), CanReadGL: true}

	first, err := svc.Annotate(ctx, in)
	require.NoError(t, err)
	second, err := svc.Annotate(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, first[1].Label, second[1].Label)
	assert.Equal(t, 1, repo.calls)
	assert.Equal(t, 1, rec["miss"])
	assert.Equal(t, 1, rec["hit"])

	require.NoError(t, svc.Invalidate(ctx))
	_, err = svc.Annotate(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, 2, repo.calls)
}
