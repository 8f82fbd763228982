package costcenters

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/odyssey-erp/custom-accounting/internal/accounting/shared"
	"github.com/odyssey-erp/custom-accounting/internal/masterdata/companies"
	internalShared "github.com/odyssey-erp/custom-accounting/internal/shared"
)

type memStore struct {
	centers   []CostCenter
	locations map[string]bool
	audits    []internalShared.AuditLog
}

func (m *memStore) ListByCompany(_ context.Context, company string) ([]CostCenter, error) {
	var out []CostCenter
	for _, cc := range m.centers {
		if cc.Company == company {
			out = append(out, cc)
		}
	}
	return out, nil
}

func (m *memStore) Get(_ context.Context, name string) (CostCenter, error) {
	for _, cc := range m.centers {
		if cc.Name == name {
			return cc, nil
		}
	}
	return CostCenter{}, ErrNotFound
}

func (m *memStore) LocationExists(_ context.Context, name string) (bool, error) {
	return m.locations[name], nil
}

func (m *memStore) Create(_ context.Context, cc CostCenter) error {
	for _, existing := range m.centers {
		if existing.Name == cc.Name {
			return shared.ErrDuplicate
		}
	}
	m.centers = append(m.centers, cc)
	return nil
}

func (m *memStore) RecordAudit(_ context.Context, log internalShared.AuditLog) error {
	m.audits = append(m.audits, log)
	return nil
}

func (m *memStore) WithTx(ctx context.Context, fn func(context.Context, TxRepository) error) error {
	return fn(ctx, m)
}

type directory struct{}

func (directory) Context(_ context.Context, name string) (companies.Context, error) {
	return companies.Context{Company: name, Abbr: "AC", DefaultCurrency: "AED"}, nil
}

func newStore() *memStore {
	return &memStore{
		locations: map[string]bool{"Dubai": true, "Abu Dhabi": true, "Sharjah": true},
		centers: []CostCenter{
			{Name: "Acme - AC", CostCenterName: "Acme", Company: "Acme", IsGroup: true},
			{Name: "100 - Operations - AC", CostCenterName: "Operations", CostCenterNumber: "100", Company: "Acme", IsGroup: true, Location: "Dubai"},
			{Name: "101 - Retail - AC", CostCenterName: "Retail", CostCenterNumber: "101", Company: "Acme", ParentCostCenter: "100 - Operations - AC", Location: "Dubai"},
			{Name: "200 - Logistics - AC", CostCenterName: "Logistics", CostCenterNumber: "200", Company: "Acme", ParentCostCenter: "100 - Operations - AC", Location: "Abu Dhabi"},
			{Name: "300 - Other - OT", CostCenterName: "Other", CostCenterNumber: "300", Company: "Other", Location: "Sharjah"},
		},
	}
}

func nodeValues(nodes []Node) []string {
	out := make([]string, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, n.Value)
	}
	return out
}

func TestChildrenHierarchy(t *testing.T) {
	svc := NewService(newStore(), directory{})
	ctx := context.Background()

	roots, err := svc.Children(ctx, ChildrenQuery{Company: "Acme", IsRoot: true})
	require.NoError(t, err)
	assert.Equal(t, []string{"Abu Dhabi", "Dubai"}, nodeValues(roots))

	dubai, err := svc.Children(ctx, ChildrenQuery{Company: "Acme", Parent: "Dubai"})
	require.NoError(t, err)
	assert.Equal(t, []string{"100 - Operations - AC"}, nodeValues(dubai))
	assert.True(t, dubai[0].Expandable)

	abuDhabi, err := svc.Children(ctx, ChildrenQuery{Company: "Acme", Parent: "Abu Dhabi"})
	require.NoError(t, err)
	assert.Equal(t, []string{"200 - Logistics - AC"}, nodeValues(abuDhabi))

	children, err := svc.Children(ctx, ChildrenQuery{Company: "Acme", Parent: "100 - Operations - AC"})
	require.NoError(t, err)
	assert.Equal(t, []string{"101 - Retail - AC", "200 - Logistics - AC"}, nodeValues(children))
	assert.False(t, children[0].Expandable)

	none, err := svc.Children(ctx, ChildrenQuery{Company: "Acme", Parent: "Nowhere"})
	require.NoError(t, err)
	assert.Empty(t, none)

	_, err = svc.Children(ctx, ChildrenQuery{Parent: "Dubai"})
	assert.ErrorIs(t, err, shared.ErrCompanyRequired)
}

func TestAddCostCenter(t *testing.T) {
	ctx := context.Background()

	t.Run("under cost center inherits location", func(t *testing.T) {
		store := newStore()
		cc, err := NewService(store, directory{}).AddCostCenter(ctx, AddCostCenterInput{
			Company: "Acme", Parent: "100 - Operations - AC", CostCenterName: "Wholesale", CostCenterNumber: "102",
		})
		require.NoError(t, err)
		assert.Equal(t, "102 - Wholesale - AC", cc.Name)
		assert.Equal(t, "100 - Operations - AC", cc.ParentCostCenter)
		assert.Equal(t, "Dubai", cc.Location)
		require.Len(t, store.audits, 1)
		assert.Equal(t, "cost_center.create", store.audits[0].Action)
	})

	t.Run("under location is tagged", func(t *testing.T) {
		cc, err := NewService(newStore(), directory{}).AddCostCenter(ctx, AddCostCenterInput{
			Company: "Acme", Parent: "Sharjah", CostCenterName: "Showroom",
		})
		require.NoError(t, err)
		assert.Equal(t, "Showroom - AC", cc.Name)
		assert.Empty(t, cc.ParentCostCenter)
		assert.Equal(t, "Sharjah", cc.Location)
	})

	t.Run("rejections", func(t *testing.T) {
		svc := NewService(newStore(), directory{})
		_, err := svc.AddCostCenter(ctx, AddCostCenterInput{Company: "Acme", Parent: "Mars", CostCenterName: "X"})
		assert.ErrorIs(t, err, shared.ErrParentNotFound)

		_, err = svc.AddCostCenter(ctx, AddCostCenterInput{Company: "Acme", Parent: "101 - Retail - AC", CostCenterName: "X"})
		assert.ErrorIs(t, err, shared.ErrInvalidInput)

		_, err = svc.AddCostCenter(ctx, AddCostCenterInput{Company: "Acme", Parent: "300 - Other - OT", CostCenterName: "X"})
		assert.ErrorIs(t, err, shared.ErrInvalidInput)

		_, err = svc.AddCostCenter(ctx, AddCostCenterInput{Company: "Acme", CostCenterName: "Ledger"})
		assert.ErrorIs(t, err, shared.ErrInvalidInput)

		_, err = svc.AddCostCenter(ctx, AddCostCenterInput{Company: "Acme", Parent: "Dubai", CostCenterName: "Retail", CostCenterNumber: "101"})
		assert.ErrorIs(t, err, shared.ErrDuplicate)

		_, err = svc.AddCostCenter(ctx, AddCostCenterInput{CostCenterName: "X"})
		assert.ErrorIs(t, err, shared.ErrCompanyRequired)
	})
}

func TestHandlerNodesAndCreate(t *testing.T) {
	h := NewHandler(slog.New(slog.NewTextHandler(io.Discard, nil)), NewService(newStore(), directory{}))
	r := chi.NewRouter()
	h.MountRoutes(r, nil)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nodes?company=Acme&is_root=1", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Nodes []Node `json:"nodes"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, []string{"Abu Dhabi", "Dubai"}, nodeValues(body.Nodes))

	rec = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/nodes", strings.NewReader(`{"company":"Acme","parent_cost_center":"Dubai","cost_center_name":"Kiosk"}`))
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusCreated, rec.Code)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/settings?company=Acme", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Chart of Accounts")
}
