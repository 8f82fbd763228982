package accounts

import (
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

	"github.com/odyssey-erp/custom-accounting/internal/rbac"
	internalShared "github.com/odyssey-erp/custom-accounting/internal/shared"
)

type staticPerms rbac.PermissionSet

func (p staticPerms) Permissions(*http.Request) (rbac.PermissionSet, error) {
	return rbac.PermissionSet(p), nil
}

func newTestRouter(perms ...string) (http.Handler, *memStore) {
	svc, store := newTestService()
	h := NewHandler(slog.New(slog.NewTextHandler(io.Discard, nil)), svc, staticPerms(rbac.NewPermissionSet(perms...)))
	r := chi.NewRouter()
	h.MountRoutes(r)
	return r, store
}

func TestHandlerNodesDecoratesActions(t *testing.T) {
	router, _ := newTestRouter(internalShared.PermAccountCreate, internalShared.PermGLEntryView)
	req := httptest.NewRequest(http.MethodGet, "/nodes?company=Acme&parent=1000+-+Assets+-+AC", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Nodes []Node `json:"nodes"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Nodes, 2)
	assert.Equal(t, []string{ActionAddChild, ActionViewLedger}, body.Nodes[0].Actions)
}

func TestHandlerNodesRequiresCompany(t *testing.T) {
	router, _ := newTestRouter()
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nodes", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Company is required")
}

func TestHandlerAddNode(t *testing.T) {
	router, store := newTestRouter(internalShared.PermAccountCreate)
	payload := `{"company":"Acme","parent_account":"1000 - Assets - AC","account_name":"Petty Cash","account_number":"1110"}`
	req := httptest.NewRequest(http.MethodPost, "/nodes", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(internalShared.IdempotencyHeader, "abc")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	_, ok := store.accounts["1110 - Petty Cash - AC"]
	assert.True(t, ok)

	req = httptest.NewRequest(http.MethodPost, "/nodes", strings.NewReader(payload))
	req.Header.Set(internalShared.IdempotencyHeader, "abc")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestHandlerAddNodeForbidden(t *testing.T) {
	router, _ := newTestRouter(internalShared.PermAccountView)
	req := httptest.NewRequest(http.MethodPost, "/nodes", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestHandlerLedger(t *testing.T) {
	router, _ := newTestRouter(internalShared.PermGLEntryView)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ledger?company=Acme&value=1100+-+Cash", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var route Route
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &route))
	assert.Equal(t, "1100 - Cash - AC", route.Options["account"])

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ledger?company=Acme&value=Ghost", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Account not found")
}
