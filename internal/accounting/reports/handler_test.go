package reports

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubPDF struct {
	html string
	err  error
}

func (p *stubPDF) RenderHTML(_ context.Context, html string) ([]byte, error) {
	p.html = html
	if p.err != nil {
		return nil, p.err
	}
	return []byte("%PDF-1.7"), nil
}

func newTestRouter(repo *stubRepo, pdf PDFRenderer) http.Handler {
	h := NewHandler(slog.New(slog.NewTextHandler(io.Discard, nil)), newService(repo, nil), pdf)
	r := chi.NewRouter()
	h.MountRoutes(r)
	return r
}

func serve(router http.Handler, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

const janQuery = "?company=Acme&from_date=2026-01-01&to_date=2026-01-31"

func TestHandlerRun(t *testing.T) {
	repo := &stubRepo{entries: map[string][]EntrySum{"2026-01-01": {cash("1000", "200")}}}
	rec := serve(newTestRouter(repo, nil), "/"+janQuery)
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Columns []Column `json:"columns"`
		Data    []Row    `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Len(t, body.Columns, 5)
	require.Len(t, body.Data, 4)
	assert.Equal(t, "Jan 2026", body.Data[0].Name)
	assert.Equal(t, "Grand Total", body.Data[3].Name)
}

func TestHandlerRunValidation(t *testing.T) {
	rec := serve(newTestRouter(&stubRepo{}, nil), "/?from_date=2026-01-01&to_date=2026-01-31")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Company is required")

	rec = serve(newTestRouter(&stubRepo{}, nil), "/?company=Acme&from_date=2026-02-01&to_date=2026-01-31")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "From Date cannot be greater than To Date")
}

func TestHandlerSettingsWithoutSession(t *testing.T) {
	rec := serve(newTestRouter(&stubRepo{}, nil), "/settings")
	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Filters []struct {
			Fieldname string `json:"fieldname"`
			Default   any    `json:"default"`
		} `json:"filters"`
		Tree bool `json:"tree"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Tree)
	require.NotEmpty(t, body.Filters)
	assert.Equal(t, "company", body.Filters[0].Fieldname)
	assert.Equal(t, "currency", body.Filters[1].Fieldname)
	assert.Equal(t, "AED", body.Filters[1].Default)
}

func TestHandlerOptions(t *testing.T) {
	repo := &stubRepo{links: []string{"1100 - Cash - AC"}}
	rec := serve(newTestRouter(repo, nil), "/options?field=account&company=Acme&search=Cash")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"options":["1100 - Cash - AC"]}`, rec.Body.String())
	assert.Equal(t, "Account", repo.linkType)
	assert.Equal(t, "Acme", repo.linkQuery.Filters["company"])

	rec = serve(newTestRouter(repo, nil), "/options?field=factor")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandlerExportCSV(t *testing.T) {
	repo := &stubRepo{entries: map[string][]EntrySum{"2026-01-01": {cash("1000", "200")}}}
	rec := serve(newTestRouter(repo, nil), "/export.csv"+janQuery)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/csv; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "account-inquiry.csv")
	assert.Contains(t, rec.Body.String(), "\"  1100 - Cash - AC\",Main - AC,1000.00,200.00,800.00\n")
}

func TestHandlerExportPDF(t *testing.T) {
	pdf := &stubPDF{}
	rec := serve(newTestRouter(&stubRepo{}, pdf), "/pdf"+janQuery)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.Equal(t, "%PDF-1.7", rec.Body.String())
	assert.Contains(t, pdf.html, "Account Inquiry")

	rec = serve(newTestRouter(&stubRepo{}, &stubPDF{err: errors.New("down")}), "/pdf"+janQuery)
	assert.Equal(t, http.StatusBadGateway, rec.Code)

	rec = serve(newTestRouter(&stubRepo{}, nil), "/pdf"+janQuery)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
