package app

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/odyssey-erp/custom-accounting/internal/shared"
)

func newStack(t *testing.T) (http.Handler, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	csrf := shared.NewCSRFManager("csrf-secret")

	r := chi.NewRouter()
	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger:         logger,
		Config:         &Config{RateLimitPerMinute: 1000, AppRequestTimeout: time.Second},
		SessionManager: shared.NewSessionManager(client, "sid", time.Hour, false),
		CSRFManager:    csrf,
	}) {
		r.Use(mw)
	}
	r.Get("/csrf", func(w http.ResponseWriter, r *http.Request) {
		token, err := csrf.EnsureToken(r.Context(), shared.SessionFromContext(r.Context()))
		require.NoError(t, err)
		_, _ = io.WriteString(w, token)
	})
	r.Get("/silent", func(http.ResponseWriter, *http.Request) {})
	r.Post("/write", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusNoContent) })
	return r, mr
}

func fetchToken(t *testing.T, h http.Handler) (string, *http.Cookie) {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/csrf", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	return rec.Body.String(), cookies[0]
}

func TestCSRFMiddlewareHeaderToken(t *testing.T) {
	h, _ := newStack(t)
	token, cookie := fetchToken(t, h)

	req := httptest.NewRequest(http.MethodPost, "/write", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	req.AddCookie(cookie)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "application/problem+json", rec.Header().Get("Content-Type"))

	req = httptest.NewRequest(http.MethodPost, "/write", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(shared.CSRFHeader, token)
	req.AddCookie(cookie)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestCSRFMiddlewareFormField(t *testing.T) {
	h, _ := newStack(t)
	token, cookie := fetchToken(t, h)

	form := url.Values{shared.CSRFFormField: {token}}
	req := httptest.NewRequest(http.MethodPost, "/write", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.AddCookie(cookie)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestCSRFTokenFromOtherSessionRejected(t *testing.T) {
	h, _ := newStack(t)
	token, _ := fetchToken(t, h)
	_, otherCookie := fetchToken(t, h)

	req := httptest.NewRequest(http.MethodPost, "/write", nil)
	req.Header.Set(shared.CSRFHeader, token)
	req.AddCookie(otherCookie)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestSessionCommittedWhenHandlerWritesNothing(t *testing.T) {
	h, mr := newStack(t)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/silent", nil))
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.True(t, mr.Exists("session:"+cookies[0].Value))
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
}
