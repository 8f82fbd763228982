package reports

import (
	"bytes"
	"context"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"

	"github.com/odyssey-erp/custom-accounting/internal/accounting/shared"
	"github.com/odyssey-erp/custom-accounting/internal/platform/httpx"
	internalShared "github.com/odyssey-erp/custom-accounting/internal/shared"
	"github.com/odyssey-erp/custom-accounting/internal/uischema"
)

// PDFRenderer converts HTML documents to PDF.
type PDFRenderer interface {
	RenderHTML(ctx context.Context, html string) ([]byte, error)
}

// Handler serves the Account Inquiry report.
type Handler struct {
	logger    *slog.Logger
	service   *Service
	pdf       PDFRenderer
	rateLimit func(http.Handler) http.Handler
}

// NewHandler builds a report handler. Exports are rate limited per user,
// falling back to the client IP for anonymous requests.
func NewHandler(logger *slog.Logger, service *Service, pdf PDFRenderer) *Handler {
	limiter := httprate.Limit(10, time.Minute, httprate.WithKeyFuncs(func(r *http.Request) (string, error) {
		if id, ok := internalShared.CurrentUserID(r.Context()); ok {
			return "user:" + strconv.FormatInt(id, 10), nil
		}
		host, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			return "ip:" + r.RemoteAddr, nil
		}
		return "ip:" + host, nil
	}))
	return &Handler{logger: logger, service: service, pdf: pdf, rateLimit: limiter}
}

// MountRoutes registers the report endpoints.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/settings", h.settings)
	r.Get("/", h.run)
	r.Get("/options", h.options)
	r.Group(func(r chi.Router) {
		r.Use(h.rateLimit)
		r.Get("/export.csv", h.exportCSV)
		r.Get("/pdf", h.exportPDF)
	})
}

func (h *Handler) settings(w http.ResponseWriter, r *http.Request) {
	d := internalShared.SessionFromContext(r.Context()).Defaults()
	httpx.JSON(w, http.StatusOK, h.service.Settings(Defaults{Company: d.Company, Currency: d.Currency}))
}

func (h *Handler) run(w http.ResponseWriter, r *http.Request) {
	res, ok := h.result(w, r)
	if !ok {
		return
	}
	httpx.JSON(w, http.StatusOK, res)
}

// options lists the records a Link filter offers. The remaining query
// parameters are the current filter values.
func (h *Handler) options(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	field := q.Get("field")
	search := q.Get("search")
	values := uischema.Values{}
	for key := range q {
		if key == "field" || key == "search" {
			continue
		}
		values[key] = q.Get(key)
	}
	options, err := h.service.LinkOptions(r.Context(), field, values, search)
	if err != nil {
		shared.RespondError(w, h.logger, "account inquiry options", err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"options": options})
}

func (h *Handler) exportCSV(w http.ResponseWriter, r *http.Request) {
	res, ok := h.result(w, r)
	if !ok {
		return
	}
	var buf bytes.Buffer
	if err := WriteCSV(&buf, res); err != nil {
		h.logger.Error("write account inquiry csv", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="account-inquiry.csv"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

func (h *Handler) exportPDF(w http.ResponseWriter, r *http.Request) {
	if h.pdf == nil {
		httpx.Problem(w, http.StatusServiceUnavailable, "PDF Unavailable", "PDF rendering is not configured")
		return
	}
	res, ok := h.result(w, r)
	if !ok {
		return
	}
	html, err := RenderHTML(res)
	if err != nil {
		h.logger.Error("render account inquiry html", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	pdf, err := h.pdf.RenderHTML(r.Context(), html)
	if err != nil {
		h.logger.Error("render account inquiry pdf", slog.Any("error", err))
		httpx.Problem(w, http.StatusBadGateway, "PDF Render Failed", "The PDF service did not respond")
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `inline; filename="account-inquiry.pdf"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(pdf)
}

func (h *Handler) result(w http.ResponseWriter, r *http.Request) (Result, bool) {
	f, err := ParseFilters(r.URL.Query())
	if err != nil {
		shared.RespondError(w, h.logger, "parse account inquiry filters", err)
		return Result{}, false
	}
	res, err := h.service.Run(r.Context(), f)
	if err != nil {
		shared.RespondError(w, h.logger, "run account inquiry", err)
		return Result{}, false
	}
	return res, true
}
