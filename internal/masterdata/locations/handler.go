package locations

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/odyssey-erp/custom-accounting/internal/masterdata/shared"
	"github.com/odyssey-erp/custom-accounting/internal/platform/httpx"
)

type Handler struct {
	logger  *slog.Logger
	service *Service
}

func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service}
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit, _ := strconv.Atoi(q.Get("limit"))
	locs, err := h.service.List(r.Context(), shared.ListFilters{
		Company: q.Get("company"),
		Search:  q.Get("search"),
		Limit:   limit,
	})
	if err != nil {
		h.logger.Error("list locations failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	if locs == nil {
		locs = []Location{}
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"locations": locs})
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var form LocationForm
	if err := httpx.DecodeJSON(r, &form); err != nil {
		httpx.RespondError(w, err)
		return
	}
	loc, err := h.service.Create(r.Context(), form)
	switch {
	case err == nil:
		httpx.JSON(w, http.StatusCreated, loc)
	case errors.Is(err, shared.ErrDuplicate):
		httpx.Problem(w, http.StatusConflict, "Duplicate", "Location already exists")
	case errors.Is(err, shared.ErrNotFound):
		httpx.Problem(w, http.StatusNotFound, "Not Found", "Company not found")
	case errors.Is(err, httpx.ErrValidation):
		httpx.RespondError(w, err)
	default:
		h.logger.Error("create location failed", slog.Any("error", err))
		httpx.RespondError(w, err)
	}
}
