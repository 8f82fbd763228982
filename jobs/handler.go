package jobs

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/hibiken/asynq"

	"github.com/odyssey-erp/custom-accounting/internal/platform/httpx"
)

// QueueInspector reports queue depth.
type QueueInspector interface {
	GetQueueInfo(queue string) (*asynq.QueueInfo, error)
}

// QueueStatus is the health view of one queue.
type QueueStatus struct {
	Queue   string `json:"queue"`
	Pending int    `json:"pending"`
	Active  int    `json:"active"`
	Retry   int    `json:"retry"`
	Failed  int    `json:"failed_today"`
}

// Handler exposes queue health and the manual balance refresh.
type Handler struct {
	inspector QueueInspector
	enqueuer  Enqueuer
	logger    *slog.Logger
}

// NewHandler constructs an HTTP handler for jobs endpoints.
func NewHandler(inspector QueueInspector, enqueuer Enqueuer, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{inspector: inspector, enqueuer: enqueuer, logger: logger}
}

// MountRoutes attaches job routes. refresh guards the enqueue endpoint.
func (h *Handler) MountRoutes(r chi.Router, refresh func(http.Handler) http.Handler) {
	r.Get("/health", h.health)
	if refresh == nil {
		refresh = func(next http.Handler) http.Handler { return next }
	}
	r.With(refresh).Post("/balances/refresh", h.refreshBalances)
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	queues := []string{QueueDefault, QueueMaintenance}
	out := make([]QueueStatus, 0, len(queues))
	for _, q := range queues {
		status := QueueStatus{Queue: q}
		if h.inspector != nil {
			info, err := h.inspector.GetQueueInfo(q)
			switch {
			case err != nil && strings.Contains(err.Error(), "does not exist"):
				// queue not created until its first task
			case err != nil:
				h.logger.Warn("jobs health", slog.String("queue", q), slog.Any("error", err))
				httpx.Problem(w, http.StatusServiceUnavailable, "Queue Unavailable", "Queue status could not be read")
				return
			case info != nil:
				status.Pending, status.Active, status.Retry, status.Failed = info.Pending, info.Active, info.Retry, info.Failed
			}
		}
		out = append(out, status)
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"queues": out})
}

func (h *Handler) refreshBalances(w http.ResponseWriter, r *http.Request) {
	if h.enqueuer == nil {
		httpx.Problem(w, http.StatusServiceUnavailable, "Queue Unavailable", "Background jobs are not configured")
		return
	}
	payload := BalancesRefreshPayload{Company: strings.TrimSpace(r.URL.Query().Get("company")), Reason: "manual"}
	id, err := h.enqueuer.EnqueueBalancesRefresh(r.Context(), payload)
	if errors.Is(err, ErrRefreshPending) {
		httpx.Problem(w, http.StatusConflict, "Refresh Pending", "A balance refresh is already queued")
		return
	}
	if err != nil {
		h.logger.Error("enqueue balances refresh", slog.Any("error", err))
		httpx.Problem(w, http.StatusServiceUnavailable, "Queue Unavailable", "")
		return
	}
	h.logger.Info("balances refresh queued", slog.String("task_id", id), slog.String("company", payload.Company))
	httpx.JSON(w, http.StatusAccepted, map[string]string{"task_id": id})
}
