package jobs

import (
	"context"
	"errors"
	"log/slog"

	"github.com/hibiken/asynq"
)

// BalanceCache drops cached account balances.
type BalanceCache interface {
	Invalidate(ctx context.Context) error
}

// BalancesRefreshJob bumps the balance cache version so the chart of
// accounts reads fresh GL totals on its next expansion.
type BalancesRefreshJob struct {
	Cache   BalanceCache
	Logger  *slog.Logger
	Metrics Recorder
}

// NewBalancesRefreshJob constructs the job handler.
func NewBalancesRefreshJob(cache BalanceCache, logger *slog.Logger, metrics Recorder) *BalancesRefreshJob {
	return &BalancesRefreshJob{Cache: cache, Logger: logger, Metrics: metrics}
}

// Handle executes the balance refresh.
func (j *BalancesRefreshJob) Handle(ctx context.Context, task *asynq.Task) error {
	if j == nil || j.Cache == nil {
		return errors.New("balances refresh: cache not configured")
	}
	var payload BalancesRefreshPayload
	if err := decode(task, &payload); err != nil {
		return err
	}
	err := j.Cache.Invalidate(ctx)
	observe(j.Metrics, TaskBalancesRefresh, err)
	if err != nil {
		j.log().Error("refresh balances", slog.String("company", payload.Company), slog.Any("error", err))
		return err
	}
	j.log().Info("balances refreshed",
		slog.String("job", TaskBalancesRefresh),
		slog.String("company", payload.Company),
		slog.String("reason", payload.Reason))
	return nil
}

func (j *BalancesRefreshJob) log() *slog.Logger {
	if j.Logger != nil {
		return j.Logger
	}
	return slog.Default()
}
