package jobs

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"
)

const (
	// QueueDefault carries user facing work such as balance refreshes.
	QueueDefault = "default"
	// QueueMaintenance carries housekeeping that may lag behind.
	QueueMaintenance = "maintenance"
	// TaskBalancesRefresh invalidates cached chart of accounts balances.
	TaskBalancesRefresh = "balances:refresh"
	// TaskIdempotencyCleanup prunes expired idempotency keys.
	TaskIdempotencyCleanup = "idempotency:cleanup"
	// TaskGLIntegrity reports vouchers whose debits and credits disagree.
	TaskGLIntegrity = "gl:integrity"
)

// Recorder observes job outcomes.
type Recorder interface {
	ObserveJob(task string, err error)
}

// BalancesRefreshPayload describes why balances are refreshed.
type BalancesRefreshPayload struct {
	Company string `json:"company,omitempty"`
	Reason  string `json:"reason,omitempty"`
}

// NewBalancesRefreshTask constructs a balance refresh task.
func NewBalancesRefreshTask(payload BalancesRefreshPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskBalancesRefresh, data, asynq.Queue(QueueDefault)), nil
}

// IdempotencyCleanupPayload configures the retention of idempotency keys.
type IdempotencyCleanupPayload struct {
	RetentionHours int `json:"retention_hours"`
}

// NewIdempotencyCleanupTask constructs a cleanup task keeping keys newer than retention.
func NewIdempotencyCleanupTask(retention time.Duration) (*asynq.Task, error) {
	data, err := json.Marshal(IdempotencyCleanupPayload{RetentionHours: int(retention / time.Hour)})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskIdempotencyCleanup, data, asynq.Queue(QueueMaintenance)), nil
}

// GLIntegrityPayload limits the integrity check to recent postings.
type GLIntegrityPayload struct {
	LookbackDays int `json:"lookback_days"`
}

// NewGLIntegrityTask constructs a GL integrity task.
func NewGLIntegrityTask(lookbackDays int) (*asynq.Task, error) {
	data, err := json.Marshal(GLIntegrityPayload{LookbackDays: lookbackDays})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskGLIntegrity, data, asynq.Queue(QueueMaintenance)), nil
}

func observe(r Recorder, task string, err error) {
	if r != nil {
		r.ObserveJob(task, err)
	}
}

func decode(t *asynq.Task, dest any) error {
	if len(t.Payload()) == 0 {
		return nil
	}
	if err := json.Unmarshal(t.Payload(), dest); err != nil {
		return asynq.SkipRetry
	}
	return nil
}
