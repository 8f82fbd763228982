package shared

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/odyssey-erp/custom-accounting/internal/platform/db"
)

// Audit actions written by tree operations.
const (
	AuditAccountCreate    = "account.create"
	AuditCostCenterCreate = "cost_center.create"
)

// ErrAuditIncomplete rejects entries missing action, entity or entity ID.
var ErrAuditIncomplete = errors.New("audit: action, entity and entity_id are required")

// AuditLog is one row of audit_logs. Entity is the doctype in snake case,
// EntityID the record name.
type AuditLog struct {
	ActorID  int64
	Company  string
	Action   string
	Entity   string
	EntityID string
	Meta     map[string]any
	At       time.Time
}

// AuditLogger writes records into audit_logs, usually inside the
// transaction that made the change.
type AuditLogger struct {
	db db.Querier
}

// NewAuditLogger returns a new AuditLogger.
func NewAuditLogger(q db.Querier) *AuditLogger {
	return &AuditLogger{db: q}
}

const insertAuditSQL = `INSERT INTO audit_logs (actor_id, company, action, entity, entity_id, meta, occurred_at)
VALUES (NULLIF($1, 0), NULLIF($2, ''), $3, $4, $5, $6, COALESCE($7, NOW()))`

// Record persists the log entry. A zero At lets the database stamp it.
func (l *AuditLogger) Record(ctx context.Context, log AuditLog) error {
	if log.Action == "" || log.Entity == "" || log.EntityID == "" {
		return ErrAuditIncomplete
	}
	var meta []byte
	if len(log.Meta) > 0 {
		var err error
		if meta, err = json.Marshal(log.Meta); err != nil {
			return fmt.Errorf("audit: encode meta: %w", err)
		}
	}
	var at *time.Time
	if !log.At.IsZero() {
		at = &log.At
	}
	if _, err := l.db.Exec(ctx, insertAuditSQL, log.ActorID, log.Company, log.Action, log.Entity, log.EntityID, meta, at); err != nil {
		return fmt.Errorf("audit: record %s %s: %w", log.Action, log.EntityID, err)
	}
	return nil
}
