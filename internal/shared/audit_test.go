package shared

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type execRecorder struct {
	sql  string
	args []any
}

func (e *execRecorder) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	e.sql, e.args = sql, args
	return pgconn.NewCommandTag("INSERT 0 1"), nil
}

func (e *execRecorder) Query(context.Context, string, ...any) (pgx.Rows, error) { return nil, nil }
func (e *execRecorder) QueryRow(context.Context, string, ...any) pgx.Row        { return nil }

func TestAuditRecord(t *testing.T) {
	rec := &execRecorder{}
	err := NewAuditLogger(rec).Record(context.Background(), AuditLog{
		ActorID: 3, Company: "Acme", Action: AuditAccountCreate, Entity: "account", EntityID: "1000 - Cash - AC",
		Meta: map[string]any{"parent_account": "Assets - AC"},
	})
	require.NoError(t, err)
	assert.Contains(t, rec.sql, "INSERT INTO audit_logs")
	require.Len(t, rec.args, 7)
	assert.Equal(t, "Acme", rec.args[1])
	assert.JSONEq(t, `{"parent_account":"Assets - AC"}`, string(rec.args[5].([]byte)))
	assert.Nil(t, rec.args[6])
}

func TestAuditRecordRequiresIdentity(t *testing.T) {
	rec := &execRecorder{}
	err := NewAuditLogger(rec).Record(context.Background(), AuditLog{Action: AuditCostCenterCreate, Entity: "cost_center"})
	assert.ErrorIs(t, err, ErrAuditIncomplete)
	assert.Empty(t, rec.sql)
}
