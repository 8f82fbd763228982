package accounts

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/odyssey-erp/custom-accounting/internal/platform/db"
	internalShared "github.com/odyssey-erp/custom-accounting/internal/shared"
)

// TxRepository is the repository view available inside a transaction.
type TxRepository interface {
	Repository
	RecordAudit(ctx context.Context, log internalShared.AuditLog) error
	ClaimIdempotencyKey(ctx context.Context, key string) error
}

// Store abstracts transactional repository behaviour.
type Store interface {
	Repository
	WithTx(ctx context.Context, fn func(context.Context, TxRepository) error) error
}

const idempotencyModule = "accounts.add_tree_node"

type pgStore struct {
	Repository
	pool db.TxBeginner
}

// NewStore returns a Store running transactions on pool. pool must also
// satisfy db.Querier for non transactional reads.
func NewStore(pool interface {
	db.Querier
	db.TxBeginner
}) Store {
	return &pgStore{Repository: NewRepository(pool), pool: pool}
}

func (s *pgStore) WithTx(ctx context.Context, fn func(context.Context, TxRepository) error) error {
	return db.WithTx(ctx, s.pool, func(tx pgx.Tx) error {
		return fn(ctx, &txRepository{
			Repository:  NewRepository(tx),
			audit:       internalShared.NewAuditLogger(tx),
			idempotency: internalShared.NewIdempotencyStore(tx),
		})
	})
}

type txRepository struct {
	Repository
	audit       *internalShared.AuditLogger
	idempotency *internalShared.IdempotencyStore
}

func (t *txRepository) RecordAudit(ctx context.Context, log internalShared.AuditLog) error {
	return t.audit.Record(ctx, log)
}

func (t *txRepository) ClaimIdempotencyKey(ctx context.Context, key string) error {
	return t.idempotency.Claim(ctx, idempotencyModule, key)
}
