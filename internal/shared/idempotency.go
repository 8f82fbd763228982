package shared

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/odyssey-erp/custom-accounting/internal/platform/db"
)

// IdempotencyHeader carries the client supplied key for create requests.
const IdempotencyHeader = "Idempotency-Key"

// MaxIdempotencyKeyLen bounds client keys; UUIDs and ULIDs fit easily.
const MaxIdempotencyKeyLen = 128

var (
	// ErrIdempotencyConflict indicates the key was already claimed in scope.
	ErrIdempotencyConflict = errors.New("idempotent request already processed")
	// ErrIdempotencyKeyInvalid rejects empty, oversized or non-printable keys.
	ErrIdempotencyKeyInvalid = errors.New("idempotency key invalid")
)

// IdempotencyStore records claimed request keys in idempotency_keys. Claims
// made inside a transaction roll back with it, so a failed create can be
// retried under the same key.
type IdempotencyStore struct {
	db db.Querier
}

// NewIdempotencyStore constructs the store.
func NewIdempotencyStore(q db.Querier) *IdempotencyStore {
	return &IdempotencyStore{db: q}
}

const claimIdempotencySQL = `INSERT INTO idempotency_keys (key, module, created_at)
VALUES ($1, $2, NOW())
ON CONFLICT (key, module) DO NOTHING`

// Claim records key for scope, e.g. "account". A key seen before yields
// ErrIdempotencyConflict.
func (s *IdempotencyStore) Claim(ctx context.Context, scope, key string) error {
	if err := ValidateIdempotencyKey(key); err != nil {
		return err
	}
	if scope == "" {
		return fmt.Errorf("%w: scope required", ErrIdempotencyKeyInvalid)
	}
	tag, err := s.db.Exec(ctx, claimIdempotencySQL, key, scope)
	if err != nil {
		if db.IsUniqueViolation(err) {
			return ErrIdempotencyConflict
		}
		return fmt.Errorf("idempotency: claim: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrIdempotencyConflict
	}
	return nil
}

// Cleanup removes keys older than olderThan and reports how many went.
func (s *IdempotencyStore) Cleanup(ctx context.Context, olderThan time.Duration) (int64, error) {
	tag, err := s.db.Exec(ctx, `DELETE FROM idempotency_keys WHERE created_at < $1`, time.Now().Add(-olderThan))
	if err != nil {
		return 0, fmt.Errorf("idempotency: cleanup: %w", err)
	}
	return tag.RowsAffected(), nil
}

// ValidateIdempotencyKey checks a client supplied key.
func ValidateIdempotencyKey(key string) error {
	if key == "" || len(key) > MaxIdempotencyKeyLen {
		return ErrIdempotencyKeyInvalid
	}
	if strings.IndexFunc(key, func(r rune) bool { return r < 0x21 || r > 0x7e }) >= 0 {
		return ErrIdempotencyKeyInvalid
	}
	return nil
}
