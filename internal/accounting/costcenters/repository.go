package costcenters

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/odyssey-erp/custom-accounting/internal/accounting/shared"
	"github.com/odyssey-erp/custom-accounting/internal/platform/db"
	internalShared "github.com/odyssey-erp/custom-accounting/internal/shared"
)

// ErrNotFound indicates a missing cost center.
var ErrNotFound = errors.New("costcenters: not found")

// Repository reads and writes cost centers.
type Repository interface {
	ListByCompany(ctx context.Context, company string) ([]CostCenter, error)
	Get(ctx context.Context, name string) (CostCenter, error)
	LocationExists(ctx context.Context, name string) (bool, error)
	Create(ctx context.Context, cc CostCenter) error
}

// TxRepository is the repository view available inside a transaction.
type TxRepository interface {
	Repository
	RecordAudit(ctx context.Context, log internalShared.AuditLog) error
}

// Store abstracts transactional repository behaviour.
type Store interface {
	Repository
	WithTx(ctx context.Context, fn func(context.Context, TxRepository) error) error
}

type repository struct {
	db db.Querier
}

// NewRepository returns a pgx backed Repository.
func NewRepository(q db.Querier) Repository {
	return &repository{db: q}
}

const costCenterColumns = `name, cost_center_name, COALESCE(cost_center_number, ''), company,
	COALESCE(parent_cost_center, ''), is_group, COALESCE(custom_location, '')`

func scanCostCenter(row pgx.Row) (CostCenter, error) {
	var cc CostCenter
	err := row.Scan(&cc.Name, &cc.CostCenterName, &cc.CostCenterNumber, &cc.Company,
		&cc.ParentCostCenter, &cc.IsGroup, &cc.Location)
	return cc, err
}

func (r *repository) ListByCompany(ctx context.Context, company string) ([]CostCenter, error) {
	rows, err := r.db.Query(ctx, `SELECT `+costCenterColumns+` FROM cost_centers WHERE company = $1 ORDER BY name`, company)
	if err != nil {
		return nil, fmt.Errorf("costcenters: list: %w", err)
	}
	defer rows.Close()
	var out []CostCenter
	for rows.Next() {
		cc, err := scanCostCenter(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, cc)
	}
	return out, rows.Err()
}

func (r *repository) Get(ctx context.Context, name string) (CostCenter, error) {
	cc, err := scanCostCenter(r.db.QueryRow(ctx, `SELECT `+costCenterColumns+` FROM cost_centers WHERE name = $1`, name))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return CostCenter{}, ErrNotFound
		}
		return CostCenter{}, fmt.Errorf("costcenters: get: %w", err)
	}
	return cc, nil
}

func (r *repository) LocationExists(ctx context.Context, name string) (bool, error) {
	var ok bool
	if err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM locations WHERE name = $1)`, name).Scan(&ok); err != nil {
		return false, fmt.Errorf("costcenters: location exists: %w", err)
	}
	return ok, nil
}

func (r *repository) Create(ctx context.Context, cc CostCenter) error {
	_, err := r.db.Exec(ctx, `INSERT INTO cost_centers (name, cost_center_name, cost_center_number, company,
	parent_cost_center, is_group, custom_location)
VALUES ($1, $2, NULLIF($3, ''), $4, NULLIF($5, ''), $6, NULLIF($7, ''))`,
		cc.Name, cc.CostCenterName, cc.CostCenterNumber, cc.Company, cc.ParentCostCenter, cc.IsGroup, cc.Location)
	if err != nil {
		if db.IsUniqueViolation(err) {
			return shared.ErrDuplicate
		}
		return fmt.Errorf("costcenters: create: %w", err)
	}
	return nil
}

type pgStore struct {
	Repository
	pool db.TxBeginner
}

// NewStore returns a Store running transactions on pool.
func NewStore(pool interface {
	db.Querier
	db.TxBeginner
}) Store {
	return &pgStore{Repository: NewRepository(pool), pool: pool}
}

func (s *pgStore) WithTx(ctx context.Context, fn func(context.Context, TxRepository) error) error {
	return db.WithTx(ctx, s.pool, func(tx pgx.Tx) error {
		return fn(ctx, &txRepository{Repository: NewRepository(tx), audit: internalShared.NewAuditLogger(tx)})
	})
}

type txRepository struct {
	Repository
	audit *internalShared.AuditLogger
}

func (t *txRepository) RecordAudit(ctx context.Context, log internalShared.AuditLog) error {
	return t.audit.Record(ctx, log)
}
