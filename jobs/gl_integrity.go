package jobs

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"
	"github.com/shopspring/decimal"

	"github.com/odyssey-erp/custom-accounting/internal/platform/db"
)

const (
	defaultLookbackDays = 31
	maxReportedVouchers = 50
)

// UnbalancedVoucher is a voucher whose GL entries do not net to zero.
type UnbalancedVoucher struct {
	Company   string
	VoucherNo string
	Debit     decimal.Decimal
	Credit    decimal.Decimal
}

// VoucherSource lists unbalanced vouchers posted on or after since.
type VoucherSource interface {
	UnbalancedVouchers(ctx context.Context, since time.Time, limit int) ([]UnbalancedVoucher, error)
}

type voucherRepository struct {
	db db.Querier
}

// NewVoucherRepository returns a pgx backed VoucherSource.
func NewVoucherRepository(q db.Querier) VoucherSource {
	return &voucherRepository{db: q}
}

const unbalancedVouchersSQL = `SELECT company, voucher_no, SUM(debit)::text, SUM(credit)::text
FROM gl_entries
WHERE is_cancelled = FALSE AND posting_date >= $1
GROUP BY company, voucher_no
HAVING SUM(debit) <> SUM(credit)
ORDER BY company, voucher_no
LIMIT $2`

func (r *voucherRepository) UnbalancedVouchers(ctx context.Context, since time.Time, limit int) ([]UnbalancedVoucher, error) {
	rows, err := r.db.Query(ctx, unbalancedVouchersSQL, since, limit)
	if err != nil {
		return nil, fmt.Errorf("jobs: unbalanced vouchers: %w", err)
	}
	defer rows.Close()
	var out []UnbalancedVoucher
	for rows.Next() {
		var (
			v             UnbalancedVoucher
			debit, credit string
		)
		if err := rows.Scan(&v.Company, &v.VoucherNo, &debit, &credit); err != nil {
			return nil, err
		}
		if v.Debit, err = decimal.NewFromString(debit); err != nil {
			return nil, err
		}
		if v.Credit, err = decimal.NewFromString(credit); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

// GLIntegrityJob logs vouchers whose debits and credits disagree. The
// balances shown on the chart of accounts assume balanced vouchers.
type GLIntegrityJob struct {
	Source  VoucherSource
	Logger  *slog.Logger
	Metrics Recorder
	clock   func() time.Time
}

// NewGLIntegrityJob constructs the job handler.
func NewGLIntegrityJob(source VoucherSource, logger *slog.Logger, metrics Recorder) *GLIntegrityJob {
	return &GLIntegrityJob{
		Source:  source,
		Logger:  logger,
		Metrics: metrics,
		clock: func() time.Time {
			return time.Now().UTC()
		},
	}
}

// Handle runs the integrity check.
func (j *GLIntegrityJob) Handle(ctx context.Context, task *asynq.Task) error {
	_, err := j.Run(ctx, task)
	return err
}

// Run executes the check and returns the unbalanced vouchers found.
func (j *GLIntegrityJob) Run(ctx context.Context, task *asynq.Task) ([]UnbalancedVoucher, error) {
	if j == nil || j.Source == nil {
		return nil, errors.New("gl integrity: source not configured")
	}
	var payload GLIntegrityPayload
	if err := decode(task, &payload); err != nil {
		return nil, err
	}
	if payload.LookbackDays <= 0 {
		payload.LookbackDays = defaultLookbackDays
	}
	now := time.Now().UTC()
	if j.clock != nil {
		now = j.clock()
	}
	since := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, -payload.LookbackDays)

	logger := j.Logger
	if logger == nil {
		logger = slog.Default()
	}
	vouchers, err := j.Source.UnbalancedVouchers(ctx, since, maxReportedVouchers)
	observe(j.Metrics, TaskGLIntegrity, err)
	if err != nil {
		logger.Error("GL integrity check", slog.Any("error", err))
		return nil, err
	}
	for _, v := range vouchers {
		logger.Warn("unbalanced voucher",
			slog.String("company", v.Company),
			slog.String("voucher_no", v.VoucherNo),
			slog.String("debit", v.Debit.StringFixed(2)),
			slog.String("credit", v.Credit.StringFixed(2)))
	}
	logger.Info("GL integrity check executed",
		slog.String("job", TaskGLIntegrity),
		slog.Time("since", since),
		slog.Int("unbalanced", len(vouchers)))
	return vouchers, nil
}
