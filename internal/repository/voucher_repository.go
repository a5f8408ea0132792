package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"shopkart/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

const voucherColumns = `id, code, kind, discount_value, max_discount, min_order_value,
		start_date, end_date, usage_limit, used_count, is_active, created_at, updated_at`

// voucherRepository implements the VoucherRepository interface using PostgreSQL.
type voucherRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewVoucherRepository creates a new PostgreSQL-backed voucher repository.
func NewVoucherRepository(pool *pgxpool.Pool, logger zerolog.Logger) VoucherRepository {
	return &voucherRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "voucher").Logger(),
	}
}

func scanVoucher(row pgx.Row) (*model.Voucher, error) {
	var v model.Voucher
	err := row.Scan(
		&v.ID,
		&v.Code,
		&v.Kind,
		&v.DiscountValue,
		&v.MaxDiscount,
		&v.MinOrderValue,
		&v.StartDate,
		&v.EndDate,
		&v.UsageLimit,
		&v.UsedCount,
		&v.IsActive,
		&v.CreatedAt,
		&v.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// GetByCode retrieves a voucher by its normalized code.
func (r *voucherRepository) GetByCode(ctx context.Context, code string) (*model.Voucher, error) {
	query := `
		SELECT ` + voucherColumns + `
		FROM vouchers
		WHERE code = $1
	`

	v, err := scanVoucher(r.pool.QueryRow(ctx, query, model.NormalizeVoucherCode(code)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug().Str("code", code).Msg("voucher not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("code", code).Msg("failed to query voucher")
		return nil, fmt.Errorf("failed to query voucher: %w", err)
	}

	return v, nil
}

// FindCandidates retrieves vouchers a customer could see for the order
// amount, including ones that have not started yet.
func (r *voucherRepository) FindCandidates(ctx context.Context, orderAmount int64, now time.Time) ([]model.Voucher, error) {
	query := `
		SELECT ` + voucherColumns + `
		FROM vouchers
		WHERE is_active = TRUE
		  AND end_date >= $2
		  AND min_order_value <= $1
		  AND (usage_limit IS NULL OR used_count < usage_limit)
		ORDER BY start_date, code
	`

	rows, err := r.pool.Query(ctx, query, orderAmount, now)
	if err != nil {
		r.logger.Error().Err(err).Int64("order_amount", orderAmount).Msg("failed to query candidate vouchers")
		return nil, fmt.Errorf("failed to query candidate vouchers: %w", err)
	}
	defer rows.Close()

	return collectVouchers(rows, r.logger)
}

// GetAll retrieves all vouchers for the admin console.
func (r *voucherRepository) GetAll(ctx context.Context, limit, offset int) ([]model.Voucher, error) {
	query := `
		SELECT ` + voucherColumns + `
		FROM vouchers
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query vouchers")
		return nil, fmt.Errorf("failed to query vouchers: %w", err)
	}
	defer rows.Close()

	return collectVouchers(rows, r.logger)
}

func collectVouchers(rows pgx.Rows, logger zerolog.Logger) ([]model.Voucher, error) {
	var vouchers []model.Voucher
	for rows.Next() {
		v, err := scanVoucher(rows)
		if err != nil {
			logger.Error().Err(err).Msg("failed to scan voucher row")
			return nil, fmt.Errorf("failed to scan voucher: %w", err)
		}
		vouchers = append(vouchers, *v)
	}

	if err := rows.Err(); err != nil {
		logger.Error().Err(err).Msg("error iterating voucher rows")
		return nil, fmt.Errorf("error iterating vouchers: %w", err)
	}

	return vouchers, nil
}

// Create inserts a new voucher.
func (r *voucherRepository) Create(ctx context.Context, v *model.Voucher) error {
	query := `
		INSERT INTO vouchers (id, code, kind, discount_value, max_discount, min_order_value,
			start_date, end_date, usage_limit, used_count, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`

	_, err := r.pool.Exec(ctx, query,
		v.ID, v.Code, v.Kind, v.DiscountValue, v.MaxDiscount, v.MinOrderValue,
		v.StartDate, v.EndDate, v.UsageLimit, v.UsedCount, v.IsActive, v.CreatedAt, v.UpdatedAt,
	)
	if err != nil {
		r.logger.Error().Err(err).Str("code", v.Code).Msg("failed to create voucher")
		return fmt.Errorf("failed to create voucher: %w", err)
	}

	r.logger.Debug().Str("code", v.Code).Msg("voucher created")
	return nil
}

// Update replaces a voucher's mutable fields.
func (r *voucherRepository) Update(ctx context.Context, v *model.Voucher) error {
	query := `
		UPDATE vouchers
		SET code = $2, kind = $3, discount_value = $4, max_discount = $5,
			min_order_value = $6, start_date = $7, end_date = $8,
			usage_limit = $9, is_active = $10, updated_at = $11
		WHERE id = $1
	`

	tag, err := r.pool.Exec(ctx, query,
		v.ID, v.Code, v.Kind, v.DiscountValue, v.MaxDiscount,
		v.MinOrderValue, v.StartDate, v.EndDate,
		v.UsageLimit, v.IsActive, v.UpdatedAt,
	)
	if err != nil {
		r.logger.Error().Err(err).Str("voucher_id", v.ID.String()).Msg("failed to update voucher")
		return fmt.Errorf("failed to update voucher: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrVoucherNotFound
	}

	return nil
}

// Delete removes a voucher.
func (r *voucherRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM vouchers WHERE id = $1`, id)
	if err != nil {
		r.logger.Error().Err(err).Str("voucher_id", id.String()).Msg("failed to delete voucher")
		return fmt.Errorf("failed to delete voucher: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrVoucherNotFound
	}

	return nil
}

// IncrementUsage bumps a voucher's used count, guarded by the usage limit so
// concurrent orders cannot overspend a voucher.
func (r *voucherRepository) IncrementUsage(ctx context.Context, tx pgx.Tx, code string) error {
	query := `
		UPDATE vouchers
		SET used_count = used_count + 1, updated_at = NOW()
		WHERE code = $1
		  AND (usage_limit IS NULL OR used_count < usage_limit)
	`

	tag, err := tx.Exec(ctx, query, model.NormalizeVoucherCode(code))
	if err != nil {
		r.logger.Error().Err(err).Str("code", code).Msg("failed to increment voucher usage")
		return fmt.Errorf("failed to increment voucher usage: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrVoucherExhausted
	}

	return nil
}
