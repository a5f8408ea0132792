package service

import (
	"context"
	"fmt"
	"time"

	"shopkart/internal/model"
	"shopkart/internal/repository"
	"shopkart/internal/voucher"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// voucherService implements VoucherService.
type voucherService struct {
	voucherRepo repository.VoucherRepository
	logger      zerolog.Logger
	now         func() time.Time
}

// NewVoucherService creates a new voucher service.
func NewVoucherService(voucherRepo repository.VoucherRepository, logger zerolog.Logger) VoucherService {
	return &voucherService{
		voucherRepo: voucherRepo,
		logger:      logger.With().Str("service", "voucher").Logger(),
		now:         time.Now,
	}
}

// Available returns vouchers eligible for the order, partitioned into
// active and upcoming. Upcoming vouchers are informational only.
func (s *voucherService) Available(ctx context.Context, req *model.AvailableVouchersRequest) (*model.AvailableVouchersResponse, error) {
	if req == nil {
		return nil, fmt.Errorf("available vouchers request is nil")
	}
	if req.OrderAmount < 0 {
		return nil, fmt.Errorf("order amount cannot be negative")
	}

	now := s.now()
	candidates, err := s.voucherRepo.FindCandidates(ctx, req.OrderAmount, now)
	if err != nil {
		s.logger.Error().Err(err).Int64("order_amount", req.OrderAmount).Msg("failed to find candidate vouchers")
		return nil, fmt.Errorf("failed to find candidate vouchers: %w", err)
	}

	active, upcoming := voucher.Partition(candidates, now)

	s.logger.Debug().
		Int("active", len(active)).
		Int("upcoming", len(upcoming)).
		Int64("order_amount", req.OrderAmount).
		Msg("candidate vouchers resolved")

	return &model.AvailableVouchersResponse{
		Active:   active,
		Upcoming: upcoming,
	}, nil
}

// Apply re-validates a voucher code against the order amount and returns
// the voucher when it passes every eligibility rule.
func (s *voucherService) Apply(ctx context.Context, req *model.ApplyVoucherRequest) (*model.Voucher, error) {
	if req == nil {
		return nil, fmt.Errorf("apply voucher request is nil")
	}
	if req.Code == "" {
		return nil, model.ErrVoucherNotFound
	}

	v, err := s.voucherRepo.GetByCode(ctx, req.Code)
	if err != nil {
		s.logger.Error().Err(err).Str("code", req.Code).Msg("failed to look up voucher")
		return nil, fmt.Errorf("failed to look up voucher: %w", err)
	}
	if v == nil {
		s.logger.Warn().Str("code", req.Code).Msg("unknown voucher code")
		return nil, model.ErrVoucherNotFound
	}

	if err := voucher.Validate(v, req.OrderAmount, s.now()); err != nil {
		s.logger.Warn().
			Str("code", req.Code).
			Int64("order_amount", req.OrderAmount).
			Err(err).
			Msg("voucher rejected")
		return nil, err
	}

	s.logger.Debug().Str("code", v.Code).Msg("voucher validated")
	return v, nil
}

// GetAll lists vouchers for the admin console.
func (s *voucherService) GetAll(ctx context.Context, limit, offset int) ([]model.Voucher, error) {
	if limit < 1 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	vouchers, err := s.voucherRepo.GetAll(ctx, limit, offset)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list vouchers")
		return nil, fmt.Errorf("failed to list vouchers: %w", err)
	}
	return vouchers, nil
}

// Create adds a new voucher from an admin request.
func (s *voucherService) Create(ctx context.Context, req *model.VoucherRequest) (*model.Voucher, error) {
	if err := validateVoucherRequest(req); err != nil {
		return nil, err
	}

	now := s.now()
	v := &model.Voucher{
		ID:            uuid.New(),
		Code:          model.NormalizeVoucherCode(req.Code),
		Kind:          req.Kind,
		DiscountValue: req.DiscountValue,
		MaxDiscount:   req.MaxDiscount,
		MinOrderValue: req.MinOrderValue,
		StartDate:     req.StartDate,
		EndDate:       req.EndDate,
		UsageLimit:    req.UsageLimit,
		IsActive:      req.IsActive,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.voucherRepo.Create(ctx, v); err != nil {
		s.logger.Error().Err(err).Str("code", v.Code).Msg("failed to create voucher")
		return nil, fmt.Errorf("failed to create voucher: %w", err)
	}

	s.logger.Info().Str("code", v.Code).Str("kind", string(v.Kind)).Msg("voucher created")
	return v, nil
}

// Update replaces a voucher's definition.
func (s *voucherService) Update(ctx context.Context, id uuid.UUID, req *model.VoucherRequest) (*model.Voucher, error) {
	if err := validateVoucherRequest(req); err != nil {
		return nil, err
	}

	v := &model.Voucher{
		ID:            id,
		Code:          model.NormalizeVoucherCode(req.Code),
		Kind:          req.Kind,
		DiscountValue: req.DiscountValue,
		MaxDiscount:   req.MaxDiscount,
		MinOrderValue: req.MinOrderValue,
		StartDate:     req.StartDate,
		EndDate:       req.EndDate,
		UsageLimit:    req.UsageLimit,
		IsActive:      req.IsActive,
		UpdatedAt:     s.now(),
	}

	if err := s.voucherRepo.Update(ctx, v); err != nil {
		if err == model.ErrVoucherNotFound {
			return nil, err
		}
		s.logger.Error().Err(err).Str("voucher_id", id.String()).Msg("failed to update voucher")
		return nil, fmt.Errorf("failed to update voucher: %w", err)
	}

	return v, nil
}

// Delete removes a voucher.
func (s *voucherService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.voucherRepo.Delete(ctx, id); err != nil {
		if err == model.ErrVoucherNotFound {
			return err
		}
		s.logger.Error().Err(err).Str("voucher_id", id.String()).Msg("failed to delete voucher")
		return fmt.Errorf("failed to delete voucher: %w", err)
	}

	s.logger.Info().Str("voucher_id", id.String()).Msg("voucher deleted")
	return nil
}

func validateVoucherRequest(req *model.VoucherRequest) error {
	if req == nil {
		return fmt.Errorf("voucher request is nil")
	}
	if req.Code == "" {
		return fmt.Errorf("voucher code is required")
	}
	switch req.Kind {
	case model.VoucherPercentage:
		if req.DiscountValue < 1 || req.DiscountValue > 100 {
			return fmt.Errorf("percentage discount must be between 1 and 100")
		}
	case model.VoucherFixed:
		if req.DiscountValue < 1 {
			return fmt.Errorf("fixed discount must be positive")
		}
	case model.VoucherFreeShipping:
		// No discount value to validate.
	default:
		return fmt.Errorf("unknown voucher kind: %s", req.Kind)
	}
	if req.EndDate.Before(req.StartDate) {
		return fmt.Errorf("voucher end date cannot precede start date")
	}
	if req.MinOrderValue < 0 {
		return fmt.Errorf("minimum order value cannot be negative")
	}
	return nil
}
