package service

import (
	"context"
	"fmt"
	"time"

	"shopkart/internal/geo"
	"shopkart/internal/model"
	"shopkart/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// addressService implements AddressService. Every create or update is
// validated against the static geo dataset before it touches the database.
type addressService struct {
	addressRepo repository.AddressRepository
	geo         *geo.Dataset
	logger      zerolog.Logger
}

// NewAddressService creates a new address service.
func NewAddressService(addressRepo repository.AddressRepository, dataset *geo.Dataset, logger zerolog.Logger) AddressService {
	return &addressService{
		addressRepo: addressRepo,
		geo:         dataset,
		logger:      logger.With().Str("service", "address").Logger(),
	}
}

// List retrieves the user's addresses.
func (s *addressService) List(ctx context.Context, userID uuid.UUID) ([]model.Address, error) {
	addresses, err := s.addressRepo.ListByUser(ctx, userID)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", userID.String()).Msg("failed to list addresses")
		return nil, fmt.Errorf("failed to list addresses: %w", err)
	}
	return addresses, nil
}

// Create adds a new address for the user.
func (s *addressService) Create(ctx context.Context, userID uuid.UUID, req *model.AddressRequest) (*model.Address, error) {
	if err := s.validate(req); err != nil {
		return nil, err
	}

	now := time.Now()
	address := &model.Address{
		ID:        uuid.New(),
		UserID:    userID,
		Line:      req.Line,
		Ward:      req.Ward,
		District:  req.District,
		Province:  req.Province,
		Phone:     req.Phone,
		IsDefault: req.IsDefault,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.addressRepo.Create(ctx, address); err != nil {
		s.logger.Error().Err(err).Str("user_id", userID.String()).Msg("failed to create address")
		return nil, fmt.Errorf("failed to create address: %w", err)
	}

	s.logger.Info().Str("address_id", address.ID.String()).Str("user_id", userID.String()).Msg("address created")
	return address, nil
}

// Update replaces an address. Only the owner may update it.
func (s *addressService) Update(ctx context.Context, userID, id uuid.UUID, req *model.AddressRequest) (*model.Address, error) {
	if err := s.validate(req); err != nil {
		return nil, err
	}

	existing, err := s.addressRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get address: %w", err)
	}
	if existing == nil || existing.UserID != userID {
		return nil, model.ErrAddressNotFound
	}

	address := &model.Address{
		ID:        id,
		UserID:    userID,
		Line:      req.Line,
		Ward:      req.Ward,
		District:  req.District,
		Province:  req.Province,
		Phone:     req.Phone,
		IsDefault: req.IsDefault,
		CreatedAt: existing.CreatedAt,
		UpdatedAt: time.Now(),
	}

	if err := s.addressRepo.Update(ctx, address); err != nil {
		s.logger.Error().Err(err).Str("address_id", id.String()).Msg("failed to update address")
		return nil, fmt.Errorf("failed to update address: %w", err)
	}
	return address, nil
}

// Delete removes an address. Only the owner may delete it.
func (s *addressService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	if err := s.addressRepo.Delete(ctx, id, userID); err != nil {
		if err == model.ErrAddressNotFound {
			return err
		}
		s.logger.Error().Err(err).Str("address_id", id.String()).Msg("failed to delete address")
		return fmt.Errorf("failed to delete address: %w", err)
	}
	return nil
}

func (s *addressService) validate(req *model.AddressRequest) error {
	if req == nil {
		return fmt.Errorf("address request is nil")
	}
	if req.Line == "" || req.Phone == "" {
		return model.NewDomainError(model.ErrCodeMissingField, "Address line and phone are required")
	}
	return s.geo.ValidateAddress(req.Province, req.District, req.Ward)
}
