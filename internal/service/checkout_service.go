package service

import (
	"context"
	"fmt"
	"time"

	"shopkart/internal/checkout"
	"shopkart/internal/config"
	"shopkart/internal/model"
	"shopkart/internal/pricing"
	"shopkart/internal/repository"
	"shopkart/internal/voucher"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// checkoutService implements CheckoutService on top of a session store. The
// session carries the user's selections; every quote is derived fresh from
// raw inputs and the user's live point balance.
type checkoutService struct {
	store       checkout.Store
	productRepo repository.ProductRepository
	voucherRepo repository.VoucherRepository
	userRepo    repository.UserRepository
	cfg         config.CheckoutConfig
	logger      zerolog.Logger
	now         func() time.Time
}

// NewCheckoutService creates a new checkout service.
func NewCheckoutService(
	store checkout.Store,
	productRepo repository.ProductRepository,
	voucherRepo repository.VoucherRepository,
	userRepo repository.UserRepository,
	cfg config.CheckoutConfig,
	logger zerolog.Logger,
) CheckoutService {
	return &checkoutService{
		store:       store,
		productRepo: productRepo,
		voucherRepo: voucherRepo,
		userRepo:    userRepo,
		cfg:         cfg,
		logger:      logger.With().Str("service", "checkout").Logger(),
		now:         time.Now,
	}
}

// Begin starts a checkout over the selected items, replacing any session the
// user already has. Items are priced from the catalogue at this point and
// the lines are fixed for the session's lifetime.
func (s *checkoutService) Begin(ctx context.Context, userID uuid.UUID, items []model.OrderItemRequest) (*checkout.Session, model.OrderTotal, error) {
	if len(items) == 0 {
		return nil, model.OrderTotal{}, fmt.Errorf("checkout must contain at least one item")
	}
	for _, item := range items {
		if item.Quantity <= 0 {
			return nil, model.OrderTotal{}, model.ErrInvalidQuantity
		}
	}

	ids := make([]string, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ProductID)
	}
	products, err := s.productRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, model.OrderTotal{}, fmt.Errorf("failed to get products: %w", err)
	}
	byID := make(map[string]model.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	lines := make([]model.CartLine, 0, len(items))
	for _, item := range items {
		product, ok := byID[item.ProductID]
		if !ok {
			return nil, model.OrderTotal{}, model.ErrProductNotFound
		}
		lines = append(lines, model.CartLine{
			ProductID:       product.ID,
			UnitPrice:       product.Price,
			DiscountPercent: product.DiscountPercent,
			Quantity:        item.Quantity,
		})
	}

	session := checkout.NewSession(userID, lines)
	p, err := s.pricing(ctx, userID)
	if err != nil {
		return nil, model.OrderTotal{}, err
	}

	if err := s.store.Put(ctx, session); err != nil {
		return nil, model.OrderTotal{}, fmt.Errorf("failed to save checkout session: %w", err)
	}

	s.logger.Debug().
		Str("user_id", userID.String()).
		Int("lines", len(lines)).
		Msg("checkout session started")

	return session, session.Quote(p), nil
}

// Get returns the current session and its quote.
func (s *checkoutService) Get(ctx context.Context, userID uuid.UUID) (*checkout.Session, model.OrderTotal, error) {
	session, err := s.store.Get(ctx, userID)
	if err != nil {
		return nil, model.OrderTotal{}, err
	}
	p, err := s.pricing(ctx, userID)
	if err != nil {
		return nil, model.OrderTotal{}, err
	}
	return session, session.Quote(p), nil
}

// ApplyVoucher toggles a voucher code in the session: applying a selected
// code deselects it, applying a new code of the same kind replaces the
// occupant of its slot.
func (s *checkoutService) ApplyVoucher(ctx context.Context, userID uuid.UUID, code string) (*checkout.Session, model.OrderTotal, error) {
	session, err := s.store.Get(ctx, userID)
	if err != nil {
		return nil, model.OrderTotal{}, err
	}
	p, err := s.pricing(ctx, userID)
	if err != nil {
		return nil, model.OrderTotal{}, err
	}

	v, err := s.voucherRepo.GetByCode(ctx, code)
	if err != nil {
		return nil, model.OrderTotal{}, fmt.Errorf("failed to look up voucher: %w", err)
	}
	if v == nil {
		return nil, model.OrderTotal{}, model.ErrVoucherNotFound
	}

	// Deselecting never needs validation; only a fresh selection does.
	base := pricing.Subtotal(session.Lines) + p.ShippingCost
	if !session.Slots.HasCode(v.Code) {
		if err := voucher.Validate(v, base, s.now()); err != nil {
			return nil, model.OrderTotal{}, err
		}
	}

	selected := session.ApplyVoucher(*v, p)
	if err := s.store.Put(ctx, session); err != nil {
		return nil, model.OrderTotal{}, fmt.Errorf("failed to save checkout session: %w", err)
	}

	s.logger.Debug().
		Str("user_id", userID.String()).
		Str("code", v.Code).
		Bool("selected", selected).
		Msg("voucher toggled")

	return session, session.Quote(p), nil
}

// SetPoints switches the reward-point toggle and requested spend. The spend
// is clamped to the redemption cap, which depends on the live balance.
func (s *checkoutService) SetPoints(ctx context.Context, userID uuid.UUID, use bool, points int64) (*checkout.Session, model.OrderTotal, error) {
	if points < 0 {
		points = 0
	}

	session, err := s.store.Get(ctx, userID)
	if err != nil {
		return nil, model.OrderTotal{}, err
	}
	p, err := s.pricing(ctx, userID)
	if err != nil {
		return nil, model.OrderTotal{}, err
	}

	session.SetPoints(use, points, p)
	if err := s.store.Put(ctx, session); err != nil {
		return nil, model.OrderTotal{}, fmt.Errorf("failed to save checkout session: %w", err)
	}

	return session, session.Quote(p), nil
}

// pricing builds the session-independent pricing inputs from configuration
// and the user's live reward-point balance.
func (s *checkoutService) pricing(ctx context.Context, userID uuid.UUID) (checkout.Pricing, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return checkout.Pricing{}, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return checkout.Pricing{}, model.ErrUserNotFound
	}
	return checkout.Pricing{
		ShippingCost:    s.cfg.ShippingFee,
		PointsAvailable: user.RewardPoints,
		PointValue:      s.cfg.PointValue,
	}, nil
}
