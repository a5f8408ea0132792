package service

import (
	"context"
	"fmt"
	"time"

	"shopkart/internal/checkout"
	"shopkart/internal/config"
	"shopkart/internal/model"
	"shopkart/internal/payment"
	"shopkart/internal/pricing"
	"shopkart/internal/repository"
	"shopkart/internal/voucher"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// orderService implements OrderService. Both terminal paths share the same
// pricing pipeline: items are priced from the catalogue, vouchers and points
// are re-validated, and the totals are recomputed from raw inputs regardless
// of what the client sent.
type orderService struct {
	orderRepo   repository.OrderRepository
	productRepo repository.ProductRepository
	voucherRepo repository.VoucherRepository
	userRepo    repository.UserRepository
	addressRepo repository.AddressRepository
	sessions    checkout.Store
	payments    payment.Client
	cfg         config.CheckoutConfig
	logger      zerolog.Logger
	now         func() time.Time
}

// NewOrderService creates a new order service.
func NewOrderService(
	orderRepo repository.OrderRepository,
	productRepo repository.ProductRepository,
	voucherRepo repository.VoucherRepository,
	userRepo repository.UserRepository,
	addressRepo repository.AddressRepository,
	sessions checkout.Store,
	payments payment.Client,
	cfg config.CheckoutConfig,
	logger zerolog.Logger,
) OrderService {
	return &orderService{
		orderRepo:   orderRepo,
		productRepo: productRepo,
		voucherRepo: voucherRepo,
		userRepo:    userRepo,
		addressRepo: addressRepo,
		sessions:    sessions,
		payments:    payments,
		cfg:         cfg,
		logger:      logger.With().Str("service", "order").Logger(),
		now:         time.Now,
	}
}

// pricedOrder is the fully resolved submission: the order row, its items,
// and the voucher codes whose usage must be bumped at commit time.
type pricedOrder struct {
	order        *model.Order
	items        []model.OrderItem
	total        model.OrderTotal
	voucherCodes []string
}

// CreateCashOnDelivery places a cash-on-delivery order. The order is
// confirmed immediately; payment happens at the door.
func (s *orderService) CreateCashOnDelivery(ctx context.Context, userID uuid.UUID, req *model.OrderRequest) (*model.OrderResponse, error) {
	priced, err := s.priceOrder(ctx, userID, req)
	if err != nil {
		return nil, err
	}

	priced.order.Status = model.OrderStatusConfirmed
	priced.order.PaymentMethod = model.PaymentCashOnDelivery

	if err := s.persistOrder(ctx, priced); err != nil {
		return nil, err
	}

	s.discardSession(ctx, userID)

	s.logger.Info().
		Str("order_id", priced.order.ID.String()).
		Str("user_id", userID.String()).
		Int64("final_total", priced.total.FinalTotal).
		Msg("cash-on-delivery order placed")

	return &model.OrderResponse{
		ID:    priced.order.ID,
		Total: priced.total,
		Items: priced.items,
	}, nil
}

// Checkout places an online-payment order. When vouchers and points cover
// the entire amount the order completes immediately; otherwise a hosted
// payment session is created and its id returned for redirect.
func (s *orderService) Checkout(ctx context.Context, userID uuid.UUID, req *model.OrderRequest) (*model.CheckoutResponse, error) {
	priced, err := s.priceOrder(ctx, userID, req)
	if err != nil {
		return nil, err
	}

	priced.order.PaymentMethod = model.PaymentOnline

	if priced.total.FinalTotal == 0 {
		priced.order.Status = model.OrderStatusConfirmed
		if err := s.persistOrder(ctx, priced); err != nil {
			return nil, err
		}
		s.discardSession(ctx, userID)

		s.logger.Info().
			Str("order_id", priced.order.ID.String()).
			Str("user_id", userID.String()).
			Msg("free order placed, payment skipped")

		return &model.CheckoutResponse{
			IsFreeOrder: true,
			Message:     "Order placed: fully covered by vouchers and points",
		}, nil
	}

	session, err := s.payments.CreateSession(ctx, payment.CreateSessionRequest{
		OrderID:     priced.order.ID.String(),
		Amount:      priced.total.FinalTotal,
		Currency:    "VND",
		Description: fmt.Sprintf("Order %s", priced.order.ID),
	})
	if err != nil {
		s.logger.Error().Err(err).
			Str("order_id", priced.order.ID.String()).
			Msg("payment session creation failed")
		return nil, model.ErrPaymentFailed
	}

	priced.order.Status = model.OrderStatusPending
	priced.order.PaymentSessionID = &session.ID

	if err := s.persistOrder(ctx, priced); err != nil {
		return nil, err
	}
	s.discardSession(ctx, userID)

	s.logger.Info().
		Str("order_id", priced.order.ID.String()).
		Str("payment_session_id", session.ID).
		Int64("final_total", priced.total.FinalTotal).
		Msg("order pending payment")

	return &model.CheckoutResponse{ID: session.ID}, nil
}

// GetByID retrieves an order with its items.
func (s *orderService) GetByID(ctx context.Context, id uuid.UUID) (*model.Order, []model.OrderItem, error) {
	order, items, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Str("order_id", id.String()).Msg("failed to get order")
		return nil, nil, fmt.Errorf("failed to get order: %w", err)
	}
	if order == nil {
		return nil, nil, model.ErrOrderNotFound
	}
	return order, items, nil
}

// priceOrder resolves a submission from raw inputs: catalogue prices for
// every item, re-validated vouchers, and the user's live point balance. The
// client's subTotalAmt and totalAmt are ignored.
func (s *orderService) priceOrder(ctx context.Context, userID uuid.UUID, req *model.OrderRequest) (*pricedOrder, error) {
	if req == nil || len(req.ListItems) == 0 {
		return nil, fmt.Errorf("order must contain at least one item")
	}
	if req.AddressID == uuid.Nil {
		return nil, model.ErrAddressNotFound
	}
	for _, item := range req.ListItems {
		if item.Quantity <= 0 {
			return nil, model.ErrInvalidQuantity
		}
	}

	address, err := s.addressRepo.GetByID(ctx, req.AddressID)
	if err != nil {
		return nil, fmt.Errorf("failed to get address: %w", err)
	}
	if address == nil || address.UserID != userID {
		return nil, model.ErrAddressNotFound
	}

	lines, err := s.priceLines(ctx, req.ListItems)
	if err != nil {
		return nil, err
	}

	base := pricing.Subtotal(lines) + s.cfg.ShippingFee
	now := s.now()

	var regular, freeShipping *model.Voucher
	var voucherCodes []string
	if req.VoucherCode != "" {
		regular, err = s.resolveVoucher(ctx, req.VoucherCode, base, now, false)
		if err != nil {
			return nil, err
		}
		voucherCodes = append(voucherCodes, regular.Code)
	}
	if req.FreeShippingVoucherCode != "" {
		freeShipping, err = s.resolveVoucher(ctx, req.FreeShippingVoucherCode, base, now, true)
		if err != nil {
			return nil, err
		}
		voucherCodes = append(voucherCodes, freeShipping.Code)
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, model.ErrUserNotFound
	}

	total := pricing.Quote(pricing.QuoteInput{
		Lines:           lines,
		ShippingCost:    s.cfg.ShippingFee,
		Regular:         regular,
		FreeShipping:    freeShipping,
		UsePoints:       req.PointsToUse > 0,
		PointsToUse:     req.PointsToUse,
		PointsAvailable: user.RewardPoints,
		PointValue:      s.cfg.PointValue,
	})

	orderID := uuid.New()
	order := &model.Order{
		ID:              orderID,
		UserID:          userID,
		AddressID:       address.ID,
		Subtotal:        total.Subtotal,
		ShippingCost:    total.ShippingCost,
		VoucherDiscount: total.VoucherDiscount,
		PointsDiscount:  total.PointsDiscount,
		PointsUsed:      total.PointsUsed,
		FinalTotal:      total.FinalTotal,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if regular != nil {
		code := regular.Code
		order.VoucherCode = &code
	}
	if freeShipping != nil {
		code := freeShipping.Code
		order.FreeShippingVoucherCode = &code
	}

	items := make([]model.OrderItem, 0, len(lines))
	for _, line := range lines {
		items = append(items, model.OrderItem{
			ID:              uuid.New(),
			OrderID:         orderID,
			ProductID:       line.ProductID,
			Quantity:        line.Quantity,
			UnitPrice:       line.UnitPrice,
			DiscountPercent: line.DiscountPercent,
		})
	}

	return &pricedOrder{
		order:        order,
		items:        items,
		total:        total,
		voucherCodes: voucherCodes,
	}, nil
}

// priceLines looks up every selected product and builds cart lines from
// catalogue prices. Any unknown product fails the whole submission.
func (s *orderService) priceLines(ctx context.Context, items []model.OrderItemRequest) ([]model.CartLine, error) {
	ids := make([]string, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ProductID)
	}

	products, err := s.productRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to get products: %w", err)
	}

	byID := make(map[string]model.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	lines := make([]model.CartLine, 0, len(items))
	for _, item := range items {
		product, ok := byID[item.ProductID]
		if !ok {
			s.logger.Warn().Str("product_id", item.ProductID).Msg("unknown product in order")
			return nil, model.ErrProductNotFound
		}
		lines = append(lines, model.CartLine{
			ProductID:       product.ID,
			UnitPrice:       product.Price,
			DiscountPercent: product.DiscountPercent,
			Quantity:        item.Quantity,
		})
	}
	return lines, nil
}

// resolveVoucher looks up and re-validates a voucher code for the slot it
// was submitted under. A regular code in the free-shipping slot, or the
// reverse, is rejected.
func (s *orderService) resolveVoucher(ctx context.Context, code string, orderAmount int64, now time.Time, wantFreeShipping bool) (*model.Voucher, error) {
	v, err := s.voucherRepo.GetByCode(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to look up voucher: %w", err)
	}
	if v == nil {
		return nil, model.ErrVoucherNotFound
	}
	if v.IsFreeShipping() != wantFreeShipping {
		return nil, model.ErrVoucherConflict
	}
	if err := voucher.Validate(v, orderAmount, now); err != nil {
		return nil, err
	}
	return v, nil
}

// persistOrder writes the order, its items, voucher usage bumps and the
// point deduction in one transaction. A usage limit hit or an insufficient
// point balance rolls everything back.
func (s *orderService) persistOrder(ctx context.Context, priced *pricedOrder) error {
	tx, err := s.orderRepo.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	if err := s.orderRepo.CreateOrder(ctx, tx, priced.order); err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}
	if err := s.orderRepo.CreateOrderItems(ctx, tx, priced.items); err != nil {
		return fmt.Errorf("failed to create order items: %w", err)
	}
	for _, code := range priced.voucherCodes {
		if err := s.voucherRepo.IncrementUsage(ctx, tx, code); err != nil {
			return err
		}
	}
	if priced.total.PointsUsed > 0 {
		if err := s.userRepo.DeductPoints(ctx, tx, priced.order.UserID, priced.total.PointsUsed); err != nil {
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit order: %w", err)
	}
	return nil
}

// discardSession drops the user's checkout session after a successful
// submission. Losing the delete is harmless; the session expires on its own.
func (s *orderService) discardSession(ctx context.Context, userID uuid.UUID) {
	if s.sessions == nil {
		return
	}
	if err := s.sessions.Delete(ctx, userID); err != nil {
		s.logger.Warn().Err(err).Str("user_id", userID.String()).Msg("failed to discard checkout session")
	}
}
