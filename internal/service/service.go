package service

import (
	"context"

	"shopkart/internal/checkout"
	"shopkart/internal/model"

	"github.com/google/uuid"
)

// ProductService defines operations for product browsing.
type ProductService interface {
	// GetAll retrieves products matching the filter, with pagination.
	GetAll(ctx context.Context, filter model.ProductFilter) ([]model.Product, error)

	// GetByID retrieves a single product by ID.
	GetByID(ctx context.Context, id string) (*model.Product, error)
}

// VoucherService defines voucher resolution and the admin console operations.
type VoucherService interface {
	// Available returns the vouchers eligible for the given order,
	// partitioned into active and upcoming.
	Available(ctx context.Context, req *model.AvailableVouchersRequest) (*model.AvailableVouchersResponse, error)

	// Apply re-validates a free-text voucher code against the order and
	// returns the voucher on success.
	Apply(ctx context.Context, req *model.ApplyVoucherRequest) (*model.Voucher, error)

	// GetAll lists vouchers for the admin console.
	GetAll(ctx context.Context, limit, offset int) ([]model.Voucher, error)

	// Create adds a new voucher.
	Create(ctx context.Context, req *model.VoucherRequest) (*model.Voucher, error)

	// Update replaces a voucher's definition.
	Update(ctx context.Context, id uuid.UUID, req *model.VoucherRequest) (*model.Voucher, error)

	// Delete removes a voucher.
	Delete(ctx context.Context, id uuid.UUID) error
}

// CheckoutService owns the per-user checkout session: the selected items,
// voucher slots and reward-point toggle.
type CheckoutService interface {
	// Begin starts a checkout over the selected items, replacing any
	// session already in progress.
	Begin(ctx context.Context, userID uuid.UUID, items []model.OrderItemRequest) (*checkout.Session, model.OrderTotal, error)

	// Get returns the current session and its quote.
	Get(ctx context.Context, userID uuid.UUID) (*checkout.Session, model.OrderTotal, error)

	// ApplyVoucher toggles a voucher code in the session.
	ApplyVoucher(ctx context.Context, userID uuid.UUID, code string) (*checkout.Session, model.OrderTotal, error)

	// SetPoints switches the points toggle and requested spend.
	SetPoints(ctx context.Context, userID uuid.UUID, use bool, points int64) (*checkout.Session, model.OrderTotal, error)
}

// OrderService defines the two terminal checkout paths.
type OrderService interface {
	// CreateCashOnDelivery places a cash-on-delivery order.
	CreateCashOnDelivery(ctx context.Context, userID uuid.UUID, req *model.OrderRequest) (*model.OrderResponse, error)

	// Checkout places an online-payment order. When the order is fully
	// covered by vouchers and points it completes immediately; otherwise a
	// hosted payment session id is returned for redirect.
	Checkout(ctx context.Context, userID uuid.UUID, req *model.OrderRequest) (*model.CheckoutResponse, error)

	// GetByID retrieves an order with its items.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Order, []model.OrderItem, error)
}

// UserService defines user profile operations.
type UserService interface {
	// GetDetails retrieves the user's profile and reward-point balance.
	GetDetails(ctx context.Context, userID uuid.UUID) (*model.User, error)
}

// AddressService defines address book operations.
type AddressService interface {
	// List retrieves the user's addresses.
	List(ctx context.Context, userID uuid.UUID) ([]model.Address, error)

	// Create adds an address after validating it against the geo dataset.
	Create(ctx context.Context, userID uuid.UUID, req *model.AddressRequest) (*model.Address, error)

	// Update replaces an address.
	Update(ctx context.Context, userID, id uuid.UUID, req *model.AddressRequest) (*model.Address, error)

	// Delete removes an address.
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

// CategoryService defines the admin category console operations.
type CategoryService interface {
	// GetAll lists all categories.
	GetAll(ctx context.Context) ([]model.Category, error)

	// Create adds a category.
	Create(ctx context.Context, req *model.CategoryRequest) (*model.Category, error)

	// Update renames a category.
	Update(ctx context.Context, id uuid.UUID, req *model.CategoryRequest) (*model.Category, error)

	// Delete removes a category.
	Delete(ctx context.Context, id uuid.UUID) error
}
