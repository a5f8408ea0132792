package repository

import (
	"context"
	"time"

	"shopkart/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// ProductRepository defines the interface for product data access operations.
type ProductRepository interface {
	// GetAll retrieves products matching the filter, with pagination.
	GetAll(ctx context.Context, filter model.ProductFilter) ([]model.Product, error)

	// GetByID retrieves a single product by its ID.
	GetByID(ctx context.Context, id string) (*model.Product, error)

	// GetByIDs retrieves multiple products by their IDs.
	GetByIDs(ctx context.Context, ids []string) ([]model.Product, error)
}

// VoucherRepository defines the interface for voucher data access operations.
type VoucherRepository interface {
	// GetByCode retrieves a voucher by its normalized code. Returns nil
	// when no voucher has the code.
	GetByCode(ctx context.Context, code string) (*model.Voucher, error)

	// FindCandidates retrieves vouchers a customer could see for the given
	// order amount: active, not ended, minimum order met, usage remaining.
	// Vouchers that have not started yet are included so they can be shown
	// as upcoming.
	FindCandidates(ctx context.Context, orderAmount int64, now time.Time) ([]model.Voucher, error)

	// GetAll retrieves all vouchers for the admin console.
	GetAll(ctx context.Context, limit, offset int) ([]model.Voucher, error)

	// Create inserts a new voucher.
	Create(ctx context.Context, v *model.Voucher) error

	// Update replaces a voucher's mutable fields.
	Update(ctx context.Context, v *model.Voucher) error

	// Delete removes a voucher. Returns model.ErrVoucherNotFound when no
	// row matches.
	Delete(ctx context.Context, id uuid.UUID) error

	// IncrementUsage bumps a voucher's used count within the transaction,
	// failing when the usage limit is already exhausted.
	IncrementUsage(ctx context.Context, tx pgx.Tx, code string) error
}

// OrderRepository defines the interface for order data access operations.
type OrderRepository interface {
	// BeginTx starts a new database transaction.
	BeginTx(ctx context.Context) (pgx.Tx, error)

	// CreateOrder inserts a new order within the provided transaction.
	CreateOrder(ctx context.Context, tx pgx.Tx, order *model.Order) error

	// CreateOrderItems inserts multiple order items within the provided transaction.
	CreateOrderItems(ctx context.Context, tx pgx.Tx, items []model.OrderItem) error

	// GetByID retrieves an order by its ID along with its items.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Order, []model.OrderItem, error)
}

// UserRepository defines the interface for user data access operations.
type UserRepository interface {
	// GetByID retrieves a user by ID. Returns nil when not found.
	GetByID(ctx context.Context, id uuid.UUID) (*model.User, error)

	// DeductPoints subtracts points from a user's balance within the
	// transaction. Fails with model.ErrInsufficientFunds when the balance
	// is too low.
	DeductPoints(ctx context.Context, tx pgx.Tx, userID uuid.UUID, points int64) error
}

// AddressRepository defines the interface for address data access operations.
type AddressRepository interface {
	// ListByUser retrieves all addresses belonging to a user.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Address, error)

	// GetByID retrieves a single address. Returns nil when not found.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Address, error)

	// Create inserts a new address.
	Create(ctx context.Context, a *model.Address) error

	// Update replaces an address's mutable fields.
	Update(ctx context.Context, a *model.Address) error

	// Delete removes an address. Returns model.ErrAddressNotFound when no
	// row matches.
	Delete(ctx context.Context, id, userID uuid.UUID) error
}

// CategoryRepository defines the interface for category data access operations.
type CategoryRepository interface {
	// GetAll retrieves all categories.
	GetAll(ctx context.Context) ([]model.Category, error)

	// GetByID retrieves a single category. Returns nil when not found.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Category, error)

	// Create inserts a new category.
	Create(ctx context.Context, c *model.Category) error

	// Update renames a category.
	Update(ctx context.Context, c *model.Category) error

	// Delete removes a category. Returns model.ErrCategoryNotFound when no
	// row matches.
	Delete(ctx context.Context, id uuid.UUID) error
}
