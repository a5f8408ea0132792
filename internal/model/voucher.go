package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// VoucherKind identifies how a voucher discounts an order.
type VoucherKind string

const (
	// VoucherPercentage discounts a percentage of the order amount,
	// optionally capped by MaxDiscount.
	VoucherPercentage VoucherKind = "percentage"

	// VoucherFixed discounts a fixed amount, never more than the order amount.
	VoucherFixed VoucherKind = "fixed"

	// VoucherFreeShipping waives the shipping cost line item only.
	VoucherFreeShipping VoucherKind = "free_shipping"
)

// Voucher represents a discount code. All amounts are in the smallest
// currency unit.
type Voucher struct {
	ID            uuid.UUID   `json:"id" db:"id"`
	Code          string      `json:"code" db:"code"`
	Kind          VoucherKind `json:"kind" db:"kind"`
	DiscountValue int64       `json:"discountValue" db:"discount_value"`
	MaxDiscount   *int64      `json:"maxDiscount,omitempty" db:"max_discount"`
	MinOrderValue int64       `json:"minOrderValue" db:"min_order_value"`
	StartDate     time.Time   `json:"startDate" db:"start_date"`
	EndDate       time.Time   `json:"endDate" db:"end_date"`
	UsageLimit    *int        `json:"usageLimit,omitempty" db:"usage_limit"`
	UsedCount     int         `json:"usedCount" db:"used_count"`
	IsActive      bool        `json:"isActive" db:"is_active"`
	CreatedAt     time.Time   `json:"createdAt" db:"created_at"`
	UpdatedAt     time.Time   `json:"updatedAt" db:"updated_at"`
}

// IsFreeShipping reports whether the voucher occupies the free-shipping slot.
func (v *Voucher) IsFreeShipping() bool {
	return v.Kind == VoucherFreeShipping
}

// NormalizeVoucherCode returns the canonical form of a voucher code.
// Codes are compared case-insensitively; the normalized code is the
// canonical voucher identity.
func NormalizeVoucherCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// AvailableVouchersRequest is the payload for POST /api/voucher/available.
type AvailableVouchersRequest struct {
	OrderAmount int64      `json:"orderAmount"`
	ProductIDs  []string   `json:"productIds"`
	CartItems   []CartLine `json:"cartItems"`
}

// AvailableVouchersResponse partitions candidate vouchers by start date.
// Upcoming vouchers are informational only and cannot be applied.
type AvailableVouchersResponse struct {
	Active   []Voucher `json:"active"`
	Upcoming []Voucher `json:"upcoming"`
}

// ApplyVoucherRequest is the payload for POST /api/voucher/apply.
type ApplyVoucherRequest struct {
	Code        string   `json:"code"`
	OrderAmount int64    `json:"orderAmount"`
	ProductIDs  []string `json:"productIds"`
}

// VoucherRequest is the admin payload for creating or updating a voucher.
type VoucherRequest struct {
	Code          string      `json:"code"`
	Kind          VoucherKind `json:"kind"`
	DiscountValue int64       `json:"discountValue"`
	MaxDiscount   *int64      `json:"maxDiscount,omitempty"`
	MinOrderValue int64       `json:"minOrderValue"`
	StartDate     time.Time   `json:"startDate"`
	EndDate       time.Time   `json:"endDate"`
	UsageLimit    *int        `json:"usageLimit,omitempty"`
	IsActive      bool        `json:"isActive"`
}
