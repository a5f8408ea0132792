package model

import (
	"time"

	"github.com/google/uuid"
)

// OrderStatus tracks an order through its lifecycle.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusPaid      OrderStatus = "paid"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// PaymentMethod identifies the terminal checkout path.
type PaymentMethod string

const (
	PaymentCashOnDelivery PaymentMethod = "cash_on_delivery"
	PaymentOnline         PaymentMethod = "online"
)

// Order represents a placed order. All pricing fields are the server-side
// recomputation; client-supplied amounts are never stored.
type Order struct {
	ID                      uuid.UUID     `json:"id" db:"id"`
	UserID                  uuid.UUID     `json:"userId" db:"user_id"`
	AddressID               uuid.UUID     `json:"addressId" db:"address_id"`
	Status                  OrderStatus   `json:"status" db:"status"`
	PaymentMethod           PaymentMethod `json:"paymentMethod" db:"payment_method"`
	PaymentSessionID        *string       `json:"paymentSessionId,omitempty" db:"payment_session_id"`
	VoucherCode             *string       `json:"voucherCode,omitempty" db:"voucher_code"`
	FreeShippingVoucherCode *string       `json:"freeShippingVoucherCode,omitempty" db:"free_shipping_voucher_code"`
	Subtotal                int64         `json:"subtotal" db:"subtotal"`
	ShippingCost            int64         `json:"shippingCost" db:"shipping_cost"`
	VoucherDiscount         int64         `json:"voucherDiscount" db:"voucher_discount"`
	PointsDiscount          int64         `json:"pointsDiscount" db:"points_discount"`
	PointsUsed              int64         `json:"pointsUsed" db:"points_used"`
	FinalTotal              int64         `json:"finalTotal" db:"final_total"`
	CreatedAt               time.Time     `json:"createdAt" db:"created_at"`
	UpdatedAt               time.Time     `json:"updatedAt" db:"updated_at"`
}

// OrderItem is a line item priced from the catalogue at order time.
type OrderItem struct {
	ID              uuid.UUID `json:"-" db:"id"`
	OrderID         uuid.UUID `json:"-" db:"order_id"`
	ProductID       string    `json:"productId" db:"product_id"`
	Quantity        int       `json:"quantity" db:"quantity"`
	UnitPrice       int64     `json:"unitPrice" db:"unit_price"`
	DiscountPercent int       `json:"discountPercent" db:"discount_percent"`
}

// OrderItemRequest is a single selected item in an order request. Only the
// product ID and quantity are taken from the client; prices come from the
// catalogue.
type OrderItemRequest struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// OrderRequest is the payload for both order endpoints. SubTotalAmt and
// TotalAmt are the client's display estimate and are accepted but ignored
// for pricing; the server recomputes everything from raw inputs.
type OrderRequest struct {
	ListItems               []OrderItemRequest `json:"list_items"`
	AddressID               uuid.UUID          `json:"addressId"`
	SubTotalAmt             int64              `json:"subTotalAmt"`
	TotalAmt                int64              `json:"totalAmt"`
	PointsToUse             int64              `json:"pointsToUse"`
	VoucherCode             string             `json:"voucherCode"`
	FreeShippingVoucherCode string             `json:"freeShippingVoucherCode"`
}

// OrderResponse is returned by the cash-on-delivery path.
type OrderResponse struct {
	ID    uuid.UUID   `json:"id"`
	Total OrderTotal  `json:"total"`
	Items []OrderItem `json:"items"`
}

// CheckoutResponse is returned by the online payment path. Either IsFreeOrder
// is set (the order was fully covered by vouchers/points) or ID carries the
// hosted payment session for client-side redirect.
type CheckoutResponse struct {
	IsFreeOrder bool   `json:"isFreeOrder,omitempty"`
	Message     string `json:"message,omitempty"`
	ID          string `json:"id,omitempty"`
}
