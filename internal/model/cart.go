package model

// CartLine is a selected cart line item carried into checkout. UnitPrice is
// in the smallest currency unit; DiscountPercent is the product's own
// discount, not a voucher.
type CartLine struct {
	ProductID       string `json:"productId"`
	UnitPrice       int64  `json:"unitPrice"`
	DiscountPercent int    `json:"discountPercent"`
	Quantity        int    `json:"quantity"`
}

// OrderTotal is the derived checkout breakdown. It is recomputed from raw
// inputs on every change and never persisted on its own; the stored order
// carries the authoritative server-side copy.
type OrderTotal struct {
	Subtotal        int64 `json:"subtotal"`
	ShippingCost    int64 `json:"shippingCost"`
	VoucherDiscount int64 `json:"voucherDiscount"`
	PointsDiscount  int64 `json:"pointsDiscount"`
	PointsUsed      int64 `json:"pointsUsed"`
	FinalTotal      int64 `json:"finalTotal"`
}
