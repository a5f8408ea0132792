package pricing

import (
	"testing"

	"shopkart/internal/model"

	"github.com/stretchr/testify/assert"
)

func int64Ptr(v int64) *int64 { return &v }

func TestLineTotal(t *testing.T) {
	tests := []struct {
		name            string
		unitPrice       int64
		quantity        int
		discountPercent int
		expected        int64
	}{
		{name: "No discount", unitPrice: 100_000, quantity: 2, discountPercent: 0, expected: 200_000},
		{name: "Ten percent off", unitPrice: 100_000, quantity: 2, discountPercent: 10, expected: 180_000},
		{name: "Rounding floors", unitPrice: 999, quantity: 1, discountPercent: 10, expected: 899},
		{name: "Full discount", unitPrice: 50_000, quantity: 1, discountPercent: 100, expected: 0},
		{name: "Discount above 100 clamps", unitPrice: 50_000, quantity: 1, discountPercent: 150, expected: 0},
		{name: "Negative discount clamps", unitPrice: 50_000, quantity: 1, discountPercent: -5, expected: 50_000},
		{name: "Zero quantity", unitPrice: 50_000, quantity: 0, discountPercent: 0, expected: 0},
		{name: "Negative price", unitPrice: -100, quantity: 1, discountPercent: 0, expected: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, LineTotal(tt.unitPrice, tt.quantity, tt.discountPercent))
		})
	}
}

func TestSubtotal(t *testing.T) {
	lines := []model.CartLine{
		{ProductID: "P001", UnitPrice: 100_000, Quantity: 2, DiscountPercent: 0},
		{ProductID: "P002", UnitPrice: 50_000, Quantity: 1, DiscountPercent: 20},
	}
	assert.Equal(t, int64(240_000), Subtotal(lines))
	assert.Equal(t, int64(0), Subtotal(nil))
}

func TestRegularDiscount(t *testing.T) {
	tests := []struct {
		name     string
		voucher  *model.Voucher
		base     int64
		expected int64
	}{
		{
			name:     "Nil voucher",
			voucher:  nil,
			base:     100_000,
			expected: 0,
		},
		{
			name:     "Percentage capped by max discount",
			voucher:  &model.Voucher{Kind: model.VoucherPercentage, DiscountValue: 10, MaxDiscount: int64Ptr(50_000)},
			base:     1_000_000,
			expected: 50_000,
		},
		{
			name:     "Percentage under the cap",
			voucher:  &model.Voucher{Kind: model.VoucherPercentage, DiscountValue: 10, MaxDiscount: int64Ptr(50_000)},
			base:     300_000,
			expected: 30_000,
		},
		{
			name:     "Percentage uncapped",
			voucher:  &model.Voucher{Kind: model.VoucherPercentage, DiscountValue: 25},
			base:     400_000,
			expected: 100_000,
		},
		{
			name:     "Fixed exceeding base clamps to base",
			voucher:  &model.Voucher{Kind: model.VoucherFixed, DiscountValue: 200_000},
			base:     150_000,
			expected: 150_000,
		},
		{
			name:     "Fixed below base",
			voucher:  &model.Voucher{Kind: model.VoucherFixed, DiscountValue: 30_000},
			base:     150_000,
			expected: 30_000,
		},
		{
			name:     "Non-positive discount value",
			voucher:  &model.Voucher{Kind: model.VoucherPercentage, DiscountValue: 0},
			base:     150_000,
			expected: 0,
		},
		{
			name:     "Non-positive max discount means uncapped",
			voucher:  &model.Voucher{Kind: model.VoucherPercentage, DiscountValue: 10, MaxDiscount: int64Ptr(0)},
			base:     1_000_000,
			expected: 100_000,
		},
		{
			name:     "Free shipping kind contributes nothing here",
			voucher:  &model.Voucher{Kind: model.VoucherFreeShipping, DiscountValue: 1},
			base:     150_000,
			expected: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, RegularDiscount(tt.voucher, tt.base))
		})
	}
}

func TestMaxPointsToUse(t *testing.T) {
	tests := []struct {
		name            string
		base            int64
		pointsAvailable int64
		pointValue      int64
		expected        int64
	}{
		{name: "Capped by half the order", base: 200_000, pointsAvailable: 10_000, pointValue: 100, expected: 1_000},
		{name: "Capped by balance", base: 2_000_000, pointsAvailable: 500, pointValue: 100, expected: 500},
		{name: "Zero point value", base: 200_000, pointsAvailable: 10_000, pointValue: 0, expected: 0},
		{name: "Zero balance", base: 200_000, pointsAvailable: 0, pointValue: 100, expected: 0},
		{name: "Zero base", base: 0, pointsAvailable: 10_000, pointValue: 100, expected: 0},
		{name: "Floor of half divided by value", base: 333, pointsAvailable: 10_000, pointValue: 100, expected: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MaxPointsToUse(tt.base, tt.pointsAvailable, tt.pointValue)
			assert.Equal(t, tt.expected, got)
			assert.GreaterOrEqual(t, got, int64(0))
		})
	}
}

func TestClampPoints(t *testing.T) {
	assert.Equal(t, int64(0), ClampPoints(-5, 100))
	assert.Equal(t, int64(100), ClampPoints(250, 100))
	assert.Equal(t, int64(42), ClampPoints(42, 100))
}

func TestQuote_FreeShippingWaivesShippingOnly(t *testing.T) {
	// 500,000 of goods, 30,000 shipping, free-shipping voucher, no points.
	total := Quote(QuoteInput{
		Lines: []model.CartLine{
			{ProductID: "P001", UnitPrice: 500_000, Quantity: 1},
		},
		ShippingCost: 30_000,
		FreeShipping: &model.Voucher{Code: "FREESHIP", Kind: model.VoucherFreeShipping},
		PointValue:   100,
	})

	assert.Equal(t, int64(500_000), total.Subtotal)
	assert.Equal(t, int64(30_000), total.ShippingCost)
	assert.Equal(t, int64(30_000), total.VoucherDiscount)
	assert.Equal(t, int64(0), total.PointsDiscount)
	assert.Equal(t, int64(500_000), total.FinalTotal)
}

func TestQuote_PointsRedemption(t *testing.T) {
	// 200,000 order, 10,000 points at 100 each: cap is 1,000 points.
	total := Quote(QuoteInput{
		Lines: []model.CartLine{
			{ProductID: "P001", UnitPrice: 200_000, Quantity: 1},
		},
		UsePoints:       true,
		PointsToUse:     1_000,
		PointsAvailable: 10_000,
		PointValue:      100,
	})

	assert.Equal(t, int64(1_000), total.PointsUsed)
	assert.Equal(t, int64(100_000), total.PointsDiscount)
	assert.Equal(t, int64(100_000), total.FinalTotal)
}

func TestQuote_PointsRequestAboveCapIsClamped(t *testing.T) {
	total := Quote(QuoteInput{
		Lines: []model.CartLine{
			{ProductID: "P001", UnitPrice: 200_000, Quantity: 1},
		},
		UsePoints:       true,
		PointsToUse:     5_000,
		PointsAvailable: 10_000,
		PointValue:      100,
	})

	// Cap is 1,000 points (half of 200,000 at 100 per point).
	assert.Equal(t, int64(1_000), total.PointsUsed)
	assert.Equal(t, int64(100_000), total.FinalTotal)
}

func TestQuote_PointsToggleOff(t *testing.T) {
	total := Quote(QuoteInput{
		Lines: []model.CartLine{
			{ProductID: "P001", UnitPrice: 200_000, Quantity: 1},
		},
		UsePoints:       false,
		PointsToUse:     1_000,
		PointsAvailable: 10_000,
		PointValue:      100,
	})

	assert.Equal(t, int64(0), total.PointsDiscount)
	assert.Equal(t, int64(200_000), total.FinalTotal)
}

func TestQuote_NeverNegative(t *testing.T) {
	// Stack every discount beyond the order amount; the total must clamp
	// at zero rather than go negative.
	total := Quote(QuoteInput{
		Lines: []model.CartLine{
			{ProductID: "P001", UnitPrice: 100_000, Quantity: 1},
		},
		ShippingCost:    30_000,
		Regular:         &model.Voucher{Code: "BIG", Kind: model.VoucherFixed, DiscountValue: 500_000},
		FreeShipping:    &model.Voucher{Code: "FREESHIP", Kind: model.VoucherFreeShipping},
		UsePoints:       true,
		PointsToUse:     10_000,
		PointsAvailable: 10_000,
		PointValue:      100,
	})

	assert.Equal(t, int64(0), total.FinalTotal)
}

func TestQuote_CombinedVouchers(t *testing.T) {
	// A free-shipping voucher and a regular voucher apply together.
	total := Quote(QuoteInput{
		Lines: []model.CartLine{
			{ProductID: "P001", UnitPrice: 1_000_000, Quantity: 1},
		},
		ShippingCost: 30_000,
		Regular:      &model.Voucher{Code: "TEN", Kind: model.VoucherPercentage, DiscountValue: 10, MaxDiscount: int64Ptr(50_000)},
		FreeShipping: &model.Voucher{Code: "FREESHIP", Kind: model.VoucherFreeShipping},
	})

	assert.Equal(t, int64(80_000), total.VoucherDiscount)
	assert.Equal(t, int64(950_000), total.FinalTotal)
}
