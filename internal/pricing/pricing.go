// Package pricing implements the checkout total derivation: line totals,
// voucher discounts, reward-point caps and the final payable amount. All
// functions are pure and all amounts are integers in the smallest currency
// unit.
package pricing

import (
	"shopkart/internal/model"
)

// LineTotal returns the effective price of a cart line:
// unitPrice x quantity x (100 - discountPercent) / 100, floored.
// Out-of-range discounts are clamped to [0, 100].
func LineTotal(unitPrice int64, quantity, discountPercent int) int64 {
	if unitPrice <= 0 || quantity <= 0 {
		return 0
	}
	if discountPercent < 0 {
		discountPercent = 0
	}
	if discountPercent > 100 {
		discountPercent = 100
	}
	return unitPrice * int64(quantity) * int64(100-discountPercent) / 100
}

// Subtotal sums the effective prices of the selected cart lines.
func Subtotal(lines []model.CartLine) int64 {
	var total int64
	for _, line := range lines {
		total += LineTotal(line.UnitPrice, line.Quantity, line.DiscountPercent)
	}
	return total
}

// RegularDiscount returns the discount a percentage or fixed voucher takes
// off the given base amount. The result is clamped to [0, base]; a
// non-positive discount value or max cap yields no discount beyond the
// clamps. Free-shipping vouchers always return zero here.
func RegularDiscount(v *model.Voucher, base int64) int64 {
	if v == nil || base <= 0 || v.DiscountValue <= 0 {
		return 0
	}

	var discount int64
	switch v.Kind {
	case model.VoucherPercentage:
		discount = base * v.DiscountValue / 100
		if v.MaxDiscount != nil && *v.MaxDiscount > 0 && discount > *v.MaxDiscount {
			discount = *v.MaxDiscount
		}
	case model.VoucherFixed:
		discount = v.DiscountValue
	default:
		return 0
	}

	if discount < 0 {
		discount = 0
	}
	if discount > base {
		discount = base
	}
	return discount
}

// MaxPointsToUse returns the redemption cap: the user may spend at most
// half the order amount in points, and never more than their balance.
func MaxPointsToUse(base, pointsAvailable, pointValue int64) int64 {
	if base <= 0 || pointsAvailable <= 0 || pointValue <= 0 {
		return 0
	}
	cap := base / 2 / pointValue
	if cap > pointsAvailable {
		cap = pointsAvailable
	}
	return cap
}

// ClampPoints constrains a requested point spend to [0, max].
func ClampPoints(points, max int64) int64 {
	if points < 0 {
		return 0
	}
	if points > max {
		return max
	}
	return points
}

// QuoteInput carries everything the total derivation depends on. Regular
// and FreeShipping are the currently selected voucher slots; either may be
// nil.
type QuoteInput struct {
	Lines           []model.CartLine
	ShippingCost    int64
	Regular         *model.Voucher
	FreeShipping    *model.Voucher
	UsePoints       bool
	PointsToUse     int64
	PointsAvailable int64
	PointValue      int64
}

// Quote derives the order total. The discount base is the goods subtotal
// plus shipping; a free-shipping voucher refunds the shipping portion and a
// regular voucher discounts the base. Points are clamped to the redemption
// cap before being converted to currency. The final total never goes
// negative.
func Quote(in QuoteInput) model.OrderTotal {
	goods := Subtotal(in.Lines)
	shipping := in.ShippingCost
	if shipping < 0 {
		shipping = 0
	}
	base := goods + shipping

	var voucherDiscount int64
	if in.FreeShipping != nil && in.FreeShipping.IsFreeShipping() {
		voucherDiscount += shipping
	}
	voucherDiscount += RegularDiscount(in.Regular, base)

	var pointsUsed, pointsDiscount int64
	if in.UsePoints {
		pointsUsed = ClampPoints(in.PointsToUse, MaxPointsToUse(base, in.PointsAvailable, in.PointValue))
		pointsDiscount = pointsUsed * in.PointValue
	}

	final := base - voucherDiscount - pointsDiscount
	if final < 0 {
		final = 0
	}

	return model.OrderTotal{
		Subtotal:        goods,
		ShippingCost:    shipping,
		VoucherDiscount: voucherDiscount,
		PointsDiscount:  pointsDiscount,
		PointsUsed:      pointsUsed,
		FinalTotal:      final,
	}
}
