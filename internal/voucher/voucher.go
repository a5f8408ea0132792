// Package voucher implements voucher slot selection and eligibility rules.
// A checkout holds at most one free-shipping voucher and one regular
// (percentage or fixed) voucher at a time.
package voucher

import (
	"time"

	"shopkart/internal/model"
)

// Slots holds the currently selected vouchers. Either slot may be nil.
type Slots struct {
	Regular      *model.Voucher `json:"regular"`
	FreeShipping *model.Voucher `json:"freeShipping"`
}

// Toggle applies a voucher to its slot. Applying a voucher into an occupied
// slot replaces the occupant; re-applying the voucher already in the slot
// clears it. Identity is the normalized code. Returns true if the voucher is
// selected after the call.
func (s *Slots) Toggle(v model.Voucher) bool {
	slot := &s.Regular
	if v.IsFreeShipping() {
		slot = &s.FreeShipping
	}

	code := model.NormalizeVoucherCode(v.Code)
	if *slot != nil && model.NormalizeVoucherCode((*slot).Code) == code {
		*slot = nil
		return false
	}
	*slot = &v
	return true
}

// HasCode reports whether either slot currently holds the given code.
func (s *Slots) HasCode(code string) bool {
	code = model.NormalizeVoucherCode(code)
	if s.Regular != nil && model.NormalizeVoucherCode(s.Regular.Code) == code {
		return true
	}
	if s.FreeShipping != nil && model.NormalizeVoucherCode(s.FreeShipping.Code) == code {
		return true
	}
	return false
}

// Remove clears whichever slot holds the given code, if any.
func (s *Slots) Remove(code string) {
	code = model.NormalizeVoucherCode(code)
	if s.Regular != nil && model.NormalizeVoucherCode(s.Regular.Code) == code {
		s.Regular = nil
	}
	if s.FreeShipping != nil && model.NormalizeVoucherCode(s.FreeShipping.Code) == code {
		s.FreeShipping = nil
	}
}

// Codes returns the selected regular and free-shipping codes, nil when a
// slot is empty. Used when handing raw inputs to order submission.
func (s *Slots) Codes() (regular, freeShipping *string) {
	if s.Regular != nil {
		c := s.Regular.Code
		regular = &c
	}
	if s.FreeShipping != nil {
		c := s.FreeShipping.Code
		freeShipping = &c
	}
	return regular, freeShipping
}

// Partition splits candidate vouchers into active (startDate <= now) and
// upcoming (startDate > now). Upcoming vouchers are informational only and
// cannot be applied.
func Partition(vouchers []model.Voucher, now time.Time) (active, upcoming []model.Voucher) {
	for _, v := range vouchers {
		if v.StartDate.After(now) {
			upcoming = append(upcoming, v)
		} else {
			active = append(active, v)
		}
	}
	return active, upcoming
}

// Validate checks whether a voucher can be applied to an order of the given
// amount at the given time. It returns a domain error naming the first rule
// the voucher fails.
func Validate(v *model.Voucher, orderAmount int64, now time.Time) error {
	if v == nil {
		return model.ErrVoucherNotFound
	}
	if !v.IsActive {
		return model.ErrVoucherInactive
	}
	if v.StartDate.After(now) {
		return model.ErrVoucherNotStarted
	}
	if v.EndDate.Before(now) {
		return model.ErrVoucherExpired
	}
	if orderAmount < v.MinOrderValue {
		return model.ErrVoucherMinOrder
	}
	if v.UsageLimit != nil && v.UsedCount >= *v.UsageLimit {
		return model.ErrVoucherExhausted
	}
	return nil
}
