// Package checkout holds the per-user checkout state: the immutable selected
// cart lines, the voucher slots and the reward-point toggle. State is mutated
// only by explicit user actions and discarded on successful order placement.
package checkout

import (
	"time"

	"shopkart/internal/model"
	"shopkart/internal/pricing"
	"shopkart/internal/voucher"

	"github.com/google/uuid"
)

// Session is one user's in-progress checkout. Lines are fixed when the
// session is created; vouchers and points are the only mutable parts.
type Session struct {
	ID          uuid.UUID        `json:"id"`
	UserID      uuid.UUID        `json:"userId"`
	Lines       []model.CartLine `json:"lines"`
	Slots       voucher.Slots    `json:"slots"`
	UsePoints   bool             `json:"usePoints"`
	PointsToUse int64            `json:"pointsToUse"`
	CreatedAt   time.Time        `json:"createdAt"`
	UpdatedAt   time.Time        `json:"updatedAt"`
}

// NewSession starts a checkout over the given selection.
func NewSession(userID uuid.UUID, lines []model.CartLine) *Session {
	now := time.Now()
	return &Session{
		ID:        uuid.New(),
		UserID:    userID,
		Lines:     lines,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Pricing carries the session-independent inputs to the total derivation.
type Pricing struct {
	ShippingCost    int64
	PointsAvailable int64
	PointValue      int64
}

// ApplyVoucher toggles a voucher in its slot and re-clamps the point spend,
// since a voucher change can move the redemption cap. Returns true if the
// voucher is selected afterwards.
func (s *Session) ApplyVoucher(v model.Voucher, p Pricing) bool {
	selected := s.Slots.Toggle(v)
	s.clampPoints(p)
	s.UpdatedAt = time.Now()
	return selected
}

// SetPoints switches the reward-point toggle and requested spend. The spend
// is clamped to the redemption cap on every edit.
func (s *Session) SetPoints(use bool, points int64, p Pricing) {
	s.UsePoints = use
	s.PointsToUse = points
	s.clampPoints(p)
	s.UpdatedAt = time.Now()
}

func (s *Session) clampPoints(p Pricing) {
	base := pricing.Subtotal(s.Lines) + p.ShippingCost
	max := pricing.MaxPointsToUse(base, p.PointsAvailable, p.PointValue)
	s.PointsToUse = pricing.ClampPoints(s.PointsToUse, max)
}

// Quote derives the current order total for display. The stored order is
// always recomputed server-side at submission; this value is advisory.
func (s *Session) Quote(p Pricing) model.OrderTotal {
	return pricing.Quote(pricing.QuoteInput{
		Lines:           s.Lines,
		ShippingCost:    p.ShippingCost,
		Regular:         s.Slots.Regular,
		FreeShipping:    s.Slots.FreeShipping,
		UsePoints:       s.UsePoints,
		PointsToUse:     s.PointsToUse,
		PointsAvailable: p.PointsAvailable,
		PointValue:      p.PointValue,
	})
}
