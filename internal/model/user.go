package model

import (
	"time"

	"github.com/google/uuid"
)

// User is a storefront customer. RewardPoints is the redeemable balance;
// each point is worth a fixed, configured amount of currency.
type User struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Name         string    `json:"name" db:"name"`
	Email        string    `json:"email" db:"email"`
	RewardPoints int64     `json:"rewardPoints" db:"reward_points"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time `json:"updatedAt" db:"updated_at"`
}
