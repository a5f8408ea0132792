package model

import (
	"time"

	"github.com/google/uuid"
)

// Address is a user's delivery address. Province, district and ward are
// validated against the static geo dataset.
type Address struct {
	ID        uuid.UUID `json:"id" db:"id"`
	UserID    uuid.UUID `json:"userId" db:"user_id"`
	Line      string    `json:"line" db:"line"`
	Ward      string    `json:"ward" db:"ward"`
	District  string    `json:"district" db:"district"`
	Province  string    `json:"province" db:"province"`
	Phone     string    `json:"phone" db:"phone"`
	IsDefault bool      `json:"isDefault" db:"is_default"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// AddressRequest is the payload for creating or updating an address.
type AddressRequest struct {
	Line      string `json:"line"`
	Ward      string `json:"ward"`
	District  string `json:"district"`
	Province  string `json:"province"`
	Phone     string `json:"phone"`
	IsDefault bool   `json:"isDefault"`
}
