package model

import (
	"time"

	"github.com/google/uuid"
)

// Category is a product category managed through the admin console.
type Category struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// CategoryRequest is the admin payload for creating or renaming a category.
type CategoryRequest struct {
	Name string `json:"name"`
}
