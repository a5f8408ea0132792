package model

import (
	"time"

	"github.com/google/uuid"
)

// Product represents a catalogue product. Price is in the smallest currency
// unit; DiscountPercent is the product's standing discount.
type Product struct {
	ID              string    `json:"id" db:"id"`
	Name            string    `json:"name" db:"name"`
	Price           int64     `json:"price" db:"price"`
	DiscountPercent int       `json:"discountPercent" db:"discount_percent"`
	CategoryID      uuid.UUID `json:"categoryId" db:"category_id"`
	CreatedAt       time.Time `json:"createdAt" db:"created_at"`
}

// ProductFilter narrows a product listing. Zero values mean "no filter";
// MaxPrice of zero is treated as unbounded.
type ProductFilter struct {
	CategoryID *uuid.UUID
	MinPrice   int64
	MaxPrice   int64
	Limit      int
	Offset     int
}
