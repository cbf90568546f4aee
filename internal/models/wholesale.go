package models

import (
	"time"

	"github.com/gocql/gocql"
)

const (
	WholesaleStatusPending  = "pending"
	WholesaleStatusApproved = "approved"
	WholesaleStatusRejected = "rejected"
)

type WholesaleCustomer struct {
	ID                 gocql.UUID `json:"id" db:"customer_id"`
	BusinessName       string     `json:"business_name" db:"business_name"`
	ContactName        string     `json:"contact_name" db:"contact_name"`
	Email              string     `json:"email" db:"email"`
	Phone              string     `json:"phone" db:"phone"`
	DiscountPercentage float64    `json:"discount_percentage" db:"discount_percentage"`
	Status             string     `json:"status" db:"status"`
	Notes              string     `json:"notes" db:"notes"`
	CreatedAt          *time.Time `json:"created_at" db:"created_at"`
	UpdatedAt          *time.Time `json:"updated_at" db:"updated_at"`
}

type WholesalePricing struct {
	ID           gocql.UUID `json:"id" db:"pricing_id"`
	ProductID    gocql.UUID `json:"product_id" db:"product_id"`
	MinQuantity  int        `json:"min_quantity" db:"min_quantity"`
	PricePerUnit float64    `json:"price_per_unit" db:"price_per_unit"`
	CreatedAt    *time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    *time.Time `json:"updated_at" db:"updated_at"`
}
