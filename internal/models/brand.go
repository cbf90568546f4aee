package models

import (
	"time"

	"github.com/gocql/gocql"
)

type Brand struct {
	ID                gocql.UUID `json:"id" db:"brand_id"`
	Name              string     `json:"name" db:"name"`
	Description       string     `json:"description" db:"description"`
	LogoURL           string     `json:"logo_url" db:"logo_url"`
	IsFeatured        bool       `json:"is_featured" db:"is_featured"`
	FlashSaleActive   bool       `json:"flash_sale_active" db:"flash_sale_active"`
	FlashSaleDiscount float64    `json:"flash_sale_discount" db:"flash_sale_discount"`
	CreatedAt         *time.Time `json:"created_at" db:"created_at"`
	UpdatedAt         *time.Time `json:"updated_at" db:"updated_at"`
}
