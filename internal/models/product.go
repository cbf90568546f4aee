package models

import (
	"time"

	"github.com/gocql/gocql"
)

type Product struct {
	ID            gocql.UUID `json:"id" db:"product_id"`
	Name          string     `json:"name" db:"name"`
	Description   string     `json:"description" db:"description"`
	Brand         string     `json:"brand" db:"brand"`
	Category      string     `json:"category" db:"category"`
	Price         float64    `json:"price" db:"price"`
	OriginalPrice *float64   `json:"original_price,omitempty" db:"original_price"`
	StockCount    int        `json:"stock_count" db:"stock_count"`
	ImageURLs     []string   `json:"image_urls" db:"image_urls"`
	Featured      bool       `json:"featured" db:"featured"`
	Trending      bool       `json:"trending" db:"trending"`
	NewArrival    bool       `json:"new_arrival" db:"new_arrival"`
	Compatibility []string   `json:"compatibility" db:"compatibility"`
	CreatedAt     *time.Time `json:"created_at" db:"created_at"`
	UpdatedAt     *time.Time `json:"updated_at" db:"updated_at"`
}
