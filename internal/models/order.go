package models

import (
	"time"

	"github.com/gocql/gocql"
)

// Statuts possibles d'une commande. Les transitions sont pilotées par
// l'administration après création, jamais par le client.
const (
	OrderStatusPending    = "pending"
	OrderStatusProcessing = "processing"
	OrderStatusShipped    = "shipped"
	OrderStatusDelivered  = "delivered"
	OrderStatusCancelled  = "cancelled"
)

func IsValidOrderStatus(s string) bool {
	switch s {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusShipped,
		OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

type Order struct {
	ID              gocql.UUID  `json:"id" db:"order_id"`
	UserID          *string     `json:"user_id,omitempty" db:"user_id"`
	CustomerName    string      `json:"customer_name" db:"customer_name"`
	CustomerEmail   string      `json:"customer_email" db:"customer_email"`
	ShippingAddress string      `json:"shipping_address" db:"shipping_address"`
	Items           []OrderItem `json:"items" db:"items"`
	Subtotal        float64     `json:"subtotal" db:"subtotal"`
	ShippingCost    float64     `json:"shipping_cost" db:"shipping_cost"`
	Total           float64     `json:"total" db:"total"`
	Status          string      `json:"status" db:"status"`
	CreatedAt       *time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt       *time.Time  `json:"updated_at" db:"updated_at"`
}

// OrderItem est le snapshot d'une ligne au moment de la vente : le prix et la
// marque sont figés, pas relus depuis le catalogue.
type OrderItem struct {
	ID           gocql.UUID `json:"id" db:"item_id"`
	OrderID      gocql.UUID `json:"order_id" db:"order_id"`
	ProductID    string     `json:"product_id" db:"product_id"`
	ProductName  string     `json:"product_name" db:"product_name"`
	ProductBrand string     `json:"product_brand" db:"product_brand"`
	Quantity     int        `json:"quantity" db:"quantity"`
	PriceAtSale  float64    `json:"price_at_sale" db:"price_at_sale"`
	CreatedAt    *time.Time `json:"created_at" db:"created_at"`
}
