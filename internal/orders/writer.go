package orders

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"smartgear_back_end/internal/database"
	"smartgear_back_end/internal/models"

	"github.com/gocql/gocql"
)

// ScyllaWriter implémente checkout.OrderPlacer sur le keyspace orders. Deux
// écritures distinctes : la commande (avec son snapshot JSON), puis les lignes
// adressables individuellement. Les lignes partent en batch logged pour être
// écrites ensemble ou pas du tout.
type ScyllaWriter struct{}

func NewScyllaWriter() *ScyllaWriter {
	return &ScyllaWriter{}
}

func (w *ScyllaWriter) CreateOrder(ctx context.Context, order *models.Order) (gocql.UUID, error) {
	session, err := database.GetOrdersSession()
	if err != nil {
		return gocql.UUID{}, fmt.Errorf("connexion keyspace orders: %w", err)
	}

	orderID := gocql.TimeUUID()
	now := time.Now()

	itemsJSON, err := json.Marshal(order.Items)
	if err != nil {
		return gocql.UUID{}, fmt.Errorf("sérialisation lignes: %w", err)
	}

	err = session.Query(`INSERT INTO orders (order_id, user_id, customer_name, customer_email, shipping_address, items_json, subtotal, shipping_cost, total, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		orderID, order.UserID, order.CustomerName, order.CustomerEmail, order.ShippingAddress,
		string(itemsJSON), order.Subtotal, order.ShippingCost, order.Total, order.Status, now, now).
		WithContext(ctx).Exec()
	if err != nil {
		return gocql.UUID{}, err
	}

	// Table d'index pour l'historique client, comme products_by_category
	if order.UserID != nil {
		err = session.Query(`INSERT INTO orders_by_user (user_id, created_at, order_id, total, status)
			VALUES (?, ?, ?, ?, ?)`,
			*order.UserID, now, orderID, order.Total, order.Status).
			WithContext(ctx).Exec()
		if err != nil {
			log.Printf("⚠️ Indexation orders_by_user échouée pour %s: %v", orderID, err)
		}
	}

	order.CreatedAt = &now
	order.UpdatedAt = &now
	return orderID, nil
}

func (w *ScyllaWriter) CreateOrderItems(ctx context.Context, orderID gocql.UUID, items []models.OrderItem) error {
	session, err := database.GetOrdersSession()
	if err != nil {
		return fmt.Errorf("connexion keyspace orders: %w", err)
	}

	now := time.Now()
	batch := session.NewBatch(gocql.LoggedBatch).WithContext(ctx)
	for _, item := range items {
		batch.Query(`INSERT INTO order_items (order_id, item_id, product_id, product_name, product_brand, quantity, price_at_sale, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			orderID, gocql.TimeUUID(), item.ProductID, item.ProductName, item.ProductBrand,
			item.Quantity, item.PriceAtSale, now)
	}

	return session.ExecuteBatch(batch)
}
