package orders

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"smartgear_back_end/internal/database"
	"smartgear_back_end/internal/models"

	"github.com/gocql/gocql"
)

func scanOrder(order *models.Order, itemsJSON *string) []interface{} {
	return []interface{}{
		&order.ID, &order.UserID, &order.CustomerName, &order.CustomerEmail,
		&order.ShippingAddress, itemsJSON, &order.Subtotal, &order.ShippingCost,
		&order.Total, &order.Status, &order.CreatedAt, &order.UpdatedAt,
	}
}

const orderColumns = `order_id, user_id, customer_name, customer_email, shipping_address, items_json, subtotal, shipping_cost, total, status, created_at, updated_at`

// GetOrder relit une commande complète, snapshot des lignes inclus.
func GetOrder(ctx context.Context, orderID gocql.UUID) (*models.Order, error) {
	session, err := database.GetOrdersSession()
	if err != nil {
		return nil, err
	}

	var order models.Order
	var itemsJSON string
	err = session.Query(`SELECT `+orderColumns+` FROM orders WHERE order_id = ?`, orderID).
		WithContext(ctx).Scan(scanOrder(&order, &itemsJSON)...)
	if err != nil {
		return nil, err
	}

	if itemsJSON != "" {
		if err := json.Unmarshal([]byte(itemsJSON), &order.Items); err != nil {
			return nil, fmt.Errorf("snapshot lignes illisible pour %s: %w", orderID, err)
		}
	}
	return &order, nil
}

// ListByUser retourne l'historique d'un client, plus récent en premier.
func ListByUser(ctx context.Context, userID string) ([]models.Order, error) {
	session, err := database.GetOrdersSession()
	if err != nil {
		return nil, err
	}

	iter := session.Query(`SELECT order_id FROM orders_by_user WHERE user_id = ? ORDER BY created_at DESC`, userID).
		WithContext(ctx).Iter()

	var ids []gocql.UUID
	var id gocql.UUID
	for iter.Scan(&id) {
		ids = append(ids, id)
	}
	if err := iter.Close(); err != nil {
		return nil, err
	}

	orders := make([]models.Order, 0, len(ids))
	for _, oid := range ids {
		order, err := GetOrder(ctx, oid)
		if err != nil {
			continue // commande orpheline dans l'index, on la saute
		}
		orders = append(orders, *order)
	}
	return orders, nil
}

// ListAll retourne toutes les commandes pour le back-office.
func ListAll(ctx context.Context) ([]models.Order, error) {
	session, err := database.GetOrdersSession()
	if err != nil {
		return nil, err
	}

	iter := session.Query(`SELECT ` + orderColumns + ` FROM orders`).WithContext(ctx).Iter()

	var orders []models.Order
	for {
		var order models.Order
		var itemsJSON string
		if !iter.Scan(scanOrder(&order, &itemsJSON)...) {
			break
		}
		if itemsJSON != "" {
			_ = json.Unmarshal([]byte(itemsJSON), &order.Items)
		}
		orders = append(orders, order)
	}
	if err := iter.Close(); err != nil {
		return nil, err
	}
	return orders, nil
}

// UpdateStatus change le statut d'une commande (transition pilotée par l'admin).
func UpdateStatus(ctx context.Context, orderID gocql.UUID, status string) error {
	if !models.IsValidOrderStatus(status) {
		return fmt.Errorf("statut inconnu: %s", status)
	}

	session, err := database.GetOrdersSession()
	if err != nil {
		return err
	}

	return session.Query(`UPDATE orders SET status = ?, updated_at = ? WHERE order_id = ?`,
		status, time.Now(), orderID).WithContext(ctx).Exec()
}

// Delete supprime la commande et ses lignes.
func Delete(ctx context.Context, orderID gocql.UUID) error {
	session, err := database.GetOrdersSession()
	if err != nil {
		return err
	}

	if err := session.Query(`DELETE FROM order_items WHERE order_id = ?`, orderID).
		WithContext(ctx).Exec(); err != nil {
		return err
	}
	return session.Query(`DELETE FROM orders WHERE order_id = ?`, orderID).
		WithContext(ctx).Exec()
}

// ListItems retourne les lignes individuelles d'une commande.
func ListItems(ctx context.Context, orderID gocql.UUID) ([]models.OrderItem, error) {
	session, err := database.GetOrdersSession()
	if err != nil {
		return nil, err
	}

	iter := session.Query(`SELECT order_id, item_id, product_id, product_name, product_brand, quantity, price_at_sale, created_at
		FROM order_items WHERE order_id = ?`, orderID).WithContext(ctx).Iter()

	var items []models.OrderItem
	for {
		var item models.OrderItem
		if !iter.Scan(&item.OrderID, &item.ID, &item.ProductID, &item.ProductName,
			&item.ProductBrand, &item.Quantity, &item.PriceAtSale, &item.CreatedAt) {
			break
		}
		items = append(items, item)
	}
	if err := iter.Close(); err != nil {
		return nil, err
	}
	return items, nil
}
