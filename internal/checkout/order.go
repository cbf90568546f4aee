package checkout

import (
	"context"
	"fmt"
	"log"

	"smartgear_back_end/internal/cart"
	"smartgear_back_end/internal/models"

	"github.com/gocql/gocql"
)

// OrderPlacer est le collaborateur d'écriture des commandes. Les deux écritures
// sont émises dans cet ordre : la commande d'abord, puis ses lignes qui
// référencent l'identifiant généré.
type OrderPlacer interface {
	CreateOrder(ctx context.Context, order *models.Order) (gocql.UUID, error)
	CreateOrderItems(ctx context.Context, orderID gocql.UUID, items []models.OrderItem) error
}

// PartialWriteError : la commande est écrite mais pas ses lignes. Cas signalé
// distinctement d'un échec complet pour que l'exploitation puisse réconcilier.
type PartialWriteError struct {
	OrderID gocql.UUID
	Err     error
}

func (e *PartialWriteError) Error() string {
	return fmt.Sprintf("commande %s créée mais lignes non enregistrées: %v", e.OrderID, e.Err)
}

func (e *PartialWriteError) Unwrap() error {
	return e.Err
}

// PlaceOrder effectue l'unique effet de bord du tunnel : la création de la
// commande. Revalide la livraison (retour à l'étape shipping si invalide),
// recalcule les montants depuis le panier vivant, écrit la commande puis ses
// lignes, vide le panier et passe en confirmation. Sur échec, l'étape reste
// payment et le panier est intact pour permettre un nouvel essai.
func (f *Flow) PlaceOrder(ctx context.Context, store *cart.Store, placer OrderPlacer, userID *string) (*models.Order, error) {
	if f.Step != StepPayment {
		return nil, ErrInvalidTransition
	}
	if verr := f.Shipping.Validate(); verr != nil {
		f.Step = StepShipping
		return nil, verr
	}
	if store.IsEmpty() {
		f.Step = StepCart
		return nil, ErrEmptyCart
	}

	subtotal := store.Subtotal()
	shippingCost := ShippingCost(subtotal)

	items := make([]models.OrderItem, 0, len(store.Items()))
	for _, line := range store.Items() {
		items = append(items, models.OrderItem{
			ProductID:    line.Product.ID,
			ProductName:  line.Product.Name,
			ProductBrand: line.Product.Brand,
			Quantity:     line.Quantity,
			PriceAtSale:  line.Product.Price,
		})
	}

	order := &models.Order{
		UserID:          userID,
		CustomerName:    f.Shipping.FullName,
		CustomerEmail:   f.Shipping.Email,
		ShippingAddress: f.Shipping.AddressLine(),
		Items:           items,
		Subtotal:        subtotal,
		ShippingCost:    shippingCost,
		Total:           subtotal + shippingCost,
		Status:          models.OrderStatusPending,
	}

	orderID, err := placer.CreateOrder(ctx, order)
	if err != nil {
		return nil, fmt.Errorf("création commande échouée: %w", err)
	}

	if err := placer.CreateOrderItems(ctx, orderID, items); err != nil {
		perr := &PartialWriteError{OrderID: orderID, Err: err}
		log.Printf("❌ Écriture partielle: %v", perr)
		return nil, perr
	}

	store.Clear()
	order.ID = orderID
	f.OrderID = orderID.String()
	f.Step = StepConfirmation
	return order, nil
}
