package checkout

import (
	"context"
	"errors"
	"testing"

	"smartgear_back_end/internal/cart"
	"smartgear_back_end/internal/models"

	"github.com/gocql/gocql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockPlacer struct {
	orderErr error
	itemsErr error

	createdOrder *models.Order
	createdItems []models.OrderItem
	orderID      gocql.UUID
	itemsOrderID gocql.UUID
	orderCalls   int
	itemsCalls   int
}

func (m *mockPlacer) CreateOrder(_ context.Context, order *models.Order) (gocql.UUID, error) {
	m.orderCalls++
	if m.orderErr != nil {
		return gocql.UUID{}, m.orderErr
	}
	m.orderID = gocql.TimeUUID()
	m.createdOrder = order
	return m.orderID, nil
}

func (m *mockPlacer) CreateOrderItems(_ context.Context, orderID gocql.UUID, items []models.OrderItem) error {
	m.itemsCalls++
	m.itemsOrderID = orderID
	if m.itemsErr != nil {
		return m.itemsErr
	}
	m.createdItems = items
	return nil
}

func cartWithHeadset(quantity int) *cart.Store {
	s := cart.NewStore()
	s.AddItem(cart.Product{ID: "p1", Name: "Casque GX-7", Brand: "HyperSound", Price: 5000})
	s.UpdateQuantity("p1", quantity)
	return s
}

func flowAtPayment() *Flow {
	return &Flow{Step: StepPayment, Shipping: validShipping()}
}

func TestNextBlockedOnEmptyCart(t *testing.T) {
	f := NewFlow()
	err := f.Next(cart.NewStore())
	assert.ErrorIs(t, err, ErrEmptyCart)
	assert.Equal(t, StepCart, f.Step)
}

func TestLinearProgression(t *testing.T) {
	f := NewFlow()
	store := cartWithHeadset(1)

	require.NoError(t, f.Next(store))
	assert.Equal(t, StepShipping, f.Step)

	f.Shipping = validShipping()
	require.NoError(t, f.Next(store))
	assert.Equal(t, StepPayment, f.Step)

	// payment → confirmation ne passe que par PlaceOrder
	assert.ErrorIs(t, f.Next(store), ErrInvalidTransition)
	assert.Equal(t, StepPayment, f.Step)
}

func TestNextBlockedOnInvalidShipping(t *testing.T) {
	f := &Flow{Step: StepShipping}
	f.Shipping = validShipping()
	f.Shipping.Email = "pas-un-email"

	err := f.Next(cartWithHeadset(1))
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "email", verr.Field)
	assert.Equal(t, StepShipping, f.Step)
}

func TestBackNavigation(t *testing.T) {
	f := &Flow{Step: StepPayment}
	require.NoError(t, f.Back())
	assert.Equal(t, StepShipping, f.Step)
	require.NoError(t, f.Back())
	assert.Equal(t, StepCart, f.Step)
	assert.ErrorIs(t, f.Back(), ErrInvalidTransition)

	f.Step = StepConfirmation
	assert.ErrorIs(t, f.Back(), ErrInvalidTransition)
}

func TestConfirmationIsTerminalForTheOrder(t *testing.T) {
	f := &Flow{Step: StepConfirmation, OrderID: "cmd-1"}
	assert.ErrorIs(t, f.Next(cart.NewStore()), ErrConfirmationFinale)
	assert.Equal(t, StepConfirmation, f.Step)
	assert.Equal(t, "cmd-1", f.OrderID)
}

func TestNewCartRestartsFlowAfterConfirmation(t *testing.T) {
	f := &Flow{Step: StepConfirmation, Shipping: validShipping(), OrderID: "cmd-1"}

	// le client remplit un nouveau panier après sa commande : le tunnel repart
	require.NoError(t, f.Next(cartWithHeadset(1)))
	assert.Equal(t, StepShipping, f.Step)
	assert.Empty(t, f.OrderID)
	assert.Equal(t, ShippingInfo{}, f.Shipping)
}

func TestSeedEmailOnlyFillsEmptyField(t *testing.T) {
	f := NewFlow()
	f.SeedEmail("nuwan@example.com")
	assert.Equal(t, "nuwan@example.com", f.Shipping.Email)

	// la saisie du client n'est jamais écrasée
	f.Shipping.Email = "autre@example.com"
	f.SeedEmail("nuwan@example.com")
	assert.Equal(t, "autre@example.com", f.Shipping.Email)

	f.Shipping.Email = ""
	f.SeedEmail("")
	assert.Empty(t, f.Shipping.Email)
}

func TestPlaceOrderSuccess(t *testing.T) {
	f := flowAtPayment()
	store := cartWithHeadset(2) // 2 × 5 000 = 10 000
	placer := &mockPlacer{}
	uid := "user-42"

	order, err := f.PlaceOrder(context.Background(), store, placer, &uid)
	require.NoError(t, err)
	require.NotNil(t, order)

	assert.Equal(t, 10000.0, order.Subtotal)
	assert.Equal(t, 500.0, order.ShippingCost)
	assert.Equal(t, 10500.0, order.Total)
	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.Equal(t, "Nuwan Perera", order.CustomerName)
	assert.Equal(t, "12 Galle Road, Colombo, 00300, Sri Lanka", order.ShippingAddress)
	require.Len(t, order.Items, 1)
	assert.Equal(t, "Casque GX-7", order.Items[0].ProductName)
	assert.Equal(t, "HyperSound", order.Items[0].ProductBrand)
	assert.Equal(t, 2, order.Items[0].Quantity)
	assert.Equal(t, 5000.0, order.Items[0].PriceAtSale)

	// commande puis lignes, dans cet ordre, avec l'identifiant généré
	assert.Equal(t, 1, placer.orderCalls)
	assert.Equal(t, 1, placer.itemsCalls)
	assert.Equal(t, placer.orderID, placer.itemsOrderID)

	assert.True(t, store.IsEmpty())
	assert.Equal(t, StepConfirmation, f.Step)
	assert.Equal(t, placer.orderID.String(), f.OrderID)
}

func TestPlaceOrderFreeShippingAboveThreshold(t *testing.T) {
	f := flowAtPayment()
	store := cartWithHeadset(4) // 20 000 > 15 000 : livraison offerte
	placer := &mockPlacer{}

	order, err := f.PlaceOrder(context.Background(), store, placer, nil)
	require.NoError(t, err)
	assert.Equal(t, 0.0, order.ShippingCost)
	assert.Equal(t, 20000.0, order.Total)
	assert.Nil(t, order.UserID)
}

func TestPlaceOrderFailureKeepsState(t *testing.T) {
	f := flowAtPayment()
	store := cartWithHeadset(2)
	placer := &mockPlacer{orderErr: errors.New("réseau indisponible")}

	order, err := f.PlaceOrder(context.Background(), store, placer, nil)
	require.Error(t, err)
	assert.Nil(t, order)

	// l'étape et le panier sont préservés pour un nouvel essai
	assert.Equal(t, StepPayment, f.Step)
	assert.Equal(t, 2, store.TotalItems())
	assert.Empty(t, f.OrderID)
	assert.Equal(t, 0, placer.itemsCalls)
}

func TestPlaceOrderPartialWriteReportedDistinctly(t *testing.T) {
	f := flowAtPayment()
	store := cartWithHeadset(2)
	placer := &mockPlacer{itemsErr: errors.New("timeout")}

	_, err := f.PlaceOrder(context.Background(), store, placer, nil)
	var perr *PartialWriteError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, placer.orderID, perr.OrderID)

	assert.Equal(t, StepPayment, f.Step)
	assert.Equal(t, 2, store.TotalItems())
}

func TestPlaceOrderRevalidatesShipping(t *testing.T) {
	f := flowAtPayment()
	f.Shipping.Country = ""
	store := cartWithHeadset(1)
	placer := &mockPlacer{}

	_, err := f.PlaceOrder(context.Background(), store, placer, nil)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "country", verr.Field)

	// retour à l'étape livraison, aucune écriture émise
	assert.Equal(t, StepShipping, f.Step)
	assert.Equal(t, 0, placer.orderCalls)
}

func TestPlaceOrderRejectedOutsidePayment(t *testing.T) {
	f := &Flow{Step: StepShipping, Shipping: validShipping()}
	_, err := f.PlaceOrder(context.Background(), cartWithHeadset(1), &mockPlacer{}, nil)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestPlaceOrderRecomputesFromLiveCart(t *testing.T) {
	f := flowAtPayment()
	store := cartWithHeadset(2)

	// le panier est encore modifiable en revenant en arrière : le total doit
	// refléter l'état au moment du placement
	require.NoError(t, f.Back())
	store.UpdateQuantity("p1", 3)
	require.NoError(t, f.Next(store))

	placer := &mockPlacer{}
	order, err := f.PlaceOrder(context.Background(), store, placer, nil)
	require.NoError(t, err)
	assert.Equal(t, 15000.0, order.Subtotal)
	assert.Equal(t, 500.0, order.ShippingCost) // 15 000 n'est pas > 15 000
	assert.Equal(t, 15500.0, order.Total)
}
