package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func casque() Product {
	return Product{ID: "p1", Name: "Casque GX-7", Brand: "HyperSound", Price: 5000}
}

func clavier() Product {
	return Product{ID: "p2", Name: "Clavier MK-Pro", Brand: "KeyForge", Price: 12500}
}

// Vérifie l'invariant après chaque mutation : subtotal = Σ (prix × quantité),
// totalItems = Σ quantités.
func checkInvariant(t *testing.T, s *Store) {
	t.Helper()
	subtotal := 0.0
	count := 0
	for _, it := range s.Items() {
		subtotal += it.Product.Price * float64(it.Quantity)
		count += it.Quantity
	}
	assert.Equal(t, subtotal, s.Subtotal())
	assert.Equal(t, count, s.TotalItems())
}

func TestAddItemTwiceIncrementsQuantity(t *testing.T) {
	s := NewStore()
	s.AddItem(casque())
	s.AddItem(casque())

	items := s.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Quantity)
	assert.Equal(t, 2, s.TotalItems())
	assert.Equal(t, 10000.0, s.Subtotal())
	checkInvariant(t, s)
}

func TestAddDistinctProducts(t *testing.T) {
	s := NewStore()
	s.AddItem(casque())
	s.AddItem(clavier())
	s.AddItem(casque())

	require.Len(t, s.Items(), 2)
	assert.Equal(t, 3, s.TotalItems())
	assert.Equal(t, 2*5000.0+12500.0, s.Subtotal())
	checkInvariant(t, s)
}

func TestUpdateQuantitySets(t *testing.T) {
	s := NewStore()
	s.AddItem(casque())
	s.UpdateQuantity("p1", 5)

	items := s.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 5, items[0].Quantity)
	assert.Equal(t, 25000.0, s.Subtotal())
	checkInvariant(t, s)
}

func TestUpdateQuantityZeroRemovesLine(t *testing.T) {
	s := NewStore()
	s.AddItem(casque())
	s.UpdateQuantity("p1", 0)
	assert.Empty(t, s.Items())

	s.AddItem(casque())
	s.UpdateQuantity("p1", -3)
	assert.Empty(t, s.Items())
	checkInvariant(t, s)
}

func TestRemoveItemAbsentIsNoop(t *testing.T) {
	s := NewStore()
	s.AddItem(casque())
	s.RemoveItem("inconnu")

	require.Len(t, s.Items(), 1)
	checkInvariant(t, s)
}

func TestClear(t *testing.T) {
	s := NewStore()
	s.AddItem(casque())
	s.AddItem(clavier())
	s.UpdateQuantity("p1", 7)

	s.Clear()
	assert.Equal(t, 0, s.TotalItems())
	assert.Equal(t, 0.0, s.Subtotal())
	assert.True(t, s.IsEmpty())
}

func TestInvariantOverMixedSequence(t *testing.T) {
	s := NewStore()
	s.AddItem(casque())
	checkInvariant(t, s)
	s.AddItem(clavier())
	checkInvariant(t, s)
	s.UpdateQuantity("p2", 4)
	checkInvariant(t, s)
	s.RemoveItem("p1")
	checkInvariant(t, s)
	s.AddItem(casque())
	checkInvariant(t, s)
	s.UpdateQuantity("p1", -1)
	checkInvariant(t, s)

	require.Len(t, s.Items(), 1)
	assert.Equal(t, 4*12500.0, s.Subtotal())
}

func TestNewStoreFromSkipsInvalidLines(t *testing.T) {
	s := NewStoreFrom([]LineItem{
		{Product: casque(), Quantity: 2},
		{Product: Product{}, Quantity: 3},  // produit sans id
		{Product: clavier(), Quantity: 0},  // quantité nulle
		{Product: clavier(), Quantity: -2}, // quantité négative
	})

	require.Len(t, s.Items(), 1)
	assert.Equal(t, "p1", s.Items()[0].Product.ID)
	checkInvariant(t, s)
}

func TestDrawerOpenFlag(t *testing.T) {
	s := NewStore()
	assert.False(t, s.IsOpen())
	s.SetOpen(true)
	assert.True(t, s.IsOpen())
	s.SetOpen(false)
	assert.False(t, s.IsOpen())
}
