package cart

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupPersister(t *testing.T) (*RedisPersister, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewRedisPersister(client), mr
}

func TestPersisterRoundTrip(t *testing.T) {
	p, _ := setupPersister(t)
	ctx := context.Background()

	s := NewStore()
	s.AddItem(Product{ID: "p1", Name: "Casque GX-7", Brand: "HyperSound", Price: 5000})
	s.AddItem(Product{ID: "p1"})
	s.AddItem(Product{ID: "p2", Name: "Souris M2", Brand: "ClickPro", Price: 1200})
	require.NoError(t, p.Save(ctx, "sess-1", s))

	loaded, err := p.Load(ctx, "sess-1")
	require.NoError(t, err)
	assert.Equal(t, s.Items(), loaded.Items())
	assert.Equal(t, 3, loaded.TotalItems())
	assert.Equal(t, 11200.0, loaded.Subtotal())
}

func TestPersisterLoadMissingGivesEmptyCart(t *testing.T) {
	p, _ := setupPersister(t)

	s, err := p.Load(context.Background(), "inconnue")
	require.NoError(t, err)
	assert.True(t, s.IsEmpty())
}

func TestPersisterLoadCorruptPayloadGivesEmptyCart(t *testing.T) {
	p, mr := setupPersister(t)
	mr.Set("cart:sess-1", "[{pas du json")

	s, err := p.Load(context.Background(), "sess-1")
	require.NoError(t, err)
	assert.True(t, s.IsEmpty())
}

func TestPersisterLoadSkipsInvalidLines(t *testing.T) {
	p, mr := setupPersister(t)
	mr.Set("cart:sess-1", `[
		{"product":{"id":"p1","name":"Casque GX-7","price":5000},"quantity":2},
		{"product":{"id":"","name":"sans id","price":100},"quantity":1},
		{"product":{"id":"p2","name":"Souris M2","price":1200},"quantity":0}
	]`)

	s, err := p.Load(context.Background(), "sess-1")
	require.NoError(t, err)
	require.Len(t, s.Items(), 1)
	assert.Equal(t, "p1", s.Items()[0].Product.ID)
	assert.Equal(t, 2, s.Items()[0].Quantity)
}

func TestPersisterDeleteClearsCart(t *testing.T) {
	p, _ := setupPersister(t)
	ctx := context.Background()

	s := NewStore()
	s.AddItem(Product{ID: "p1", Price: 5000})
	require.NoError(t, p.Save(ctx, "sess-1", s))
	require.NoError(t, p.Delete(ctx, "sess-1"))

	loaded, err := p.Load(ctx, "sess-1")
	require.NoError(t, err)
	assert.True(t, loaded.IsEmpty())
}
