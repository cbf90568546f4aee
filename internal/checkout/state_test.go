package checkout

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupFlowStore(t *testing.T) (*FlowStore, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewFlowStore(client), mr
}

func TestFlowStoreRoundTrip(t *testing.T) {
	fs, _ := setupFlowStore(t)
	ctx := context.Background()

	f := &Flow{Step: StepPayment, Shipping: validShipping(), OrderID: "cmd-1"}
	require.NoError(t, fs.Save(ctx, "sess-1", f))

	loaded := fs.Load(ctx, "sess-1")
	assert.Equal(t, StepPayment, loaded.Step)
	assert.Equal(t, validShipping(), loaded.Shipping)
	assert.Equal(t, "cmd-1", loaded.OrderID)
}

func TestFlowStoreLoadMissingStartsAtCart(t *testing.T) {
	fs, _ := setupFlowStore(t)

	f := fs.Load(context.Background(), "inconnue")
	assert.Equal(t, StepCart, f.Step)
	assert.Empty(t, f.OrderID)
}

func TestFlowStoreLoadCorruptPayloadResets(t *testing.T) {
	fs, mr := setupFlowStore(t)
	mr.Set("checkout:sess-1", "{pas du json")

	f := fs.Load(context.Background(), "sess-1")
	assert.Equal(t, StepCart, f.Step)
	assert.Equal(t, ShippingInfo{}, f.Shipping)
}

func TestFlowStoreLoadUnknownStepResets(t *testing.T) {
	fs, mr := setupFlowStore(t)
	mr.Set("checkout:sess-1", `{"step":"livraison-express","shipping":{}}`)

	f := fs.Load(context.Background(), "sess-1")
	assert.Equal(t, StepCart, f.Step)
}

func TestFlowStoreDelete(t *testing.T) {
	fs, _ := setupFlowStore(t)
	ctx := context.Background()

	require.NoError(t, fs.Save(ctx, "sess-1", &Flow{Step: StepShipping}))
	require.NoError(t, fs.Delete(ctx, "sess-1"))
	assert.Equal(t, StepCart, fs.Load(ctx, "sess-1").Step)
}

func TestPlacementLockSingleHolder(t *testing.T) {
	fs, _ := setupFlowStore(t)
	ctx := context.Background()

	ok, err := fs.AcquirePlacementLock(ctx, "sess-1")
	require.NoError(t, err)
	assert.True(t, ok)

	// deuxième soumission pendant que la première est en vol
	ok, err = fs.AcquirePlacementLock(ctx, "sess-1")
	require.NoError(t, err)
	assert.False(t, ok)

	fs.ReleasePlacementLock(ctx, "sess-1")
	ok, err = fs.AcquirePlacementLock(ctx, "sess-1")
	require.NoError(t, err)
	assert.True(t, ok)
}
