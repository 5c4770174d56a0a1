package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imvikashdev/storefront/internal/domain"
)

func TestMemoryStore_SaveAndGet(t *testing.T) {
	store := NewMemoryStore(time.Hour)

	sess := sampleSession()
	require.NoError(t, store.Save(context.Background(), sess))

	got, err := store.Get(context.Background(), sess.ID)
	require.NoError(t, err)
	assert.Equal(t, sess.ID, got.ID)
	assert.Equal(t, sess.UserID, got.UserID)
	require.Len(t, got.Items, 1)
	assert.Equal(t, "item001", got.Items[0].ItemID)
}

func TestMemoryStore_Get_NotFound(t *testing.T) {
	store := NewMemoryStore(time.Hour)

	got, err := store.Get(context.Background(), "missing")
	assert.Nil(t, got)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStore_Get_Expired(t *testing.T) {
	store := NewMemoryStore(time.Millisecond)

	sess := sampleSession()
	require.NoError(t, store.Save(context.Background(), sess))

	time.Sleep(5 * time.Millisecond)

	got, err := store.Get(context.Background(), sess.ID)
	assert.Nil(t, got)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStore_Get_ReturnsCopy(t *testing.T) {
	store := NewMemoryStore(time.Hour)

	sess := sampleSession()
	require.NoError(t, store.Save(context.Background(), sess))

	got, err := store.Get(context.Background(), sess.ID)
	require.NoError(t, err)

	// Mutating the returned session must not affect stored state.
	got.UserID = "someone-else"
	got.Items[0].Quantity = 99

	again, err := store.Get(context.Background(), sess.ID)
	require.NoError(t, err)
	assert.Equal(t, "user-001", again.UserID)
	assert.Equal(t, 2, again.Items[0].Quantity)
}

func TestMemoryStore_Delete(t *testing.T) {
	store := NewMemoryStore(time.Hour)

	sess := sampleSession()
	require.NoError(t, store.Save(context.Background(), sess))
	require.NoError(t, store.Delete(context.Background(), sess.ID))

	_, err := store.Get(context.Background(), sess.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSession_DerivedValues(t *testing.T) {
	sess := New()
	assert.Equal(t, 0.0, sess.Subtotal())
	assert.Equal(t, 0, sess.ItemCount())

	sess.Items = []domain.CartLineItem{
		{Price: "19.99", Quantity: 2},
		{Price: "89.50", Quantity: 1},
	}
	assert.InDelta(t, 129.48, sess.Subtotal(), 0.001)
	assert.Equal(t, 3, sess.ItemCount())
}

func TestSession_FlashLifecycle(t *testing.T) {
	sess := New()
	sess.AddFlash(FlashSuccess, "added to cart")
	sess.AddFlash(FlashError, "something failed")

	flashes := sess.PopFlash()
	require.Len(t, flashes, 2)
	assert.Equal(t, FlashSuccess, flashes[0].Level)
	assert.Equal(t, "added to cart", flashes[0].Message)

	// Popped once, gone.
	assert.Empty(t, sess.PopFlash())
}
