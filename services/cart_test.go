package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-storefront/models"
)

func newCartFixture(t *testing.T) (*fakeStore, *CartService, *Session) {
	t.Helper()
	store := newFakeStore()
	user := store.seedUser(models.Principal{
		Email: "shopper@example.com",
		Role:  models.RoleUser,
		Cart:  []models.CartEntry{},
	})
	return store, NewCartService(store), sessionFor(user)
}

func TestCartAddMergeRemove(t *testing.T) {
	ctx := context.Background()
	_, cart, sess := newCartFixture(t)

	entries, err := cart.Add(ctx, sess, productRef("w1", 100), 1)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "w1", entries[0].ProductID)
	assert.Equal(t, 1, entries[0].Quantity)
	assert.Equal(t, 100.0, entries[0].PriceAtAdd)

	entries, err = cart.Add(ctx, sess, productRef("w1", 100), 1)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, 2, entries[0].Quantity)

	entries, err = cart.Remove(ctx, sess, "w1")
	require.NoError(t, err)
	assert.Empty(t, entries)

	// Remove after remove stays empty and does not error.
	entries, err = cart.Remove(ctx, sess, "w1")
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestCartSetQuantityFloor(t *testing.T) {
	ctx := context.Background()
	_, cart, sess := newCartFixture(t)

	_, err := cart.Add(ctx, sess, productRef("p1", 10), 2)
	require.NoError(t, err)

	entries, err := cart.SetQuantity(ctx, sess, "p1", -1)
	require.NoError(t, err)
	assert.Equal(t, 1, entries[0].Quantity)

	entries, err = cart.SetQuantity(ctx, sess, "p1", -1)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, 1, entries[0].Quantity)

	_, err = cart.SetQuantity(ctx, sess, "absent", 1)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCartToggle(t *testing.T) {
	ctx := context.Background()
	_, cart, sess := newCartFixture(t)

	entries, added, err := cart.Toggle(ctx, sess, productRef("p1", 10))
	require.NoError(t, err)
	assert.True(t, added)
	assert.Len(t, entries, 1)

	entries, added, err = cart.Toggle(ctx, sess, productRef("p1", 10))
	require.NoError(t, err)
	assert.False(t, added)
	assert.Empty(t, entries)
}

func TestCartClear(t *testing.T) {
	ctx := context.Background()
	store, cart, sess := newCartFixture(t)

	_, err := cart.Add(ctx, sess, productRef("p1", 10), 1)
	require.NoError(t, err)
	_, err = cart.Add(ctx, sess, productRef("p2", 20), 1)
	require.NoError(t, err)

	require.NoError(t, cart.Clear(ctx, sess))

	p, err := store.UserByID(ctx, sess.UserID)
	require.NoError(t, err)
	assert.Empty(t, p.Cart)
}

func TestCartRequiresSession(t *testing.T) {
	ctx := context.Background()
	_, cart, _ := newCartFixture(t)

	_, err := cart.Add(ctx, nil, productRef("p1", 10), 1)
	assert.ErrorIs(t, err, ErrUnauthenticated)
	_, err = cart.Get(ctx, nil)
	assert.ErrorIs(t, err, ErrUnauthenticated)
	assert.ErrorIs(t, cart.Clear(ctx, nil), ErrUnauthenticated)
}

func TestCartRetriesFailedWrites(t *testing.T) {
	ctx := context.Background()
	store, cart, sess := newCartFixture(t)

	// One transient failure is absorbed by a fresh read-modify-write.
	store.failWrites = 1
	entries, err := cart.Add(ctx, sess, productRef("p1", 10), 1)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
	assert.Equal(t, 2, store.writes)

	// A persistently failing store surfaces the error; local state never
	// becomes authoritative.
	store.failWrites = mutateRetries
	_, err = cart.Add(ctx, sess, productRef("p2", 20), 1)
	require.Error(t, err)

	p, err := store.UserByID(ctx, sess.UserID)
	require.NoError(t, err)
	require.Len(t, p.Cart, 1)
	assert.Equal(t, "p1", p.Cart[0].ProductID)
}

func TestCartMutationBumpsVersion(t *testing.T) {
	ctx := context.Background()
	store, cart, sess := newCartFixture(t)

	_, err := cart.Add(ctx, sess, productRef("p1", 10), 1)
	require.NoError(t, err)
	_, err = cart.Add(ctx, sess, productRef("p1", 10), 1)
	require.NoError(t, err)

	p, err := store.UserByID(ctx, sess.UserID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), p.Version)
}
