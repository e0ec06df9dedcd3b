package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ref(id string, price float64) ProductRef {
	return ProductRef{ID: id, Name: "Product " + id, Price: price}
}

func TestUpsertCartEntryMergesSameProduct(t *testing.T) {
	cart := UpsertCartEntry(nil, ref("w1", 100), 1)
	require.Len(t, cart, 1)
	assert.Equal(t, 1, cart[0].Quantity)
	assert.Equal(t, 100.0, cart[0].PriceAtAdd)

	// A second add of the same product raises the quantity, never the entry
	// count.
	cart = UpsertCartEntry(cart, ref("w1", 100), 1)
	require.Len(t, cart, 1)
	assert.Equal(t, 2, cart[0].Quantity)

	cart = RemoveCartEntry(cart, "w1")
	assert.Empty(t, cart)
}

func TestUpsertCartEntryKeepsPriceAtAdd(t *testing.T) {
	cart := UpsertCartEntry(nil, ref("p1", 50), 1)
	// The price moved in the catalog; the carted price does not follow.
	cart = UpsertCartEntry(cart, ref("p1", 75), 1)
	require.Len(t, cart, 1)
	assert.Equal(t, 50.0, cart[0].PriceAtAdd)
}

func TestRemoveCartEntryIdempotent(t *testing.T) {
	cart := UpsertCartEntry(nil, ref("p1", 10), 1)
	cart = UpsertCartEntry(cart, ref("p2", 20), 3)

	cart = RemoveCartEntry(cart, "p1")
	require.Len(t, cart, 1)
	assert.Equal(t, "p2", cart[0].ProductID)

	// Removing again is a no-op, not an error.
	cart = RemoveCartEntry(cart, "p1")
	require.Len(t, cart, 1)
}

func TestAdjustCartQuantityFloorsAtOne(t *testing.T) {
	cart := UpsertCartEntry(nil, ref("p1", 10), 3)

	cart, found := AdjustCartQuantity(cart, "p1", -1)
	require.True(t, found)
	assert.Equal(t, 2, cart[0].Quantity)

	cart, _ = AdjustCartQuantity(cart, "p1", -1)
	assert.Equal(t, 1, cart[0].Quantity)

	// Decrementing past 1 never removes the entry through this path.
	cart, found = AdjustCartQuantity(cart, "p1", -1)
	require.True(t, found)
	require.Len(t, cart, 1)
	assert.Equal(t, 1, cart[0].Quantity)

	_, found = AdjustCartQuantity(cart, "missing", 1)
	assert.False(t, found)
}

func TestAddWishlistRefRejectsDuplicates(t *testing.T) {
	wishlist, added := AddWishlistRef(nil, ref("p1", 10))
	require.True(t, added)
	require.Len(t, wishlist, 1)

	// Duplicate add leaves the set unchanged and reports it.
	same, added := AddWishlistRef(wishlist, ref("p1", 10))
	assert.False(t, added)
	assert.Len(t, same, 1)

	assert.True(t, WishlistContains(wishlist, "p1"))
	wishlist = RemoveWishlistRef(wishlist, "p1")
	assert.Empty(t, wishlist)
	assert.False(t, WishlistContains(wishlist, "p1"))
}

func TestSnapshotCartDoesNotAlias(t *testing.T) {
	cart := UpsertCartEntry(nil, ref("p1", 10), 1)
	snap := SnapshotCart(cart)
	cart[0].Quantity = 99
	assert.Equal(t, 1, snap[0].Quantity)
}
