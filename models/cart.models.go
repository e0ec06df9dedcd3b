package models

// ProductRef is a denormalized copy of a product taken when it was carted or
// wishlisted. It is never reconciled against live catalog state; staleness is
// accepted.
type ProductRef struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Price    float64  `json:"price"`
	Brand    string   `json:"brand"`
	Category string   `json:"category"`
	Images   []string `json:"images,omitempty"`
}

// CartEntry represents one line of a principal's cart. There is at most one
// entry per product id and Quantity is always >= 1; an entry whose quantity
// would drop to zero is removed instead.
type CartEntry struct {
	ProductID  string     `json:"productId"`
	Quantity   int        `json:"quantity"`
	PriceAtAdd float64    `json:"priceAtAdd"`
	Product    ProductRef `json:"product"`
}

// UpsertCartEntry adds qty of the product to the entry list. An existing
// entry for the same product id has its quantity raised; otherwise a new
// entry is appended with the product's current price captured as PriceAtAdd.
func UpsertCartEntry(entries []CartEntry, product ProductRef, qty int) []CartEntry {
	if qty < 1 {
		qty = 1
	}
	for i, e := range entries {
		if e.ProductID == product.ID {
			entries[i].Quantity += qty
			return entries
		}
	}
	return append(entries, CartEntry{
		ProductID:  product.ID,
		Quantity:   qty,
		PriceAtAdd: product.Price,
		Product:    product,
	})
}

// RemoveCartEntry filters out the entry for productID. Removing an absent
// entry is a no-op, so the operation is idempotent.
func RemoveCartEntry(entries []CartEntry, productID string) []CartEntry {
	kept := entries[:0]
	for _, e := range entries {
		if e.ProductID != productID {
			kept = append(kept, e)
		}
	}
	return kept
}

// AdjustCartQuantity applies delta to the entry's quantity, floored at 1.
// Only RemoveCartEntry deletes entries; decrementing past 1 leaves the entry
// at quantity 1. The second return reports whether the entry was found.
func AdjustCartQuantity(entries []CartEntry, productID string, delta int) ([]CartEntry, bool) {
	for i, e := range entries {
		if e.ProductID == productID {
			q := e.Quantity + delta
			if q < 1 {
				q = 1
			}
			entries[i].Quantity = q
			return entries, true
		}
	}
	return entries, false
}

// FindCartEntry returns the entry for productID, if present.
func FindCartEntry(entries []CartEntry, productID string) (CartEntry, bool) {
	for _, e := range entries {
		if e.ProductID == productID {
			return e, true
		}
	}
	return CartEntry{}, false
}

// SnapshotCart copies the entry list so a composed order cannot alias the
// live cart slice.
func SnapshotCart(entries []CartEntry) []CartEntry {
	snap := make([]CartEntry, len(entries))
	copy(snap, entries)
	return snap
}

// AddWishlistRef appends the product unless it is already present. The
// boolean reports whether the list changed; a duplicate add leaves the list
// untouched and is surfaced to the user as a warning, not swallowed.
func AddWishlistRef(refs []ProductRef, product ProductRef) ([]ProductRef, bool) {
	for _, r := range refs {
		if r.ID == product.ID {
			return refs, false
		}
	}
	return append(refs, product), true
}

// RemoveWishlistRef filters out the product; idempotent.
func RemoveWishlistRef(refs []ProductRef, productID string) []ProductRef {
	kept := refs[:0]
	for _, r := range refs {
		if r.ID != productID {
			kept = append(kept, r)
		}
	}
	return kept
}

// WishlistContains reports whether productID is in the set.
func WishlistContains(refs []ProductRef, productID string) bool {
	for _, r := range refs {
		if r.ID == productID {
			return true
		}
	}
	return false
}
