package services

import (
	"context"

	"go-storefront/models"
)

// CartService owns the cart ledger of each principal. Every mutation is a
// read-modify-write of the whole cart array against the resource store.
type CartService struct {
	users UserStore
}

func NewCartService(users UserStore) *CartService {
	return &CartService{users: users}
}

// Get returns the current cart contents.
func (s *CartService) Get(ctx context.Context, sess *Session) ([]models.CartEntry, error) {
	if sess == nil {
		return nil, ErrUnauthenticated
	}
	p, err := s.users.UserByID(ctx, sess.UserID)
	if err != nil {
		if notFound(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return p.Cart, nil
}

// Add puts qty of the product into the cart, merging into an existing entry
// for the same product id.
func (s *CartService) Add(ctx context.Context, sess *Session, product models.ProductRef, qty int) ([]models.CartEntry, error) {
	if sess == nil {
		return nil, ErrUnauthenticated
	}
	p, err := mutatePrincipal(ctx, s.users, sess.UserID,
		func(p *models.Principal) error {
			p.Cart = models.UpsertCartEntry(p.Cart, product, qty)
			return nil
		},
		cartFields,
	)
	if err != nil {
		return nil, err
	}
	return p.Cart, nil
}

// Remove deletes the entry for productID regardless of quantity. Removing an
// absent entry succeeds, so repeated removes are idempotent.
func (s *CartService) Remove(ctx context.Context, sess *Session, productID string) ([]models.CartEntry, error) {
	if sess == nil {
		return nil, ErrUnauthenticated
	}
	p, err := mutatePrincipal(ctx, s.users, sess.UserID,
		func(p *models.Principal) error {
			p.Cart = models.RemoveCartEntry(p.Cart, productID)
			return nil
		},
		cartFields,
	)
	if err != nil {
		return nil, err
	}
	return p.Cart, nil
}

// SetQuantity applies delta to the entry's quantity, floored at 1. Deleting
// an entry goes through Remove only.
func (s *CartService) SetQuantity(ctx context.Context, sess *Session, productID string, delta int) ([]models.CartEntry, error) {
	if sess == nil {
		return nil, ErrUnauthenticated
	}
	p, err := mutatePrincipal(ctx, s.users, sess.UserID,
		func(p *models.Principal) error {
			cart, found := models.AdjustCartQuantity(p.Cart, productID, delta)
			if !found {
				return ErrNotFound
			}
			p.Cart = cart
			return nil
		},
		cartFields,
	)
	if err != nil {
		return nil, err
	}
	return p.Cart, nil
}

// Clear empties the ledger.
func (s *CartService) Clear(ctx context.Context, sess *Session) error {
	if sess == nil {
		return ErrUnauthenticated
	}
	_, err := mutatePrincipal(ctx, s.users, sess.UserID,
		func(p *models.Principal) error {
			p.Cart = []models.CartEntry{}
			return nil
		},
		cartFields,
	)
	return err
}

// Toggle adds the product if absent and removes it if present. The boolean
// reports whether the product ended up in the cart.
func (s *CartService) Toggle(ctx context.Context, sess *Session, product models.ProductRef) ([]models.CartEntry, bool, error) {
	if sess == nil {
		return nil, false, ErrUnauthenticated
	}
	added := false
	p, err := mutatePrincipal(ctx, s.users, sess.UserID,
		func(p *models.Principal) error {
			if _, ok := models.FindCartEntry(p.Cart, product.ID); ok {
				p.Cart = models.RemoveCartEntry(p.Cart, product.ID)
				added = false
			} else {
				p.Cart = models.UpsertCartEntry(p.Cart, product, 1)
				added = true
			}
			return nil
		},
		cartFields,
	)
	if err != nil {
		return nil, false, err
	}
	return p.Cart, added, nil
}

func cartFields(p *models.Principal) map[string]interface{} {
	return map[string]interface{}{"cart": p.Cart}
}
