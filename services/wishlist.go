package services

import (
	"context"

	"go-storefront/models"
)

// WishlistService owns the wishlist set of each principal. Same persistence
// contract as the cart: whole-array overwrite per mutation.
type WishlistService struct {
	users UserStore
}

func NewWishlistService(users UserStore) *WishlistService {
	return &WishlistService{users: users}
}

// Get returns the current wishlist.
func (s *WishlistService) Get(ctx context.Context, sess *Session) ([]models.ProductRef, error) {
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
	return p.Wishlist, nil
}

// Add appends the product to the set. Adding a product that is already
// present returns ErrDuplicate and leaves the set unchanged; the duplicate
// attempt is surfaced to the user rather than silently succeeding.
func (s *WishlistService) Add(ctx context.Context, sess *Session, product models.ProductRef) ([]models.ProductRef, error) {
	if sess == nil {
		return nil, ErrUnauthenticated
	}
	p, err := mutatePrincipal(ctx, s.users, sess.UserID,
		func(p *models.Principal) error {
			wishlist, added := models.AddWishlistRef(p.Wishlist, product)
			if !added {
				return ErrDuplicate
			}
			p.Wishlist = wishlist
			return nil
		},
		wishlistFields,
	)
	if err != nil {
		return nil, err
	}
	return p.Wishlist, nil
}

// Remove deletes the product from the set; idempotent.
func (s *WishlistService) Remove(ctx context.Context, sess *Session, productID string) ([]models.ProductRef, error) {
	if sess == nil {
		return nil, ErrUnauthenticated
	}
	p, err := mutatePrincipal(ctx, s.users, sess.UserID,
		func(p *models.Principal) error {
			p.Wishlist = models.RemoveWishlistRef(p.Wishlist, productID)
			return nil
		},
		wishlistFields,
	)
	if err != nil {
		return nil, err
	}
	return p.Wishlist, nil
}

// Toggle adds the product if absent and removes it if present. The boolean
// reports whether the product ended up in the set.
func (s *WishlistService) Toggle(ctx context.Context, sess *Session, product models.ProductRef) ([]models.ProductRef, bool, error) {
	if sess == nil {
		return nil, false, ErrUnauthenticated
	}
	added := false
	p, err := mutatePrincipal(ctx, s.users, sess.UserID,
		func(p *models.Principal) error {
			if models.WishlistContains(p.Wishlist, product.ID) {
				p.Wishlist = models.RemoveWishlistRef(p.Wishlist, product.ID)
				added = false
			} else {
				p.Wishlist, _ = models.AddWishlistRef(p.Wishlist, product)
				added = true
			}
			return nil
		},
		wishlistFields,
	)
	if err != nil {
		return nil, false, err
	}
	return p.Wishlist, added, nil
}

func wishlistFields(p *models.Principal) map[string]interface{} {
	return map[string]interface{}{"wishlist": p.Wishlist}
}
