package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"go-storefront/models"
	"go-storefront/services"
)

// WishlistController handles wishlist-related requests
type WishlistController struct {
	Wishlist *services.WishlistService
}

// NewWishlistController creates a new WishlistController
func NewWishlistController(wishlist *services.WishlistService) *WishlistController {
	return &WishlistController{Wishlist: wishlist}
}

// GetWishlist retrieves the user's wishlist
func (wc *WishlistController) GetWishlist(w http.ResponseWriter, r *http.Request) {
	sess := sessionOrFail(w, r)
	if sess == nil {
		return
	}
	wishlist, err := wc.Wishlist.Get(r.Context(), sess)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, wishlist)
}

// AddToWishlist adds a product to the wishlist; duplicates are rejected
func (wc *WishlistController) AddToWishlist(w http.ResponseWriter, r *http.Request) {
	sess := sessionOrFail(w, r)
	if sess == nil {
		return
	}

	var input struct {
		Product models.ProductRef `json:"product"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil || input.Product.ID == "" {
		http.Error(w, "Invalid input", http.StatusBadRequest)
		return
	}

	wishlist, err := wc.Wishlist.Add(r.Context(), sess, input.Product)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, wishlist)
}

// RemoveFromWishlist removes a product from the wishlist
func (wc *WishlistController) RemoveFromWishlist(w http.ResponseWriter, r *http.Request) {
	sess := sessionOrFail(w, r)
	if sess == nil {
		return
	}
	productID := mux.Vars(r)["productId"]
	wishlist, err := wc.Wishlist.Remove(r.Context(), sess, productID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, wishlist)
}

// ToggleWishlist adds the product if absent and removes it if present
func (wc *WishlistController) ToggleWishlist(w http.ResponseWriter, r *http.Request) {
	sess := sessionOrFail(w, r)
	if sess == nil {
		return
	}

	var input struct {
		Product models.ProductRef `json:"product"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil || input.Product.ID == "" {
		http.Error(w, "Invalid input", http.StatusBadRequest)
		return
	}

	wishlist, added, err := wc.Wishlist.Toggle(r.Context(), sess, input.Product)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"added":    added,
		"wishlist": wishlist,
	})
}
