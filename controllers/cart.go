package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"go-storefront/middleware"
	"go-storefront/models"
	"go-storefront/services"
)

// CartController handles cart-related requests
type CartController struct {
	Cart *services.CartService
}

// NewCartController creates a new CartController
func NewCartController(cart *services.CartService) *CartController {
	return &CartController{Cart: cart}
}

func sessionOrFail(w http.ResponseWriter, r *http.Request) *services.Session {
	sess, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		writeServiceError(w, services.ErrUnauthenticated)
		return nil
	}
	return sess
}

// GetCart retrieves the user's cart
func (cc *CartController) GetCart(w http.ResponseWriter, r *http.Request) {
	sess := sessionOrFail(w, r)
	if sess == nil {
		return
	}
	cart, err := cc.Cart.Get(r.Context(), sess)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cart)
}

// AddToCart adds a product to the user's cart
func (cc *CartController) AddToCart(w http.ResponseWriter, r *http.Request) {
	sess := sessionOrFail(w, r)
	if sess == nil {
		return
	}

	var input struct {
		Product  models.ProductRef `json:"product"`
		Quantity int               `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid input", http.StatusBadRequest)
		return
	}
	if input.Product.ID == "" {
		http.Error(w, "Product id is required", http.StatusBadRequest)
		return
	}
	if input.Quantity == 0 {
		input.Quantity = 1
	}

	cart, err := cc.Cart.Add(r.Context(), sess, input.Product, input.Quantity)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cart)
}

// RemoveFromCart removes a product from the user's cart
func (cc *CartController) RemoveFromCart(w http.ResponseWriter, r *http.Request) {
	sess := sessionOrFail(w, r)
	if sess == nil {
		return
	}
	productID := mux.Vars(r)["productId"]
	cart, err := cc.Cart.Remove(r.Context(), sess, productID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cart)
}

// UpdateQuantity applies a +1/-1 delta to a cart entry's quantity
func (cc *CartController) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	sess := sessionOrFail(w, r)
	if sess == nil {
		return
	}

	var input struct {
		Delta int `json:"delta"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil || input.Delta == 0 {
		http.Error(w, "Invalid input", http.StatusBadRequest)
		return
	}

	productID := mux.Vars(r)["productId"]
	cart, err := cc.Cart.SetQuantity(r.Context(), sess, productID, input.Delta)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cart)
}

// ClearCart empties the cart
func (cc *CartController) ClearCart(w http.ResponseWriter, r *http.Request) {
	sess := sessionOrFail(w, r)
	if sess == nil {
		return
	}
	if err := cc.Cart.Clear(r.Context(), sess); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, []models.CartEntry{})
}

// ToggleCart adds the product if absent and removes it if present
func (cc *CartController) ToggleCart(w http.ResponseWriter, r *http.Request) {
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

	cart, added, err := cc.Cart.Toggle(r.Context(), sess, input.Product)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"added": added,
		"cart":  cart,
	})
}
