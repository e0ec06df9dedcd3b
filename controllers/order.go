// controllers/order.go
package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"go-storefront/services"
)

// OrderController handles checkout and order history requests
type OrderController struct {
	Orders *services.OrderService
}

// NewOrderController creates a new OrderController
func NewOrderController(orders *services.OrderService) *OrderController {
	return &OrderController{Orders: orders}
}

// CreateOrder turns the user's cart into an order
func (oc *OrderController) CreateOrder(w http.ResponseWriter, r *http.Request) {
	sess := sessionOrFail(w, r)
	if sess == nil {
		return
	}

	var input services.CheckoutInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid input", http.StatusBadRequest)
		return
	}
	if input.PaymentMethod == "" {
		http.Error(w, "Payment method is required", http.StatusBadRequest)
		return
	}
	if input.Shipping.Name == "" || input.Shipping.Address == "" || input.Shipping.City == "" {
		http.Error(w, "Shipping name, address and city are required", http.StatusBadRequest)
		return
	}

	order, err := oc.Orders.CreateOrder(r.Context(), sess, input)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, order)
}

// GetOrders retrieves the authenticated user's order history
func (oc *OrderController) GetOrders(w http.ResponseWriter, r *http.Request) {
	sess := sessionOrFail(w, r)
	if sess == nil {
		return
	}
	orders, err := oc.Orders.Orders(r.Context(), sess)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, orders)
}

// CancelOrder lets the owner cancel one of their own orders
func (oc *OrderController) CancelOrder(w http.ResponseWriter, r *http.Request) {
	sess := sessionOrFail(w, r)
	if sess == nil {
		return
	}
	orderID := mux.Vars(r)["id"]
	order, err := oc.Orders.Cancel(r.Context(), sess, orderID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}
