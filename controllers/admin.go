package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"go-storefront/models"
	"go-storefront/services"
)

// AdminController handles the admin console's order and user management
type AdminController struct {
	Admin *services.AdminService
}

// NewAdminController creates a new AdminController
func NewAdminController(admin *services.AdminService) *AdminController {
	return &AdminController{Admin: admin}
}

// ListOrders returns every order across all users, flattened
func (ac *AdminController) ListOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := ac.Admin.Orders(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, orders)
}

// UpdateOrderStatus transitions an order's status
func (ac *AdminController) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	var input struct {
		Status models.OrderStatus `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid input", http.StatusBadRequest)
		return
	}

	order, err := ac.Admin.UpdateOrderStatus(r.Context(), vars["userId"], vars["orderId"], input.Status)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

// DeleteOrder removes an order from its owner's history
func (ac *AdminController) DeleteOrder(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	if err := ac.Admin.DeleteOrder(r.Context(), vars["userId"], vars["orderId"]); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Order deleted"})
}

// ExportOrders streams the flattened order list as an xlsx workbook
func (ac *AdminController) ExportOrders(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Disposition", "attachment; filename=orders.xlsx")
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	if err := ac.Admin.ExportOrdersXLSX(r.Context(), w); err != nil {
		writeServiceError(w, err)
		return
	}
}

// ListUsers returns every principal record, passwords stripped
func (ac *AdminController) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := ac.Admin.Users(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, users)
}

// UpdateUser edits a principal's profile, role or status
func (ac *AdminController) UpdateUser(w http.ResponseWriter, r *http.Request) {
	var patch services.UserPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		http.Error(w, "Invalid input", http.StatusBadRequest)
		return
	}

	user, err := ac.Admin.UpdateUser(r.Context(), mux.Vars(r)["id"], patch)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// DeleteUser removes a principal; the last admin cannot be deleted
func (ac *AdminController) DeleteUser(w http.ResponseWriter, r *http.Request) {
	if err := ac.Admin.DeleteUser(r.Context(), mux.Vars(r)["id"]); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "User deleted"})
}
