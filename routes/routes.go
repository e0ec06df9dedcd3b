// routes/routes.go
package routes

import (
	"github.com/gorilla/mux"

	"go-storefront/controllers"
	"go-storefront/middleware"
	"go-storefront/models"
)

// Controllers bundles everything RegisterRoutes wires onto the router
type Controllers struct {
	Users    *controllers.UserController
	Products *controllers.ProductController
	Cart     *controllers.CartController
	Wishlist *controllers.WishlistController
	Orders   *controllers.OrderController
	Admin    *controllers.AdminController
	Feed     *controllers.OrderFeed
}

// RegisterRoutes sets up all the routes for the application
func RegisterRoutes(router *mux.Router, c Controllers) {
	// Public routes
	router.HandleFunc("/register", c.Users.Register).Methods("POST")
	router.HandleFunc("/login", c.Users.Login).Methods("POST")
	router.HandleFunc("/products", c.Products.GetProducts).Methods("GET")
	router.HandleFunc("/products/{id}", c.Products.GetProductByID).Methods("GET")

	// Authenticated storefront routes
	account := router.PathPrefix("/").Subrouter()
	account.Use(middleware.RequireAuth)
	account.HandleFunc("/logout", c.Users.Logout).Methods("POST")
	account.HandleFunc("/profile", c.Users.GetProfile).Methods("GET")
	account.HandleFunc("/profile", c.Users.UpdateProfile).Methods("PATCH")

	account.HandleFunc("/cart", c.Cart.GetCart).Methods("GET")
	account.HandleFunc("/cart", c.Cart.AddToCart).Methods("POST")
	account.HandleFunc("/cart", c.Cart.ClearCart).Methods("DELETE")
	account.HandleFunc("/cart/toggle", c.Cart.ToggleCart).Methods("POST")
	account.HandleFunc("/cart/{productId}", c.Cart.UpdateQuantity).Methods("PATCH")
	account.HandleFunc("/cart/{productId}", c.Cart.RemoveFromCart).Methods("DELETE")

	account.HandleFunc("/wishlist", c.Wishlist.GetWishlist).Methods("GET")
	account.HandleFunc("/wishlist", c.Wishlist.AddToWishlist).Methods("POST")
	account.HandleFunc("/wishlist/toggle", c.Wishlist.ToggleWishlist).Methods("POST")
	account.HandleFunc("/wishlist/{productId}", c.Wishlist.RemoveFromWishlist).Methods("DELETE")

	account.HandleFunc("/checkout", c.Orders.CreateOrder).Methods("POST")
	account.HandleFunc("/orders", c.Orders.GetOrders).Methods("GET")
	account.HandleFunc("/orders/{id}/cancel", c.Orders.CancelOrder).Methods("POST")

	// Admin routes
	admin := router.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.RequireRole(models.RoleAdmin))
	admin.HandleFunc("/orders", c.Admin.ListOrders).Methods("GET")
	admin.HandleFunc("/orders/export", c.Admin.ExportOrders).Methods("GET")
	admin.HandleFunc("/orders/feed", c.Feed.Handler).Methods("GET")
	admin.HandleFunc("/orders/{userId}/{orderId}", c.Admin.UpdateOrderStatus).Methods("PATCH")
	admin.HandleFunc("/orders/{userId}/{orderId}", c.Admin.DeleteOrder).Methods("DELETE")
	admin.HandleFunc("/users", c.Admin.ListUsers).Methods("GET")
	admin.HandleFunc("/users/{id}", c.Admin.UpdateUser).Methods("PATCH")
	admin.HandleFunc("/users/{id}", c.Admin.DeleteUser).Methods("DELETE")
	admin.HandleFunc("/products", c.Products.CreateProduct).Methods("POST")
	admin.HandleFunc("/products/{id}", c.Products.UpdateProduct).Methods("PUT")
	admin.HandleFunc("/products/{id}", c.Products.DeleteProduct).Methods("DELETE")
}
