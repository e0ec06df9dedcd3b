// main.go
package main

import (
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/joho/godotenv"

	"go-storefront/controllers"
	"go-storefront/middleware"
	"go-storefront/resource"
	"go-storefront/routes"
	"go-storefront/services"
	"go-storefront/utils"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found. Proceeding with environment variables.")
	}

	// Set the JWT secret key
	utils.JwtKey = []byte(os.Getenv("JWT_SECRET"))

	// Remote resource store holding all persistent state
	store := resource.NewClient(getEnv("RESOURCE_API_URL", "http://localhost:3001"))

	emailService := utils.NewEmailService()
	feed := controllers.NewOrderFeed()

	sessions := services.NewSessionService(store, getEnv("SESSION_FILE", "sessions.json"))
	cartService := services.NewCartService(store)
	wishlistService := services.NewWishlistService(store)
	orderService := services.NewOrderService(store, emailService, feed)
	adminService := services.NewAdminService(store, emailService, feed)
	productService := services.NewProductService(store)

	// Set up the router
	router := mux.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Auth(sessions))

	routes.RegisterRoutes(router, routes.Controllers{
		Users:    controllers.NewUserController(sessions),
		Products: controllers.NewProductController(productService),
		Cart:     controllers.NewCartController(cartService),
		Wishlist: controllers.NewWishlistController(wishlistService),
		Orders:   controllers.NewOrderController(orderService),
		Admin:    controllers.NewAdminController(adminService),
		Feed:     feed,
	})

	cors := handlers.CORS(
		handlers.AllowedOrigins([]string{getEnv("CORS_ORIGIN", "*")}),
		handlers.AllowedMethods([]string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}),
		handlers.AllowedHeaders([]string{"Authorization", "Content-Type", "X-Request-ID"}),
	)

	// Start the server
	port := getEnv("PORT", "8000")
	fmt.Printf("Server is running on port %s\n", port)
	log.Fatal(http.ListenAndServe(":"+port, handlers.LoggingHandler(os.Stdout, cors(router))))
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
