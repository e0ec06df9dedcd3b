package services

import (
	"context"

	"go-storefront/models"
)

// UserStore is the slice of the resource API the reconciliation services
// need. resource.Client satisfies it; tests use an in-memory fake so the
// cart/wishlist/order logic runs without a network.
type UserStore interface {
	UserByID(ctx context.Context, id string) (*models.Principal, error)
	Users(ctx context.Context) ([]models.Principal, error)
	UsersByEmail(ctx context.Context, email string) ([]models.Principal, error)
	CreateUser(ctx context.Context, p models.Principal) (*models.Principal, error)
	UpdateUser(ctx context.Context, id string, fields map[string]interface{}) (*models.Principal, error)
	DeleteUser(ctx context.Context, id string) error
}

// ProductStore is the catalog slice of the resource API.
type ProductStore interface {
	Products(ctx context.Context) ([]models.Product, error)
	ProductByID(ctx context.Context, id string) (*models.Product, error)
	CreateProduct(ctx context.Context, p models.Product) (*models.Product, error)
	UpdateProduct(ctx context.Context, id string, fields map[string]interface{}) (*models.Product, error)
	DeleteProduct(ctx context.Context, id string) error
}

// Mailer sends the best-effort storefront notifications. utils.EmailService
// satisfies it.
type Mailer interface {
	SendOrderConfirmation(toEmail, name string, order models.Order) error
	SendOrderStatusUpdate(toEmail, name, orderID string, status models.OrderStatus) error
}

// OrderNotifier receives order lifecycle events for the admin live feed.
type OrderNotifier interface {
	NotifyOrder(event OrderEvent)
}

// OrderEvent is broadcast when an order is created or its status changes.
type OrderEvent struct {
	Type   string       `json:"type"` // "created" or "status_changed"
	UserID string       `json:"userId"`
	Order  models.Order `json:"order"`
}
