package services

import (
	"context"
	"crypto/rand"
	"log"
	"time"

	"github.com/shopspring/decimal"

	"go-storefront/models"
)

// CheckoutInput is everything the checkout form submits. The caller's
// figures are authoritative for the stored payment breakdown; the composer
// recomputes them for drift detection only.
type CheckoutInput struct {
	Shipping      models.Address `json:"shipping"`
	PaymentMethod string         `json:"paymentMethod"`
	Subtotal      float64        `json:"subtotal"`
	Tax           float64        `json:"tax"`
	ShippingFee   float64        `json:"shippingFee"`
	Total         float64        `json:"total"`
}

// OrderService composes immutable orders out of cart snapshots and owns the
// owner-facing slice of order history.
type OrderService struct {
	users    UserStore
	mailer   Mailer
	notifier OrderNotifier
}

// NewOrderService creates an OrderService. mailer and notifier may be nil.
func NewOrderService(users UserStore, mailer Mailer, notifier OrderNotifier) *OrderService {
	return &OrderService{users: users, mailer: mailer, notifier: notifier}
}

// CreateOrder turns the principal's current cart into one appended order,
// records the shipping address, and empties the cart, all persisted in a
// single write. The simulated gateway confirms Credit Card payments and
// declines everything else; a declined payment writes nothing.
func (s *OrderService) CreateOrder(ctx context.Context, sess *Session, input CheckoutInput) (*models.Order, error) {
	if sess == nil {
		return nil, ErrUnauthenticated
	}
	if input.PaymentMethod != models.PaymentMethodCard {
		return nil, ErrPaymentDeclined
	}

	var order models.Order
	updated, err := mutatePrincipal(ctx, s.users, sess.UserID,
		func(p *models.Principal) error {
			if len(p.Cart) == 0 {
				return ErrEmptyCart
			}

			expected := decimal.NewFromFloat(input.Subtotal).
				Add(decimal.NewFromFloat(input.Tax)).
				Add(decimal.NewFromFloat(input.ShippingFee))
			if !expected.Equal(decimal.NewFromFloat(input.Total)) {
				log.Printf("checkout totals drift for user %s: %s submitted, %s computed",
					p.ID, decimal.NewFromFloat(input.Total), expected)
			}

			now := time.Now()
			order = models.Order{
				ID:       newOrderID(p.Orders),
				Date:     now,
				Items:    models.SnapshotCart(p.Cart),
				Shipping: input.Shipping,
				Payment: models.Payment{
					Method:     input.PaymentMethod,
					Subtotal:   input.Subtotal,
					Tax:        input.Tax,
					Shipping:   input.ShippingFee,
					GrandTotal: input.Total,
				},
				Status:            models.OrderConfirmed,
				EstimatedDelivery: now.AddDate(0, 0, 10).Format("2006-01-02"),
			}

			p.Orders = append(p.Orders, order)
			p.ShippingAddresses = append(p.ShippingAddresses, input.Shipping)
			p.Cart = []models.CartEntry{}
			return nil
		},
		func(p *models.Principal) map[string]interface{} {
			return map[string]interface{}{
				"order":           p.Orders,
				"shippingAddress": p.ShippingAddresses,
				"cart":            p.Cart,
			}
		},
	)
	if err != nil {
		return nil, err
	}

	if s.mailer != nil {
		go func(email, name string, o models.Order) {
			if err := s.mailer.SendOrderConfirmation(email, name, o); err != nil {
				log.Printf("failed to send confirmation email to %s: %v", email, err)
			}
		}(sess.Email, updated.FullName(), order)
	}
	if s.notifier != nil {
		s.notifier.NotifyOrder(OrderEvent{Type: "created", UserID: sess.UserID, Order: order})
	}
	return &order, nil
}

// Orders returns the principal's order history in creation order.
func (s *OrderService) Orders(ctx context.Context, sess *Session) ([]models.Order, error) {
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
	return p.Orders, nil
}

// Cancel transitions one of the principal's own orders to cancelled.
func (s *OrderService) Cancel(ctx context.Context, sess *Session, orderID string) (*models.Order, error) {
	if sess == nil {
		return nil, ErrUnauthenticated
	}

	var cancelled models.Order
	_, err := mutatePrincipal(ctx, s.users, sess.UserID,
		func(p *models.Principal) error {
			for i := range p.Orders {
				if p.Orders[i].ID == orderID {
					p.Orders[i].Status = models.OrderCancelled
					cancelled = p.Orders[i]
					return nil
				}
			}
			return ErrNotFound
		},
		func(p *models.Principal) map[string]interface{} {
			return map[string]interface{}{"order": p.Orders}
		},
	)
	if err != nil {
		return nil, err
	}

	if s.notifier != nil {
		s.notifier.NotifyOrder(OrderEvent{Type: "status_changed", UserID: sess.UserID, Order: cancelled})
	}
	return &cancelled, nil
}

const orderIDPrefix = "ORD"
const orderIDAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// newOrderID generates an opaque order id: a 3-letter prefix plus 9 random
// base-36 characters. Ids are re-rolled while they collide with one already
// in the principal's history; the remote store does not enforce uniqueness.
func newOrderID(existing []models.Order) string {
	for {
		id := generateOrderID()
		taken := false
		for _, o := range existing {
			if o.ID == id {
				taken = true
				break
			}
		}
		if !taken {
			return id
		}
	}
}

func generateOrderID() string {
	buf := make([]byte, 9)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand failing means the process is in bad shape; fall back
		// to a time-derived suffix rather than aborting checkout.
		return orderIDPrefix + time.Now().UTC().Format("060102150405")[:9]
	}
	id := make([]byte, 0, len(orderIDPrefix)+9)
	id = append(id, orderIDPrefix...)
	for _, b := range buf {
		id = append(id, orderIDAlphabet[int(b)%len(orderIDAlphabet)])
	}
	return string(id)
}
