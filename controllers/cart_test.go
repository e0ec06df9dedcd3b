package controllers_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-storefront/controllers"
	"go-storefront/middleware"
	"go-storefront/models"
	"go-storefront/services"
)

// oneUserStore backs a single principal in memory, enough to drive the
// handlers end to end.
type oneUserStore struct {
	user models.Principal
}

func (s *oneUserStore) UserByID(ctx context.Context, id string) (*models.Principal, error) {
	if id != s.user.ID {
		return nil, services.ErrNotFound
	}
	cp := s.user
	cp.Cart = append([]models.CartEntry(nil), s.user.Cart...)
	return &cp, nil
}

func (s *oneUserStore) Users(ctx context.Context) ([]models.Principal, error) {
	return []models.Principal{s.user}, nil
}

func (s *oneUserStore) UsersByEmail(ctx context.Context, email string) ([]models.Principal, error) {
	if email == s.user.Email {
		return []models.Principal{s.user}, nil
	}
	return []models.Principal{}, nil
}

func (s *oneUserStore) CreateUser(ctx context.Context, p models.Principal) (*models.Principal, error) {
	return &p, nil
}

func (s *oneUserStore) UpdateUser(ctx context.Context, id string, fields map[string]interface{}) (*models.Principal, error) {
	if id != s.user.ID {
		return nil, services.ErrNotFound
	}
	if cart, ok := fields["cart"].([]models.CartEntry); ok {
		s.user.Cart = cart
	}
	if v, ok := fields["version"].(int64); ok {
		s.user.Version = v
	}
	cp := s.user
	return &cp, nil
}

func (s *oneUserStore) DeleteUser(ctx context.Context, id string) error {
	return services.ErrNotFound
}

func cartRouter(store *oneUserStore, sess *services.Session) http.Handler {
	cc := controllers.NewCartController(services.NewCartService(store))
	router := mux.NewRouter()
	router.HandleFunc("/cart", cc.GetCart).Methods("GET")
	router.HandleFunc("/cart", cc.AddToCart).Methods("POST")
	router.HandleFunc("/cart/{productId}", cc.RemoveFromCart).Methods("DELETE")

	if sess == nil {
		return router
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := context.WithValue(r.Context(), middleware.SessionContextKey, sess)
		router.ServeHTTP(w, r.WithContext(ctx))
	})
}

func TestAddToCartUnauthenticated(t *testing.T) {
	store := &oneUserStore{user: models.Principal{ID: "1", Email: "jo@example.com"}}
	handler := cartRouter(store, nil)

	rec := httptest.NewRecorder()
	body := `{"product":{"id":"p1","price":10},"quantity":1}`
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/cart", strings.NewReader(body)))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAddToCartAndRemove(t *testing.T) {
	store := &oneUserStore{user: models.Principal{ID: "1", Email: "jo@example.com", Role: models.RoleUser}}
	sess := &services.Session{Token: "tok", UserID: "1", Email: "jo@example.com", Role: models.RoleUser}
	handler := cartRouter(store, sess)

	rec := httptest.NewRecorder()
	body := `{"product":{"id":"p1","name":"Widget","price":10},"quantity":2}`
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/cart", strings.NewReader(body)))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"productId":"p1"`)
	assert.Contains(t, rec.Body.String(), `"quantity":2`)
	require.Len(t, store.user.Cart, 1)

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/cart/p1", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, store.user.Cart)
}

func TestAddToCartRejectsMissingProduct(t *testing.T) {
	store := &oneUserStore{user: models.Principal{ID: "1", Role: models.RoleUser}}
	sess := &services.Session{Token: "tok", UserID: "1", Role: models.RoleUser}
	handler := cartRouter(store, sess)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/cart", strings.NewReader(`{"quantity":1}`)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
