package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"

	"go-storefront/models"
)

// fakeStore is an in-memory UserStore/ProductStore so the reconciliation
// services can be exercised without a network. failWrites makes the next N
// UpdateUser calls fail to drive the retry path.
type fakeStore struct {
	mu         sync.Mutex
	users      map[string]*models.Principal
	products   map[string]*models.Product
	nextID     int
	failWrites int
	writes     int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:    make(map[string]*models.Principal),
		products: make(map[string]*models.Product),
		nextID:   1,
	}
}

func (f *fakeStore) seedUser(p models.Principal) *models.Principal {
	f.mu.Lock()
	defer f.mu.Unlock()
	if p.ID == "" {
		p.ID = strconv.Itoa(f.nextID)
		f.nextID++
	}
	cp := p
	f.users[p.ID] = &cp
	return &cp
}

func (f *fakeStore) UserByID(ctx context.Context, id string) (*models.Principal, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *p
	// Copy the collections too; the real client decodes fresh JSON per
	// fetch, so callers never alias stored state.
	cp.Cart = append([]models.CartEntry(nil), p.Cart...)
	cp.Wishlist = append([]models.ProductRef(nil), p.Wishlist...)
	cp.Orders = append([]models.Order(nil), p.Orders...)
	cp.ShippingAddresses = append([]models.Address(nil), p.ShippingAddresses...)
	return &cp, nil
}

func (f *fakeStore) Users(ctx context.Context) ([]models.Principal, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []models.Principal{}
	for i := 1; i < f.nextID; i++ {
		if p, ok := f.users[strconv.Itoa(i)]; ok {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (f *fakeStore) UsersByEmail(ctx context.Context, email string) ([]models.Principal, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []models.Principal{}
	for _, p := range f.users {
		if p.Email == email {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (f *fakeStore) CreateUser(ctx context.Context, p models.Principal) (*models.Principal, error) {
	cp := *f.seedUser(p)
	return &cp, nil
}

func (f *fakeStore) UpdateUser(ctx context.Context, id string, fields map[string]interface{}) (*models.Principal, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.writes++
	if f.failWrites > 0 {
		f.failWrites--
		return nil, errors.New("remote write failure")
	}
	p, ok := f.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	for k, v := range fields {
		switch k {
		case "cart":
			p.Cart = v.([]models.CartEntry)
		case "wishlist":
			p.Wishlist = v.([]models.ProductRef)
		case "order":
			p.Orders = v.([]models.Order)
		case "shippingAddress":
			p.ShippingAddresses = v.([]models.Address)
		case "firstname":
			p.Firstname = v.(string)
		case "lastname":
			p.Lastname = v.(string)
		case "role":
			p.Role = v.(models.Role)
		case "status":
			p.Status = v.(models.AccountStatus)
		case "version":
			p.Version = v.(int64)
		default:
			return nil, fmt.Errorf("fakeStore: unexpected field %q", k)
		}
	}
	cp := *p
	return &cp, nil
}

func (f *fakeStore) DeleteUser(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.users[id]; !ok {
		return ErrNotFound
	}
	delete(f.users, id)
	return nil
}

func (f *fakeStore) Products(ctx context.Context) ([]models.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []models.Product{}
	for _, p := range f.products {
		out = append(out, *p)
	}
	return out, nil
}

func (f *fakeStore) ProductByID(ctx context.Context, id string) (*models.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.products[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakeStore) CreateProduct(ctx context.Context, p models.Product) (*models.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if p.ID == "" {
		p.ID = strconv.Itoa(f.nextID)
		f.nextID++
	}
	cp := p
	f.products[p.ID] = &cp
	return &cp, nil
}

func (f *fakeStore) UpdateProduct(ctx context.Context, id string, fields map[string]interface{}) (*models.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.products[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakeStore) DeleteProduct(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.products[id]; !ok {
		return ErrNotFound
	}
	delete(f.products, id)
	return nil
}

func sessionFor(p *models.Principal) *Session {
	return &Session{Token: "tok-" + p.ID, UserID: p.ID, Email: p.Email, Role: p.Role}
}

func productRef(id string, price float64) models.ProductRef {
	return models.ProductRef{ID: id, Name: "Product " + id, Price: price}
}
