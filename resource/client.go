// Package resource wraps the remote JSON resource API that holds all
// persistent state. Records are whole documents keyed by id; partial updates
// go through PATCH and overwrite entire fields (a cart mutation rewrites the
// whole cart array).
package resource

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"go-storefront/models"
)

// ErrNotFound is returned when the store has no record for the requested id.
var ErrNotFound = errors.New("resource not found")

// Client issues requests against the resource API base URL.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a Client for the given base URL, e.g. "http://localhost:3001".
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, payload, out interface{}) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("resource API %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	if resp.StatusCode >= 400 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("resource API %s %s: status %d: %s", method, path, resp.StatusCode, msg)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode %s %s: %w", method, path, err)
		}
	}
	return nil
}

// UserByID fetches one principal record.
func (c *Client) UserByID(ctx context.Context, id string) (*models.Principal, error) {
	var p models.Principal
	if err := c.do(ctx, http.MethodGet, "/users/"+id, nil, nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// Users fetches every principal record. The admin console flattens these
// into cross-user order and user lists.
func (c *Client) Users(ctx context.Context) ([]models.Principal, error) {
	var users []models.Principal
	if err := c.do(ctx, http.MethodGet, "/users", nil, nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// UsersByEmail queries principals by email. An empty result means the email
// is unknown; login and signup duplicate checks both go through here.
func (c *Client) UsersByEmail(ctx context.Context, email string) ([]models.Principal, error) {
	q := url.Values{"email": []string{email}}
	var users []models.Principal
	if err := c.do(ctx, http.MethodGet, "/users", q, nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// CreateUser stores a new principal and returns it with the assigned id.
func (c *Client) CreateUser(ctx context.Context, p models.Principal) (*models.Principal, error) {
	var created models.Principal
	if err := c.do(ctx, http.MethodPost, "/users", nil, p, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateUser patches the given fields of a principal record and returns the
// updated record. Collection-valued fields are overwritten whole.
func (c *Client) UpdateUser(ctx context.Context, id string, fields map[string]interface{}) (*models.Principal, error) {
	var updated models.Principal
	if err := c.do(ctx, http.MethodPatch, "/users/"+id, nil, fields, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteUser removes a principal record.
func (c *Client) DeleteUser(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/users/"+id, nil, nil, nil)
}

// Products fetches the catalog.
func (c *Client) Products(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	if err := c.do(ctx, http.MethodGet, "/products", nil, nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// ProductByID fetches one catalog record.
func (c *Client) ProductByID(ctx context.Context, id string) (*models.Product, error) {
	var p models.Product
	if err := c.do(ctx, http.MethodGet, "/products/"+id, nil, nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// CreateProduct stores a new catalog record.
func (c *Client) CreateProduct(ctx context.Context, p models.Product) (*models.Product, error) {
	var created models.Product
	if err := c.do(ctx, http.MethodPost, "/products", nil, p, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateProduct patches a catalog record.
func (c *Client) UpdateProduct(ctx context.Context, id string, fields map[string]interface{}) (*models.Product, error) {
	var updated models.Product
	if err := c.do(ctx, http.MethodPatch, "/products/"+id, nil, fields, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteProduct removes a catalog record.
func (c *Client) DeleteProduct(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/products/"+id, nil, nil, nil)
}
