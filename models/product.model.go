package models

// Product is a catalog record held by the remote resource store.
type Product struct {
	ID          string   `json:"id,omitempty"`
	Name        string   `json:"name"`
	Brand       string   `json:"brand"`
	Category    string   `json:"category"`
	Description string   `json:"description,omitempty"`
	Price       float64  `json:"price"`
	Stock       int      `json:"stock"`
	Images      []string `json:"images,omitempty"`
}

// Ref returns the denormalized copy carried into carts and wishlists.
func (p Product) Ref() ProductRef {
	return ProductRef{
		ID:       p.ID,
		Name:     p.Name,
		Price:    p.Price,
		Brand:    p.Brand,
		Category: p.Category,
		Images:   p.Images,
	}
}
