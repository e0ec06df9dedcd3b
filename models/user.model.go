package models

// Role determines which parts of the storefront a principal may reach.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// AccountStatus is set by admins; inactive principals cannot log in.
type AccountStatus string

const (
	StatusActive   AccountStatus = "active"
	StatusInactive AccountStatus = "inactive"
)

// Address represents a shipping destination captured at checkout
type Address struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	City    string `json:"city"`
	Country string `json:"country"`
	ZipCode string `json:"zipCode"`
}

// Principal is the whole per-user record held by the remote resource store.
// Cart, wishlist, order history and addresses all live inside it; every
// mutation overwrites the affected collection and bumps Version.
type Principal struct {
	ID                string        `json:"id,omitempty"`
	Firstname         string        `json:"firstname"`
	Lastname          string        `json:"lastname"`
	Email             string        `json:"email"`
	Password          string        `json:"password,omitempty"`
	Role              Role          `json:"role"`
	Status            AccountStatus `json:"status"`
	Cart              []CartEntry   `json:"cart"`
	Wishlist          []ProductRef  `json:"wishlist"`
	Orders            []Order       `json:"order"`
	ShippingAddresses []Address     `json:"shippingAddress"`
	Version           int64         `json:"version"`
}

// FullName joins the name parts for emails and admin listings.
func (p Principal) FullName() string {
	if p.Firstname == "" {
		return p.Lastname
	}
	if p.Lastname == "" {
		return p.Firstname
	}
	return p.Firstname + " " + p.Lastname
}
