package services

import "errors"

var (
	// ErrUnauthenticated means the operation needs a logged-in principal;
	// page handlers redirect to /login, API handlers answer 401.
	ErrUnauthenticated = errors.New("unauthenticated")

	// ErrInvalidCredentials covers unknown email and wrong password alike.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrAccountDisabled means the principal exists but was deactivated.
	ErrAccountDisabled = errors.New("account disabled")

	// ErrNotFound means a referenced principal, order or product is absent.
	ErrNotFound = errors.New("not found")

	// ErrDuplicate is a duplicate signup email or wishlist add; the attempt
	// is surfaced as a warning, never swallowed.
	ErrDuplicate = errors.New("already exists")

	// ErrVersionConflict means the principal record moved underneath a
	// read-modify-write; the mutation is retried from fresh state.
	ErrVersionConflict = errors.New("version conflict")

	// ErrEmptyCart rejects checkout of an empty cart.
	ErrEmptyCart = errors.New("cart is empty")

	// ErrPaymentDeclined is the simulated gateway declining every method
	// except Credit Card.
	ErrPaymentDeclined = errors.New("payment declined")

	// ErrInvalidStatus rejects unknown order status strings.
	ErrInvalidStatus = errors.New("invalid order status")

	// ErrLastAdmin protects the last remaining admin account from deletion.
	ErrLastAdmin = errors.New("cannot delete the last admin")
)
