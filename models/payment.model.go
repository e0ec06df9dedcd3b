package models

// Payment captures the money breakdown of an order at checkout time.
type Payment struct {
	Method     string  `json:"method"`
	Subtotal   float64 `json:"subtotal"`
	Tax        float64 `json:"tax"`
	Shipping   float64 `json:"shipping"`
	GrandTotal float64 `json:"grandTotal"`
}

// PaymentMethodCard is the only method the simulated gateway accepts; every
// other method is declined.
const PaymentMethodCard = "Credit Card"
