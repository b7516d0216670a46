package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Order is the outcome of a completed checkout. It is a snapshot taken before the
// cart is cleared and is only carried into the confirmation and the invoice.
type Order struct {
	ID            uuid.UUID       `json:"id"`
	ClientID      ClientID        `json:"clientId"`
	Lines         []CartLine      `json:"lines"`
	ItemCount     int             `json:"itemCount"`
	Total         decimal.Decimal `json:"total"`
	PaymentMethod PaymentMethod   `json:"paymentMethod"`
	Customer      *UserAccount    `json:"customer,omitempty"`
	PlacedAt      time.Time       `json:"placedAt"`
}

// NewOrder snapshots cart into a new order.
func NewOrder(client ClientID, cart *Cart, method PaymentMethod, customer *UserAccount, placedAt time.Time) *Order {
	return &Order{
		ID:            uuid.New(),
		ClientID:      client,
		Lines:         cart.Lines(),
		ItemCount:     cart.ItemCount(),
		Total:         cart.Total(),
		PaymentMethod: method,
		Customer:      customer.Public(),
		PlacedAt:      placedAt,
	}
}
