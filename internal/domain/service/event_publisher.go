package service

import (
	"context"
)

// InvoiceEvent carries a rendered invoice from a completed checkout to the invoice worker
type InvoiceEvent struct {
	RequestID     string `json:"request_id,omitempty"` // For distributed tracing
	OrderID       string `json:"order_id"`
	ClientID      string `json:"client_id"`
	CustomerEmail string `json:"customer_email"`
	CustomerName  string `json:"customer_name"`
	OperatorEmail string `json:"operator_email,omitempty"`
	Subject       string `json:"subject"`
	Content       string `json:"content"`                 // Rendered HTML invoice
	OrderQRCode   string `json:"order_qr_code,omitempty"` // Base64 PNG
}

// EventPublisher defines the interface for publishing events to a message queue
type EventPublisher interface {
	// PublishInvoiceEvent hands an invoice over for asynchronous delivery.
	// A nil error only means the event was accepted, not that mail was sent.
	PublishInvoiceEvent(ctx context.Context, event *InvoiceEvent) error

	// Close releases any resources held by the publisher
	Close() error
}
