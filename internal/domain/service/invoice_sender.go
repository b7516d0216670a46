package service

import "context"

// Attachment is a file sent along with an invoice email.
type Attachment struct {
	Filename    string
	ContentType string
	Content     string // Base64 encoded
}

// InvoiceMessage is one invoice email.
type InvoiceMessage struct {
	RecipientEmail string
	RecipientName  string
	Subject        string
	Content        string // Rendered HTML invoice
	Attachments    []Attachment
}

// InvoiceSender is the external capability that emails an invoice.
type InvoiceSender interface {
	SendInvoice(ctx context.Context, msg *InvoiceMessage) error
}
