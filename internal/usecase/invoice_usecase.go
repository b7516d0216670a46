package usecase

import (
	"context"

	"storefront/internal/domain/service"
)

// InvoiceUsecase delivers rendered invoices to the customer and the store operator.
type InvoiceUsecase interface {
	DeliverInvoice(ctx context.Context, event *service.InvoiceEvent) error
}
