package usecase

import (
	"context"

	"storefront/internal/domain/entity"
)

// CheckoutStatus describes where a client is in the checkout flow.
type CheckoutStatus struct {
	State entity.CheckoutState
	Cart  *entity.Cart
}

// CheckoutOutput is returned by a successful payment submission.
type CheckoutOutput struct {
	State            entity.CheckoutState
	Order            *entity.Order
	Confirmation     string
	InvoiceRequested bool
}

// CheckoutUsecase drives Idle -> ReviewingCart -> SelectingPayment -> ValidatingPayment -> Completed.
type CheckoutUsecase interface {
	Status(ctx context.Context, client entity.ClientID) (*CheckoutStatus, error)
	Begin(ctx context.Context, client entity.ClientID) (*CheckoutStatus, error)
	ProceedToPayment(ctx context.Context, client entity.ClientID) (*CheckoutStatus, error)
	SubmitPayment(ctx context.Context, client entity.ClientID, details *entity.PaymentDetails) (*CheckoutOutput, error)
	Cancel(ctx context.Context, client entity.ClientID) (*CheckoutStatus, error)

	// Checkout walks the whole state machine in one call.
	Checkout(ctx context.Context, client entity.ClientID, details *entity.PaymentDetails) (*CheckoutOutput, error)
}
