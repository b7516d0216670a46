package entity

// CheckoutState is a step of the checkout state machine.
type CheckoutState string

const (
	CheckoutIdle              CheckoutState = "idle"
	CheckoutReviewingCart     CheckoutState = "reviewing_cart"
	CheckoutSelectingPayment  CheckoutState = "selecting_payment"
	CheckoutValidatingPayment CheckoutState = "validating_payment"
	CheckoutCompleted         CheckoutState = "completed"
)

// String returns the string representation of the CheckoutState.
func (s CheckoutState) String() string {
	return string(s)
}

// IsTerminal reports whether the state ends the checkout.
func (s CheckoutState) IsTerminal() bool {
	return s == CheckoutCompleted
}
