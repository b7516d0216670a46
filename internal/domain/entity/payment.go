package entity

// PaymentMethod selects how an order is paid.
type PaymentMethod string

const (
	// PaymentMethodCashOnDelivery pays the courier at the shipping destination.
	PaymentMethodCashOnDelivery PaymentMethod = "cod"
	// PaymentMethodCard pays with a (simulated) card.
	PaymentMethodCard PaymentMethod = "card"
)

// String returns the string representation of the PaymentMethod.
func (m PaymentMethod) String() string {
	return string(m)
}

// IsValid checks if the PaymentMethod is a supported value.
func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentMethodCashOnDelivery, PaymentMethodCard:
		return true
	default:
		return false
	}
}

// Label returns the human readable name used on invoices.
func (m PaymentMethod) Label() string {
	switch m {
	case PaymentMethodCashOnDelivery:
		return "Cash on delivery"
	case PaymentMethodCard:
		return "Card"
	default:
		return string(m)
	}
}

// CardDetails carries the simulated card input. Expiry ranges are not checked.
type CardDetails struct {
	Number      string `json:"number"`
	CVV         string `json:"cvv"`
	ExpiryMonth string `json:"expiryMonth"`
	ExpiryYear  string `json:"expiryYear"`
}

// PaymentDetails is the transient payment input of one checkout attempt.
// Card is only meaningful when Method is PaymentMethodCard.
type PaymentDetails struct {
	Method PaymentMethod `json:"method"`
	Card   *CardDetails  `json:"card,omitempty"`
}
