package entity

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Currency is the presentation currency applied at the boundary. Amounts are
// stored in the base currency and multiplied by Rate only when displayed.
type Currency struct {
	Code   string
	Symbol string
	Rate   decimal.Decimal
}

// BaseCurrency displays base amounts unchanged with a dollar sign.
func BaseCurrency() Currency {
	return Currency{Code: "USD", Symbol: "$", Rate: decimal.NewFromInt(1)}
}

// Convert applies the exchange multiplier and rounds to cents.
func (c Currency) Convert(amount decimal.Decimal) decimal.Decimal {
	rate := c.Rate
	if rate.IsZero() {
		rate = decimal.NewFromInt(1)
	}

	return amount.Mul(rate).Round(2)
}

// Format renders amount as "12.50 $".
func (c Currency) Format(amount decimal.Decimal) string {
	return strings.TrimSpace(c.Convert(amount).StringFixed(2) + " " + c.Symbol)
}
