package entity

import (
	"encoding/json"
	"slices"

	"github.com/shopspring/decimal"
)

// MaxLineQuantity bounds a single cart line.
const MaxLineQuantity = 999

// CartLine is one product in the cart with a positive quantity.
type CartLine struct {
	Product  Product `json:"product"`
	Quantity int     `json:"qty"`
}

// Subtotal returns quantity × unit price.
func (l CartLine) Subtotal() decimal.Decimal {
	return l.Product.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Cart is the ledger of selected products for one client.
// Lines keep stable insertion order: a new product is appended and an existing
// line is updated in place. Every line has Quantity >= 1.
type Cart struct {
	lines []CartLine
}

// NewCart builds a cart from lines, merging duplicates and dropping quantities outside
// 1..MaxLineQuantity.
func NewCart(lines ...CartLine) *Cart {
	cart := &Cart{}
	for _, line := range lines {
		cart.Add(line.Product, line.Quantity)
	}

	return cart
}

func (c *Cart) index(id ProductID) int {
	return slices.IndexFunc(c.lines, func(l CartLine) bool { return l.Product.ID == id })
}

// Add merges quantity into the product's line, inserting the line if absent.
// It leaves the cart unchanged and reports false when quantity is below 1 or the
// merged line would exceed MaxLineQuantity.
func (c *Cart) Add(product Product, quantity int) bool {
	if quantity < 1 || quantity > MaxLineQuantity {
		return false
	}

	if i := c.index(product.ID); i >= 0 {
		if c.lines[i].Quantity > MaxLineQuantity-quantity {
			return false
		}
		c.lines[i].Quantity += quantity

		return true
	}

	c.lines = append(c.lines, CartLine{Product: product, Quantity: quantity})

	return true
}

// Remove deletes the product's line and reports whether it was present.
func (c *Cart) Remove(id ProductID) bool {
	i := c.index(id)
	if i < 0 {
		return false
	}

	c.lines = slices.Delete(c.lines, i, i+1)

	return true
}

// Subtract takes quantity off the product's line and drops the line once it reaches zero.
func (c *Cart) Subtract(id ProductID, quantity int) {
	i := c.index(id)
	if i < 0 || quantity < 1 {
		return
	}

	if c.lines[i].Quantity <= quantity {
		c.lines = slices.Delete(c.lines, i, i+1)

		return
	}

	c.lines[i].Quantity -= quantity
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.lines = nil
}

// Quantity returns the product's quantity, zero when absent.
func (c *Cart) Quantity(id ProductID) int {
	if i := c.index(id); i >= 0 {
		return c.lines[i].Quantity
	}

	return 0
}

// Lines returns a copy of the lines in iteration order.
func (c *Cart) Lines() []CartLine {
	return slices.Clone(c.lines)
}

// Len returns the number of distinct products.
func (c *Cart) Len() int {
	return len(c.lines)
}

// IsEmpty reports whether the cart has no lines.
func (c *Cart) IsEmpty() bool {
	return len(c.lines) == 0
}

// ItemCount returns the sum of all quantities.
func (c *Cart) ItemCount() int {
	count := 0
	for _, line := range c.lines {
		count += line.Quantity
	}

	return count
}

// Total returns the sum of quantity × unit price in the base currency.
func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, line := range c.lines {
		total = total.Add(line.Subtotal())
	}

	return total
}

// Clone returns an independent copy of the cart.
func (c *Cart) Clone() *Cart {
	return &Cart{lines: slices.Clone(c.lines)}
}

// MarshalJSON encodes the cart as its ordered list of lines.
func (c *Cart) MarshalJSON() ([]byte, error) {
	lines := c.lines
	if lines == nil {
		lines = []CartLine{}
	}

	return json.Marshal(lines)
}

// UnmarshalJSON decodes an ordered list of lines, restoring the cart invariants.
func (c *Cart) UnmarshalJSON(data []byte) error {
	var lines []CartLine
	if err := json.Unmarshal(data, &lines); err != nil {
		return err
	}

	*c = *NewCart(lines...)

	return nil
}
