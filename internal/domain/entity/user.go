package entity

import "strings"

// UserAccount is a registered storefront customer.
// Password holds the credential as stored by the password hasher, never the raw input.
type UserAccount struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Phone     string `json:"phone"`
	City      string `json:"city"`
	Address   string `json:"address"`
}

// DisplayName returns "first last", trimmed.
func (u *UserAccount) DisplayName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// ShippingDestination returns the address line used on invoices.
func (u *UserAccount) ShippingDestination() string {
	return strings.TrimSpace(u.Address + ", " + u.City)
}

// Public returns a copy without the credential, safe to hand to clients.
func (u *UserAccount) Public() *UserAccount {
	if u == nil {
		return nil
	}

	clone := *u
	clone.Password = ""

	return &clone
}

// NormalizeEmail trims and lower-cases an email so lookups are case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
