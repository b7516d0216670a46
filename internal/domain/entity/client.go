package entity

import "github.com/google/uuid"

// ClientID identifies one storefront client, the analogue of a browser profile.
// Each client owns its own cart, account table and current-user pointer.
type ClientID string

// NewClientID returns a fresh random client identifier.
func NewClientID() ClientID {
	return ClientID(uuid.NewString())
}

// String returns the string representation of the ClientID.
func (c ClientID) String() string {
	return string(c)
}

// IsZero reports whether the identifier is empty.
func (c ClientID) IsZero() bool {
	return c == ""
}
