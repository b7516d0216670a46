// Package service declares the ports the storefront use cases call out through:
// hashing, tokens, QR codes, invoice events and invoice mail.
package service

// PasswordHasher protects the credential stored with a registered account.
type PasswordHasher interface {
	Hash(password string) (string, error)

	// Check reports whether password produced hash. A malformed hash never matches.
	Check(password, hash string) bool
}
