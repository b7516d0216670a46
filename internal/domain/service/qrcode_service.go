package service

import "github.com/google/uuid"

// QRCodeService encodes order references as QR codes printed on invoices.
type QRCodeService interface {
	// GenerateOrderQR returns a PNG QR code for the order.
	GenerateOrderQR(orderID uuid.UUID) ([]byte, error)

	// ParseOrderQR extracts the order ID from the decoded QR payload.
	ParseOrderQR(qrData string) (uuid.UUID, error)
}
