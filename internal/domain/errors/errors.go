// Package errors defines the application error catalog shared by use cases and delivery.
package errors

import (
	"net/http"

	"github.com/pkg/errors"
)

// Kind classifies an AppError for presentation and logging.
type Kind string

const (
	// KindValidation marks malformed input or a violated uniqueness/match rule.
	KindValidation Kind = "validation"
	// KindState marks an operation that is not allowed in the current state.
	KindState Kind = "state"
	// KindCollaborator marks a failing external capability (store, mail, broker).
	KindCollaborator Kind = "collaborator"
	// KindInternal marks everything else.
	KindInternal Kind = "internal"
)

// AppError defines the interface for application-specific errors
type AppError interface {
	error
	HTTPCode() int     // HTTP status code
	ErrorCode() string // Business error code
	Message() string   // User-friendly error message
	Details() string   // Detailed error information (optional)
	Kind() Kind        // Taxonomy bucket
}

// BaseError is a basic error structure that implements the AppError interface
type BaseError struct {
	httpCode  int
	errorCode string
	message   string
	details   string
	kind      Kind
}

// NewBaseError creates a new base error
func NewBaseError(kind Kind, httpCode int, errorCode, message, details string) *BaseError {
	return &BaseError{
		httpCode:  httpCode,
		errorCode: errorCode,
		message:   message,
		details:   details,
		kind:      kind,
	}
}

// Error implements the error interface
func (e *BaseError) Error() string {
	if e.details != "" {
		return e.message + ": " + e.details
	}

	return e.message
}

// WrapMessage wraps the error with additional context message
func (e *BaseError) WrapMessage(message string) error {
	return errors.Wrap(e, message)
}

// HTTPCode returns the HTTP status code
func (e *BaseError) HTTPCode() int {
	return e.httpCode
}

// ErrorCode returns the business error code
func (e *BaseError) ErrorCode() string {
	return e.errorCode
}

// Message returns the user-friendly error message
func (e *BaseError) Message() string {
	return e.message
}

// Details returns detailed error information
func (e *BaseError) Details() string {
	return e.details
}

// Kind returns the taxonomy bucket of the error
func (e *BaseError) Kind() Kind {
	return e.kind
}

// WithDetails adds detailed error information
func (e *BaseError) WithDetails(details string) *BaseError {
	return &BaseError{
		httpCode:  e.httpCode,
		errorCode: e.errorCode,
		message:   e.message,
		details:   details,
		kind:      e.kind,
	}
}

// Is matches errors by business code, so a copy made by WithDetails still matches its template.
func (e *BaseError) Is(target error) bool {
	t, ok := target.(*BaseError)
	if !ok {
		return false
	}

	return e.errorCode == t.errorCode
}

// Predefined error types
var (
	// Registration and login
	ErrRequiredField = NewBaseError(KindValidation,
		http.StatusBadRequest,
		"REQUIRED_FIELD",
		"Please fill in all required fields",
		"",
	)

	ErrInvalidEmail = NewBaseError(KindValidation,
		http.StatusBadRequest,
		"INVALID_EMAIL",
		"Please enter a valid email address",
		"",
	)

	ErrInvalidPhone = NewBaseError(KindValidation,
		http.StatusBadRequest,
		"INVALID_PHONE",
		"Phone number must contain 8 to 15 digits",
		"",
	)

	ErrPasswordMismatch = NewBaseError(KindValidation,
		http.StatusBadRequest,
		"PASSWORD_MISMATCH",
		"Passwords do not match",
		"",
	)

	ErrPasswordTooLong = NewBaseError(KindValidation,
		http.StatusBadRequest,
		"PASSWORD_TOO_LONG",
		"Password must be at most 72 bytes",
		"",
	)

	ErrDuplicateEmail = NewBaseError(KindValidation,
		http.StatusConflict,
		"DUPLICATE_EMAIL",
		"An account with this email already exists",
		"",
	)

	ErrInvalidCredentials = NewBaseError(KindValidation,
		http.StatusUnauthorized,
		"INVALID_CREDENTIALS",
		"Incorrect email or password",
		"",
	)

	ErrPasswordHashFailed = NewBaseError(KindInternal,
		http.StatusInternalServerError,
		"PASSWORD_HASH_FAILED",
		"Password processing failed",
		"",
	)

	// Catalog and cart
	ErrProductNotFound = NewBaseError(KindValidation,
		http.StatusNotFound,
		"PRODUCT_NOT_FOUND",
		"Product not found",
		"",
	)

	ErrInvalidQuantity = NewBaseError(KindValidation,
		http.StatusBadRequest,
		"INVALID_QUANTITY",
		"Quantity must be between 1 and 999 per product",
		"",
	)

	// Checkout
	ErrEmptyCart = NewBaseError(KindState,
		http.StatusConflict,
		"EMPTY_CART",
		"Your cart is empty",
		"",
	)

	ErrLoginRequired = NewBaseError(KindState,
		http.StatusConflict,
		"LOGIN_REQUIRED",
		"Please log in so we know where to deliver your order",
		"",
	)

	ErrInvalidCheckoutState = NewBaseError(KindState,
		http.StatusConflict,
		"INVALID_CHECKOUT_STATE",
		"This checkout step is not available right now",
		"",
	)

	ErrUnsupportedPaymentMethod = NewBaseError(KindValidation,
		http.StatusBadRequest,
		"UNSUPPORTED_PAYMENT_METHOD",
		"Unsupported payment method",
		"",
	)

	ErrInvalidCardNumber = NewBaseError(KindValidation,
		http.StatusBadRequest,
		"INVALID_CARD_NUMBER",
		"Card number must be exactly 16 digits",
		"",
	)

	ErrInvalidCVV = NewBaseError(KindValidation,
		http.StatusBadRequest,
		"INVALID_CVV",
		"CVV must be 3 or 4 digits",
		"",
	)

	ErrMissingExpiry = NewBaseError(KindValidation,
		http.StatusBadRequest,
		"MISSING_EXPIRY",
		"Please enter the card expiry month and year",
		"",
	)

	// Collaborators
	ErrInvoiceDeliveryFailed = NewBaseError(KindCollaborator,
		http.StatusBadGateway,
		"INVOICE_DELIVERY_FAILED",
		"The invoice email could not be sent",
		"",
	)

	ErrStoreFailure = NewBaseError(KindCollaborator,
		http.StatusInternalServerError,
		"STORE_FAILURE",
		"Saving your data failed",
		"",
	)

	// Clients
	ErrInvalidClientToken = NewBaseError(KindValidation,
		http.StatusUnauthorized,
		"INVALID_CLIENT_TOKEN",
		"Invalid or expired client token",
		"",
	)

	// General errors
	ErrValidationFailed = NewBaseError(KindValidation,
		http.StatusBadRequest,
		"VALIDATION_FAILED",
		"Input validation failed",
		"",
	)

	ErrInternalError = NewBaseError(KindInternal,
		http.StatusInternalServerError,
		"INTERNAL_ERROR",
		"Internal server error",
		"",
	)
)

// StoreError represents a durable store failure, implementing the AppError interface
type StoreError struct {
	err     error
	details string
}

// NewStoreError creates a durable-store-related error
func NewStoreError(err error, details string) AppError {
	return &StoreError{
		err:     err,
		details: details,
	}
}

// Error implements the error interface
func (e *StoreError) Error() string {
	return errors.Wrap(e.err, "durable store operation failed").Error()
}

// Unwrap exposes the underlying store error
func (e *StoreError) Unwrap() error {
	return e.err
}

// HTTPCode returns the HTTP status code
func (e *StoreError) HTTPCode() int {
	return ErrStoreFailure.HTTPCode()
}

// ErrorCode returns the business error code
func (e *StoreError) ErrorCode() string {
	return ErrStoreFailure.ErrorCode()
}

// Message returns the user-friendly error message
func (e *StoreError) Message() string {
	return ErrStoreFailure.Message()
}

// Details returns detailed error information
func (e *StoreError) Details() string {
	return e.details
}

// Kind returns the taxonomy bucket of the error
func (e *StoreError) Kind() Kind {
	return KindCollaborator
}

// AsAppError finds the first AppError in err's chain.
func AsAppError(err error) (AppError, bool) {
	var appErr AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}

	return nil, false
}
