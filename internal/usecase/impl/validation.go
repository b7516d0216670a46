package impl

import (
	"regexp"
	"strings"

	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/usecase"
)

// maxPasswordBytes is the longest input bcrypt accepts.
const maxPasswordBytes = 72

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phonePattern = regexp.MustCompile(`^[0-9]{8,15}$`)
	cardPattern  = regexp.MustCompile(`^[0-9]{16}$`)
	cvvPattern   = regexp.MustCompile(`^[0-9]{3,4}$`)
)

type requiredField struct {
	name  string
	value string
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// validateRegistration checks the registration form field by field.
// Required fields come first, then email shape, phone shape, the password
// confirmation and the password length.
func validateRegistration(input *usecase.RegisterInput) error {
	fields := []requiredField{
		{"firstName", input.FirstName},
		{"lastName", input.LastName},
		{"email", input.Email},
		{"password", input.Password},
		{"confirmPassword", input.ConfirmPassword},
		{"phone", input.Phone},
		{"city", input.City},
		{"address", input.Address},
	}
	for _, f := range fields {
		if isBlank(f.value) {
			return domainerrors.ErrRequiredField.WithDetails(f.name)
		}
	}

	if !validEmail(input.Email) {
		return domainerrors.ErrInvalidEmail
	}

	if !validPhone(input.Phone) {
		return domainerrors.ErrInvalidPhone
	}

	if input.Password != input.ConfirmPassword {
		return domainerrors.ErrPasswordMismatch
	}

	if len(input.Password) > maxPasswordBytes {
		return domainerrors.ErrPasswordTooLong
	}

	return nil
}

func validateLogin(input *usecase.LoginInput) error {
	if isBlank(input.Email) {
		return domainerrors.ErrRequiredField.WithDetails("email")
	}
	if input.Password == "" {
		return domainerrors.ErrRequiredField.WithDetails("password")
	}

	return nil
}

func validEmail(email string) bool {
	return emailPattern.MatchString(strings.TrimSpace(email))
}

func validPhone(phone string) bool {
	return phonePattern.MatchString(strings.TrimSpace(phone))
}

// validatePayment checks the payment input of one checkout attempt.
// Cash on delivery has no fields of its own.
func validatePayment(details *entity.PaymentDetails) error {
	if details == nil || !details.Method.IsValid() {
		return domainerrors.ErrUnsupportedPaymentMethod
	}

	if details.Method != entity.PaymentMethodCard {
		return nil
	}

	card := details.Card
	if card == nil {
		card = &entity.CardDetails{}
	}

	if !cardPattern.MatchString(card.Number) {
		return domainerrors.ErrInvalidCardNumber
	}

	if !cvvPattern.MatchString(card.CVV) {
		return domainerrors.ErrInvalidCVV
	}

	if isBlank(card.ExpiryMonth) || isBlank(card.ExpiryYear) {
		return domainerrors.ErrMissingExpiry
	}

	return nil
}
