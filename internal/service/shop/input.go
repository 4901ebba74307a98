package shop

import (
	"strings"

	"github.com/heartmarshall/nivara-backend/internal/domain"
)

// PaymentInput mirrors the checkout form.
type PaymentInput struct {
	CardName   string `json:"cardName"`
	CardNumber string `json:"cardNumber"`
	Expiry     string `json:"expiry"`
	CVV        string `json:"cvv"`
}

// Form field limits, as entered with separators.
const (
	maxCardNumberLen = 19
	maxExpiryLen     = 5
	maxCVVLen        = 3
)

func (i PaymentInput) Validate() error {
	var errs []domain.FieldError

	check := func(field, value string, max int) {
		value = strings.TrimSpace(value)
		switch {
		case value == "":
			errs = append(errs, domain.FieldError{Field: field, Message: "required"})
		case max > 0 && len(value) > max:
			errs = append(errs, domain.FieldError{Field: field, Message: "too long"})
		}
	}
	check("cardName", i.CardName, 0)
	check("cardNumber", i.CardNumber, maxCardNumberLen)
	check("expiry", i.Expiry, maxExpiryLen)
	check("cvv", i.CVV, maxCVVLen)

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}
