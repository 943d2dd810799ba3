package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// Largest amount that fits the NUMERIC(18,2) column
var maxAmount = decimal.RequireFromString("9999999999999999.99")

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	//nolint:errcheck // registration only fails for an empty tag
	v.RegisterValidation("msisdn", func(fl validator.FieldLevel) bool {
		return ValidatePhone(fl.Field().String()) == nil
	})
	return v
}

// ValidateAmount checks the amount is positive and has at most two decimal places
func ValidateAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return fmt.Errorf("invalid amount: must be greater than 0")
	}
	if !amount.Equal(amount.Truncate(2)) {
		return fmt.Errorf("invalid amount: at most 2 decimal places allowed")
	}
	if amount.GreaterThan(maxAmount) {
		return fmt.Errorf("invalid amount: exceeds %s", maxAmount.StringFixed(2))
	}

	return nil
}

// ValidatePhone checks a mobile money number: optional leading '+', then 9-15
// digits. Spaces and dashes are ignored.
func ValidatePhone(phone string) error {
	cleaned := strings.NewReplacer(" ", "", "-", "").Replace(phone)
	cleaned = strings.TrimPrefix(cleaned, "+")

	if len(cleaned) < 9 || len(cleaned) > 15 {
		return fmt.Errorf("invalid phone number: must be 9-15 digits")
	}

	for _, r := range cleaned {
		if r < '0' || r > '9' {
			return fmt.Errorf("invalid phone number: must contain only digits")
		}
	}

	return nil
}

// validateRequest runs struct tag validation and reports the first failure
func validateRequest(req any) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return &ServiceError{Code: ErrCodeValidationFailed, Message: "invalid request", Err: err}
	}

	fe := fieldErrs[0]
	return &ServiceError{
		Code:    ErrCodeValidationFailed,
		Message: fmt.Sprintf("%s: %s", fe.Field(), describeTag(fe)),
	}
}

func describeTag(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "max":
		return "must be at most " + fe.Param() + " characters or items"
	case "msisdn":
		return "must be a valid mobile money number"
	default:
		return "failed " + fe.Tag() + " validation"
	}
}
