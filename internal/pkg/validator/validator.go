package validator

import (
	"github.com/go-playground/validator/v10"

	"github.com/checkin-service/internal/pkg/errors"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// Validate runs struct tag validation on request DTOs. Failures come back
// as the invalid-request error with the validator message attached.
func Validate(s interface{}) error {
	if err := validate.Struct(s); err != nil {
		return errors.ErrInvalidRequest.WithDetails(err.Error())
	}
	return nil
}

// GetValidator exposes the underlying instance for custom rules.
func GetValidator() *validator.Validate {
	return validate
}
