package seeddata

import (
	"fmt"
	"regexp"
	"sync"

	"github.com/go-playground/validator/v10"
)

var zipPattern = regexp.MustCompile(`^\d{5}(-\d{4})?$`)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func validatorInstance() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		_ = validate.RegisterValidation("zipcode", zipCodeValidator)
	})
	return validate
}

// zipCodeValidator accepts five-digit and ZIP+4 codes.
func zipCodeValidator(fl validator.FieldLevel) bool {
	return zipPattern.MatchString(fl.Field().String())
}

// Validate checks every record before any database work happens. The
// returned error wraps validator.ValidationErrors.
func Validate(data Data) error {
	if err := validatorInstance().Struct(data); err != nil {
		return fmt.Errorf("validate seed data: %w", err)
	}
	return nil
}
