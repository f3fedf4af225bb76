// Package validator wraps go-playground/validator with standardized error
// formatting. Struct fields are validated through `validate` tags and single
// values through tag expressions; failures are reported as a joined error
// whose first member is ErrValidationFailed.
package validator

import (
	"errors"
	"fmt"

	gvalidator "github.com/go-playground/validator/v10"
)

// ErrValidationFailed is the first error in the chain returned when validation fails.
var ErrValidationFailed = errors.New("validation failed")

// validator is a singleton instance of the go-playground validator,
// initialized on package load.
var validator = gvalidator.New(gvalidator.WithRequiredStructEnabled())

// errStringFormat describes a single failed rule.
//
// Example: "'Output': value 'xml' does not meet the requirements for the 'oneof' validation"
const errStringFormat = "'%s': value '%v' does not meet the requirements for the '%s' validation"

// formatError turns validator errors into ErrValidationFailed joined with one
// formatted message per failing field. Other errors are returned unchanged.
func formatError(name string, err error) error {
	var validationErrors gvalidator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err
	}

	errs := []error{ErrValidationFailed}
	for _, validationErr := range validationErrors {
		field := validationErr.Field()
		if field == "" {
			field = name
		}

		errs = append(errs, fmt.Errorf(errStringFormat, field, validationErr.Value(), validationErr.Tag()))
	}

	return errors.Join(errs...)
}

// Validate checks if the given struct satisfies its validation tags.
//
//	type Config struct {
//	    Output string `validate:"oneof=text json yaml"`
//	}
//
//	if err := validator.Validate(cfg); errors.Is(err, validator.ErrValidationFailed) {
//	    // handle invalid configuration
//	}
func Validate(v any) error {
	if err := validator.Struct(v); err != nil {
		return formatError("", err)
	}

	return nil
}

// Var validates a single value against a tag expression such as "required,printascii".
// name identifies the value in the resulting error message.
func Var(name string, value any, tag string) error {
	if err := validator.Var(value, tag); err != nil {
		return formatError(name, err)
	}

	return nil
}
