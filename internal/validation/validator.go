package validation

import (
	"errors"
	"fmt"
	"strings"

	"trivia-api/internal/domain"

	"github.com/go-playground/validator/v10"
)

// Validator checks request structs against their `validate` tags
type Validator struct {
	validate *validator.Validate
}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// Validate returns an Unprocessable domain error naming every failed field,
// or nil when req is valid.
func (v *Validator) Validate(req interface{}) error {
	err := v.validate.Struct(req)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return domain.NewUnprocessableError("invalid request", err)
	}

	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msgs = append(msgs, fmt.Sprintf("%s failed on %s", fe.Field(), fe.Tag()))
	}
	return domain.NewUnprocessableError(strings.Join(msgs, "; "), err)
}
