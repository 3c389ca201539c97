// Package validation holds the shared validator instance used for request
// DTOs and turns its errors into client-facing messages.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func instance() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		// report json names, not Go field names
		validate.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return f.Name
			}
			return name
		})
	})
	return validate
}

// Errors is a list of failed field checks.
type Errors []FieldError

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e Errors) Error() string {
	msgs := make([]string, len(e))
	for i, fe := range e {
		msgs[i] = fe.Message
	}
	return strings.Join(msgs, "; ")
}

// ValidateStruct returns nil or Errors.
func ValidateStruct(s any) error {
	err := instance().Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	out := make(Errors, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, FieldError{Field: fe.Field(), Message: message(fe)})
	}
	return out
}

func message(fe validator.FieldError) string {
	f := fe.Field()
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", f)
	case "email":
		return fmt.Sprintf("%s must be a valid email", f)
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", f, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", f, fe.Param())
	case "url":
		return fmt.Sprintf("%s must be a valid URL", f)
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", f, fe.Param())
	case "mongodb":
		return fmt.Sprintf("%s must be a valid id", f)
	case "alphanum":
		return fmt.Sprintf("%s must contain only letters and digits", f)
	case "required_without":
		return fmt.Sprintf("%s is required when %s is empty", f, fe.Param())
	}
	return fmt.Sprintf("%s failed %s validation", f, fe.Tag())
}
