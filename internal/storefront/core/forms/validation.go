// Package forms validates and submits the customer-facing forms: checkout
// contact details, service bookings and feedback. Every check runs before any
// side effect and reports an enumerated list of field errors.
package forms

import (
	"errors"
	"fmt"
	"reflect"
	"slices"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Code is the machine-readable reason a field was rejected.
type Code string

const (
	CodeRequired Code = "required"
	CodeEmail    Code = "email"
	CodeOneOf    Code = "oneof"
	CodeRange    Code = "range"
	CodeFormat   Code = "format"
)

// FieldError pairs a form field with the rule it broke.
type FieldError struct {
	Field string `json:"field"`
	Code  Code   `json:"code"`
}

// ValidationError lists every field that failed, in declaration order.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = f.Field + " " + string(f.Code)
	}
	return "forms: invalid input: " + strings.Join(parts, ", ")
}

// Has reports whether field failed with code.
func (e *ValidationError) Has(field string, code Code) bool {
	return slices.Contains(e.Fields, FieldError{Field: field, Code: code})
}

// Message is the single line shown above a rejected form.
func (e *ValidationError) Message() string {
	if e.Has("rating", CodeRequired) && len(e.Fields) == 1 {
		return "Please provide a rating"
	}
	for _, f := range e.Fields {
		if f.Code == CodeRequired {
			return "Please fill in all required fields"
		}
	}
	return "Please check the highlighted fields"
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	if err := v.RegisterValidation("service_type", func(fl validator.FieldLevel) bool {
		return slices.Contains(ServiceTypes, fl.Field().String())
	}); err != nil {
		panic(err)
	}
	return v
}

// Validate runs the struct's `validate` tags and returns a *ValidationError
// when anything fails.
func Validate(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("forms: validate: %w", err)
	}

	out := &ValidationError{Fields: make([]FieldError, 0, len(verrs))}
	for _, fe := range verrs {
		out.Fields = append(out.Fields, FieldError{Field: fe.Field(), Code: codeFor(fe.Tag())})
	}
	return out
}

func codeFor(tag string) Code {
	switch tag {
	case "required":
		return CodeRequired
	case "email":
		return CodeEmail
	case "oneof", "service_type":
		return CodeOneOf
	case "min", "max", "gte", "lte":
		return CodeRange
	default:
		return CodeFormat
	}
}

func trim(fields ...*string) {
	for _, f := range fields {
		*f = strings.TrimSpace(*f)
	}
}
