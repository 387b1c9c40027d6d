// Package validation wraps go-playground/validator with the conventions used
// across the domain services: JSON field names in messages and a notblank rule.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

const notBlankTag = "notblank"

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Use JSON tag names for errors instead of Go struct names.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = v.RegisterValidation(notBlankTag, notBlank)
	return v
}

func notBlank(fl validator.FieldLevel) bool {
	field := fl.Field()
	switch field.Kind() {
	case reflect.String:
		return strings.TrimSpace(field.String()) != ""
	case reflect.Pointer:
		if field.IsNil() {
			return true
		}
		if field.Elem().Kind() == reflect.String {
			return strings.TrimSpace(field.Elem().String()) != ""
		}
		return true
	default:
		return !field.IsZero()
	}
}

// FieldErrors lists the JSON names of fields that failed validation.
type FieldErrors struct {
	Fields map[string]string
}

func (e *FieldErrors) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, fmt.Sprintf("%s (%s)", name, e.Fields[name]))
	}
	return "invalid fields: " + strings.Join(parts, ", ")
}

// Struct validates v and wraps any failure with sentinel so callers can keep
// matching their own package error.
func Struct(v any, sentinel error) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", sentinel, err)
	}

	fe := &FieldErrors{Fields: make(map[string]string, len(verrs))}
	for _, ve := range verrs {
		name := ve.Field()
		if name == "" {
			name = ve.StructField()
		}
		fe.Fields[name] = ve.Tag()
	}
	return fmt.Errorf("%w: %w", sentinel, fe)
}

// Fields returns the invalid field names carried by err, if any.
func Fields(err error) []string {
	var fe *FieldErrors
	if !errors.As(err, &fe) {
		return nil
	}
	names := make([]string, 0, len(fe.Fields))
	for name := range fe.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
