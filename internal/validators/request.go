// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/MKhiriev/go-ministry-auth/models"
)

var phoneRe = regexp.MustCompile(`^\+?[0-9][0-9 ()\-]{4,31}$`)

type RequestValidator struct {
	validate *validator.Validate
}

// NewRequestValidator builds a Validator for the request models. Field
// names in errors are taken from the `json` tags.
func NewRequestValidator() Validator {
	validate := validator.New(validator.WithRequiredStructEnabled())

	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// registration only fails for an empty tag or nil func
	_ = validate.RegisterValidation("user_role", validateUserRole)
	_ = validate.RegisterValidation("phone", validatePhone)

	return &RequestValidator{validate: validate}
}

// Validate checks obj against its `validate` tags. When fields are given,
// only those (Go field names, dotted for nested structs) are checked.
//
// It returns a *FieldError for the first failing field,
// ErrUnsupportedType when obj is not a struct, or nil.
func (v *RequestValidator) Validate(_ context.Context, obj any, fields ...string) error {
	var err error
	if len(fields) > 0 {
		err = v.validate.StructPartial(obj, fields...)
	} else {
		err = v.validate.Struct(obj)
	}
	if err == nil {
		return nil
	}

	var invalid *validator.InvalidValidationError
	if errors.As(err, &invalid) {
		return fmt.Errorf("%w: %s", ErrUnsupportedType, invalid.Error())
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		return &FieldError{Field: fe.Field(), Message: message(fe)}
	}

	return err
}

func message(fe validator.FieldError) string {
	label := fieldLabel(fe.Field())

	switch fe.Tag() {
	case "required":
		return label + " is required"
	case "email":
		return label + " must be a valid email address"
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", label, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", label, fe.Param())
	case "user_role":
		return label + " must be one of student, instructor, admin"
	case "phone":
		return label + " must be a valid phone number"
	default:
		return label + " is invalid"
	}
}

// fieldLabel turns a JSON field name into a sentence subject:
// "firstName" becomes "First name".
func fieldLabel(field string) string {
	if field == "" {
		return "Value"
	}

	var b strings.Builder
	for i, r := range field {
		switch {
		case i == 0:
			b.WriteString(strings.ToUpper(string(r)))
		case r >= 'A' && r <= 'Z':
			b.WriteByte(' ')
			b.WriteString(strings.ToLower(string(r)))
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

func validateUserRole(fl validator.FieldLevel) bool {
	return models.Role(fl.Field().String()).Valid()
}

func validatePhone(fl validator.FieldLevel) bool {
	return phoneRe.MatchString(fl.Field().String())
}
