package dto

import (
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"

	autherror "github.com/nocturnedev/auth-service/internal/errors"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// password: at least one upper, one lower, one digit. Length is
	// enforced separately by the min tag.
	_ = v.RegisterValidation("password", func(fl validator.FieldLevel) bool {
		var hasUpper, hasLower, hasDigit bool
		for _, r := range fl.Field().String() {
			switch {
			case unicode.IsUpper(r):
				hasUpper = true
			case unicode.IsLower(r):
				hasLower = true
			case unicode.IsDigit(r):
				hasDigit = true
			}
		}
		return hasUpper && hasLower && hasDigit
	})

	return v
}

// Validate checks the struct tags on input and returns a
// *autherror.ValidationError with one message per offending field, or
// nil when the input is well formed.
func Validate(input any) error {
	err := validate.Struct(input)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}

	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[fieldName(fe)] = message(fe)
	}
	return autherror.NewValidationError(fields)
}

func fieldName(fe validator.FieldError) string {
	// StructField is CamelCase; the API speaks snake_case.
	var b strings.Builder
	for i, r := range fe.StructField() {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteByte('_')
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return "must be at least " + fe.Param() + " characters long"
	case "password":
		return "must contain an uppercase letter, a lowercase letter and a number"
	default:
		return "is invalid"
	}
}
