package validator

import (
	"fmt"
	"reflect"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

// Validator wraps go-playground validator with the storefront's custom
// rules registered.
type Validator struct {
	validate *validator.Validate
}

// ValidationError represents a single field-level validation failure. It
// blocks submission client-side; nothing is sent to the backend.
type ValidationError struct {
	Field   string `json:"field"`
	Tag     string `json:"tag"`
	Value   string `json:"value,omitempty"`
	Message string `json:"message"`
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	return e.Message
}

// New creates a new validator instance.
func New() *Validator {
	v := validator.New()

	// Use json tag names in error messages
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = v.RegisterValidation("mobile10", validateMobile)
	_ = v.RegisterValidation("strongpwd", validatePassword)

	return &Validator{
		validate: v,
	}
}

// Validate validates a struct.
func (v *Validator) Validate(i interface{}) []ValidationError {
	var validationErrors []ValidationError

	err := v.validate.Struct(i)
	if err != nil {
		for _, err := range err.(validator.ValidationErrors) {
			validationErrors = append(validationErrors, ValidationError{
				Field:   err.Field(),
				Tag:     err.Tag(),
				Value:   fmt.Sprintf("%v", err.Value()),
				Message: msgForTag(err),
			})
		}
	}

	return validationErrors
}

// ValidateVar validates a single variable.
func (v *Validator) ValidateVar(field interface{}, tag string) error {
	return v.validate.Var(field, tag)
}

// StripNonDigits removes every non-digit rune. Mobile-number inputs are
// stripped before their length is checked, matching the input mask.
func StripNonDigits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// IsValidMobile reports whether s is exactly 10 digits after stripping
// non-digit characters.
func IsValidMobile(s string) bool {
	stripped := StripNonDigits(s)
	return len(stripped) == 10 && stripped == s
}

// IsStrongPassword reports whether s satisfies the signup password rule:
// length >= 6, at least one uppercase letter and at least one digit.
func IsStrongPassword(s string) bool {
	if len(s) < 6 {
		return false
	}
	var hasUpper, hasDigit bool
	for _, r := range s {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	return hasUpper && hasDigit
}

func validateMobile(fl validator.FieldLevel) bool {
	return IsValidMobile(fl.Field().String())
}

func validatePassword(fl validator.FieldLevel) bool {
	return IsStrongPassword(fl.Field().String())
}

// msgForTag returns a human-readable message for a validation tag.
func msgForTag(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "email":
		return fmt.Sprintf("%s must be a valid email address", field)
	case "min":
		return fmt.Sprintf("%s must be at least %s characters long", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters long", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", field, fe.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	case "mobile10":
		return "Please enter a valid 10-digit mobile number"
	case "strongpwd":
		return "Password must be at least 6 characters and include one uppercase letter and one number"
	default:
		return fmt.Sprintf("%s failed validation for tag: %s", field, fe.Tag())
	}
}
