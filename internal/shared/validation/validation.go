// Package validation registers the custom binding rules and turns binding
// failures into field-level messages.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// phoneRegex accepts an optional leading + followed by 7 to 15 digits.
var phoneRegex = regexp.MustCompile(`^\+?[0-9]{7,15}$`)

var (
	registerOnce sync.Once
	registerErr  error
)

// FieldError describes one failed rule of one request field.
type FieldError struct {
	Field   string `json:"field"`
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

// Register installs the custom rules on gin's validator and makes field
// errors report json names. Safe to call more than once; every call returns
// the outcome of the first.
func Register() error {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			registerErr = fmt.Errorf("validation: unsupported binding engine %T", binding.Validator.Engine())
			return
		}
		v.RegisterTagNameFunc(jsonName)
		if err := v.RegisterValidation("phone", ValidPhone); err != nil {
			registerErr = fmt.Errorf("validation: register phone rule: %w", err)
		}
	})
	return registerErr
}

func jsonName(fld reflect.StructField) string {
	name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
	if name == "-" {
		return ""
	}
	if name == "" {
		name = fld.Tag.Get("form")
	}
	return name
}

// ValidPhone validates a phone number of 7 to 15 digits with an optional +.
func ValidPhone(fl validator.FieldLevel) bool {
	return phoneRegex.MatchString(fl.Field().String())
}

// Describe converts a binding error into field errors. Errors that are not
// validation failures (malformed JSON, wrong types) yield a single entry
// without a field.
func Describe(err error) []FieldError {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return []FieldError{{Rule: "body", Message: "request body is malformed"}}
	}
	out := make([]FieldError, 0, len(ve))
	for _, fe := range ve {
		out = append(out, FieldError{
			Field:   strings.ToLower(fe.Field()),
			Rule:    fe.Tag(),
			Message: message(fe),
		})
	}
	return out
}

func message(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "email":
		return fmt.Sprintf("%s must be a valid email address", field)
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	case "datetime":
		return fmt.Sprintf("%s must be a date formatted as %s", field, fe.Param())
	case "phone":
		return fmt.Sprintf("%s must be 7 to 15 digits, optionally prefixed with +", field)
	default:
		return fmt.Sprintf("%s failed the %s rule", field, fe.Tag())
	}
}
