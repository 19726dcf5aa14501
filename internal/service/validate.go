package service

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// ValidateStruct runs tag validation and returns a field-keyed message map,
// nil when the input is valid. Field names follow the JSON casing callers
// submitted, not Go struct names.
func ValidateStruct(input any) map[string]string {
	err := validate.Struct(input)
	if err == nil {
		return nil
	}

	ve, ok := err.(validator.ValidationErrors)
	if !ok {
		return map[string]string{"_": "invalid input"}
	}

	fields := make(map[string]string, len(ve))
	for _, fe := range ve {
		fields[jsonFieldName(fe.Field())] = messageFor(fe)
	}
	return fields
}

func jsonFieldName(field string) string {
	if field == "" {
		return field
	}
	return strings.ToLower(field[:1]) + field[1:]
}

func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "this field is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", fe.Param())
	default:
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}
