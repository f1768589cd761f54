package validator

import (
	"errors"
	"reflect"
	"strings"

	val "github.com/go-playground/validator/v10"
)

var messages = map[string]string{
	"required":         "{field} is required",
	"required_without": "{field} is required when {param} is not set",
	"gt":               "{field} must be greater than {param}",
	"gte":              "{field} must be greater than or equal to {param}",
	"lte":              "{field} must be less than or equal to {param}",
	"oneof":            "{field} must be one of {param}",
	"max":              "{field} must be less than or equal to {param}",
	"min":              "{field} must be greater than or equal to {param}",
	"email":            "{field} must be a valid email address",
	"uuid":             "{field} must be a valid UUID",
	"date":             "{field} must be a date in YYYY-MM-DD format",
	"unique":           "{field} must not contain duplicates",
}

// Length tags read differently on strings and lists.
var lengthMessages = map[string]string{
	"max": "{field} must be at most {param} characters",
	"min": "{field} must be at least {param} characters",
}

func template(fieldErr val.FieldError) string {
	if fieldErr.Kind() == reflect.String {
		if msg, ok := lengthMessages[fieldErr.Tag()]; ok {
			return msg
		}
	}

	return messages[fieldErr.Tag()]
}

// message renders the first validation failure with a known template, so
// clients see one actionable sentence per request.
func message(err error) string {
	var valErrors val.ValidationErrors
	if !errors.As(err, &valErrors) {
		return err.Error()
	}

	for _, fieldErr := range valErrors {
		msg := template(fieldErr)
		if msg == "" {
			continue
		}

		return strings.NewReplacer("{field}", fieldErr.Field(), "{param}", fieldErr.Param()).Replace(msg)
	}

	return valErrors.Error()
}
