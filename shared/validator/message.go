package validator

import (
	"errors"
	"strings"

	val "github.com/go-playground/validator/v10"
)

var messages = map[string]string{
	"required": "{field} is required",
	"notblank": "{field} must not be blank",
	"gt":       "{field} must be greater than {param}",
	"gte":      "{field} must be greater than or equal to {param}",
	"lte":      "{field} must be less than or equal to {param}",
	"max":      "{field} must be at most {param} characters",
	"min":      "{field} must be at least {param} characters",
	"oneof":    "{field} must be one of {param}",
	"datetime": "{field} must match format {param}",
	"unique":   "{field} must not contain duplicates",
}

// message describes the first failed rule. Unknown tags fall back to the validator's own text.
func message(err error) string {
	var valErrors val.ValidationErrors
	if !errors.As(err, &valErrors) || len(valErrors) == 0 {
		return err.Error()
	}

	first := valErrors[0]

	template, ok := messages[first.Tag()]
	if !ok {
		return first.Error()
	}

	return strings.NewReplacer("{field}", first.Field(), "{param}", first.Param()).Replace(template)
}
