package validator

import (
	"fmt"
	"strings"
)

// InListString is a case-sensitive membership check with a readable message.
func InListString(field, value string, allowedValues []string) Rule {
	return Rule{
		Check: func() bool {
			for _, allowed := range allowedValues {
				if value == allowed {
					return true
				}
			}
			return false
		},
		Error: ValidationError{
			Field:          field,
			Message:        fmt.Sprintf("must be one of: %s", strings.Join(allowedValues, ", ")),
			TranslationKey: "validation.in_list",
			TranslationValues: map[string]any{
				"field":          field,
				"allowed_values": allowedValues,
			},
		},
	}
}

// InListFunc matches values that are not comparable with ==, such as slices or maps.
func InListFunc[T any](field string, value T, allowedValues []T, equal func(a, b T) bool) Rule {
	return Rule{
		Check: func() bool {
			for _, allowed := range allowedValues {
				if equal(value, allowed) {
					return true
				}
			}
			return false
		},
		Error: ValidationError{
			Field:          field,
			Message:        fmt.Sprintf("must be one of: %v", allowedValues),
			TranslationKey: "validation.in_list",
			TranslationValues: map[string]any{
				"field":          field,
				"allowed_values": allowedValues,
			},
		},
	}
}
