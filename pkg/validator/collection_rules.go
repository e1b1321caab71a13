package validator

import "fmt"

// MinItems checks an already computed item count.
// Useful when the collection is only known through reflection.
func MinItems(field string, count, min int) Rule {
	return Rule{
		Check: func() bool {
			return count >= min
		},
		Error: ValidationError{
			Field:          field,
			Message:        fmt.Sprintf("must have at least %d items", min),
			TranslationKey: "validation.min_items",
			TranslationValues: map[string]any{
				"field": field,
				"min":   min,
			},
		},
	}
}

func MaxItems(field string, count, max int) Rule {
	return Rule{
		Check: func() bool {
			return count <= max
		},
		Error: ValidationError{
			Field:          field,
			Message:        fmt.Sprintf("must have at most %d items", max),
			TranslationKey: "validation.max_items",
			TranslationValues: map[string]any{
				"field": field,
				"max":   max,
			},
		},
	}
}
