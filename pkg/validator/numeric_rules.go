package validator

import "fmt"

func numericRule(field, key, msg string, ok bool, values map[string]any) Rule {
	values["field"] = field
	return Rule{
		Check: func() bool { return ok },
		Error: ValidationError{
			Field:             field,
			Message:           msg,
			TranslationKey:    key,
			TranslationValues: values,
		},
	}
}

// MinNum is an inclusive lower bound.
func MinNum[T Numeric](field string, value T, min T) Rule {
	return numericRule(field, "validation.min", fmt.Sprintf("must be at least %v", min),
		value >= min, map[string]any{"min": min})
}

// MaxNum is an inclusive upper bound.
func MaxNum[T Numeric](field string, value T, max T) Rule {
	return numericRule(field, "validation.max", fmt.Sprintf("must be at most %v", max),
		value <= max, map[string]any{"max": max})
}

// Between checks both bounds at once so the message names the whole range.
func Between[T Numeric](field string, value, min, max T) Rule {
	return numericRule(field, "validation.between", fmt.Sprintf("must be between %v and %v", min, max),
		value >= min && value <= max, map[string]any{"min": min, "max": max})
}

