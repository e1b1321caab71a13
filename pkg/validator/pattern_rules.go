package validator

import (
	"fmt"
	"regexp"
)

// FullMatch requires the whole value to match re, not just a substring of it.
func FullMatch(field, value string, re *regexp.Regexp, description string) Rule {
	return Rule{
		Check: func() bool {
			loc := re.FindStringIndex(value)
			return loc != nil && loc[0] == 0 && loc[1] == len(value)
		},
		Error: ValidationError{
			Field:          field,
			Message:        fmt.Sprintf("must match %s pattern", description),
			TranslationKey: "validation.regex_pattern",
			TranslationValues: map[string]any{
				"field":       field,
				"pattern":     re.String(),
				"description": description,
			},
		},
	}
}
