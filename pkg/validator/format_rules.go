package validator

import (
	"fmt"
	"net/mail"
	"strings"
	"time"
)

// ValidEmail validates that a string is a bare email address: local part, "@",
// and a domain with at least one dot. Display-name forms are rejected.
func ValidEmail(field, value string) Rule {
	return Rule{
		Check: func() bool {
			if strings.TrimSpace(value) == "" {
				return false
			}

			addr, err := mail.ParseAddress(value)
			if err != nil || addr.Address != value {
				return false
			}

			localPart, domain, ok := strings.Cut(value, "@")
			if !ok || localPart == "" {
				return false
			}

			if !strings.Contains(domain, ".") || strings.HasPrefix(domain, ".") || strings.HasSuffix(domain, ".") {
				return false
			}

			for part := range strings.SplitSeq(domain, ".") {
				if part == "" {
					return false
				}
			}

			return true
		},
		Error: ValidationError{
			Field:          field,
			Message:        "must be a valid email address",
			TranslationKey: "validation.email",
			TranslationValues: map[string]any{
				"field": field,
			},
		},
	}
}

// ValidTimeLayout validates that value parses with the given time layout.
func ValidTimeLayout(field, value, layout string) Rule {
	return Rule{
		Check: func() bool {
			_, err := time.Parse(layout, value)
			return err == nil
		},
		Error: ValidationError{
			Field:          field,
			Message:        fmt.Sprintf("must be a date in %s format", layout),
			TranslationKey: "validation.date_format",
			TranslationValues: map[string]any{
				"field":  field,
				"layout": layout,
			},
		},
	}
}
