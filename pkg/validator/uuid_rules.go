package validator

import (
	"strings"

	"github.com/google/uuid"
)

// ValidUUID validates the canonical 8-4-4-4-12 form. Length and hyphen positions are
// checked first so braced and urn: forms accepted by uuid.Parse are rejected.
func ValidUUID(field, value string) Rule {
	return Rule{
		Check: func() bool {
			if strings.TrimSpace(value) == "" {
				return false
			}

			if len(value) != 36 {
				return false
			}

			if value[8] != '-' || value[13] != '-' || value[18] != '-' || value[23] != '-' {
				return false
			}

			_, err := uuid.Parse(value)
			return err == nil
		},
		Error: ValidationError{
			Field:          field,
			Message:        "must be a valid UUID",
			TranslationKey: "validation.uuid",
			TranslationValues: map[string]any{
				"field": field,
			},
		},
	}
}
