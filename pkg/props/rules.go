package props

// AnyOfProperty is a union of alternatives tried in declaration order.
type AnyOfProperty struct {
	alternatives []Property
}

// AnyOf returns the first alternative that loads the value. The order is the
// tie-break for ambiguous input: AnyOf(Int(), String()) keeps 5 an integer
// while AnyOf(String(), Int()) rejects it as a string and then accepts it as an int.
//
// When every alternative fails, the result is a NoAlternativeMatched error
// carrying each alternative's failure in Causes. Absent and null input that no
// alternative accepts fail with Missing and NullNotAllowed respectively.
func AnyOf(alternatives ...Property) *AnyOfProperty {
	return &AnyOfProperty{alternatives: append([]Property(nil), alternatives...)}
}

func (p *AnyOfProperty) Load(raw any) (any, error) {
	causes := make([]error, 0, len(p.alternatives))
	for _, alt := range p.alternatives {
		v, err := alt.Load(raw)
		if err == nil {
			return v, nil
		}
		causes = append(causes, err)
	}

	switch {
	case IsAbsent(raw):
		return nil, missingError()
	case raw == nil:
		return nil, nullError()
	}

	err := newError(NoAlternativeMatched, raw, "validation.any_of",
		"must match one of %d alternatives", len(p.alternatives))
	err.Causes = causes
	return nil, err
}

// Required is true only when no alternative accepts absent input.
func (p *AnyOfProperty) Required() bool {
	for _, alt := range p.alternatives {
		if !alt.Required() {
			return false
		}
	}
	return true
}

func (p *AnyOfProperty) Alternatives() []Property {
	return append([]Property(nil), p.alternatives...)
}

// ParseText converts s with the first alternative that accepts it, the same
// alternative Load would pick. Alternatives without a text parser see s
// unchanged, so AnyOf(String(), Int()) keeps "5" a string.
func (p *AnyOfProperty) ParseText(s string) (any, bool) {
	for _, alt := range p.alternatives {
		v := ParseText(alt, s)
		if _, err := alt.Load(v); err == nil {
			return v, true
		}
	}
	return nil, false
}
