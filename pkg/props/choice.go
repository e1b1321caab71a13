package props

import (
	"fmt"

	"github.com/knijam/jason/pkg/validator"
)

// ChoiceProperty restricts any property to a finite set of values.
type ChoiceProperty struct {
	inner   Property
	allowed []any
}

// Choice wraps inner and requires the coerced value to equal one of values.
// The values are coerced through inner at definition time, so Choice(Int(), 1, 2)
// matches a JSON 2.0. It panics if a value is rejected by inner.
//
// Absent and null input are resolved by inner alone: its default or null is
// returned without the choice check.
func Choice(inner Property, values ...any) *ChoiceProperty {
	allowed := make([]any, 0, len(values))
	for _, v := range values {
		c, err := inner.Load(v)
		if err != nil {
			panic(fmt.Sprintf("props: choice %v rejected by its base property: %v", v, err))
		}
		allowed = append(allowed, c)
	}
	return &ChoiceProperty{inner: inner, allowed: allowed}
}

func (p *ChoiceProperty) Load(raw any) (any, error) {
	if IsAbsent(raw) || raw == nil {
		return p.inner.Load(raw)
	}
	v, err := p.inner.Load(raw)
	if err != nil {
		return nil, err
	}
	if err := checkRules(ChoiceViolation, v, validator.InListFunc("", v, p.allowed, valuesEqual)); err != nil {
		return nil, err
	}
	return v, nil
}

func (p *ChoiceProperty) Required() bool {
	return p.inner.Required()
}

// Values returns the coerced allowed values.
func (p *ChoiceProperty) Values() []any {
	return append([]any(nil), p.allowed...)
}

func (p *ChoiceProperty) ParseText(s string) (any, bool) {
	if tp, ok := p.inner.(TextParser); ok {
		return tp.ParseText(s)
	}
	return nil, false
}

func (p *ChoiceProperty) Sensitive() bool {
	s, ok := p.inner.(Sensitive)
	return ok && s.Sensitive()
}
