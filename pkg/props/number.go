package props

import (
	"strconv"

	"github.com/knijam/jason/pkg/validator"
)

type numberKind int

const (
	intKind numberKind = iota
	floatKind
	anyNumberKind
)

// NumberProperty covers Int, Float and Number. Bounds are inclusive.
type NumberProperty struct {
	base
	kind numberKind
	min  *bound
	max  *bound
}

func newNumber(kind numberKind, opts []Option) *NumberProperty {
	s := newSettings(opts)
	if s.hasDefault {
		s.def = normalizeNumber(kind, s.def)
	}
	return &NumberProperty{base: newBase(s), kind: kind, min: s.min, max: s.max}
}

// normalizeNumber converts a default written as any Go number to the type
// Load would produce, so Default(8080) on an Int reads back as int64.
// Bounds are not checked; values that are not numbers are kept as given.
func normalizeNumber(kind numberKind, v any) any {
	switch kind {
	case intKind:
		if i, ok := toInt64(v); ok {
			return i
		}
	case floatKind:
		if f, ok := toFloat64(v); ok {
			return f
		}
	default:
		if isInteger(v) {
			if i, ok := toInt64(v); ok {
				return i
			}
		}
		if f, ok := toFloat64(v); ok {
			return f
		}
	}
	return v
}

// Int accepts integers and integral floats (as decoded from JSON) and coerces to int64.
func Int(opts ...Option) *NumberProperty {
	return newNumber(intKind, opts)
}

// Float accepts any number and coerces to float64.
func Float(opts ...Option) *NumberProperty {
	return newNumber(floatKind, opts)
}

// Number keeps integers as int64 and everything else as float64.
func Number(opts ...Option) *NumberProperty {
	return newNumber(anyNumberKind, opts)
}

func (p *NumberProperty) Load(raw any) (any, error) {
	return p.load(raw, p.coerce)
}

func (p *NumberProperty) coerce(v any) (any, error) {
	switch p.kind {
	case intKind:
		i, ok := toInt64(v)
		if !ok {
			return nil, typeError("an integer", v)
		}
		return result(i, p.checkInt(i))
	case floatKind:
		f, ok := toFloat64(v)
		if !ok {
			return nil, typeError("a number", v)
		}
		return result(f, p.checkFloat(f))
	default:
		if isInteger(v) {
			if i, ok := toInt64(v); ok {
				return result(i, p.checkInt(i))
			}
		}
		f, ok := toFloat64(v)
		if !ok {
			return nil, typeError("a number", v)
		}
		return result(f, p.checkFloat(f))
	}
}

func result(v any, err error) (any, error) {
	if err != nil {
		return nil, err
	}
	return v, nil
}

func (p *NumberProperty) checkInt(i int64) error {
	if p.min != nil && p.max != nil && p.min.isInt && p.max.isInt {
		return checkRules(RangeViolation, i, validator.Between("", i, p.min.i, p.max.i))
	}
	var rules []validator.Rule
	if p.min != nil {
		if p.min.isInt {
			rules = append(rules, validator.MinNum("", i, p.min.i))
		} else {
			rules = append(rules, validator.MinNum("", float64(i), p.min.f))
		}
	}
	if p.max != nil {
		if p.max.isInt {
			rules = append(rules, validator.MaxNum("", i, p.max.i))
		} else {
			rules = append(rules, validator.MaxNum("", float64(i), p.max.f))
		}
	}
	return checkRules(RangeViolation, i, rules...)
}

func (p *NumberProperty) checkFloat(f float64) error {
	switch {
	case p.min != nil && p.max != nil:
		return checkRules(RangeViolation, f, validator.Between("", f, p.min.f, p.max.f))
	case p.min != nil:
		return checkRules(RangeViolation, f, validator.MinNum("", f, p.min.f))
	case p.max != nil:
		return checkRules(RangeViolation, f, validator.MaxNum("", f, p.max.f))
	}
	return nil
}

func (p *NumberProperty) ParseText(s string) (any, bool) {
	if p.kind != floatKind {
		if i, err := strconv.ParseInt(s, 10, 64); err == nil {
			return i, true
		}
		if p.kind == intKind {
			return nil, false
		}
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, false
	}
	return f, true
}

// BoolProperty is strict: numbers and strings are never truthy.
type BoolProperty struct {
	base
}

func Bool(opts ...Option) *BoolProperty {
	return &BoolProperty{base: newBase(newSettings(opts))}
}

func (p *BoolProperty) Load(raw any) (any, error) {
	return p.load(raw, func(v any) (any, error) {
		b, ok := v.(bool)
		if !ok {
			return nil, typeError("a boolean", v)
		}
		return b, nil
	})
}

func (p *BoolProperty) ParseText(s string) (any, bool) {
	b, err := strconv.ParseBool(s)
	if err != nil {
		return nil, false
	}
	return b, true
}
