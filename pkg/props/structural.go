package props

import (
	"strings"

	"github.com/knijam/jason/pkg/validator"
)

// SubSchema is implemented by properties that load a mapping through a schema.
type SubSchema interface {
	Schema() *Schema
}

// ArrayProperty validates every element of a sequence with one item property.
type ArrayProperty struct {
	base
	item     Property
	minItems *int
	maxItems *int
}

// Array collects every element failure under its index instead of stopping
// at the first one. Count failures from MinItems and MaxItems are reported at
// the array itself.
func Array(item Property, opts ...Option) *ArrayProperty {
	s := newSettings(opts)
	return &ArrayProperty{base: newBase(s), item: item, minItems: s.minItems, maxItems: s.maxItems}
}

func (p *ArrayProperty) Load(raw any) (any, error) {
	return p.load(raw, func(v any) (any, error) {
		items, ok := toSequence(v)
		if !ok {
			return nil, typeError("an array", v)
		}

		var c collector
		var countRules []validator.Rule
		if p.minItems != nil {
			countRules = append(countRules, validator.MinItems("", len(items), *p.minItems))
		}
		if p.maxItems != nil {
			countRules = append(countRules, validator.MaxItems("", len(items), *p.maxItems))
		}
		if err := checkRules(RangeViolation, v, countRules...); err != nil {
			c.add(Path{}, err)
		}

		out := make([]any, len(items))
		for i, item := range items {
			coerced, err := p.item.Load(item)
			if err != nil {
				c.add(Path{i}, err)
				continue
			}
			out[i] = coerced
		}
		if err := c.err(); err != nil {
			return nil, err
		}
		return out, nil
	})
}

func (p *ArrayProperty) Item() Property {
	return p.item
}

// ParseText splits s on commas and parses each element with the item property.
// An empty string is an empty array.
func (p *ArrayProperty) ParseText(s string) (any, bool) {
	if strings.TrimSpace(s) == "" {
		return []any{}, true
	}
	parts := strings.Split(s, ",")
	out := make([]any, len(parts))
	for i, part := range parts {
		out[i] = ParseText(p.item, strings.TrimSpace(part))
	}
	return out, true
}

// NestedProperty loads a mapping through a reusable schema.
type NestedProperty struct {
	base
	schema *Schema
}

// Nested returns the loaded sub-document as a map[string]any. Its failures carry
// paths relative to the mapping; the enclosing schema prefixes the field name.
func Nested(schema *Schema, opts ...Option) *NestedProperty {
	return &NestedProperty{base: newBase(newSettings(opts)), schema: schema}
}

func (p *NestedProperty) Load(raw any) (any, error) {
	return p.load(raw, func(v any) (any, error) {
		m, ok := toMapping(v)
		if !ok {
			return nil, typeError("an object", v)
		}
		doc, err := p.schema.Load(m)
		if err != nil {
			return nil, err
		}
		return doc.Map(), nil
	})
}

func (p *NestedProperty) Schema() *Schema {
	return p.schema
}

// ModelProperty is a Nested property bound to a named entity type.
// The name only documents what the sub-document represents.
type ModelProperty struct {
	*NestedProperty
	model string
}

func Model(name string, schema *Schema, opts ...Option) *ModelProperty {
	return &ModelProperty{NestedProperty: Nested(schema, opts...), model: name}
}

func (p *ModelProperty) ModelName() string {
	return p.model
}

// Inline declares an anonymous sub-schema in place.
//
//	props.Inline([]props.Field{
//		props.Named("street", props.String()),
//		props.Named("zip", props.Regex(`\d{5}`)),
//	})
func Inline(fields []Field, opts ...Option) *NestedProperty {
	return Nested(NewSchema("", fields...), opts...)
}

// CompoundProperty applies several properties to one value in sequence.
type CompoundProperty struct {
	steps []Property
}

// Compound feeds each property the value produced by the previous one and
// stops at the first failure. Absent and null input are resolved by the first
// property alone. It panics when called without properties.
func Compound(steps ...Property) *CompoundProperty {
	if len(steps) == 0 {
		panic("props: compound requires at least one property")
	}
	return &CompoundProperty{steps: append([]Property(nil), steps...)}
}

func (p *CompoundProperty) Load(raw any) (any, error) {
	if IsAbsent(raw) || raw == nil {
		return p.steps[0].Load(raw)
	}
	v := raw
	for _, step := range p.steps {
		next, err := step.Load(v)
		if err != nil {
			return nil, err
		}
		v = next
	}
	return v, nil
}

func (p *CompoundProperty) Required() bool {
	return p.steps[0].Required()
}

func (p *CompoundProperty) ParseText(s string) (any, bool) {
	if tp, ok := p.steps[0].(TextParser); ok {
		return tp.ParseText(s)
	}
	return nil, false
}

func (p *CompoundProperty) Sensitive() bool {
	for _, step := range p.steps {
		if s, ok := step.(Sensitive); ok && s.Sensitive() {
			return true
		}
	}
	return false
}
