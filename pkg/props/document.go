package props

import (
	"errors"
	"maps"
	"time"

	"github.com/mitchellh/mapstructure"
)

// ErrDecode is returned when a document cannot be decoded into a struct.
var ErrDecode = errors.New("failed to decode document")

// Document is the result of a successful schema load. It holds exactly one
// coerced value per declared field and is never modified.
type Document struct {
	schema *Schema
	values map[string]any
}

func (d *Document) Schema() *Schema {
	return d.schema
}

// Get returns the value of name, or nil for an undeclared field.
func (d *Document) Get(name string) any {
	return d.values[name]
}

// Lookup reports whether name is a declared field.
func (d *Document) Lookup(name string) (any, bool) {
	v, ok := d.values[name]
	return v, ok
}

// Has reports whether name is declared and not null.
func (d *Document) Has(name string) bool {
	return d.values[name] != nil
}

// Fields returns the field names in declaration order.
func (d *Document) Fields() []string {
	return d.schema.Names()
}

// Map returns a copy of the values.
func (d *Document) Map() map[string]any {
	return maps.Clone(d.values)
}

// String returns the string value of name, or "" when it is null or not a string.
func (d *Document) String(name string) string {
	s, _ := d.values[name].(string)
	return s
}

// Int returns the integer value of name, or 0 when it is null or not an integer.
func (d *Document) Int(name string) int64 {
	i, _ := d.values[name].(int64)
	return i
}

// Float returns the numeric value of name as a float64.
func (d *Document) Float(name string) float64 {
	switch v := d.values[name].(type) {
	case float64:
		return v
	case int64:
		return float64(v)
	}
	return 0
}

func (d *Document) Bool(name string) bool {
	b, _ := d.values[name].(bool)
	return b
}

func (d *Document) Time(name string) time.Time {
	t, _ := d.values[name].(time.Time)
	return t
}

func (d *Document) Slice(name string) []any {
	s, _ := d.values[name].([]any)
	return s
}

// Doc returns the sub-document of a Nested, Model or Inline field.
// It returns nil for null values and for fields of any other kind.
func (d *Document) Doc(name string) *Document {
	m, ok := d.values[name].(map[string]any)
	if !ok {
		return nil
	}
	p, _ := d.schema.Field(name)
	sub, ok := p.(SubSchema)
	if !ok {
		return nil
	}
	return &Document{schema: sub.Schema(), values: maps.Clone(m)}
}

// Decode copies the document into out, a pointer to a struct. Struct fields
// are matched by their `prop` tag, falling back to a case-insensitive name match.
//
//	type Signup struct {
//		Email    string    `prop:"email"`
//		Age      int       `prop:"age"`
//		Birthday time.Time `prop:"birthday"`
//	}
func (d *Document) Decode(out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName: "prop",
		Result:  out,
	})
	if err != nil {
		return errors.Join(ErrDecode, err)
	}
	if err := dec.Decode(d.values); err != nil {
		return errors.Join(ErrDecode, err)
	}
	return nil
}
