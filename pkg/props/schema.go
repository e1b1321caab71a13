package props

import "fmt"

// Field binds a property to a name within a schema.
type Field struct {
	Name string
	Prop Property
}

// Named is shorthand for Field{Name: name, Prop: p}.
func Named(name string, p Property) Field {
	return Field{Name: name, Prop: p}
}

// Schema is an ordered, immutable set of named properties.
// It is safe for concurrent use.
type Schema struct {
	name   string
	fields []Field
	index  map[string]int
}

// NewSchema panics on an empty or duplicate field name.
func NewSchema(name string, fields ...Field) *Schema {
	s := &Schema{
		name:   name,
		fields: make([]Field, 0, len(fields)),
		index:  make(map[string]int, len(fields)),
	}
	for _, f := range fields {
		if f.Name == "" {
			panic(fmt.Sprintf("props: schema %q has a field without a name", name))
		}
		if f.Prop == nil {
			panic(fmt.Sprintf("props: schema %q field %q has no property", name, f.Name))
		}
		if _, dup := s.index[f.Name]; dup {
			panic(fmt.Sprintf("props: schema %q declares field %q twice", name, f.Name))
		}
		s.index[f.Name] = len(s.fields)
		s.fields = append(s.fields, f)
	}
	return s
}

// Extend returns a new schema with s's fields followed by fields.
func (s *Schema) Extend(name string, fields ...Field) *Schema {
	all := make([]Field, 0, len(s.fields)+len(fields))
	all = append(all, s.fields...)
	all = append(all, fields...)
	return NewSchema(name, all...)
}

// Merge concatenates the fields of schemas in order.
// It panics if two schemas declare the same field.
func Merge(name string, schemas ...*Schema) *Schema {
	var all []Field
	for _, s := range schemas {
		all = append(all, s.fields...)
	}
	return NewSchema(name, all...)
}

func (s *Schema) Name() string {
	return s.name
}

// Fields returns the declared fields in order.
func (s *Schema) Fields() []Field {
	return append([]Field(nil), s.fields...)
}

// Names returns the declared field names in order.
func (s *Schema) Names() []string {
	out := make([]string, len(s.fields))
	for i, f := range s.fields {
		out[i] = f.Name
	}
	return out
}

// Field returns the property declared under name.
func (s *Schema) Field(name string) (Property, bool) {
	i, ok := s.index[name]
	if !ok {
		return nil, false
	}
	return s.fields[i].Prop, true
}

func (s *Schema) Has(name string) bool {
	_, ok := s.index[name]
	return ok
}

// Load validates raw field by field. A value in overrides wins over raw, and
// later overrides win over earlier ones. Keys not declared by the schema are
// ignored.
//
// Every field is checked before returning. On failure the result is a
// *BatchError holding each failure with its path from the schema root.
func (s *Schema) Load(raw map[string]any, overrides ...map[string]any) (*Document, error) {
	values := make(map[string]any, len(s.fields))
	var c collector
	for _, f := range s.fields {
		v, err := f.Prop.Load(lookup(f.Name, raw, overrides))
		if err != nil {
			c.add(Path{f.Name}, err)
			continue
		}
		values[f.Name] = v
	}
	if err := c.err(); err != nil {
		return nil, err
	}
	return &Document{schema: s, values: values}, nil
}

func lookup(name string, raw map[string]any, overrides []map[string]any) any {
	for i := len(overrides) - 1; i >= 0; i-- {
		if v, ok := overrides[i][name]; ok {
			return v
		}
	}
	if v, ok := raw[name]; ok {
		return v
	}
	return Absent
}

// RequestSchema is a Schema for request bodies. Its Load reports failures as
// a *RequestValidationError.
type RequestSchema struct {
	*Schema
}

func NewRequestSchema(name string, fields ...Field) *RequestSchema {
	return &RequestSchema{Schema: NewSchema(name, fields...)}
}

func (s *RequestSchema) Load(raw map[string]any, overrides ...map[string]any) (*Document, error) {
	doc, err := s.Schema.Load(raw, overrides...)
	if err != nil {
		return nil, &RequestValidationError{Schema: s.name, Batch: ExtractBatchError(err)}
	}
	return doc, nil
}
