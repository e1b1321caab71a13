package config

import (
	"errors"
	"fmt"
	"slices"

	"github.com/knijam/jason/pkg/props"
)

// Definition declares the fields of an application config document and the
// mixins it provides. It is immutable and safe for concurrent use.
type Definition struct {
	schema *props.Schema
	mixins []Mixin
}

// Define merges the fields of mixins, in order, with fields. An own field
// replaces a mixin field of the same name in place, which is how a service
// changes a mixin default. Two mixins declaring the same field panic.
//
//	var AppConfig = config.Define("app", []props.Field{
//		props.Named("SIGNUP_ENABLED", props.Bool(props.Default(false))),
//		props.Named(config.ServePort, props.Int(props.Default(int64(8080)))),
//	}, config.ServiceMixin, config.PostgresMixin)
func Define(name string, fields []props.Field, mixins ...Mixin) *Definition {
	own := make(map[string]props.Field, len(fields))
	for _, f := range fields {
		own[f.Name] = f
	}

	all := make([]props.Field, 0, len(fields))
	for _, m := range mixins {
		for _, f := range m.Fields {
			if o, ok := own[f.Name]; ok {
				all = append(all, o)
				delete(own, f.Name)
				continue
			}
			all = append(all, f)
		}
	}
	for _, f := range fields {
		if _, ok := own[f.Name]; ok {
			all = append(all, f)
		}
	}

	return &Definition{
		schema: props.NewSchema(name, all...),
		mixins: append([]Mixin(nil), mixins...),
	}
}

func (d *Definition) Name() string {
	return d.schema.Name()
}

func (d *Definition) Schema() *props.Schema {
	return d.schema
}

// Mixins returns the names of the mixins the definition was built with.
func (d *Definition) Mixins() []string {
	out := make([]string, len(d.mixins))
	for i, m := range d.mixins {
		out[i] = m.Name
	}
	return out
}

// Requires reports whether the definition provides m, either by including it
// or by declaring every one of its field names.
func (d *Definition) Requires(m Mixin) bool {
	return len(d.missing(m)) == 0
}

// Require returns a *MixinError when the definition does not provide m.
// item names what is being wired and condition, if given, says why m is needed.
func (d *Definition) Require(m Mixin, item string, condition ...string) error {
	missing := d.missing(m)
	if len(missing) == 0 {
		return nil
	}
	return &MixinError{
		Config:    d.Name(),
		Mixin:     m.Name,
		Item:      item,
		Condition: firstOr(condition, ""),
		Missing:   missing,
	}
}

func (d *Definition) missing(m Mixin) []string {
	if slices.ContainsFunc(d.mixins, func(have Mixin) bool { return have.Name == m.Name }) {
		return nil
	}
	var missing []string
	for _, name := range m.Names() {
		if !d.schema.Has(name) {
			missing = append(missing, name)
		}
	}
	return missing
}

// Load validates the process environment, with overrides taking precedence.
func (d *Definition) Load(overrides map[string]any) (*Config, error) {
	return d.LoadFrom(EnvSource(), overrides)
}

// LoadFrom validates the values of src, with overrides taking precedence.
// Text values are parsed by the field's property first, so "8080" loads into
// an Int field. Override values are used as given.
//
// On failure the error matches ErrInvalidConfig and carries the
// *props.BatchError with every failing field.
func (d *Definition) LoadFrom(src Source, overrides map[string]any) (*Config, error) {
	values, err := src.Values()
	if err != nil {
		return nil, err
	}

	raw := make(map[string]any, len(values))
	for _, f := range d.schema.Fields() {
		v, ok := values[f.Name]
		if !ok {
			continue
		}
		if s, isText := v.(string); isText {
			v = props.ParseText(f.Prop, s)
		}
		raw[f.Name] = v
	}

	doc, err := d.schema.Load(raw, overrides)
	if err != nil {
		return nil, errors.Join(fmt.Errorf("%w %q", ErrInvalidConfig, d.Name()), err)
	}
	return &Config{def: d, doc: doc}, nil
}

// MustLoad works like Load but panics on failure.
func (d *Definition) MustLoad(overrides map[string]any) *Config {
	cfg, err := d.Load(overrides)
	if err != nil {
		panic(fmt.Sprintf("Failed to load required configuration: %v", err))
	}
	return cfg
}

func firstOr(values []string, fallback string) string {
	if len(values) > 0 {
		return values[0]
	}
	return fallback
}
