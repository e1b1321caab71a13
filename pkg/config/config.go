package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/knijam/jason/pkg/props"
)

const mask = "********"

// Config is a validated configuration document. It is read-only.
type Config struct {
	def *Definition
	doc *props.Document
}

func (c *Config) Name() string {
	return c.def.Name()
}

func (c *Config) Definition() *Definition {
	return c.def
}

func (c *Config) Document() *props.Document {
	return c.doc
}

// Requires reports whether the config provides m.
func (c *Config) Requires(m Mixin) bool {
	return c.def.Requires(m)
}

// Require returns a *MixinError when the config does not provide m.
func (c *Config) Require(m Mixin, item string, condition ...string) error {
	return c.def.Require(m, item, condition...)
}

func (c *Config) Get(key string) any            { return c.doc.Get(key) }
func (c *Config) Lookup(key string) (any, bool) { return c.doc.Lookup(key) }
func (c *Config) Has(key string) bool           { return c.doc.Has(key) }
func (c *Config) String(key string) string      { return c.doc.String(key) }
func (c *Config) Int(key string) int64          { return c.doc.Int(key) }
func (c *Config) Float(key string) float64      { return c.doc.Float(key) }
func (c *Config) Bool(key string) bool          { return c.doc.Bool(key) }
func (c *Config) Time(key string) time.Time     { return c.doc.Time(key) }
func (c *Config) Slice(key string) []any        { return c.doc.Slice(key) }
func (c *Config) Decode(out any) error          { return c.doc.Decode(out) }
func (c *Config) Map() map[string]any           { return c.doc.Map() }
func (c *Config) Fields() []string              { return c.doc.Fields() }

// StringPtr returns nil for a null value.
func (c *Config) StringPtr(key string) *string {
	s, ok := c.doc.Get(key).(string)
	if !ok {
		return nil
	}
	return &s
}

// Dump renders one KEY=value line per field in declaration order.
// Values of sensitive properties are masked; null renders as an empty value.
func (c *Config) Dump() string {
	schema := c.def.Schema()
	lines := make([]string, 0, len(c.doc.Fields()))
	for _, name := range c.doc.Fields() {
		v := c.doc.Get(name)
		p, _ := schema.Field(name)
		if s, ok := p.(props.Sensitive); ok && s.Sensitive() && v != nil {
			lines = append(lines, name+"="+mask)
			continue
		}
		lines = append(lines, name+"="+formatValue(v))
	}
	return strings.Join(lines, "\n")
}

func formatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case time.Time:
		return val.Format(time.RFC3339)
	case []any:
		parts := make([]string, len(val))
		for i, item := range val {
			parts[i] = formatValue(item)
		}
		return strings.Join(parts, ",")
	default:
		return fmt.Sprint(val)
	}
}

// MixinError reports an integration wired against a config that does not
// provide the mixin the integration needs.
type MixinError struct {
	Config    string
	Mixin     string
	Item      string
	Condition string
	Missing   []string
}

func (e *MixinError) Error() string {
	msg := fmt.Sprintf("could not initialise %s: config %q must include %s", e.Item, e.Config, e.Mixin)
	if e.Condition != "" {
		msg += " " + e.Condition
	}
	return msg + " (missing " + strings.Join(e.Missing, ", ") + ")"
}

func (e *MixinError) Is(target error) bool {
	return target == ErrMixinRequired
}
