package props

import (
	"math"
	"regexp"
)

// Property validates and coerces one raw value.
//
// Load receives Absent when the key was missing from the input, nil for an
// explicit null, and any other already-parsed value otherwise. It returns the
// coerced value or a *PropertyError. Structural properties may return a
// *BatchError whose paths are relative to the value being loaded.
type Property interface {
	Load(raw any) (any, error)
	// Required reports whether Absent input fails with Missing.
	Required() bool
}

// TextParser is implemented by properties whose values can arrive as text,
// such as environment variables. ParseText returns false when s cannot be
// converted; Load then reports the failure on the original string.
type TextParser interface {
	ParseText(s string) (any, bool)
}

// Sensitive is implemented by properties whose values must not be printed.
type Sensitive interface {
	Sensitive() bool
}

type absent struct{}

func (absent) String() string { return "<absent>" }

// Absent marks a key that is not present in the input mapping.
var Absent any = absent{}

// IsAbsent reports whether v is the Absent marker.
func IsAbsent(v any) bool {
	_, ok := v.(absent)
	return ok
}

// ParseText converts s with p's TextParser. Properties without one, or text
// that does not parse, yield s unchanged.
func ParseText(p Property, s string) any {
	if tp, ok := p.(TextParser); ok {
		if v, ok := tp.ParseText(s); ok {
			return v
		}
	}
	return s
}

// Option configures a property at definition time.
// Options that do not apply to a property kind are ignored by it.
type Option func(*settings)

type bound struct {
	isInt bool
	i     int64
	f     float64
}

type settings struct {
	nullable   bool
	def        any
	hasDefault bool
	minLength  *int
	maxLength  *int
	min        *bound
	max        *bound
	choices    []string
	minItems   *int
	maxItems   *int
	pattern    *regexp.Regexp
	expr       string
}

func newSettings(opts []Option) settings {
	var s settings
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// Nullable accepts explicit null and Absent input as nil.
func Nullable() Option {
	return func(s *settings) { s.nullable = true }
}

// Default is returned as-is when the value is absent. Defaults are trusted and
// never run through the property's own checks.
func Default(v any) Option {
	return func(s *settings) {
		s.def = v
		s.hasDefault = true
	}
}

// MinLength sets the minimum string length in characters.
func MinLength(n int) Option {
	return func(s *settings) { s.minLength = &n }
}

// MaxLength sets the maximum string length in characters.
func MaxLength(n int) Option {
	return func(s *settings) { s.maxLength = &n }
}

// Choices restricts a string to an exact, case-sensitive set.
func Choices(values ...string) Option {
	return func(s *settings) { s.choices = append([]string(nil), values...) }
}

// Pattern adds a full-string match requirement to a string property.
// It panics if expr does not compile.
func Pattern(expr string) Option {
	re := compileFull(expr)
	return func(s *settings) {
		s.pattern = re
		s.expr = expr
	}
}

// compileFull anchors expr so alternations cannot settle on a prefix match.
func compileFull(expr string) *regexp.Regexp {
	if _, err := regexp.Compile(expr); err != nil {
		panic("props: invalid pattern: " + err.Error())
	}
	return regexp.MustCompile(`^(?:` + expr + `)$`)
}

// Min sets the inclusive lower bound of a numeric property.
func Min[T int | int32 | int64 | float32 | float64](v T) Option {
	b := newBound(v)
	return func(s *settings) { s.min = &b }
}

// Max sets the inclusive upper bound of a numeric property.
func Max[T int | int32 | int64 | float32 | float64](v T) Option {
	b := newBound(v)
	return func(s *settings) { s.max = &b }
}

func newBound[T int | int32 | int64 | float32 | float64](v T) bound {
	switch n := any(v).(type) {
	case int:
		return bound{isInt: true, i: int64(n), f: float64(n)}
	case int32:
		return bound{isInt: true, i: int64(n), f: float64(n)}
	case int64:
		return bound{isInt: true, i: n, f: float64(n)}
	case float32:
		return newFloatBound(float64(n))
	default:
		return newFloatBound(any(v).(float64))
	}
}

func newFloatBound(f float64) bound {
	if f == math.Trunc(f) && math.Abs(f) < 1<<53 {
		return bound{isInt: true, i: int64(f), f: f}
	}
	return bound{f: f}
}

// MinItems sets the minimum number of elements of an Array.
func MinItems(n int) Option {
	return func(s *settings) { s.minItems = &n }
}

// MaxItems sets the maximum number of elements of an Array.
func MaxItems(n int) Option {
	return func(s *settings) { s.maxItems = &n }
}

// base carries the absent/null handling shared by every property kind.
type base struct {
	nullable   bool
	def        any
	hasDefault bool
}

func newBase(s settings) base {
	return base{nullable: s.nullable, def: s.def, hasDefault: s.hasDefault}
}

func (b base) Required() bool {
	return !b.nullable && !b.hasDefault
}

func (b base) IsNullable() bool {
	return b.nullable
}

// DefaultValue returns the configured default, if any.
func (b base) DefaultValue() (any, bool) {
	return b.def, b.hasDefault
}

// load resolves Absent and null, then hands concrete values to next.
func (b base) load(raw any, next func(any) (any, error)) (any, error) {
	switch {
	case IsAbsent(raw):
		if b.hasDefault {
			return b.def, nil
		}
		if b.nullable {
			return nil, nil
		}
		return nil, missingError()
	case raw == nil:
		if b.nullable {
			return nil, nil
		}
		if b.hasDefault {
			return b.def, nil
		}
		return nil, nullError()
	}
	return next(raw)
}
