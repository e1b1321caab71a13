package props

import (
	"errors"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/knijam/jason/pkg/validator"
)

// StringProperty accepts strings only, with optional length, choice and pattern constraints.
type StringProperty struct {
	base
	minLength *int
	maxLength *int
	choices   []string
	pattern   *regexp.Regexp
	expr      string
}

// String builds a string property.
//
//	props.String(props.MinLength(3), props.MaxLength(64))
//	props.String(props.Choices("rabbitmq", "redis"), props.Default("rabbitmq"))
func String(opts ...Option) *StringProperty {
	return newString(newSettings(opts))
}

func newString(s settings) *StringProperty {
	return &StringProperty{
		base:      newBase(s),
		minLength: s.minLength,
		maxLength: s.maxLength,
		choices:   s.choices,
		pattern:   s.pattern,
		expr:      s.expr,
	}
}

func (p *StringProperty) Load(raw any) (any, error) {
	return p.load(raw, func(v any) (any, error) {
		s, err := p.check(v)
		if err != nil {
			return nil, err
		}
		return s, nil
	})
}

// check runs the type check followed by every string constraint.
func (p *StringProperty) check(v any) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", typeError("a string", v)
	}

	var lengthRules []validator.Rule
	if p.minLength != nil {
		lengthRules = append(lengthRules, validator.MinLenString("", s, *p.minLength))
	}
	if p.maxLength != nil {
		lengthRules = append(lengthRules, validator.MaxLenString("", s, *p.maxLength))
	}
	if err := checkRules(RangeViolation, s, lengthRules...); err != nil {
		return "", err
	}

	if len(p.choices) > 0 {
		if err := checkRules(ChoiceViolation, s, validator.InListString("", s, p.choices)); err != nil {
			return "", err
		}
	}

	if p.pattern != nil {
		if err := checkRules(PatternMismatch, s, validator.FullMatch("", s, p.pattern, p.expr)); err != nil {
			return "", err
		}
	}
	return s, nil
}

// EmailProperty is a string holding a bare email address.
type EmailProperty struct {
	*StringProperty
}

func Email(opts ...Option) *EmailProperty {
	return &EmailProperty{StringProperty: String(opts...)}
}

func (p *EmailProperty) Load(raw any) (any, error) {
	return p.load(raw, func(v any) (any, error) {
		s, err := p.check(v)
		if err != nil {
			return nil, err
		}
		if err := checkRules(FormatError, s, validator.ValidEmail("", s)); err != nil {
			return nil, err
		}
		return s, nil
	})
}

// RegexProperty is a string that must match an expression in full.
type RegexProperty struct {
	*StringProperty
}

// Regex panics if expr does not compile.
func Regex(expr string, opts ...Option) *RegexProperty {
	s := newSettings(opts)
	s.pattern = compileFull(expr)
	s.expr = expr
	return &RegexProperty{StringProperty: newString(s)}
}

func (p *RegexProperty) Expr() string {
	return p.expr
}

// UuidProperty accepts the canonical 8-4-4-4-12 form in any case and
// coerces it to lowercase.
type UuidProperty struct {
	*StringProperty
}

func Uuid(opts ...Option) *UuidProperty {
	return &UuidProperty{StringProperty: String(opts...)}
}

func (p *UuidProperty) Load(raw any) (any, error) {
	return p.load(raw, func(v any) (any, error) {
		if id, ok := v.(uuid.UUID); ok {
			return id.String(), nil
		}
		s, err := p.check(v)
		if err != nil {
			return nil, err
		}
		if err := checkRules(FormatError, s, validator.ValidUUID("", s)); err != nil {
			return nil, err
		}
		return strings.ToLower(s), nil
	})
}

// PasswordProperty validates exactly like String. Its value is never hashed
// during Load; use HashPassword once the document is valid.
type PasswordProperty struct {
	*StringProperty
}

func Password(opts ...Option) *PasswordProperty {
	return &PasswordProperty{StringProperty: String(opts...)}
}

func (p *PasswordProperty) Sensitive() bool {
	return true
}

// HashPassword hashes a validated password with bcrypt.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", errors.Join(ErrHashPassword, err)
	}
	return string(hash), nil
}

// ComparePassword reports whether password matches a hash produced by HashPassword.
func ComparePassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
