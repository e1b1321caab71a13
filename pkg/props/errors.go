package props

import (
	"errors"
	"fmt"
	"iter"
	"strconv"
	"strings"

	"github.com/knijam/jason/pkg/validator"
)

// Kind classifies a single property failure.
type Kind string

const (
	Missing              Kind = "missing"
	NullNotAllowed       Kind = "null_not_allowed"
	TypeMismatch         Kind = "type_mismatch"
	RangeViolation       Kind = "range_violation"
	FormatError          Kind = "format_error"
	PatternMismatch      Kind = "pattern_mismatch"
	ChoiceViolation      Kind = "choice_violation"
	NoAlternativeMatched Kind = "no_alternative_matched"
	// Invalid is reported for errors returned by custom Property implementations
	// that are neither a *PropertyError nor a *BatchError.
	Invalid Kind = "invalid"
)

// Sentinels matched by errors.Is against any *PropertyError of the same kind.
var (
	ErrMissing              = errors.New("value is required")
	ErrNullNotAllowed       = errors.New("value cannot be null")
	ErrTypeMismatch         = errors.New("value has the wrong type")
	ErrRangeViolation       = errors.New("value is out of range")
	ErrFormat               = errors.New("value has an invalid format")
	ErrPatternMismatch      = errors.New("value does not match pattern")
	ErrChoiceViolation      = errors.New("value is not an allowed choice")
	ErrNoAlternativeMatched = errors.New("value matched no alternative")
	ErrInvalid              = errors.New("value is invalid")

	// ErrHashPassword is returned when a password cannot be hashed.
	ErrHashPassword = errors.New("failed to hash password")
)

var kindSentinels = map[Kind]error{
	Missing:              ErrMissing,
	NullNotAllowed:       ErrNullNotAllowed,
	TypeMismatch:         ErrTypeMismatch,
	RangeViolation:       ErrRangeViolation,
	FormatError:          ErrFormat,
	PatternMismatch:      ErrPatternMismatch,
	ChoiceViolation:      ErrChoiceViolation,
	NoAlternativeMatched: ErrNoAlternativeMatched,
	Invalid:              ErrInvalid,
}

// PropertyError describes why one value failed one property.
type PropertyError struct {
	Kind              Kind
	Message           string
	Value             any
	TranslationKey    string
	TranslationValues map[string]any
	// Causes holds the failure of every alternative tried by AnyOf.
	Causes []error
}

func (e *PropertyError) Error() string {
	return e.Message
}

// Is reports whether target is the sentinel of e's kind.
func (e *PropertyError) Is(target error) bool {
	return kindSentinels[e.Kind] == target
}

func newError(kind Kind, value any, key, format string, args ...any) *PropertyError {
	return &PropertyError{
		Kind:           kind,
		Message:        fmt.Sprintf(format, args...),
		Value:          value,
		TranslationKey: key,
	}
}

func fromRule(kind Kind, value any, ve validator.ValidationError) *PropertyError {
	return &PropertyError{
		Kind:              kind,
		Message:           ve.Message,
		Value:             value,
		TranslationKey:    ve.TranslationKey,
		TranslationValues: ve.TranslationValues,
	}
}

// checkRules runs rules in order and converts the first failure.
func checkRules(kind Kind, value any, rules ...validator.Rule) error {
	if ve, failed := validator.First(rules...); failed {
		return fromRule(kind, value, ve)
	}
	return nil
}

func missingError() *PropertyError {
	return newError(Missing, nil, "validation.required", "field is required")
}

func nullError() *PropertyError {
	return newError(NullNotAllowed, nil, "validation.not_null", "cannot be null")
}

func typeError(want string, value any) *PropertyError {
	return newError(TypeMismatch, value, "validation.type", "must be %s, got %s", want, typeName(value))
}

// Path locates a value from the document root. Segments are string keys or int indexes.
type Path []any

// String renders the path as "a.b[1].c". The root path renders as "".
func (p Path) String() string {
	var b strings.Builder
	for _, seg := range p {
		switch s := seg.(type) {
		case int:
			b.WriteByte('[')
			b.WriteString(strconv.Itoa(s))
			b.WriteByte(']')
		default:
			if b.Len() > 0 {
				b.WriteByte('.')
			}
			fmt.Fprint(&b, s)
		}
	}
	return b.String()
}

// FieldError is one failure at one location.
type FieldError struct {
	Path Path
	Err  *PropertyError
}

func (e FieldError) Error() string {
	path := e.Path.String()
	if path == "" {
		return e.Err.Message
	}
	return path + ": " + e.Err.Message
}

// BatchError aggregates every failure of one load call, in declaration order.
// It is never empty and never modified after construction.
type BatchError struct {
	errs []FieldError
}

func newBatchError(errs []FieldError) *BatchError {
	if len(errs) == 0 {
		return nil
	}
	return &BatchError{errs: errs}
}

// Errors returns a copy of the collected failures.
func (e *BatchError) Errors() []FieldError {
	out := make([]FieldError, len(e.errs))
	copy(out, e.errs)
	return out
}

func (e *BatchError) Len() int {
	return len(e.errs)
}

// All iterates over every failure in order.
func (e *BatchError) All() iter.Seq2[Path, *PropertyError] {
	return func(yield func(Path, *PropertyError) bool) {
		for _, fe := range e.errs {
			if !yield(fe.Path, fe.Err) {
				return
			}
		}
	}
}

func (e *BatchError) Error() string {
	parts := make([]string, 0, len(e.errs))
	for _, fe := range e.errs {
		parts = append(parts, fe.Error())
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Unwrap exposes every *PropertyError so errors.Is(batch, ErrMissing) works.
func (e *BatchError) Unwrap() []error {
	out := make([]error, 0, len(e.errs))
	for _, fe := range e.errs {
		out = append(out, fe.Err)
	}
	return out
}

// Has reports whether a failure was recorded at the rendered path.
func (e *BatchError) Has(path string) bool {
	for _, fe := range e.errs {
		if fe.Path.String() == path {
			return true
		}
	}
	return false
}

// Get returns the failures recorded at the rendered path.
func (e *BatchError) Get(path string) []*PropertyError {
	var out []*PropertyError
	for _, fe := range e.errs {
		if fe.Path.String() == path {
			out = append(out, fe.Err)
		}
	}
	return out
}

// Fields groups messages by rendered path. Root failures are keyed by "".
func (e *BatchError) Fields() map[string][]string {
	out := make(map[string][]string, len(e.errs))
	for _, fe := range e.errs {
		key := fe.Path.String()
		out[key] = append(out[key], fe.Err.Message)
	}
	return out
}

// RequestValidationError is returned by RequestSchema.Load when the body fails validation.
type RequestValidationError struct {
	Schema string
	Batch  *BatchError
}

func (e *RequestValidationError) Error() string {
	return fmt.Sprintf("invalid %s request: %s", e.Schema, e.Batch.Error())
}

func (e *RequestValidationError) Unwrap() error {
	return e.Batch
}

// ExtractBatchError returns the aggregate carried by err, if any.
func ExtractBatchError(err error) *BatchError {
	var batch *BatchError
	if errors.As(err, &batch) {
		return batch
	}
	return nil
}

// collector accumulates failures while a load pass walks the fields.
type collector struct {
	errs []FieldError
}

func (c *collector) add(path Path, err error) {
	var (
		batch *BatchError
		perr  *PropertyError
	)
	switch {
	case errors.As(err, &batch):
		for _, fe := range batch.errs {
			c.errs = append(c.errs, FieldError{Path: append(append(Path{}, path...), fe.Path...), Err: fe.Err})
		}
	case errors.As(err, &perr):
		c.errs = append(c.errs, FieldError{Path: append(Path{}, path...), Err: perr})
	default:
		c.errs = append(c.errs, FieldError{
			Path: append(Path{}, path...),
			Err:  &PropertyError{Kind: Invalid, Message: err.Error(), TranslationKey: "validation.invalid"},
		})
	}
}

func (c *collector) err() error {
	if batch := newBatchError(c.errs); batch != nil {
		return batch
	}
	return nil
}
