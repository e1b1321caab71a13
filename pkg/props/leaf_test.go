package props_test

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/knijam/jason/pkg/props"
)

func requireKind(t *testing.T, err error, kind props.Kind) *props.PropertyError {
	t.Helper()
	require.Error(t, err)
	var perr *props.PropertyError
	require.True(t, errors.As(err, &perr), "expected *PropertyError, got %T", err)
	assert.Equal(t, kind, perr.Kind)
	return perr
}

func TestString(t *testing.T) {
	t.Run("accepts strings", func(t *testing.T) {
		v, err := props.String().Load("hello")
		require.NoError(t, err)
		assert.Equal(t, "hello", v)
	})

	t.Run("rejects non-strings with type mismatch", func(t *testing.T) {
		_, err := props.String().Load(12345)
		perr := requireKind(t, err, props.TypeMismatch)
		assert.Equal(t, "must be a string, got integer", perr.Message)
		assert.Equal(t, 12345, perr.Value)
		assert.ErrorIs(t, err, props.ErrTypeMismatch)
	})

	t.Run("min length violation", func(t *testing.T) {
		_, err := props.String(props.MinLength(10)).Load("123")
		perr := requireKind(t, err, props.RangeViolation)
		assert.Equal(t, "validation.min_length", perr.TranslationKey)
		assert.Equal(t, 10, perr.TranslationValues["min"])
	})

	t.Run("max length counts characters", func(t *testing.T) {
		p := props.String(props.MaxLength(3))
		_, err := p.Load("äöü")
		require.NoError(t, err)
		_, err = p.Load("äöüß")
		requireKind(t, err, props.RangeViolation)
	})

	t.Run("choices are case sensitive", func(t *testing.T) {
		p := props.String(props.Choices("rabbitmq", "redis"))
		v, err := p.Load("redis")
		require.NoError(t, err)
		assert.Equal(t, "redis", v)

		_, err = p.Load("Redis")
		requireKind(t, err, props.ChoiceViolation)
	})

	t.Run("pattern must match the whole value", func(t *testing.T) {
		p := props.String(props.Pattern(`[a-z]+`))
		_, err := p.Load("abc")
		require.NoError(t, err)
		_, err = p.Load("abc1")
		requireKind(t, err, props.PatternMismatch)
	})

	t.Run("default is returned for null when not nullable", func(t *testing.T) {
		v, err := props.String(props.Default("12345")).Load(nil)
		require.NoError(t, err)
		assert.Equal(t, "12345", v)
	})

	t.Run("default is not validated", func(t *testing.T) {
		v, err := props.String(props.MinLength(10), props.Default("x")).Load(props.Absent)
		require.NoError(t, err)
		assert.Equal(t, "x", v)
	})
}

func TestAbsentAndNull(t *testing.T) {
	tests := []struct {
		name    string
		prop    props.Property
		raw     any
		want    any
		kind    props.Kind
		wantErr bool
	}{
		{name: "required absent", prop: props.Int(), raw: props.Absent, kind: props.Missing, wantErr: true},
		{name: "required null", prop: props.Int(), raw: nil, kind: props.NullNotAllowed, wantErr: true},
		{name: "nullable absent", prop: props.Int(props.Nullable()), raw: props.Absent, want: nil},
		{name: "nullable null ignores default", prop: props.Int(props.Nullable(), props.Default(int64(7))), raw: nil, want: nil},
		{name: "default absent", prop: props.Int(props.Default(int64(7))), raw: props.Absent, want: int64(7)},
		{name: "nullable with default absent", prop: props.Int(props.Nullable(), props.Default(int64(7))), raw: props.Absent, want: int64(7)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := tt.prop.Load(tt.raw)
			if tt.wantErr {
				requireKind(t, err, tt.kind)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, v)
		})
	}
}

func TestRequired(t *testing.T) {
	assert.True(t, props.String().Required())
	assert.False(t, props.String(props.Nullable()).Required())
	assert.False(t, props.String(props.Default("a")).Required())
	assert.True(t, props.AnyOf(props.Int(), props.String()).Required())
	assert.False(t, props.AnyOf(props.Int(), props.String(props.Nullable())).Required())
	assert.False(t, props.Choice(props.Int(props.Default(int64(1))), 1, 2).Required())
}

func TestNumbers(t *testing.T) {
	t.Run("int accepts integral floats from json", func(t *testing.T) {
		v, err := props.Int().Load(float64(42))
		require.NoError(t, err)
		assert.Equal(t, int64(42), v)

		v, err = props.Int().Load(json.Number("42"))
		require.NoError(t, err)
		assert.Equal(t, int64(42), v)
	})

	t.Run("int rejects fractions and booleans", func(t *testing.T) {
		_, err := props.Int().Load(4.5)
		requireKind(t, err, props.TypeMismatch)
		_, err = props.Int().Load(true)
		requireKind(t, err, props.TypeMismatch)
		_, err = props.Int().Load("42")
		requireKind(t, err, props.TypeMismatch)
	})

	t.Run("bounds are inclusive", func(t *testing.T) {
		p := props.Int(props.Min(1), props.Max(10))
		for _, ok := range []int{1, 5, 10} {
			_, err := p.Load(ok)
			assert.NoError(t, err)
		}
		for _, bad := range []int{0, 11} {
			_, err := p.Load(bad)
			requireKind(t, err, props.RangeViolation)
		}
	})

	t.Run("float coerces integers", func(t *testing.T) {
		v, err := props.Float(props.Max(1.5)).Load(1)
		require.NoError(t, err)
		assert.Equal(t, float64(1), v)

		_, err = props.Float(props.Max(1.5)).Load(1.6)
		requireKind(t, err, props.RangeViolation)
	})

	t.Run("number keeps the numeric kind", func(t *testing.T) {
		v, err := props.Number().Load(3)
		require.NoError(t, err)
		assert.Equal(t, int64(3), v)

		v, err = props.Number().Load(3.25)
		require.NoError(t, err)
		assert.Equal(t, 3.25, v)

		_, err = props.Number().Load("3")
		requireKind(t, err, props.TypeMismatch)
	})

	t.Run("defaults take the loaded numeric type", func(t *testing.T) {
		v, err := props.Int(props.Default(8080)).Load(props.Absent)
		require.NoError(t, err)
		assert.Equal(t, int64(8080), v)

		v, err = props.Float(props.Default(1)).Load(props.Absent)
		require.NoError(t, err)
		assert.Equal(t, float64(1), v)

		v, err = props.Number(props.Default(float32(2))).Load(nil)
		require.NoError(t, err)
		assert.Equal(t, float64(2), v)

		v, err = props.Int(props.Default(int32(99)), props.Max(10)).Load(props.Absent)
		require.NoError(t, err)
		assert.Equal(t, int64(99), v, "defaults are not range checked")

		v, err = props.Int(props.Default(nil)).Load(props.Absent)
		require.NoError(t, err)
		assert.Nil(t, v)
	})

	t.Run("fractional bound on int", func(t *testing.T) {
		p := props.Int(props.Min(1.5))
		_, err := p.Load(1)
		requireKind(t, err, props.RangeViolation)
		_, err = p.Load(2)
		assert.NoError(t, err)
	})
}

func TestBool(t *testing.T) {
	v, err := props.Bool().Load(false)
	require.NoError(t, err)
	assert.Equal(t, false, v)

	for _, raw := range []any{1, 0, "true", "yes"} {
		_, err := props.Bool().Load(raw)
		requireKind(t, err, props.TypeMismatch)
	}
}

func TestDates(t *testing.T) {
	t.Run("date parses iso dates", func(t *testing.T) {
		v, err := props.Date().Load("2024-02-29")
		require.NoError(t, err)
		assert.Equal(t, time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), v)
	})

	t.Run("date truncates time values", func(t *testing.T) {
		v, err := props.Date().Load(time.Date(2024, 3, 1, 15, 4, 5, 0, time.UTC))
		require.NoError(t, err)
		assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), v)
	})

	t.Run("date format error", func(t *testing.T) {
		_, err := props.Date().Load("29/02/2024")
		perr := requireKind(t, err, props.FormatError)
		assert.Equal(t, "validation.date_format", perr.TranslationKey)
		assert.ErrorIs(t, err, props.ErrFormat)
	})

	t.Run("datetime parses rfc3339", func(t *testing.T) {
		v, err := props.Datetime().Load("2024-02-29T10:30:00+02:00")
		require.NoError(t, err)
		want := time.Date(2024, 2, 29, 8, 30, 0, 0, time.UTC)
		assert.True(t, want.Equal(v.(time.Time)))
	})

	t.Run("datetime type mismatch", func(t *testing.T) {
		_, err := props.Datetime().Load(1700000000)
		requireKind(t, err, props.TypeMismatch)
	})
}

func TestEmail(t *testing.T) {
	for _, ok := range []string{"user@example.com", "first.last+tag@sub.example.org"} {
		_, err := props.Email().Load(ok)
		assert.NoError(t, err, ok)
	}
	for _, bad := range []string{"user", "user@localhost", "@example.com", "John <john@example.com>", "user@example."} {
		_, err := props.Email().Load(bad)
		requireKind(t, err, props.FormatError)
	}

	_, err := props.Email(props.MaxLength(5)).Load("user@example.com")
	requireKind(t, err, props.RangeViolation)
}

func TestRegex(t *testing.T) {
	p := props.Regex(`\d{5}`)
	assert.Equal(t, `\d{5}`, p.Expr())

	v, err := p.Load("12345")
	require.NoError(t, err)
	assert.Equal(t, "12345", v)

	_, err = p.Load("123456")
	requireKind(t, err, props.PatternMismatch)

	_, err = props.Regex(`a|ab`).Load("ab")
	assert.NoError(t, err)

	assert.Panics(t, func() { props.Regex(`(`) })
}

func TestUuid(t *testing.T) {
	t.Run("lowercases canonical form", func(t *testing.T) {
		v, err := props.Uuid().Load("6BA7B810-9DAD-11D1-80B4-00C04FD430C8")
		require.NoError(t, err)
		assert.Equal(t, "6ba7b810-9dad-11d1-80b4-00c04fd430c8", v)
	})

	t.Run("accepts uuid values", func(t *testing.T) {
		id := uuid.New()
		v, err := props.Uuid().Load(id)
		require.NoError(t, err)
		assert.Equal(t, id.String(), v)
	})

	t.Run("rejects other forms", func(t *testing.T) {
		for _, bad := range []string{"6ba7b8109dad11d180b400c04fd430c8", "{6ba7b810-9dad-11d1-80b4-00c04fd430c8}", "nope"} {
			_, err := props.Uuid().Load(bad)
			requireKind(t, err, props.FormatError)
		}
	})
}

func TestPassword(t *testing.T) {
	p := props.Password(props.MinLength(8))
	v, err := p.Load("correct horse")
	require.NoError(t, err)
	assert.Equal(t, "correct horse", v)
	assert.True(t, p.Sensitive())

	_, err = p.Load("short")
	requireKind(t, err, props.RangeViolation)

	hash, err := props.HashPassword("correct horse")
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse", hash)
	assert.True(t, props.ComparePassword(hash, "correct horse"))
	assert.False(t, props.ComparePassword(hash, "wrong horse"))
}

func TestChoice(t *testing.T) {
	t.Run("values are coerced by the base property", func(t *testing.T) {
		p := props.Choice(props.Int(), 1, 2, 3)
		assert.Equal(t, []any{int64(1), int64(2), int64(3)}, p.Values())

		v, err := p.Load(float64(2))
		require.NoError(t, err)
		assert.Equal(t, int64(2), v)
	})

	t.Run("value outside the set", func(t *testing.T) {
		_, err := props.Choice(props.String(), "a", "b").Load("c")
		perr := requireKind(t, err, props.ChoiceViolation)
		assert.Equal(t, "validation.in_list", perr.TranslationKey)
	})

	t.Run("base failures surface unchanged", func(t *testing.T) {
		_, err := props.Choice(props.Int(), 1).Load("1")
		requireKind(t, err, props.TypeMismatch)
	})

	t.Run("dates compare by instant", func(t *testing.T) {
		p := props.Choice(props.Date(), "2024-01-01")
		_, err := p.Load(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
		assert.NoError(t, err)
	})

	t.Run("absent uses the base default", func(t *testing.T) {
		v, err := props.Choice(props.String(props.Default("a")), "a", "b").Load(props.Absent)
		require.NoError(t, err)
		assert.Equal(t, "a", v)
	})

	t.Run("invalid configured value panics", func(t *testing.T) {
		assert.Panics(t, func() { props.Choice(props.Int(), "one") })
	})
}

func TestAnyOf(t *testing.T) {
	t.Run("falls through to the matching alternative", func(t *testing.T) {
		v, err := props.AnyOf(props.Int(), props.String()).Load("abc")
		require.NoError(t, err)
		assert.Equal(t, "abc", v)
	})

	t.Run("first match wins", func(t *testing.T) {
		v, err := props.AnyOf(props.Float(), props.Int()).Load(5)
		require.NoError(t, err)
		assert.Equal(t, float64(5), v)

		v, err = props.AnyOf(props.Int(), props.Float()).Load(5)
		require.NoError(t, err)
		assert.Equal(t, int64(5), v)
	})

	t.Run("no alternative matched carries every failure", func(t *testing.T) {
		_, err := props.AnyOf(props.Int(), props.String()).Load(map[string]any{})
		perr := requireKind(t, err, props.NoAlternativeMatched)
		require.Len(t, perr.Causes, 2)
		assert.ErrorIs(t, perr.Causes[0], props.ErrTypeMismatch)
		assert.ErrorIs(t, perr.Causes[1], props.ErrTypeMismatch)
		assert.ErrorIs(t, err, props.ErrNoAlternativeMatched)
	})

	t.Run("absent and null", func(t *testing.T) {
		p := props.AnyOf(props.Int(), props.String())
		_, err := p.Load(props.Absent)
		requireKind(t, err, props.Missing)
		_, err = p.Load(nil)
		requireKind(t, err, props.NullNotAllowed)

		v, err := props.AnyOf(props.Int(), props.String(props.Nullable())).Load(nil)
		require.NoError(t, err)
		assert.Nil(t, v)
	})
}

func TestIdempotentCoercion(t *testing.T) {
	tests := []struct {
		name string
		prop props.Property
		raw  any
	}{
		{"string", props.String(), "abc"},
		{"int", props.Int(), float64(7)},
		{"float", props.Float(), 3},
		{"number", props.Number(), 2.5},
		{"bool", props.Bool(), true},
		{"date", props.Date(), "2024-05-06"},
		{"datetime", props.Datetime(), "2024-05-06T07:08:09Z"},
		{"email", props.Email(), "a@b.io"},
		{"uuid", props.Uuid(), "6BA7B810-9DAD-11D1-80B4-00C04FD430C8"},
		{"choice", props.Choice(props.Int(), 1, 2), 2.0},
		{"array", props.Array(props.Int()), []any{1.0, 2.0}},
		{"any of", props.AnyOf(props.Int(), props.String()), "x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			once, err := tt.prop.Load(tt.raw)
			require.NoError(t, err)
			twice, err := tt.prop.Load(once)
			require.NoError(t, err)
			assert.Equal(t, once, twice)
		})
	}
}

func TestParseText(t *testing.T) {
	tests := []struct {
		name string
		prop props.Property
		text string
		want any
	}{
		{"int", props.Int(), "42", int64(42)},
		{"int keeps unparseable text", props.Int(), "4.2", "4.2"},
		{"float", props.Float(), "4.2", 4.2},
		{"number int", props.Number(), "4", int64(4)},
		{"number float", props.Number(), "4.5", 4.5},
		{"bool", props.Bool(), "true", true},
		{"bool keeps unparseable text", props.Bool(), "yes", "yes"},
		{"string verbatim", props.String(), "42", "42"},
		{"array", props.Array(props.Int()), "1, 2,3", []any{int64(1), int64(2), int64(3)}},
		{"empty array", props.Array(props.String()), "", []any{}},
		{"choice uses base", props.Choice(props.Int(), 1, 2), "2", int64(2)},
		{"any of keeps text for a leading string", props.AnyOf(props.String(), props.Int()), "5", "5"},
		{"any of parses with a leading int", props.AnyOf(props.Int(), props.String()), "5", int64(5)},
		{"any of skips a rejecting parser", props.AnyOf(props.Int(props.Max(3)), props.Number()), "5", int64(5)},
		{"any of without a match", props.AnyOf(props.Int(), props.Bool()), "x", "x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, props.ParseText(tt.prop, tt.text))
		})
	}
}
