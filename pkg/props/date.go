package props

import (
	"time"

	"github.com/knijam/jason/pkg/validator"
)

const (
	// DateLayout is the only textual form accepted by Date.
	DateLayout = time.DateOnly
	// DatetimeLayout is the only textual form accepted by Datetime.
	DatetimeLayout = time.RFC3339
)

// TimeProperty covers Date and Datetime.
type TimeProperty struct {
	base
	layout   string
	dateOnly bool
}

// Date accepts a time.Time or a "2006-01-02" string and coerces to midnight UTC.
func Date(opts ...Option) *TimeProperty {
	return &TimeProperty{base: newBase(newSettings(opts)), layout: DateLayout, dateOnly: true}
}

// Datetime accepts a time.Time or an RFC 3339 string.
func Datetime(opts ...Option) *TimeProperty {
	return &TimeProperty{base: newBase(newSettings(opts)), layout: DatetimeLayout}
}

func (p *TimeProperty) Load(raw any) (any, error) {
	return p.load(raw, p.coerce)
}

func (p *TimeProperty) coerce(v any) (any, error) {
	var t time.Time
	switch val := v.(type) {
	case time.Time:
		t = val
	case string:
		if err := checkRules(FormatError, val, validator.ValidTimeLayout("", val, p.layout)); err != nil {
			return nil, err
		}
		t, _ = time.Parse(p.layout, val)
	default:
		if p.dateOnly {
			return nil, typeError("a date", v)
		}
		return nil, typeError("a datetime", v)
	}

	if p.dateOnly {
		y, m, d := t.Date()
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), nil
	}
	return t, nil
}

func (p *TimeProperty) Layout() string {
	return p.layout
}
