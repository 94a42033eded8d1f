package literal

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

var (
	dateGrammar = regexp.MustCompile(`\A(-?\d{4}-\d{2}-\d{2})((?:[\+\-]\d{2}:\d{2})|UTC|Z)?\z`)
	datePattern = regexp.MustCompile(`^(-?\d{4,})-(\d{2})-(\d{2})\s*(Z|z|UTC|GMT|[+-]\d{2}(?::?\d{2})?)?$`)
)

// dateValue is a calendar day with an optional timezone offset in seconds.
type dateValue struct {
	year   int
	month  time.Month
	day    int
	offset int
	zoned  bool
}

func parseDateValue(s string) (dateValue, error) {
	m := datePattern.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return dateValue{}, fmt.Errorf("parse date %q: unrecognized format", s)
	}
	year, month, day, err := parseDate(m[1], m[2], m[3])
	if err != nil {
		return dateValue{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	loc, zoned, err := parseZone(m[4])
	if err != nil {
		return dateValue{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	_, offset := time.Date(year, month, day, 0, 0, 0, 0, loc).Zone()
	return dateValue{year: year, month: month, day: day, offset: offset, zoned: zoned}, nil
}

func dateValueOf(t time.Time) dateValue {
	_, offset := t.Zone()
	return dateValue{year: t.Year(), month: t.Month(), day: t.Day(), offset: offset, zoned: true}
}

func (v dateValue) format() string {
	s := formatYMD(v.year, v.month, v.day)
	if v.zoned {
		s += zoneSuffix(v.offset)
	}
	return s
}

// Date is an xsd:date literal. It exists here so that time literals can
// honor the rule that a time never equals a date.
type Date struct {
	base
	value    dateValue
	hasValue bool
}

// NewDate builds a date literal. Like NewTime it never fails.
func NewDate(v any, opts ...Option) *Date {
	l := &Date{base: newBase(XSDDate, v, opts)}
	l.value, l.hasValue = dateValueFrom(v)
	return l
}

func dateValueFrom(v any) (dateValue, bool) {
	if nilInput(v) {
		return dateValue{}, false
	}

	var s string
	switch x := v.(type) {
	case time.Time:
		return dateValueOf(x), true
	case *Date:
		return x.value, x.hasValue
	case TimeConverter:
		t, err := x.ToTime()
		if err != nil {
			return dateValue{}, false
		}
		return dateValueOf(t), true
	case string:
		s = x
	case fmt.Stringer:
		s = x.String()
	default:
		s = fmt.Sprint(x)
	}

	dv, err := parseDateValue(s)
	if err != nil {
		return dateValue{}, false
	}
	return dv, true
}

// Kind implements Literal.
func (l *Date) Kind() Kind { return KindDate }

// Valid implements Literal.
func (l *Date) Valid() bool {
	return l.hasValue && dateGrammar.MatchString(l.String())
}

// String implements Literal.
func (l *Date) String() string {
	if s, ok := l.Lexical(); ok {
		return s
	}
	if l.hasValue {
		return l.value.format()
	}
	return ""
}

// Canonicalize rewrites the lexical form as YYYY-MM-DD with "Z" for a UTC
// timezone.
func (l *Date) Canonicalize() (*Date, error) {
	s, err := l.canonical()
	if err != nil {
		return nil, err
	}
	l.setLexical(s)
	return l, nil
}

func (l *Date) canonical() (string, error) {
	if !l.hasValue {
		return "", newCanonicalizeError(l)
	}
	return l.value.format(), nil
}

// Equal implements Literal. Dates never equal times or date-times.
func (l *Date) Equal(other Literal) bool {
	if isNil(other) {
		return false
	}
	if !l.Valid() {
		return SameTerm(l, other)
	}

	switch other.Kind() {
	case KindDate:
		o, ok := other.(*Date)
		if !ok || !o.Valid() {
			return SameTerm(l, other)
		}
		return l.value == o.value
	case KindTime, KindDateTime:
		return false
	default:
		return SameTerm(l, other)
	}
}
