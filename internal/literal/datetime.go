package literal

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

var dateTimeGrammar = regexp.MustCompile(`\A(-?\d{4}-\d{2}-\d{2})T(\d{2}):(\d{2}):(\d{2}(?:\.\d+)?)((?:[\+\-]\d{2}:\d{2})|UTC|Z)?\z`)

// DateTime is an xsd:dateTime literal.
type DateTime struct {
	base
	value    TimeValue
	hasValue bool
}

// NewDateTime builds a date-time literal. Like NewTime it never fails, and
// a bare time without a date yields no value.
func NewDateTime(v any, opts ...Option) *DateTime {
	l := &DateTime{base: newBase(XSDDateTime, v, opts)}
	l.value, l.hasValue = dateTimeValueFrom(v)
	return l
}

func dateTimeValueFrom(v any) (TimeValue, bool) {
	if nilInput(v) {
		return TimeValue{}, false
	}

	switch x := v.(type) {
	case *DateTime:
		return x.value, x.hasValue
	case *Time:
		return TimeValue{}, false
	case string:
		if !strings.ContainsAny(x, "Tt ") || strings.Count(x, "-") < 2 {
			return TimeValue{}, false
		}
	}
	return timeValueFrom(v)
}

// Kind implements Literal.
func (l *DateTime) Kind() Kind { return KindDateTime }

// Value returns the parsed instant, if any.
func (l *DateTime) Value() (TimeValue, bool) { return l.value, l.hasValue }

// Valid implements Literal.
func (l *DateTime) Valid() bool {
	return l.hasValue && dateTimeGrammar.MatchString(l.String())
}

// String implements Literal.
func (l *DateTime) String() string {
	if s, ok := l.Lexical(); ok {
		return s
	}
	if l.hasValue {
		return l.value.formatDateTime()
	}
	return ""
}

// Canonicalize rewrites the lexical form in UTC with a "Z" suffix.
func (l *DateTime) Canonicalize() (*DateTime, error) {
	s, err := l.canonical()
	if err != nil {
		return nil, err
	}
	l.setLexical(s)
	return l, nil
}

func (l *DateTime) canonical() (string, error) {
	if !l.hasValue {
		return "", newCanonicalizeError(l)
	}
	return l.value.formatDateTime(), nil
}

// ToTime implements TimeConverter.
func (l *DateTime) ToTime() (time.Time, error) {
	if !l.hasValue {
		return time.Time{}, fmt.Errorf("dateTime literal %q: %w", l.String(), ErrNoValue)
	}
	return l.value.Time(), nil
}

// Equal implements Literal. Two valid date-times are equal when they denote
// the same instant and agree on whether a timezone was given.
func (l *DateTime) Equal(other Literal) bool {
	if isNil(other) {
		return false
	}
	if !l.Valid() {
		return SameTerm(l, other)
	}

	switch other.Kind() {
	case KindDateTime:
		o, ok := other.(*DateTime)
		if !ok || !o.Valid() {
			return SameTerm(l, other)
		}
		return l.value.zoned == o.value.zoned && l.value.t.Equal(o.value.t)
	case KindTime, KindDate:
		return false
	default:
		return SameTerm(l, other)
	}
}
