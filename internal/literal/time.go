package literal

import (
	"fmt"
	"regexp"
	"time"
)

// timeGrammar is the xsd:time lexical space: the left-truncated lexical
// form of xsd:dateTime, "hh:mm:ss.sss" with an optional timezone.
var timeGrammar = regexp.MustCompile(`\A\d{2}:\d{2}:\d{2}(\.\d+)?(([\+\-]\d{2}:\d{2})|UTC|Z)?\z`)

// Time is an xsd:time literal.
//
// Construction never fails: input that cannot be interpreted leaves the
// literal without a value, which makes it invalid. Canonicalize is the only
// mutator and must not race with other calls on the same literal.
type Time struct {
	base
	value    TimeValue
	hasValue bool
}

// NewTime builds a time literal from a string, a time.Time, a
// TimeConverter, or anything whose string form parses as a time.
func NewTime(v any, opts ...Option) *Time {
	l := &Time{base: newBase(XSDTime, v, opts)}
	l.value, l.hasValue = timeValueFrom(v)
	return l
}

// timeValueFrom tries, in order: adopting a native time, calling a
// conversion capability, and parsing the string form. Failures are
// swallowed.
func timeValueFrom(v any) (TimeValue, bool) {
	if nilInput(v) {
		return TimeValue{}, false
	}

	var s string
	switch x := v.(type) {
	case time.Time:
		return TimeValueOf(x), true
	case *time.Time:
		return TimeValueOf(*x), true
	case TimeValue:
		return x, true
	case *Time:
		return x.value, x.hasValue
	case TimeConverter:
		t, err := x.ToTime()
		if err != nil {
			return TimeValue{}, false
		}
		return TimeValueOf(t), true
	case string:
		s = x
	case []byte:
		s = string(x)
	case fmt.Stringer:
		s = x.String()
	default:
		s = fmt.Sprint(x)
	}

	tv, err := ParseTimeValue(s)
	if err != nil {
		return TimeValue{}, false
	}
	return tv, true
}

// Kind implements Literal.
func (l *Time) Kind() Kind { return KindTime }

// Value returns the parsed time, if any.
func (l *Time) Value() (TimeValue, bool) { return l.value, l.hasValue }

// Valid implements Literal.
func (l *Time) Valid() bool {
	return l.hasValue && timeGrammar.MatchString(l.String())
}

// String implements Literal. Without a stored lexical form the canonical
// rendering of the value is returned; nothing is stored.
func (l *Time) String() string {
	if s, ok := l.Lexical(); ok {
		return s
	}
	if l.hasValue {
		return l.value.Format()
	}
	return ""
}

// Canonicalize replaces the lexical form with the canonical one: converted
// to UTC, "Z" as the only timezone suffix, midnight as 00:00:00, fractional
// digits preserved. It returns the literal for chaining.
func (l *Time) Canonicalize() (*Time, error) {
	s, err := l.canonical()
	if err != nil {
		return nil, err
	}
	l.setLexical(s)
	return l, nil
}

func (l *Time) canonical() (string, error) {
	if !l.hasValue {
		return "", newCanonicalizeError(l)
	}
	return l.value.Format(), nil
}

// ToTime implements TimeConverter, so a time literal can seed another.
func (l *Time) ToTime() (time.Time, error) {
	if !l.hasValue {
		return time.Time{}, fmt.Errorf("time literal %q: %w", l.String(), ErrNoValue)
	}
	return l.value.Time(), nil
}

// Equal implements Literal.
//
// Two valid times are equal when their UTC wall-clock triples are; the date
// portion and fractional seconds are ignored. A time never equals a date or
// a date-time. Everything else falls back to SameTerm.
func (l *Time) Equal(other Literal) bool {
	if isNil(other) {
		return false
	}
	if !l.Valid() {
		return SameTerm(l, other)
	}

	switch other.Kind() {
	case KindTime:
		o, ok := other.(*Time)
		if !ok || !o.Valid() {
			return SameTerm(l, other)
		}
		return l.value.ClockKey() == o.value.ClockKey()
	case KindDate, KindDateTime:
		return false
	default:
		return SameTerm(l, other)
	}
}
