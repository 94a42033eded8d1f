package literal

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Bare times are placed on this day. Only the UTC time of day is ever
// compared or rendered, so the choice is not observable.
const (
	anchorYear  = 2000
	anchorMonth = time.January
	anchorDay   = 1
)

// TimeConverter is implemented by inputs that can convert themselves to a
// time. NewTime uses it before falling back to parsing the string form.
type TimeConverter interface {
	ToTime() (time.Time, error)
}

// TimeValue is a parsed time of day with an optional timezone.
//
// The fractional second is kept as the digit string that was parsed (trailing
// zeros removed), so precision beyond nanoseconds survives rendering.
type TimeValue struct {
	t     time.Time
	zoned bool
	frac  string
}

// timeValuePattern is deliberately more permissive than the xsd:time
// grammar: date-time input, optional seconds, "T"/space separators and
// compact offsets are all accepted.
var timeValuePattern = regexp.MustCompile(
	`^(?:(-?\d{4,})-(\d{2})-(\d{2})[Tt ])?` +
		`(\d{2}):(\d{2})(?::(\d{2})(?:\.(\d+))?)?` +
		`\s*(Z|z|UTC|GMT|[+-]\d{2}(?::?\d{2})?)?$`)

// ParseTimeValue parses a bare time or a full date-time.
//
// 24:00:00 is accepted as the end of the day and normalizes to 00:00:00 of
// the following day.
func ParseTimeValue(s string) (TimeValue, error) {
	m := timeValuePattern.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return TimeValue{}, fmt.Errorf("parse time %q: unrecognized format", s)
	}

	year, month, day := anchorYear, anchorMonth, anchorDay
	if m[1] != "" {
		var err error
		if year, month, day, err = parseDate(m[1], m[2], m[3]); err != nil {
			return TimeValue{}, fmt.Errorf("parse time %q: %w", s, err)
		}
	}

	hour, _ := strconv.Atoi(m[4])
	minute, _ := strconv.Atoi(m[5])
	second := 0
	if m[6] != "" {
		second, _ = strconv.Atoi(m[6])
	}
	frac := strings.TrimRight(m[7], "0")

	switch {
	case hour == 24:
		if minute != 0 || second != 0 || frac != "" {
			return TimeValue{}, fmt.Errorf("parse time %q: 24 is only valid as 24:00:00", s)
		}
	case hour > 23:
		return TimeValue{}, fmt.Errorf("parse time %q: hour %d out of range", s, hour)
	}
	if minute > 59 {
		return TimeValue{}, fmt.Errorf("parse time %q: minute %d out of range", s, minute)
	}
	if second > 59 {
		return TimeValue{}, fmt.Errorf("parse time %q: second %d out of range", s, second)
	}

	loc, zoned, err := parseZone(m[8])
	if err != nil {
		return TimeValue{}, fmt.Errorf("parse time %q: %w", s, err)
	}

	return TimeValue{
		t:     time.Date(year, month, day, hour, minute, second, fracNanos(frac), loc),
		zoned: zoned,
		frac:  frac,
	}, nil
}

// TimeValueOf adopts a native time. Native times always carry a zone.
func TimeValueOf(t time.Time) TimeValue {
	frac := ""
	if ns := t.Nanosecond(); ns != 0 {
		frac = strings.TrimRight(fmt.Sprintf("%09d", ns), "0")
	}
	return TimeValue{t: t, zoned: true, frac: frac}
}

func parseDate(ys, ms, ds string) (int, time.Month, int, error) {
	year, err := strconv.Atoi(ys)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("year %q: %w", ys, err)
	}
	m, _ := strconv.Atoi(ms)
	day, _ := strconv.Atoi(ds)
	if m < 1 || m > 12 {
		return 0, 0, 0, fmt.Errorf("month %d out of range", m)
	}
	month := time.Month(m)
	probe := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	if day < 1 || probe.Month() != month || probe.Day() != day {
		return 0, 0, 0, fmt.Errorf("day %d out of range for %04d-%02d", day, year, m)
	}
	return year, month, day, nil
}

// parseZone maps a timezone suffix to a location. Offsets are limited to
// the XSD range of -14:00..+14:00. Values without a suffix are read as UTC
// but remember that no zone was given.
func parseZone(s string) (*time.Location, bool, error) {
	switch s {
	case "":
		return time.UTC, false, nil
	case "Z", "z", "UTC", "GMT":
		return time.UTC, true, nil
	}

	sign := 1
	if s[0] == '-' {
		sign = -1
	}
	digits := strings.ReplaceAll(s[1:], ":", "")
	hh, _ := strconv.Atoi(digits[:2])
	mm := 0
	if len(digits) == 4 {
		mm, _ = strconv.Atoi(digits[2:])
	}
	if mm > 59 || hh > 14 || (hh == 14 && mm != 0) {
		return nil, false, fmt.Errorf("timezone offset %q out of range", s)
	}

	offset := sign * (hh*3600 + mm*60)
	if offset == 0 {
		return time.UTC, true, nil
	}
	return time.FixedZone(formatOffset(offset), offset), true, nil
}

func formatOffset(offset int) string {
	sign := '+'
	if offset < 0 {
		sign, offset = '-', -offset
	}
	return fmt.Sprintf("%c%02d:%02d", sign, offset/3600, offset%3600/60)
}

// fracNanos converts fractional digits to nanoseconds, truncating past the
// ninth digit.
func fracNanos(frac string) int {
	if frac == "" {
		return 0
	}
	if len(frac) > 9 {
		frac = frac[:9]
	}
	ns, _ := strconv.Atoi(frac + strings.Repeat("0", 9-len(frac)))
	return ns
}

// Time returns the underlying instant. Bare times sit on 2000-01-01.
func (v TimeValue) Time() time.Time { return v.t }

// Zoned reports whether the value carried a timezone.
func (v TimeValue) Zoned() bool { return v.zoned }

// Fraction returns the fractional-second digits without the leading dot.
func (v TimeValue) Fraction() string { return v.frac }

// UTC returns the value converted to UTC.
func (v TimeValue) UTC() TimeValue {
	v.t = v.t.UTC()
	return v
}

// Clock returns the UTC wall-clock triple.
func (v TimeValue) Clock() (hour, min, sec int) {
	return v.t.UTC().Clock()
}

// ClockKey renders the UTC wall-clock triple as HH:MM:SS. Two time values
// are equal iff their clock keys are.
func (v TimeValue) ClockKey() string {
	h, m, s := v.Clock()
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}

// Format renders the canonical xsd:time form: the UTC clock, the fraction
// if any, and "Z" when the value had a timezone.
func (v TimeValue) Format() string {
	var b strings.Builder
	b.WriteString(v.ClockKey())
	v.writeTail(&b)
	return b.String()
}

// formatDateTime renders the canonical xsd:dateTime form.
func (v TimeValue) formatDateTime() string {
	u := v.t.UTC()
	var b strings.Builder
	b.WriteString(formatYMD(u.Year(), u.Month(), u.Day()))
	b.WriteByte('T')
	b.WriteString(v.ClockKey())
	v.writeTail(&b)
	return b.String()
}

func (v TimeValue) writeTail(b *strings.Builder) {
	if v.frac != "" {
		b.WriteByte('.')
		b.WriteString(v.frac)
	}
	if v.zoned {
		b.WriteString(zoneSuffix(0))
	}
}

// zoneSuffix renders an offset in seconds, using "Z" for UTC.
func zoneSuffix(offset int) string {
	if offset == 0 {
		return "Z"
	}
	return formatOffset(offset)
}

func formatYMD(year int, month time.Month, day int) string {
	if year < 0 {
		return fmt.Sprintf("-%04d-%02d-%02d", -year, int(month), day)
	}
	return fmt.Sprintf("%04d-%02d-%02d", year, int(month), day)
}
