package harness

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jammie/rdf/internal/literal"
)

// AssertionError is returned when a check fails.
// It includes detailed context to help debug the failure.
type AssertionError struct {
	Type     string   // Check type for categorization
	Subjects []string // Literal names the check referred to
	Expected string   // Human-readable expected outcome
	Actual   string   // Human-readable actual outcome
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder
	fmt.Fprintf(&buf, "Check failed: %s %s\n", e.Type, strings.Join(e.Subjects, ", "))
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s", e.Actual)
	return buf.String()
}

// evaluateCheck runs one check against the built literals. It returns the
// observed value for the trace and an error if the check failed.
// Checks never mutate the literals.
func evaluateCheck(lits map[string]literal.Literal, c Check) (string, error) {
	switch c.Type {
	case CheckValid:
		actual := strconv.FormatBool(lits[c.Literal].Valid())
		return actual, expectEqual(c, strconv.FormatBool(*c.Valid), actual)

	case CheckString:
		actual := lits[c.Literal].String()
		return actual, expectEqual(c, *c.Expect, actual)

	case CheckCanonical:
		actual, err := literal.Canonical(lits[c.Literal])
		if err != nil {
			return "error", &AssertionError{
				Type:     c.Type,
				Subjects: []string{c.Literal},
				Expected: *c.Expect,
				Actual:   err.Error(),
			}
		}
		return actual, expectEqual(c, *c.Expect, actual)

	case CheckCanonicalizeError:
		_, err := literal.Canonical(lits[c.Literal])
		if literal.IsCanonicalizeError(err) {
			return "error", nil
		}
		return "ok", &AssertionError{
			Type:     c.Type,
			Subjects: []string{c.Literal},
			Expected: "canonicalize error",
			Actual:   "canonicalized without error",
		}

	case CheckEqual, CheckNotEqual:
		a, b := lits[c.Literals[0]], lits[c.Literals[1]]
		got := a.Equal(b)
		if rev := b.Equal(a); rev != got {
			return "asymmetric", &AssertionError{
				Type:     c.Type,
				Subjects: c.Literals,
				Expected: "symmetric equality",
				Actual:   fmt.Sprintf("a.Equal(b)=%v, b.Equal(a)=%v", got, rev),
			}
		}
		actual := strconv.FormatBool(got)
		return actual, expectEqual(c, strconv.FormatBool(c.Type == CheckEqual), actual)

	default:
		return "", fmt.Errorf("unknown check type %q", c.Type)
	}
}

func expectEqual(c Check, expected, actual string) error {
	if expected == actual {
		return nil
	}
	subjects := c.Literals
	if c.Literal != "" {
		subjects = []string{c.Literal}
	}
	return &AssertionError{
		Type:     c.Type,
		Subjects: subjects,
		Expected: expected,
		Actual:   actual,
	}
}

// checkCanonicalRoundTrip verifies the properties every canonical form must
// have: it is valid, it equals the literal it came from, and canonicalizing
// it again changes nothing. Invalid literals and plain literals are skipped.
func checkCanonicalRoundTrip(name string, lit literal.Literal) error {
	if lit.Kind() == literal.KindOther || !lit.Valid() {
		return nil
	}

	canonical, err := literal.Canonical(lit)
	if err != nil {
		return fmt.Errorf("%s: valid literal failed to canonicalize: %w", name, err)
	}

	var again literal.Literal
	switch lit.Kind() {
	case literal.KindDate:
		again = literal.NewDate(canonical, literal.WithDatatype(lit.Datatype()))
	case literal.KindDateTime:
		again = literal.NewDateTime(canonical, literal.WithDatatype(lit.Datatype()))
	default:
		again = literal.NewTime(canonical, literal.WithDatatype(lit.Datatype()))
	}

	switch {
	case !again.Valid():
		return fmt.Errorf("%s: canonical form %q is not valid", name, canonical)
	case !again.Equal(lit):
		return fmt.Errorf("%s: canonical form %q is not equal to %q", name, canonical, lit.String())
	}

	twice, err := literal.Canonical(again)
	if err != nil || twice != canonical {
		return fmt.Errorf("%s: canonical form %q is not stable (got %q)", name, canonical, twice)
	}
	return nil
}
