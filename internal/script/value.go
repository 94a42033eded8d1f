package script

import (
	"fmt"
	"sort"
	"strconv"

	libtime "go.starlark.net/lib/time"
	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/jammie/rdf/internal/literal"
)

// Value is the Starlark representation of a literal.
//
// Values compare with == and != using literal equality. They are not
// hashable, because equal literals may render differently.
type Value struct {
	lit    literal.Literal
	frozen bool
}

var (
	_ starlark.HasAttrs   = (*Value)(nil)
	_ starlark.Comparable = (*Value)(nil)
)

// NewValue wraps lit.
func NewValue(lit literal.Literal) *Value { return &Value{lit: lit} }

// Literal returns the wrapped literal.
func (v *Value) Literal() literal.Literal { return v.lit }

// String renders the literal as an N-Triples typed literal.
func (v *Value) String() string {
	return fmt.Sprintf("%s^^<%s>", strconv.Quote(v.lit.String()), v.lit.Datatype())
}

// Type returns "literal".
func (v *Value) Type() string { return "literal" }

// Freeze marks the value immutable; canonicalize() then fails.
func (v *Value) Freeze() { v.frozen = true }

// Truth reports validity.
func (v *Value) Truth() starlark.Bool { return starlark.Bool(v.lit.Valid()) }

// Hash always fails.
func (v *Value) Hash() (uint32, error) {
	return 0, fmt.Errorf("unhashable type: %s", v.Type())
}

// Attr implements starlark.HasAttrs.
func (v *Value) Attr(name string) (starlark.Value, error) {
	switch name {
	case "valid":
		return starlark.Bool(v.lit.Valid()), nil
	case "lexical":
		if s, ok := v.lit.Lexical(); ok {
			return starlark.String(s), nil
		}
		return starlark.None, nil
	case "string":
		return starlark.String(v.lit.String()), nil
	case "kind":
		return starlark.String(v.lit.Kind().String()), nil
	case "datatype":
		return starlark.String(v.lit.Datatype()), nil
	case "canonical":
		s, err := literal.Canonical(v.lit)
		if err != nil {
			return starlark.None, nil
		}
		return starlark.String(s), nil
	}
	return builtinAttr(v, name, valueMethods)
}

// AttrNames implements starlark.HasAttrs.
func (v *Value) AttrNames() []string {
	return append(builtinAttrNames(valueMethods),
		"canonical",
		"datatype",
		"kind",
		"lexical",
		"string",
		"valid",
	)
}

// CompareSameType implements == and != through literal equality.
// Literals are not ordered.
func (v *Value) CompareSameType(op syntax.Token, y starlark.Value, depth int) (bool, error) {
	other := y.(*Value)
	switch op {
	case syntax.EQL:
		return v.lit.Equal(other.lit), nil
	case syntax.NEQ:
		return !v.lit.Equal(other.lit), nil
	}
	return false, fmt.Errorf("%s %s %s not implemented", v.Type(), op, y.Type())
}

var valueMethods = map[string]builtinMethod{
	"canonicalize": valueCanonicalize,
	"to_time":      valueToTime,
}

// valueCanonicalize rewrites the lexical form in place and returns the
// receiver.
func valueCanonicalize(fnname string, recv *Value, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	if err := starlark.UnpackPositionalArgs(fnname, args, kwargs, 0); err != nil {
		return nil, err
	}
	if recv.frozen {
		return nil, fmt.Errorf("%s: cannot canonicalize frozen literal", fnname)
	}
	if err := literal.Canonicalize(recv.lit); err != nil {
		return nil, fmt.Errorf("%s: %w", fnname, err)
	}
	return recv, nil
}

// valueToTime converts time and date-time literals to a time.time value.
func valueToTime(fnname string, recv *Value, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	if err := starlark.UnpackPositionalArgs(fnname, args, kwargs, 0); err != nil {
		return nil, err
	}
	conv, ok := recv.lit.(literal.TimeConverter)
	if !ok {
		return nil, fmt.Errorf("%s: %s literal has no time", fnname, recv.lit.Kind())
	}
	t, err := conv.ToTime()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", fnname, err)
	}
	return libtime.Time(t), nil
}

type builtinMethod func(fnname string, recv *Value, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error)

func builtinAttr(recv *Value, name string, methods map[string]builtinMethod) (starlark.Value, error) {
	method := methods[name]
	if method == nil {
		return nil, nil // no such method
	}

	impl := func(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		return method(b.Name(), recv, args, kwargs)
	}
	return starlark.NewBuiltin(name, impl).BindReceiver(recv), nil
}

func builtinAttrNames(methods map[string]builtinMethod) []string {
	names := make([]string, 0, len(methods))
	for name := range methods {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
