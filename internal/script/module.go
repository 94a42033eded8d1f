package script

import (
	"fmt"
	"time"

	libtime "go.starlark.net/lib/time"
	"go.starlark.net/starlark"
	"go.starlark.net/starlarkstruct"

	"github.com/jammie/rdf/internal/literal"
)

// Module is the "literal" module.
//
//	literal.time(value, lexical=None, datatype=None)
//	literal.date(value, lexical=None, datatype=None)
//	literal.datetime(value, lexical=None, datatype=None)
//	literal.literal(lexical, datatype)
//
// value may be a string, a time.time, or another literal.
var Module = &starlarkstruct.Module{
	Name: "literal",
	Members: starlark.StringDict{
		"time":     starlark.NewBuiltin("time", makeTime),
		"date":     starlark.NewBuiltin("date", makeDate),
		"datetime": starlark.NewBuiltin("datetime", makeDateTime),
		"literal":  starlark.NewBuiltin("literal", makeLiteral),

		"XSD_TIME":      starlark.String(literal.XSDTime),
		"XSD_DATE":      starlark.String(literal.XSDDate),
		"XSD_DATE_TIME": starlark.String(literal.XSDDateTime),
	},
}

// Predeclared returns the globals every script sees: the literal module and
// the time module from go.starlark.net/lib/time.
func Predeclared() starlark.StringDict {
	return starlark.StringDict{
		"literal": Module,
		"time":    libtime.Module,
	}
}

type constructor func(v any, opts ...literal.Option) literal.Literal

func makeTime(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	return construct(b.Name(), args, kwargs, func(v any, opts ...literal.Option) literal.Literal {
		return literal.NewTime(v, opts...)
	})
}

func makeDate(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	return construct(b.Name(), args, kwargs, func(v any, opts ...literal.Option) literal.Literal {
		return literal.NewDate(v, opts...)
	})
}

func makeDateTime(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	return construct(b.Name(), args, kwargs, func(v any, opts ...literal.Option) literal.Literal {
		return literal.NewDateTime(v, opts...)
	})
}

func construct(fnname string, args starlark.Tuple, kwargs []starlark.Tuple, build constructor) (starlark.Value, error) {
	var (
		value    starlark.Value
		lexical  starlark.Value = starlark.None
		datatype starlark.Value = starlark.None
	)
	if err := starlark.UnpackArgs(fnname, args, kwargs,
		"value", &value,
		"lexical?", &lexical,
		"datatype?", &datatype,
	); err != nil {
		return nil, err
	}

	input, err := nativeInput(fnname, value)
	if err != nil {
		return nil, err
	}

	var opts []literal.Option
	if lexical != starlark.None {
		s, ok := starlark.AsString(lexical)
		if !ok {
			return nil, fmt.Errorf("%s: for parameter lexical: got %s, want string", fnname, lexical.Type())
		}
		opts = append(opts, literal.WithLexical(s))
	}
	if datatype != starlark.None {
		s, ok := starlark.AsString(datatype)
		if !ok {
			return nil, fmt.Errorf("%s: for parameter datatype: got %s, want string", fnname, datatype.Type())
		}
		opts = append(opts, literal.WithDatatype(literal.URI(s)))
	}

	return NewValue(build(input, opts...)), nil
}

// nativeInput maps a Starlark argument to something the literal
// constructors accept.
func nativeInput(fnname string, v starlark.Value) (any, error) {
	switch x := v.(type) {
	case starlark.String:
		return string(x), nil
	case libtime.Time:
		return time.Time(x), nil
	case *Value:
		return x.lit, nil
	case starlark.NoneType:
		return nil, nil
	default:
		return nil, fmt.Errorf("%s: for parameter value: got %s, want string, time.time or literal", fnname, v.Type())
	}
}

func makeLiteral(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var lexical, datatype string
	if err := starlark.UnpackArgs(b.Name(), args, kwargs, "lexical", &lexical, "datatype", &datatype); err != nil {
		return nil, err
	}
	return NewValue(literal.New(lexical, literal.URI(datatype))), nil
}
