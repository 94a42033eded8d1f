package literal

import "reflect"

// Kind tags the closed set of literal types.
type Kind int

const (
	KindOther Kind = iota
	KindTime
	KindDate
	KindDateTime
)

func (k Kind) String() string {
	switch k {
	case KindTime:
		return "time"
	case KindDate:
		return "date"
	case KindDateTime:
		return "dateTime"
	default:
		return "other"
	}
}

// Literal is a sealed interface implemented by *Time, *Date, *DateTime and
// *Plain.
type Literal interface {
	// Kind reports which member of the closed set this literal is.
	Kind() Kind

	// Datatype is fixed at construction.
	Datatype() URI

	// Lexical returns the stored lexical form, if any.
	Lexical() (string, bool)

	// String returns the lexical form, or a rendering of the value when no
	// lexical form is stored.
	String() string

	// Valid reports whether String() matches the datatype grammar and a
	// value was parsed.
	Valid() bool

	// Equal is total; it never panics on mismatched kinds or nil.
	Equal(other Literal) bool

	sealed()
}

// Option configures literal construction.
type Option func(*options)

type options struct {
	lexical    string
	hasLexical bool
	datatype   URI
}

// WithLexical overrides the lexical form derived from the input.
func WithLexical(lexical string) Option {
	return func(o *options) {
		o.lexical = lexical
		o.hasLexical = true
	}
}

// WithDatatype overrides the default datatype of the literal kind.
func WithDatatype(datatype URI) Option {
	return func(o *options) {
		o.datatype = datatype
	}
}

// base holds the state shared by every literal kind.
type base struct {
	datatype   URI
	lexical    string
	hasLexical bool
}

// newBase applies options over the kind's default datatype. A string input
// becomes the lexical form unless WithLexical was given.
func newBase(datatype URI, v any, opts []Option) base {
	o := options{datatype: datatype}
	for _, opt := range opts {
		opt(&o)
	}

	b := base{datatype: o.datatype}
	switch {
	case o.hasLexical:
		b.lexical, b.hasLexical = o.lexical, true
	default:
		if s, ok := v.(string); ok {
			b.lexical, b.hasLexical = s, true
		}
	}
	return b
}

func (b *base) Datatype() URI { return b.datatype }

func (b *base) Lexical() (string, bool) { return b.lexical, b.hasLexical }

func (b *base) setLexical(s string) {
	b.lexical, b.hasLexical = s, true
}

func (b *base) sealed() {}

// SameTerm is the fallback equality shared by all kinds: same datatype and
// same rendered lexical form.
func SameTerm(a, b Literal) bool {
	if isNil(a) || isNil(b) {
		return isNil(a) && isNil(b)
	}
	return a.Datatype() == b.Datatype() && a.String() == b.String()
}

// nilInput reports whether v is nil or a typed nil pointer, map, slice,
// func, chan or interface. Such inputs carry no value.
func nilInput(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		return rv.IsNil()
	}
	return false
}

func isNil(l Literal) bool {
	switch v := l.(type) {
	case nil:
		return true
	case *Time:
		return v == nil
	case *Date:
		return v == nil
	case *DateTime:
		return v == nil
	case *Plain:
		return v == nil
	}
	return false
}

// New builds the literal kind registered for datatype from a lexical form.
// Unknown datatypes yield a *Plain literal.
func New(lexical string, datatype URI) Literal {
	switch datatype {
	case XSDTime:
		return NewTime(lexical)
	case XSDDate:
		return NewDate(lexical)
	case XSDDateTime:
		return NewDateTime(lexical)
	default:
		return NewPlain(lexical, datatype)
	}
}

// Canonical returns the canonical lexical form of l without modifying it.
func Canonical(l Literal) (string, error) {
	switch v := l.(type) {
	case *Time:
		return v.canonical()
	case *Date:
		return v.canonical()
	case *DateTime:
		return v.canonical()
	case *Plain:
		return v.canonical()
	default:
		return "", &Error{Code: ErrCodeCanonicalizeInvalid, Message: "nil literal"}
	}
}

// Canonicalize replaces the lexical form of l with its canonical form.
func Canonicalize(l Literal) error {
	switch v := l.(type) {
	case *Time:
		_, err := v.Canonicalize()
		return err
	case *Date:
		_, err := v.Canonicalize()
		return err
	case *DateTime:
		_, err := v.Canonicalize()
		return err
	case *Plain:
		_, err := v.Canonicalize()
		return err
	default:
		return &Error{Code: ErrCodeCanonicalizeInvalid, Message: "nil literal"}
	}
}
