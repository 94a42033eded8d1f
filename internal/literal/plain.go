package literal

// Plain is a literal of any datatype without dedicated value semantics.
// It is always valid and compares with SameTerm.
type Plain struct {
	base
}

// NewPlain builds a plain literal. An empty datatype means xsd:string.
func NewPlain(lexical string, datatype URI) *Plain {
	if datatype == "" {
		datatype = XSDString
	}
	return &Plain{base: newBase(datatype, lexical, nil)}
}

// Kind implements Literal.
func (l *Plain) Kind() Kind { return KindOther }

// Valid implements Literal.
func (l *Plain) Valid() bool { return true }

// String implements Literal.
func (l *Plain) String() string { return l.lexical }

// Canonicalize is a no-op; the lexical form is already canonical.
func (l *Plain) Canonicalize() (*Plain, error) { return l, nil }

func (l *Plain) canonical() (string, error) { return l.lexical, nil }

// Equal implements Literal.
func (l *Plain) Equal(other Literal) bool { return SameTerm(l, other) }
