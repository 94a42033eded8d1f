package literal

import "github.com/jammie/rdf/internal/ir"

// ToIR projects a literal onto its record form. The canonical key is present
// only when the literal has a value.
func ToIR(l Literal) ir.IRObject {
	obj := ir.IRObject{
		"datatype": ir.IRString(l.Datatype()),
		"kind":     ir.IRString(l.Kind().String()),
		"string":   ir.IRString(l.String()),
		"valid":    ir.IRBool(l.Valid()),
	}
	if lex, ok := l.Lexical(); ok {
		obj["lexical"] = ir.IRString(lex)
	}
	if c, err := Canonical(l); err == nil {
		obj["canonical"] = ir.IRString(c)
	}
	return obj
}

// ID returns the content-addressed identity of the literal as an RDF term.
func ID(l Literal) (string, error) {
	return ir.LiteralID(string(l.Datatype()), l.String())
}

// ValueKey returns a string that two valid literals of the same kind share
// exactly when they are equal by value. Invalid literals have no key.
func ValueKey(l Literal) (string, bool) {
	if isNil(l) || !l.Valid() {
		return "", false
	}
	switch v := l.(type) {
	case *Time:
		return "time/" + v.value.ClockKey(), true
	case *Date:
		return "date/" + v.value.format(), true
	case *DateTime:
		return "dateTime/" + v.value.formatDateTime(), true
	default:
		return "", false
	}
}
