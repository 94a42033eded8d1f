// Package literal implements RDF literal value semantics for the XML Schema
// temporal datatypes, centred on xsd:time.
//
// Literals are built from raw input and never fail to construct. Input that
// cannot be interpreted leaves the literal without a value, and validity is
// derived on demand:
//
//	Valid() == (value parsed) && (String() matches the datatype grammar)
//
// # Kinds
//
// The set of literal kinds is closed: *Time, *Date, *DateTime and *Plain.
// Equality dispatches on Kind and falls back to SameTerm (same datatype and
// same lexical form) for every case without value semantics:
//
//	NewTime("10:00:00+02:00").Equal(NewTime("08:00:00Z"))   // true
//	NewTime("10:00:00.5Z").Equal(NewTime("10:00:00.9Z"))    // true
//	NewTime("10:00:00Z").Equal(NewDateTime("2000-01-01T10:00:00Z")) // false
//
// # Canonical form
//
// Canonicalize is the only mutator. For xsd:time it converts to UTC, renders
// HH:MM:SS with any fractional digits, and uses "Z" as the only timezone
// suffix:
//
//	t, _ := NewTime("14:30:00-05:00").Canonicalize()
//	t.String() // "19:30:00Z"
//
// Literals are not safe for concurrent use while Canonicalize may run.
package literal
