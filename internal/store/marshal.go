package store

import (
	"database/sql"
	"fmt"

	jsoniter "github.com/json-iterator/go"

	"github.com/jammie/rdf/internal/ir"
	"github.com/jammie/rdf/internal/literal"
)

// Record is one stored literal. Body is the canonical JSON of the literal's
// IR projection; the other columns are denormalised from it for querying.
type Record struct {
	ID        string         `db:"id"`
	Batch     string         `db:"batch"`
	Seq       int64          `db:"seq"`
	Datatype  string         `db:"datatype"`
	Kind      string         `db:"kind"`
	Lexical   sql.NullString `db:"lexical"`
	Rendered  string         `db:"rendered"`
	Canonical sql.NullString `db:"canonical"`
	ValueKey  sql.NullString `db:"value_key"`
	Valid     bool           `db:"valid"`
	Body      string         `db:"body"`
}

var recordColumns = []any{
	"id", "batch", "seq", "datatype", "kind", "lexical",
	"rendered", "canonical", "value_key", "valid", "body",
}

// NewRecord projects lit into a record for batch at position seq.
func NewRecord(batch string, seq int64, lit literal.Literal) (Record, error) {
	id, err := literal.ID(lit)
	if err != nil {
		return Record{}, fmt.Errorf("new record: %w", err)
	}

	body, err := marshalBody(literal.ToIR(lit))
	if err != nil {
		return Record{}, fmt.Errorf("new record: %w", err)
	}

	rec := Record{
		ID:       id,
		Batch:    batch,
		Seq:      seq,
		Datatype: string(lit.Datatype()),
		Kind:     lit.Kind().String(),
		Rendered: lit.String(),
		Valid:    lit.Valid(),
		Body:     body,
	}
	if lex, ok := lit.Lexical(); ok {
		rec.Lexical = sql.NullString{String: lex, Valid: true}
	}
	if c, err := literal.Canonical(lit); err == nil {
		rec.Canonical = sql.NullString{String: c, Valid: true}
	}
	if key, ok := literal.ValueKey(lit); ok {
		rec.ValueKey = sql.NullString{String: key, Valid: true}
	}
	return rec, nil
}

// Literal rebuilds the literal from its rendered form. The kind column picks
// the constructor so literals with a custom datatype keep their semantics.
func (r Record) Literal() literal.Literal {
	dt := literal.URI(r.Datatype)
	switch r.Kind {
	case literal.KindTime.String():
		return literal.NewTime(r.Rendered, literal.WithDatatype(dt))
	case literal.KindDate.String():
		return literal.NewDate(r.Rendered, literal.WithDatatype(dt))
	case literal.KindDateTime.String():
		return literal.NewDateTime(r.Rendered, literal.WithDatatype(dt))
	default:
		return literal.NewPlain(r.Rendered, dt)
	}
}

// Fields decodes the stored body.
func (r Record) Fields() (ir.IRObject, error) {
	return unmarshalBody(r.Body)
}

// marshalBody converts an IRObject to canonical JSON TEXT for storage.
func marshalBody(obj ir.IRObject) (string, error) {
	data, err := ir.MarshalCanonical(obj)
	if err != nil {
		return "", fmt.Errorf("marshal body: %w", err)
	}
	if !jsoniter.ConfigFastest.Valid(data) {
		return "", fmt.Errorf("marshal body: %w", ErrInvalidBody)
	}
	return string(data), nil
}

// unmarshalBody parses canonical JSON TEXT back to an IRObject.
// ir.IRObject.UnmarshalJSON keeps integers exact.
func unmarshalBody(data string) (ir.IRObject, error) {
	if data == "" || data == "{}" {
		return ir.IRObject{}, nil
	}
	var obj ir.IRObject
	if err := jsoniter.ConfigCompatibleWithStandardLibrary.UnmarshalFromString(data, &obj); err != nil {
		return nil, fmt.Errorf("unmarshal body: %w", err)
	}
	return obj, nil
}
