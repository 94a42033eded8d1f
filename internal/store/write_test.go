package store

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/jammie/rdf/internal/literal"
)

func TestPutLiteral_Basic(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	rec, err := s.PutLiteral(ctx, "batch-1", literal.NewTime("14:30:00-05:00"))
	if err != nil {
		t.Fatalf("PutLiteral() failed: %v", err)
	}

	if rec.Seq != 1 {
		t.Errorf("Seq = %d, want 1", rec.Seq)
	}
	if rec.Kind != "time" {
		t.Errorf("Kind = %q, want time", rec.Kind)
	}
	if !rec.Valid {
		t.Error("Valid = false, want true")
	}
	if rec.Canonical.String != "19:30:00Z" {
		t.Errorf("Canonical = %q, want 19:30:00Z", rec.Canonical.String)
	}
	if rec.ValueKey.String != "time/19:30:00" {
		t.Errorf("ValueKey = %q, want time/19:30:00", rec.ValueKey.String)
	}
	if rec.Lexical.String != "14:30:00-05:00" || !rec.Lexical.Valid {
		t.Errorf("Lexical = %+v, want 14:30:00-05:00", rec.Lexical)
	}
}

func TestPutLiteral_SequenceIsPerBatch(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	inputs := []struct {
		batch string
		lex   string
		want  int64
	}{
		{"a", "10:00:00Z", 1},
		{"a", "11:00:00Z", 2},
		{"b", "10:00:00Z", 1},
		{"a", "12:00:00Z", 3},
	}

	for _, in := range inputs {
		rec, err := s.PutLiteral(ctx, in.batch, literal.NewTime(in.lex))
		if err != nil {
			t.Fatalf("PutLiteral(%s, %s) failed: %v", in.batch, in.lex, err)
		}
		if rec.Seq != in.want {
			t.Errorf("PutLiteral(%s, %s).Seq = %d, want %d", in.batch, in.lex, rec.Seq, in.want)
		}
	}
}

func TestPutLiteral_SameTermIsIdempotent(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	first, err := s.PutLiteral(ctx, "batch-1", literal.NewTime("10:00:00Z"))
	if err != nil {
		t.Fatalf("first PutLiteral() failed: %v", err)
	}
	second, err := s.PutLiteral(ctx, "batch-1", literal.NewPlain("10:00:00Z", literal.XSDTime))
	if err != nil {
		t.Fatalf("second PutLiteral() failed: %v", err)
	}

	if first.ID != second.ID || second.Seq != 1 {
		t.Errorf("second put = (%s, %d), want existing (%s, 1)", second.ID, second.Seq, first.ID)
	}

	// A value-equal literal with another lexical form is a different term.
	third, err := s.PutLiteral(ctx, "batch-1", literal.NewTime("12:00:00+02:00"))
	if err != nil {
		t.Fatalf("third PutLiteral() failed: %v", err)
	}
	if third.Seq != 2 {
		t.Errorf("third Seq = %d, want 2", third.Seq)
	}
}

func TestPutLiteral_InvalidLiteral(t *testing.T) {
	s := createTestStore(t)

	rec, err := s.PutLiteral(context.Background(), "batch-1", literal.NewTime("25:99:99"))
	if err != nil {
		t.Fatalf("PutLiteral() failed: %v", err)
	}
	if rec.Valid {
		t.Error("Valid = true, want false")
	}
	if rec.Canonical.Valid || rec.ValueKey.Valid {
		t.Errorf("invalid literal got canonical=%+v value_key=%+v", rec.Canonical, rec.ValueKey)
	}
}

func TestPutLiteral_EmptyBatch(t *testing.T) {
	s := createTestStore(t)

	_, err := s.PutLiteral(context.Background(), "", literal.NewTime("10:00:00Z"))
	if !errors.Is(err, ErrEmptyBatch) {
		t.Errorf("err = %v, want ErrEmptyBatch", err)
	}
}

func TestWriteLiteral_Idempotent(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	rec, err := NewRecord("batch-1", 7, literal.NewDate("2024-01-01Z"))
	if err != nil {
		t.Fatalf("NewRecord() failed: %v", err)
	}

	for i := 0; i < 2; i++ {
		if err := s.WriteLiteral(ctx, rec); err != nil {
			t.Fatalf("WriteLiteral() #%d failed: %v", i, err)
		}
	}

	var count int
	if err := s.db.Get(&count, "SELECT COUNT(*) FROM literals"); err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 1 {
		t.Errorf("count = %d, want 1", count)
	}
}

func TestWriteLiteral_Validation(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	good, err := NewRecord("batch-1", 1, literal.NewTime("10:00:00Z"))
	if err != nil {
		t.Fatalf("NewRecord() failed: %v", err)
	}

	noBatch := good
	noBatch.Batch = ""
	if err := s.WriteLiteral(ctx, noBatch); !errors.Is(err, ErrEmptyBatch) {
		t.Errorf("empty batch: err = %v, want ErrEmptyBatch", err)
	}

	badBody := good
	badBody.Body = `{"datatype":`
	if err := s.WriteLiteral(ctx, badBody); !errors.Is(err, ErrInvalidBody) {
		t.Errorf("bad body: err = %v, want ErrInvalidBody", err)
	}

	noID := good
	noID.ID = ""
	if err := s.WriteLiteral(ctx, noID); err == nil {
		t.Error("empty id: expected error")
	}
}

func TestPutLiteral_Logs(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	s := createTestStore(t, WithLogger(logger))

	if _, err := s.PutLiteral(context.Background(), "batch-1", literal.NewTime("10:00:00Z")); err != nil {
		t.Fatalf("PutLiteral() failed: %v", err)
	}

	out := buf.String()
	for _, want := range []string{"literal stored", "executed sql for: next seq", "batch=batch-1"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q:\n%s", want, out)
		}
	}
}

func TestNewRecord_Body(t *testing.T) {
	rec, err := NewRecord("b", 1, literal.NewTime("14:30:00-05:00"))
	if err != nil {
		t.Fatalf("NewRecord() failed: %v", err)
	}

	want := `{"canonical":"19:30:00Z","datatype":"http://www.w3.org/2001/XMLSchema#time","kind":"time","lexical":"14:30:00-05:00","string":"14:30:00-05:00","valid":true}`
	if rec.Body != want {
		t.Errorf("Body = %s\nwant   %s", rec.Body, want)
	}

	fields, err := rec.Fields()
	if err != nil {
		t.Fatalf("Fields() failed: %v", err)
	}
	if c, ok := fields.String("canonical"); !ok || c != "19:30:00Z" {
		t.Errorf("Fields()[canonical] = %q, %v", c, ok)
	}
	if v, ok := fields.Bool("valid"); !ok || !v {
		t.Errorf("Fields()[valid] = %v, %v", v, ok)
	}
}
