package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	jsoniter "github.com/json-iterator/go"
	"github.com/jmoiron/sqlx"

	"github.com/jammie/rdf/internal/literal"
)

const insertLiteralSQL = `
	INSERT INTO literals
	(id, batch, seq, datatype, kind, lexical, rendered, canonical, value_key, valid, body)
	VALUES (:id, :batch, :seq, :datatype, :kind, :lexical, :rendered, :canonical, :value_key, :valid, :body)
	ON CONFLICT(batch, id) DO NOTHING
`

// WriteLiteral inserts a record into the store.
// Uses ON CONFLICT(batch, id) DO NOTHING for idempotency: writing the same
// term into the same batch twice keeps the first row.
func (s *Store) WriteLiteral(ctx context.Context, rec Record) error {
	if err := validateRecord(rec); err != nil {
		return fmt.Errorf("write literal: %w", err)
	}

	res, err := s.db.NamedExecContext(ctx, insertLiteralSQL, rec)
	if err != nil {
		return fmt.Errorf("write literal: %w", err)
	}
	s.logWrite(rec, res)
	return nil
}

// PutLiteral appends lit to batch at the next sequence number and returns
// the stored record. If the batch already holds the same term, the existing
// record is returned unchanged.
func (s *Store) PutLiteral(ctx context.Context, batch string, lit literal.Literal) (Record, error) {
	if batch == "" {
		return Record{}, fmt.Errorf("put literal: %w", ErrEmptyBatch)
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return Record{}, fmt.Errorf("put literal: begin tx: %w", err)
	}
	defer tx.Rollback() // No-op if committed

	id, err := literal.ID(lit)
	if err != nil {
		return Record{}, fmt.Errorf("put literal: %w", err)
	}

	existing, err := s.readLiteral(ctx, tx, batch, id)
	switch {
	case err == nil:
		return existing, nil
	case !errors.Is(err, sql.ErrNoRows):
		return Record{}, fmt.Errorf("put literal: %w", err)
	}

	seq, err := s.nextSeq(ctx, tx, batch)
	if err != nil {
		return Record{}, fmt.Errorf("put literal: %w", err)
	}

	rec, err := NewRecord(batch, seq, lit)
	if err != nil {
		return Record{}, fmt.Errorf("put literal: %w", err)
	}
	if err := validateRecord(rec); err != nil {
		return Record{}, fmt.Errorf("put literal: %w", err)
	}

	res, err := tx.NamedExecContext(ctx, insertLiteralSQL, rec)
	if err != nil {
		return Record{}, fmt.Errorf("put literal: insert: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return Record{}, fmt.Errorf("put literal: commit: %w", err)
	}
	s.logWrite(rec, res)

	return rec, nil
}

// nextSeq returns one past the highest sequence number in batch.
func (s *Store) nextSeq(ctx context.Context, q sqlx.QueryerContext, batch string) (int64, error) {
	query, args, err := goqu.Dialect(dialectSQLite).
		From(tableLiterals).
		Prepared(true).
		Select(goqu.COALESCE(goqu.MAX("seq"), 0)).
		Where(goqu.C("batch").Eq(batch)).
		ToSQL()
	if err != nil {
		return 0, errors.Join(ErrBuildingQueryFailed, err)
	}
	s.logQuery("next seq", query)

	var maxSeq int64
	if err := sqlx.GetContext(ctx, q, &maxSeq, query, args...); err != nil {
		return 0, fmt.Errorf("next seq: %w", err)
	}
	return maxSeq + 1, nil
}

func validateRecord(rec Record) error {
	if rec.Batch == "" {
		return ErrEmptyBatch
	}
	if rec.ID == "" {
		return fmt.Errorf("record id must not be empty")
	}
	if !jsoniter.ConfigFastest.Valid([]byte(rec.Body)) {
		return ErrInvalidBody
	}
	return nil
}

func (s *Store) logWrite(rec Record, res sql.Result) {
	n, err := res.RowsAffected()
	if err != nil {
		s.logger.Warn("failed to get rows affected count", "error", err)
		return
	}
	if n == 0 {
		s.logger.Debug("literal already stored", "batch", rec.Batch, "id", rec.ID)
		return
	}
	s.logger.Info("literal stored", "batch", rec.Batch, "seq", rec.Seq, "kind", rec.Kind, "valid", rec.Valid)
}

func (s *Store) logQuery(action, query string) {
	s.logger.Debug("executed sql for: "+action, "query", query)
}
