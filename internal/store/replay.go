package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/doug-martin/goqu/v9"

	"github.com/jammie/rdf/internal/ir"
)

// Drift describes a stored record whose columns no longer match what the
// current literal semantics derive from its rendered form.
type Drift struct {
	Record Record
	Field  string
	Stored string
	Fresh  string
}

// BatchState summarises a batch for replay.
type BatchState struct {
	Batch   string
	Count   int
	LastSeq int64
	Invalid int
	// Hash is ir.BatchHash over the record IDs in seq order. Replaying the
	// same inputs into a fresh batch yields the same hash.
	Hash string
}

// GetBatchState retrieves the summary of a batch.
func (s *Store) GetBatchState(ctx context.Context, batch string) (BatchState, error) {
	state := BatchState{Batch: batch}

	records, err := s.ReadBatch(ctx, batch)
	if err != nil {
		return state, fmt.Errorf("get batch state: %w", err)
	}

	ids := make([]string, len(records))
	for i, rec := range records {
		ids[i] = rec.ID
		if !rec.Valid {
			state.Invalid++
		}
		if rec.Seq > state.LastSeq {
			state.LastSeq = rec.Seq
		}
	}
	state.Count = len(records)

	state.Hash, err = ir.BatchHash(ids)
	if err != nil {
		return state, fmt.Errorf("get batch state: %w", err)
	}
	return state, nil
}

// ReplayBatch rebuilds every literal of batch from its rendered form and
// reports records whose stored columns differ from the fresh derivation.
// An empty result means the batch is consistent.
func (s *Store) ReplayBatch(ctx context.Context, batch string) ([]Drift, error) {
	records, err := s.ReadBatch(ctx, batch)
	if err != nil {
		return nil, fmt.Errorf("replay batch: %w", err)
	}

	drifts := []Drift{}
	for _, rec := range records {
		fresh, err := NewRecord(rec.Batch, rec.Seq, rec.Literal())
		if err != nil {
			return nil, fmt.Errorf("replay batch: seq %d: %w", rec.Seq, err)
		}
		drifts = append(drifts, diffRecords(rec, fresh)...)
	}

	if len(drifts) > 0 {
		s.logger.Warn("batch drift detected", "batch", batch, "drifts", len(drifts))
	}
	return drifts, nil
}

// diffRecords compares the derived columns. Lexical and body are skipped:
// a literal built natively has no lexical form, and its replay always has
// one.
func diffRecords(stored, fresh Record) []Drift {
	var out []Drift
	check := func(field, a, b string) {
		if a != b {
			out = append(out, Drift{Record: stored, Field: field, Stored: a, Fresh: b})
		}
	}
	check("id", stored.ID, fresh.ID)
	check("kind", stored.Kind, fresh.Kind)
	check("canonical", stored.Canonical.String, fresh.Canonical.String)
	check("value_key", stored.ValueKey.String, fresh.ValueKey.String)
	check("valid", fmt.Sprint(stored.Valid), fmt.Sprint(fresh.Valid))
	return out
}

// GetLastSeq returns the highest sequence number across all batches.
// Returns 0 for an empty store.
func (s *Store) GetLastSeq(ctx context.Context) (int64, error) {
	query, args, err := goqu.Dialect(dialectSQLite).
		From(tableLiterals).
		Prepared(true).
		Select(goqu.COALESCE(goqu.MAX("seq"), 0)).
		ToSQL()
	if err != nil {
		return 0, errors.Join(ErrBuildingQueryFailed, err)
	}
	s.logQuery("last seq", query)

	var seq int64
	if err := s.db.GetContext(ctx, &seq, query, args...); err != nil {
		return 0, fmt.Errorf("get last seq: %w", err)
	}
	return seq, nil
}
