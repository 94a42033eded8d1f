package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	"github.com/jmoiron/sqlx"

	"github.com/jammie/rdf/internal/literal"
)

func selectLiterals() *goqu.SelectDataset {
	return goqu.Dialect(dialectSQLite).
		From(tableLiterals).
		Prepared(true).
		Select(recordColumns...)
}

// ReadLiteral retrieves a record by term ID. When the term appears in
// several batches the earliest batch wins.
// Returns sql.ErrNoRows if not found.
func (s *Store) ReadLiteral(ctx context.Context, id string) (Record, error) {
	ds := selectLiterals().
		Where(goqu.C("id").Eq(id)).
		Order(goqu.C("batch").Asc(), goqu.C("seq").Asc()).
		Limit(1)
	return s.getRecord(ctx, s.db, "read literal", ds)
}

func (s *Store) readLiteral(ctx context.Context, q sqlx.QueryerContext, batch, id string) (Record, error) {
	ds := selectLiterals().
		Where(goqu.Ex{"batch": batch, "id": id})
	return s.getRecord(ctx, q, "read literal in batch", ds)
}

// ReadBatch returns every record of batch ordered by seq ASC, id ASC.
// Returns an empty slice (not nil) for an unknown batch.
func (s *Store) ReadBatch(ctx context.Context, batch string) ([]Record, error) {
	ds := selectLiterals().
		Where(goqu.C("batch").Eq(batch)).
		Order(goqu.C("seq").Asc(), goqu.L("id COLLATE BINARY").Asc())
	return s.selectRecords(ctx, "read batch", ds)
}

// ListBatches returns the distinct batch IDs in ascending order.
func (s *Store) ListBatches(ctx context.Context) ([]string, error) {
	query, args, err := goqu.Dialect(dialectSQLite).
		From(tableLiterals).
		Prepared(true).
		SelectDistinct("batch").
		Order(goqu.C("batch").Asc()).
		ToSQL()
	if err != nil {
		return nil, errors.Join(ErrBuildingQueryFailed, err)
	}
	s.logQuery("list batches", query)

	batches := []string{}
	if err := s.db.SelectContext(ctx, &batches, query, args...); err != nil {
		return nil, fmt.Errorf("list batches: %w", err)
	}
	return batches, nil
}

// FindEqual returns every stored record whose literal is equal to lit.
//
// Candidates are narrowed in SQL first: by value key when lit has one, and
// always by datatype plus rendered form so same-term matches are found for
// invalid literals too. Literal equality then makes the final decision.
func (s *Store) FindEqual(ctx context.Context, lit literal.Literal) ([]Record, error) {
	sameTerm := goqu.Ex{"datatype": string(lit.Datatype()), "rendered": lit.String()}

	var where goqu.Expression = sameTerm
	if key, ok := literal.ValueKey(lit); ok {
		where = goqu.Or(goqu.C("value_key").Eq(key), sameTerm)
	}

	candidates, err := s.selectRecords(ctx, "find equal", selectLiterals().
		Where(where).
		Order(goqu.C("batch").Asc(), goqu.C("seq").Asc()))
	if err != nil {
		return nil, err
	}

	matches := make([]Record, 0, len(candidates))
	for _, rec := range candidates {
		if lit.Equal(rec.Literal()) {
			matches = append(matches, rec)
		}
	}
	s.logger.Debug("find equal", "candidates", len(candidates), "matches", len(matches))
	return matches, nil
}

func (s *Store) getRecord(ctx context.Context, q sqlx.QueryerContext, action string, ds *goqu.SelectDataset) (Record, error) {
	query, args, err := ds.ToSQL()
	if err != nil {
		return Record{}, errors.Join(ErrBuildingQueryFailed, err)
	}
	s.logQuery(action, query)

	var rec Record
	if err := sqlx.GetContext(ctx, q, &rec, query, args...); err != nil {
		return Record{}, fmt.Errorf("%s: %w", action, err)
	}
	return rec, nil
}

func (s *Store) selectRecords(ctx context.Context, action string, ds *goqu.SelectDataset) ([]Record, error) {
	query, args, err := ds.ToSQL()
	if err != nil {
		return nil, errors.Join(ErrBuildingQueryFailed, err)
	}
	s.logQuery(action, query)

	records := []Record{}
	if err := s.db.SelectContext(ctx, &records, query, args...); err != nil {
		return nil, fmt.Errorf("%s: %w", action, err)
	}
	return records, nil
}
