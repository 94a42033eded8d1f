package store

import "errors"

var (
	// ErrEmptyBatch is returned when a write names no batch.
	ErrEmptyBatch = errors.New("batch id must not be empty")

	// ErrInvalidBody is returned when a record body is not valid JSON.
	ErrInvalidBody = errors.New("record body is not valid JSON")

	// ErrBuildingQueryFailed wraps query builder failures.
	ErrBuildingQueryFailed = errors.New("building query failed")
)
