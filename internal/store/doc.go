// Package store provides a SQLite-backed catalogue of RDF literals.
//
// Literals are appended to batches. Each row carries:
//   - id: content-addressed term ID (datatype + rendered form)
//   - seq: position within the batch, starting at 1
//   - canonical, value_key: derived columns for lookups
//   - body: canonical JSON of the literal's IR projection
//
// # Critical Patterns
//
// Term-Level Idempotency
//   - PRIMARY KEY (batch, id) with ON CONFLICT DO NOTHING
//   - Writing the same term into a batch twice stores it once
//
// Deterministic Query Results
//   - Batch reads use ORDER BY seq ASC, id ASC COLLATE BINARY
//   - Batch hashes are stable across replays
//
// Equality Lookups
//   - value_key narrows candidates for valid literals
//   - datatype + rendered narrows same-term candidates
//   - literal.Literal.Equal makes the final decision
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: Enforce referential integrity
//
// Queries are built with goqu's sqlite3 dialect and scanned with sqlx.
package store
