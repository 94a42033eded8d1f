// Package harness runs conformance scenarios for RDF literals.
//
// A scenario names a set of literals and the checks that must hold for
// them. Run builds every literal, stores it in a fresh in-memory store,
// evaluates the checks and then replays the stored batch to confirm that
// the persisted columns still match a fresh derivation.
//
// # Scenario Format
//
// Scenarios are YAML files decoded strictly (unknown fields are errors):
//
//	name: time_basics
//	description: "What this scenario validates"
//	batch: optional-batch-id
//	literals:
//	  est:
//	    value: "14:30:00-05:00"
//	  utc:
//	    value: "19:30:00Z"
//	  day:
//	    value: "2024-01-01"
//	    datatype: date
//	checks:
//	  - type: equal
//	    literals: [est, utc]
//	  - type: canonical
//	    literal: est
//	    expect: "19:30:00Z"
//
// The same structure may be written in CUE (.cue files). Either way the
// scenario is unified with the embedded schema in schema.cue before it runs.
//
// # Check Types
//
//   - valid: the literal's validity matches valid:
//   - canonical: the canonical form matches expect:
//   - string: the rendered lexical form matches expect:
//   - equal / not_equal: value equality of a pair, which must be symmetric
//   - canonicalize_error: canonicalizing the literal fails
//
// Checks never modify the literals. Every valid literal is additionally
// checked for a stable canonical round trip.
//
// # Golden Traces
//
// RunWithGolden serializes the trace as canonical JSON and compares it with
// testdata/golden/<name>.golden. Content hashes are left out of the
// snapshot.
package harness
