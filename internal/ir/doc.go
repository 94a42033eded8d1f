// Package ir holds the record form of literals and the canonical JSON used
// to identify them. It imports nothing internal.
//
// Records carry only strings, booleans and nested objects. MarshalCanonical
// additionally accepts Go ints, slices and maps so trace snapshots can be
// serialized the same way; floats and nulls are rejected everywhere.
package ir
