package ir

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Domain prefixes for content-addressed identity.
// The version suffix leaves room for a future algorithm change.
const (
	DomainLiteral = "rdf/literal/v1"
	DomainBatch   = "rdf/batch/v1"
)

// hashWithDomain computes SHA256(domain + 0x00 + data).
// The null separator prevents domain/data boundary ambiguity.
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// LiteralID computes the content-addressed ID of a literal term.
//
// Only the datatype and the rendered lexical form take part, so two literals
// that are the same RDF term share an ID. Value-equal literals with different
// lexical forms (10:00:00+02:00 and 08:00:00Z) get different IDs.
func LiteralID(datatype, lexical string) (string, error) {
	obj := IRObject{
		"datatype": IRString(datatype),
		"lexical":  IRString(lexical),
	}

	canonical, err := MarshalCanonical(obj)
	if err != nil {
		return "", fmt.Errorf("LiteralID: failed to marshal: %w", err)
	}

	return hashWithDomain(DomainLiteral, canonical), nil
}

// MustLiteralID is LiteralID for inputs known to marshal. Panics on error.
func MustLiteralID(datatype, lexical string) string {
	id, err := LiteralID(datatype, lexical)
	if err != nil {
		panic(err)
	}
	return id
}

// BatchHash summarises an ordered list of literal IDs.
// Replaying the same inputs in the same order yields the same hash.
func BatchHash(ids []string) (string, error) {
	canonical, err := MarshalCanonical(ids)
	if err != nil {
		return "", fmt.Errorf("BatchHash: failed to marshal: %w", err)
	}
	return hashWithDomain(DomainBatch, canonical), nil
}
