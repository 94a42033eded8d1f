package literal

import (
	"errors"
	"fmt"
)

// ErrNoValue is wrapped by every error caused by a literal whose input could
// not be parsed.
var ErrNoValue = errors.New("literal has no parsed value")

// ErrorCode categorizes literal errors.
type ErrorCode string

const (
	// ErrCodeCanonicalizeInvalid indicates Canonicalize was called on a
	// literal without a parsed value.
	ErrCodeCanonicalizeInvalid ErrorCode = "CANONICALIZE_INVALID"
)

// Error is returned by literal operations that cannot complete.
type Error struct {
	Code     ErrorCode
	Message  string
	Datatype URI
	Lexical  string
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Lexical != "" {
		return fmt.Sprintf("%s: %s (lexical=%q, datatype=%s)", e.Code, e.Message, e.Lexical, e.Datatype)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap lets errors.Is match ErrNoValue.
func (e *Error) Unwrap() error {
	return ErrNoValue
}

// IsCanonicalizeError reports whether err came from canonicalizing a literal
// that has no value. Uses errors.As to handle wrapped errors.
func IsCanonicalizeError(err error) bool {
	var le *Error
	if errors.As(err, &le) {
		return le.Code == ErrCodeCanonicalizeInvalid
	}
	return false
}

func newCanonicalizeError(l Literal) *Error {
	return &Error{
		Code:     ErrCodeCanonicalizeInvalid,
		Message:  "cannot canonicalize a literal without a value",
		Datatype: l.Datatype(),
		Lexical:  l.String(),
	}
}
