package tcnl

import (
	"errors"
	"strings"
)

var (
	// ErrLength indicates a declared or required length exceeds the
	// available buffer, at any nesting level.
	ErrLength = errors.New("invalid length")

	// ErrMalformed indicates a field whose raw bytes cannot be
	// interpreted under its declared type.
	ErrMalformed = errors.New("malformed field")

	// ErrUnsupportedKind is returned when constructing options for a
	// qdisc, class or filter kind with no committed encoding. Decoding
	// never returns this, unknown kinds decode to an opaque payload.
	ErrUnsupportedKind = errors.New("unsupported kind")
)

// IsNotFound reports whether a netlink operation failed because the
// object it referred to does not exist. The error must be non-nil;
// passing nil panics.
func IsNotFound(err error) bool {

	return strings.Contains(err.Error(), "not found")

}
