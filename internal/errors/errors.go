// Package errors provides error handling for the string analyzer.
//
// It re-exports github.com/cockroachdb/errors and declares the sentinel error
// kinds the core reports. Call sites wrap a sentinel to add context:
//
//	return errors.Wrapf(errors.ErrNotFound, "string with hash %s", hash)
//
// and callers classify with errors.Is or Kind.
package errors

import (
	crdb "github.com/cockroachdb/errors"
)

// Core error creation and wrapping
var (
	New          = crdb.New
	Newf         = crdb.Newf
	Wrap         = crdb.Wrap
	Wrapf        = crdb.Wrapf
	WithStack    = crdb.WithStack
	WithMessage  = crdb.WithMessage
	WithMessagef = crdb.WithMessagef
)

// User-facing messages and details
var (
	WithHint     = crdb.WithHint
	WithHintf    = crdb.WithHintf
	WithDetail   = crdb.WithDetail
	WithDetailf  = crdb.WithDetailf
	GetAllHints  = crdb.GetAllHints
	FlattenHints = crdb.FlattenHints
)

// Error inspection
var (
	Is        = crdb.Is
	IsAny     = crdb.IsAny
	As        = crdb.As
	Unwrap    = crdb.Unwrap
	UnwrapAll = crdb.UnwrapAll
)

// Error kinds surfaced by the core. Every failure returned from the store,
// the service or the boundary parsers wraps exactly one of these.
var (
	// ErrDuplicateKey indicates a value whose content hash is already stored.
	ErrDuplicateKey = New("string already exists in the system")

	// ErrNotFound indicates a lookup or delete for a value or hash that is not stored.
	ErrNotFound = New("string does not exist in the system")

	// ErrUnparseableQuery indicates a natural language query that produced no filters.
	ErrUnparseableQuery = New("unable to parse natural language query")

	// ErrConflictingFilters indicates a filter set with min_length > max_length.
	ErrConflictingFilters = New("query parsed but resulted in conflicting filters")

	// ErrInvalidInput indicates a caller precondition violation.
	ErrInvalidInput = New("invalid input")

	// ErrInvalidType is an InvalidInput refinement for a value of the wrong type.
	ErrInvalidType = Wrap(ErrInvalidInput, "invalid data type")
)

// Stable kind codes, used in error responses and metrics labels.
const (
	KindDuplicateKey       = "duplicate_key"
	KindNotFound           = "not_found"
	KindUnparseableQuery   = "unparseable_query"
	KindConflictingFilters = "conflicting_filters"
	KindInvalidType        = "invalid_type"
	KindInvalidInput       = "invalid_input"
	KindInternal           = "internal"
)

// Kind classifies err into one of the Kind* codes. A nil error has no kind.
func Kind(err error) string {
	switch {
	case err == nil:
		return ""
	case Is(err, ErrDuplicateKey):
		return KindDuplicateKey
	case Is(err, ErrNotFound):
		return KindNotFound
	case Is(err, ErrUnparseableQuery):
		return KindUnparseableQuery
	case Is(err, ErrConflictingFilters):
		return KindConflictingFilters
	case Is(err, ErrInvalidType):
		return KindInvalidType
	case Is(err, ErrInvalidInput):
		return KindInvalidInput
	default:
		return KindInternal
	}
}

// Invalidf returns an InvalidInput error with a formatted message.
func Invalidf(format string, args ...interface{}) error {
	return Wrapf(ErrInvalidInput, format, args...)
}
