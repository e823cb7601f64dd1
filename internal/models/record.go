// Package models defines the data types shared across costwatch.
package models

import "fmt"

// RawDocument is a parsed monthly costs file. It maps a user identifier
// (typically an email address) to that user's sequence of usage entries,
// kept loosely typed because the exporter is not strict about field types:
// total_cost in particular may arrive serialized as a string.
type RawDocument map[string]any

// Record is one user's usage entry after validation and coercion.
// TotalTokens is always computed as input_tokens + output_tokens; the
// source never stores it.
type Record struct {
	User        string
	Model       string
	TotalCost   float64
	TotalTokens int64
}

// ErrorKind classifies why a user's entry was dropped during normalization.
type ErrorKind int

const (
	// ErrMissingField means a required field was absent from the entry.
	ErrMissingField ErrorKind = iota
	// ErrInvalidNumeric means total_cost or a token count could not be
	// interpreted as a number.
	ErrInvalidNumeric
	// ErrUnexpected covers any other per-entry failure, such as a
	// malformed nested structure.
	ErrUnexpected
)

// String returns the string representation of an ErrorKind.
func (k ErrorKind) String() string {
	switch k {
	case ErrMissingField:
		return "missing field"
	case ErrInvalidNumeric:
		return "invalid numeric"
	case ErrUnexpected:
		return "unexpected"
	default:
		return "unknown"
	}
}

// RecordError describes one dropped record. Record-level errors are always
// isolated to the record they describe; they never abort a batch.
type RecordError struct {
	Kind   ErrorKind
	User   string
	Field  string // set when Kind is ErrMissingField
	Detail string
}

// Error implements the error interface.
func (e RecordError) Error() string {
	switch e.Kind {
	case ErrMissingField:
		return fmt.Sprintf("%s: missing field %q", e.User, e.Field)
	default:
		return fmt.Sprintf("%s: %s", e.User, e.Detail)
	}
}
