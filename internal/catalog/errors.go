// SPDX-License-Identifier: MPL-2.0

package catalog

import (
	"errors"
	"fmt"
)

var (
	// ErrParse is the sentinel error wrapped by ParseError.
	ErrParse = errors.New("catalog parse error")

	// ErrEmptyCatalog is returned when a catalog parses cleanly but
	// defines no categories.
	ErrEmptyCatalog = errors.New("catalog defines no categories")

	// ErrUnknownFormat is returned when neither grammar matches the input.
	ErrUnknownFormat = errors.New("unrecognized catalog format")
)

// ParseError describes a malformed catalog record. One ParseError
// invalidates the entire load; no partial catalog is produced.
// It wraps ErrParse so callers can classify with errors.Is.
type ParseError struct {
	Format Format // grammar that was being parsed
	Line   int    // 1-based line number, 0 when not line-addressable
	Reason string
	Cause  error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	switch {
	case e.Line > 0 && e.Cause != nil:
		return fmt.Sprintf("%s catalog: line %d: %s: %v", e.Format, e.Line, e.Reason, e.Cause)
	case e.Line > 0:
		return fmt.Sprintf("%s catalog: line %d: %s", e.Format, e.Line, e.Reason)
	case e.Cause != nil:
		return fmt.Sprintf("%s catalog: %s: %v", e.Format, e.Reason, e.Cause)
	default:
		return fmt.Sprintf("%s catalog: %s", e.Format, e.Reason)
	}
}

// Unwrap returns ErrParse so errors.Is(err, ErrParse) matches, and the
// cause chain stays reachable through errors.As on the ParseError itself.
func (e *ParseError) Unwrap() error { return ErrParse }
