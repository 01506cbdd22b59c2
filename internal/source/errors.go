// SPDX-License-Identifier: MPL-2.0

package source

import (
	"errors"
	"fmt"
)

var (
	// ErrCatalogMissing indicates that a local catalog path was configured
	// but no readable file exists there.
	ErrCatalogMissing = errors.New("catalog file not found")

	// ErrEmptyResponse indicates that the remote endpoint replied with a
	// success status but an empty body.
	ErrEmptyResponse = errors.New("remote catalog response was empty")
)

type (
	// FetchError describes a failed remote catalog download.
	FetchError struct {
		// URL is the endpoint that was requested.
		URL string
		// StatusCode is the HTTP status, or 0 when the request itself failed.
		StatusCode int
		// Cause is the underlying transport error, if any.
		Cause error
	}
)

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetching catalog from %s: unexpected status %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("fetching catalog from %s: %v", e.URL, e.Cause)
}

func (e *FetchError) Unwrap() error { return e.Cause }
