// Package services holds the invoicing, catalog and analytics logic on top
// of the document store.
package services

import "errors"

var (
	// ErrNotFound is returned when the requested document does not exist.
	ErrNotFound = errors.New("not found")
	// ErrInvalidID is returned for identifiers that are not valid ObjectIDs.
	// Handlers treat it like ErrNotFound.
	ErrInvalidID = errors.New("invalid id")
	// ErrEmptyUpdate is returned when a patch carries nothing to change.
	ErrEmptyUpdate = errors.New("no fields to update")
)

// UploadError wraps a failed image upload so handlers can report it
// separately from store failures.
type UploadError struct {
	Err error
}

func (e *UploadError) Error() string { return "image upload failed: " + e.Err.Error() }

func (e *UploadError) Unwrap() error { return e.Err }
