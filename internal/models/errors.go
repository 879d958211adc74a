package models

import (
	"errors"
	"fmt"
)

// Sentinel errors for validation.
var (
	ErrMissingTitle = errors.New("title is required")
	ErrMissingBody  = errors.New("body is required")
	ErrMissingURL   = errors.New("url is required")
)

// Sentinel errors for entity lookups.
var (
	ErrContentNotFound = errors.New("content not found")
	ErrNodeNotFound    = errors.New("concept node not found")
)

// ErrDuplicateKey indicates a unique constraint violation (maps to HTTP 409 Conflict).
var ErrDuplicateKey = errors.New("duplicate key")

// EnrichmentFailedError reports that a content item was persisted but a later
// pipeline step failed, leaving its derived data incomplete. The item itself
// is committed and retrievable.
type EnrichmentFailedError struct {
	ContentID string
	Err       error
}

func (e *EnrichmentFailedError) Error() string {
	return fmt.Sprintf("enrichment failed for content %s: %v", e.ContentID, e.Err)
}

func (e *EnrichmentFailedError) Unwrap() error { return e.Err }

// ErrFieldTooLong returns an error indicating a field exceeds its maximum length.
func ErrFieldTooLong(field string, maxLen int) error {
	return fmt.Errorf("%s exceeds maximum length of %d", field, maxLen)
}
