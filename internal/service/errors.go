package service

import (
	"errors"

	"snaplink/internal/store"
)

// All failures below are expected, recoverable outcomes the caller can act
// on; none of them is process-fatal.
var (
	// ErrEmptyURL is returned when the destination URL is empty.
	ErrEmptyURL = errors.New("url is empty")

	// ErrInvalidURL is returned when the destination is not an absolute URL.
	ErrInvalidURL = errors.New("invalid url")

	// ErrInvalidValidity is returned when the validity window is under one minute.
	ErrInvalidValidity = errors.New("validity must be at least 1 minute")

	// ErrCodeTaken is returned when a short code collides with an existing
	// record. For custom codes the caller should pick another; for generated
	// codes a retry of Shorten draws a fresh code.
	ErrCodeTaken = store.ErrCodeTaken

	// ErrCodeNotFound is returned when no record matches a short code.
	ErrCodeNotFound = store.ErrNotFound

	// ErrLinkExpired is returned when a record exists but its validity
	// window has passed. Expiry is permanent; retrying is pointless.
	ErrLinkExpired = errors.New("link expired")
)
