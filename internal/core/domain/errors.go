package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// Chat Errors.

	// ErrEmptyQuery indicates a submission was blank after trimming.
	// The transcript is left untouched and no request is issued.
	ErrEmptyQuery = errors.New("empty query")

	// ErrRequestInFlight indicates a search is already outstanding for the session.
	// Submissions are rejected rather than queued.
	ErrRequestInFlight = errors.New("request in flight")

	// API Errors.

	// ErrAPIUnavailable indicates the storefront API is not configured.
	ErrAPIUnavailable = errors.New("storefront API unavailable")

	// ErrRateLimited indicates the storefront API rate limit was exceeded.
	ErrRateLimited = errors.New("rate limited")
)
