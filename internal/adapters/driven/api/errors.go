package api

import (
	"fmt"
	"net/http"

	"github.com/custodia-labs/stylist-cli/internal/core/domain"
)

// StatusError reports a non-2xx response from the storefront API.
type StatusError struct {
	// Op names the call, e.g. "search".
	Op string

	// Code is the HTTP status code.
	Code int

	// Body is a prefix of the response body, for diagnostics.
	Body string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("storefront %s: status %d", e.Op, e.Code)
	}
	return fmt.Sprintf("storefront %s: status %d: %s", e.Op, e.Code, e.Body)
}

// Unwrap maps well-known statuses to domain errors so callers can use errors.Is.
func (e *StatusError) Unwrap() error {
	switch e.Code {
	case http.StatusNotFound:
		return domain.ErrNotFound
	case http.StatusTooManyRequests:
		return domain.ErrRateLimited
	default:
		return nil
	}
}
