package coc

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrEmptyTag is returned when a request is attempted with a blank tag
	ErrEmptyTag = errors.New("tag must not be empty")
	// ErrSentinelWarTag is returned when the "#0" placeholder reaches the client
	ErrSentinelWarTag = errors.New("war tag #0 is a placeholder and cannot be fetched")
)

// FetchError is returned for every non-200 API response.
type FetchError struct {
	Status int
	Path   string
	// Reason is the API's machine-readable reason, e.g. "notFound" or "accessDenied"
	Reason string
}

func (e *FetchError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("API request %s failed with status %d (%s)", e.Path, e.Status, e.Reason)
	}
	return fmt.Sprintf("API request %s failed with status %d", e.Path, e.Status)
}

// IsNotFound reports whether the resource does not exist
func (e *FetchError) IsNotFound() bool {
	return e.Status == http.StatusNotFound
}

// IsRetryable reports whether a later attempt may succeed.
// 4xx responses other than 429 fail immediately.
func (e *FetchError) IsRetryable() bool {
	return e.Status >= http.StatusInternalServerError || e.Status == http.StatusTooManyRequests
}

// StatusOf extracts the HTTP status from an error chain containing a FetchError
func StatusOf(err error) (int, bool) {
	var fetchErr *FetchError
	if errors.As(err, &fetchErr) {
		return fetchErr.Status, true
	}
	return 0, false
}
