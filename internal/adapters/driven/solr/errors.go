package solr

import (
	"errors"
	"fmt"
	"net/http"
)

// Solr-specific errors.
var (
	// ErrNoURL indicates the client was created without a core URL.
	ErrNoURL = errors.New("solr: core URL is required")

	// ErrMalformedResponse indicates a response body could not be decoded.
	ErrMalformedResponse = errors.New("solr: malformed response")
)

// APIError represents a non-2xx Solr response.
type APIError struct {
	StatusCode int
	Message    string
	URL        string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("solr: API error %d (URL: %s)", e.StatusCode, e.URL)
	}
	return fmt.Sprintf("solr: API error %d: %s (URL: %s)", e.StatusCode, e.Message, e.URL)
}

// IsNotFound checks if the error indicates a missing core or handler.
func IsNotFound(err error) bool {
	return hasStatus(err, http.StatusNotFound)
}

// IsRateLimited checks if the error indicates Solr throttled the request.
func IsRateLimited(err error) bool {
	return hasStatus(err, http.StatusTooManyRequests)
}

// IsBadRequest checks if the error indicates an invalid query.
func IsBadRequest(err error) bool {
	return hasStatus(err, http.StatusBadRequest)
}

func hasStatus(err error, status int) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == status
	}
	return false
}

// retryable reports statuses worth retrying after a backoff.
func retryable(status int) bool {
	return status == http.StatusTooManyRequests || status == http.StatusServiceUnavailable
}
