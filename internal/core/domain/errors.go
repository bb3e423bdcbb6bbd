package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent reconciliation failures.
// These are distinct from infrastructure errors.
var (
	// ErrSourceFetch indicates a fetch from one of the stores failed entirely.
	ErrSourceFetch = errors.New("source fetch failed")

	// ErrMalformedRecord indicates a single relational record could not be processed.
	ErrMalformedRecord = errors.New("malformed record")

	// ErrProfileNotFound indicates no profile with the requested name is configured.
	ErrProfileNotFound = errors.New("profile not found")

	// ErrInvalidProfile indicates a profile is missing required settings.
	ErrInvalidProfile = errors.New("invalid profile")

	// ErrNotConfigured indicates a collaborator was not wired.
	ErrNotConfigured = errors.New("not configured")

	// ErrUnsupportedDriver indicates an unknown relational driver name.
	ErrUnsupportedDriver = errors.New("unsupported driver")

	// ErrRunNotFound indicates no stored run has the requested id.
	ErrRunNotFound = errors.New("run not found")
)

// Store identifies which side of a reconciliation an error or value belongs to.
type Store string

const (
	// StoreRelational is the system-of-record database.
	StoreRelational Store = "relational"

	// StoreIndex is the search index populated from the relational store.
	StoreIndex Store = "index"
)

// SourceFetchError reports a failed fetch from one of the stores.
type SourceFetchError struct {
	Store Store
	Query string
	Err   error
}

func (e *SourceFetchError) Error() string {
	if e.Query != "" {
		return fmt.Sprintf("%s fetch failed (%s): %v", e.Store, e.Query, e.Err)
	}
	return fmt.Sprintf("%s fetch failed: %v", e.Store, e.Err)
}

// Unwrap exposes both the sentinel and the underlying cause.
func (e *SourceFetchError) Unwrap() []error {
	return []error{ErrSourceFetch, e.Err}
}

// NewSourceFetchError wraps err as a fetch failure for store.
func NewSourceFetchError(store Store, query string, err error) error {
	return &SourceFetchError{Store: store, Query: query, Err: err}
}
