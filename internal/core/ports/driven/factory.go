package driven

import (
	"context"

	"github.com/nvdpcode/qa-final/internal/core/domain"
)

// SourceFactory opens the stores a profile points at.
type SourceFactory interface {
	// Relational opens a connection to the profile's relational store.
	// The caller must Close the returned source.
	Relational(ctx context.Context, profile domain.Profile) (RelationalSource, error)

	// Index returns a client for the profile's search index.
	Index(profile domain.Profile) (IndexSource, error)
}
