// Package sources builds the concrete relational and index adapters for
// a profile.
package sources

import (
	"context"
	"fmt"
	"net/http"

	"github.com/nvdpcode/qa-final/internal/adapters/driven/relational"
	"github.com/nvdpcode/qa-final/internal/adapters/driven/solr"
	"github.com/nvdpcode/qa-final/internal/core/domain"
	"github.com/nvdpcode/qa-final/internal/core/ports/driven"
)

// Ensure Factory implements the interface.
var _ driven.SourceFactory = (*Factory)(nil)

// Factory opens database connections and Solr clients from profiles.
type Factory struct {
	httpClient *http.Client
}

// NewFactory creates a source factory. A nil httpClient makes each Solr
// client build its own with the profile timeout.
func NewFactory(httpClient *http.Client) *Factory {
	return &Factory{httpClient: httpClient}
}

// Relational connects to the profile's database. The caller owns the
// returned source and must Close it.
func (f *Factory) Relational(ctx context.Context, profile domain.Profile) (driven.RelationalSource, error) {
	src, err := relational.Open(ctx, profile.RelationalDriver, profile.RelationalDSN)
	if err != nil {
		return nil, fmt.Errorf("profile %s: %w", profile.Name, err)
	}
	return src, nil
}

// Index creates a Solr client for the profile's core.
func (f *Factory) Index(profile domain.Profile) (driven.IndexSource, error) {
	client, err := solr.NewClient(solr.Config{
		URL:               profile.IndexURL,
		Timeout:           profile.IndexTimeout,
		RequestsPerSecond: profile.IndexRequestsPerSecond,
		HTTPClient:        f.httpClient,
	})
	if err != nil {
		return nil, fmt.Errorf("profile %s: %w", profile.Name, err)
	}
	return client, nil
}
