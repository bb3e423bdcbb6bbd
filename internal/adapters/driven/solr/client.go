package solr

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	solrgo "github.com/stevenferrer/solr-go"

	"github.com/nvdpcode/qa-final/internal/core/domain"
	"github.com/nvdpcode/qa-final/internal/core/ports/driven"
)

// Ensure Client implements the interface.
var _ driven.IndexSource = (*Client)(nil)

// Client defaults.
const (
	DefaultTimeout      = 10 * time.Second
	DefaultRetryBackoff = time.Second
	defaultMaxAttempts  = 3
)

// Config configures a Client.
type Config struct {
	// URL is the core URL, e.g. http://solr:8983/solr/memo.
	URL string

	// Timeout bounds each HTTP request. Defaults to DefaultTimeout.
	Timeout time.Duration

	// RequestsPerSecond throttles requests. Zero means unlimited.
	RequestsPerSecond float64

	// RetryBackoff is the wait after a 429/503 without Retry-After.
	RetryBackoff time.Duration

	// HTTPClient overrides the transport; Timeout is ignored when set.
	HTTPClient *http.Client
}

// Client reads documents and schema fields from one Solr core.
type Client struct {
	coreURL    string
	collection string
	sdk        *solrgo.JSONClient
	http       *http.Client
	limiter    *RateLimiter
}

// NewClient creates a client for cfg.URL, which must name a core under
// the /solr/ context path.
func NewClient(cfg Config) (*Client, error) {
	coreURL := strings.TrimRight(strings.TrimSpace(cfg.URL), "/")
	if coreURL == "" {
		return nil, ErrNoURL
	}
	u, err := url.ParseRequestURI(coreURL)
	if err != nil || u.Host == "" {
		return nil, fmt.Errorf("solr: invalid core URL %q", cfg.URL)
	}
	root, collection := path.Split(u.Path)
	root = strings.TrimSuffix(root, "/")
	if collection == "" || path.Base(root) != "solr" {
		return nil, fmt.Errorf("solr: core URL %q must end in /solr/<core>", cfg.URL)
	}
	u.Path = strings.TrimSuffix(root, "/solr")
	u.RawQuery = ""

	backoff := cfg.RetryBackoff
	if backoff <= 0 {
		backoff = DefaultRetryBackoff
	}
	limiter := NewRateLimiter(cfg.RequestsPerSecond)

	httpClient := &http.Client{Timeout: cfg.Timeout}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = DefaultTimeout
	}
	if cfg.HTTPClient != nil {
		clone := *cfg.HTTPClient
		httpClient = &clone
	}
	next := httpClient.Transport
	if next == nil {
		next = http.DefaultTransport
	}
	httpClient.Transport = &retryTransport{
		next:         next,
		limiter:      limiter,
		retryBackoff: backoff,
		maxAttempts:  defaultMaxAttempts,
	}

	return &Client{
		coreURL:    coreURL,
		collection: collection,
		sdk:        solrgo.NewJSONClient(u.String()).WithRequestSender(solrgo.NewDefaultRequestSender().WithHTTPClient(httpClient)),
		http:       httpClient,
		limiter:    limiter,
	}, nil
}

// FetchAll pages through every document matching query, pageSize at a
// time. Paging stops at the first short page or once numFound documents
// have been read.
func (c *Client) FetchAll(ctx context.Context, query string, pageSize int) ([]domain.IndexDocument, error) {
	if pageSize <= 0 {
		return nil, fmt.Errorf("%w: page size must be positive", domain.ErrInvalidProfile)
	}
	if query == "" {
		query = domain.DefaultIndexQuery
	}
	parser := solrgo.NewStandardQueryParser().Query(query).BuildParser()

	var docs []domain.IndexDocument
	for offset := 0; ; offset += pageSize {
		callCtx, tracked := trackCall(ctx)
		resp, err := c.sdk.Query(callCtx, c.collection, solrgo.NewQuery(parser).Offset(offset).Limit(pageSize))
		if err != nil {
			return nil, callError(tracked, err)
		}
		if resp == nil {
			return nil, fmt.Errorf("%w: no response section", ErrMalformedResponse)
		}

		for _, d := range resp.Response.Documents {
			docs = append(docs, domain.IndexDocument(d))
		}

		batch := len(resp.Response.Documents)
		if batch < pageSize || len(docs) >= resp.Response.NumFound {
			return docs, nil
		}
	}
}

// fieldsResponse is the /schema/fields response.
type fieldsResponse struct {
	Fields []domain.SchemaField `json:"fields"`
}

// SchemaFields returns the fields declared in the core's schema.
func (c *Client) SchemaFields(ctx context.Context) ([]domain.SchemaField, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.coreURL+"/schema/fields?wt=json", nil)
	if err != nil {
		return nil, fmt.Errorf("solr: building request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) {
			return nil, apiErr
		}
		return nil, fmt.Errorf("solr: request failed: %w", err)
	}
	defer resp.Body.Close()

	var out fieldsResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return out.Fields, nil
}

// callError maps an SDK error to the adapter's errors. A failure the
// transport did not see happened while decoding the response.
func callError(tracked *call, err error) error {
	if tracked.err != nil {
		var apiErr *APIError
		if errors.As(tracked.err, &apiErr) {
			return apiErr
		}
		return fmt.Errorf("solr: request failed: %w", tracked.err)
	}
	return fmt.Errorf("%w: %v", ErrMalformedResponse, err)
}

// errorResponse is the error envelope Solr returns on failures.
type errorResponse struct {
	Error struct {
		Msg  string `json:"msg"`
		Code int    `json:"code"`
	} `json:"error"`
}

func errorMessage(body []byte) string {
	var env errorResponse
	if err := json.Unmarshal(body, &env); err == nil && env.Error.Msg != "" {
		return env.Error.Msg
	}
	return strings.TrimSpace(string(body))
}
