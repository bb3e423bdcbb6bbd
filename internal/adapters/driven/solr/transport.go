package solr

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// maxErrorBody bounds how much of a failed response is read for its message.
const maxErrorBody = 4096

// retryTransport throttles every request through a RateLimiter, retries
// 429 and 503 answers after a backoff and turns any other non-2xx answer
// into an *APIError.
type retryTransport struct {
	next         http.RoundTripper
	limiter      *RateLimiter
	retryBackoff time.Duration
	maxAttempts  int
}

func (t *retryTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	var body []byte
	if req.Body != nil {
		var err error
		body, err = io.ReadAll(req.Body)
		req.Body.Close()
		if err != nil {
			return nil, t.fail(req, fmt.Errorf("solr: reading request body: %w", err))
		}
	}

	var lastErr error
	for attempt := 0; attempt < t.maxAttempts; attempt++ {
		if err := t.limiter.Wait(req.Context()); err != nil {
			return nil, t.fail(req, err)
		}

		r := req.Clone(req.Context())
		if body != nil {
			r.Body = io.NopCloser(bytes.NewReader(body))
			r.ContentLength = int64(len(body))
		}

		resp, err := t.next.RoundTrip(r)
		if err != nil {
			return nil, t.fail(req, err)
		}
		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			return resp, nil
		}

		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		resp.Body.Close()
		apiErr := &APIError{StatusCode: resp.StatusCode, Message: errorMessage(raw), URL: redact(req)}
		if !retryable(resp.StatusCode) {
			return nil, t.fail(req, apiErr)
		}
		lastErr = apiErr
		if attempt < t.maxAttempts-1 {
			wait := parseRetryAfter(resp.Header.Get("Retry-After"))
			if wait <= 0 {
				wait = t.retryBackoff
			}
			t.limiter.Backoff(wait)
		}
	}
	return nil, t.fail(req, lastErr)
}

// fail records err on the call tracked by the request context, if any.
func (t *retryTransport) fail(req *http.Request, err error) error {
	if c, ok := req.Context().Value(callKey{}).(*call); ok {
		c.err = err
	}
	return err
}

type callKey struct{}

// call captures the transport error of one client call. The SDK may not
// wrap transport errors, so the adapter reads them from here.
type call struct {
	err error
}

func trackCall(ctx context.Context) (context.Context, *call) {
	c := &call{}
	return context.WithValue(ctx, callKey{}, c), c
}

func redact(req *http.Request) string {
	u := *req.URL
	u.User = nil
	return u.String()
}

func parseRetryAfter(v string) time.Duration {
	secs, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || secs <= 0 {
		return 0
	}
	return time.Duration(secs) * time.Second
}
