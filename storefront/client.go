// Package storefront is a client for the remote catalog/checkout API. It
// wraps the API's {data, meta} envelope, drives the three-step checkout
// transaction flow, and exposes the catalog's read endpoints. Shopping bag
// codings passed to and from this package follow the grammar implemented by
// the bag package.
package storefront

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const (
	defaultTimeout = 8 * time.Second

	requestIDHeader = "X-Request-Id"

	// maxResponseBytes caps how much of a response is read.
	maxResponseBytes = 1 << 20
	// maxDiagnosticBody caps how much of a response body is kept on the trail.
	maxDiagnosticBody = 512
)

var tracer = otel.Tracer("github.com/quayside/storefront-go/storefront")

// Doer issues HTTP requests on behalf of the client.
type Doer interface {
	Do(*http.Request) (*http.Response, error)
}

// Options tunes client construction. The zero value is usable.
type Options struct {
	// HTTPClient overrides the transport; defaults to an http.Client with an
	// 8 second timeout.
	HTTPClient Doer
	// Timeout applies to the default transport only.
	Timeout time.Duration
	// Token, when set, is sent verbatim as a bearer Authorization header.
	Token string
	// Logger receives debug records for every request; defaults to a nop.
	Logger *zap.Logger
	// IDGenerator mints request ids for the diagnostic trail; defaults to ULIDs.
	IDGenerator func() string
}

// Client talks to one storefront API instance. Methods issue synchronous,
// blocking calls; the client keeps no in-flight state beyond the category
// cache, which is guarded for concurrent use.
type Client struct {
	baseURL string
	http    Doer
	token   string
	logger  *zap.Logger
	newID   func() string

	mu         sync.Mutex
	categories []Category
}

// New constructs a client for the API at baseURL.
func New(baseURL string, opts Options) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, errors.New("storefront: base url is required")
	}

	doer := opts.HTTPClient
	if doer == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		doer = &http.Client{Timeout: timeout}
	}

	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	newID := opts.IDGenerator
	if newID == nil {
		newID = func() string { return ulid.Make().String() }
	}

	return &Client{
		baseURL: baseURL,
		http:    doer,
		token:   strings.TrimSpace(opts.Token),
		logger:  logger,
		newID:   newID,
	}, nil
}

// send performs one request/response round trip, recording it on the trail.
// path is relative to the base URL and must already be URL-safe.
func (c *Client) send(ctx context.Context, method, path string, query url.Values, body any, trail *Trail) (envelope, error) {
	endpoint, err := url.JoinPath(c.baseURL, path)
	if err != nil {
		return envelope{}, fmt.Errorf("%w: building url for %q: %v", ErrRemote, path, err)
	}
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	requestID := c.newID()
	trail.begin(TrailEntry{RequestID: requestID, Method: method, URL: endpoint})

	ctx, span := tracer.Start(ctx, "storefront "+method+" /"+path, trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()
	span.SetAttributes(
		attribute.String("http.request.method", method),
		attribute.String("url.full", endpoint),
	)

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return envelope{}, fmt.Errorf("%w: encoding request body: %v", ErrRemote, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return envelope{}, fmt.Errorf("%w: building request: %v", ErrRemote, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(requestIDHeader, requestID)
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return envelope{}, fmt.Errorf("%w: %s %s: %v", ErrRemote, method, endpoint, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		trail.finish(resp.StatusCode, "")
		return envelope{}, fmt.Errorf("%w: reading response: %v", ErrRemote, err)
	}
	trail.finish(resp.StatusCode, truncate(raw, maxDiagnosticBody))
	span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))

	c.logger.Debug("storefront request",
		zap.String("request_id", requestID),
		zap.String("method", method),
		zap.String("url", endpoint),
		zap.Int("status", resp.StatusCode),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return envelope{}, fmt.Errorf("%w: %s %s: status %d", ErrRemote, method, endpoint, resp.StatusCode)
	}

	var env envelope
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &env); err != nil {
			return envelope{}, fmt.Errorf("%w: decoding response envelope: %v", ErrRemote, err)
		}
	}
	return env, nil
}

func truncate(raw []byte, limit int) string {
	body := strings.TrimSpace(string(raw))
	if len(body) > limit {
		body = body[:limit]
	}
	return body
}
