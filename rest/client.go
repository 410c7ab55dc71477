package rest

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/kbukum/restkit/logger"
	"github.com/kbukum/restkit/querystring"
	"github.com/kbukum/restkit/transport"
)

// Config configures a REST client.
type Config struct {
	// Transport performs the actual network calls. Required.
	Transport transport.Transport

	// Endpoint is an identifying label for consumers that manage multiple
	// clients. It does not change request behavior.
	Endpoint string

	// Headers are merged into the client's default headers. JSON Accept and
	// Content-Type headers are seeded automatically unless these keys
	// already provide them.
	Headers map[string]string

	// Logger receives debug-level request logs. Requests are silent when
	// nil.
	Logger *logger.Logger
}

// Client is a resource-oriented REST client. It shapes requests (default
// merging, body encoding, path resolution) and normalizes responses,
// delegating the network call to its transport. A client is safe for
// concurrent use as long as Defaults is not mutated mid-flight; request
// construction itself never writes to Defaults.
type Client struct {
	// Defaults is the base layer of every request's options. It is exposed
	// for direct read/write access so shared headers can be customized
	// after construction.
	Defaults Options

	transport transport.Transport
	endpoint  string
	log       *logger.Logger
}

// New creates a REST client. It fails only when the transport is absent.
// Default headers are seeded with Accept and Content-Type set to
// application/json unless cfg.Headers already carries those exact keys.
func New(cfg Config) (*Client, error) {
	if cfg.Transport == nil {
		return nil, ErrNilTransport
	}

	headers := make(map[string]string, len(cfg.Headers)+2)
	for k, v := range cfg.Headers {
		headers[k] = v
	}
	if _, ok := headers["Content-Type"]; !ok {
		headers["Content-Type"] = "application/json"
	}
	if _, ok := headers["Accept"]; !ok {
		headers["Accept"] = "application/json"
	}

	return &Client{
		Defaults:  Options{Headers: headers},
		transport: cfg.Transport,
		endpoint:  cfg.Endpoint,
		log:       cfg.Logger,
	}, nil
}

// Endpoint returns the client's identifying label.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// Transport returns the underlying transport.
func (c *Client) Transport() transport.Transport {
	return c.transport
}

// Request issues a single request and normalizes the response.
//
// The effective options are built by merging, in order: a fresh headers
// shell, the client's Defaults, the caller's opts, and finally method and
// body (which always win). When body is a structured value (not a string,
// []byte, or io.Reader) and the effective headers carry a content type, the
// body is re-encoded before dispatch: JSON when the content type equals
// application/json (compared case-insensitively), a URL-encoded query
// string otherwise. Anything else passes through to the transport
// unmodified.
//
// Responses with a status in [200, 400) decode as JSON; an undecodable or
// empty success body resolves to nil rather than an error. Any other status
// returns a *Error carrying the raw response. Transport failures propagate
// unmodified. Exactly one transport call is made per invocation.
func (c *Client) Request(ctx context.Context, method, path string, body any, opts *Options) (any, error) {
	resp, err := c.do(ctx, method, path, body, opts)
	if err != nil {
		return nil, err
	}

	v, err := resp.JSON()
	if err != nil {
		// Success status is trusted over body well-formedness.
		return nil, nil
	}
	return v, nil
}

// Find issues a GET for a resource narrowed by criteria, with no body.
func (c *Client) Find(ctx context.Context, resource string, criteria Criteria, opts *Options) (any, error) {
	path, err := RequestPath(resource, criteria)
	if err != nil {
		return nil, err
	}
	return c.Request(ctx, http.MethodGet, path, nil, opts)
}

// FindOne issues a GET for a single entity under a resource, narrowed by
// criteria. The id joins the resource as a path segment before criteria
// resolution.
func (c *Client) FindOne(ctx context.Context, resource, id string, criteria Criteria, opts *Options) (any, error) {
	path, err := RequestPath(appendSegment(resource, id), criteria)
	if err != nil {
		return nil, err
	}
	return c.Request(ctx, http.MethodGet, path, nil, opts)
}

// Post issues a POST to the resource unchanged; body carries the new
// entity's data, so no path resolution applies.
func (c *Client) Post(ctx context.Context, resource string, body any, opts *Options) (any, error) {
	return c.Request(ctx, http.MethodPost, resource, body, opts)
}

// Create is an alias for Post with identical arguments and behavior.
func (c *Client) Create(ctx context.Context, resource string, body any, opts *Options) (any, error) {
	return c.Post(ctx, resource, body, opts)
}

// Update issues a PUT with body for a resource narrowed by criteria.
func (c *Client) Update(ctx context.Context, resource string, criteria Criteria, body any, opts *Options) (any, error) {
	path, err := RequestPath(resource, criteria)
	if err != nil {
		return nil, err
	}
	return c.Request(ctx, http.MethodPut, path, body, opts)
}

// UpdateOne issues a PUT with body for a single entity under a resource.
func (c *Client) UpdateOne(ctx context.Context, resource, id string, criteria Criteria, body any, opts *Options) (any, error) {
	path, err := RequestPath(appendSegment(resource, id), criteria)
	if err != nil {
		return nil, err
	}
	return c.Request(ctx, http.MethodPut, path, body, opts)
}

// Patch issues a PATCH with body for a resource narrowed by criteria.
func (c *Client) Patch(ctx context.Context, resource string, criteria Criteria, body any, opts *Options) (any, error) {
	path, err := RequestPath(resource, criteria)
	if err != nil {
		return nil, err
	}
	return c.Request(ctx, http.MethodPatch, path, body, opts)
}

// PatchOne issues a PATCH with body for a single entity under a resource.
func (c *Client) PatchOne(ctx context.Context, resource, id string, criteria Criteria, body any, opts *Options) (any, error) {
	path, err := RequestPath(appendSegment(resource, id), criteria)
	if err != nil {
		return nil, err
	}
	return c.Request(ctx, http.MethodPatch, path, body, opts)
}

// Destroy issues a DELETE for a resource narrowed by criteria, with no body.
func (c *Client) Destroy(ctx context.Context, resource string, criteria Criteria, opts *Options) (any, error) {
	path, err := RequestPath(resource, criteria)
	if err != nil {
		return nil, err
	}
	return c.Request(ctx, http.MethodDelete, path, nil, opts)
}

// DestroyOne issues a DELETE for a single entity under a resource.
func (c *Client) DestroyOne(ctx context.Context, resource, id string, criteria Criteria, opts *Options) (any, error) {
	path, err := RequestPath(appendSegment(resource, id), criteria)
	if err != nil {
		return nil, err
	}
	return c.Request(ctx, http.MethodDelete, path, nil, opts)
}

// do builds the effective options, encodes the body, makes the single
// transport call, and classifies the status. It is the shared primitive of
// the untyped and typed operations.
func (c *Client) do(ctx context.Context, method, path string, body any, opts *Options) (*transport.Response, error) {
	merged := mergeOptions(c.Defaults, opts, method, body)

	if structured(merged.Body) {
		if ct := contentType(merged.Headers); ct != "" {
			encoded, err := encodeStructured(merged.Body, ct)
			if err != nil {
				return nil, err
			}
			merged.Body = encoded
		}
	}

	start := time.Now()
	resp, err := c.transport.Fetch(ctx, path, merged)
	if err != nil {
		// Transport failures propagate unmodified.
		return nil, err
	}

	if c.log != nil {
		c.log.Debug("request completed", map[string]interface{}{
			logger.FieldEndpoint: c.endpoint,
			logger.FieldMethod:   method,
			logger.FieldPath:     path,
			logger.FieldStatus:   resp.StatusCode,
			logger.FieldDuration: time.Since(start).Milliseconds(),
		})
	}

	if resp.IsError() {
		return nil, &Error{Method: method, Path: path, Response: resp}
	}
	return resp, nil
}

// structured reports whether a body value should be re-encoded according to
// the effective content type. Strings, byte slices, and readers are already
// wire-ready and pass through untouched.
func structured(body any) bool {
	if body == nil {
		return false
	}
	switch body.(type) {
	case string, []byte, io.Reader:
		return false
	default:
		return true
	}
}

// encodeStructured serializes a structured body per the effective content
// type: JSON text for application/json, a URL-encoded query string for
// everything else.
func encodeStructured(body any, ct string) (string, error) {
	if strings.EqualFold(ct, "application/json") {
		data, err := json.Marshal(body)
		if err != nil {
			return "", fmt.Errorf("rest: encode body: %w", err)
		}
		return string(data), nil
	}
	encoded, err := querystring.Encode(body)
	if err != nil {
		return "", fmt.Errorf("rest: encode body: %w", err)
	}
	return encoded, nil
}
