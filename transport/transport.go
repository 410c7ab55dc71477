package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
)

// HeaderRequestID is the header stamped onto outgoing requests when a
// transport is configured with RequestID enabled.
const HeaderRequestID = "X-Request-Id"

// Transport sends a single request and returns the raw response. It performs
// no status classification and no retries; callers interpret the response.
type Transport interface {
	Fetch(ctx context.Context, path string, opts Options) (*Response, error)
}

// Options describes an outbound request.
type Options struct {
	// Method is the HTTP method (GET, POST, PUT, PATCH, DELETE, etc).
	// Empty defaults to GET.
	Method string
	// Headers are request-specific headers (merged over transport defaults).
	Headers map[string]string
	// Body is the request body. Accepts io.Reader, []byte, string, or any
	// value that will be JSON-encoded.
	Body any
}

// Response is the result of a fetch.
type Response struct {
	// StatusCode is the HTTP status code.
	StatusCode int
	// Headers are the response headers, flattened to single values.
	Headers map[string]string
	// Body is the raw response body.
	Body []byte
}

// IsSuccess returns true if the status code is in [200, 400). Redirect
// statuses count as success for clients that disable redirect following.
func (r *Response) IsSuccess() bool {
	return r.StatusCode >= 200 && r.StatusCode < 400
}

// IsError returns true if the status code is outside [200, 400).
func (r *Response) IsError() bool {
	return !r.IsSuccess()
}

// JSON decodes the response body into an untyped value.
func (r *Response) JSON() (any, error) {
	var v any
	if err := json.Unmarshal(r.Body, &v); err != nil {
		return nil, err
	}
	return v, nil
}

// Decode unmarshals the response body into v.
func (r *Response) Decode(v any) error {
	return json.Unmarshal(r.Body, v)
}

// Header returns a response header value, trying the exact key first and
// then its canonical MIME form.
func (r *Response) Header(key string) string {
	if v, ok := r.Headers[key]; ok {
		return v
	}
	return r.Headers[http.CanonicalHeaderKey(key)]
}

// encodeBody converts a body value into an io.Reader and content type.
func encodeBody(body any) (io.Reader, string, error) {
	if body == nil {
		return nil, "", nil
	}
	switch v := body.(type) {
	case io.Reader:
		return v, "", nil
	case []byte:
		return bytes.NewReader(v), "", nil
	case string:
		return strings.NewReader(v), "text/plain", nil
	default:
		data, err := json.Marshal(v)
		if err != nil {
			return nil, "", err
		}
		return bytes.NewReader(data), "application/json", nil
	}
}
