package transport

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/kbukum/restkit/validation"
	"github.com/kbukum/restkit/version"
)

const defaultTimeout = 30 * time.Second

// HTTPConfig configures the net/http-backed transport.
type HTTPConfig struct {
	// BaseURL is the base URL prepended to all request paths.
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`

	// Timeout is the request timeout. Defaults to 30s.
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`

	// Headers are default headers applied to all requests.
	Headers map[string]string `yaml:"headers" mapstructure:"headers"`

	// TLS configures TLS settings for the HTTP transport.
	TLS *TLSConfig `yaml:"tls" mapstructure:"tls"`

	// UserAgent is sent when the request carries no User-Agent header.
	// Defaults to the kit's version string.
	UserAgent string `yaml:"user_agent" mapstructure:"user_agent"`

	// RequestID stamps an X-Request-Id header onto requests that lack one.
	RequestID bool `yaml:"request_id" mapstructure:"request_id"`
}

// ApplyDefaults fills in zero-value fields with sensible defaults.
func (c *HTTPConfig) ApplyDefaults() {
	if c.Timeout <= 0 {
		c.Timeout = defaultTimeout
	}
	if c.UserAgent == "" {
		c.UserAgent = version.UserAgent()
	}
}

// Validate checks that the configuration is valid.
func (c *HTTPConfig) Validate() error {
	v := validation.New()
	v.Custom(c.Timeout > 0, "timeout", "must be positive")
	if c.BaseURL != "" {
		if u, err := url.Parse(c.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
			v.AddError("base_url", "must be a valid URL")
		}
	}
	if err := v.Err(); err != nil {
		return err
	}
	return c.TLS.Validate()
}

// HTTP is a Transport backed by net/http.
type HTTP struct {
	client *http.Client
	config HTTPConfig
}

var _ Transport = (*HTTP)(nil)

// NewHTTP creates a net/http transport with the given configuration.
func NewHTTP(cfg HTTPConfig) (*HTTP, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	tr := http.DefaultTransport.(*http.Transport).Clone()

	if cfg.TLS != nil {
		tlsCfg, err := cfg.TLS.Build()
		if err != nil {
			return nil, err
		}
		if tlsCfg != nil {
			tr.TLSClientConfig = tlsCfg
		}
	}

	return &HTTP{
		client: &http.Client{
			Transport: tr,
			Timeout:   cfg.Timeout,
		},
		config: cfg,
	}, nil
}

// Fetch sends a single request and returns the raw response. Status codes
// are not interpreted here.
func (t *HTTP) Fetch(ctx context.Context, path string, opts Options) (*Response, error) {
	httpReq, err := t.buildRequest(ctx, path, opts)
	if err != nil {
		return nil, err
	}

	resp, err := t.client.Do(httpReq)
	if err != nil {
		if ctx.Err() != nil {
			return nil, NewTimeoutError(err)
		}
		var netErr net.Error
		if errors.As(err, &netErr) && netErr.Timeout() {
			return nil, NewTimeoutError(err)
		}
		return nil, NewConnectionError(err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, NewConnectionError(fmt.Errorf("read response body: %w", err))
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Headers:    flattenHeaders(resp.Header),
		Body:       body,
	}, nil
}

// Unwrap returns the underlying *http.Client for advanced use cases.
func (t *HTTP) Unwrap() *http.Client {
	return t.client
}

// Close releases idle connections held by the transport.
func (t *HTTP) Close() {
	t.client.CloseIdleConnections()
}

// buildRequest constructs an *http.Request from the transport config and options.
func (t *HTTP) buildRequest(ctx context.Context, path string, opts Options) (*http.Request, error) {
	target := resolveURL(t.config.BaseURL, path)

	body, contentType, err := encodeBody(opts.Body)
	if err != nil {
		return nil, NewEncodeError(fmt.Errorf("encode body: %w", err))
	}

	method := opts.Method
	if method == "" {
		method = http.MethodGet
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, NewRequestError(fmt.Errorf("create request: %w", err))
	}

	// Apply transport default headers
	for k, v := range t.config.Headers {
		httpReq.Header.Set(k, v)
	}

	// Apply request-specific headers (override defaults)
	for k, v := range opts.Headers {
		httpReq.Header.Set(k, v)
	}

	// Set content-type if body present and not already set
	if body != nil && httpReq.Header.Get("Content-Type") == "" && contentType != "" {
		httpReq.Header.Set("Content-Type", contentType)
	}

	if httpReq.Header.Get("User-Agent") == "" && t.config.UserAgent != "" {
		httpReq.Header.Set("User-Agent", t.config.UserAgent)
	}

	if t.config.RequestID && httpReq.Header.Get(HeaderRequestID) == "" {
		httpReq.Header.Set(HeaderRequestID, uuid.New().String())
	}

	return httpReq, nil
}

// resolveURL joins a base URL and a path, leaving absolute paths untouched.
// Trailing slashes on the path survive the join.
func resolveURL(baseURL, path string) string {
	if baseURL == "" || strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	return strings.TrimRight(baseURL, "/") + "/" + strings.TrimLeft(path, "/")
}

// flattenHeaders converts multi-value headers to single-value.
func flattenHeaders(h http.Header) map[string]string {
	result := make(map[string]string, len(h))
	for k, v := range h {
		if len(v) > 0 {
			result[k] = v[0]
		}
	}
	return result
}
