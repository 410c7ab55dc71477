package transport

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/valyala/fasthttp"

	"github.com/kbukum/restkit/validation"
	"github.com/kbukum/restkit/version"
)

// FastHTTPConfig configures the fasthttp-backed transport.
type FastHTTPConfig struct {
	// BaseURL is the base URL prepended to all request paths.
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`

	// ReadTimeout is the maximum duration for reading a response. Defaults to 30s.
	ReadTimeout time.Duration `yaml:"read_timeout" mapstructure:"read_timeout"`

	// WriteTimeout is the maximum duration for writing a request. Defaults to 30s.
	WriteTimeout time.Duration `yaml:"write_timeout" mapstructure:"write_timeout"`

	// MaxIdleConnDuration is how long idle connections are kept. Defaults to 1h.
	MaxIdleConnDuration time.Duration `yaml:"max_idle_conn_duration" mapstructure:"max_idle_conn_duration"`

	// DialConcurrency limits concurrent dials. Defaults to 4096.
	DialConcurrency int `yaml:"dial_concurrency" mapstructure:"dial_concurrency"`

	// DNSCacheDuration is how long resolved addresses are cached. Defaults to 1h.
	DNSCacheDuration time.Duration `yaml:"dns_cache_duration" mapstructure:"dns_cache_duration"`

	// Headers are default headers applied to all requests.
	Headers map[string]string `yaml:"headers" mapstructure:"headers"`

	// TLS configures TLS settings for the client.
	TLS *TLSConfig `yaml:"tls" mapstructure:"tls"`

	// UserAgent is sent when the request carries no User-Agent header.
	// Defaults to the kit's version string.
	UserAgent string `yaml:"user_agent" mapstructure:"user_agent"`

	// RequestID stamps an X-Request-Id header onto requests that lack one.
	RequestID bool `yaml:"request_id" mapstructure:"request_id"`
}

// ApplyDefaults fills in zero-value fields with sensible defaults.
func (c *FastHTTPConfig) ApplyDefaults() {
	if c.ReadTimeout <= 0 {
		c.ReadTimeout = defaultTimeout
	}
	if c.WriteTimeout <= 0 {
		c.WriteTimeout = defaultTimeout
	}
	if c.MaxIdleConnDuration <= 0 {
		c.MaxIdleConnDuration = time.Hour
	}
	if c.DialConcurrency <= 0 {
		c.DialConcurrency = 4096
	}
	if c.DNSCacheDuration <= 0 {
		c.DNSCacheDuration = time.Hour
	}
	if c.UserAgent == "" {
		c.UserAgent = version.UserAgent()
	}
}

// Validate checks that the configuration is valid.
func (c *FastHTTPConfig) Validate() error {
	v := validation.New()
	v.Custom(c.ReadTimeout > 0, "read_timeout", "must be positive")
	v.Custom(c.WriteTimeout > 0, "write_timeout", "must be positive")
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

// FastHTTP is a Transport backed by valyala/fasthttp.
type FastHTTP struct {
	client *fasthttp.Client
	config FastHTTPConfig
}

var _ Transport = (*FastHTTP)(nil)

// NewFastHTTP creates a fasthttp transport with the given configuration.
func NewFastHTTP(cfg FastHTTPConfig) (*FastHTTP, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	client := &fasthttp.Client{
		ReadTimeout:              cfg.ReadTimeout,
		WriteTimeout:             cfg.WriteTimeout,
		MaxIdleConnDuration:      cfg.MaxIdleConnDuration,
		NoDefaultUserAgentHeader: true,
		Dial: (&fasthttp.TCPDialer{
			Concurrency:      cfg.DialConcurrency,
			DNSCacheDuration: cfg.DNSCacheDuration,
		}).Dial,
	}

	if cfg.TLS != nil {
		tlsCfg, err := cfg.TLS.Build()
		if err != nil {
			return nil, err
		}
		if tlsCfg != nil {
			client.TLSConfig = tlsCfg
		}
	}

	return &FastHTTP{client: client, config: cfg}, nil
}

// Fetch sends a single request and returns the raw response. Status codes
// are not interpreted here. When the context carries a deadline the request
// is executed with it.
func (t *FastHTTP) Fetch(ctx context.Context, path string, opts Options) (*Response, error) {
	req := fasthttp.AcquireRequest()
	defer fasthttp.ReleaseRequest(req)
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(resolveURL(t.config.BaseURL, path))

	method := opts.Method
	if method == "" {
		method = fasthttp.MethodGet
	}
	req.Header.SetMethod(method)

	contentType, err := setBody(req, opts.Body)
	if err != nil {
		return nil, NewEncodeError(fmt.Errorf("encode body: %w", err))
	}

	// Apply transport default headers
	for k, v := range t.config.Headers {
		req.Header.Set(k, v)
	}

	// Apply request-specific headers (override defaults)
	for k, v := range opts.Headers {
		req.Header.Set(k, v)
	}

	// Set content-type if body present and not already set
	if opts.Body != nil && len(req.Header.ContentType()) == 0 && contentType != "" {
		req.Header.SetContentType(contentType)
	}

	if len(req.Header.UserAgent()) == 0 && t.config.UserAgent != "" {
		req.Header.SetUserAgent(t.config.UserAgent)
	}

	if t.config.RequestID && len(req.Header.Peek(HeaderRequestID)) == 0 {
		req.Header.Set(HeaderRequestID, uuid.New().String())
	}

	if deadline, ok := ctx.Deadline(); ok {
		err = t.client.DoDeadline(req, resp, deadline)
	} else {
		err = t.client.Do(req, resp)
	}
	if err != nil {
		if errors.Is(err, fasthttp.ErrTimeout) || ctx.Err() != nil {
			return nil, NewTimeoutError(err)
		}
		return nil, NewConnectionError(err)
	}

	headers := make(map[string]string, resp.Header.Len())
	resp.Header.VisitAll(func(k, v []byte) {
		headers[string(k)] = string(v)
	})

	// Copy the body: the response object is pooled.
	body := append([]byte(nil), resp.Body()...)

	return &Response{
		StatusCode: resp.StatusCode(),
		Headers:    headers,
		Body:       body,
	}, nil
}

// Close releases idle connections held by the client.
func (t *FastHTTP) Close() {
	t.client.CloseIdleConnections()
}

// setBody stages the request body onto a pooled fasthttp request and
// reports the implied content type, mirroring encodeBody.
func setBody(req *fasthttp.Request, body any) (string, error) {
	switch v := body.(type) {
	case nil:
		return "", nil
	case io.Reader:
		req.SetBodyStream(v, -1)
		return "", nil
	case []byte:
		req.SetBody(v)
		return "", nil
	case string:
		req.SetBodyString(v)
		return "text/plain", nil
	default:
		data, err := json.Marshal(v)
		if err != nil {
			return "", err
		}
		req.SetBody(data)
		return "application/json", nil
	}
}
