// Package transport provides the fetch capability consumed by the rest
// package: a single-call HTTP transport interface plus net/http and fasthttp
// implementations with TLS support.
//
// Transports send exactly one request per Fetch and return the raw response
// without interpreting status codes; response normalization is the caller's
// concern. There are no retries and no caching.
//
// # Basic Usage
//
//	t, err := transport.NewHTTP(transport.HTTPConfig{
//	    BaseURL: "https://api.example.com",
//	    Timeout: 30 * time.Second,
//	})
//
//	resp, err := t.Fetch(ctx, "users/123", transport.Options{
//	    Method: http.MethodGet,
//	})
//
// # fasthttp
//
//	t, err := transport.NewFastHTTP(transport.FastHTTPConfig{
//	    BaseURL: "https://api.example.com",
//	})
package transport
