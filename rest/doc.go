// Package rest provides a resource-oriented REST client on top of an
// injected transport.
//
// The client merges per-request options with its defaults, serializes
// request bodies according to the effective Content-Type, resolves resource
// paths from criteria (an entity id or a where-clause mapping), and
// normalizes responses: success statuses decode to JSON, everything else
// surfaces as an *Error carrying the raw response. There are no retries,
// no caching, and exactly one transport call per operation.
//
// # Basic Usage
//
//	tr, _ := transport.NewHTTP(transport.HTTPConfig{BaseURL: "https://api.example.com"})
//	client, err := rest.New(rest.Config{Transport: tr, Endpoint: "example"})
//
//	// GET users?active=true
//	data, err := client.Find(ctx, "users", rest.Where(map[string]any{"active": true}), nil)
//
//	// GET users/42
//	data, err := client.Find(ctx, "users", rest.ByID(42), nil)
//
//	// POST users
//	data, err := client.Create(ctx, "users", map[string]any{"name": "Alice"}, nil)
//
// # Typed Operations
//
// Package-level generic functions decode success bodies into a concrete type:
//
//	user, err := rest.Find[User](ctx, client, "users", rest.ByID(42), nil)
//
// # Error Handling
//
// Non-success statuses (outside [200, 400)) return an *Error whose Response
// field holds the raw transport response; the body is never parsed on the
// failure path. Transport-level failures propagate unmodified.
//
//	if rest.IsNotFound(err) { ... }
package rest
