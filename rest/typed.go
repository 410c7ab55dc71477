package rest

import (
	"context"
	"fmt"
	"net/http"
)

// Request issues a request through c and decodes the success body into T.
//
// Typed operations share the untyped pipeline (same merging, encoding, path
// resolution, and status classification) but differ on the success path: an
// empty body yields T's zero value, and a non-empty body that does not
// decode into T returns the decode error instead of resolving to nil.
// Failure paths are identical to the untyped operations.
func Request[T any](ctx context.Context, c *Client, method, path string, body any, opts *Options) (T, error) {
	var data T

	resp, err := c.do(ctx, method, path, body, opts)
	if err != nil {
		return data, err
	}

	if len(resp.Body) > 0 {
		if err := resp.Decode(&data); err != nil {
			return data, fmt.Errorf("rest: decode response: %w", err)
		}
	}
	return data, nil
}

// Find issues a GET for a resource narrowed by criteria and decodes the
// response into T.
func Find[T any](ctx context.Context, c *Client, resource string, criteria Criteria, opts *Options) (T, error) {
	path, err := RequestPath(resource, criteria)
	if err != nil {
		var zero T
		return zero, err
	}
	return Request[T](ctx, c, http.MethodGet, path, nil, opts)
}

// FindOne issues a GET for a single entity under a resource and decodes the
// response into T.
func FindOne[T any](ctx context.Context, c *Client, resource, id string, criteria Criteria, opts *Options) (T, error) {
	path, err := RequestPath(appendSegment(resource, id), criteria)
	if err != nil {
		var zero T
		return zero, err
	}
	return Request[T](ctx, c, http.MethodGet, path, nil, opts)
}

// Post issues a POST with body and decodes the response into T.
func Post[T any](ctx context.Context, c *Client, resource string, body any, opts *Options) (T, error) {
	return Request[T](ctx, c, http.MethodPost, resource, body, opts)
}

// Create is an alias for Post with identical arguments and behavior.
func Create[T any](ctx context.Context, c *Client, resource string, body any, opts *Options) (T, error) {
	return Post[T](ctx, c, resource, body, opts)
}

// Update issues a PUT with body for a resource narrowed by criteria and
// decodes the response into T.
func Update[T any](ctx context.Context, c *Client, resource string, criteria Criteria, body any, opts *Options) (T, error) {
	path, err := RequestPath(resource, criteria)
	if err != nil {
		var zero T
		return zero, err
	}
	return Request[T](ctx, c, http.MethodPut, path, body, opts)
}

// UpdateOne issues a PUT with body for a single entity under a resource and
// decodes the response into T.
func UpdateOne[T any](ctx context.Context, c *Client, resource, id string, criteria Criteria, body any, opts *Options) (T, error) {
	path, err := RequestPath(appendSegment(resource, id), criteria)
	if err != nil {
		var zero T
		return zero, err
	}
	return Request[T](ctx, c, http.MethodPut, path, body, opts)
}

// Patch issues a PATCH with body for a resource narrowed by criteria and
// decodes the response into T.
func Patch[T any](ctx context.Context, c *Client, resource string, criteria Criteria, body any, opts *Options) (T, error) {
	path, err := RequestPath(resource, criteria)
	if err != nil {
		var zero T
		return zero, err
	}
	return Request[T](ctx, c, http.MethodPatch, path, body, opts)
}

// PatchOne issues a PATCH with body for a single entity under a resource and
// decodes the response into T.
func PatchOne[T any](ctx context.Context, c *Client, resource, id string, criteria Criteria, body any, opts *Options) (T, error) {
	path, err := RequestPath(appendSegment(resource, id), criteria)
	if err != nil {
		var zero T
		return zero, err
	}
	return Request[T](ctx, c, http.MethodPatch, path, body, opts)
}

// Destroy issues a DELETE for a resource narrowed by criteria and decodes
// the response into T.
func Destroy[T any](ctx context.Context, c *Client, resource string, criteria Criteria, opts *Options) (T, error) {
	path, err := RequestPath(resource, criteria)
	if err != nil {
		var zero T
		return zero, err
	}
	return Request[T](ctx, c, http.MethodDelete, path, nil, opts)
}

// DestroyOne issues a DELETE for a single entity under a resource and
// decodes the response into T.
func DestroyOne[T any](ctx context.Context, c *Client, resource, id string, criteria Criteria, opts *Options) (T, error) {
	path, err := RequestPath(appendSegment(resource, id), criteria)
	if err != nil {
		var zero T
		return zero, err
	}
	return Request[T](ctx, c, http.MethodDelete, path, nil, opts)
}
