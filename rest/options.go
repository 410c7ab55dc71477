package rest

import (
	"github.com/kbukum/restkit/transport"
)

// Options is a per-request configuration overlay. All fields are optional;
// a nil *Options is valid everywhere one is accepted.
//
// Merge precedence is fixed: client defaults, then caller options, then the
// method and body the operation itself chose. The forced method/body layer
// always wins, so Method and Body set here never override the verb or body
// of a convenience operation; they are honored only as documentation of the
// caller's intent and exist so an Options value can also serve as a client's
// Defaults.
type Options struct {
	// Method is the HTTP method. Overridden by the operation's verb.
	Method string
	// Body is the request body. Overridden by the operation's body.
	Body any
	// Headers are merged key-by-key over the client's default headers.
	// Keys are matched exactly; no case normalization is performed here.
	Headers map[string]string
}

// Clone returns a deep copy of the options. The header map is copied;
// Body is shared.
func (o *Options) Clone() *Options {
	if o == nil {
		return nil
	}
	c := &Options{Method: o.Method, Body: o.Body}
	if o.Headers != nil {
		c.Headers = make(map[string]string, len(o.Headers))
		for k, v := range o.Headers {
			c.Headers[k] = v
		}
	}
	return c
}

// mergeOptions builds the effective transport options for a single call.
// Precedence, lowest to highest: client defaults, caller options, forced
// method/body. Headers merge key-by-key; the forced method and body are
// applied last and unconditionally, so neither defaults nor caller options
// can override them (even with a nil body). The result always carries a
// fresh non-nil header map, so request construction never mutates the
// defaults or the caller's options.
func mergeOptions(defaults Options, opts *Options, method string, body any) transport.Options {
	merged := transport.Options{
		Headers: make(map[string]string, len(defaults.Headers)),
		Method:  method,
		Body:    body,
	}

	for k, v := range defaults.Headers {
		merged.Headers[k] = v
	}
	if opts != nil {
		for k, v := range opts.Headers {
			merged.Headers[k] = v
		}
	}

	return merged
}

// contentType reports the effective content type of merged headers. Only the
// exact spellings "Content-Type" and "content-type" are consulted, in that
// order; this narrow lookup is a compatibility shim, not a full
// case-insensitive header search.
func contentType(headers map[string]string) string {
	if ct, ok := headers["Content-Type"]; ok {
		return ct
	}
	return headers["content-type"]
}
