package testutil

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/kbukum/restkit/transport"
)

// Call records a single transport invocation.
type Call struct {
	// Path is the path the client resolved for the request.
	Path string
	// Options are the effective options the client passed to the transport.
	Options transport.Options
}

// FakeTransport is an in-memory transport.Transport that records calls and
// returns scripted responses. It is safe for concurrent use.
type FakeTransport struct {
	mu        sync.Mutex
	calls     []Call
	responses []*transport.Response
	err       error
	handler   func(ctx context.Context, path string, opts transport.Options) (*transport.Response, error)
}

var _ transport.Transport = (*FakeTransport)(nil)

// NewFakeTransport creates a fake transport that replies with the given
// responses in order, repeating the last one once the queue is exhausted.
// With no responses it replies 200 with an empty body.
func NewFakeTransport(responses ...*transport.Response) *FakeTransport {
	return &FakeTransport{responses: responses}
}

// Fail scripts a transport-level error; every Fetch returns it until reset
// by Respond or Handle.
func (f *FakeTransport) Fail(err error) *FakeTransport {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.err = err
	f.handler = nil
	return f
}

// Respond replaces the scripted response queue.
func (f *FakeTransport) Respond(responses ...*transport.Response) *FakeTransport {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.responses = responses
	f.err = nil
	f.handler = nil
	return f
}

// Handle replaces scripting with a per-call handler.
func (f *FakeTransport) Handle(fn func(ctx context.Context, path string, opts transport.Options) (*transport.Response, error)) *FakeTransport {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.handler = fn
	f.err = nil
	return f
}

// Fetch records the call and returns the next scripted response.
func (f *FakeTransport) Fetch(ctx context.Context, path string, opts transport.Options) (*transport.Response, error) {
	f.mu.Lock()
	f.calls = append(f.calls, Call{Path: path, Options: opts})
	handler := f.handler
	err := f.err
	var resp *transport.Response
	if handler == nil && err == nil {
		resp = f.nextLocked()
	}
	f.mu.Unlock()

	if handler != nil {
		return handler(ctx, path, opts)
	}
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// nextLocked pops the next response; the caller holds f.mu.
func (f *FakeTransport) nextLocked() *transport.Response {
	if len(f.responses) == 0 {
		return &transport.Response{StatusCode: 200, Headers: map[string]string{}}
	}
	resp := f.responses[0]
	if len(f.responses) > 1 {
		f.responses = f.responses[1:]
	}
	return resp
}

// Calls returns a copy of all recorded calls.
func (f *FakeTransport) Calls() []Call {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Call(nil), f.calls...)
}

// CallCount returns the number of recorded calls.
func (f *FakeTransport) CallCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

// LastCall returns the most recent recorded call. It panics when no call
// has been made, which in a test reads as the failure it is.
func (f *FakeTransport) LastCall() Call {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.calls) == 0 {
		panic("testutil: no calls recorded")
	}
	return f.calls[len(f.calls)-1]
}

// Reset clears recorded calls, keeping the scripted behavior.
func (f *FakeTransport) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = nil
}

// JSONResponse builds a response whose body is the JSON encoding of v.
// It panics on unencodable values; tests script only encodable ones.
func JSONResponse(status int, v any) *transport.Response {
	data, err := json.Marshal(v)
	if err != nil {
		panic(fmt.Sprintf("testutil: encode response body: %v", err))
	}
	return &transport.Response{
		StatusCode: status,
		Headers:    map[string]string{"Content-Type": "application/json"},
		Body:       data,
	}
}

// TextResponse builds a response with a plain text body.
func TextResponse(status int, body string) *transport.Response {
	return &transport.Response{
		StatusCode: status,
		Headers:    map[string]string{"Content-Type": "text/plain"},
		Body:       []byte(body),
	}
}

// EmptyResponse builds a response with the given status and no body.
func EmptyResponse(status int) *transport.Response {
	return &transport.Response{
		StatusCode: status,
		Headers:    map[string]string{},
	}
}
