// Package testutil provides testing infrastructure for restkit: a
// scriptable in-memory transport that records every invocation, and
// response constructors for scripting it.
//
// # Quick Start
//
//	ft := testutil.NewFakeTransport(testutil.JSONResponse(200, map[string]string{"name": "Alice"}))
//	client, _ := rest.New(rest.Config{Transport: ft, Endpoint: "test"})
//
//	data, err := client.Find(ctx, "users", rest.ByID(1), nil)
//
//	call := ft.LastCall()
//	// call.Path == "users/1", call.Options.Method == "GET"
//
// Multiple queued responses are consumed in order; the last one repeats once
// the queue is exhausted. Use Fail to script a transport-level error and
// Handle for full control per call.
package testutil
