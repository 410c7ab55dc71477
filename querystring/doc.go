// Package querystring builds URL-encoded query strings from maps, structs,
// and url.Values.
//
// Nested maps use bracket notation (a[b]=1), slices render as repeated
// bracket keys (tag[]=x&tag[]=y) or, in traditional mode, as repeated plain
// keys (tag=x&tag=y). Structs are encoded through their `url` tags via
// github.com/google/go-querystring.
package querystring
