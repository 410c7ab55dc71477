package rest

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/kbukum/restkit/querystring"
)

type criteriaKind int

const (
	criteriaNone criteriaKind = iota
	criteriaByID
	criteriaWhere
)

// Criteria narrows a resource reference. It is one of three variants:
// None (the zero value, no path modification), ByID (an identifier appended
// as a path segment), or Where (a mapping serialized as a query string).
type Criteria struct {
	kind   criteriaKind
	id     any
	params any
}

// None returns the absent criteria. The zero Criteria value is equivalent.
func None() Criteria {
	return Criteria{}
}

// ByID returns criteria that append id to the resource as a path segment.
//
// Empty strings, zero numbers, false, and nil resolve as absent, leaving the
// resource unchanged. This mirrors the classic falsy check of criteria-based
// REST clients; use a Where mapping if a literal zero id must go on the wire.
func ByID(id any) Criteria {
	return Criteria{kind: criteriaByID, id: id}
}

// Where returns criteria that append params to the resource as a query
// string. params may be a string-keyed map (arbitrarily nested), a struct
// with `url` tags, or url.Values. A nil params resolves as absent; a non-nil
// empty map still appends "?".
func Where(params any) Criteria {
	return Criteria{kind: criteriaWhere, params: params}
}

// IsZero reports whether the criteria resolve as absent: the None variant,
// a falsy ByID value, or a nil Where mapping.
func (c Criteria) IsZero() bool {
	switch c.kind {
	case criteriaByID:
		return segment(c.id) == ""
	case criteriaWhere:
		return isNil(c.params)
	default:
		return true
	}
}

// RequestPath resolves the target path for a resource and criteria.
//
// Where criteria append "?" plus the encoded params. ByID criteria append
// the id as a path segment with exactly one "/" between resource and id; a
// trailing slash on the resource moves to the far side, preserving the
// caller's path style ("users"+1 -> "users/1", "users/"+1 -> "users/1/").
// Absent criteria return the resource unchanged. The resource itself is not
// validated or escaped.
func RequestPath(resource string, criteria Criteria) (string, error) {
	switch criteria.kind {
	case criteriaWhere:
		if isNil(criteria.params) {
			return resource, nil
		}
		qs, err := querystring.Encode(criteria.params)
		if err != nil {
			return "", fmt.Errorf("rest: encode criteria: %w", err)
		}
		return resource + "?" + qs, nil
	case criteriaByID:
		id := segment(criteria.id)
		if id == "" {
			return resource, nil
		}
		return appendSegment(resource, id), nil
	default:
		return resource, nil
	}
}

// appendSegment joins one path segment onto resource with a single "/",
// keeping a pre-existing trailing slash on the far side.
func appendSegment(resource, seg string) string {
	if strings.HasSuffix(resource, "/") {
		return resource + seg + "/"
	}
	return resource + "/" + seg
}

// segment renders an id as a path segment. Falsy values (nil, empty string,
// numeric zero, false) render as "", which callers treat as absent.
func segment(id any) string {
	if id == nil {
		return ""
	}
	if s, ok := id.(fmt.Stringer); ok {
		return s.String()
	}

	rv := reflect.ValueOf(id)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return ""
		}
		rv = rv.Elem()
	}

	switch rv.Kind() {
	case reflect.String:
		return rv.String()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if rv.Int() == 0 {
			return ""
		}
		return strconv.FormatInt(rv.Int(), 10)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		if rv.Uint() == 0 {
			return ""
		}
		return strconv.FormatUint(rv.Uint(), 10)
	case reflect.Float32:
		if rv.Float() == 0 {
			return ""
		}
		return strconv.FormatFloat(rv.Float(), 'f', -1, 32)
	case reflect.Float64:
		if rv.Float() == 0 {
			return ""
		}
		return strconv.FormatFloat(rv.Float(), 'f', -1, 64)
	case reflect.Bool:
		if !rv.Bool() {
			return ""
		}
		return "true"
	default:
		return fmt.Sprint(id)
	}
}

// isNil reports whether v is nil, including typed nils boxed in interfaces
// (nil maps, slices, and pointers).
func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Map, reflect.Slice, reflect.Pointer, reflect.Interface:
		return rv.IsNil()
	default:
		return false
	}
}
