package querystring

import (
	"fmt"
	"net/url"
	"reflect"
	"sort"
	"strconv"
	"strings"
	"time"

	qs "github.com/google/go-querystring/query"
)

// Encoder controls how composite values are rendered.
type Encoder struct {
	// Traditional repeats the key for each slice element (tag=a&tag=b)
	// instead of the bracket form (tag[]=a&tag[]=b). Nested maps keep
	// bracket notation either way.
	Traditional bool
}

// Encode renders v as a URL-encoded query string with keys in sorted order.
// Empty or nil input encodes to "".
func Encode(v any) (string, error) {
	return Encoder{}.Encode(v)
}

// EncodeTraditional is Encode with traditional slice rendering.
func EncodeTraditional(v any) (string, error) {
	return Encoder{Traditional: true}.Encode(v)
}

// Values converts v into url.Values for callers that want the raw pairs.
func Values(v any) (url.Values, error) {
	return Encoder{}.Values(v)
}

// Encode renders v as a URL-encoded query string.
func (e Encoder) Encode(v any) (string, error) {
	vals, err := e.Values(v)
	if err != nil {
		return "", err
	}
	return vals.Encode(), nil
}

// Values converts v into url.Values. Accepted inputs are nil, url.Values,
// string-keyed maps (arbitrarily nested), and structs carrying `url` tags.
func (e Encoder) Values(v any) (url.Values, error) {
	vals := url.Values{}
	if v == nil {
		return vals, nil
	}

	switch src := v.(type) {
	case url.Values:
		for k, vs := range src {
			vals[k] = append([]string(nil), vs...)
		}
		return vals, nil
	case map[string][]string:
		for k, vs := range src {
			vals[k] = append([]string(nil), vs...)
		}
		return vals, nil
	}

	rv := indirect(reflect.ValueOf(v))
	if !rv.IsValid() {
		return vals, nil
	}

	switch rv.Kind() {
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return nil, fmt.Errorf("querystring: map keys must be strings, got %s", rv.Type().Key())
		}
		for _, k := range sortedKeys(rv) {
			if err := e.add(vals, k.String(), rv.MapIndex(k)); err != nil {
				return nil, err
			}
		}
		return vals, nil
	case reflect.Struct:
		sv, err := qs.Values(rv.Interface())
		if err != nil {
			return nil, fmt.Errorf("querystring: %w", err)
		}
		for k, vs := range sv {
			vals[k] = append([]string(nil), vs...)
		}
		return vals, nil
	default:
		return nil, fmt.Errorf("querystring: cannot encode %T", v)
	}
}

// add flattens a single key/value pair into vals, recursing through nested
// maps and slices with bracket notation.
func (e Encoder) add(vals url.Values, key string, rv reflect.Value) error {
	rv = indirect(rv)
	if !rv.IsValid() {
		vals.Add(key, "")
		return nil
	}

	if rv.CanInterface() {
		if t, ok := rv.Interface().(time.Time); ok {
			vals.Add(key, t.Format(time.RFC3339))
			return nil
		}
	}

	switch rv.Kind() {
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return fmt.Errorf("querystring: map keys must be strings, got %s", rv.Type().Key())
		}
		for _, k := range sortedKeys(rv) {
			if err := e.add(vals, key+"["+k.String()+"]", rv.MapIndex(k)); err != nil {
				return err
			}
		}
		return nil
	case reflect.Slice, reflect.Array:
		if rv.Kind() == reflect.Slice && rv.Type().Elem().Kind() == reflect.Uint8 {
			vals.Add(key, string(rv.Bytes()))
			return nil
		}
		for i := 0; i < rv.Len(); i++ {
			elem := indirect(rv.Index(i))
			switch {
			case elem.IsValid() && isComposite(elem):
				if err := e.add(vals, key+"["+strconv.Itoa(i)+"]", elem); err != nil {
					return err
				}
			case e.Traditional:
				s, err := stringify(elem)
				if err != nil {
					return err
				}
				vals.Add(key, s)
			default:
				s, err := stringify(elem)
				if err != nil {
					return err
				}
				vals.Add(key+"[]", s)
			}
		}
		return nil
	case reflect.Struct:
		sv, err := qs.Values(rv.Interface())
		if err != nil {
			return fmt.Errorf("querystring: %w", err)
		}
		for k, vss := range sv {
			for _, s := range vss {
				vals.Add(prefixKey(key, k), s)
			}
		}
		return nil
	default:
		s, err := stringify(rv)
		if err != nil {
			return err
		}
		vals.Add(key, s)
		return nil
	}
}

// prefixKey nests k under prefix, keeping any brackets k already carries in
// place: prefixKey("f", "a[b]") == "f[a][b]".
func prefixKey(prefix, k string) string {
	if i := strings.IndexByte(k, '['); i >= 0 {
		return prefix + "[" + k[:i] + "]" + k[i:]
	}
	return prefix + "[" + k + "]"
}

func stringify(rv reflect.Value) (string, error) {
	if !rv.IsValid() {
		return "", nil
	}
	if rv.CanInterface() {
		switch x := rv.Interface().(type) {
		case time.Time:
			return x.Format(time.RFC3339), nil
		case fmt.Stringer:
			return x.String(), nil
		}
	}
	switch rv.Kind() {
	case reflect.String:
		return rv.String(), nil
	case reflect.Bool:
		return strconv.FormatBool(rv.Bool()), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(rv.Uint(), 10), nil
	case reflect.Float32:
		return strconv.FormatFloat(rv.Float(), 'f', -1, 32), nil
	case reflect.Float64:
		return strconv.FormatFloat(rv.Float(), 'f', -1, 64), nil
	default:
		return "", fmt.Errorf("querystring: cannot encode %s value", rv.Kind())
	}
}

func isComposite(rv reflect.Value) bool {
	switch rv.Kind() {
	case reflect.Map:
		return true
	case reflect.Slice:
		return rv.Type().Elem().Kind() != reflect.Uint8
	case reflect.Array:
		return true
	case reflect.Struct:
		if rv.CanInterface() {
			if _, isTime := rv.Interface().(time.Time); isTime {
				return false
			}
		}
		return true
	default:
		return false
	}
}

func indirect(rv reflect.Value) reflect.Value {
	for rv.IsValid() && (rv.Kind() == reflect.Interface || rv.Kind() == reflect.Pointer) {
		if rv.IsNil() {
			return reflect.Value{}
		}
		rv = rv.Elem()
	}
	return rv
}

func sortedKeys(rv reflect.Value) []reflect.Value {
	keys := rv.MapKeys()
	sort.Slice(keys, func(i, j int) bool { return keys[i].String() < keys[j].String() })
	return keys
}
