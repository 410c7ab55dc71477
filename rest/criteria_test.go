package rest

import (
	"fmt"
	"testing"

	"github.com/kbukum/restkit/querystring"
)

func TestRequestPath_Where(t *testing.T) {
	criteria := map[string]any{"active": true, "role": "admin"}

	got, err := RequestPath("users", Where(criteria))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	qs, err := querystring.Encode(criteria)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "users?" + qs
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestRequestPath_WhereMatchesBuilder(t *testing.T) {
	tests := []struct {
		name     string
		resource string
		params   any
	}{
		{"flat", "users", map[string]any{"page": 2, "limit": 50}},
		{"nested", "orders", map[string]any{"filter": map[string]any{"status": "open"}}},
		{"slice", "posts", map[string]any{"tag": []string{"go", "http"}}},
		{"strings", "items", map[string]string{"q": "widget"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := RequestPath(tt.resource, Where(tt.params))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			qs, err := querystring.Encode(tt.params)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if want := tt.resource + "?" + qs; got != want {
				t.Errorf("expected %q, got %q", want, got)
			}
		})
	}
}

func TestRequestPath_WhereEmptyMap(t *testing.T) {
	// A non-nil empty map is still a where-clause: it appends a bare "?".
	got, err := RequestPath("users", Where(map[string]any{}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "users?" {
		t.Errorf("expected %q, got %q", "users?", got)
	}
}

func TestRequestPath_WhereNil(t *testing.T) {
	got, err := RequestPath("users", Where(nil))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "users" {
		t.Errorf("expected %q, got %q", "users", got)
	}

	// Typed nil maps resolve as absent too.
	got, err = RequestPath("users", Where(map[string]any(nil)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "users" {
		t.Errorf("expected %q, got %q", "users", got)
	}
}

func TestRequestPath_WhereEncodeError(t *testing.T) {
	_, err := RequestPath("users", Where(map[string]any{"ch": make(chan int)}))
	if err == nil {
		t.Fatal("expected error for unencodable criteria")
	}
}

func TestRequestPath_ByID(t *testing.T) {
	tests := []struct {
		resource string
		id       any
		want     string
	}{
		{"a", 1, "a/1"},
		{"a/", 1, "a/1/"},
		{"users", "42", "users/42"},
		{"users/", "42", "users/42/"},
		{"users", int64(9000), "users/9000"},
		{"users", uint(7), "users/7"},
		{"v2/users", "abc-def", "v2/users/abc-def"},
		{"files", 2.5, "files/2.5"},
		{"flags", true, "flags/true"},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s_%v", tt.resource, tt.id), func(t *testing.T) {
			got, err := RequestPath(tt.resource, ByID(tt.id))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestRequestPath_FalsyIDTreatedAsAbsent(t *testing.T) {
	tests := []struct {
		name string
		id   any
	}{
		{"zero_int", 0},
		{"zero_int64", int64(0)},
		{"zero_uint", uint(0)},
		{"zero_float", 0.0},
		{"empty_string", ""},
		{"false", false},
		{"nil", nil},
		{"nil_pointer", (*int)(nil)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := RequestPath("a", ByID(tt.id))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != "a" {
				t.Errorf("expected resource unchanged, got %q", got)
			}
		})
	}
}

func TestRequestPath_None(t *testing.T) {
	got, err := RequestPath("a", None())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "a" {
		t.Errorf("expected %q, got %q", "a", got)
	}

	// The zero Criteria value behaves like None.
	got, err = RequestPath("a", Criteria{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "a" {
		t.Errorf("expected %q, got %q", "a", got)
	}
}

func TestRequestPath_ByIDPointer(t *testing.T) {
	id := 5
	got, err := RequestPath("users", ByID(&id))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "users/5" {
		t.Errorf("expected %q, got %q", "users/5", got)
	}
}

type stringerID string

func (s stringerID) String() string { return string(s) }

func TestRequestPath_ByIDStringer(t *testing.T) {
	got, err := RequestPath("users", ByID(stringerID("u-77")))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "users/u-77" {
		t.Errorf("expected %q, got %q", "users/u-77", got)
	}
}

func TestCriteria_IsZero(t *testing.T) {
	tests := []struct {
		name     string
		criteria Criteria
		want     bool
	}{
		{"none", None(), true},
		{"zero_value", Criteria{}, true},
		{"by_id", ByID(1), false},
		{"by_id_zero", ByID(0), true},
		{"by_id_empty", ByID(""), true},
		{"where", Where(map[string]any{"a": 1}), false},
		{"where_empty_map", Where(map[string]any{}), false},
		{"where_nil", Where(nil), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.criteria.IsZero(); got != tt.want {
				t.Errorf("IsZero() = %v, want %v", got, tt.want)
			}
		})
	}
}
