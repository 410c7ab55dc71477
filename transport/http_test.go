package transport

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/kbukum/restkit/version"
)

func TestHTTP_Fetch_GET(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("expected GET, got %s", r.Method)
		}
		if r.URL.Path != "/users/123" {
			t.Errorf("expected /users/123, got %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"name": "Alice"})
	}))
	defer srv.Close()

	tr, err := NewHTTP(HTTPConfig{BaseURL: srv.URL})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	resp, err := tr.Fetch(context.Background(), "/users/123", Options{Method: http.MethodGet})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Errorf("expected 200, got %d", resp.StatusCode)
	}
	if !strings.Contains(string(resp.Body), "Alice") {
		t.Errorf("response body should contain Alice, got %s", string(resp.Body))
	}
	if got := resp.Header("Content-Type"); got != "application/json" {
		t.Errorf("expected application/json, got %q", got)
	}
}

func TestHTTP_Fetch_POST_JSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("expected Content-Type application/json, got %s", ct)
		}
		var body map[string]string
		json.NewDecoder(r.Body).Decode(&body)
		if body["name"] != "Bob" {
			t.Errorf("expected name=Bob, got %q", body["name"])
		}
		w.WriteHeader(201)
	}))
	defer srv.Close()

	tr, err := NewHTTP(HTTPConfig{BaseURL: srv.URL})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	resp, err := tr.Fetch(context.Background(), "/users", Options{
		Method: http.MethodPost,
		Body:   map[string]string{"name": "Bob"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != 201 {
		t.Errorf("expected 201, got %d", resp.StatusCode)
	}
}

func TestHTTP_Fetch_StringBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ct := r.Header.Get("Content-Type"); ct != "text/plain" {
			t.Errorf("expected text/plain, got %s", ct)
		}
		w.WriteHeader(200)
	}))
	defer srv.Close()

	tr, err := NewHTTP(HTTPConfig{BaseURL: srv.URL})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err = tr.Fetch(context.Background(), "/", Options{Method: http.MethodPost, Body: "raw text"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestHTTP_Fetch_ExplicitContentTypeWins(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ct := r.Header.Get("Content-Type"); ct != "application/xml" {
			t.Errorf("expected application/xml, got %s", ct)
		}
		w.WriteHeader(200)
	}))
	defer srv.Close()

	tr, err := NewHTTP(HTTPConfig{BaseURL: srv.URL})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err = tr.Fetch(context.Background(), "/", Options{
		Method:  http.MethodPost,
		Headers: map[string]string{"Content-Type": "application/xml"},
		Body:    "<x/>",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestHTTP_Fetch_DefaultHeaders(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("X-Custom"); got != "value" {
			t.Errorf("expected X-Custom=value, got %q", got)
		}
		if got := r.Header.Get("X-Override"); got != "request" {
			t.Errorf("expected X-Override=request, got %q", got)
		}
		w.WriteHeader(200)
	}))
	defer srv.Close()

	tr, err := NewHTTP(HTTPConfig{
		BaseURL: srv.URL,
		Headers: map[string]string{"X-Custom": "value", "X-Override": "default"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err = tr.Fetch(context.Background(), "/", Options{
		Method:  http.MethodGet,
		Headers: map[string]string{"X-Override": "request"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestHTTP_Fetch_UserAgent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("User-Agent"); got != version.UserAgent() {
			t.Errorf("expected %q, got %q", version.UserAgent(), got)
		}
		w.WriteHeader(200)
	}))
	defer srv.Close()

	tr, err := NewHTTP(HTTPConfig{BaseURL: srv.URL})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err = tr.Fetch(context.Background(), "/", Options{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestHTTP_Fetch_RequestID(t *testing.T) {
	t.Run("stamped when enabled", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get(HeaderRequestID)
			if _, err := uuid.Parse(id); err != nil {
				t.Errorf("expected a UUID request id, got %q", id)
			}
			w.WriteHeader(200)
		}))
		defer srv.Close()

		tr, err := NewHTTP(HTTPConfig{BaseURL: srv.URL, RequestID: true})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, err = tr.Fetch(context.Background(), "/", Options{}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("provided id kept", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if got := r.Header.Get(HeaderRequestID); got != "trace-1" {
				t.Errorf("expected trace-1, got %q", got)
			}
			w.WriteHeader(200)
		}))
		defer srv.Close()

		tr, err := NewHTTP(HTTPConfig{BaseURL: srv.URL, RequestID: true})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		_, err = tr.Fetch(context.Background(), "/", Options{
			Headers: map[string]string{HeaderRequestID: "trace-1"},
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("absent when disabled", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if got := r.Header.Get(HeaderRequestID); got != "" {
				t.Errorf("expected no request id, got %q", got)
			}
			w.WriteHeader(200)
		}))
		defer srv.Close()

		tr, err := NewHTTP(HTTPConfig{BaseURL: srv.URL})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, err = tr.Fetch(context.Background(), "/", Options{}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})
}

func TestHTTP_Fetch_ErrorStatusIsNotAnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(500)
		w.Write([]byte(`{"error":"boom"}`))
	}))
	defer srv.Close()

	tr, err := NewHTTP(HTTPConfig{BaseURL: srv.URL})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	resp, err := tr.Fetch(context.Background(), "/", Options{})
	if err != nil {
		t.Fatalf("status codes must not become transport errors, got %v", err)
	}
	if resp.StatusCode != 500 {
		t.Errorf("expected 500, got %d", resp.StatusCode)
	}
	if !resp.IsError() {
		t.Error("expected IsError=true")
	}
}

func TestHTTP_Fetch_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(2 * time.Second)
		w.WriteHeader(200)
	}))
	defer srv.Close()

	tr, err := NewHTTP(HTTPConfig{BaseURL: srv.URL, Timeout: 50 * time.Millisecond})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err = tr.Fetch(context.Background(), "/", Options{})
	if err == nil {
		t.Fatal("expected timeout error")
	}
	if !IsTimeout(err) {
		t.Errorf("expected timeout classification, got %v", err)
	}
}

func TestHTTP_Fetch_ContextCanceled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(2 * time.Second)
		w.WriteHeader(200)
	}))
	defer srv.Close()

	tr, err := NewHTTP(HTTPConfig{BaseURL: srv.URL})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err = tr.Fetch(ctx, "/", Options{})
	if err == nil {
		t.Fatal("expected error for canceled context")
	}
	if !IsTimeout(err) {
		t.Errorf("expected timeout classification, got %v", err)
	}
}

func TestHTTP_Fetch_ConnectionError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	tr, err := NewHTTP(HTTPConfig{BaseURL: url})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err = tr.Fetch(context.Background(), "/", Options{})
	if err == nil {
		t.Fatal("expected connection error")
	}
	if !IsConnection(err) {
		t.Errorf("expected connection classification, got %v", err)
	}
}

func TestHTTP_Fetch_FullURL_IgnoresBaseURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(200)
	}))
	defer srv.Close()

	tr, err := NewHTTP(HTTPConfig{BaseURL: "http://should-not-be-used.invalid"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	resp, err := tr.Fetch(context.Background(), srv.URL+"/direct", Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Errorf("expected 200, got %d", resp.StatusCode)
	}
}

func TestNewHTTP_InvalidBaseURL(t *testing.T) {
	if _, err := NewHTTP(HTTPConfig{BaseURL: "not a url"}); err == nil {
		t.Fatal("expected error for invalid base URL")
	}
}

func TestResolveURL(t *testing.T) {
	tests := []struct {
		base string
		path string
		want string
	}{
		{"http://host", "users", "http://host/users"},
		{"http://host", "/users", "http://host/users"},
		{"http://host/", "users", "http://host/users"},
		{"http://host/api/", "/users/", "http://host/api/users/"},
		{"", "/users", "/users"},
		{"http://host", "https://other/users", "https://other/users"},
	}

	for _, tt := range tests {
		if got := resolveURL(tt.base, tt.path); got != tt.want {
			t.Errorf("resolveURL(%q, %q) = %q, want %q", tt.base, tt.path, got, tt.want)
		}
	}
}
