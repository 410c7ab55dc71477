package validation

import (
	"strings"
	"testing"
)

func TestValidatorRequired(t *testing.T) {
	v := New()
	v.Required("name", "widgets")
	if v.HasErrors() {
		t.Error("expected no errors for valid input")
	}

	v2 := New()
	v2.Required("name", "")
	if !v2.HasErrors() {
		t.Error("expected error for empty required field")
	}

	v3 := New()
	v3.Required("name", "   ")
	if !v3.HasErrors() {
		t.Error("expected error for whitespace-only required field")
	}
}

func TestValidatorMaxLength(t *testing.T) {
	v := New()
	v.MaxLength("label", "short", 10)
	if v.HasErrors() {
		t.Error("expected no error for string within max length")
	}

	v2 := New()
	v2.MaxLength("label", "this is too long", 5)
	if !v2.HasErrors() {
		t.Error("expected error for string exceeding max length")
	}
}

func TestValidatorMinLength(t *testing.T) {
	v := New()
	v.MinLength("token", "abcdef", 6)
	if v.HasErrors() {
		t.Error("expected no error for string meeting min length")
	}

	v2 := New()
	v2.MinLength("token", "ab", 6)
	if !v2.HasErrors() {
		t.Error("expected error for string below min length")
	}
}

func TestValidatorRange(t *testing.T) {
	v := New()
	v.Range("timeout", 25, 1, 100)
	if v.HasErrors() {
		t.Error("expected no error for value in range")
	}

	v2 := New()
	v2.Range("timeout", 0, 1, 100)
	if !v2.HasErrors() {
		t.Error("expected error for value below range")
	}

	v3 := New()
	v3.Range("timeout", 101, 1, 100)
	if !v3.HasErrors() {
		t.Error("expected error for value above range")
	}
}

func TestValidatorMinMax(t *testing.T) {
	v := New()
	v.Min("count", 5, 1)
	v.Max("count", 5, 10)
	if v.HasErrors() {
		t.Error("expected no errors")
	}

	v2 := New()
	v2.Min("count", 0, 1)
	if !v2.HasErrors() {
		t.Error("expected error for value below min")
	}

	v3 := New()
	v3.Max("count", 11, 10)
	if !v3.HasErrors() {
		t.Error("expected error for value above max")
	}
}

func TestValidatorPattern(t *testing.T) {
	v := New()
	v.Pattern("code", "ABC123", `^[A-Z0-9]+$`)
	if v.HasErrors() {
		t.Error("expected no error for matching pattern")
	}

	v2 := New()
	v2.Pattern("code", "abc", `^[A-Z]+$`)
	if !v2.HasErrors() {
		t.Error("expected error for non-matching pattern")
	}

	// Empty value should be skipped
	v3 := New()
	v3.Pattern("code", "", `^[A-Z]+$`)
	if v3.HasErrors() {
		t.Error("expected no error for empty value with pattern")
	}
}

func TestValidatorOneOf(t *testing.T) {
	v := New()
	v.OneOf("client", "http", []string{"http", "fasthttp"})
	if v.HasErrors() {
		t.Error("expected no error for valid oneOf value")
	}

	v2 := New()
	v2.OneOf("client", "grpc", []string{"http", "fasthttp"})
	if !v2.HasErrors() {
		t.Error("expected error for invalid oneOf value")
	}

	// Empty should be skipped
	v3 := New()
	v3.OneOf("client", "", []string{"http"})
	if v3.HasErrors() {
		t.Error("expected no error for empty oneOf value")
	}
}

func TestValidatorCustom(t *testing.T) {
	v := New()
	v.Custom(true, "field", "should pass")
	if v.HasErrors() {
		t.Error("expected no error for true condition")
	}

	v2 := New()
	v2.Custom(false, "field", "custom error")
	if !v2.HasErrors() {
		t.Error("expected error for false condition")
	}
	if v2.Errors()[0].Message != "custom error" {
		t.Errorf("expected 'custom error', got %q", v2.Errors()[0].Message)
	}
}

func TestValidatorValidate(t *testing.T) {
	v := New()
	v.Required("name", "widgets")
	if verr := v.Validate(); verr != nil {
		t.Error("expected nil for valid input")
	}

	v2 := New()
	v2.Required("url", "")
	v2.Required("client", "")
	verr := v2.Validate()
	if verr == nil {
		t.Fatal("expected error")
	}
	if len(verr.Fields) != 2 {
		t.Fatalf("expected 2 field errors, got %d", len(verr.Fields))
	}
	if !strings.Contains(verr.Message, "url") || !strings.Contains(verr.Message, "client") {
		t.Errorf("expected both fields in message, got %q", verr.Message)
	}
}

func TestValidatorErr(t *testing.T) {
	v := New()
	v.Required("name", "ok")
	if err := v.Err(); err != nil {
		t.Errorf("expected nil error, got %v", err)
	}

	v2 := New()
	v2.Required("name", "")
	err := v2.Err()
	if err == nil {
		t.Fatal("expected non-nil error")
	}
	if !strings.Contains(err.Error(), "name") {
		t.Errorf("expected error to mention 'name', got %q", err.Error())
	}
}

func TestValidatorChaining(t *testing.T) {
	v := New()
	result := v.Required("name", "widgets").MaxLength("name", "widgets", 100).Min("timeout", 25, 1)
	if result != v {
		t.Error("expected chaining to return same validator")
	}
	if v.HasErrors() {
		t.Error("expected no errors for valid chained validation")
	}
}

func TestStructValidateValid(t *testing.T) {
	type endpoint struct {
		URL    string `mapstructure:"url" validate:"required,url"`
		Client string `mapstructure:"client" validate:"omitempty,oneof=http fasthttp"`
	}

	err := Validate(endpoint{URL: "https://api.example.com", Client: "http"})
	if err != nil {
		t.Errorf("expected no error, got %v", err)
	}
}

func TestStructValidateInvalid(t *testing.T) {
	type endpoint struct {
		URL    string `mapstructure:"url" validate:"required,url"`
		Client string `mapstructure:"client" validate:"omitempty,oneof=http fasthttp"`
	}

	err := Validate(endpoint{URL: "", Client: "grpc"})
	if err == nil {
		t.Fatal("expected validation error")
	}
	errStr := err.Error()
	if !strings.Contains(errStr, "url") {
		t.Errorf("expected error to mention 'url', got %q", errStr)
	}
	if !strings.Contains(errStr, "client") {
		t.Errorf("expected error to mention 'client', got %q", errStr)
	}

	verr, ok := err.(*Error)
	if !ok {
		t.Fatalf("expected *Error, got %T", err)
	}
	if len(verr.Fields) != 2 {
		t.Errorf("expected 2 field errors, got %d", len(verr.Fields))
	}
}

func TestStructValidateMaxMin(t *testing.T) {
	type input struct {
		Code string `json:"code" validate:"required,min=3,max=10"`
	}

	if err := Validate(input{Code: "abc"}); err != nil {
		t.Errorf("expected valid, got %v", err)
	}

	if err := Validate(input{Code: "ab"}); err == nil {
		t.Error("expected error for code too short")
	}
}

func TestStructValidateTagNames(t *testing.T) {
	type cfg struct {
		BaseURL string `mapstructure:"base_url" validate:"required"`
	}

	err := Validate(cfg{})
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !strings.Contains(err.Error(), "base_url") {
		t.Errorf("expected mapstructure tag name in message, got %q", err.Error())
	}
}
