// Package validation provides input validation for restkit configuration.
//
// It supports both struct tag validation (using the validator library) and
// programmatic validation with error collection. Struct tag validation is
// what the config package uses for endpoint definitions.
//
// # Struct Tag Validation
//
//	type Endpoint struct {
//	    URL    string `validate:"required,url"`
//	    Client string `validate:"omitempty,oneof=http fasthttp"`
//	}
//	err := validation.Validate(ep)
//
// # Programmatic Validation
//
//	v := validation.New()
//	v.Required("base_url", cfg.BaseURL)
//	err := v.Err()
package validation
