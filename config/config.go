package config

import (
	"fmt"
	"time"

	"github.com/kbukum/restkit/logger"
	"github.com/kbukum/restkit/transport"
	"github.com/kbukum/restkit/validation"
)

// Client kinds an endpoint may select.
const (
	ClientHTTP     = "http"
	ClientFastHTTP = "fasthttp"
)

// Config is the root configuration of a restkit assembly: logging plus a
// set of named endpoints, each of which becomes a REST client.
type Config struct {
	// Logging configures the kit's logger.
	Logging logger.Config `yaml:"logging" mapstructure:"logging"`

	// Default names the endpoint whose client the registry returns by
	// default. Empty means the alphabetically first endpoint.
	Default string `yaml:"default" mapstructure:"default"`

	// Endpoints are the named REST endpoints to build clients for.
	Endpoints map[string]Endpoint `yaml:"endpoints" mapstructure:"endpoints" validate:"dive"`
}

// Endpoint describes one remote REST endpoint.
type Endpoint struct {
	// URL is the endpoint's base URL.
	URL string `yaml:"url" mapstructure:"url" validate:"required,url"`

	// Client selects the transport implementation: "http" (default) or
	// "fasthttp".
	Client string `yaml:"client" mapstructure:"client" validate:"omitempty,oneof=http fasthttp"`

	// Timeout is the request timeout; zero uses the transport default.
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`

	// Headers become the client's default headers (merged with the seeded
	// JSON Accept/Content-Type pair).
	Headers map[string]string `yaml:"headers" mapstructure:"headers"`

	// TLS configures transport TLS settings.
	TLS *transport.TLSConfig `yaml:"tls" mapstructure:"tls"`

	// RequestID stamps an X-Request-Id header onto outgoing requests.
	RequestID bool `yaml:"request_id" mapstructure:"request_id"`
}

// ApplyDefaults fills in zero-value fields with sensible defaults.
func (c *Config) ApplyDefaults() {
	c.Logging.ApplyDefaults()
	for name, ep := range c.Endpoints {
		if ep.Client == "" {
			ep.Client = ClientHTTP
			c.Endpoints[name] = ep
		}
	}
}

// Validate checks the configuration: struct tags on endpoints, the logging
// section, TLS consistency, and that Default names a known endpoint.
func (c *Config) Validate() error {
	if err := c.Logging.Validate(); err != nil {
		return err
	}
	if err := validation.Validate(c); err != nil {
		return err
	}
	for name, ep := range c.Endpoints {
		if err := ep.TLS.Validate(); err != nil {
			return fmt.Errorf("config: endpoint %s: %w", name, err)
		}
	}
	if c.Default != "" {
		if _, ok := c.Endpoints[c.Default]; !ok {
			return fmt.Errorf("config: default endpoint %s is not defined", c.Default)
		}
	}
	return nil
}
