package config

import (
	"fmt"
	"sort"

	"github.com/kbukum/restkit/logger"
	"github.com/kbukum/restkit/rest"
	"github.com/kbukum/restkit/transport"
)

// BuildRegistry assembles a client per configured endpoint and returns a
// populated registry. Endpoints are registered in name order, so with no
// Default configured the alphabetically first endpoint becomes the default
// client.
func BuildRegistry(cfg Config) (*rest.Registry, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	names := make([]string, 0, len(cfg.Endpoints))
	for name := range cfg.Endpoints {
		names = append(names, name)
	}
	sort.Strings(names)

	registry := rest.NewRegistry()
	for _, name := range names {
		ep := cfg.Endpoints[name]

		tr, err := buildTransport(ep)
		if err != nil {
			return nil, fmt.Errorf("config: endpoint %s: %w", name, err)
		}

		client, err := rest.New(rest.Config{
			Transport: tr,
			Endpoint:  name,
			Headers:   ep.Headers,
			Logger:    logger.Get("rest"),
		})
		if err != nil {
			return nil, fmt.Errorf("config: endpoint %s: %w", name, err)
		}

		if err := registry.Register(client); err != nil {
			return nil, err
		}
	}

	if cfg.Default != "" {
		if err := registry.SetDefault(cfg.Default); err != nil {
			return nil, err
		}
	}

	return registry, nil
}

// buildTransport constructs the transport an endpoint selects.
func buildTransport(ep Endpoint) (transport.Transport, error) {
	switch ep.Client {
	case ClientHTTP:
		return transport.NewHTTP(transport.HTTPConfig{
			BaseURL:   ep.URL,
			Timeout:   ep.Timeout,
			TLS:       ep.TLS,
			RequestID: ep.RequestID,
		})
	case ClientFastHTTP:
		return transport.NewFastHTTP(transport.FastHTTPConfig{
			BaseURL:      ep.URL,
			ReadTimeout:  ep.Timeout,
			WriteTimeout: ep.Timeout,
			TLS:          ep.TLS,
			RequestID:    ep.RequestID,
		})
	default:
		return nil, fmt.Errorf("config: unknown client kind %q", ep.Client)
	}
}
