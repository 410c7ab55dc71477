// Package config provides configuration loading and endpoint wiring for
// restkit applications.
//
// It uses Viper to load configuration from YAML files and environment
// variables, with optional .env support via godotenv. A loaded Config can be
// turned into a ready-to-use client registry with BuildRegistry.
//
// # Configuration Layout
//
//	logging:
//	  level: info
//	  format: json
//
//	default: api
//
//	endpoints:
//	  api:
//	    url: https://api.example.com
//	    client: http
//	    timeout: 10s
//	    headers:
//	      Authorization: Bearer token
//	  search:
//	    url: https://search.example.com
//	    client: fasthttp
//
// # Usage
//
//	var cfg config.Config
//	if err := config.Load("myapp", &cfg); err != nil {
//	    log.Fatal(err)
//	}
//	registry, err := config.BuildRegistry(cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	api, _ := registry.Get("api")
//
// Environment variables override file values using underscore-separated
// paths (e.g., LOGGING_LEVEL, ENDPOINTS_API_URL).
package config
