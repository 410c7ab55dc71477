// Package logger provides structured logging for restkit using zerolog.
//
// It supports multiple output formats (JSON, console), log level
// configuration, rotating file output, and component-scoped loggers
// with structured fields.
//
// # Configuration
//
//	logging:
//	  level: "info"
//	  format: "json"
//	  output: "stdout"
//
// # Usage
//
//	log := logger.Get("rest")
//	log.Info("request completed", logger.RequestFields("GET", "users/1"))
package logger
