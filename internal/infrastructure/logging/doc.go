// Package logging provides structured logging for the Pandora client.
//
// This package wraps Go's standard log/slog package so every component logs
// with the same fields and level handling.
//
// Diagnostics go to stderr by default. Stdout is reserved for decoded
// frames so they can be piped into other tools.
//
// # Configuration
//
//	logging:
//	  level: "info"      # debug, info, warn, error
//	  format: "text"     # text, json
//	  output: "stderr"   # stderr, stdout
//
// The --verbose flag forces the debug level, which adds connection and
// per-message events.
//
// # Usage
//
//	logger := logging.New(cfg.Logging, version)
//	logger.Info("connected", "broker", addr)
//	logger.Warn("malformed frame", "topic", topic, "error", err)
//
// Never log broker passwords or InfluxDB tokens.
package logging
