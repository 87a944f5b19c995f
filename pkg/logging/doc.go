// Package logging provides centralized structured logging configuration and
// utilities for the dotLottie core.
//
// This package wraps logrus to provide consistent logging across the
// container reader, player engine, state machine engine, and theming layer.
// It supports environment-based configuration, multiple formatters, and
// contextual logging.
//
// # Configuration
//
// The logger can be configured via environment variables:
//   - DOTLOTTIE_LOG_LEVEL: minimum log level (debug, info, warn, error, fatal). Default: info
//   - DOTLOTTIE_LOG_FORMAT: output format (json, text). Default: text
//
// # Usage
//
// Initialize the logger at application startup:
//
//	logger := logging.NewLogger(logging.Config{
//	    Level:     logging.InfoLevel,
//	    Format:    logging.TextFormat,
//	    AddCaller: true,
//	})
//
// Use structured fields for context:
//
//	logger.WithFields(logrus.Fields{
//	    "animationID": "intro",
//	    "frame":       12,
//	}).Info("frame advanced")
//
// # Performance
//
// Avoid logging above Info level in the per-tick hot path (tick, render,
// run_pipeline). A nil *logrus.Entry is accepted everywhere in the core —
// every call site nil-checks before logging, so the logger is optional.
package logging
