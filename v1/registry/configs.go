package registry

import (
	"context"
	"time"
)

// DefaultTimeout is used for HTTP requests when Config.Timeout is zero.
const DefaultTimeout = 10 * time.Second

// Config holds configuration for the schema registry client.
type Config struct {
	// URL is the schema registry endpoint (e.g., "http://localhost:8081")
	URL string

	// Username for basic auth (optional)
	Username string

	// Password for basic auth (optional)
	Password string

	// Timeout for HTTP requests
	// Default: 10 seconds
	Timeout time.Duration

	// Logger is an optional logger from the v1/logger package
	// If provided, it will be used for request error logging
	Logger Logger
}

// Logger is an interface that matches the v1/logger Logger interface.
// It provides context-aware structured logging with optional error and field parameters.
type Logger interface {
	// DebugWithContext logs a debug message with trace context.
	DebugWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{})

	// WarnWithContext logs a warning message with trace context.
	WarnWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{})

	// ErrorWithContext logs an error message with trace context.
	ErrorWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{})
}
