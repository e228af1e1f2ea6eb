// Package logger provides structured logging for the schema services.
//
// It wraps Uber's Zap with a small surface: leveled logging methods that
// take an optional error and free-form field maps, context-aware
// variants that attach OpenTelemetry trace correlation fields, and an Fx
// module for dependency injection.
//
// # Direct Usage (Without FX)
//
//	import "github.com/streamforge/schemacore/v1/logger"
//
//	log := logger.NewLoggerClient(logger.Config{
//		Level:         logger.Info,
//		ServiceName:   "schema-registry",
//		EnableTracing: true,
//	})
//
//	log.Info("Schema registered", nil, map[string]interface{}{
//		"subject":   "orders-value",
//		"schema_id": 42,
//	})
//
//	// With trace context (automatically includes trace_id and span_id)
//	log.InfoWithContext(ctx, "Fetching schema", nil, map[string]interface{}{
//		"schema_id": 42,
//	})
//
// # FX Module Integration
//
//	app := fx.New(
//		logger.FXModule,
//		fx.Provide(func() logger.Config {
//			return logger.Config{
//				Level:         logger.Info,
//				ServiceName:   "schema-registry",
//				EnableTracing: true,
//			}
//		}),
//		// ... other modules
//	)
//	app.Run()
//
// # Configuration
//
// The logger can be configured via environment variables:
//
//	ZAP_LOGGER_LEVEL=debug          # Log level (debug, info, warning, error)
//	LOGGER_SERVICE_NAME=my-service  # Service name field on every entry
//	LOGGER_ENABLE_TRACING=true      # Enable distributed tracing integration
//
// # Tracing Integration
//
// When tracing is enabled the *WithContext methods extract the active
// span from the passed context and add trace_id and span_id fields to
// the entry. Contexts without a valid span log normally.
//
// # Thread Safety
//
// All methods are safe for concurrent use by multiple goroutines.
package logger
