// Package registry provides a client for Confluent-compatible schema
// registries that works in typed schemas instead of raw strings.
//
// The client wraps the registry's HTTP API (subjects, versions, schema
// IDs, compatibility checks) and converts between wire payloads and the
// schema package's typed forms at the boundary:
//
//   - Reads (GetSchemaByID, GetLatestVersion) return relaxed-parsed
//     schemas. Stored schemas may predate current validation rules, so
//     a read must never fail on text the registry already accepted.
//   - Writes (RegisterSchema, CheckCompatibility) accept only strictly
//     validated schemas. Invalid text is rejected locally before any
//     request is made.
//
// # Basic Usage
//
//	client, err := registry.NewClient(registry.Config{
//		URL: "http://localhost:8081",
//	})
//	if err != nil {
//		return err
//	}
//
//	// Register a schema
//	validated, err := schema.NewValidatedSchema(schema.FormatAvro, schemaText)
//	if err != nil {
//		return err
//	}
//	id, err := client.RegisterSchema(ctx, "orders-value", validated)
//
//	// Resolve a schema ID from a consumed message
//	stored, err := client.GetSchemaByID(ctx, id)
//
// # Caching
//
// Registry IDs are immutable, so schemas fetched by ID are cached for
// the lifetime of the client and concurrent fetches of the same ID are
// collapsed into a single request. Registered IDs are cached by subject
// and schema fingerprint, which makes RegisterSchema cheap to call on
// every produce path.
//
// # Errors
//
// Missing subjects, versions, and IDs surface as ErrNotFound; check
// with registry.IsNotFound. Other unexpected registry responses surface
// as *StatusError with the response body preserved. Parse failures on
// stored schemas pass through the schema package's error taxonomy.
//
// # Observability
//
// Every operation runs inside an OpenTelemetry span. Pass a
// prometheus.Registerer (directly via WithObserver and NewObserver, or
// through the FX module) to export request counts and latencies.
//
// # FX Module Integration
//
//	app := fx.New(
//	    registry.FXModule,
//	    fx.Provide(func() registry.Config {
//	        return registry.Config{
//	            URL:     os.Getenv("SCHEMA_REGISTRY_URL"),
//	            Timeout: 30 * time.Second,
//	        }
//	    }),
//	)
//
// # Thread Safety
//
// The client is safe for concurrent use by multiple goroutines.
package registry
