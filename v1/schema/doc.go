// Package schema provides the unified schema representation used by the
// registry: parsing raw schema text into a typed, validated in-memory
// form, producing a canonical string representation independent of the
// caller's formatting, and deriving a stable content fingerprint usable
// as a cache and deduplication key.
//
// Three schema formats are supported behind one error taxonomy:
//   - AVRO: Avro record schemas. Canonical form is the schema document
//     re-encoded as compact JSON with sorted keys.
//   - JSON: JSON Schema (Draft 7). Canonical form is the same sorted,
//     compact re-encoding.
//   - PROTOBUF: Protocol Buffers definitions. Canonical form is the
//     parser's own deterministic print of the parsed definition.
//
// # Schema Tiers
//
// Schemas exist in three tiers that encode their provenance:
//
//   - TypedSchema: format plus canonical text only. Built when the parse
//     result is not needed beyond normalization.
//   - ParsedTypedSchema: additionally holds the parsed AST, built under
//     relaxed validation. Reserved for schemas read back from durable
//     storage, where historical SDKs produced constructs (invalid Avro
//     names, malformed enum symbols) that current validation rejects.
//   - ValidatedTypedSchema: built under strict validation. The only tier
//     allowed for schemas received through the public submission path.
//
// The tier split is enforced by constructor choice, not by runtime
// checks: NewParsedSchema is the relaxed entry point for stored data,
// NewValidatedSchema the strict entry point for new submissions. Any
// text accepted strictly is also accepted relaxed.
//
// # Basic Usage
//
//	// Validate a newly submitted schema
//	validated, err := schema.NewValidatedSchema(schema.FormatAvro, `{
//	    "type": "record",
//	    "name": "User",
//	    "fields": [
//	        {"name": "name", "type": "string"},
//	        {"name": "age", "type": "int"}
//	    ]
//	}`)
//	if err != nil {
//	    // schema.IsInvalidSchema(err) == true for bad input
//	    return err
//	}
//
//	// Canonical text and content fingerprint
//	text := validated.String()             // sorted keys, no extra whitespace
//	digest := validated.Fingerprint()      // hex SHA-1 of the canonical text
//
//	// Load a schema that is already in the store
//	stored, err := schema.NewParsedSchema(schema.FormatAvro, historicalText)
//
// Two schemas constructed from differently formatted but equivalent text
// compare equal and share a fingerprint:
//
//	a, _ := schema.NewTypedSchema(schema.FormatAvro, `{"type":"string"}`)
//	b, _ := schema.NewTypedSchema(schema.FormatAvro, `{ "type" : "string" }`)
//	a.Equal(b)                             // true
//	a.Fingerprint() == b.Fingerprint()     // true
//
// # Error Handling
//
// All parser failures, regardless of which underlying parser produced
// them, surface as ErrInvalidSchema with the original cause preserved in
// the error chain:
//
//	if _, err := schema.NewValidatedSchema(schema.FormatJSON, text); err != nil {
//	    var inv *schema.InvalidSchemaError
//	    if errors.As(err, &inv) {
//	        log.Printf("rejected %s schema: %v", inv.Format, errors.Unwrap(inv))
//	    }
//	}
//
// ErrUnsupportedOperation marks operations a format does not provide
// (protobuf schemas have no ToDocument view). ErrUnknownFormat marks an
// unrecognized format reaching the dispatch; it is a programming error
// and must not be retried.
//
// # Concurrency
//
// All operations are pure and synchronous. Distinct goroutines may parse
// concurrently without coordination. The fingerprint cache is the only
// mutable field; it is published atomically and safe under concurrent
// first access.
package schema
