package registry

import (
	"context"

	"github.com/streamforge/schemacore/v1/schema"
)

// Registry provides an interface for interacting with a schema registry.
// It handles schema registration, retrieval, and caching for efficient
// serialization.
//
// Schemas flow through the client in typed form. Retrieval operations
// return relaxed-parsed schemas because stored schemas may predate
// current validation rules; registration and compatibility checks accept
// only strictly validated schemas, so invalid text is rejected before it
// leaves the process.
type Registry interface {
	// GetSchemaByID retrieves a schema by its registry ID.
	GetSchemaByID(ctx context.Context, id int) (*schema.ParsedTypedSchema, error)

	// GetLatestVersion retrieves the latest registered version under a subject.
	GetLatestVersion(ctx context.Context, subject string) (*Version, error)

	// RegisterSchema registers a validated schema under a subject and
	// returns its registry ID. Registering an already known schema is
	// idempotent and returns the existing ID.
	RegisterSchema(ctx context.Context, subject string, s *schema.ValidatedTypedSchema) (int, error)

	// CheckCompatibility checks a validated schema against the latest
	// version registered under the subject.
	CheckCompatibility(ctx context.Context, subject string, s *schema.ValidatedTypedSchema) (bool, error)
}

// Version describes one registered version of a subject.
type Version struct {
	// Subject the schema is registered under.
	Subject string

	// Version number within the subject, starting at 1.
	Version int

	// ID is the registry-wide schema ID.
	ID int

	// Schema is the stored schema, parsed under relaxed validation.
	Schema *schema.ParsedTypedSchema
}

// Record converts the version into the storage record form.
func (v *Version) Record() schema.SchemaVersion {
	return schema.SchemaVersion{
		Subject:  v.Subject,
		Version:  v.Version,
		SchemaID: v.ID,
		Schema:   v.Schema.TypedSchema,
	}
}
