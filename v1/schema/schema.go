package schema

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"sync/atomic"
)

// Format identifies the definition language of a schema. The value is
// the wire name used by registry APIs.
type Format string

// Supported schema formats
const (
	// FormatAvro is the Avro record schema IDL (JSON based).
	FormatAvro Format = "AVRO"

	// FormatJSON is the JSON Schema document-validation dialect.
	FormatJSON Format = "JSON"

	// FormatProtobuf is the Protocol Buffers interface definition
	// language.
	FormatProtobuf Format = "PROTOBUF"
)

func (f Format) String() string { return string(f) }

// ParseFormat maps a registry wire name onto a Format. Unrecognized
// names fail with ErrUnknownFormat.
func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case FormatAvro, FormatJSON, FormatProtobuf:
		return f, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// formatAdapter wraps one third-party parser behind a uniform contract.
// Implementations report failures in their own error types; parseSchema
// translates everything into InvalidSchemaError at the boundary.
type formatAdapter interface {
	// parse validates text at the requested strictness and returns the
	// format-specific AST together with the canonical text.
	parse(text string, relaxed bool) (ast any, canonical string, err error)

	// render produces the canonical text of a previously parsed AST.
	// Deterministic: equal ASTs render to equal bytes.
	render(ast any) (string, error)

	// normalize computes the canonical text without keeping an AST.
	normalize(text string) (string, error)
}

func adapterFor(format Format) (formatAdapter, error) {
	switch format {
	case FormatAvro:
		return avroAdapter{}, nil
	case FormatJSON:
		return jsonSchemaAdapter{}, nil
	case FormatProtobuf:
		return protobufAdapter{}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
}

// TypedSchema couples a schema's declared format with its canonical
// text. The canonical text is always the normalized form, never the raw
// input: JSON based formats are re-encoded with sorted keys and compact
// separators, protobuf is re-printed by its own parser.
//
// Two TypedSchema values are equal iff their formats and canonical texts
// match. The fingerprint is derived from those two and cached.
type TypedSchema struct {
	format    Format
	canonical string

	// fingerprint is computed at most once and published atomically.
	// Concurrent first reads may both compute the digest; the value is
	// identical either way, so the race is harmless.
	fingerprint atomic.Pointer[string]
}

// NewTypedSchema normalizes raw into the canonical form for the given
// format. The intermediate parse result is discarded; only the canonical
// text is kept. Normalization failure aborts construction with
// ErrInvalidSchema.
func NewTypedSchema(format Format, raw string) (*TypedSchema, error) {
	adapter, err := adapterFor(format)
	if err != nil {
		return nil, err
	}
	canonical, err := adapter.normalize(raw)
	if err != nil {
		return nil, invalidSchema(format, err)
	}
	return &TypedSchema{format: format, canonical: canonical}, nil
}

// Format returns the schema's declared format.
func (s *TypedSchema) Format() Format { return s.format }

// String returns the canonical text of the schema.
func (s *TypedSchema) String() string { return s.canonical }

// Fingerprint returns the hex SHA-1 digest of the canonical text's UTF-8
// bytes. The digest is memoized: deduplication lookups hash large
// schemas at most once per instance.
func (s *TypedSchema) Fingerprint() string {
	if cached := s.fingerprint.Load(); cached != nil {
		return *cached
	}
	sum := sha1.Sum([]byte(s.canonical))
	digest := hex.EncodeToString(sum[:])
	s.fingerprint.Store(&digest)
	return digest
}

// ToDocument returns the schema as a generic decoded JSON document.
// Protobuf schemas have no document view; requesting one fails with
// ErrUnsupportedOperation without attempting a decode.
func (s *TypedSchema) ToDocument() (any, error) {
	if s.format == FormatProtobuf {
		return nil, fmt.Errorf("%w: %s schemas have no document view", ErrUnsupportedOperation, s.format)
	}
	return decodeDocument(s.canonical)
}

// Equal reports whether other denotes the same schema: same format and
// byte-identical canonical text.
func (s *TypedSchema) Equal(other *TypedSchema) bool {
	if s == nil || other == nil {
		return s == other
	}
	return s.format == other.format && s.canonical == other.canonical
}

// ParsedTypedSchema is a schema parsed under relaxed validation. It is
// meant for schemas read back from durable storage: historical producers
// were accepted with constructs (invalid Avro names, malformed enum
// symbols) that strict validation now rejects, and that history must
// remain loadable.
//
// Relaxed parsing is not a syntax bypass: the text must still be a
// structurally valid schema. Never build a ParsedTypedSchema from a
// fresh submission; new input goes through NewValidatedSchema.
type ParsedTypedSchema struct {
	*TypedSchema

	ast any
}

// AST returns the format-specific parse result: *AvroSchema for Avro,
// *JSONSchema for JSON Schema, *desc.FileDescriptor for protobuf.
func (s *ParsedTypedSchema) AST() any { return s.ast }

// ValidatedTypedSchema is a schema parsed under strict validation. It is
// the only tier allowed for schemas arriving through the public
// submission path.
type ValidatedTypedSchema struct {
	ParsedTypedSchema
}

// NewParsedSchema parses text under relaxed validation. Use only for
// schemas that were already accepted and durably stored.
func NewParsedSchema(format Format, text string) (*ParsedTypedSchema, error) {
	return parseSchema(format, text, false)
}

// NewValidatedSchema parses text under strict validation. This is the
// required entry point for newly submitted schemas.
func NewValidatedSchema(format Format, text string) (*ValidatedTypedSchema, error) {
	parsed, err := parseSchema(format, text, true)
	if err != nil {
		return nil, err
	}
	return &ValidatedTypedSchema{ParsedTypedSchema: *parsed}, nil
}

// parseSchema is the single dispatch point from raw text to a schema
// tier. Unknown formats fail with ErrUnknownFormat, never with
// InvalidSchemaError; any failure inside an adapter is translated so
// that parser-internal error types do not escape this boundary.
func parseSchema(format Format, text string, strict bool) (*ParsedTypedSchema, error) {
	adapter, err := adapterFor(format)
	if err != nil {
		return nil, err
	}
	ast, canonical, err := adapter.parse(text, !strict)
	if err != nil {
		return nil, invalidSchema(format, err)
	}
	return &ParsedTypedSchema{
		TypedSchema: &TypedSchema{format: format, canonical: canonical},
		ast:         ast,
	}, nil
}

// SchemaVersion is the unit the storage layer persists and reads back:
// one version in a subject's schema history. It is a plain immutable
// value record. Whether Schema came from the relaxed or strict tier
// reflects how the version entered the system; SchemaVersion itself does
// not enforce either.
type SchemaVersion struct {
	Subject  string
	Version  int
	Deleted  bool
	SchemaID int
	Schema   *TypedSchema
}
