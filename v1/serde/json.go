package serde

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/streamforge/schemacore/v1/schema"
)

// JSONSerializer encodes values as wire-framed JSON, validating each
// one against a fixed JSON Schema before it goes out.
type JSONSerializer struct {
	schemaID int
	compiled *jsonschema.Schema
}

// NewJSONSerializer builds a serializer for a JSON Schema already
// registered under the given ID.
func NewJSONSerializer(schemaID int, s *schema.ValidatedTypedSchema) (*JSONSerializer, error) {
	compiled, err := compiledFor(&s.ParsedTypedSchema)
	if err != nil {
		return nil, err
	}
	return &JSONSerializer{schemaID: schemaID, compiled: compiled}, nil
}

// Serialize marshals the value, validates it against the schema, and
// frames it. Values that do not conform are rejected before framing.
func (s *JSONSerializer) Serialize(value interface{}) ([]byte, error) {
	data, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("serde: json encoding failed: %w", err)
	}
	if err := validateJSON(s.compiled, data); err != nil {
		return nil, err
	}
	return append(AppendWireHeader(make([]byte, 0, wireHeaderSize+len(data)), s.schemaID), data...), nil
}

// JSONDeserializer decodes wire-framed JSON messages and validates them
// against their writer schema, resolved through the configured
// resolver. Compiled schemas are cached per schema ID.
type JSONDeserializer struct {
	resolve SchemaResolver

	mu       sync.RWMutex
	compiled map[int]*jsonschema.Schema
}

// NewJSONDeserializer builds a deserializer over a schema resolver.
func NewJSONDeserializer(resolve SchemaResolver) *JSONDeserializer {
	return &JSONDeserializer{
		resolve:  resolve,
		compiled: make(map[int]*jsonschema.Schema),
	}
}

// Deserialize validates and decodes one wire-framed message. The result
// uses the decoded JSON forms (map[string]interface{}, []interface{},
// json.Number, string, bool, nil).
func (d *JSONDeserializer) Deserialize(ctx context.Context, data []byte) (interface{}, error) {
	schemaID, payload, err := SplitWireMessage(data)
	if err != nil {
		return nil, err
	}

	compiled, err := d.compiledFor(ctx, schemaID)
	if err != nil {
		return nil, err
	}
	if err := validateJSON(compiled, payload); err != nil {
		return nil, err
	}

	decoder := json.NewDecoder(bytes.NewReader(payload))
	decoder.UseNumber()
	var value interface{}
	if err := decoder.Decode(&value); err != nil {
		return nil, fmt.Errorf("serde: json decoding failed: %w", err)
	}
	return value, nil
}

func (d *JSONDeserializer) compiledFor(ctx context.Context, schemaID int) (*jsonschema.Schema, error) {
	d.mu.RLock()
	compiled, ok := d.compiled[schemaID]
	d.mu.RUnlock()
	if ok {
		return compiled, nil
	}

	s, err := d.resolve(ctx, schemaID)
	if err != nil {
		return nil, fmt.Errorf("serde: resolving schema %d: %w", schemaID, err)
	}
	compiled, err = compiledFor(s)
	if err != nil {
		return nil, err
	}

	d.mu.Lock()
	d.compiled[schemaID] = compiled
	d.mu.Unlock()
	return compiled, nil
}

func compiledFor(s *schema.ParsedTypedSchema) (*jsonschema.Schema, error) {
	if s.Format() != schema.FormatJSON {
		return nil, fmt.Errorf("serde: json serde needs a JSON schema, got %s", s.Format())
	}
	ast, ok := s.AST().(*schema.JSONSchema)
	if !ok {
		return nil, fmt.Errorf("serde: unexpected AST type %T", s.AST())
	}
	return ast.Compiled, nil
}

// validateJSON validates raw JSON bytes against a compiled schema. The
// instance is decoded with the validator's own unmarshaler so numbers
// keep full precision.
func validateJSON(compiled *jsonschema.Schema, data []byte) error {
	instance, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("serde: json decoding failed: %w", err)
	}
	if err := compiled.Validate(instance); err != nil {
		return fmt.Errorf("serde: value does not conform to schema: %w", err)
	}
	return nil
}
