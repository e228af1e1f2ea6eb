package serde

import (
	"context"
	"fmt"
	"sync"

	"github.com/linkedin/goavro/v2"

	"github.com/streamforge/schemacore/v1/schema"
)

// SchemaResolver resolves a schema ID to its stored schema. The
// registry client's GetSchemaByID satisfies this signature.
type SchemaResolver func(ctx context.Context, id int) (*schema.ParsedTypedSchema, error)

// AvroSerializer encodes native Go values into wire-framed Avro binary
// under one fixed schema. Create one serializer per registered schema
// and reuse it; codec construction is the expensive part.
type AvroSerializer struct {
	schemaID int
	codec    *goavro.Codec
}

// NewAvroSerializer builds a serializer for a schema already registered
// under the given ID.
func NewAvroSerializer(schemaID int, s *schema.ParsedTypedSchema) (*AvroSerializer, error) {
	if s.Format() != schema.FormatAvro {
		return nil, fmt.Errorf("serde: avro serializer needs an AVRO schema, got %s", s.Format())
	}
	codec, err := goavro.NewCodec(s.String())
	if err != nil {
		return nil, fmt.Errorf("serde: building avro codec: %w", err)
	}
	return &AvroSerializer{schemaID: schemaID, codec: codec}, nil
}

// Serialize encodes a native value (map[string]interface{} for records)
// into a wire-framed message.
func (s *AvroSerializer) Serialize(native interface{}) ([]byte, error) {
	buf := AppendWireHeader(make([]byte, 0, wireHeaderSize), s.schemaID)
	out, err := s.codec.BinaryFromNative(buf, native)
	if err != nil {
		return nil, fmt.Errorf("serde: avro encoding failed: %w", err)
	}
	return out, nil
}

// AvroDeserializer decodes wire-framed Avro messages, resolving the
// writer schema through the configured resolver. Codecs are cached per
// schema ID.
type AvroDeserializer struct {
	resolve SchemaResolver

	mu     sync.RWMutex
	codecs map[int]*goavro.Codec
}

// NewAvroDeserializer builds a deserializer over a schema resolver.
func NewAvroDeserializer(resolve SchemaResolver) *AvroDeserializer {
	return &AvroDeserializer{
		resolve: resolve,
		codecs:  make(map[int]*goavro.Codec),
	}
}

// Deserialize decodes one wire-framed message into goavro's native form.
func (d *AvroDeserializer) Deserialize(ctx context.Context, data []byte) (interface{}, error) {
	schemaID, payload, err := SplitWireMessage(data)
	if err != nil {
		return nil, err
	}

	codec, err := d.codecFor(ctx, schemaID)
	if err != nil {
		return nil, err
	}

	native, rest, err := codec.NativeFromBinary(payload)
	if err != nil {
		return nil, fmt.Errorf("serde: avro decoding failed: %w", err)
	}
	if len(rest) != 0 {
		return nil, fmt.Errorf("serde: %d trailing bytes after avro payload", len(rest))
	}
	return native, nil
}

func (d *AvroDeserializer) codecFor(ctx context.Context, schemaID int) (*goavro.Codec, error) {
	d.mu.RLock()
	codec, ok := d.codecs[schemaID]
	d.mu.RUnlock()
	if ok {
		return codec, nil
	}

	s, err := d.resolve(ctx, schemaID)
	if err != nil {
		return nil, fmt.Errorf("serde: resolving schema %d: %w", schemaID, err)
	}
	if s.Format() != schema.FormatAvro {
		return nil, fmt.Errorf("serde: schema %d is %s, not AVRO", schemaID, s.Format())
	}
	codec, err = goavro.NewCodec(s.String())
	if err != nil {
		return nil, fmt.Errorf("serde: building avro codec for schema %d: %w", schemaID, err)
	}

	d.mu.Lock()
	d.codecs[schemaID] = codec
	d.mu.Unlock()
	return codec, nil
}
