package serde

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/streamforge/schemacore/v1/schema"
)

const avroOrderSchema = `{"type":"record","name":"Order","fields":[{"name":"id","type":"string"},{"name":"amount","type":"long"}]}`

// staticResolver resolves every ID to one fixed schema and counts calls.
type staticResolver struct {
	schema *schema.ParsedTypedSchema
	calls  atomic.Int32
}

func (r *staticResolver) resolve(ctx context.Context, id int) (*schema.ParsedTypedSchema, error) {
	r.calls.Add(1)
	return r.schema, nil
}

func TestAvroSerdeRoundTrip(t *testing.T) {
	parsed, err := schema.NewParsedSchema(schema.FormatAvro, avroOrderSchema)
	require.NoError(t, err)

	ser, err := NewAvroSerializer(7, parsed)
	require.NoError(t, err)

	record := map[string]interface{}{"id": "o-123", "amount": int64(2500)}
	msg, err := ser.Serialize(record)
	require.NoError(t, err)

	id, _, err := SplitWireMessage(msg)
	require.NoError(t, err)
	assert.Equal(t, 7, id)

	resolver := &staticResolver{schema: parsed}
	de := NewAvroDeserializer(resolver.resolve)

	native, err := de.Deserialize(context.Background(), msg)
	require.NoError(t, err)
	assert.Equal(t, record, native)

	// Codec is cached after the first message.
	_, err = de.Deserialize(context.Background(), msg)
	require.NoError(t, err)
	assert.Equal(t, int32(1), resolver.calls.Load())
}

func TestAvroSerializerRejectsBadRecord(t *testing.T) {
	parsed, err := schema.NewParsedSchema(schema.FormatAvro, avroOrderSchema)
	require.NoError(t, err)
	ser, err := NewAvroSerializer(7, parsed)
	require.NoError(t, err)

	_, err = ser.Serialize(map[string]interface{}{"id": "o-123"})
	assert.Error(t, err, "record missing a field must not serialize")
}

func TestAvroSerializerRequiresAvro(t *testing.T) {
	parsed, err := schema.NewParsedSchema(schema.FormatJSON, `{"type":"object"}`)
	require.NoError(t, err)
	_, err = NewAvroSerializer(7, parsed)
	assert.Error(t, err)
}

func TestJSONSerdeRoundTrip(t *testing.T) {
	text := `{
		"type": "object",
		"properties": {"id": {"type": "string"}, "amount": {"type": "integer"}},
		"required": ["id"]
	}`
	validated, err := schema.NewValidatedSchema(schema.FormatJSON, text)
	require.NoError(t, err)

	ser, err := NewJSONSerializer(9, validated)
	require.NoError(t, err)

	msg, err := ser.Serialize(map[string]interface{}{"id": "o-123", "amount": 2500})
	require.NoError(t, err)

	resolver := &staticResolver{schema: &validated.ParsedTypedSchema}
	de := NewJSONDeserializer(resolver.resolve)

	value, err := de.Deserialize(context.Background(), msg)
	require.NoError(t, err)
	decoded, ok := value.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "o-123", decoded["id"])
}

func TestJSONSerializerRejectsNonConforming(t *testing.T) {
	text := `{"type": "object", "required": ["id"]}`
	validated, err := schema.NewValidatedSchema(schema.FormatJSON, text)
	require.NoError(t, err)

	ser, err := NewJSONSerializer(9, validated)
	require.NoError(t, err)

	_, err = ser.Serialize(map[string]interface{}{"amount": 1})
	assert.Error(t, err, "value missing a required property must not serialize")
}

func TestJSONDeserializerRejectsNonConforming(t *testing.T) {
	text := `{"type": "object", "properties": {"id": {"type": "string"}}}`
	validated, err := schema.NewValidatedSchema(schema.FormatJSON, text)
	require.NoError(t, err)

	resolver := &staticResolver{schema: &validated.ParsedTypedSchema}
	de := NewJSONDeserializer(resolver.resolve)

	msg := append(AppendWireHeader(nil, 9), []byte(`{"id":12}`)...)
	_, err = de.Deserialize(context.Background(), msg)
	assert.Error(t, err)
}

func TestProtobufSerdeRoundTrip(t *testing.T) {
	value, err := structpb.NewStruct(map[string]interface{}{
		"id":     "o-123",
		"amount": 2500,
	})
	require.NoError(t, err)

	ser := NewProtobufSerializer(11)
	msg, err := ser.Serialize(value)
	require.NoError(t, err)

	var decoded structpb.Struct
	id, err := ProtobufDeserializer{}.Deserialize(msg, &decoded)
	require.NoError(t, err)
	assert.Equal(t, 11, id)
	assert.True(t, proto.Equal(value, &decoded))
}

func TestProtobufDeserializeTruncated(t *testing.T) {
	var decoded structpb.Struct
	_, err := ProtobufDeserializer{}.Deserialize([]byte{magicByte, 0}, &decoded)
	assert.ErrorIs(t, err, ErrMessageTooShort)
}
