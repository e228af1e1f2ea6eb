package serde

import (
	"fmt"

	"google.golang.org/protobuf/proto"
)

// ProtobufSerializer encodes protobuf messages with the wire framing.
// Unlike the Avro and JSON serializers it does not inspect the schema;
// the generated message type already carries its descriptor, and the
// registry-side schema check happens at registration time.
type ProtobufSerializer struct {
	schemaID int
}

// NewProtobufSerializer builds a serializer stamping messages with the
// given registered schema ID.
func NewProtobufSerializer(schemaID int) *ProtobufSerializer {
	return &ProtobufSerializer{schemaID: schemaID}
}

// Serialize marshals the message and frames it.
func (s *ProtobufSerializer) Serialize(msg proto.Message) ([]byte, error) {
	buf := AppendWireHeader(make([]byte, 0, wireHeaderSize+proto.Size(msg)), s.schemaID)
	out, err := proto.MarshalOptions{}.MarshalAppend(buf, msg)
	if err != nil {
		return nil, fmt.Errorf("serde: protobuf encoding failed: %w", err)
	}
	return out, nil
}

// ProtobufDeserializer decodes wire-framed protobuf messages into a
// caller-provided message value.
type ProtobufDeserializer struct{}

// Deserialize unmarshals one wire-framed message into msg and returns
// the schema ID the writer stamped on it.
func (ProtobufDeserializer) Deserialize(data []byte, msg proto.Message) (int, error) {
	schemaID, payload, err := SplitWireMessage(data)
	if err != nil {
		return 0, err
	}
	if err := proto.Unmarshal(payload, msg); err != nil {
		return 0, fmt.Errorf("serde: protobuf decoding failed: %w", err)
	}
	return schemaID, nil
}
