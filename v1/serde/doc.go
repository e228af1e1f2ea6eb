// Package serde implements the registry wire format and per-format
// serializers for message payloads.
//
// Every message starts with a five-byte header: a zero magic byte
// followed by the registered schema ID as a big-endian uint32. The
// payload encoding after the header depends on the schema format:
// Avro binary, raw JSON, or protobuf binary.
//
// # Producing
//
// Serializers are built once per schema and reused:
//
//	id, err := client.RegisterSchema(ctx, "orders-value", validated)
//	if err != nil {
//		return err
//	}
//	ser, err := serde.NewAvroSerializer(id, &validated.ParsedTypedSchema)
//	if err != nil {
//		return err
//	}
//	msg, err := ser.Serialize(map[string]interface{}{"id": "o-123"})
//
// # Consuming
//
// Deserializers resolve writer schemas through a SchemaResolver, which
// the registry client's GetSchemaByID satisfies directly:
//
//	de := serde.NewAvroDeserializer(client.GetSchemaByID)
//	native, err := de.Deserialize(ctx, msg)
//
// Resolved schemas and their codecs are cached per schema ID, so steady
// state consumption does not touch the registry.
//
// # Thread Safety
//
// Serializers and deserializers are safe for concurrent use.
package serde
