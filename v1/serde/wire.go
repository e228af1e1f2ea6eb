package serde

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// Confluent wire format: a one-byte magic marker followed by the schema
// ID as a big-endian uint32, then the encoded payload.
const (
	magicByte      = 0x0
	wireHeaderSize = 5
)

var (
	// ErrMessageTooShort is returned when a message cannot hold a wire header.
	ErrMessageTooShort = errors.New("serde: message shorter than wire header")
)

// AppendWireHeader appends the wire header for the given schema ID to
// dst and returns the extended slice.
func AppendWireHeader(dst []byte, schemaID int) []byte {
	dst = append(dst, magicByte)
	return binary.BigEndian.AppendUint32(dst, uint32(schemaID))
}

// SplitWireMessage splits a message into its schema ID and payload.
// The payload aliases the input slice; it is not copied.
func SplitWireMessage(data []byte) (int, []byte, error) {
	if len(data) < wireHeaderSize {
		return 0, nil, ErrMessageTooShort
	}
	if data[0] != magicByte {
		return 0, nil, fmt.Errorf("serde: invalid magic byte: expected 0x%x, got 0x%x", magicByte, data[0])
	}
	schemaID := int(binary.BigEndian.Uint32(data[1:wireHeaderSize]))
	return schemaID, data[wireHeaderSize:], nil
}
