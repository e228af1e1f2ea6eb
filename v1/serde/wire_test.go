package serde

import (
	"bytes"
	"errors"
	"testing"
)

func TestWireHeaderRoundTrip(t *testing.T) {
	payload := []byte("payload")
	msg := append(AppendWireHeader(nil, 42), payload...)

	if len(msg) != wireHeaderSize+len(payload) {
		t.Fatalf("got message length %d", len(msg))
	}
	if msg[0] != magicByte {
		t.Fatalf("got leading byte 0x%x", msg[0])
	}

	id, rest, err := SplitWireMessage(msg)
	if err != nil {
		t.Fatalf("split failed: %v", err)
	}
	if id != 42 {
		t.Errorf("got schema ID %d", id)
	}
	if !bytes.Equal(rest, payload) {
		t.Errorf("got payload %q", rest)
	}
}

func TestWireHeaderLargeID(t *testing.T) {
	msg := AppendWireHeader(nil, 1<<31-1)
	id, rest, err := SplitWireMessage(msg)
	if err != nil {
		t.Fatalf("split failed: %v", err)
	}
	if id != 1<<31-1 {
		t.Errorf("got schema ID %d", id)
	}
	if len(rest) != 0 {
		t.Errorf("got %d payload bytes for header-only message", len(rest))
	}
}

func TestSplitWireMessageTooShort(t *testing.T) {
	for _, data := range [][]byte{nil, {}, {magicByte}, {magicByte, 0, 0, 1}} {
		_, _, err := SplitWireMessage(data)
		if !errors.Is(err, ErrMessageTooShort) {
			t.Errorf("input %v: got error %v", data, err)
		}
	}
}

func TestSplitWireMessageBadMagic(t *testing.T) {
	_, _, err := SplitWireMessage([]byte{0x1, 0, 0, 0, 7})
	if err == nil {
		t.Fatal("expected bad magic byte to be rejected")
	}
	if errors.Is(err, ErrMessageTooShort) {
		t.Fatalf("got wrong error: %v", err)
	}
}
