package schema

import (
	"crypto/sha1"
	"encoding/hex"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const avroUserSchema = `{"type":"record","name":"User","fields":[{"name":"name","type":"string"},{"name":"age","type":"int"}]}`

const protoUserSchema = "syntax = \"proto3\";\n\npackage users;\n\nmessage User {\n  string name = 1;\n  int32 age = 2;\n}\n"

func TestCanonicalTextIgnoresFormatting(t *testing.T) {
	a, err := NewTypedSchema(FormatAvro, `{"type":"string"}`)
	require.NoError(t, err)
	b, err := NewTypedSchema(FormatAvro, `{ "type" : "string" }`)
	require.NoError(t, err)

	assert.Equal(t, `{"type":"string"}`, a.String())
	assert.True(t, a.Equal(b))
	assert.Equal(t, a.Fingerprint(), b.Fingerprint())
}

func TestCanonicalTextSortsKeys(t *testing.T) {
	s, err := NewTypedSchema(FormatAvro, `{"name": "User", "type": "record", "fields": []}`)
	require.NoError(t, err)
	assert.Equal(t, `{"fields":[],"name":"User","type":"record"}`, s.String())
}

func TestCanonicalizationIdempotent(t *testing.T) {
	texts := map[Format]string{
		FormatAvro:     `{"type": "record", "name": "User", "fields": [{"name": "id", "type": "long"}]}`,
		FormatJSON:     `{"type": "object", "properties": {"id": {"type": "integer"}}}`,
		FormatProtobuf: protoUserSchema,
	}
	for format, text := range texts {
		first, err := NewTypedSchema(format, text)
		require.NoError(t, err, format)
		second, err := NewTypedSchema(format, first.String())
		require.NoError(t, err, format)
		assert.Equal(t, first.String(), second.String(), format)
	}
}

func TestFingerprintIsSHA1OfCanonicalText(t *testing.T) {
	s, err := NewValidatedSchema(FormatAvro, avroUserSchema)
	require.NoError(t, err)

	sum := sha1.Sum([]byte(s.String()))
	want := hex.EncodeToString(sum[:])
	assert.Equal(t, want, s.Fingerprint())
	assert.Equal(t, want, s.Fingerprint())
}

func TestFingerprintConcurrentFirstAccess(t *testing.T) {
	s, err := NewTypedSchema(FormatAvro, avroUserSchema)
	require.NoError(t, err)

	results := make([]string, 8)
	var wg sync.WaitGroup
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = s.Fingerprint()
		}(i)
	}
	wg.Wait()

	for _, digest := range results {
		assert.Equal(t, results[0], digest)
	}
}

func TestEqualAcrossTiers(t *testing.T) {
	validated, err := NewValidatedSchema(FormatAvro, avroUserSchema)
	require.NoError(t, err)
	parsed, err := NewParsedSchema(FormatAvro, avroUserSchema)
	require.NoError(t, err)
	plain, err := NewTypedSchema(FormatAvro, avroUserSchema)
	require.NoError(t, err)

	assert.True(t, validated.Equal(parsed.TypedSchema))
	assert.True(t, parsed.Equal(plain))
	assert.Equal(t, validated.Fingerprint(), plain.Fingerprint())
}

func TestEqualDistinguishesFormat(t *testing.T) {
	// {"type":"object"} is not a schema in both formats, so use a text
	// that only decodes: equality is defined over (format, canonical).
	a, err := NewTypedSchema(FormatAvro, `{"type":"string"}`)
	require.NoError(t, err)
	b, err := NewTypedSchema(FormatJSON, `{"type":"string"}`)
	require.NoError(t, err)

	assert.Equal(t, a.String(), b.String())
	assert.False(t, a.Equal(b))
}

func TestToDocument(t *testing.T) {
	s, err := NewTypedSchema(FormatAvro, avroUserSchema)
	require.NoError(t, err)

	doc, err := s.ToDocument()
	require.NoError(t, err)
	obj, ok := doc.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "record", obj["type"])
	assert.Equal(t, "User", obj["name"])
}

func TestToDocumentUnsupportedForProtobuf(t *testing.T) {
	s, err := NewTypedSchema(FormatProtobuf, protoUserSchema)
	require.NoError(t, err)

	_, err = s.ToDocument()
	require.Error(t, err)
	assert.True(t, IsUnsupportedOperation(err))
	assert.False(t, IsInvalidSchema(err))
}

func TestUnknownFormatIsNotInvalidSchema(t *testing.T) {
	_, err := NewParsedSchema(Format("THRIFT"), "struct Foo {}")
	require.Error(t, err)
	assert.True(t, IsUnknownFormat(err))
	assert.False(t, IsInvalidSchema(err))

	_, err = NewValidatedSchema(Format("THRIFT"), "struct Foo {}")
	assert.True(t, IsUnknownFormat(err))

	_, err = NewTypedSchema(Format(""), "{}")
	assert.True(t, IsUnknownFormat(err))
}

func TestParseFormat(t *testing.T) {
	for _, name := range []string{"AVRO", "JSON", "PROTOBUF"} {
		format, err := ParseFormat(name)
		require.NoError(t, err)
		assert.Equal(t, name, format.String())
	}

	_, err := ParseFormat("avro")
	assert.True(t, IsUnknownFormat(err))
}

func TestMalformedJSONWrapsDecodeFailure(t *testing.T) {
	for _, format := range []Format{FormatAvro, FormatJSON} {
		_, err := NewValidatedSchema(format, `{"type":`)
		require.Error(t, err, format)
		assert.True(t, IsInvalidSchema(err), format)

		var inv *InvalidSchemaError
		require.True(t, errors.As(err, &inv), format)
		assert.Equal(t, format, inv.Format)
		assert.Error(t, errors.Unwrap(inv), "underlying decode failure must be preserved")
	}
}

func TestStrictAcceptanceIsSubsetOfRelaxed(t *testing.T) {
	cases := []struct {
		format Format
		text   string
	}{
		{FormatAvro, `"string"`},
		{FormatAvro, avroUserSchema},
		{FormatAvro, `["null","string"]`},
		{FormatJSON, `{"type":"object"}`},
		{FormatJSON, `true`},
		{FormatProtobuf, protoUserSchema},
	}
	for _, tc := range cases {
		if _, err := NewValidatedSchema(tc.format, tc.text); err != nil {
			continue
		}
		_, err := NewParsedSchema(tc.format, tc.text)
		assert.NoError(t, err, "strictly accepted %s schema rejected by relaxed parse: %s", tc.format, tc.text)
	}
}

func TestWrongFormatFailsClosed(t *testing.T) {
	jsonSchemaText := `{"type":"object","properties":{"name":{"type":"string"}}}`

	cases := []struct {
		name   string
		format Format
		text   string
	}{
		{"json schema parsed as avro", FormatAvro, jsonSchemaText},
		{"avro parsed as json schema", FormatJSON, avroUserSchema},
		{"protobuf parsed as avro", FormatAvro, protoUserSchema},
		{"protobuf parsed as json schema", FormatJSON, protoUserSchema},
		{"avro parsed as protobuf", FormatProtobuf, avroUserSchema},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewValidatedSchema(tc.format, tc.text)
			require.Error(t, err)
			assert.True(t, IsInvalidSchema(err))
		})
	}
}

func TestSchemaVersionRecord(t *testing.T) {
	parsed, err := NewParsedSchema(FormatAvro, avroUserSchema)
	require.NoError(t, err)

	version := SchemaVersion{
		Subject:  "users-value",
		Version:  3,
		SchemaID: 7,
		Schema:   parsed.TypedSchema,
	}

	assert.False(t, version.Deleted)
	assert.True(t, version.Schema.Equal(parsed.TypedSchema))
	assert.Equal(t, parsed.Fingerprint(), version.Schema.Fingerprint())
}
