package schema

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"strings"
)

// decodeDocument parses text as a single generic JSON document. Numbers
// are kept as json.Number so that re-encoding preserves the original
// literal instead of a float round trip. Content after the first value
// (other than whitespace) is rejected.
func decodeDocument(text string) (any, error) {
	dec := json.NewDecoder(strings.NewReader(text))
	dec.UseNumber()
	var doc any
	if err := dec.Decode(&doc); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("trailing data after JSON document")
	}
	return doc, nil
}

// encodeDocument renders a decoded document deterministically: object
// keys sorted, compact separators, no HTML escaping. Structurally equal
// documents always encode to the same bytes, which canonical-text
// equality and fingerprinting rely on.
func encodeDocument(doc any) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(doc); err != nil {
		return "", err
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}
