package schema

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/linkedin/goavro/v2"
)

// avroPrimitives are the primitive type names of the Avro IDL.
var avroPrimitives = map[string]bool{
	"null":    true,
	"boolean": true,
	"int":     true,
	"long":    true,
	"float":   true,
	"double":  true,
	"bytes":   true,
	"string":  true,
}

// AvroSchema is the structural parse of an Avro definition. It mirrors
// the JSON document shape rather than a codec so that the relaxed tier
// can represent schemas whose names or enum symbols current SDKs would
// reject.
type AvroSchema struct {
	// Type is the Avro type: a primitive name, "record", "enum",
	// "array", "map", "fixed" or "union". References to previously
	// defined named types resolve to the defining node.
	Type string

	// Name is the full name of a named type (record, enum, fixed);
	// Namespace is its effective namespace.
	Name      string
	Namespace string

	Fields   []AvroField   // record
	Symbols  []string      // enum
	Items    *AvroSchema   // array
	Values   *AvroSchema   // map
	Size     int64         // fixed
	Branches []*AvroSchema // union

	// doc is the decoded document this node was parsed from, kept for
	// deterministic re-rendering.
	doc any
}

// AvroField is a single field of a record schema.
type AvroField struct {
	Name string
	Type *AvroSchema
}

// avroAdapter canonicalizes record schemas textually (decode, re-encode
// with sorted keys and compact separators) and parses the canonical
// document structurally.
//
// The relaxed tier uses the package's own lenient walker, which enforces
// structure (known types, required attributes, resolvable named
// references, unique symbols and fields) but tolerates the invalid
// names and enum symbols found in historical data. The strict tier
// additionally builds a goavro codec from the canonical text, adding
// full name and symbol validation. Everything goavro accepts the walker
// accepts too, so strict acceptance is a subset of relaxed acceptance.
type avroAdapter struct{}

func (avroAdapter) parse(text string, relaxed bool) (any, string, error) {
	doc, err := decodeDocument(text)
	if err != nil {
		return nil, "", err
	}
	canonical, err := encodeDocument(doc)
	if err != nil {
		return nil, "", err
	}
	ast, err := parseAvroDocument(doc)
	if err != nil {
		return nil, "", err
	}
	if !relaxed {
		if _, err := goavro.NewCodec(canonical); err != nil {
			return nil, "", err
		}
	}
	return ast, canonical, nil
}

func (avroAdapter) render(ast any) (string, error) {
	s, ok := ast.(*AvroSchema)
	if !ok {
		return "", fmt.Errorf("avro: unexpected AST type %T", ast)
	}
	return encodeDocument(s.doc)
}

func (avroAdapter) normalize(text string) (string, error) {
	doc, err := decodeDocument(text)
	if err != nil {
		return "", err
	}
	return encodeDocument(doc)
}

// parseAvroDocument runs the lenient structural walk over a decoded
// schema document.
func parseAvroDocument(doc any) (*AvroSchema, error) {
	p := &avroParser{names: make(map[string]*AvroSchema)}
	return p.parse(doc, "")
}

// avroParser tracks named type definitions during a walk. Named types
// are registered before their bodies are parsed so that recursive
// references resolve.
type avroParser struct {
	names map[string]*AvroSchema
}

func (p *avroParser) parse(doc any, namespace string) (*AvroSchema, error) {
	s, err := p.parseValue(doc, namespace)
	if err != nil {
		return nil, err
	}
	if s.doc == nil {
		s.doc = doc
	}
	return s, nil
}

func (p *avroParser) parseValue(doc any, namespace string) (*AvroSchema, error) {
	switch v := doc.(type) {
	case string:
		return p.resolveTypeName(v, namespace)
	case []any:
		return p.parseUnion(v, namespace)
	case map[string]any:
		return p.parseObject(v, namespace)
	default:
		return nil, fmt.Errorf("avro: schema must be a string, object or array, got %T", doc)
	}
}

func (p *avroParser) resolveTypeName(name, namespace string) (*AvroSchema, error) {
	if avroPrimitives[name] {
		return &AvroSchema{Type: name}, nil
	}
	if s, ok := p.lookup(name, namespace); ok {
		return s, nil
	}
	return nil, fmt.Errorf("avro: undefined type name %q", name)
}

func (p *avroParser) lookup(name, namespace string) (*AvroSchema, bool) {
	if s, ok := p.names[name]; ok {
		return s, true
	}
	if !strings.Contains(name, ".") && namespace != "" {
		s, ok := p.names[namespace+"."+name]
		return s, ok
	}
	return nil, false
}

func (p *avroParser) parseUnion(branches []any, namespace string) (*AvroSchema, error) {
	union := &AvroSchema{Type: "union"}
	for _, raw := range branches {
		branch, err := p.parse(raw, namespace)
		if err != nil {
			return nil, err
		}
		if branch.Type == "union" {
			return nil, fmt.Errorf("avro: unions may not immediately contain other unions")
		}
		union.Branches = append(union.Branches, branch)
	}
	return union, nil
}

func (p *avroParser) parseObject(obj map[string]any, namespace string) (*AvroSchema, error) {
	rawType, ok := obj["type"]
	if !ok {
		return nil, fmt.Errorf("avro: schema object is missing %q", "type")
	}

	switch t := rawType.(type) {
	case []any:
		return p.parseUnion(t, namespace)
	case map[string]any:
		// Nested schema object as the type, e.g. a field typed
		// {"type": {"type": "array", ...}}.
		return p.parse(t, namespace)
	case string:
		switch {
		case avroPrimitives[t]:
			return &AvroSchema{Type: t}, nil
		case t == "record" || t == "error":
			return p.parseRecord(obj, namespace)
		case t == "enum":
			return p.parseEnum(obj, namespace)
		case t == "fixed":
			return p.parseFixed(obj, namespace)
		case t == "array":
			items, ok := obj["items"]
			if !ok {
				return nil, fmt.Errorf("avro: array schema is missing %q", "items")
			}
			item, err := p.parse(items, namespace)
			if err != nil {
				return nil, err
			}
			return &AvroSchema{Type: "array", Items: item}, nil
		case t == "map":
			values, ok := obj["values"]
			if !ok {
				return nil, fmt.Errorf("avro: map schema is missing %q", "values")
			}
			value, err := p.parse(values, namespace)
			if err != nil {
				return nil, err
			}
			return &AvroSchema{Type: "map", Values: value}, nil
		default:
			return p.resolveTypeName(t, namespace)
		}
	default:
		return nil, fmt.Errorf("avro: %q must be a string, object or array, got %T", "type", rawType)
	}
}

// registerNamed records a named type under its full name before the body
// is parsed. Name well-formedness is deliberately not checked here; that
// is the strict tier's concern. Redefinition is always an error.
func (p *avroParser) registerNamed(obj map[string]any, kind, namespace string) (*AvroSchema, error) {
	name, ok := obj["name"].(string)
	if !ok || name == "" {
		return nil, fmt.Errorf("avro: %s schema requires a %q", kind, "name")
	}
	ns := namespace
	if v, ok := obj["namespace"].(string); ok {
		ns = v
	}
	full := name
	if !strings.Contains(name, ".") && ns != "" {
		full = ns + "." + name
	}
	if i := strings.LastIndex(full, "."); i >= 0 {
		ns = full[:i]
	}
	if _, exists := p.names[full]; exists {
		return nil, fmt.Errorf("avro: redefinition of named type %q", full)
	}
	s := &AvroSchema{Type: kind, Name: full, Namespace: ns}
	p.names[full] = s
	return s, nil
}

func (p *avroParser) parseRecord(obj map[string]any, namespace string) (*AvroSchema, error) {
	rec, err := p.registerNamed(obj, "record", namespace)
	if err != nil {
		return nil, err
	}
	rawFields, ok := obj["fields"].([]any)
	if !ok {
		return nil, fmt.Errorf("avro: record %q requires a %q array", rec.Name, "fields")
	}
	seen := make(map[string]bool, len(rawFields))
	for _, raw := range rawFields {
		fieldObj, ok := raw.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("avro: record %q has a non-object field", rec.Name)
		}
		fieldName, ok := fieldObj["name"].(string)
		if !ok || fieldName == "" {
			return nil, fmt.Errorf("avro: field of record %q requires a %q", rec.Name, "name")
		}
		if seen[fieldName] {
			return nil, fmt.Errorf("avro: record %q has duplicate field %q", rec.Name, fieldName)
		}
		seen[fieldName] = true
		fieldType, ok := fieldObj["type"]
		if !ok {
			return nil, fmt.Errorf("avro: field %q of record %q requires a %q", fieldName, rec.Name, "type")
		}
		parsed, err := p.parse(fieldType, rec.Namespace)
		if err != nil {
			return nil, err
		}
		rec.Fields = append(rec.Fields, AvroField{Name: fieldName, Type: parsed})
	}
	return rec, nil
}

func (p *avroParser) parseEnum(obj map[string]any, namespace string) (*AvroSchema, error) {
	enum, err := p.registerNamed(obj, "enum", namespace)
	if err != nil {
		return nil, err
	}
	rawSymbols, ok := obj["symbols"].([]any)
	if !ok {
		return nil, fmt.Errorf("avro: enum %q requires a %q array", enum.Name, "symbols")
	}
	seen := make(map[string]bool, len(rawSymbols))
	for _, raw := range rawSymbols {
		symbol, ok := raw.(string)
		if !ok {
			return nil, fmt.Errorf("avro: enum %q has a non-string symbol", enum.Name)
		}
		if seen[symbol] {
			return nil, fmt.Errorf("avro: enum %q has duplicate symbol %q", enum.Name, symbol)
		}
		seen[symbol] = true
		enum.Symbols = append(enum.Symbols, symbol)
	}
	return enum, nil
}

func (p *avroParser) parseFixed(obj map[string]any, namespace string) (*AvroSchema, error) {
	fixed, err := p.registerNamed(obj, "fixed", namespace)
	if err != nil {
		return nil, err
	}
	rawSize, ok := obj["size"].(json.Number)
	if !ok {
		return nil, fmt.Errorf("avro: fixed %q requires a numeric %q", fixed.Name, "size")
	}
	size, err := rawSize.Int64()
	if err != nil || size < 0 {
		return nil, fmt.Errorf("avro: fixed %q has invalid size %s", fixed.Name, rawSize)
	}
	fixed.Size = size
	return fixed, nil
}
