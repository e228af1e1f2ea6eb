package schema

import (
	"fmt"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v6"
)

// jsonSchemaResource is the synthetic URL under which schema documents
// are registered with the compiler. Registry schemas are self-contained,
// so the URL never resolves outside the compiler.
const jsonSchemaResource = "registry:///schema.json"

// JSONSchema is the parse result for the JSON Schema format: the
// compiled validator together with the decoded document it was built
// from.
type JSONSchema struct {
	// Compiled validates instance documents against the schema.
	Compiled *jsonschema.Schema

	doc any
}

// jsonSchemaAdapter validates document-validation schemas against Draft 7
// and canonicalizes them as sorted, compact JSON.
//
// The relaxed flag is accepted for adapter symmetry but has no effect:
// this dialect has no historical laxness tier, so both tiers validate
// identically.
type jsonSchemaAdapter struct{}

func (jsonSchemaAdapter) parse(text string, relaxed bool) (any, string, error) {
	_ = relaxed

	doc, err := decodeDocument(text)
	if err != nil {
		return nil, "", err
	}
	canonical, err := encodeDocument(doc)
	if err != nil {
		return nil, "", err
	}
	compiled, err := compileJSONSchema(canonical)
	if err != nil {
		return nil, "", err
	}
	return &JSONSchema{Compiled: compiled, doc: doc}, canonical, nil
}

func (jsonSchemaAdapter) render(ast any) (string, error) {
	s, ok := ast.(*JSONSchema)
	if !ok {
		return "", fmt.Errorf("jsonschema: unexpected AST type %T", ast)
	}
	return encodeDocument(s.doc)
}

func (jsonSchemaAdapter) normalize(text string) (string, error) {
	doc, err := decodeDocument(text)
	if err != nil {
		return "", err
	}
	return encodeDocument(doc)
}

// compileJSONSchema compiles text with Draft 7 as the default dialect,
// the single dialect version this registry validates against.
func compileJSONSchema(text string) (*jsonschema.Schema, error) {
	doc, err := jsonschema.UnmarshalJSON(strings.NewReader(text))
	if err != nil {
		return nil, err
	}
	compiler := jsonschema.NewCompiler()
	compiler.DefaultDraft(jsonschema.Draft7)
	if err := compiler.AddResource(jsonSchemaResource, doc); err != nil {
		return nil, err
	}
	return compiler.Compile(jsonSchemaResource)
}
