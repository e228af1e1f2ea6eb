package schema

import "testing"

func TestJSONSchemaCompile(t *testing.T) {
	text := `{
		"type": "object",
		"properties": {
			"name": {"type": "string"},
			"age": {"type": "integer"}
		},
		"required": ["name"]
	}`
	validated, err := NewValidatedSchema(FormatJSON, text)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	ast, ok := validated.AST().(*JSONSchema)
	if !ok {
		t.Fatalf("got AST type %T", validated.AST())
	}
	if ast.Compiled == nil {
		t.Fatal("compiled schema missing")
	}

	if err := ast.Compiled.Validate(map[string]any{"name": "ada"}); err != nil {
		t.Errorf("valid instance rejected: %v", err)
	}
	if err := ast.Compiled.Validate(map[string]any{}); err == nil {
		t.Error("instance missing required property accepted")
	}
}

func TestJSONSchemaMetaSchemaViolations(t *testing.T) {
	cases := []struct {
		name string
		text string
	}{
		{"type is not a valid type name", `{"type":"objectt"}`},
		{"required must be an array", `{"required":"name"}`},
		{"properties must be an object", `{"properties":["name"]}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewValidatedSchema(FormatJSON, tc.text)
			if err == nil {
				t.Fatal("strict parse accepted invalid schema")
			}
			if !IsInvalidSchema(err) {
				t.Fatalf("expected invalid schema error, got %v", err)
			}

			// This dialect has no laxness tier: relaxed parsing applies
			// the same validation.
			if _, err := NewParsedSchema(FormatJSON, tc.text); err == nil {
				t.Fatal("relaxed parse accepted invalid schema")
			}
		})
	}
}

func TestJSONSchemaBooleanSchemas(t *testing.T) {
	for _, text := range []string{`true`, `false`} {
		if _, err := NewValidatedSchema(FormatJSON, text); err != nil {
			t.Errorf("boolean schema %s rejected: %v", text, err)
		}
	}
}

func TestJSONSchemaCanonicalSorted(t *testing.T) {
	s, err := NewTypedSchema(FormatJSON, `{"type": "object", "additionalProperties": false}`)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	want := `{"additionalProperties":false,"type":"object"}`
	if s.String() != want {
		t.Errorf("got canonical %q, want %q", s.String(), want)
	}
}

func TestJSONSchemaRenderMatchesCanonical(t *testing.T) {
	adapter := jsonSchemaAdapter{}
	ast, canonical, err := adapter.parse(`{"type": "object", "title": "User"}`, false)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	rendered, err := adapter.render(ast)
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if rendered != canonical {
		t.Errorf("render produced %q, canonical is %q", rendered, canonical)
	}
}
