package schema

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/confaudit/confaudit/internal/models"
)

func docFrom(t *testing.T, src string) *models.Document {
	t.Helper()
	var root yaml.Node
	if err := yaml.Unmarshal([]byte(src), &root); err != nil {
		t.Fatalf("Failed to parse test document: %v", err)
	}
	return &models.Document{Path: "test.yaml", Root: &root}
}

func TestValidateDefaultSchema(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		wantErr string
	}{
		{
			name: "valid document",
			doc:  "name: a\nvalue: 3\ntags: [x, y]\n",
		},
		{
			name:    "missing required value",
			doc:     "name: a\n",
			wantErr: `missing required field "value"`,
		},
		{
			name:    "missing required name",
			doc:     "value: 3\n",
			wantErr: `missing required field "name"`,
		},
		{
			name:    "name wrong type",
			doc:     "name: 12\nvalue: 3\n",
			wantErr: "$.name: expected string, got integer",
		},
		{
			name:    "value wrong type",
			doc:     "name: a\nvalue: not-a-number\n",
			wantErr: "$.value: expected number, got string",
		},
		{
			name: "float value accepted",
			doc:  "name: a\nvalue: 3.5\n",
		},
		{
			name: "scalar tags tolerated",
			doc:  "name: a\nvalue: 3\ntags: solo\n",
		},
		{
			name: "unknown fields permitted",
			doc:  "name: a\nvalue: 3\nextra: {nested: true}\n",
		},
		{
			name: "metadata date as string",
			doc:  "name: a\nvalue: 3\nmetadata: {date: \"2026-01-15\"}\n",
		},
		{
			name:    "metadata wrong type",
			doc:     "name: a\nvalue: 3\nmetadata: flat\n",
			wantErr: "$.metadata: expected object, got string",
		},
		{
			name:    "top level not an object",
			doc:     "- 1\n- 2\n",
			wantErr: "expected object, got array",
		},
		{
			name:    "empty document",
			doc:     "",
			wantErr: "document is empty",
		},
	}

	s := Default()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(docFrom(t, tt.doc), s)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Expected success, got %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("Expected error containing %q, got nil", tt.wantErr)
			}
			if _, ok := err.(*SchemaError); !ok {
				t.Fatalf("Expected *SchemaError, got %T", err)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Expected error containing %q, got %q", tt.wantErr, err.Error())
			}
		})
	}
}

func TestValidateArrayItems(t *testing.T) {
	s := &Schema{
		Type: "object",
		Properties: map[string]*Schema{
			"tags": {Type: "array", Items: &Schema{Type: "string"}},
		},
	}

	if err := Validate(docFrom(t, "tags: [a, b]\n"), s); err != nil {
		t.Errorf("Expected success, got %v", err)
	}

	err := Validate(docFrom(t, "tags: [a, 2]\n"), s)
	if err == nil || !strings.Contains(err.Error(), "$.tags[1]") {
		t.Errorf("Expected item violation at $.tags[1], got %v", err)
	}
}

func TestLoadSchemaFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "schema.yaml")
	content := `
type: object
required: [id]
properties:
  id:
    type: string
  count:
    type: integer
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write schema: %v", err)
	}

	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	// The substituted schema drives validation without code changes.
	if err := Validate(docFrom(t, "id: x\ncount: 2\n"), s); err != nil {
		t.Errorf("Expected success, got %v", err)
	}
	if err := Validate(docFrom(t, "count: 2\n"), s); err == nil {
		t.Error("Expected missing required field error")
	}
	if err := Validate(docFrom(t, "id: x\ncount: 2.5\n"), s); err == nil {
		t.Error("Expected integer type violation")
	}
}
