package schema

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/confaudit/confaudit/internal/models"
)

// SchemaError reports the first schema violation found in a document.
type SchemaError struct {
	Message string
}

func (e *SchemaError) Error() string {
	return "schema validation failed: " + e.Message
}

// Validate checks a normalized document against the schema. It returns nil
// on success or a *SchemaError describing the first violation.
func Validate(doc *models.Document, s *Schema) error {
	body := doc.Body()
	if body == nil {
		return &SchemaError{Message: "document is empty"}
	}
	return validateNode(body, s, "$")
}

func validateNode(n *yaml.Node, s *Schema, path string) error {
	if s == nil {
		return nil
	}

	// Resolve aliases so anchors validate like their targets.
	for n.Kind == yaml.AliasNode && n.Alias != nil {
		n = n.Alias
	}

	if s.Type != "" && !typeMatches(n, s.Type) {
		return &SchemaError{Message: fmt.Sprintf("%s: expected %s, got %s", path, s.Type, nodeType(n))}
	}

	switch n.Kind {
	case yaml.MappingNode:
		for _, req := range s.Required {
			if models.MappingValue(n, req) == nil {
				return &SchemaError{Message: fmt.Sprintf("%s: missing required field %q", path, req)}
			}
		}
		// Walk keys in document order so the first violation is
		// deterministic. Unknown keys pass through.
		for i := 0; i+1 < len(n.Content); i += 2 {
			key, value := n.Content[i].Value, n.Content[i+1]
			prop, ok := s.Properties[key]
			if !ok {
				continue
			}
			if err := validateNode(value, prop, path+"."+key); err != nil {
				return err
			}
		}
	case yaml.SequenceNode:
		if s.Items == nil {
			return nil
		}
		for i, item := range n.Content {
			if err := validateNode(item, s.Items, fmt.Sprintf("%s[%d]", path, i)); err != nil {
				return err
			}
		}
	}

	return nil
}

func typeMatches(n *yaml.Node, want string) bool {
	got := nodeType(n)
	if want == "number" && got == "integer" {
		return true
	}
	return got == want
}

// nodeType maps a YAML node to its schema type name.
func nodeType(n *yaml.Node) string {
	switch n.Kind {
	case yaml.MappingNode:
		return "object"
	case yaml.SequenceNode:
		return "array"
	case yaml.ScalarNode:
		switch n.Tag {
		case "!!str":
			return "string"
		case "!!int":
			return "integer"
		case "!!float":
			return "number"
		case "!!bool":
			return "boolean"
		case "!!null":
			return "null"
		}
	}
	return "unknown"
}
