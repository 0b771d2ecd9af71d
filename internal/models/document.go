// Package models contains domain types for the confaudit reporting pipeline.
package models

import "gopkg.in/yaml.v3"

// Document is the parsed content tree of one input file. The tree is owned
// by the pipeline run that parsed it and is not mutated after normalization.
type Document struct {
	Path string
	Root *yaml.Node
}

// Body returns the top-level content node, unwrapping the document node
// yaml.v3 places at the root. Returns nil for an empty document.
func (d *Document) Body() *yaml.Node {
	if d == nil || d.Root == nil {
		return nil
	}
	n := d.Root
	for n.Kind == yaml.DocumentNode {
		if len(n.Content) == 0 {
			return nil
		}
		n = n.Content[0]
	}
	// An empty input leaves the root as the zero node: yaml.Unmarshal never
	// touches the out value when the buffer holds no document.
	if n.Kind == 0 {
		return nil
	}
	return n
}

// MappingValue returns the value node for key in a mapping node, or nil if
// the node is not a mapping or the key is absent.
func MappingValue(n *yaml.Node, key string) *yaml.Node {
	if n == nil || n.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(n.Content); i += 2 {
		if n.Content[i].Value == key {
			return n.Content[i+1]
		}
	}
	return nil
}

// IsNull reports whether a node is a YAML null scalar.
func IsNull(n *yaml.Node) bool {
	return n == nil || (n.Kind == yaml.ScalarNode && n.Tag == "!!null")
}
