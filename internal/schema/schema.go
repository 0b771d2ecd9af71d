// Package schema declares document schemas as data and validates
// normalized document trees against them.
package schema

import (
	"os"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"
)

// Schema describes the expected shape of a document node. A schema is
// plain data: it can be loaded from a YAML file at startup, so swapping
// the document contract never touches validation code.
//
// An empty Type accepts any node. Known types: object, array, string,
// number, integer, boolean, null.
type Schema struct {
	Type       string             `yaml:"type"`
	Properties map[string]*Schema `yaml:"properties"`
	Required   []string           `yaml:"required"`
	Items      *Schema            `yaml:"items"`
}

// Load reads a schema from a YAML file.
func Load(path string) (*Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading schema %s", path)
	}
	var s Schema
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, errors.Wrapf(err, "parsing schema %s", path)
	}
	return &s, nil
}

// Default returns the built-in document schema: an object with a required
// string `name`, a required numeric `value`, an optional `tags` field, and
// an optional `metadata` object whose `date` is a string (dates are
// canonicalized to strings before validation). Unknown fields are
// permitted at every level.
//
// `tags` is intentionally left untyped: documents in the wild carry it as
// a scalar, and those are accepted and nulled during row extraction
// instead of being rejected here.
func Default() *Schema {
	return &Schema{
		Type: "object",
		Properties: map[string]*Schema{
			"name":  {Type: "string"},
			"value": {Type: "number"},
			"tags":  {},
			"metadata": {
				Type: "object",
				Properties: map[string]*Schema{
					"date": {Type: "string"},
				},
			},
		},
		Required: []string{"name", "value"},
	}
}
