// Package parser loads YAML documents into node trees and canonicalizes
// date scalars ahead of schema validation.
package parser

import (
	"os"
	"unicode/utf8"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"

	"github.com/confaudit/confaudit/internal/models"
)

// Load reads one YAML file and parses it into a document tree. It has no
// side effects beyond the read and never substitutes defaults: any failure
// is returned as a *LoadError carrying the original message.
func Load(path string) (*models.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Path: path, Kind: KindIO, Err: err}
	}

	if !utf8.Valid(data) {
		return nil, &LoadError{Path: path, Kind: KindEncoding, Err: errors.Newf("file %s is not valid UTF-8", path)}
	}

	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, &LoadError{Path: path, Kind: KindParse, Err: err}
	}

	return &models.Document{Path: path, Root: &root}, nil
}
