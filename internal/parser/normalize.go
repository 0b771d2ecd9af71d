package parser

import (
	"time"

	"gopkg.in/yaml.v3"

	"github.com/confaudit/confaudit/internal/models"
)

const timestampTag = "!!timestamp"

// The unquoted scalar layouts the YAML resolver recognizes as timestamps.
// The last one is a pure calendar date.
var timestampLayouts = []string{
	"2006-1-2T15:4:5.999999999Z07:00",
	"2006-1-2t15:4:5.999999999Z07:00",
	"2006-1-2 15:4:5.999999999",
	"2006-1-2",
}

const dateOnlyLayout = "2006-1-2"

// Normalize rewrites every date or datetime scalar in the document to its
// canonical ISO-8601 string form: YYYY-MM-DD for dates, RFC 3339 for
// datetimes. Mapping and sequence structure is untouched, plain strings
// pass through, and the rewrite happens before validation so downstream
// code only ever sees strings. Quoted date-like scalars are already
// strings and arrive here canonical or not at all.
func Normalize(doc *models.Document) *models.Document {
	if doc != nil && doc.Root != nil {
		normalizeNode(doc.Root)
	}
	return doc
}

func normalizeNode(n *yaml.Node) {
	switch n.Kind {
	case yaml.DocumentNode, yaml.MappingNode, yaml.SequenceNode:
		for _, child := range n.Content {
			normalizeNode(child)
		}
	case yaml.ScalarNode:
		if n.Tag != timestampTag {
			return
		}
		if canonical, ok := canonicalTimestamp(n.Value); ok {
			n.Value = canonical
			n.Style = yaml.DoubleQuotedStyle
		}
		n.Tag = "!!str"
	}
}

// canonicalTimestamp parses a scalar the resolver tagged as a timestamp
// and returns its canonical textual form.
func canonicalTimestamp(value string) (string, bool) {
	for _, layout := range timestampLayouts {
		t, err := time.Parse(layout, value)
		if err != nil {
			continue
		}
		if layout == dateOnlyLayout {
			return t.Format("2006-01-02"), true
		}
		return t.Format(time.RFC3339Nano), true
	}
	return "", false
}
