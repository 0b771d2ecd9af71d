// Package collector drives the load, normalize, validate loop over a
// directory of documents, partitioning them into accepted rows and
// recorded errors.
package collector

import (
	"strconv"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/confaudit/confaudit/internal/logger"
	"github.com/confaudit/confaudit/internal/models"
	"github.com/confaudit/confaudit/internal/parser"
	"github.com/confaudit/confaudit/internal/schema"
)

// Result partitions a run's inputs. Every discovered file lands in exactly
// one of the two lists, so len(Rows)+len(Errors) equals the file count.
type Result struct {
	Rows   []models.Row
	Errors []models.ValidationError
}

// Collector processes discovered files one at a time, in order. A failure
// at any stage is recorded and the run moves on; nothing here aborts it.
type Collector struct {
	schema *schema.Schema
	log    *zap.SugaredLogger
}

// New creates a Collector validating against the given schema.
func New(s *schema.Schema) *Collector {
	return &Collector{schema: s, log: logger.Named("collector")}
}

// Collect runs the per-file pipeline over paths in the order given.
func (c *Collector) Collect(paths []string) *Result {
	res := &Result{
		Rows:   make([]models.Row, 0, len(paths)),
		Errors: make([]models.ValidationError, 0),
	}

	for _, path := range paths {
		doc, err := parser.Load(path)
		if err != nil {
			c.log.Debugw("document rejected", "file", path, "error", err)
			res.Errors = append(res.Errors, models.ValidationError{File: path, Message: err.Error()})
			continue
		}

		parser.Normalize(doc)

		if err := schema.Validate(doc, c.schema); err != nil {
			c.log.Debugw("document rejected", "file", path, "error", err)
			res.Errors = append(res.Errors, models.ValidationError{File: path, Message: err.Error()})
			continue
		}

		res.Rows = append(res.Rows, extractRow(path, doc))
		c.log.Debugw("document accepted", "file", path)
	}

	return res
}

// extractRow flattens an accepted document into a Row. Fields that are
// absent or not the expected shape become nil rather than failing: the
// document already passed validation, and row extraction is deliberately
// lenient about `tags`.
func extractRow(path string, doc *models.Document) models.Row {
	body := doc.Body()
	row := models.Row{File: path}

	if n := models.MappingValue(body, "name"); isString(n) {
		v := n.Value
		row.Name = &v
	}

	if n := models.MappingValue(body, "value"); n != nil && n.Kind == yaml.ScalarNode {
		switch n.Tag {
		case "!!int":
			if i, err := strconv.ParseInt(n.Value, 0, 64); err == nil {
				f := float64(i)
				row.Value = &f
			}
		case "!!float":
			if f, err := strconv.ParseFloat(n.Value, 64); err == nil {
				row.Value = &f
			}
		}
	}

	// A present sequence joins to a comma-separated string (empty sequence
	// included); a missing or non-sequence tags field is null.
	if n := models.MappingValue(body, "tags"); n != nil && n.Kind == yaml.SequenceNode {
		items := make([]string, 0, len(n.Content))
		ok := true
		for _, item := range n.Content {
			if item.Kind != yaml.ScalarNode {
				ok = false
				break
			}
			items = append(items, item.Value)
		}
		if ok {
			joined := strings.Join(items, ",")
			row.Tags = &joined
		}
	}

	if meta := models.MappingValue(body, "metadata"); meta != nil {
		if n := models.MappingValue(meta, "date"); isString(n) {
			v := n.Value
			row.Date = &v
		}
	}

	return row
}

func isString(n *yaml.Node) bool {
	return n != nil && n.Kind == yaml.ScalarNode && n.Tag == "!!str"
}
