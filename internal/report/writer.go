// Package report persists the tabular view, the run summary, and the
// derived charts under the output directory.
package report

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path"
	"path/filepath"
	"strconv"

	"github.com/cockroachdb/errors"
	"github.com/vmihailenco/msgpack/v5"
	"go.uber.org/zap"

	"github.com/confaudit/confaudit/internal/config"
	"github.com/confaudit/confaudit/internal/logger"
	"github.com/confaudit/confaudit/internal/models"
)

// Artifact names under the output directory.
const (
	TableArtifact   = "summary.csv"
	SummaryArtifact = "summary.json"
	RowsArtifact    = "rows.msgpack"

	HistogramChart = "value_histogram.png"
	MeansChart     = "mean_value_by_name.png"
	SeriesChart    = "value_over_time.png"
)

// PlotPaths lists the conventional chart locations relative to the output
// directory. The summary artifact carries this list unconditionally, even
// when some charts were skipped.
func PlotPaths() []string {
	return []string{
		path.Join(config.PlotsDirName, HistogramChart),
		path.Join(config.PlotsDirName, MeansChart),
		path.Join(config.PlotsDirName, SeriesChart),
	}
}

// Summary is the structured summary artifact: the run statistics plus the
// fixed chart listing.
type Summary struct {
	models.SummaryStatistics
	Plots []string `json:"plots"`
}

// Writer persists run artifacts under one output directory.
type Writer struct {
	outputDir string
	log       *zap.SugaredLogger
}

// NewWriter creates a Writer. The output directory must already exist.
func NewWriter(outputDir string) *Writer {
	return &Writer{outputDir: outputDir, log: logger.Named("report")}
}

// WriteTable writes summary.csv with one row per accepted document, in
// discovery order. Nil fields become empty cells.
func (w *Writer) WriteTable(rows []models.Row) error {
	f, err := os.Create(filepath.Join(w.outputDir, TableArtifact))
	if err != nil {
		return errors.Wrap(err, "creating table artifact")
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	if err := cw.Write(models.TableColumns); err != nil {
		return errors.Wrap(err, "writing table header")
	}
	for _, row := range rows {
		record := []string{
			row.File,
			strOrEmpty(row.Name),
			floatOrEmpty(row.Value),
			strOrEmpty(row.Tags),
			strOrEmpty(row.Date),
		}
		if err := cw.Write(record); err != nil {
			return errors.Wrap(err, "writing table row")
		}
	}
	cw.Flush()
	return errors.Wrap(cw.Error(), "flushing table artifact")
}

// WriteSummary writes summary.json.
func (w *Writer) WriteSummary(stats models.SummaryStatistics) (string, error) {
	summary := Summary{SummaryStatistics: stats, Plots: PlotPaths()}
	data, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return "", errors.Wrap(err, "marshaling summary")
	}
	summaryPath := filepath.Join(w.outputDir, SummaryArtifact)
	if err := os.WriteFile(summaryPath, append(data, '\n'), 0o644); err != nil {
		return "", errors.Wrap(err, "writing summary artifact")
	}
	return summaryPath, nil
}

// WriteRows writes the compact machine-readable row dump.
func (w *Writer) WriteRows(rows []models.Row) error {
	data, err := msgpack.Marshal(rows)
	if err != nil {
		return errors.Wrap(err, "encoding rows")
	}
	return errors.Wrap(
		os.WriteFile(filepath.Join(w.outputDir, RowsArtifact), data, 0o644),
		"writing rows artifact")
}

// ReadRows loads a row dump written by WriteRows.
func ReadRows(outputDir string) ([]models.Row, error) {
	data, err := os.ReadFile(filepath.Join(outputDir, RowsArtifact))
	if err != nil {
		return nil, errors.Wrap(err, "reading rows artifact")
	}
	var rows []models.Row
	if err := msgpack.Unmarshal(data, &rows); err != nil {
		return nil, errors.Wrap(err, "decoding rows artifact")
	}
	return rows, nil
}

func strOrEmpty(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func floatOrEmpty(p *float64) string {
	if p == nil {
		return ""
	}
	return strconv.FormatFloat(*p, 'g', -1, 64)
}
