package report

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/confaudit/confaudit/internal/aggregate"
	"github.com/confaudit/confaudit/internal/config"
	"github.com/confaudit/confaudit/internal/models"
)

func newTestWriter(t *testing.T) (*Writer, string) {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, config.EnsureDirectories(dir))
	return NewWriter(dir), dir
}

func strp(s string) *string     { return &s }
func floatp(f float64) *float64 { return &f }

func TestWriteTable(t *testing.T) {
	w, dir := newTestWriter(t)

	rows := []models.Row{
		{File: "a.yaml", Name: strp("a"), Value: floatp(3), Tags: strp("x,y")},
		{File: "b.yaml", Name: strp("b"), Value: floatp(2.5), Date: strp("2026-01-15")},
	}
	require.NoError(t, w.WriteTable(rows))

	data, err := os.ReadFile(filepath.Join(dir, TableArtifact))
	require.NoError(t, err)

	want := "file,name,value,tags,date\n" +
		"a.yaml,a,3,\"x,y\",\n" +
		"b.yaml,b,2.5,,2026-01-15\n"
	assert.Equal(t, want, string(data))
}

func TestWriteSummary(t *testing.T) {
	w, dir := newTestWriter(t)

	stats := models.SummaryStatistics{
		FilesOK:     1,
		FilesFailed: 1,
		ValueCount:  1,
		ValueMean:   floatp(3),
		ValueMin:    floatp(3),
		ValueMax:    floatp(3),
		Errors: []models.ValidationError{
			{File: "bad.yaml", Message: "schema validation failed: $: missing required field \"value\""},
		},
	}

	summaryPath, err := w.WriteSummary(stats)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, SummaryArtifact), summaryPath)

	data, err := os.ReadFile(summaryPath)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))

	assert.EqualValues(t, 1, decoded["files_ok"])
	assert.EqualValues(t, 1, decoded["files_failed"])
	assert.EqualValues(t, 3, decoded["value_mean"])
	// The chart listing is a fixed contract, present even when charts were
	// skipped.
	assert.Len(t, decoded["plots"], 3)
	assert.Len(t, decoded["errors"], 1)
}

func TestWriteSummaryNullStats(t *testing.T) {
	w, _ := newTestWriter(t)

	summaryPath, err := w.WriteSummary(models.SummaryStatistics{
		Errors: []models.ValidationError{},
	})
	require.NoError(t, err)

	data, err := os.ReadFile(summaryPath)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Nil(t, decoded["value_mean"])
	assert.Nil(t, decoded["value_min"])
	assert.Nil(t, decoded["value_max"])
	// Empty error list serializes as [], not null.
	assert.NotNil(t, decoded["errors"])
}

func TestRowsArtifactRoundTrip(t *testing.T) {
	w, dir := newTestWriter(t)

	rows := []models.Row{
		{File: "a.yaml", Name: strp("a"), Value: floatp(1)},
		{File: "b.yaml"},
	}
	require.NoError(t, w.WriteRows(rows))

	got, err := ReadRows(dir)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "a.yaml", got[0].File)
	assert.Equal(t, "a", *got[0].Name)
	assert.Nil(t, got[1].Name)
}

func TestChartsSkipOnEmptyInput(t *testing.T) {
	w, dir := newTestWriter(t)

	require.NoError(t, w.RenderHistogram(nil))
	require.NoError(t, w.RenderMeansByName(nil))
	require.NoError(t, w.RenderValueSeries(nil))

	entries, err := os.ReadDir(filepath.Join(dir, config.PlotsDirName))
	require.NoError(t, err)
	assert.Empty(t, entries, "no chart files should be written for empty input")
}

func TestChartsRendered(t *testing.T) {
	w, dir := newTestWriter(t)

	require.NoError(t, w.RenderHistogram([]float64{1, 2, 2, 3, 5}))
	require.NoError(t, w.RenderMeansByName([]aggregate.GroupMean{
		{Name: "low", Mean: 1},
		{Name: "high", Mean: 4},
	}))

	day := 24 * time.Hour
	start := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)
	require.NoError(t, w.RenderValueSeries([]aggregate.TimePoint{
		{Date: start, Value: 1},
		{Date: start.Add(day), Value: 3},
	}))

	for _, name := range []string{HistogramChart, MeansChart, SeriesChart} {
		info, err := os.Stat(filepath.Join(dir, config.PlotsDirName, name))
		require.NoError(t, err, name)
		assert.Greater(t, info.Size(), int64(0), name)
	}
}
