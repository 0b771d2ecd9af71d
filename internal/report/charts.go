package report

import (
	"path/filepath"

	"github.com/cockroachdb/errors"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/confaudit/confaudit/internal/aggregate"
	"github.com/confaudit/confaudit/internal/config"
)

const (
	chartWidth  = 6 * vg.Inch
	chartHeight = 4 * vg.Inch

	histogramBins = 16
)

// RenderHistogram draws the binned distribution of all non-null values.
// An empty input skips the chart silently.
func (w *Writer) RenderHistogram(values []float64) error {
	if len(values) == 0 {
		w.log.Debugw("skipping chart, no data", "chart", HistogramChart)
		return nil
	}

	p := plot.New()
	p.Title.Text = "Value distribution"
	p.X.Label.Text = "value"
	p.Y.Label.Text = "count"

	h, err := plotter.NewHist(plotter.Values(values), histogramBins)
	if err != nil {
		return errors.Wrap(err, "building histogram")
	}
	p.Add(h)

	return w.saveChart(p, HistogramChart)
}

// RenderMeansByName draws one bar per distinct name, already sorted
// ascending by mean.
func (w *Writer) RenderMeansByName(means []aggregate.GroupMean) error {
	if len(means) == 0 {
		w.log.Debugw("skipping chart, no data", "chart", MeansChart)
		return nil
	}

	values := make(plotter.Values, len(means))
	names := make([]string, len(means))
	for i, gm := range means {
		values[i] = gm.Mean
		names[i] = gm.Name
	}

	p := plot.New()
	p.Title.Text = "Mean value by name"
	p.Y.Label.Text = "mean value"

	bars, err := plotter.NewBarChart(values, vg.Points(24))
	if err != nil {
		return errors.Wrap(err, "building bar chart")
	}
	p.Add(bars)
	p.NominalX(names...)

	return w.saveChart(p, MeansChart)
}

// RenderValueSeries draws the date-ordered value line.
func (w *Writer) RenderValueSeries(series []aggregate.TimePoint) error {
	if len(series) == 0 {
		w.log.Debugw("skipping chart, no data", "chart", SeriesChart)
		return nil
	}

	pts := make(plotter.XYs, len(series))
	for i, tp := range series {
		pts[i].X = float64(tp.Date.Unix())
		pts[i].Y = tp.Value
	}

	p := plot.New()
	p.Title.Text = "Value over time"
	p.X.Label.Text = "date"
	p.Y.Label.Text = "value"
	p.X.Tick.Marker = plot.TimeTicks{Format: "2006-01-02"}

	line, err := plotter.NewLine(pts)
	if err != nil {
		return errors.Wrap(err, "building line chart")
	}
	p.Add(line)

	return w.saveChart(p, SeriesChart)
}

func (w *Writer) saveChart(p *plot.Plot, name string) error {
	out := filepath.Join(w.outputDir, config.PlotsDirName, name)
	if err := p.Save(chartWidth, chartHeight, out); err != nil {
		return errors.Wrapf(err, "saving chart %s", name)
	}
	w.log.Debugw("chart written", "chart", name)
	return nil
}
