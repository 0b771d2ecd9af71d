package aggregate

import (
	"context"
	"database/sql"
	"sort"
	"time"

	"github.com/cockroachdb/errors"
)

// ValueStats are the numeric summary fields, computed over rows whose
// value is non-null. Mean/min/max stay nil when that subset is empty.
type ValueStats struct {
	Count int
	Mean  *float64
	Min   *float64
	Max   *float64
}

// GroupMean is the mean value for one distinct name.
type GroupMean struct {
	Name string
	Mean float64
}

// TimePoint is one (date, value) pair of the value-over-time series.
type TimePoint struct {
	Date  time.Time
	Value float64
}

// The date column holds canonical strings; the series re-parses them
// strictly and drops anything that is not a plain calendar date.
const seriesDateLayout = "2006-01-02"

// Summarize computes the numeric summary over all stored rows.
func (s *Store) Summarize(ctx context.Context) (ValueStats, error) {
	var (
		stats          ValueStats
		mean, min, max sql.NullFloat64
	)
	row := s.db.QueryRowContext(ctx,
		`SELECT COUNT(value), AVG(value), MIN(value), MAX(value) FROM entries`)
	if err := row.Scan(&stats.Count, &mean, &min, &max); err != nil {
		return ValueStats{}, errors.Wrap(err, "querying value stats")
	}
	if mean.Valid {
		stats.Mean = &mean.Float64
	}
	if min.Valid {
		stats.Min = &min.Float64
	}
	if max.Valid {
		stats.Max = &max.Float64
	}
	return stats, nil
}

// MeansByName returns the mean value per distinct name, ascending by mean.
// Rows with a null name or null value contribute nothing.
func (s *Store) MeansByName(ctx context.Context) ([]GroupMean, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT name, AVG(value) AS mean
		FROM entries
		WHERE name IS NOT NULL AND value IS NOT NULL
		GROUP BY name
		ORDER BY mean ASC, name ASC
	`)
	if err != nil {
		return nil, errors.Wrap(err, "querying means by name")
	}
	defer rows.Close()

	var means []GroupMean
	for rows.Next() {
		var gm GroupMean
		if err := rows.Scan(&gm.Name, &gm.Mean); err != nil {
			return nil, errors.Wrap(err, "scanning group mean")
		}
		means = append(means, gm)
	}
	return means, rows.Err()
}

// ValueSeries returns the date-ordered (date, value) pairs for rows with
// both fields present. Dates failing the strict re-parse are dropped.
func (s *Store) ValueSeries(ctx context.Context) ([]TimePoint, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT date, value
		FROM entries
		WHERE date IS NOT NULL AND value IS NOT NULL
		ORDER BY id
	`)
	if err != nil {
		return nil, errors.Wrap(err, "querying value series")
	}
	defer rows.Close()

	var series []TimePoint
	for rows.Next() {
		var (
			date  string
			value float64
		)
		if err := rows.Scan(&date, &value); err != nil {
			return nil, errors.Wrap(err, "scanning series point")
		}
		t, err := time.Parse(seriesDateLayout, date)
		if err != nil {
			s.log.Debugw("dropping series point with unparseable date", "date", date)
			continue
		}
		series = append(series, TimePoint{Date: t, Value: value})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	sort.SliceStable(series, func(i, j int) bool {
		return series[i].Date.Before(series[j].Date)
	})
	return series, nil
}

// Values returns all non-null values in insertion order, for the
// distribution chart.
func (s *Store) Values(ctx context.Context) ([]float64, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT value FROM entries WHERE value IS NOT NULL ORDER BY id`)
	if err != nil {
		return nil, errors.Wrap(err, "querying values")
	}
	defer rows.Close()

	var values []float64
	for rows.Next() {
		var v float64
		if err := rows.Scan(&v); err != nil {
			return nil, errors.Wrap(err, "scanning value")
		}
		values = append(values, v)
	}
	return values, rows.Err()
}
