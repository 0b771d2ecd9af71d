// Package aggregate computes run statistics over accepted rows using a
// temporary DuckDB-backed table.
package aggregate

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"fmt"
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"github.com/marcboeker/go-duckdb"
	"go.uber.org/zap"

	"github.com/confaudit/confaudit/internal/logger"
	"github.com/confaudit/confaudit/internal/models"
)

// Store holds a run's rows in a temp DuckDB file so summary queries run in
// SQL. The file is named by a fresh run ID and removed on Close.
type Store struct {
	db        *sql.DB
	dbPath    string
	batchSize int
	batch     []models.Row
	rowCount  int
	log       *zap.SugaredLogger
}

// NewStore creates the backing database under tempDir.
func NewStore(tempDir string, batchSize int) (*Store, error) {
	dbPath := filepath.Join(tempDir, fmt.Sprintf("confaudit_%s.duckdb", uuid.New().String()))

	connector, err := duckdb.NewConnector(dbPath, func(execer driver.ExecerContext) error {
		pragmas := []string{
			"PRAGMA memory_limit='512MB'",
			"PRAGMA threads=2",
			"PRAGMA enable_progress_bar=false",
		}
		for _, pragma := range pragmas {
			if _, err := execer.ExecContext(context.Background(), pragma, nil); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "creating DuckDB connector")
	}

	db := sql.OpenDB(connector)
	_, err = db.Exec(`
		CREATE TABLE entries (
			id    INTEGER NOT NULL,
			file  VARCHAR NOT NULL,
			name  VARCHAR,
			value DOUBLE,
			tags  VARCHAR,
			date  VARCHAR
		)
	`)
	if err != nil {
		db.Close()
		os.Remove(dbPath)
		return nil, errors.Wrap(err, "creating entries table")
	}

	return &Store{
		db:        db,
		dbPath:    dbPath,
		batchSize: batchSize,
		batch:     make([]models.Row, 0, batchSize),
		log:       logger.Named("aggregate"),
	}, nil
}

// AddAll appends rows in order and flushes the final partial batch.
func (s *Store) AddAll(rows []models.Row) error {
	for _, row := range rows {
		s.batch = append(s.batch, row)
		s.rowCount++
		if len(s.batch) >= s.batchSize {
			if err := s.flushBatch(); err != nil {
				return err
			}
		}
	}
	return s.flushBatch()
}

// Len returns the number of rows added so far.
func (s *Store) Len() int {
	return s.rowCount
}

// flushBatch writes the current batch using the native Appender API.
func (s *Store) flushBatch() error {
	if len(s.batch) == 0 {
		return nil
	}

	conn, err := s.db.Conn(context.Background())
	if err != nil {
		return errors.Wrap(err, "getting connection")
	}
	defer conn.Close()

	err = conn.Raw(func(driverConn interface{}) error {
		dConn, ok := driverConn.(*duckdb.Conn)
		if !ok {
			return errors.New("driver connection is not duckdb")
		}

		appender, err := duckdb.NewAppenderFromConn(dConn, "", "entries")
		if err != nil {
			return errors.Wrap(err, "creating appender")
		}
		defer appender.Close()

		baseID := s.rowCount - len(s.batch)
		for i, row := range s.batch {
			err := appender.AppendRow(
				int32(baseID+i),
				row.File,
				nullable(row.Name),
				nullable(row.Value),
				nullable(row.Tags),
				nullable(row.Date),
			)
			if err != nil {
				return errors.Wrapf(err, "appending row %d", baseID+i)
			}
		}
		return appender.Flush()
	})
	if err != nil {
		return err
	}

	s.log.Debugw("batch flushed", "rows", len(s.batch), "total", s.rowCount)
	s.batch = s.batch[:0]
	return nil
}

// Close releases the database and removes the backing file.
func (s *Store) Close() error {
	err := s.db.Close()
	if s.dbPath != "" {
		os.Remove(s.dbPath)
	}
	return err
}

func nullable[T any](p *T) driver.Value {
	if p == nil {
		return nil
	}
	return *p
}
