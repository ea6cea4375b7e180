package sqlexport

import (
	"context"
	"database/sql"
	"io"

	"github.com/goliatone/go-dataset/dataset"
)

// Stats captures exporter output.
type Stats struct {
	Table string
	Rows  int64
}

// Exporter maps a frame's columns to SQL column declarations, creates the
// target table and loads all rows in one transaction.
type Exporter struct {
	DB        *sql.DB
	Dialect   Dialect
	Overrides TypeOverrides
	// BatchSize groups inserts into multi-row statements when above one.
	BatchSize int
	Logger    dataset.Logger
	Tracker   RunTracker
	// AdvanceEvery controls how often the tracker is advanced. Defaults to
	// every 1000 rows.
	AdvanceEvery int64
}

// Export infers the schema, issues CREATE TABLE and inserts every frame row.
// The export is all-or-nothing: any failure rolls the transaction back and
// surfaces the error; the single commit happens after the last row.
func (e *Exporter) Export(ctx context.Context, f *dataset.Frame, table string) (Stats, error) {
	if e == nil || e.DB == nil {
		return Stats{}, dataset.NewError(dataset.KindValidation, "exporter database is required", nil)
	}
	if f == nil {
		return Stats{}, dataset.NewError(dataset.KindValidation, "frame is required", nil)
	}
	if ctx == nil {
		ctx = context.Background()
	}

	dialect := e.Dialect
	if dialect == nil {
		dialect = MySQL{}
	}
	log := e.Logger
	if log == nil {
		log = dataset.NopLogger{}
	}

	table = SanitizeTableName(table, "")
	if table == "" {
		return Stats{}, dataset.NewError(dataset.KindValidation, "table name is required", nil)
	}

	log.Infof("checking column names for sql support")
	sanitized, err := f.RenameColumns(SanitizeColumnName)
	if err != nil {
		return Stats{}, err
	}

	log.Infof("identifying column types for %q", table)
	schemas, err := InferSchemas(sanitized, dialect, e.Overrides)
	if err != nil {
		return Stats{}, err
	}

	runID := e.trackStart(ctx, table, dialect)

	stats, err := e.load(ctx, sanitized, dialect, table, schemas, log, runID)
	if err != nil {
		e.trackFail(ctx, runID, err)
		log.Errorf("export of %q failed: %v", table, err)
		return stats, err
	}

	e.trackComplete(ctx, runID, stats.Rows)
	log.Infof("table %q exported, %d rows", table, stats.Rows)
	return stats, nil
}

func (e *Exporter) load(ctx context.Context, f *dataset.Frame, dialect Dialect, table string, schemas []ColumnSchema, log dataset.Logger, runID string) (Stats, error) {
	stats := Stats{Table: table}

	tx, err := e.DB.BeginTx(ctx, nil)
	if err != nil {
		return stats, dataset.NewError(dataset.KindInternal, "begin transaction failed", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	log.Infof("creating table %q", table)
	createSQL := BuildCreateTable(dialect, table, schemas)
	if _, err := tx.ExecContext(ctx, createSQL); err != nil {
		return stats, dataset.NewError(dataset.KindInternal, "create table failed", err)
	}

	names := make([]string, len(schemas))
	for i, schema := range schemas {
		names[i] = schema.Name
	}

	var sink RowSink
	if e.BatchSize > 1 {
		sink = newBatchSink(tx, dialect, table, names, e.BatchSize)
	} else {
		sink, err = newStmtSink(ctx, tx, BuildInsert(dialect, table, names))
		if err != nil {
			return stats, err
		}
	}

	log.Infof("inserting rows into %q", table)
	rows := f.Rows()
	defer rows.Close()

	advanceEvery := e.AdvanceEvery
	if advanceEvery <= 0 {
		advanceEvery = 1000
	}
	var sinceAdvance int64

	for {
		if err := ctx.Err(); err != nil {
			_ = sink.Close()
			return stats, err
		}

		row, err := rows.Next(ctx)
		if err != nil {
			if err == io.EOF {
				break
			}
			_ = sink.Close()
			return stats, err
		}

		if err := sink.Write(ctx, sanitizeRow(row)); err != nil {
			_ = sink.Close()
			return stats, err
		}
		stats.Rows++
		sinceAdvance++
		if sinceAdvance >= advanceEvery {
			if err := e.trackAdvance(ctx, runID, sinceAdvance); err != nil {
				_ = sink.Close()
				return stats, err
			}
			sinceAdvance = 0
		}
	}

	if err := sink.Flush(ctx); err != nil {
		_ = sink.Close()
		return stats, err
	}
	if err := sink.Close(); err != nil {
		return stats, dataset.NewError(dataset.KindInternal, "close sink failed", err)
	}
	if err := tx.Commit(); err != nil {
		return stats, dataset.NewError(dataset.KindInternal, "commit failed", err)
	}
	return stats, nil
}

func (e *Exporter) trackStart(ctx context.Context, table string, dialect Dialect) string {
	if e.Tracker == nil {
		return ""
	}
	id, err := e.Tracker.Start(ctx, RunRecord{Table: table, Dialect: dialect.Name(), State: StateRunning})
	if err != nil {
		return ""
	}
	return id
}

func (e *Exporter) trackAdvance(ctx context.Context, id string, rows int64) error {
	if e.Tracker == nil || id == "" {
		return nil
	}
	return e.Tracker.Advance(ctx, id, rows)
}

func (e *Exporter) trackComplete(ctx context.Context, id string, rows int64) {
	if e.Tracker == nil || id == "" {
		return
	}
	_ = e.Tracker.Complete(ctx, id, rows)
}

func (e *Exporter) trackFail(ctx context.Context, id string, err error) {
	if e.Tracker == nil || id == "" {
		return
	}
	_ = e.Tracker.Fail(ctx, id, err)
}

// ExportTo opens a connection for one export and releases it on every exit
// path.
func ExportTo(ctx context.Context, driverName, dsn string, f *dataset.Frame, table string, exporter Exporter) (Stats, error) {
	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return Stats{}, dataset.NewError(dataset.KindInternal, "open connection failed", err)
	}
	defer func() {
		_ = db.Close()
	}()

	exporter.DB = db
	return exporter.Export(ctx, f, table)
}
