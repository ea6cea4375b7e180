package sqlexport

import (
	"context"
	"database/sql"
	"math"

	"github.com/goliatone/go-dataset/dataset"
)

// RowSink receives sanitized rows during an export. Implementations may
// buffer; Flush must leave every written row submitted.
type RowSink interface {
	Write(ctx context.Context, row dataset.Row) error
	Flush(ctx context.Context) error
	Close() error
}

// stmtSink submits one prepared single-row insert per write.
type stmtSink struct {
	stmt *sql.Stmt
}

func newStmtSink(ctx context.Context, tx *sql.Tx, query string) (*stmtSink, error) {
	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return nil, dataset.NewError(dataset.KindInternal, "prepare insert failed", err)
	}
	return &stmtSink{stmt: stmt}, nil
}

func (s *stmtSink) Write(ctx context.Context, row dataset.Row) error {
	if _, err := s.stmt.ExecContext(ctx, row...); err != nil {
		return dataset.NewError(dataset.KindInternal, "insert failed", err)
	}
	return nil
}

func (s *stmtSink) Flush(context.Context) error { return nil }

func (s *stmtSink) Close() error { return s.stmt.Close() }

// batchSink groups rows into multi-row inserts. Row order and null handling
// match the single-row sink.
type batchSink struct {
	tx      *sql.Tx
	dialect Dialect
	table   string
	names   []string
	size    int
	pending []dataset.Row
}

func newBatchSink(tx *sql.Tx, d Dialect, table string, names []string, size int) *batchSink {
	return &batchSink{
		tx:      tx,
		dialect: d,
		table:   table,
		names:   names,
		size:    size,
		pending: make([]dataset.Row, 0, size),
	}
}

func (s *batchSink) Write(ctx context.Context, row dataset.Row) error {
	s.pending = append(s.pending, row)
	if len(s.pending) >= s.size {
		return s.Flush(ctx)
	}
	return nil
}

func (s *batchSink) Flush(ctx context.Context) error {
	if len(s.pending) == 0 {
		return nil
	}
	query := BuildBatchInsert(s.dialect, s.table, s.names, len(s.pending))
	args := make([]any, 0, len(s.pending)*len(s.names))
	for _, row := range s.pending {
		args = append(args, row...)
	}
	s.pending = s.pending[:0]
	if _, err := s.tx.ExecContext(ctx, query, args...); err != nil {
		return dataset.NewError(dataset.KindInternal, "batch insert failed", err)
	}
	return nil
}

func (s *batchSink) Close() error { return nil }

// sanitizeRow replaces NaN and infinite floats with SQL NULL.
func sanitizeRow(row dataset.Row) dataset.Row {
	for i, v := range row {
		f, ok := v.(float64)
		if ok && (math.IsNaN(f) || math.IsInf(f, 0)) {
			row[i] = nil
		}
	}
	return row
}
