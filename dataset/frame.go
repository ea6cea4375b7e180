package dataset

import (
	"context"
	"fmt"
	"io"
)

// Frame is an ordered collection of equally-sized named columns.
type Frame struct {
	columns []Column
	index   map[string]int
	rows    int
}

// New creates a frame from the given columns. Column names must be unique
// and every column must carry the same number of values.
func New(columns []Column) (*Frame, error) {
	if len(columns) == 0 {
		return nil, NewError(KindValidation, "frame requires at least one column", nil)
	}

	index := make(map[string]int, len(columns))
	rows := len(columns[0].Values)
	for i, col := range columns {
		if col.Name == "" {
			return nil, NewError(KindValidation, "column name is required", nil)
		}
		if _, exists := index[col.Name]; exists {
			return nil, NewError(KindValidation, fmt.Sprintf("duplicate column %q", col.Name), nil)
		}
		index[col.Name] = i
		if len(col.Values) != rows {
			return nil, NewError(KindValidation, fmt.Sprintf("column %q has %d values, want %d", col.Name, len(col.Values), rows), nil)
		}
		if col.Kind == "" {
			columns[i].Kind = KindString
		}
	}

	return &Frame{columns: columns, index: index, rows: rows}, nil
}

// Columns returns the frame columns in order.
func (f *Frame) Columns() []Column {
	return f.columns
}

// ColumnNames returns the column names in order.
func (f *Frame) ColumnNames() []string {
	names := make([]string, len(f.columns))
	for i, col := range f.columns {
		names[i] = col.Name
	}
	return names
}

// Column returns the named column.
func (f *Frame) Column(name string) (Column, error) {
	i, ok := f.index[name]
	if !ok {
		return Column{}, NewError(KindNotFound, fmt.Sprintf("column %q not found", name), nil)
	}
	return f.columns[i], nil
}

// NumRows returns the row count.
func (f *Frame) NumRows() int {
	return f.rows
}

// NumColumns returns the column count.
func (f *Frame) NumColumns() int {
	return len(f.columns)
}

// WithColumn returns a new frame with an extra column appended. The
// receiving frame is not modified.
func (f *Frame) WithColumn(col Column) (*Frame, error) {
	if len(col.Values) != f.rows {
		return nil, NewError(KindValidation, fmt.Sprintf("column %q has %d values, want %d", col.Name, len(col.Values), f.rows), nil)
	}
	columns := make([]Column, 0, len(f.columns)+1)
	columns = append(columns, f.columns...)
	columns = append(columns, col)
	return New(columns)
}

// RenameColumns returns a new frame with column names mapped through fn.
// Value slices are shared with the receiver.
func (f *Frame) RenameColumns(fn func(string) string) (*Frame, error) {
	columns := make([]Column, len(f.columns))
	copy(columns, f.columns)
	for i := range columns {
		columns[i].Name = fn(columns[i].Name)
	}
	return New(columns)
}

// Row returns the values at index i, column-aligned.
func (f *Frame) Row(i int) (Row, error) {
	if i < 0 || i >= f.rows {
		return nil, NewError(KindValidation, fmt.Sprintf("row index %d out of range", i), nil)
	}
	row := make(Row, len(f.columns))
	for c, col := range f.columns {
		row[c] = col.Values[i]
	}
	return row, nil
}

// Rows returns an iterator over the frame rows.
func (f *Frame) Rows() RowIterator {
	return &frameIterator{frame: f}
}

type frameIterator struct {
	frame *Frame
	next  int
}

func (it *frameIterator) Next(ctx context.Context) (Row, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if it.next >= it.frame.rows {
		return nil, io.EOF
	}
	row, err := it.frame.Row(it.next)
	if err != nil {
		return nil, err
	}
	it.next++
	return row, nil
}

func (it *frameIterator) Close() error { return nil }

// SliceIterator iterates a static row slice.
type SliceIterator struct {
	Rows  []Row
	index int
}

// Next returns the next row or io.EOF.
func (it *SliceIterator) Next(ctx context.Context) (Row, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if it.index >= len(it.Rows) {
		return nil, io.EOF
	}
	row := it.Rows[it.index]
	it.index++
	return row, nil
}

// Close implements RowIterator.
func (it *SliceIterator) Close() error { return nil }
