package dataset

import (
	"context"
	"strings"
)

// Kind is the declared value kind of a column.
type Kind string

const (
	KindString Kind = "string"
	KindInt    Kind = "int"
	KindFloat  Kind = "float"
	KindTime   Kind = "time"
)

// ParseKind coerces kind values into known aliases with defaults applied.
func ParseKind(raw string) Kind {
	normalized := strings.ToLower(strings.TrimSpace(raw))
	switch normalized {
	case "", "string", "text", "varchar", "object":
		return KindString
	case "int", "integer", "int64", "int32", "int16", "int8", "bigint", "smallint", "tinyint":
		return KindInt
	case "float", "float64", "float32", "decimal", "number", "numeric", "double", "real":
		return KindFloat
	case "time", "date", "datetime", "timestamp", "timestamptz":
		return KindTime
	default:
		return Kind(normalized)
	}
}

// Column is a named, uniformly-kinded sequence of nullable values.
// Canonical value types are string, int64, float64 and time.Time; nil marks
// a missing value.
type Column struct {
	Name   string
	Kind   Kind
	Values []any
}

// Row is a column-aligned record.
type Row []any

// RowIterator streams rows.
type RowIterator interface {
	Next(ctx context.Context) (Row, error)
	Close() error
}

// Logger provides logging hooks.
type Logger interface {
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Errorf(format string, args ...any)
}

// NopLogger is a no-op logger.
type NopLogger struct{}

func (NopLogger) Debugf(string, ...any) {}
func (NopLogger) Infof(string, ...any)  {}
func (NopLogger) Errorf(string, ...any) {}
