package exportsqlite

import (
	"context"
	"fmt"
	"strings"

	"github.com/goliatone/go-dataset/dataset"
	"github.com/goliatone/go-dataset/sqlexport"
	_ "modernc.org/sqlite"
)

// Dialect renders SQLite identifiers, placeholders and type affinities.
type Dialect struct{}

func (Dialect) Name() string { return "sqlite" }

func (Dialect) QuoteIdentifier(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

func (Dialect) Placeholder(int) string { return "?" }

// IntegerType is INTEGER for every tier; SQLite stores integers adaptively.
func (Dialect) IntegerType(min, max int64) (string, error) {
	_ = min
	_ = max
	return "INTEGER", nil
}

func (Dialect) TextType(maxLen int) string {
	return fmt.Sprintf("VARCHAR(%d)", maxLen)
}

func (Dialect) NumericType(precision, scale int) string {
	_ = precision
	_ = scale
	return "REAL"
}

func (Dialect) TimestampType() string { return "TEXT" }

// ExportFile exports a frame into a SQLite database file, opening and
// closing the connection within the call. The exporter's DB and Dialect
// fields are overwritten.
func ExportFile(ctx context.Context, path string, f *dataset.Frame, table string, exporter sqlexport.Exporter) (sqlexport.Stats, error) {
	if path == "" {
		return sqlexport.Stats{}, dataset.NewError(dataset.KindValidation, "sqlite path is required", nil)
	}
	exporter.Dialect = Dialect{}
	return sqlexport.ExportTo(ctx, "sqlite", path, f, table, exporter)
}
