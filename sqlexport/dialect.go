package sqlexport

import (
	"fmt"
	"math"
	"strings"

	"github.com/goliatone/go-dataset/dataset"
)

// Dialect renders identifiers, placeholders and column types for one SQL
// engine.
type Dialect interface {
	Name() string
	QuoteIdentifier(name string) string
	// Placeholder renders the parameter marker at 1-based position i.
	Placeholder(i int) string
	// IntegerType returns the smallest integer type covering [min, max].
	IntegerType(min, max int64) (string, error)
	TextType(maxLen int) string
	NumericType(precision, scale int) string
	TimestampType() string
}

// MySQL is the default dialect.
type MySQL struct{}

func (MySQL) Name() string { return "mysql" }

func (MySQL) QuoteIdentifier(name string) string {
	return "`" + strings.ReplaceAll(name, "`", "``") + "`"
}

func (MySQL) Placeholder(int) string { return "?" }

// IntegerType walks the signed ladder ascending, first fit wins. MySQL adds
// a 3-byte MEDIUMINT tier between SMALLINT and INT.
func (MySQL) IntegerType(min, max int64) (string, error) {
	switch {
	case min >= math.MinInt8 && max <= math.MaxInt8:
		return "TINYINT", nil
	case min >= math.MinInt16 && max <= math.MaxInt16:
		return "SMALLINT", nil
	case min >= -1<<23 && max <= 1<<23-1:
		return "MEDIUMINT", nil
	case min >= math.MinInt32 && max <= math.MaxInt32:
		return "INT", nil
	default:
		return "BIGINT", nil
	}
}

func (MySQL) TextType(maxLen int) string {
	return fmt.Sprintf("VARCHAR(%d)", maxLen)
}

func (MySQL) NumericType(precision, scale int) string {
	return fmt.Sprintf("NUMERIC(%d,%d)", precision, scale)
}

func (MySQL) TimestampType() string { return "DATETIME" }

// Postgres quotes with double quotes and numbers its placeholders.
type Postgres struct{}

func (Postgres) Name() string { return "postgres" }

func (Postgres) QuoteIdentifier(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

func (Postgres) Placeholder(i int) string { return fmt.Sprintf("$%d", i) }

func (Postgres) IntegerType(min, max int64) (string, error) {
	switch {
	case min >= math.MinInt16 && max <= math.MaxInt16:
		return "SMALLINT", nil
	case min >= math.MinInt32 && max <= math.MaxInt32:
		return "INTEGER", nil
	default:
		return "BIGINT", nil
	}
}

func (Postgres) TextType(maxLen int) string {
	return fmt.Sprintf("VARCHAR(%d)", maxLen)
}

func (Postgres) NumericType(precision, scale int) string {
	return fmt.Sprintf("NUMERIC(%d,%d)", precision, scale)
}

func (Postgres) TimestampType() string { return "TIMESTAMP" }

// SQLServer quotes with brackets and uses named ordinal placeholders. Its
// TINYINT is unsigned, so the 1-byte tier only covers [0, 255].
type SQLServer struct{}

func (SQLServer) Name() string { return "sqlserver" }

func (SQLServer) QuoteIdentifier(name string) string {
	return "[" + strings.ReplaceAll(name, "]", "]]") + "]"
}

func (SQLServer) Placeholder(i int) string { return fmt.Sprintf("@p%d", i) }

func (SQLServer) IntegerType(min, max int64) (string, error) {
	switch {
	case min >= 0 && max <= math.MaxUint8:
		return "TINYINT", nil
	case min >= math.MinInt16 && max <= math.MaxInt16:
		return "SMALLINT", nil
	case min >= math.MinInt32 && max <= math.MaxInt32:
		return "INT", nil
	default:
		return "BIGINT", nil
	}
}

func (SQLServer) TextType(maxLen int) string {
	return fmt.Sprintf("VARCHAR(%d)", maxLen)
}

func (SQLServer) NumericType(precision, scale int) string {
	return fmt.Sprintf("NUMERIC(%d,%d)", precision, scale)
}

func (SQLServer) TimestampType() string { return "DATETIME2" }

// DialectByName resolves a dialect from its name.
func DialectByName(name string) (Dialect, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "mysql":
		return MySQL{}, nil
	case "postgres", "postgresql", "pgx":
		return Postgres{}, nil
	case "sqlserver", "mssql":
		return SQLServer{}, nil
	default:
		return nil, dataset.NewError(dataset.KindNotFound, fmt.Sprintf("dialect %q not registered", name), nil)
	}
}
