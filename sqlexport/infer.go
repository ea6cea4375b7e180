package sqlexport

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/goliatone/go-dataset/dataset"
)

// ColumnSchema is the inferred SQL shape of one column.
type ColumnSchema struct {
	Name     string
	SQLType  string
	Nullable bool
}

// TypeOverrides maps sanitized column names to SQL types that bypass
// inference entirely.
type TypeOverrides map[string]string

// InferColumn derives a SQL column type from a column's declared kind and
// its observed non-null values. Columns whose values do not all match the
// declared kind fall back to text over their string conversions. A column
// with no non-null values infers as nullable text of width one.
func InferColumn(col dataset.Column, d Dialect) (ColumnSchema, error) {
	if d == nil {
		return ColumnSchema{}, dataset.NewError(dataset.KindValidation, "dialect is required", nil)
	}
	if col.Name == "" {
		return ColumnSchema{}, dataset.NewError(dataset.KindValidation, "column name is required", nil)
	}

	switch col.Kind {
	case dataset.KindInt:
		if sqlType, ok := inferInteger(col.Values, d); ok {
			return ColumnSchema{Name: col.Name, SQLType: sqlType, Nullable: true}, nil
		}
	case dataset.KindFloat:
		if sqlType, ok := inferNumeric(col.Values, d); ok {
			return ColumnSchema{Name: col.Name, SQLType: sqlType, Nullable: true}, nil
		}
	case dataset.KindTime:
		if allOfKind(col.Values, dataset.KindTime) {
			return ColumnSchema{Name: col.Name, SQLType: d.TimestampType(), Nullable: true}, nil
		}
	}

	// Text path doubles as the widest fallback for mixed columns.
	return ColumnSchema{Name: col.Name, SQLType: inferText(col.Values, d), Nullable: true}, nil
}

// InferSchemas derives a schema per frame column, honoring overrides.
func InferSchemas(f *dataset.Frame, d Dialect, overrides TypeOverrides) ([]ColumnSchema, error) {
	if f == nil {
		return nil, dataset.NewError(dataset.KindValidation, "frame is required", nil)
	}

	schemas := make([]ColumnSchema, 0, f.NumColumns())
	for _, col := range f.Columns() {
		if sqlType, ok := overrides[col.Name]; ok {
			schemas = append(schemas, ColumnSchema{Name: col.Name, SQLType: sqlType, Nullable: true})
			continue
		}
		schema, err := InferColumn(col, d)
		if err != nil {
			return nil, err
		}
		schemas = append(schemas, schema)
	}
	return schemas, nil
}

func inferInteger(values []any, d Dialect) (string, bool) {
	min, max := int64(math.MaxInt64), int64(math.MinInt64)
	seen := false
	for _, v := range values {
		if v == nil {
			continue
		}
		n, ok := v.(int64)
		if !ok {
			return "", false
		}
		seen = true
		if n < min {
			min = n
		}
		if n > max {
			max = n
		}
	}
	if !seen {
		return "", false
	}
	sqlType, err := d.IntegerType(min, max)
	if err != nil {
		return "", false
	}
	return sqlType, true
}

func inferNumeric(values []any, d Dialect) (string, bool) {
	intDigits, scale := 0, 0
	seen := false
	for _, v := range values {
		if v == nil {
			continue
		}
		n, ok := v.(float64)
		if !ok {
			return "", false
		}
		if math.IsNaN(n) || math.IsInf(n, 0) {
			continue
		}
		seen = true
		whole, frac := decimalDigits(n)
		if whole > intDigits {
			intDigits = whole
		}
		if frac > scale {
			scale = frac
		}
	}
	if !seen {
		return "", false
	}
	return d.NumericType(intDigits+scale, scale), true
}

// decimalDigits counts integral and fractional digits of the shortest
// round-trip decimal form, sign excluded.
func decimalDigits(v float64) (whole, frac int) {
	s := strconv.FormatFloat(math.Abs(v), 'f', -1, 64)
	if dot := strings.IndexByte(s, '.'); dot >= 0 {
		return dot, len(s) - dot - 1
	}
	return len(s), 0
}

func inferText(values []any, d Dialect) string {
	maxLen := 0
	for _, v := range values {
		if v == nil {
			continue
		}
		if n := len(stringify(v)); n > maxLen {
			maxLen = n
		}
	}
	if maxLen == 0 {
		// Entirely-null column; VARCHAR(0) is rejected by some engines.
		maxLen = 1
	}
	return d.TextType(maxLen)
}

func allOfKind(values []any, kind dataset.Kind) bool {
	for _, v := range values {
		if v == nil {
			continue
		}
		switch kind {
		case dataset.KindTime:
			if _, ok := v.(time.Time); !ok {
				return false
			}
		}
	}
	return true
}

func stringify(v any) string {
	switch value := v.(type) {
	case string:
		return value
	case int64:
		return strconv.FormatInt(value, 10)
	case float64:
		return strconv.FormatFloat(value, 'f', -1, 64)
	case time.Time:
		return value.Format(time.RFC3339)
	default:
		return fmt.Sprint(v)
	}
}
