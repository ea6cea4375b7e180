package dataset

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// ReadSQL executes a query and collects the full result set into a frame.
// Column kinds are inferred from the scanned values; null database values
// become null cells.
func ReadSQL(ctx context.Context, db *sql.DB, query string, args ...any) (*Frame, error) {
	if db == nil {
		return nil, NewError(KindValidation, "database handle is required", nil)
	}
	if query == "" {
		return nil, NewError(KindValidation, "query is required", nil)
	}

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, NewError(KindInternal, "query failed", err)
	}
	defer rows.Close()

	names, err := rows.Columns()
	if err != nil {
		return nil, NewError(KindInternal, "read query columns failed", err)
	}

	values := make([][]any, len(names))
	scan := make([]any, len(names))
	for i := range scan {
		scan[i] = new(any)
	}
	for rows.Next() {
		if err := rows.Scan(scan...); err != nil {
			return nil, NewError(KindInternal, "scan query row failed", err)
		}
		for i := range scan {
			values[i] = append(values[i], canonicalValue(*scan[i].(*any)))
		}
	}
	if err := rows.Err(); err != nil {
		return nil, NewError(KindFromError(err), "read query rows failed", err)
	}

	columns := make([]Column, len(names))
	for i, name := range names {
		columns[i] = Column{Name: name, Kind: scannedKind(values[i]), Values: values[i]}
	}
	return New(columns)
}

// canonicalValue normalizes driver values to the frame's canonical types.
func canonicalValue(v any) any {
	switch value := v.(type) {
	case nil:
		return nil
	case []byte:
		return string(value)
	case int64, float64, string, time.Time:
		return value
	case int:
		return int64(value)
	case bool:
		if value {
			return int64(1)
		}
		return int64(0)
	default:
		return fmt.Sprintf("%v", value)
	}
}

// scannedKind infers a column kind from canonical values. Integer columns
// widen to float when mixed with floats; anything else degrades to string.
func scannedKind(values []any) Kind {
	kind := Kind("")
	for _, v := range values {
		if v == nil {
			continue
		}
		var next Kind
		switch v.(type) {
		case int64:
			next = KindInt
		case float64:
			next = KindFloat
		case time.Time:
			next = KindTime
		default:
			next = KindString
		}
		switch {
		case kind == "":
			kind = next
		case kind == next:
		case kind == KindInt && next == KindFloat, kind == KindFloat && next == KindInt:
			kind = KindFloat
		default:
			return KindString
		}
	}
	if kind == "" {
		return KindString
	}
	return kind
}
