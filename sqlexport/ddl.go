package sqlexport

import (
	"fmt"
	"strings"
)

// SanitizeColumnName replaces characters outside [A-Za-z0-9_] with an
// underscore. Sanitizing an already-sanitized name is a no-op.
func SanitizeColumnName(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	return b.String()
}

// SanitizeTableName sanitizes like SanitizeColumnName and additionally
// guards empty and digit-leading names.
func SanitizeTableName(name, fallback string) string {
	sanitized := strings.Trim(SanitizeColumnName(strings.TrimSpace(name)), "_")
	if sanitized == "" {
		return fallback
	}
	if sanitized[0] >= '0' && sanitized[0] <= '9' {
		sanitized = "t_" + sanitized
	}
	return sanitized
}

// BuildCreateTable renders the CREATE TABLE statement for the inferred
// schemas, columns in dataset order. Pure function of its inputs.
func BuildCreateTable(d Dialect, table string, schemas []ColumnSchema) string {
	defs := make([]string, len(schemas))
	for i, schema := range schemas {
		nullability := "NULL"
		if !schema.Nullable {
			nullability = "NOT NULL"
		}
		defs[i] = fmt.Sprintf("%s %s %s", d.QuoteIdentifier(schema.Name), schema.SQLType, nullability)
	}
	return fmt.Sprintf("CREATE TABLE %s (%s)", d.QuoteIdentifier(table), strings.Join(defs, ", "))
}

// BuildInsert renders a single-row parameterized INSERT statement.
func BuildInsert(d Dialect, table string, names []string) string {
	quoted := make([]string, len(names))
	markers := make([]string, len(names))
	for i, name := range names {
		quoted[i] = d.QuoteIdentifier(name)
		markers[i] = d.Placeholder(i + 1)
	}
	return fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s)",
		d.QuoteIdentifier(table),
		strings.Join(quoted, ", "),
		strings.Join(markers, ", "),
	)
}

// BuildBatchInsert renders a multi-row INSERT with rows value groups.
func BuildBatchInsert(d Dialect, table string, names []string, rows int) string {
	quoted := make([]string, len(names))
	for i, name := range names {
		quoted[i] = d.QuoteIdentifier(name)
	}
	groups := make([]string, rows)
	p := 1
	for r := 0; r < rows; r++ {
		markers := make([]string, len(names))
		for i := range names {
			markers[i] = d.Placeholder(p)
			p++
		}
		groups[r] = "(" + strings.Join(markers, ", ") + ")"
	}
	return fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES %s",
		d.QuoteIdentifier(table),
		strings.Join(quoted, ", "),
		strings.Join(groups, ", "),
	)
}
