// Package exportsqlite provides a SQLite dialect and a file-based export
// helper for go-dataset.
//
// ExportFile owns its connection for the duration of one export:
//
//	stats, err := exportsqlite.ExportFile(ctx, "out.db", frame, "report_rows", sqlexport.Exporter{})
//
// SQLite declares type affinities rather than widths, so the dialect maps
// every integer tier to INTEGER and numeric columns to REAL.
package exportsqlite
