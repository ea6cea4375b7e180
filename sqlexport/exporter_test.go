package sqlexport

import (
	"context"
	"database/sql"
	"math"
	"testing"

	"github.com/goliatone/go-dataset/dataset"
	"github.com/uptrace/bun/driver/sqliteshim"
)

func newTestDB(t *testing.T, name string) *sql.DB {
	t.Helper()
	db, err := sql.Open(sqliteshim.ShimName, "file:"+name+"?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	// Shared-cache memory databases vanish when the last conn closes.
	db.SetMaxIdleConns(1)
	t.Cleanup(func() {
		_ = db.Close()
	})
	return db
}

func peopleFrame(t *testing.T) *dataset.Frame {
	t.Helper()
	frame, err := dataset.New([]dataset.Column{
		{Name: "name", Kind: dataset.KindString, Values: []any{"Ann", "Bo"}},
		{Name: "age", Kind: dataset.KindInt, Values: []any{int64(30), int64(5)}},
	})
	if err != nil {
		t.Fatalf("new frame: %v", err)
	}
	return frame
}

func TestExporter_ExportsAllRows(t *testing.T) {
	db := newTestDB(t, "exporter_ok")
	tracker := NewMemoryTracker()
	exporter := &Exporter{DB: db, Dialect: MySQL{}, Tracker: tracker}

	stats, err := exporter.Export(context.Background(), peopleFrame(t), "people")
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if stats.Rows != 2 || stats.Table != "people" {
		t.Fatalf("unexpected stats %+v", stats)
	}

	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM people").Scan(&count); err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 2 {
		t.Fatalf("expected 2 rows, got %d", count)
	}

	var name string
	var age int64
	if err := db.QueryRow("SELECT name, age FROM people ORDER BY age DESC LIMIT 1").Scan(&name, &age); err != nil {
		t.Fatalf("select: %v", err)
	}
	if name != "Ann" || age != 30 {
		t.Fatalf("unexpected row %s/%d", name, age)
	}

	runs, err := tracker.List(context.Background(), RunFilter{Table: "people"})
	if err != nil {
		t.Fatalf("list runs: %v", err)
	}
	if len(runs) != 1 || runs[0].State != StateCompleted || runs[0].Rows != 2 {
		t.Fatalf("unexpected run records %+v", runs)
	}
}

func TestExporter_SanitizesColumnNamesAndNaN(t *testing.T) {
	frame, err := dataset.New([]dataset.Column{
		{Name: "score.pct", Kind: dataset.KindFloat, Values: []any{1.5, math.NaN()}},
	})
	if err != nil {
		t.Fatalf("new frame: %v", err)
	}

	db := newTestDB(t, "exporter_nan")
	exporter := &Exporter{DB: db}

	if _, err := exporter.Export(context.Background(), frame, "scores"); err != nil {
		t.Fatalf("export: %v", err)
	}

	var nulls int
	if err := db.QueryRow("SELECT COUNT(*) FROM scores WHERE score_pct IS NULL").Scan(&nulls); err != nil {
		t.Fatalf("count nulls: %v", err)
	}
	if nulls != 1 {
		t.Fatalf("expected NaN stored as NULL, got %d nulls", nulls)
	}
}

func TestExporter_BatchedInserts(t *testing.T) {
	values := make([]any, 10)
	for i := range values {
		values[i] = int64(i)
	}
	frame, err := dataset.New([]dataset.Column{{Name: "n", Kind: dataset.KindInt, Values: values}})
	if err != nil {
		t.Fatalf("new frame: %v", err)
	}

	db := newTestDB(t, "exporter_batch")
	exporter := &Exporter{DB: db, BatchSize: 3}

	stats, err := exporter.Export(context.Background(), frame, "numbers")
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if stats.Rows != 10 {
		t.Fatalf("expected 10 rows, got %d", stats.Rows)
	}

	// Row order survives batching.
	rows, err := db.Query("SELECT n FROM numbers")
	if err != nil {
		t.Fatalf("select: %v", err)
	}
	defer rows.Close()
	want := int64(0)
	for rows.Next() {
		var n int64
		if err := rows.Scan(&n); err != nil {
			t.Fatalf("scan: %v", err)
		}
		if n != want {
			t.Fatalf("expected %d, got %d", want, n)
		}
		want++
	}
	if err := rows.Err(); err != nil {
		t.Fatalf("rows: %v", err)
	}
	if want != 10 {
		t.Fatalf("expected 10 scanned rows, got %d", want)
	}
}

func TestExporter_CreateFailureLeavesNoRows(t *testing.T) {
	db := newTestDB(t, "exporter_ddl_fail")
	if _, err := db.Exec("CREATE TABLE people (existing TEXT)"); err != nil {
		t.Fatalf("precreate: %v", err)
	}

	tracker := NewMemoryTracker()
	exporter := &Exporter{DB: db, Tracker: tracker}
	_, err := exporter.Export(context.Background(), peopleFrame(t), "people")
	if err == nil {
		t.Fatalf("expected create table failure")
	}
	if dataset.KindFromError(err) != dataset.KindInternal {
		t.Fatalf("expected internal kind, got %v", dataset.KindFromError(err))
	}

	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM people").Scan(&count); err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected zero rows after aborted export, got %d", count)
	}

	runs, err := tracker.List(context.Background(), RunFilter{State: StateFailed})
	if err != nil {
		t.Fatalf("list runs: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("expected one failed run, got %d", len(runs))
	}
}

func TestExporter_InsertFailureRollsBackTable(t *testing.T) {
	frame, err := dataset.New([]dataset.Column{
		{Name: "v", Kind: dataset.KindString, Values: []any{"ok", struct{ X int }{1}}},
	})
	if err != nil {
		t.Fatalf("new frame: %v", err)
	}

	db := newTestDB(t, "exporter_insert_fail")
	exporter := &Exporter{DB: db}

	if _, err := exporter.Export(context.Background(), frame, "partial"); err == nil {
		t.Fatalf("expected insert failure")
	}

	// The whole transaction, table creation included, must roll back.
	var count int
	err = db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = 'partial'").Scan(&count)
	if err != nil {
		t.Fatalf("sqlite_master: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected table rolled back, found %d entries", count)
	}
}

func TestExporter_ContextCancellation(t *testing.T) {
	db := newTestDB(t, "exporter_cancel")
	exporter := &Exporter{DB: db}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := exporter.Export(ctx, peopleFrame(t), "people"); err == nil {
		t.Fatalf("expected cancellation error")
	}
}

func TestExporter_RequiresDB(t *testing.T) {
	exporter := &Exporter{}
	if _, err := exporter.Export(context.Background(), peopleFrame(t), "people"); dataset.KindFromError(err) != dataset.KindValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}
