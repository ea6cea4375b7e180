package dataset

import "testing"

func TestMissingValues_SortsByPercent(t *testing.T) {
	frame, err := New([]Column{
		{Name: "full", Kind: KindInt, Values: []any{int64(1), int64(2), int64(3), int64(4)}},
		{Name: "half", Kind: KindFloat, Values: []any{1.0, nil, 2.0, nil}},
		{Name: "sparse", Kind: KindString, Values: []any{nil, nil, nil, "x"}},
	})
	if err != nil {
		t.Fatalf("new frame: %v", err)
	}

	stats, err := MissingValues(frame)
	if err != nil {
		t.Fatalf("missing values: %v", err)
	}
	if len(stats) != 3 {
		t.Fatalf("expected 3 stats, got %d", len(stats))
	}
	if stats[0].Column != "sparse" || stats[0].Missing != 3 || stats[0].Percent != 75 {
		t.Fatalf("unexpected first stat %+v", stats[0])
	}
	if stats[1].Column != "half" || stats[1].Percent != 50 {
		t.Fatalf("unexpected second stat %+v", stats[1])
	}
	if stats[2].Column != "full" || stats[2].Missing != 0 {
		t.Fatalf("unexpected third stat %+v", stats[2])
	}
}

func TestMissingValues_SelectedColumns(t *testing.T) {
	frame, err := New([]Column{
		{Name: "a", Kind: KindInt, Values: []any{int64(1), nil}},
		{Name: "b", Kind: KindInt, Values: []any{nil, nil}},
	})
	if err != nil {
		t.Fatalf("new frame: %v", err)
	}

	stats, err := MissingValues(frame, "a")
	if err != nil {
		t.Fatalf("missing values: %v", err)
	}
	if len(stats) != 1 || stats[0].Column != "a" || stats[0].Percent != 50 {
		t.Fatalf("unexpected stats %+v", stats)
	}

	if _, err := MissingValues(frame, "nope"); KindFromError(err) != KindNotFound {
		t.Fatalf("expected not_found, got %v", err)
	}
}
