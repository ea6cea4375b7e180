package dataset

import (
	"strings"
	"testing"
	"time"
)

func TestReadCSV_SniffsKinds(t *testing.T) {
	input := strings.Join([]string{
		"name,age,score,joined",
		"Ann,30,1.25,2024-01-07",
		"Bo,5,2.5,2024-02-11",
		"Cy,NA,#N/A,",
	}, "\n")

	frame, err := ReadCSV(strings.NewReader(input), CSVOptions{})
	if err != nil {
		t.Fatalf("read csv: %v", err)
	}
	if frame.NumRows() != 3 {
		t.Fatalf("expected 3 rows, got %d", frame.NumRows())
	}

	cases := map[string]Kind{
		"name":   KindString,
		"age":    KindInt,
		"score":  KindFloat,
		"joined": KindTime,
	}
	for name, want := range cases {
		col, err := frame.Column(name)
		if err != nil {
			t.Fatalf("column %s: %v", name, err)
		}
		if col.Kind != want {
			t.Fatalf("column %s: expected kind %s, got %s", name, want, col.Kind)
		}
	}

	age, _ := frame.Column("age")
	if age.Values[0] != int64(30) {
		t.Fatalf("expected int64(30), got %#v", age.Values[0])
	}
	if age.Values[2] != nil {
		t.Fatalf("expected null for NA cell, got %#v", age.Values[2])
	}

	joined, _ := frame.Column("joined")
	if joined.Values[2] != nil {
		t.Fatalf("expected null for empty date, got %#v", joined.Values[2])
	}
	first, ok := joined.Values[0].(time.Time)
	if !ok || !first.Equal(time.Date(2024, 1, 7, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected date %#v", joined.Values[0])
	}
}

func TestReadCSV_MixedColumnDegradesToString(t *testing.T) {
	input := "v\n1\ntwo\n"
	frame, err := ReadCSV(strings.NewReader(input), CSVOptions{})
	if err != nil {
		t.Fatalf("read csv: %v", err)
	}
	col, _ := frame.Column("v")
	if col.Kind != KindString {
		t.Fatalf("expected string fallback, got %s", col.Kind)
	}
}

func TestReadCSV_RejectsRaggedRows(t *testing.T) {
	input := "a,b\n1\n"
	if _, err := ReadCSV(strings.NewReader(input), CSVOptions{}); err == nil {
		t.Fatalf("expected ragged row error")
	}
}

func TestReadCSV_EmptyInput(t *testing.T) {
	if _, err := ReadCSV(strings.NewReader(""), CSVOptions{}); err == nil {
		t.Fatalf("expected error for empty input")
	}
}
