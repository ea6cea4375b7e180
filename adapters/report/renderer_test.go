package reporthtml

import (
	"strings"
	"testing"
	"time"

	"github.com/goliatone/go-dataset/dataset"
	"github.com/goliatone/go-dataset/regress"
)

func TestRender_DefaultTemplate(t *testing.T) {
	data := ReportData{
		Title:       "Weekly sales model",
		GeneratedAt: time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC),
		Results: []regress.ResultRow{
			{Variable: regress.ConstName, Estimate: 0.5, PValue: 0.02, TValue: 3.1, AdjRSquared: 0.97},
			{Variable: "price", Estimate: -1.25, PValue: 0.001, TValue: -8.4, VIF: 1.2, AdjRSquared: 0.97},
		},
		Missing: []dataset.MissingStat{
			{Column: "price", Missing: 3, Percent: 7.5},
		},
	}

	var out strings.Builder
	if err := (Renderer{}).Render(&out, data); err != nil {
		t.Fatalf("render: %v", err)
	}

	html := out.String()
	for _, want := range []string{
		"<title>Weekly sales model</title>",
		"2024-03-10T12:00:00Z",
		"<td>price</td>",
		"-1.2500",
		"Missing values",
		"7.50",
	} {
		if !strings.Contains(html, want) {
			t.Fatalf("expected output to contain %q\n%s", want, html)
		}
	}
}

func TestRender_EmptySectionsOmitted(t *testing.T) {
	var out strings.Builder
	if err := (Renderer{}).Render(&out, ReportData{Title: "Empty"}); err != nil {
		t.Fatalf("render: %v", err)
	}
	html := out.String()
	if strings.Contains(html, "Model results") || strings.Contains(html, "Missing values") {
		t.Fatalf("expected empty sections to be omitted\n%s", html)
	}
}

func TestRender_CustomTemplate(t *testing.T) {
	r := Renderer{Template: `rows={{ results|length }}`}
	var out strings.Builder
	err := r.Render(&out, ReportData{Results: []regress.ResultRow{{Variable: "x"}}})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if out.String() != "rows=1" {
		t.Fatalf("unexpected output %q", out.String())
	}
}

func TestRender_Validation(t *testing.T) {
	if err := (Renderer{}).Render(nil, ReportData{}); err == nil {
		t.Fatal("expected error for nil writer")
	}
	var out strings.Builder
	if err := (Renderer{Template: "{% broken"}).Render(&out, ReportData{}); err == nil {
		t.Fatal("expected error for invalid template")
	}
}
