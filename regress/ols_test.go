package regress

import (
	"math"
	"testing"

	"github.com/goliatone/go-dataset/dataset"
)

func numFrame(t *testing.T, columns map[string][]float64, order ...string) *dataset.Frame {
	t.Helper()
	cols := make([]dataset.Column, 0, len(order))
	for _, name := range order {
		values := make([]any, len(columns[name]))
		for i, v := range columns[name] {
			values[i] = v
		}
		cols = append(cols, dataset.Column{Name: name, Kind: dataset.KindFloat, Values: values})
	}
	frame, err := dataset.New(cols)
	if err != nil {
		t.Fatalf("new frame: %v", err)
	}
	return frame
}

func almost(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func TestFit_PerfectLine(t *testing.T) {
	frame := numFrame(t, map[string][]float64{
		"x": {1, 2, 3, 4},
		"y": {3, 5, 7, 9}, // y = 2x + 1
	}, "x", "y")

	model, err := Fit(frame, "y", []string{"x"})
	if err != nil {
		t.Fatalf("fit: %v", err)
	}
	if len(model.Variables) != 2 || model.Variables[0] != ConstName || model.Variables[1] != "x" {
		t.Fatalf("unexpected variables %v", model.Variables)
	}
	if !almost(model.Coefficients[0], 1, 1e-9) || !almost(model.Coefficients[1], 2, 1e-9) {
		t.Fatalf("unexpected coefficients %v", model.Coefficients)
	}
	if !almost(model.RSquared, 1, 1e-9) {
		t.Fatalf("expected R-squared 1, got %v", model.RSquared)
	}

	predicted, err := model.Predict(frame)
	if err != nil {
		t.Fatalf("predict: %v", err)
	}
	if !almost(predicted[3], 9, 1e-9) {
		t.Fatalf("unexpected prediction %v", predicted)
	}
}

func TestFit_KnownStatistics(t *testing.T) {
	frame := numFrame(t, map[string][]float64{
		"x": {1, 2, 3, 4},
		"y": {2, 3, 5, 6},
	}, "x", "y")

	model, err := Fit(frame, "y", []string{"x"})
	if err != nil {
		t.Fatalf("fit: %v", err)
	}

	// Hand-computed: slope 1.4, intercept 0.5, R-squared 0.98.
	if !almost(model.Coefficients[0], 0.5, 1e-9) || !almost(model.Coefficients[1], 1.4, 1e-9) {
		t.Fatalf("unexpected coefficients %v", model.Coefficients)
	}
	if !almost(model.RSquared, 0.98, 1e-9) {
		t.Fatalf("expected R-squared 0.98, got %v", model.RSquared)
	}
	if !almost(model.AdjRSquared, 0.97, 1e-9) {
		t.Fatalf("expected adj R-squared 0.97, got %v", model.AdjRSquared)
	}
	// se(slope) = sqrt(0.1/5), t = 1.4/se.
	if !almost(model.StdErrors[1], math.Sqrt(0.02), 1e-9) {
		t.Fatalf("unexpected slope std error %v", model.StdErrors[1])
	}
	if !almost(model.TValues[1], 1.4/math.Sqrt(0.02), 1e-9) {
		t.Fatalf("unexpected slope t-value %v", model.TValues[1])
	}
	if !almost(model.PValues[1], 0.01005, 1e-3) {
		t.Fatalf("unexpected slope p-value %v", model.PValues[1])
	}
}

func TestFit_Validation(t *testing.T) {
	frame := numFrame(t, map[string][]float64{
		"x": {1, 2},
		"y": {1, 2},
	}, "x", "y")

	if _, err := Fit(frame, "y", nil); dataset.KindFromError(err) != dataset.KindValidation {
		t.Fatalf("expected validation error for no regressors, got %v", err)
	}
	// Two observations cannot support intercept plus slope.
	if _, err := Fit(frame, "y", []string{"x"}); dataset.KindFromError(err) != dataset.KindValidation {
		t.Fatalf("expected validation error for too few rows, got %v", err)
	}
}

func TestFit_SingularDesign(t *testing.T) {
	frame := numFrame(t, map[string][]float64{
		"x1": {1, 2, 3, 4},
		"x2": {2, 4, 6, 8}, // exactly 2*x1
		"y":  {1, 2, 3, 4},
	}, "x1", "x2", "y")

	if _, err := Fit(frame, "y", []string{"x1", "x2"}); dataset.KindFromError(err) != dataset.KindValidation {
		t.Fatalf("expected singular design error, got %v", err)
	}
}

func TestFit_RejectsMissingValues(t *testing.T) {
	frame, err := dataset.New([]dataset.Column{
		{Name: "x", Kind: dataset.KindFloat, Values: []any{1.0, nil, 3.0}},
		{Name: "y", Kind: dataset.KindFloat, Values: []any{1.0, 2.0, 3.0}},
	})
	if err != nil {
		t.Fatalf("new frame: %v", err)
	}
	if _, err := Fit(frame, "y", []string{"x"}); dataset.KindFromError(err) != dataset.KindValidation {
		t.Fatalf("expected validation error for missing value, got %v", err)
	}
}
