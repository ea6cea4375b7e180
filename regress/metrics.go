package regress

import (
	"math"

	"github.com/goliatone/go-dataset/dataset"
)

// Metrics are regression accuracy measures, rounded to two decimals.
type Metrics struct {
	// MAE is the mean absolute error.
	MAE float64
	// MAPE is the mean absolute percentage error. The denominator is the
	// prediction, not the actual.
	MAPE float64
	// WMAPE weights absolute errors by the actual totals.
	WMAPE float64
}

// Accuracy computes MAE, MAPE and WMAPE over aligned actual and predicted
// values.
func Accuracy(actual, predicted []float64) (Metrics, error) {
	if len(actual) == 0 {
		return Metrics{}, dataset.NewError(dataset.KindValidation, "accuracy requires at least one observation", nil)
	}
	if len(actual) != len(predicted) {
		return Metrics{}, dataset.NewError(dataset.KindValidation, "actual and predicted lengths differ", nil)
	}

	sumAbs, sumPct, sumActual := 0.0, 0.0, 0.0
	for i, a := range actual {
		diff := math.Abs(a - predicted[i])
		sumAbs += diff
		sumPct += diff / predicted[i] * 100
		sumActual += a
	}

	n := float64(len(actual))
	return Metrics{
		MAE:   round2(sumAbs / n),
		MAPE:  round2(sumPct / n),
		WMAPE: round2(sumAbs / sumActual * 100),
	}, nil
}

// ModelAccuracy predicts over the frame and scores against the dependent
// variable column.
func ModelAccuracy(m *Model, f *dataset.Frame, depVar string) (Metrics, error) {
	predicted, err := m.Predict(f)
	if err != nil {
		return Metrics{}, err
	}
	actual, err := numericColumn(f, depVar)
	if err != nil {
		return Metrics{}, err
	}
	return Accuracy(actual, predicted)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
