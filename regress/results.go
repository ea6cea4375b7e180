package regress

import (
	"math"

	"github.com/goliatone/go-dataset/dataset"
)

// ResultRow is one variable's line in an iteration results table.
type ResultRow struct {
	Iteration   int
	Variable    string
	Estimate    float64
	PValue      float64
	TValue      float64
	VIF         float64 // NaN for the intercept
	AdjRSquared float64
	TrainMAE    float64
	TrainMAPE   float64 // fraction, not percent
	TrainWMAPE  float64
	TestMAE     float64
	TestMAPE    float64
	TestWMAPE   float64
}

// BuildResults assembles the per-variable diagnostics of one fitted model:
// estimates, p-values, t-values, VIF, adjusted R-squared and train/test
// accuracy. MAPE and WMAPE are stored as fractions. The iteration number is
// left at zero; logbooks assign it on append.
func BuildResults(m *Model, train, test *dataset.Frame, depVar string, indepVars []string) ([]ResultRow, error) {
	if m == nil {
		return nil, dataset.NewError(dataset.KindValidation, "model is required", nil)
	}

	vifs, err := VIF(train, indepVars)
	if err != nil {
		return nil, err
	}
	vifByName := make(map[string]float64, len(vifs))
	for _, v := range vifs {
		vifByName[v.Variable] = v.VIF
	}

	trainAcc, err := ModelAccuracy(m, train, depVar)
	if err != nil {
		return nil, err
	}
	testAcc, err := ModelAccuracy(m, test, depVar)
	if err != nil {
		return nil, err
	}

	rows := make([]ResultRow, len(m.Variables))
	for i, name := range m.Variables {
		vif := math.NaN()
		if v, ok := vifByName[name]; ok {
			vif = v
		}
		rows[i] = ResultRow{
			Variable:    name,
			Estimate:    m.Coefficients[i],
			PValue:      m.PValues[i],
			TValue:      m.TValues[i],
			VIF:         vif,
			AdjRSquared: m.AdjRSquared,
			TrainMAE:    trainAcc.MAE,
			TrainMAPE:   trainAcc.MAPE / 100,
			TrainWMAPE:  trainAcc.WMAPE / 100,
			TestMAE:     testAcc.MAE,
			TestMAPE:    testAcc.MAPE / 100,
			TestWMAPE:   testAcc.WMAPE / 100,
		}
	}
	return rows, nil
}
