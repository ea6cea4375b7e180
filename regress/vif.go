package regress

import (
	"math"
	"sort"

	"github.com/goliatone/go-dataset/dataset"
)

// VIFResult is the variance inflation factor of one predictor.
type VIFResult struct {
	Variable string
	VIF      float64
}

// VIF computes the variance inflation factor for each named column by
// regressing it on the remaining columns plus an intercept. The intercept
// itself is excluded from the output, which is sorted by VIF descending.
func VIF(f *dataset.Frame, columns []string) ([]VIFResult, error) {
	if len(columns) == 0 {
		return nil, dataset.NewError(dataset.KindValidation, "at least one column is required", nil)
	}

	results := make([]VIFResult, 0, len(columns))
	for _, target := range columns {
		if target == ConstName {
			continue
		}

		others := make([]string, 0, len(columns)-1)
		for _, name := range columns {
			if name != target && name != ConstName {
				others = append(others, name)
			}
		}

		r2, err := auxiliaryRSquared(f, target, others)
		if err != nil {
			return nil, err
		}

		vif := math.Inf(1)
		if r2 < 1 {
			vif = 1 / (1 - r2)
		}
		results = append(results, VIFResult{Variable: target, VIF: vif})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].VIF > results[j].VIF
	})
	return results, nil
}

// auxiliaryRSquared is the R-squared of regressing target on others with an
// intercept. With no other predictors the fit is the mean, so R-squared is
// zero.
func auxiliaryRSquared(f *dataset.Frame, target string, others []string) (float64, error) {
	if len(others) == 0 {
		if _, err := numericColumn(f, target); err != nil {
			return 0, err
		}
		return 0, nil
	}

	model, err := Fit(f, target, others)
	if err != nil {
		return 0, err
	}
	return model.RSquared, nil
}
