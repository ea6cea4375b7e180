package regress

import (
	"fmt"
	"math"

	"github.com/goliatone/go-dataset/dataset"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
)

// ConstName is the name given to the automatically added intercept term.
const ConstName = "const"

// Model is a fitted ordinary least squares regression.
type Model struct {
	DepVar    string
	Variables []string
	// Per-variable statistics, aligned with Variables.
	Coefficients []float64
	StdErrors    []float64
	TValues      []float64
	PValues      []float64

	RSquared    float64
	AdjRSquared float64

	n int
}

// Fit runs ordinary least squares of depVar on indepVars. An intercept is
// added automatically unless indepVars already names one "const".
func Fit(f *dataset.Frame, depVar string, indepVars []string) (*Model, error) {
	if len(indepVars) == 0 {
		return nil, dataset.NewError(dataset.KindValidation, "at least one independent variable is required", nil)
	}

	y, err := numericColumn(f, depVar)
	if err != nil {
		return nil, err
	}

	variables, X, err := designMatrix(f, indepVars)
	if err != nil {
		return nil, err
	}

	n := len(y)
	p := len(variables)
	if n <= p {
		return nil, dataset.NewError(dataset.KindValidation, fmt.Sprintf("need more than %d observations to fit %d terms", p, p), nil)
	}

	coef, xtxInv, err := solve(X, y)
	if err != nil {
		return nil, err
	}

	// Residual variance feeds the coefficient standard errors.
	rss := 0.0
	meanY := 0.0
	for _, v := range y {
		meanY += v
	}
	meanY /= float64(n)
	tss := 0.0
	for i, v := range y {
		fitted := 0.0
		for j := range variables {
			fitted += coef[j] * X.At(i, j)
		}
		e := v - fitted
		rss += e * e
		d := v - meanY
		tss += d * d
	}

	dof := float64(n - p)
	sigma2 := rss / dof
	dist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: dof}

	model := &Model{
		DepVar:       depVar,
		Variables:    variables,
		Coefficients: coef,
		StdErrors:    make([]float64, p),
		TValues:      make([]float64, p),
		PValues:      make([]float64, p),
		n:            n,
	}
	for j := 0; j < p; j++ {
		se := math.Sqrt(sigma2 * xtxInv.At(j, j))
		model.StdErrors[j] = se
		t := math.Inf(1)
		if coef[j] < 0 {
			t = math.Inf(-1)
		}
		if se > 0 {
			t = coef[j] / se
		}
		model.TValues[j] = t
		model.PValues[j] = 2 * (1 - dist.CDF(math.Abs(t)))
	}

	if tss > 0 {
		model.RSquared = 1 - rss/tss
	}
	model.AdjRSquared = 1 - (1-model.RSquared)*float64(n-1)/dof

	return model, nil
}

// Predict evaluates the fitted equation over the frame's rows.
func (m *Model) Predict(f *dataset.Frame) ([]float64, error) {
	if m == nil {
		return nil, dataset.NewError(dataset.KindValidation, "model is required", nil)
	}
	if f == nil {
		return nil, dataset.NewError(dataset.KindValidation, "frame is required", nil)
	}

	out := make([]float64, f.NumRows())
	for j, name := range m.Variables {
		if name == ConstName {
			for i := range out {
				out[i] += m.Coefficients[j]
			}
			continue
		}
		values, err := numericColumn(f, name)
		if err != nil {
			return nil, err
		}
		for i, v := range values {
			out[i] += m.Coefficients[j] * v
		}
	}
	return out, nil
}

// designMatrix assembles the regressor matrix, prepending an intercept
// column when absent.
func designMatrix(f *dataset.Frame, indepVars []string) ([]string, *mat.Dense, error) {
	hasConst := false
	for _, name := range indepVars {
		if name == ConstName {
			hasConst = true
		}
	}

	variables := indepVars
	if !hasConst {
		variables = append([]string{ConstName}, indepVars...)
	}

	n := f.NumRows()
	X := mat.NewDense(n, len(variables), nil)
	for j, name := range variables {
		if name == ConstName {
			for i := 0; i < n; i++ {
				X.Set(i, j, 1)
			}
			continue
		}
		values, err := numericColumn(f, name)
		if err != nil {
			return nil, nil, err
		}
		for i, v := range values {
			X.Set(i, j, v)
		}
	}
	return variables, X, nil
}

// solve computes the least squares coefficients and (X'X)^-1, which the
// standard errors need.
func solve(X *mat.Dense, y []float64) ([]float64, *mat.Dense, error) {
	_, p := X.Dims()

	var xtx mat.Dense
	xtx.Mul(X.T(), X)

	var xtxInv mat.Dense
	if err := xtxInv.Inverse(&xtx); err != nil {
		return nil, nil, dataset.NewError(dataset.KindValidation, "design matrix is singular", err)
	}

	yVec := mat.NewVecDense(len(y), y)
	var xty mat.VecDense
	xty.MulVec(X.T(), yVec)

	var b mat.VecDense
	b.MulVec(&xtxInv, &xty)

	coef := make([]float64, p)
	for j := 0; j < p; j++ {
		coef[j] = b.AtVec(j)
	}
	return coef, &xtxInv, nil
}

// numericColumn extracts a column as float64 values. Missing or non-numeric
// values are validation errors; regression has no null semantics.
func numericColumn(f *dataset.Frame, name string) ([]float64, error) {
	if f == nil {
		return nil, dataset.NewError(dataset.KindValidation, "frame is required", nil)
	}
	col, err := f.Column(name)
	if err != nil {
		return nil, err
	}

	values := make([]float64, len(col.Values))
	for i, v := range col.Values {
		switch value := v.(type) {
		case float64:
			if math.IsNaN(value) || math.IsInf(value, 0) {
				return nil, dataset.NewError(dataset.KindValidation, fmt.Sprintf("column %q has non-finite value at row %d", name, i), nil)
			}
			values[i] = value
		case int64:
			values[i] = float64(value)
		case nil:
			return nil, dataset.NewError(dataset.KindValidation, fmt.Sprintf("column %q has a missing value at row %d", name, i), nil)
		default:
			return nil, dataset.NewError(dataset.KindValidation, fmt.Sprintf("column %q is not numeric", name), nil)
		}
	}
	return values, nil
}
