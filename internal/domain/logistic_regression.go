package domain

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize"
)

// LogisticRegression is a binary linear classifier over feature rows.
type LogisticRegression struct {
	Coef      []float64 `json:"coef"`
	Intercept float64   `json:"intercept"`
}

// FitLogisticRegression minimizes the L2-regularized logistic loss
//
//	0.5*|coef|^2 + c * sum(log(1 + exp(-y * (x.coef + intercept))))
//
// with L-BFGS. Labels must be LabelApplied or LabelNotApplied; the intercept is not
// regularized.
func FitLogisticRegression(x *mat.Dense, labels []float64, c float64, maxIterations int) (LogisticRegression, error) {
	rows, cols := x.Dims()
	if len(labels) != rows {
		return LogisticRegression{}, fmt.Errorf("%d labels for %d rows: %w", len(labels), rows, ErrInvalidArgument)
	}
	if c <= 0 {
		return LogisticRegression{}, fmt.Errorf("regularization strength %v: %w", c, ErrInvalidArgument)
	}
	for _, y := range labels {
		if y != LabelApplied && y != LabelNotApplied {
			return LogisticRegression{}, fmt.Errorf("label %v: %w", y, ErrInvalidArgument)
		}
	}

	// w holds the coefficients followed by the intercept.
	margins := make([]float64, rows)
	computeMargins := func(w []float64) {
		for i := range rows {
			margins[i] = labels[i] * (floats.Dot(x.RawRowView(i), w[:cols]) + w[cols])
		}
	}

	problem := optimize.Problem{
		Func: func(w []float64) float64 {
			computeMargins(w)
			loss := 0.0
			for _, m := range margins {
				loss += log1pExp(-m)
			}
			return 0.5*floats.Dot(w[:cols], w[:cols]) + c*loss
		},
		Grad: func(grad, w []float64) {
			computeMargins(w)
			copy(grad[:cols], w[:cols])
			grad[cols] = 0
			for i, m := range margins {
				g := -c * labels[i] * sigmoid(-m)
				floats.AddScaled(grad[:cols], g, x.RawRowView(i))
				grad[cols] += g
			}
		},
	}

	result, err := optimize.Minimize(problem, make([]float64, cols+1), &optimize.Settings{
		GradientThreshold: 1e-6,
		MajorIterations:   maxIterations,
	}, &optimize.LBFGS{})
	if result == nil {
		return LogisticRegression{}, fmt.Errorf("fitting logistic regression: %w", err)
	}
	// A failed line search still leaves the best location found.
	if floats.HasNaN(result.X) {
		return LogisticRegression{}, fmt.Errorf("fitting logistic regression: %w", ErrNaN)
	}

	return LogisticRegression{
		Coef:      append([]float64(nil), result.X[:cols]...),
		Intercept: result.X[cols],
	}, nil
}

// PredictProbability returns the probability of LabelApplied for each row.
func (l LogisticRegression) PredictProbability(x *mat.Dense) ([]float64, error) {
	rows, cols := x.Dims()
	if cols != len(l.Coef) {
		return nil, fmt.Errorf("%d features for %d coefficients: %w", cols, len(l.Coef), ErrInvalidArgument)
	}
	probs := make([]float64, rows)
	for i := range rows {
		probs[i] = sigmoid(floats.Dot(x.RawRowView(i), l.Coef) + l.Intercept)
	}
	return probs, nil
}

func sigmoid(z float64) float64 {
	if z >= 0 {
		return 1 / (1 + math.Exp(-z))
	}
	e := math.Exp(z)
	return e / (1 + e)
}

// log1pExp computes log(1 + exp(t)) without overflow.
func log1pExp(t float64) float64 {
	if t > 0 {
		return t + math.Log1p(math.Exp(-t))
	}
	return math.Log1p(math.Exp(t))
}
