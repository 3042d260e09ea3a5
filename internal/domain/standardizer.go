package domain

import (
	"fmt"
	"math"
	"slices"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// Standardizer rescales selected columns to zero mean and unit variance.
type Standardizer struct {
	Columns []int     `json:"columns"`
	Means   []float64 `json:"means"`
	Scales  []float64 `json:"scales"`
}

// FitStandardizer computes per-column means and population standard deviations.
// Constant columns get a scale of 1 so they only get centered.
func FitStandardizer(m *mat.Dense, columns []int) (Standardizer, error) {
	_, c := m.Dims()
	s := Standardizer{
		Columns: slices.Clone(columns),
		Means:   make([]float64, len(columns)),
		Scales:  make([]float64, len(columns)),
	}
	for i, col := range columns {
		if col < 0 || col >= c {
			return Standardizer{}, fmt.Errorf("column %d outside %d features: %w", col, c, ErrInvalidArgument)
		}
		mean, std := stat.PopMeanStdDev(mat.Col(nil, col, m), nil)
		if std == 0 {
			std = 1
		}
		s.Means[i] = mean
		s.Scales[i] = std
	}
	return s, nil
}

// Transform returns a standardized copy of m.
func (s Standardizer) Transform(m *mat.Dense) (*mat.Dense, error) {
	r, c := m.Dims()
	out := mat.DenseCopyOf(m)
	for i, col := range s.Columns {
		if col < 0 || col >= c {
			return nil, fmt.Errorf("column %d outside %d features: %w", col, c, ErrInvalidArgument)
		}
		for row := range r {
			out.Set(row, col, (out.At(row, col)-s.Means[i])/s.Scales[i])
		}
	}
	return out, nil
}

// Validate checks that a restored Standardizer fits a matrix with numColumns columns.
func (s Standardizer) Validate(numColumns int) error {
	if len(s.Means) != len(s.Columns) || len(s.Scales) != len(s.Columns) {
		return fmt.Errorf("%d columns with %d means and %d scales: %w",
			len(s.Columns), len(s.Means), len(s.Scales), ErrInvalidArgument)
	}
	for i, col := range s.Columns {
		if col < 0 || col >= numColumns {
			return fmt.Errorf("column %d outside %d features: %w", col, numColumns, ErrInvalidArgument)
		}
		if scale := s.Scales[i]; scale == 0 || math.IsNaN(scale) || math.IsInf(scale, 0) {
			return fmt.Errorf("column %d has scale %v: %w", col, scale, ErrInvalidArgument)
		}
	}
	return nil
}
