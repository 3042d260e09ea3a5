package domain

import (
	"encoding/json"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// separableSamples returns rows where applied jobs have high similarity and short
// distance, with a constant employment flag.
func separableSamples(n int) (*mat.Dense, []float64) {
	rng := newTestRand(5)
	m := mat.NewDense(2*n, NumFeatures, nil)
	labels := make([]float64, 2*n)
	for i := range 2 * n {
		applied := i < n
		sim, dist := 0.2+0.1*rng.Float64(), 40+20*rng.Float64()
		labels[i] = LabelNotApplied
		if applied {
			sim, dist = 0.8+0.1*rng.Float64(), 5+10*rng.Float64()
			labels[i] = LabelApplied
		}
		m.SetRow(i, []float64{sim, dist, 60, 5, 30, 15, 1, 3})
	}
	return m, labels
}

func TestScoringModel_FitPredictEvaluate(t *testing.T) {
	features, labels := separableSamples(30)
	original := mat.DenseCopyOf(features)

	model := NewScoringModel(DefaultScoringModelConfig())
	require.NoError(t, model.Fit(features, labels))
	assert.True(t, mat.Equal(original, features), "fit must not modify its input")

	accuracy, err := model.Evaluate(features, labels)
	require.NoError(t, err)
	assert.Equal(t, 1.0, accuracy)

	probs, err := model.PredictProbability(mat.NewDense(2, NumFeatures, []float64{
		0.9, 3, 60, 5, 30, 15, 1, 3,
		0.1, 80, 60, 5, 30, 15, 1, 3,
	}))
	require.NoError(t, err)
	require.Len(t, probs, 2)
	assert.Greater(t, probs[0], 0.5)
	assert.Less(t, probs[1], 0.5)
	for _, p := range probs {
		assert.True(t, p > 0 && p < 1)
	}
}

func TestScoringModel_NotFitted(t *testing.T) {
	model := NewScoringModel(DefaultScoringModelConfig())
	features, labels := separableSamples(2)

	_, err := model.PredictProbability(features)
	assert.ErrorIs(t, err, ErrNotFitted)

	_, err = model.Evaluate(features, labels)
	assert.ErrorIs(t, err, ErrNotFitted)

	_, err = model.Snapshot()
	assert.ErrorIs(t, err, ErrNotFitted)
}

func TestScoringModel_FitRequiresBothClasses(t *testing.T) {
	features, _ := separableSamples(3)
	labels := []float64{1, 1, 1, 1, 1, 1}

	err := NewScoringModel(DefaultScoringModelConfig()).Fit(features, labels)
	assert.ErrorIs(t, err, ErrInsufficientData)
}

func TestScoringModel_SnapshotRoundTrip(t *testing.T) {
	features, labels := separableSamples(10)
	model := NewScoringModel(DefaultScoringModelConfig())
	require.NoError(t, model.Fit(features, labels))

	snap, err := model.Snapshot()
	require.NoError(t, err)
	data, err := json.Marshal(snap)
	require.NoError(t, err)

	var decoded ScoringModelSnapshot
	require.NoError(t, json.Unmarshal(data, &decoded))
	restored, err := NewScoringModelFromSnapshot(DefaultScoringModelConfig(), decoded)
	require.NoError(t, err)

	want, err := model.PredictProbability(features)
	require.NoError(t, err)
	got, err := restored.PredictProbability(features)
	require.NoError(t, err)
	assert.InDeltaSlice(t, want, got, 1e-12)
}

func TestNewScoringModelFromSnapshot_Invalid(t *testing.T) {
	features, labels := separableSamples(10)
	model := NewScoringModel(DefaultScoringModelConfig())
	require.NoError(t, model.Fit(features, labels))
	valid, err := model.Snapshot()
	require.NoError(t, err)

	cases := []struct {
		name   string
		modify func(s *ScoringModelSnapshot)
	}{
		{
			name:   "column_beyond_features",
			modify: func(s *ScoringModelSnapshot) { s.Scaler.Columns[0] = NumFeatures },
		},
		{
			name:   "negative_column",
			modify: func(s *ScoringModelSnapshot) { s.Scaler.Columns[0] = -1 },
		},
		{
			name:   "mismatched_scaler_lengths",
			modify: func(s *ScoringModelSnapshot) { s.Scaler.Means = s.Scaler.Means[:1] },
		},
		{
			name:   "zero_scale",
			modify: func(s *ScoringModelSnapshot) { s.Scaler.Scales[0] = 0 },
		},
		{
			name:   "missing_coefficients",
			modify: func(s *ScoringModelSnapshot) { s.Classifier.Coef = s.Classifier.Coef[:2] },
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			data, err := json.Marshal(valid)
			require.NoError(t, err)
			var snap ScoringModelSnapshot
			require.NoError(t, json.Unmarshal(data, &snap))
			tc.modify(&snap)

			var restoreErr error
			assert.NotPanics(t, func() {
				_, restoreErr = NewScoringModelFromSnapshot(DefaultScoringModelConfig(), snap)
			})
			assert.ErrorIs(t, restoreErr, ErrInvalidArgument)
		})
	}
}

func TestScoringModel_ConcurrentPredictions(t *testing.T) {
	features, labels := separableSamples(10)
	model := NewScoringModel(DefaultScoringModelConfig())
	require.NoError(t, model.Fit(features, labels))

	want, err := model.PredictProbability(features)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := model.PredictProbability(features)
			assert.NoError(t, err)
			assert.Equal(t, want, got)
		}()
	}
	wg.Wait()
}

func TestStandardizer(t *testing.T) {
	m := mat.NewDense(4, 3, []float64{
		1, 10, 5,
		2, 20, 5,
		3, 30, 5,
		4, 40, 5,
	})

	s, err := FitStandardizer(m, []int{0, 2})
	require.NoError(t, err)

	out, err := s.Transform(m)
	require.NoError(t, err)

	col0 := mat.Col(nil, 0, out)
	mean, std := stat.PopMeanStdDev(col0, nil)
	assert.InDelta(t, 0, mean, 1e-12)
	assert.InDelta(t, 1, std, 1e-12)

	assert.Equal(t, []float64{10, 20, 30, 40}, mat.Col(nil, 1, out))
	assert.True(t, floats.Equal([]float64{0, 0, 0, 0}, mat.Col(nil, 2, out)))

	_, err = FitStandardizer(m, []int{3})
	assert.ErrorIs(t, err, ErrInvalidArgument)

	for _, col := range []int{-1, 3} {
		bad := Standardizer{Columns: []int{col}, Means: []float64{0}, Scales: []float64{1}}
		assert.NotPanics(t, func() {
			_, err = bad.Transform(m)
		})
		assert.ErrorIs(t, err, ErrInvalidArgument)
	}
}

func TestFitLogisticRegression_InvalidInput(t *testing.T) {
	x := mat.NewDense(2, 1, []float64{0, 1})

	cases := []struct {
		name   string
		labels []float64
		c      float64
	}{
		{name: "label_count_mismatch", labels: []float64{1}, c: 1},
		{name: "unknown_label", labels: []float64{1, 0}, c: 1},
		{name: "non_positive_regularization", labels: []float64{1, -1}, c: 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := FitLogisticRegression(x, tc.labels, tc.c, 100)
			assert.ErrorIs(t, err, ErrInvalidArgument)
		})
	}
}
