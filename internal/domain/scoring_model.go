package domain

import (
	"fmt"
	"slices"
	"sync"

	"gonum.org/v1/gonum/mat"
)

// ScoringModelConfig holds the hyperparameters of the scoring model.
type ScoringModelConfig struct {
	// ScaledColumns are standardized before fitting and scoring.
	ScaledColumns []int
	// C is the inverse L2 regularization strength.
	C             float64
	MaxIterations int
}

// DefaultScoringModelConfig standardizes every column except the employment flag.
func DefaultScoringModelConfig() ScoringModelConfig {
	return ScoringModelConfig{
		ScaledColumns: []int{
			FeatureSimilarity,
			FeatureDistance,
			FeatureMaxDistance,
			FeatureMinDistance,
			FeatureMedianDistance,
			FeatureStdDistance,
			FeatureAppliedCount,
		},
		C:             1.0,
		MaxIterations: 1000,
	}
}

// ScoringModel turns feature matrices into application probabilities. It is fitted
// once and may then be read from concurrently.
type ScoringModel struct {
	config ScoringModelConfig

	mu         sync.RWMutex
	scaler     *Standardizer
	classifier *LogisticRegression
}

func NewScoringModel(config ScoringModelConfig) *ScoringModel {
	return &ScoringModel{config: config}
}

// Fit standardizes the configured columns and fits the classifier on the result.
// features is not modified.
func (s *ScoringModel) Fit(features *mat.Dense, labels []float64) error {
	var hasPos, hasNeg bool
	for _, y := range labels {
		hasPos = hasPos || y == LabelApplied
		hasNeg = hasNeg || y == LabelNotApplied
	}
	if !hasPos || !hasNeg {
		return fmt.Errorf("fitting needs both positive and negative samples: %w", ErrInsufficientData)
	}

	scaler, err := FitStandardizer(features, s.config.ScaledColumns)
	if err != nil {
		return fmt.Errorf("fitting standardizer: %w", err)
	}
	scaled, err := scaler.Transform(features)
	if err != nil {
		return fmt.Errorf("standardizing features: %w", err)
	}

	classifier, err := FitLogisticRegression(scaled, labels, s.config.C, s.config.MaxIterations)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.scaler = &scaler
	s.classifier = &classifier
	return nil
}

// PredictProbability returns the probability that the user applies to each row's job.
func (s *ScoringModel) PredictProbability(features *mat.Dense) ([]float64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.classifier == nil {
		return nil, ErrNotFitted
	}
	scaled, err := s.scaler.Transform(features)
	if err != nil {
		return nil, fmt.Errorf("standardizing features: %w", err)
	}
	return s.classifier.PredictProbability(scaled)
}

// Evaluate returns the fraction of rows whose predicted label matches labels.
func (s *ScoringModel) Evaluate(features *mat.Dense, labels []float64) (float64, error) {
	probs, err := s.PredictProbability(features)
	if err != nil {
		return 0, err
	}
	if len(probs) != len(labels) {
		return 0, fmt.Errorf("%d labels for %d rows: %w", len(labels), len(probs), ErrInvalidArgument)
	}
	if len(probs) == 0 {
		return 0, fmt.Errorf("evaluating on no samples: %w", ErrInsufficientData)
	}

	correct := 0
	for i, p := range probs {
		predicted := LabelNotApplied
		if p > 0.5 {
			predicted = LabelApplied
		}
		if predicted == labels[i] {
			correct++
		}
	}
	return float64(correct) / float64(len(probs)), nil
}

// ScoringModelSnapshot is the serializable state of a fitted model.
type ScoringModelSnapshot struct {
	Scaler     Standardizer       `json:"scaler"`
	Classifier LogisticRegression `json:"classifier"`
}

func (s *ScoringModel) Snapshot() (ScoringModelSnapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.classifier == nil {
		return ScoringModelSnapshot{}, ErrNotFitted
	}
	return ScoringModelSnapshot{
		Scaler: Standardizer{
			Columns: slices.Clone(s.scaler.Columns),
			Means:   slices.Clone(s.scaler.Means),
			Scales:  slices.Clone(s.scaler.Scales),
		},
		Classifier: LogisticRegression{
			Coef:      slices.Clone(s.classifier.Coef),
			Intercept: s.classifier.Intercept,
		},
	}, nil
}

// NewScoringModelFromSnapshot restores a fitted model.
func NewScoringModelFromSnapshot(config ScoringModelConfig, snap ScoringModelSnapshot) (*ScoringModel, error) {
	sc := snap.Scaler
	if err := sc.Validate(NumFeatures); err != nil {
		return nil, fmt.Errorf("scaler snapshot: %w", err)
	}
	if len(snap.Classifier.Coef) != NumFeatures {
		return nil, fmt.Errorf("classifier snapshot has %d coefficients, want %d: %w",
			len(snap.Classifier.Coef), NumFeatures, ErrInvalidArgument)
	}

	config.ScaledColumns = slices.Clone(sc.Columns)
	return &ScoringModel{
		config:     config,
		scaler:     &sc,
		classifier: &snap.Classifier,
	}, nil
}
