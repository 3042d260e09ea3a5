package command

import (
	"context"
	"fmt"
	"math"

	"github.com/jbeshir/job-recommender/internal/domain"
	"gonum.org/v1/gonum/mat"
)

// TrainScoringModelRequest is the request for the TrainScoringModel command.
type TrainScoringModelRequest struct {
	// TestFraction is the share of training rows, taken from the end, held out for
	// evaluation. Zero fits on every row.
	TestFraction float64
	// PositiveOnly evaluates only on held-out rows labelled as applied.
	PositiveOnly bool
	UserLimit    int
}

// TrainScoringModelResult reports the split sizes and held-out accuracy. Accuracy is NaN
// when nothing was held out.
type TrainScoringModelResult struct {
	TrainRows int
	TestRows  int
	Accuracy  float64
}

// TrainScoringModel builds the training split, fits Model on it and evaluates on a
// held-out tail.
type TrainScoringModel struct {
	BuildTrainingSet *BuildTrainingSet
	Model            *domain.ScoringModel
}

func NewTrainScoringModel(buildTrainingSet *BuildTrainingSet, model *domain.ScoringModel) *TrainScoringModel {
	return &TrainScoringModel{BuildTrainingSet: buildTrainingSet, Model: model}
}

func (c *TrainScoringModel) Execute(ctx context.Context, req TrainScoringModelRequest) (TrainScoringModelResult, error) {
	if req.TestFraction < 0 || req.TestFraction >= 1 {
		return TrainScoringModelResult{}, fmt.Errorf("test fraction %v: %w", req.TestFraction, domain.ErrInvalidArgument)
	}
	logger := domain.LoggerFromContext(ctx)

	set, err := c.BuildTrainingSet.Execute(ctx, BuildTrainingSetRequest{
		Split:     domain.SplitTrain,
		UserLimit: req.UserLimit,
	})
	if err != nil {
		return TrainScoringModelResult{}, fmt.Errorf("building training set: %w", err)
	}

	n := set.Rows()
	nTest := int(req.TestFraction * float64(n))
	nTrain := n - nTest
	if nTrain == 0 {
		return TrainScoringModelResult{}, fmt.Errorf("no rows left to fit on: %w", domain.ErrInsufficientData)
	}

	trainX := mat.DenseCopyOf(set.Features.Slice(0, nTrain, 0, domain.NumFeatures))
	if err := c.Model.Fit(trainX, set.Labels[:nTrain]); err != nil {
		return TrainScoringModelResult{}, fmt.Errorf("fitting scoring model: %w", err)
	}

	result := TrainScoringModelResult{TrainRows: nTrain, Accuracy: math.NaN()}
	testX, testY := heldOut(set, nTrain, req.PositiveOnly)
	if testX == nil {
		logger.InfoContext(ctx, "trained scoring model without evaluation", "train_rows", nTrain)
		return result, nil
	}

	result.TestRows = len(testY)
	result.Accuracy, err = c.Model.Evaluate(testX, testY)
	if err != nil {
		return TrainScoringModelResult{}, fmt.Errorf("evaluating scoring model: %w", err)
	}

	logger.InfoContext(ctx, "trained scoring model",
		"train_rows", result.TrainRows, "test_rows", result.TestRows, "accuracy", result.Accuracy)
	return result, nil
}

// heldOut returns rows from start onwards, restricted to applied rows when positiveOnly
// is set. It returns nil when no rows remain.
func heldOut(set TrainingSet, start int, positiveOnly bool) (*mat.Dense, []float64) {
	var rows [][]float64
	var labels []float64
	for i := start; i < set.Rows(); i++ {
		if positiveOnly && set.Labels[i] != domain.LabelApplied {
			continue
		}
		rows = append(rows, set.Features.RawRowView(i))
		labels = append(labels, set.Labels[i])
	}
	if len(rows) == 0 {
		return nil, nil
	}

	x := mat.NewDense(len(rows), domain.NumFeatures, nil)
	for i, row := range rows {
		x.SetRow(i, row)
	}
	return x, labels
}
