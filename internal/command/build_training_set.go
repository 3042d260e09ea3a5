package command

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/jbeshir/job-recommender/internal/domain"
	"github.com/jbeshir/job-recommender/internal/metrics"
	"gonum.org/v1/gonum/mat"
)

// BuildTrainingSetRequest is the request for the BuildTrainingSet command.
type BuildTrainingSetRequest struct {
	Split domain.Split
	// UserLimit stops after the first UserLimit user indices. Zero means every user.
	UserLimit int
}

// TrainingSet stacks per-user feature matrices. Labels is set for training splits;
// Users and Jobs give the user and job index of every row.
type TrainingSet struct {
	Features *mat.Dense
	Labels   []float64
	Users    []int
	Jobs     []int
	Skipped  int
}

// Rows is the number of samples in the set.
func (s TrainingSet) Rows() int {
	return len(s.Users)
}

// BuildTrainingSet assembles feature rows for every user in a split. Users without
// applications or without a resolvable location are skipped and counted.
type BuildTrainingSet struct {
	Catalog domain.Catalog
	Rand    *rand.Rand
}

func NewBuildTrainingSet(catalog domain.Catalog, rng *rand.Rand) *BuildTrainingSet {
	return &BuildTrainingSet{Catalog: catalog, Rand: rng}
}

func (c *BuildTrainingSet) Execute(ctx context.Context, req BuildTrainingSetRequest) (TrainingSet, error) {
	if _, err := domain.ParseSplit(string(req.Split)); err != nil {
		return TrainingSet{}, err
	}
	logger := domain.LoggerFromContext(ctx)
	builder := domain.FeatureBuilder{Catalog: c.Catalog, Rand: c.Rand}

	numUsers := c.Catalog.UserTokens.Len()
	if req.UserLimit > 0 {
		numUsers = min(numUsers, req.UserLimit)
	}

	var (
		rows  [][]float64
		set   TrainingSet
		train = req.Split == domain.SplitTrain
	)
	for userIndex := range numUsers {
		if err := ctx.Err(); err != nil {
			return TrainingSet{}, err
		}

		user, err := c.Catalog.User(userIndex)
		if err != nil {
			return TrainingSet{}, fmt.Errorf("reading user %d: %w", userIndex, err)
		}
		if user.Split != req.Split {
			continue
		}

		var fs domain.FeatureSet
		if train {
			fs, err = builder.BuildTraining(userIndex)
		} else {
			fs, err = builder.Build(userIndex)
		}
		metrics.RecordBatchUser("build_training_set", err)
		if errors.Is(err, domain.ErrInsufficientData) || errors.Is(err, domain.ErrNotFound) {
			logger.DebugContext(ctx, "skipping user", "user_token", user.Token, "error", err)
			set.Skipped++
			continue
		}
		if err != nil {
			return TrainingSet{}, fmt.Errorf("building features for user %d: %w", user.Token, err)
		}

		for i, job := range fs.Jobs {
			rows = append(rows, fs.Features.RawRowView(i))
			set.Users = append(set.Users, userIndex)
			set.Jobs = append(set.Jobs, job)
		}
		set.Labels = append(set.Labels, fs.Labels...)
	}

	if len(rows) == 0 {
		return TrainingSet{}, fmt.Errorf("no %s samples: %w", req.Split, domain.ErrInsufficientData)
	}

	set.Features = mat.NewDense(len(rows), domain.NumFeatures, nil)
	for i, row := range rows {
		set.Features.SetRow(i, row)
	}

	logger.InfoContext(ctx, "built feature set",
		"split", req.Split, "rows", set.Rows(), "skipped_users", set.Skipped)
	return set, nil
}
