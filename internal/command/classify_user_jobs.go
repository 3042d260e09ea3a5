package command

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/jbeshir/job-recommender/internal/domain"
	"github.com/jbeshir/job-recommender/internal/metrics"
)

// ClassifyUserJobsRequest is the request for the ClassifyUserJobs command.
type ClassifyUserJobsRequest struct {
	UserToken int
	// Limit caps the number of jobs returned. Zero returns every candidate.
	Limit int
}

// JobProbability is a candidate job with the model's probability that the user applies.
type JobProbability struct {
	Job         domain.Job
	Probability float64
	Similarity  float64
	Distance    float64
}

// ClassifyUserJobs scores a user's remaining candidates with the fitted model.
type ClassifyUserJobs struct {
	Catalog domain.Catalog
	Model   *domain.ScoringModel
}

// NewClassifyUserJobs creates a properly initialized ClassifyUserJobs command.
func NewClassifyUserJobs(catalog domain.Catalog, model *domain.ScoringModel) *ClassifyUserJobs {
	return &ClassifyUserJobs{Catalog: catalog, Model: model}
}

// Execute returns candidates ordered by descending probability.
func (c *ClassifyUserJobs) Execute(ctx context.Context, req ClassifyUserJobsRequest) ([]JobProbability, error) {
	if req.Limit < 0 {
		return nil, fmt.Errorf("limit %d: %w", req.Limit, domain.ErrInvalidArgument)
	}

	userIndex, err := c.Catalog.UserTokens.Lookup(req.UserToken)
	if err != nil {
		return nil, fmt.Errorf("looking up user: %w", err)
	}

	start := time.Now()
	set, err := domain.FeatureBuilder{Catalog: c.Catalog}.Build(userIndex)
	if err != nil {
		return nil, fmt.Errorf("building features: %w", err)
	}
	probs, err := c.Model.PredictProbability(set.Features)
	if err != nil {
		return nil, fmt.Errorf("predicting probabilities: %w", err)
	}
	metrics.ObserveScoring(time.Since(start))

	result := make([]JobProbability, len(set.Jobs))
	for i, idx := range set.Jobs {
		token, _ := c.Catalog.JobTokens.Token(idx)
		job, err := c.Catalog.Jobs.Get(token)
		if err != nil {
			return nil, err
		}
		result[i] = JobProbability{
			Job:         job,
			Probability: probs[i],
			Similarity:  set.Features.At(i, domain.FeatureSimilarity),
			Distance:    set.Features.At(i, domain.FeatureDistance),
		}
	}

	sort.SliceStable(result, func(a, b int) bool {
		return result[a].Probability > result[b].Probability
	})
	if req.Limit > 0 && len(result) > req.Limit {
		result = result[:req.Limit]
	}

	domain.LoggerFromContext(ctx).DebugContext(ctx, "classified user candidates",
		"user_token", req.UserToken, "candidates", len(set.Jobs))
	return result, nil
}
