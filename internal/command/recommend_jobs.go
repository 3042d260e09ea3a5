package command

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/jbeshir/job-recommender/internal/datasources"
	"github.com/jbeshir/job-recommender/internal/domain"
	"github.com/jbeshir/job-recommender/internal/metrics"
)

// RecommendJobsRequest is the request for the RecommendJobs command.
type RecommendJobsRequest struct {
	UserToken   int
	Limit       int
	MaxDistance float64
}

// RecommendJobsConfig holds configuration for serving recommendations.
type RecommendJobsConfig struct {
	// PrecomputedStaleThreshold is how old stored recommendations may be before they are
	// recomputed. Zero disables the check.
	PrecomputedStaleThreshold time.Duration

	// PrecomputedMaxDistance is the radius the batch run used. Stored lists are only
	// served for requests with the same radius.
	PrecomputedMaxDistance float64

	// PrecomputedLimit is how many jobs the batch run stored per user. Requests for
	// more are computed live. Zero disables the check.
	PrecomputedLimit int
}

// RecommendedJob is a job with its similarity score.
type RecommendedJob struct {
	Job   domain.Job
	Score float64
}

// RecommendJobsResult is a ranked job list.
type RecommendJobsResult struct {
	Jobs     []RecommendedJob
	Fallback bool
	Source   string
}

// RecommendJobs serves a user's top jobs, preferring the batch-generated list and
// computing one live when none is stored.
type RecommendJobs struct {
	Catalog     domain.Catalog
	Precomputed datasources.PrecomputedRecommendationGetter
	Config      RecommendJobsConfig
}

// NewRecommendJobs creates a properly initialized RecommendJobs command.
func NewRecommendJobs(
	catalog domain.Catalog,
	precomputed datasources.PrecomputedRecommendationGetter,
	config RecommendJobsConfig,
) *RecommendJobs {
	return &RecommendJobs{
		Catalog:     catalog,
		Precomputed: precomputed,
		Config:      config,
	}
}

func (c *RecommendJobs) Execute(ctx context.Context, req RecommendJobsRequest) (RecommendJobsResult, error) {
	if req.Limit <= 0 {
		return RecommendJobsResult{}, fmt.Errorf("limit %d: %w", req.Limit, domain.ErrInvalidArgument)
	}
	if math.IsNaN(req.MaxDistance) || math.IsInf(req.MaxDistance, 0) || req.MaxDistance < 0 {
		return RecommendJobsResult{}, fmt.Errorf("max distance %v: %w", req.MaxDistance, domain.ErrInvalidArgument)
	}

	if c.coveredByPrecomputed(req) {
		result, ok := c.fromPrecomputed(ctx, req)
		if ok {
			metrics.RecordRecommendationServed(metrics.SourcePrecomputed, result.Fallback)
			return result, nil
		}
	}

	result, err := c.live(req)
	if err != nil {
		return RecommendJobsResult{}, err
	}
	metrics.RecordRecommendationServed(metrics.SourceLive, result.Fallback)
	return result, nil
}

func (c *RecommendJobs) coveredByPrecomputed(req RecommendJobsRequest) bool {
	if req.MaxDistance != c.Config.PrecomputedMaxDistance {
		return false
	}
	return c.Config.PrecomputedLimit == 0 || req.Limit <= c.Config.PrecomputedLimit
}

func (c *RecommendJobs) fromPrecomputed(ctx context.Context, req RecommendJobsRequest) (RecommendJobsResult, bool) {
	logger := domain.LoggerFromContext(ctx)

	recs, err := c.Precomputed.GetPrecomputedRecommendations(ctx, req.UserToken, req.Limit)
	if err != nil {
		logger.WarnContext(ctx, "failed to fetch precomputed recommendations, computing live",
			"user_token", req.UserToken, "error", err)
		return RecommendJobsResult{}, false
	}
	if len(recs) == 0 {
		return RecommendJobsResult{}, false
	}
	if c.Config.PrecomputedStaleThreshold > 0 && time.Since(recs[0].GeneratedAt) > c.Config.PrecomputedStaleThreshold {
		logger.DebugContext(ctx, "precomputed recommendations are stale",
			"user_token", req.UserToken, "generated_at", recs[0].GeneratedAt)
		return RecommendJobsResult{}, false
	}

	result := RecommendJobsResult{
		Jobs:     make([]RecommendedJob, 0, len(recs)),
		Fallback: recs[0].Fallback,
		Source:   metrics.SourcePrecomputed,
	}
	for _, rec := range recs {
		job, err := c.Catalog.Jobs.Get(rec.JobToken)
		if err != nil {
			logger.DebugContext(ctx, "skipping precomputed job missing from catalog",
				"job_token", rec.JobToken)
			continue
		}
		result.Jobs = append(result.Jobs, RecommendedJob{Job: job, Score: rec.Score})
	}
	return result, len(result.Jobs) > 0
}

func (c *RecommendJobs) live(req RecommendJobsRequest) (RecommendJobsResult, error) {
	userIndex, err := c.Catalog.UserTokens.Lookup(req.UserToken)
	if err != nil {
		return RecommendJobsResult{}, fmt.Errorf("looking up user: %w", err)
	}

	rec, err := domain.Recommender{Catalog: c.Catalog}.Recommend(userIndex, req.Limit, req.MaxDistance)
	if err != nil {
		return RecommendJobsResult{}, fmt.Errorf("recommending jobs: %w", err)
	}

	jobs, err := jobsForIndices(c.Catalog, rec.Jobs, rec.Scores)
	if err != nil {
		return RecommendJobsResult{}, err
	}
	return RecommendJobsResult{Jobs: jobs, Fallback: rec.Fallback, Source: metrics.SourceLive}, nil
}

func jobsForIndices(catalog domain.Catalog, indices []int, scores []float64) ([]RecommendedJob, error) {
	jobs := make([]RecommendedJob, len(indices))
	for i, idx := range indices {
		token, ok := catalog.JobTokens.Token(idx)
		if !ok {
			return nil, fmt.Errorf("job index %d: %w", idx, domain.ErrNotFound)
		}
		job, err := catalog.Jobs.Get(token)
		if err != nil {
			return nil, err
		}
		jobs[i] = RecommendedJob{Job: job, Score: scores[i]}
	}
	return jobs, nil
}
