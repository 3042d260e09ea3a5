package command

import (
	"context"
	"fmt"

	"github.com/jbeshir/job-recommender/internal/datasources"
	"github.com/jbeshir/job-recommender/internal/domain"
)

// ListSimilarJobsRequest is the request for the ListSimilarJobs command.
type ListSimilarJobsRequest struct {
	JobToken int
	Limit    int
}

// ListSimilarJobs returns the jobs nearest to a given job within its validity window.
type ListSimilarJobs struct {
	Jobs    domain.Jobs
	Similar datasources.SimilarJobLister
}

func NewListSimilarJobs(jobs domain.Jobs, similar datasources.SimilarJobLister) *ListSimilarJobs {
	return &ListSimilarJobs{Jobs: jobs, Similar: similar}
}

func (c *ListSimilarJobs) Execute(ctx context.Context, req ListSimilarJobsRequest) ([]RecommendedJob, error) {
	if req.Limit <= 0 {
		return nil, fmt.Errorf("limit %d: %w", req.Limit, domain.ErrInvalidArgument)
	}
	if _, err := c.Jobs.Get(req.JobToken); err != nil {
		return nil, err
	}

	similar, err := c.Similar.ListSimilarJobs(ctx, req.JobToken, req.Limit)
	if err != nil {
		return nil, fmt.Errorf("listing similar jobs: %w", err)
	}

	logger := domain.LoggerFromContext(ctx)
	jobs := make([]RecommendedJob, 0, len(similar))
	for _, s := range similar {
		job, err := c.Jobs.Get(s.JobToken)
		if err != nil {
			logger.DebugContext(ctx, "skipping similar job missing from catalog", "job_token", s.JobToken)
			continue
		}
		jobs = append(jobs, RecommendedJob{Job: job, Score: s.Score})
	}
	return jobs, nil
}
